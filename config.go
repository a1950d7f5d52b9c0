package starpile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldConfig carries every tunable of the particle field. All values are
// plain data so a scene can be described in a yaml file and handed to
// NewField unchanged.
type FieldConfig struct {
	Counts  CountsConfig  `yaml:"counts"`
	Scatter ScatterConfig `yaml:"scatter"`
	Tree    TreeConfig    `yaml:"tree"`
	Blend   BlendConfig   `yaml:"blend"`
	Accent  AccentConfig  `yaml:"accent"`
	Drift   DriftConfig   `yaml:"drift"`

	// Palettes keyed by particle class name ("sphere", "cube", "gem").
	Palettes map[string][]PaletteEntry `yaml:"palettes"`

	// Materials are pass-through for the render harness; the core never
	// reads them beyond carrying them along. Keyed like Palettes, plus
	// "accent".
	Materials map[string]MaterialParams `yaml:"materials"`
}

type CountsConfig struct {
	Sphere int `yaml:"sphere"`
	Cube   int `yaml:"cube"`
	Gem    int `yaml:"gem"`
}

type ScatterConfig struct {
	Radius float32 `yaml:"radius"`
}

type TreeConfig struct {
	Height     float32 `yaml:"height"`
	YOffset    float32 `yaml:"yOffset"`
	BaseRadius float32 `yaml:"baseRadius"`

	// HeightBias is the exponent applied to the uniform height draw.
	// Values above 1 pile samples toward the base. Chosen by eye, not
	// derived from a model; tune freely.
	HeightBias float32 `yaml:"heightBias"`

	// CoreFraction is the floor of the radial bias: pile radius spans
	// [CoreFraction, 1] of the taper radius at a given height.
	CoreFraction float32 `yaml:"coreFraction"`
}

type BlendConfig struct {
	GroupTimeConstant  float32 `yaml:"groupTimeConstant"`
	AccentTimeConstant float32 `yaml:"accentTimeConstant"`
}

type AccentConfig struct {
	ScatterY  float32 `yaml:"scatterY"`
	TreeTopY  float32 `yaml:"treeTopY"`
	FullScale float32 `yaml:"fullScale"`
}

type MaterialParams struct {
	Roughness    float32 `yaml:"roughness"`
	Metalness    float32 `yaml:"metalness"`
	Transmission float32 `yaml:"transmission"`
	Thickness    float32 `yaml:"thickness"`
}

// DefaultFieldConfig returns the stock ornament field: 600 spheres, 600
// cubes, 300 gems scattered in a radius-22 cloud piling into a height-13
// tree.
func DefaultFieldConfig() FieldConfig {
	var (
		morandi    = [3]float32{0.61, 0.67, 0.56}
		white      = [3]float32{0.96, 0.96, 0.93}
		paleGold   = [3]float32{0.93, 0.85, 0.64}
		pink       = [3]float32{0.91, 0.63, 0.75}
		brown      = [3]float32{0.55, 0.37, 0.24}
		brightGold = [3]float32{1.00, 0.84, 0.00}
		deepGold   = [3]float32{0.72, 0.53, 0.04}
		amber      = [3]float32{1.00, 0.75, 0.00}
	)

	return FieldConfig{
		Counts:  CountsConfig{Sphere: 600, Cube: 600, Gem: 300},
		Scatter: ScatterConfig{Radius: 22},
		Tree: TreeConfig{
			Height:       13,
			YOffset:      1,
			BaseRadius:   5.5,
			HeightBias:   1.2,
			CoreFraction: 0.2,
		},
		Blend: BlendConfig{
			GroupTimeConstant:  1.2,
			AccentTimeConstant: 1.0,
		},
		Accent: AccentConfig{
			ScatterY:  15,
			TreeTopY:  8.2,
			FullScale: 1.2,
		},
		Drift: DriftConfig{
			Enabled:   false,
			Amplitude: 0.35,
			Frequency: 0.05,
			Alpha:     2,
			Beta:      2,
			Octaves:   3,
			Seed:      1,
		},
		Palettes: map[string][]PaletteEntry{
			"sphere": {
				{Name: "Morandi", RGB: morandi, Bound: 0.30},
				{Name: "White", RGB: white, Bound: 0.55},
				{Name: "PaleGold", RGB: paleGold, Bound: 0.70},
				{Name: "Pink", RGB: pink, Bound: 0.85},
				{Name: "Brown", RGB: brown, Bound: 0.95},
				{Name: "BrightGold", RGB: brightGold, Bound: 1.00},
			},
			"cube": {
				{Name: "BrightGold", RGB: brightGold, Bound: 0.25},
				{Name: "DeepGold", RGB: deepGold, Bound: 0.45},
				{Name: "White", RGB: white, Bound: 0.60},
				{Name: "Morandi", RGB: morandi, Bound: 0.75},
				{Name: "Brown", RGB: brown, Bound: 0.85},
				{Name: "PaleGold", RGB: paleGold, Bound: 1.00},
			},
			"gem": {
				{Name: "Amber", RGB: amber, Bound: 0.40},
				{Name: "White", RGB: white, Bound: 0.70},
				{Name: "BrightGold", RGB: brightGold, Bound: 0.85},
				{Name: "Pink", RGB: pink, Bound: 1.00},
			},
		},
		Materials: map[string]MaterialParams{
			"sphere": {Roughness: 0.35, Metalness: 0.2},
			"cube":   {Roughness: 0.25, Metalness: 0.8},
			"gem":    {Roughness: 0.05, Metalness: 0.0, Transmission: 0.9, Thickness: 0.6},
			"accent": {Roughness: 0.2, Metalness: 1.0},
		},
	}
}

// LoadFieldConfig reads a yaml field description. Missing keys keep their
// defaults; the merged result is validated before use.
func LoadFieldConfig(path string) (FieldConfig, error) {
	cfg := DefaultFieldConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("load field config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse field config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate field config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *FieldConfig) Validate() error {
	if c.Scatter.Radius <= 0 {
		return fmt.Errorf("scatter radius must be positive, got %v", c.Scatter.Radius)
	}
	if c.Tree.Height <= 0 {
		return fmt.Errorf("tree height must be positive, got %v", c.Tree.Height)
	}
	if c.Tree.BaseRadius <= 0 {
		return fmt.Errorf("tree base radius must be positive, got %v", c.Tree.BaseRadius)
	}
	if c.Tree.HeightBias <= 0 {
		return fmt.Errorf("tree height bias must be positive, got %v", c.Tree.HeightBias)
	}
	if c.Tree.CoreFraction < 0 || c.Tree.CoreFraction > 1 {
		return fmt.Errorf("tree core fraction must be in [0,1], got %v", c.Tree.CoreFraction)
	}
	if c.Blend.GroupTimeConstant <= 0 || c.Blend.AccentTimeConstant <= 0 {
		return fmt.Errorf("blend time constants must be positive, got %v and %v",
			c.Blend.GroupTimeConstant, c.Blend.AccentTimeConstant)
	}
	for name, entries := range c.Palettes {
		if _, err := NewPalette(entries); err != nil {
			return fmt.Errorf("palette %q: %w", name, err)
		}
	}
	return nil
}

func (c *FieldConfig) paletteFor(class ParticleClass) (Palette, error) {
	entries, ok := c.Palettes[class.String()]
	if !ok {
		return Palette{}, fmt.Errorf("no palette for class %s", class)
	}
	return NewPalette(entries)
}
