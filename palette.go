package starpile

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// PaletteEntry pairs a named color with the upper bound of its slot in the
// cumulative weight table. Entries are ordered by ascending bound and the
// final bound is 1.
type PaletteEntry struct {
	Name  string     `yaml:"name"`
	RGB   [3]float32 `yaml:"rgb"`
	Bound float32    `yaml:"bound"`
}

// Palette is a static categorical color distribution for one particle class.
// Picks happen once at generation time, never per frame.
type Palette struct {
	entries []PaletteEntry
}

func NewPalette(entries []PaletteEntry) (Palette, error) {
	if len(entries) == 0 {
		return Palette{}, fmt.Errorf("palette: no entries")
	}
	prev := float32(0)
	for i, e := range entries {
		if e.Bound <= prev {
			return Palette{}, fmt.Errorf("palette: entry %d (%s) bound %v not above previous %v", i, e.Name, e.Bound, prev)
		}
		prev = e.Bound
	}
	const eps = 1e-4
	if prev < 1-eps || prev > 1+eps {
		return Palette{}, fmt.Errorf("palette: final bound %v, want 1", prev)
	}
	return Palette{entries: entries}, nil
}

// PickEntry returns the first entry whose cumulative bound exceeds u.
// u outside [0,1) falls through to the last entry.
func (p Palette) PickEntry(u float32) PaletteEntry {
	for _, e := range p.entries {
		if u < e.Bound {
			return e
		}
	}
	return p.entries[len(p.entries)-1]
}

func (p Palette) Pick(u float32) mgl32.Vec3 {
	e := p.PickEntry(u)
	return mgl32.Vec3{e.RGB[0], e.RGB[1], e.RGB[2]}
}

func (p Palette) Entries() []PaletteEntry { return p.entries }
