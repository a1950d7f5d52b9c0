package starpile

import (
	"github.com/aquilax/go-perlin"

	"github.com/go-gl/mathgl/mgl32"
)

// DriftConfig switches on a low-frequency turbulence layer for the scattered
// state. It rides on top of the per-particle sin/cos wobble and fades out
// with the same (1-t) factor, so the assembled tree stays still.
type DriftConfig struct {
	Enabled   bool    `yaml:"enabled"`
	Amplitude float32 `yaml:"amplitude"`
	Frequency float32 `yaml:"frequency"`
	Alpha     float64 `yaml:"alpha"`
	Beta      float64 `yaml:"beta"`
	Octaves   int32   `yaml:"octaves"`
	Seed      int64   `yaml:"seed"`
}

type DriftField struct {
	noise *perlin.Perlin
	amp   float32
	freq  float32
}

func NewDriftField(cfg DriftConfig) *DriftField {
	return &DriftField{
		noise: perlin.NewPerlin(cfg.Alpha, cfg.Beta, cfg.Octaves, cfg.Seed),
		amp:   cfg.Amplitude,
		freq:  cfg.Frequency,
	}
}

// Offset samples the field at a particle's scatter anchor. The three axes
// read the noise at decorrelated coordinates so the drift does not collapse
// onto a diagonal.
func (d *DriftField) Offset(anchor mgl32.Vec3, elapsed float32) mgl32.Vec3 {
	fx := float64(anchor.X() * d.freq)
	fy := float64(anchor.Y() * d.freq)
	fz := float64(anchor.Z() * d.freq)
	ft := float64(elapsed) * 0.1

	return mgl32.Vec3{
		d.amp * float32(d.noise.Noise3D(fx, fy, ft)),
		d.amp * float32(d.noise.Noise3D(fy, fz, ft+17)),
		d.amp * float32(d.noise.Noise3D(fz, fx, ft+31)),
	}
}
