package starpile

import (
	"github.com/go-gl/mathgl/mgl32"
)

const (
	accentBobAmplitude = 0.05
	accentSpinRate     = 0.8
	emissiveBase       = 0.8
	emissiveSwing      = 0.4
)

// AccentObject is the single topper element. It shares the field's morph
// signal but runs its own damped blend, growing in from nothing as the pile
// assembles and settling on the tree top.
type AccentObject struct {
	Transform         *Transform
	EmissiveIntensity float32
	Blend             BlendState

	state MorphState
	cfg   AccentConfig
	tc    float32
	spin  float32
}

func NewAccentObject(cfg AccentConfig, timeConstant float32) *AccentObject {
	a := &AccentObject{
		Transform: NewTransform(),
		cfg:       cfg,
		tc:        timeConstant,
	}
	a.Transform.Position = mgl32.Vec3{0, cfg.ScatterY, 0}
	a.Transform.Scale = mgl32.Vec3{0, 0, 0}
	return a
}

func (a *AccentObject) SetState(s MorphState) { a.state = s }
func (a *AccentObject) State() MorphState     { return a.state }

// Advance runs one frame: damped blend toward the current state, vertical
// bob, constant spin and emissive pulse. Spin and pulse run regardless of
// the blend.
func (a *AccentObject) Advance(elapsed, dt float32) {
	t := a.Blend.Advance(a.state == TreeShape, dt, a.tc)

	y := lerp32(a.cfg.ScatterY, a.cfg.TreeTopY, t) + accentBobAmplitude*sin32(elapsed*2)
	a.Transform.Position = mgl32.Vec3{a.Transform.Position.X(), y, a.Transform.Position.Z()}

	s := lerp32(0, a.cfg.FullScale, t)
	a.Transform.Scale = mgl32.Vec3{s, s, s}

	a.spin += dt * accentSpinRate
	a.Transform.Rotation = mgl32.QuatRotate(a.spin, mgl32.Vec3{0, 1, 0})
	a.Transform.Dirty = true

	a.EmissiveIntensity = emissiveBase + emissiveSwing*sin32(elapsed*2)
}
