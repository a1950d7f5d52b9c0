package starpile

import (
	"math"
)

// MorphState is the discrete external signal the field tracks. The blend
// value chases it asymptotically and never jumps.
type MorphState int

const (
	Scattered MorphState = iota
	TreeShape
)

func (s MorphState) String() string {
	if s == TreeShape {
		return "tree"
	}
	return "scattered"
}

// BlendState is a damped scalar in [0,1] approaching a binary target with
// exponential smoothing. Value moves strictly toward Target on every advance
// with dt > 0 and never overshoots, so reversing the target mid-flight stays
// continuous.
type BlendState struct {
	Value  float32
	Target float32
}

// Advance moves Value one step toward the target and returns the new value.
// A NaN, infinite, negative or zero dt leaves the value untouched so a
// single bad frame cannot poison the cumulative state.
func (b *BlendState) Advance(target bool, dt, timeConstant float32) float32 {
	if target {
		b.Target = 1
	} else {
		b.Target = 0
	}

	if !isFiniteN(dt) || dt <= 0 {
		return b.Value
	}
	if timeConstant <= 0 {
		b.Value = b.Target
		return b.Value
	}

	k := float32(math.Exp(float64(-dt / timeConstant)))
	b.Value = b.Target + (b.Value-b.Target)*k

	if b.Value < 0 {
		b.Value = 0
	} else if b.Value > 1 {
		b.Value = 1
	}
	return b.Value
}

func isFiniteN(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Endpoint-exact lerp: returns exactly a at t=0 and exactly b at t=1.
func lerp32(a, b, t float32) float32 {
	return a*(1-t) + b*t
}
