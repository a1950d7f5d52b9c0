package starpile

import (
	"math"
	"testing"
)

func TestBlendAdvanceMonotone(t *testing.T) {
	b := BlendState{}

	prev := b.Value
	for i := 0; i < 50; i++ {
		v := b.Advance(true, 0.05, 1.2)
		if v < 0 || v > 1 {
			t.Fatalf("step %d: value %v out of [0,1]", i, v)
		}
		if v <= prev {
			t.Fatalf("step %d: value %v did not strictly increase from %v", i, v, prev)
		}
		if math.Abs(float64(v-1)) >= math.Abs(float64(prev-1)) {
			t.Fatalf("step %d: value %v not strictly closer to target than %v", i, v, prev)
		}
		prev = v
	}
}

func TestBlendAdvanceLargeDt(t *testing.T) {
	b := BlendState{}

	v := b.Advance(true, 1000, 1.2)
	if v < 0 || v > 1 {
		t.Errorf("large dt produced out-of-range value %v", v)
	}
	if v < 0.999 {
		t.Errorf("large dt should land close to target, got %v", v)
	}

	// Never overshoots.
	v2 := b.Advance(true, 1000, 1.2)
	if v2 > 1 {
		t.Errorf("overshoot past 1: %v", v2)
	}
	if v2 < v {
		t.Errorf("value moved away from target: %v -> %v", v, v2)
	}
}

func TestBlendAdvanceBadDt(t *testing.T) {
	b := BlendState{Value: 0.4}

	if v := b.Advance(true, float32(math.NaN()), 1.2); v != 0.4 {
		t.Errorf("NaN dt changed value to %v", v)
	}
	if v := b.Advance(true, -0.5, 1.2); v != 0.4 {
		t.Errorf("negative dt changed value to %v", v)
	}
	if v := b.Advance(true, float32(math.Inf(1)), 1.2); v != 0.4 {
		t.Errorf("infinite dt changed value to %v", v)
	}
	if v := b.Advance(true, 0, 1.2); v != 0.4 {
		t.Errorf("zero dt changed value to %v", v)
	}
}

func TestBlendReversalContinuity(t *testing.T) {
	const (
		dt = 0.1
		tc = 1.2
	)
	b := BlendState{}
	for i := 0; i < 5; i++ {
		b.Advance(true, dt, tc)
	}
	mid := b.Value
	if mid <= 0 || mid >= 1 {
		t.Fatalf("expected mid-flight value, got %v", mid)
	}

	// One reversed step may move at most the damped fraction of the
	// remaining distance to the new target.
	stepBound := mid * (1 - float32(math.Exp(-dt/tc)))
	v := b.Advance(false, dt, tc)
	if diff := mid - v; diff < 0 || diff > stepBound+1e-6 {
		t.Errorf("reversal jumped by %v, bound %v", diff, stepBound)
	}
}

func TestBlendTwelveStepScenario(t *testing.T) {
	b := BlendState{}

	prev := float32(0)
	for i := 0; i < 12; i++ {
		v := b.Advance(true, 0.1, 1.2)
		if v <= prev {
			t.Fatalf("step %d: value %v not strictly greater than %v", i, v, prev)
		}
		prev = v
	}

	if b.Value < 0.55 || b.Value > 0.70 {
		t.Errorf("after 12 steps expected value in [0.55,0.70], got %v", b.Value)
	}
}

func TestLerp32Endpoints(t *testing.T) {
	if v := lerp32(3.5, 9.25, 0); v != 3.5 {
		t.Errorf("lerp at 0: got %v", v)
	}
	if v := lerp32(3.5, 9.25, 1); v != 9.25 {
		t.Errorf("lerp at 1: got %v", v)
	}
}
