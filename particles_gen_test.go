package starpile

import (
	"errors"
	"math"
	"math/rand"
	"sort"
	"testing"
)

func testConfig() FieldConfig {
	return DefaultFieldConfig()
}

func TestGenerateGroupRanges(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(42))

	g, err := GenerateGroup(ClassSphere, 5000, &cfg, rng)
	if err != nil {
		t.Fatal(err)
	}
	if g.Count() != 5000 {
		t.Fatalf("expected 5000 particles, got %d", g.Count())
	}

	maxR := float64(cfg.Scatter.Radius) + 1e-3
	for i := 0; i < g.Count(); i++ {
		rec := g.Record(i)

		if rec.Scale < 0.5 || rec.Scale > 1.3 {
			t.Fatalf("particle %d: scale %v out of [0.5,1.3]", i, rec.Scale)
		}
		if rec.NoisePhaseSpeed < 0.5 || rec.NoisePhaseSpeed > 1.0 {
			t.Fatalf("particle %d: noise speed %v out of [0.5,1.0]", i, rec.NoisePhaseSpeed)
		}
		if r := float64(rec.ScatterPosition.Len()); r > maxR {
			t.Fatalf("particle %d: scatter radius %v exceeds %v", i, r, maxR)
		}
		for _, v := range []float32{
			rec.ScatterPosition.X(), rec.ScatterPosition.Y(), rec.ScatterPosition.Z(),
			rec.TreePosition.X(), rec.TreePosition.Y(), rec.TreePosition.Z(),
			rec.Color.X(), rec.Color.Y(), rec.Color.Z(),
		} {
			if !isFiniteN(v) {
				t.Fatalf("particle %d: non-finite component %v", i, v)
			}
		}
	}
}

func TestGenerateGroupCounts(t *testing.T) {
	cfg := testConfig()

	empty, err := GenerateGroup(ClassCube, 0, &cfg, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("count=0 should be valid, got %v", err)
	}
	if empty.Count() != 0 {
		t.Errorf("expected empty group, got %d particles", empty.Count())
	}

	if _, err := GenerateGroup(ClassCube, -1, &cfg, rand.New(rand.NewSource(1))); !errors.Is(err, ErrInvalidCount) {
		t.Errorf("count=-1 should yield ErrInvalidCount, got %v", err)
	}
}

func TestGenerateGroupDeterministic(t *testing.T) {
	cfg := testConfig()

	a, err := GenerateGroup(ClassGem, 200, &cfg, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}
	b, err := GenerateGroup(ClassGem, 200, &cfg, rand.New(rand.NewSource(7)))
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < a.Count(); i++ {
		if a.Record(i) != b.Record(i) {
			t.Fatalf("particle %d differs between identically seeded generations", i)
		}
	}
}

func TestTreeHeightBias(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(13))

	const n = 100000
	fractions := make([]float64, n)
	for i := 0; i < n; i++ {
		p := sampleTreePosition(&cfg.Tree, rng)
		h := (p.Y() - cfg.Tree.YOffset + cfg.Tree.Height/2) / cfg.Tree.Height
		if h < -1e-4 || h > 1+1e-4 {
			t.Fatalf("height fraction %v out of [0,1]", h)
		}
		fractions[i] = float64(h)
	}

	sort.Float64s(fractions)
	if median := fractions[n/2]; median >= 0.5 {
		t.Errorf("median height fraction %v, expected below 0.5", median)
	}
}

func TestTreePositionWithinTaper(t *testing.T) {
	cfg := testConfig()
	rng := rand.New(rand.NewSource(17))

	for i := 0; i < 10000; i++ {
		p := sampleTreePosition(&cfg.Tree, rng)
		h := (p.Y() - cfg.Tree.YOffset + cfg.Tree.Height/2) / cfg.Tree.Height
		taper := float64((1 - h) * cfg.Tree.BaseRadius)
		radial := math.Hypot(float64(p.X()), float64(p.Z()))
		if radial > taper+1e-4 {
			t.Fatalf("sample %d: radial %v exceeds taper %v at height fraction %v", i, radial, taper, h)
		}
	}
}
