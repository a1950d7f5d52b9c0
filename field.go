package starpile

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
)

type GroupId string

func newGroupId() GroupId {
	return GroupId(uuid.NewString())
}

// Field owns the three particle groups, the shared blend state and the
// accent object. The render harness drives it with one synchronous
// AdvanceFrame per tick and reads the instance buffers and transforms
// afterwards; the UI layer flips the morph state between ticks.
type Field struct {
	log    Logger
	cfg    FieldConfig
	groups []*ParticleGroup
	byId   map[GroupId]*ParticleGroup
	ids    map[*ParticleGroup]GroupId
	blend  BlendState
	accent *AccentObject
	state  MorphState
}

// NewField generates all particle data up front. Pass a seeded rng for
// reproducible fields; nil falls back to the global source.
func NewField(cfg FieldConfig, log Logger, rng *rand.Rand) (*Field, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new field: %w", err)
	}
	if log == nil {
		log = NewNopLogger()
	}

	f := &Field{
		log:    log,
		cfg:    cfg,
		byId:   make(map[GroupId]*ParticleGroup),
		ids:    make(map[*ParticleGroup]GroupId),
		accent: NewAccentObject(cfg.Accent, cfg.Blend.AccentTimeConstant),
	}

	rng = ensureRand(rng)

	var drift *DriftField
	if cfg.Drift.Enabled {
		drift = NewDriftField(cfg.Drift)
	}

	classes := []struct {
		class ParticleClass
		count int
	}{
		{ClassSphere, cfg.Counts.Sphere},
		{ClassCube, cfg.Counts.Cube},
		{ClassGem, cfg.Counts.Gem},
	}
	for _, c := range classes {
		g, err := GenerateGroup(c.class, c.count, &cfg, rng)
		if err != nil {
			return nil, fmt.Errorf("new field: %w", err)
		}
		g.drift = drift
		id := newGroupId()
		f.groups = append(f.groups, g)
		f.byId[id] = g
		f.ids[g] = id
		log.Infof("generated %s group %s: %d particles", c.class, id, g.Count())
	}

	return f, nil
}

func ensureRand(rng *rand.Rand) *rand.Rand {
	if rng != nil {
		return rng
	}
	return rand.New(rand.NewSource(rand.Int63()))
}

// SetMorphState retargets the blend. The value itself never jumps; it just
// starts chasing the new target from wherever it is.
func (f *Field) SetMorphState(s MorphState) {
	if s == f.state {
		return
	}
	f.state = s
	f.accent.SetState(s)
	f.log.Debugf("morph state -> %s (blend at %.3f)", s, f.blend.Value)
}

func (f *Field) MorphState() MorphState { return f.state }

// BlendValue reports the shared group blend factor.
func (f *Field) BlendValue() float32 { return f.blend.Value }

func (f *Field) Groups() []*ParticleGroup { return f.groups }

func (f *Field) Group(id GroupId) *ParticleGroup { return f.byId[id] }

func (f *Field) GroupId(g *ParticleGroup) GroupId { return f.ids[g] }

func (f *Field) Accent() *AccentObject { return f.accent }

// Materials returns the pass-through material table for the harness.
func (f *Field) Materials() map[string]MaterialParams { return f.cfg.Materials }

// AllocateBuffers attaches a correctly sized instance buffer to every group
// that does not have one yet.
func (f *Field) AllocateBuffers() {
	for _, g := range f.groups {
		if g.Buffer == nil {
			g.Buffer = NewInstanceBuffer(g.Count())
		}
	}
}

// AdvanceFrame runs one frame of the whole field: blend advance, instance
// evaluation for every group, accent update. Runs to completion before
// returning; the caller owns the loop.
func (f *Field) AdvanceFrame(elapsed, dt float32) {
	if !isFiniteN(dt) || dt < 0 {
		dt = 0
	}

	t := f.blend.Advance(f.state == TreeShape, dt, f.cfg.Blend.GroupTimeConstant)

	for _, g := range f.groups {
		if g.Buffer == nil && f.log.DebugEnabled() {
			f.log.Debugf("%s group %s has no instance buffer yet, skipping", g.Class, f.ids[g])
		}
		g.Evaluate(t, elapsed, dt)
	}

	f.accent.Advance(elapsed, dt)
}
