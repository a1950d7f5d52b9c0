package starpile

import (
	"errors"
	"fmt"
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

type ParticleClass int

const (
	ClassSphere ParticleClass = iota
	ClassCube
	ClassGem
)

func (c ParticleClass) String() string {
	switch c {
	case ClassSphere:
		return "sphere"
	case ClassCube:
		return "cube"
	case ClassGem:
		return "gem"
	}
	return fmt.Sprintf("class(%d)", int(c))
}

// ErrInvalidCount is returned when a group is requested with a negative
// particle count. A zero count is valid and yields an empty group.
var ErrInvalidCount = errors.New("particle count must not be negative")

// Per-particle generation contract.
const (
	minParticleScale = 0.5
	maxParticleScale = 1.3
	minNoiseSpeed    = 0.5
	maxNoiseSpeed    = 1.0
)

// ParticleRecord is the immutable generation output for one particle: two
// target configurations, a size, a noise phase speed and a color. Everything
// derived per frame comes from these plus the blend factor.
type ParticleRecord struct {
	ScatterPosition mgl32.Vec3
	ScatterRotation mgl32.Quat
	TreePosition    mgl32.Vec3
	TreeRotation    mgl32.Quat
	Scale           float32
	NoisePhaseSpeed float32
	Color           mgl32.Vec3
}

// ParticleGroup holds one class worth of particles. Record data is stored
// SoA and never mutated after GenerateGroup; only the instance buffer and
// the group transform change per frame. The buffer starts nil and is
// attached by the harness once its GPU side exists.
type ParticleGroup struct {
	Class     ParticleClass
	Transform *Transform
	Buffer    *InstanceBuffer

	scatterPos []mgl32.Vec3
	scatterRot []mgl32.Quat
	treePos    []mgl32.Vec3
	treeRot    []mgl32.Quat
	scale      []float32
	noiseSpeed []float32
	color      []mgl32.Vec3

	spinAngle float32
	drift     *DriftField
}

func (g *ParticleGroup) Count() int { return len(g.scatterPos) }

// Record returns a copy of particle i's generation data.
func (g *ParticleGroup) Record(i int) ParticleRecord {
	return ParticleRecord{
		ScatterPosition: g.scatterPos[i],
		ScatterRotation: g.scatterRot[i],
		TreePosition:    g.treePos[i],
		TreeRotation:    g.treeRot[i],
		Scale:           g.scale[i],
		NoisePhaseSpeed: g.noiseSpeed[i],
		Color:           g.color[i],
	}
}

// InstanceBuffer is the per-group hand-off surface for instanced rendering:
// one transform and one color per particle. Dirty flips to true exactly once
// per evaluated frame; the harness clears it after upload.
type InstanceBuffer struct {
	Transforms []mgl32.Mat4
	Colors     []mgl32.Vec3
	Dirty      bool
}

func NewInstanceBuffer(count int) *InstanceBuffer {
	return &InstanceBuffer{
		Transforms: make([]mgl32.Mat4, count),
		Colors:     make([]mgl32.Vec3, count),
	}
}

// GenerateGroup produces the two target configurations and the color for
// every particle of a class. Generation is pure: the same rand stream yields
// the same group. Arrays are sized here once and never resized.
func GenerateGroup(class ParticleClass, count int, cfg *FieldConfig, rng *rand.Rand) (*ParticleGroup, error) {
	if count < 0 {
		return nil, fmt.Errorf("generate %s group: %w (got %d)", class, ErrInvalidCount, count)
	}
	palette, err := cfg.paletteFor(class)
	if err != nil {
		return nil, fmt.Errorf("generate %s group: %w", class, err)
	}

	g := &ParticleGroup{
		Class:      class,
		Transform:  NewTransform(),
		scatterPos: make([]mgl32.Vec3, count),
		scatterRot: make([]mgl32.Quat, count),
		treePos:    make([]mgl32.Vec3, count),
		treeRot:    make([]mgl32.Quat, count),
		scale:      make([]float32, count),
		noiseSpeed: make([]float32, count),
		color:      make([]mgl32.Vec3, count),
	}

	for i := 0; i < count; i++ {
		g.scatterPos[i] = sampleScatterPosition(cfg.Scatter.Radius, rng)
		g.scatterRot[i] = sampleOrientation(rng)
		g.treePos[i] = sampleTreePosition(&cfg.Tree, rng)
		g.treeRot[i] = sampleOrientation(rng)
		g.scale[i] = lerp32(minParticleScale, maxParticleScale, rng.Float32())
		g.noiseSpeed[i] = lerp32(minNoiseSpeed, maxNoiseSpeed, rng.Float32())
		g.color[i] = palette.Pick(rng.Float32())
	}

	return g, nil
}

// Uniform over the ball volume: radius cbrt-weighted, direction from the
// usual (theta, acos) spherical draw.
func sampleScatterPosition(radius float32, rng *rand.Rand) mgl32.Vec3 {
	r := float64(radius) * math.Cbrt(rng.Float64())
	theta := 2 * math.Pi * rng.Float64()
	phi := math.Acos(2*rng.Float64() - 1)

	sinPhi := math.Sin(phi)
	return mgl32.Vec3{
		float32(r * sinPhi * math.Cos(theta)),
		float32(r * math.Cos(phi)),
		float32(r * sinPhi * math.Sin(theta)),
	}
}

// Conical pile: height fraction biased toward the base, radius tapering
// linearly to the apex, mass pulled toward the trunk by the sqrt draw.
func sampleTreePosition(tree *TreeConfig, rng *rand.Rand) mgl32.Vec3 {
	h := float32(math.Pow(rng.Float64(), float64(tree.HeightBias)))
	y := -tree.Height/2 + h*tree.Height + tree.YOffset

	taper := (1 - h) * tree.BaseRadius
	radius := taper * (tree.CoreFraction + (1-tree.CoreFraction)*float32(math.Sqrt(rng.Float64())))
	angle := 2 * math.Pi * rng.Float64()

	return mgl32.Vec3{
		radius * float32(math.Cos(angle)),
		y,
		radius * float32(math.Sin(angle)),
	}
}

func sampleOrientation(rng *rand.Rand) mgl32.Quat {
	return mgl32.AnglesToQuat(
		float32(2*math.Pi*rng.Float64()),
		float32(2*math.Pi*rng.Float64()),
		float32(2*math.Pi*rng.Float64()),
		mgl32.XYZ,
	)
}
