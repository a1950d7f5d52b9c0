package starpile

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	noiseAmplitude = 0.2
	breatheDepth   = 0.1
	groupSpinRate  = 0.05
)

// Evaluate writes one frame of instance transforms and colors for the group.
// t is the blend factor, elapsed the scene clock, dt the frame delta.
//
// The group spin always advances; instance writes are skipped while no
// buffer is attached and retried naturally on the next tick. A buffer of the
// wrong length is a construction bug and panics.
func (g *ParticleGroup) Evaluate(t, elapsed, dt float32) {
	g.spinAngle += dt * groupSpinRate
	g.Transform.Rotation = mgl32.QuatRotate(g.spinAngle, mgl32.Vec3{0, 1, 0})
	g.Transform.Dirty = true

	buf := g.Buffer
	if buf == nil {
		return
	}
	if len(buf.Transforms) != g.Count() || len(buf.Colors) != g.Count() {
		panic(fmt.Sprintf("starpile: %s group count %d, buffer %d/%d",
			g.Class, g.Count(), len(buf.Transforms), len(buf.Colors)))
	}

	// Wobble fades out as the pile assembles so the silhouette reads clean.
	amp := noiseAmplitude * (1 - t)

	for i := 0; i < g.Count(); i++ {
		fi := float32(i)
		speed := g.noiseSpeed[i]

		pos := lerpVec3(g.scatterPos[i], g.treePos[i], t)
		pos[0] += sin32(elapsed*speed+fi) * amp
		pos[1] += cos32(elapsed*speed*0.5+fi) * amp
		if g.drift != nil {
			pos = pos.Add(g.drift.Offset(g.scatterPos[i], elapsed).Mul(1 - t))
		}

		rot := mgl32.QuatSlerp(g.scatterRot[i], g.treeRot[i], t)

		breathe := 1 + breatheDepth*sin32(elapsed*2+fi)
		s := g.scale[i] * breathe

		buf.Transforms[i] = mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
			Mul4(rot.Mat4()).
			Mul4(mgl32.Scale3D(s, s, s))
		buf.Colors[i] = g.color[i]
	}

	buf.Dirty = true
}

// Endpoint-exact: the scatter configuration at t=0, the tree at t=1.
func lerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return a.Mul(1 - t).Add(b.Mul(t))
}

func sin32(x float32) float32 { return float32(math.Sin(float64(x))) }
func cos32(x float32) float32 { return float32(math.Cos(float64(x))) }
