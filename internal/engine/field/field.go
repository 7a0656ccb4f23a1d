// Package field computes the pointer-driven displacement applied to particles
// on top of their tweened base positions. The displacement is recomputed from
// scratch every frame and never written back into the particle buffer, so
// moving the pointer away removes the effect completely on the next frame.
package field

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/morphfield/pkg/math"
)

const twoPi = 2 * math32.Pi

// NoPointer is the pointer position used while the cursor is off the surface.
// It sits far outside any falloff radius, so every particle sees zero
// displacement without a separate code path.
var NoPointer = math.Vec3{X: 1e6, Y: 1e6, Z: 1e6}

// Displace returns the additive offset for one particle. seed is the stable
// per-particle random value in [0,1) assigned at buffer creation; timeMs is
// milliseconds since the experience started. Pure function of its inputs.
func Displace(pos math.Vec3, seed float32, pointer math.Vec3, radius, strength, timeMs float32) math.Vec3 {
	delta := pos.Sub(pointer)
	dist := delta.Length()

	// Effective radius jitters up to +50% per particle so the field edge
	// is ragged rather than a clean sphere.
	limit := radius * (1.2 + seed*0.5)
	if limit <= 0 || dist >= limit {
		return math.Vec3{}
	}

	// Cubic hermite falloff: 1 at the pointer, 0 at the jittered limit.
	t := 1 - dist/limit
	falloff := t * t * (3 - 2*t)
	if falloff == 0 {
		return math.Vec3{}
	}

	repel := delta.Normalize()

	slow := timeMs * 0.001
	phase := seed * twoPi
	drift := math.Vec3{
		X: math32.Sin(pos.X*0.15 + slow + phase),
		Y: math32.Cos(pos.Y*0.15 + slow*1.3 + phase + 2),
		Z: math32.Sin(pos.Z*0.15 + slow*0.7 + phase + 4),
	}

	// Mostly drift, a little repulsion. Pure repulsion reads as a rigid
	// force field; the drift plus per-particle phase keeps it organic.
	dir := repel.Scale(0.3).Add(drift.Scale(0.7)).Normalize()

	pulse := 0.8 + 0.2*math32.Sin(slow+phase)
	return dir.Scale(falloff * strength * pulse)
}
