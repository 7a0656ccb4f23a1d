// Package picking converts screen-space pointer coordinates into world space.
package picking

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/morphfield/pkg/math"
)

// Ray is a world-space ray with a normalized direction.
type Ray struct {
	Origin    math.Vec3
	Direction math.Vec3
}

// ScreenToRay converts pixel coordinates to a world-space ray.
// invViewProj is the inverse of the combined view-projection matrix.
func ScreenToRay(screenX, screenY, viewportW, viewportH float32, invViewProj math.Mat4) Ray {
	// Normalized device coords, Y flipped (screen Y grows downward).
	ndcX := 2.0*screenX/viewportW - 1.0
	ndcY := 1.0 - 2.0*screenY/viewportH

	nearWorld := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, -1.0, 1.0})
	farWorld := invViewProj.MulVec4(math.Vec4{ndcX, ndcY, 1.0, 1.0})

	if nearWorld[3] != 0 {
		nearWorld[0] /= nearWorld[3]
		nearWorld[1] /= nearWorld[3]
		nearWorld[2] /= nearWorld[3]
	}
	if farWorld[3] != 0 {
		farWorld[0] /= farWorld[3]
		farWorld[1] /= farWorld[3]
		farWorld[2] /= farWorld[3]
	}

	origin := math.Vec3{X: nearWorld[0], Y: nearWorld[1], Z: nearWorld[2]}
	dir := math.Vec3{
		X: farWorld[0] - nearWorld[0],
		Y: farWorld[1] - nearWorld[1],
		Z: farWorld[2] - nearWorld[2],
	}.Normalize()

	return Ray{Origin: origin, Direction: dir}
}

// IntersectPlaneZ intersects the ray with the plane z = planeZ, the plane the
// particle cloud lives on. Returns false when the ray is parallel to the
// plane or the hit is behind the origin.
func (r Ray) IntersectPlaneZ(planeZ float32) (math.Vec3, bool) {
	if math32.Abs(r.Direction.Z) < 0.001 {
		return math.Vec3{}, false
	}

	t := (planeZ - r.Origin.Z) / r.Direction.Z
	if t < 0 {
		return math.Vec3{}, false
	}

	return r.Origin.Add(r.Direction.Scale(t)), true
}

// IntersectSphere intersects the ray with a sphere. Used to keep the pointer
// tracking the cloud's silhouette when the ray misses the base plane shallowly.
func (r Ray) IntersectSphere(center math.Vec3, radius float32) (math.Vec3, bool) {
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius

	disc := b*b - c
	if disc < 0 {
		return math.Vec3{}, false
	}

	t := -b - math32.Sqrt(disc)
	if t < 0 {
		t = -b + math32.Sqrt(disc)
		if t < 0 {
			return math.Vec3{}, false
		}
	}

	return r.Origin.Add(r.Direction.Scale(t)), true
}
