// Package sampler converts triangle meshes into fixed-size surface point clouds.
package sampler

import (
	"math/rand"
	"sort"

	"github.com/chewxy/math32"

	"github.com/Faultbox/morphfield/internal/engine/mesh"
)

// Sample draws count points from the surface of m, with per-triangle
// probability proportional to triangle area. The result is a flat x,y,z array
// of length count*3, stable for the lifetime of the cloud.
//
// Returns nil when the mesh has no triangles or zero total area; the caller
// treats the shape as unavailable.
func Sample(m *mesh.Mesh, count int) []float32 {
	if m == nil || m.IsEmpty() || count <= 0 {
		return nil
	}

	// Cumulative area table over all triangles. Accumulated in float64 so
	// many small triangles don't vanish below float32 precision.
	tris := m.TriangleCount()
	cumulative := make([]float64, tris)
	var total float64
	for t := 0; t < tris; t++ {
		a, b, c := m.Triangle(t)
		total += float64(mesh.TriangleArea(a, b, c))
		cumulative[t] = total
	}
	if total <= 0 {
		return nil
	}

	points := make([]float32, 0, count*3)
	for i := 0; i < count; i++ {
		// Area-weighted triangle pick
		target := rand.Float64() * total
		t := sort.SearchFloat64s(cumulative, target)
		if t >= tris {
			t = tris - 1
		}

		a, b, c := m.Triangle(t)

		// Uniform point in the triangle. The sqrt parametrization avoids
		// clustering toward corner a.
		r1 := rand.Float32()
		r2 := rand.Float32()
		sq := math32.Sqrt(r1)
		u := 1 - sq
		v := sq * (1 - r2)
		w := sq * r2

		points = append(points,
			a.X*u+b.X*v+c.X*w,
			a.Y*u+b.Y*v+c.Y*w,
			a.Z*u+b.Z*v+c.Z*w,
		)
	}
	return points
}
