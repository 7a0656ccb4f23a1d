// Package mesh provides the triangle mesh model consumed by the surface sampler.
package mesh

import (
	"github.com/chewxy/math32"

	"github.com/Faultbox/morphfield/pkg/math"
)

// Mesh is a triangulated surface with flat arrays:
// Vertices holds 3 floats per vertex (x,y,z), Indices holds 3 entries per triangle.
type Mesh struct {
	Name     string
	Vertices []float32
	Indices  []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty reports whether the mesh has no triangles.
func (m *Mesh) IsEmpty() bool {
	return len(m.Indices) < 3 || len(m.Vertices) < 9
}

// Vertex returns vertex i as a Vec3.
func (m *Mesh) Vertex(i int) math.Vec3 {
	return math.Vec3{
		X: m.Vertices[i*3],
		Y: m.Vertices[i*3+1],
		Z: m.Vertices[i*3+2],
	}
}

// Triangle returns the three corner positions of triangle t.
func (m *Mesh) Triangle(t int) (a, b, c math.Vec3) {
	return m.Vertex(int(m.Indices[t*3])),
		m.Vertex(int(m.Indices[t*3+1])),
		m.Vertex(int(m.Indices[t*3+2]))
}

// Bounds returns the axis-aligned bounding box of the mesh.
// Returns zero vectors for an empty mesh.
func (m *Mesh) Bounds() (min, max math.Vec3) {
	if len(m.Vertices) < 3 {
		return math.Vec3{}, math.Vec3{}
	}

	min = math.Vec3{X: 1e10, Y: 1e10, Z: 1e10}
	max = math.Vec3{X: -1e10, Y: -1e10, Z: -1e10}

	for i := 0; i+2 < len(m.Vertices); i += 3 {
		x, y, z := m.Vertices[i], m.Vertices[i+1], m.Vertices[i+2]
		if x < min.X {
			min.X = x
		}
		if y < min.Y {
			min.Y = y
		}
		if z < min.Z {
			min.Z = z
		}
		if x > max.X {
			max.X = x
		}
		if y > max.Y {
			max.Y = y
		}
		if z > max.Z {
			max.Z = z
		}
	}
	return min, max
}

// SurfaceArea returns the total triangle area of the mesh.
func (m *Mesh) SurfaceArea() float32 {
	var total float32
	for t := 0; t < m.TriangleCount(); t++ {
		a, b, c := m.Triangle(t)
		total += TriangleArea(a, b, c)
	}
	return total
}

// TriangleArea returns the area of the triangle (a, b, c):
// half the magnitude of the cross product of two edges.
func TriangleArea(a, b, c math.Vec3) float32 {
	return b.Sub(a).Cross(c.Sub(a)).Length() * 0.5
}

// Normalize recenters the mesh at the origin and uniformly rescales it so its
// bounding-box diagonal equals targetDiagonal. Runs in place, once per loaded
// asset, before sampling. A degenerate (zero-diagonal) mesh is left unscaled
// but still recentered.
func (m *Mesh) Normalize(targetDiagonal float32) {
	if len(m.Vertices) < 3 {
		return
	}

	min, max := m.Bounds()
	center := min.Add(max).Scale(0.5)
	diag := max.Sub(min).Length()

	scale := float32(1)
	if diag > 1e-6 {
		scale = targetDiagonal / diag
	}

	for i := 0; i+2 < len(m.Vertices); i += 3 {
		m.Vertices[i] = (m.Vertices[i] - center.X) * scale
		m.Vertices[i+1] = (m.Vertices[i+1] - center.Y) * scale
		m.Vertices[i+2] = (m.Vertices[i+2] - center.Z) * scale
	}
}

// Diagonal returns the current bounding-box diagonal length.
func (m *Mesh) Diagonal() float32 {
	min, max := m.Bounds()
	d := max.Sub(min)
	return math32.Sqrt(d.X*d.X + d.Y*d.Y + d.Z*d.Z)
}
