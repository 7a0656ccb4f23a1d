package mesh

import "github.com/chewxy/math32"

// Procedural primitives so the experience runs with no assets on disk.
// All generators emit counter-clockwise triangles and leave normalization
// to the caller.

// Sphere builds a UV sphere with the given radius.
// rings and segments are clamped to a minimum of 3.
func Sphere(radius float32, rings, segments int) *Mesh {
	if rings < 3 {
		rings = 3
	}
	if segments < 3 {
		segments = 3
	}

	m := &Mesh{Name: "sphere"}

	for r := 0; r <= rings; r++ {
		phi := math32.Pi * float32(r) / float32(rings)
		y := radius * math32.Cos(phi)
		ringRadius := radius * math32.Sin(phi)

		for s := 0; s <= segments; s++ {
			theta := 2 * math32.Pi * float32(s) / float32(segments)
			x := ringRadius * math32.Cos(theta)
			z := ringRadius * math32.Sin(theta)
			m.Vertices = append(m.Vertices, x, y, z)
		}
	}

	stride := uint32(segments + 1)
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			i0 := uint32(r)*stride + uint32(s)
			i1 := i0 + stride
			m.Indices = append(m.Indices,
				i0, i1, i0+1,
				i0+1, i1, i1+1,
			)
		}
	}
	return m
}

// Torus builds a torus with the given major (ring) and minor (tube) radii.
func Torus(major, minor float32, ringSegments, tubeSegments int) *Mesh {
	if ringSegments < 3 {
		ringSegments = 3
	}
	if tubeSegments < 3 {
		tubeSegments = 3
	}

	m := &Mesh{Name: "torus"}

	for r := 0; r <= ringSegments; r++ {
		u := 2 * math32.Pi * float32(r) / float32(ringSegments)
		cu, su := math32.Cos(u), math32.Sin(u)

		for t := 0; t <= tubeSegments; t++ {
			v := 2 * math32.Pi * float32(t) / float32(tubeSegments)
			cv, sv := math32.Cos(v), math32.Sin(v)

			x := (major + minor*cv) * cu
			y := minor * sv
			z := (major + minor*cv) * su
			m.Vertices = append(m.Vertices, x, y, z)
		}
	}

	stride := uint32(tubeSegments + 1)
	for r := 0; r < ringSegments; r++ {
		for t := 0; t < tubeSegments; t++ {
			i0 := uint32(r)*stride + uint32(t)
			i1 := i0 + stride
			m.Indices = append(m.Indices,
				i0, i1, i0+1,
				i0+1, i1, i1+1,
			)
		}
	}
	return m
}

// Box builds an axis-aligned box with the given half extents.
func Box(hx, hy, hz float32) *Mesh {
	m := &Mesh{
		Name: "box",
		Vertices: []float32{
			-hx, -hy, -hz,
			hx, -hy, -hz,
			hx, hy, -hz,
			-hx, hy, -hz,
			-hx, -hy, hz,
			hx, -hy, hz,
			hx, hy, hz,
			-hx, hy, hz,
		},
		Indices: []uint32{
			0, 2, 1, 0, 3, 2, // back
			4, 5, 6, 4, 6, 7, // front
			0, 1, 5, 0, 5, 4, // bottom
			3, 6, 2, 3, 7, 6, // top
			0, 4, 7, 0, 7, 3, // left
			1, 2, 6, 1, 6, 5, // right
		},
	}
	return m
}

// Spikes builds a sphere with every other ring pushed outward, giving a
// spiked-ball silhouette that reads well as a point cloud.
func Spikes(radius float32, rings, segments int) *Mesh {
	m := Sphere(radius, rings, segments)
	m.Name = "spikes"

	stride := segments + 1
	for i := 0; i < m.VertexCount(); i++ {
		ring := i / stride
		seg := i % stride
		if (ring+seg)%2 == 0 {
			continue
		}
		m.Vertices[i*3] *= 1.45
		m.Vertices[i*3+1] *= 1.45
		m.Vertices[i*3+2] *= 1.45
	}
	return m
}
