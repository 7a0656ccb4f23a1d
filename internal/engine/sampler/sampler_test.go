package sampler

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/Faultbox/morphfield/internal/engine/mesh"
)

func TestSampleCount(t *testing.T) {
	m := mesh.Sphere(100, 12, 16)
	pts := Sample(m, 5000)
	if len(pts) != 5000*3 {
		t.Fatalf("Sample returned %d floats, want %d", len(pts), 5000*3)
	}
}

func TestSampleEmptyMesh(t *testing.T) {
	if pts := Sample(&mesh.Mesh{}, 100); pts != nil {
		t.Errorf("empty mesh Sample = %d points, want nil", len(pts)/3)
	}
	if pts := Sample(nil, 100); pts != nil {
		t.Error("nil mesh should sample to nil")
	}
}

func TestSampleZeroAreaMesh(t *testing.T) {
	// Three coincident vertices: a triangle with zero area.
	m := &mesh.Mesh{
		Vertices: []float32{1, 1, 1, 1, 1, 1, 1, 1, 1},
		Indices:  []uint32{0, 1, 2},
	}
	if pts := Sample(m, 100); pts != nil {
		t.Error("zero-area mesh should sample to nil")
	}
}

func TestSampleZeroCount(t *testing.T) {
	m := mesh.Box(1, 1, 1)
	if pts := Sample(m, 0); pts != nil {
		t.Error("count 0 should sample to nil")
	}
}

func TestSamplePointsInsideTriangle(t *testing.T) {
	// Single triangle in the z=0 plane; every sample must have non-negative
	// barycentric coordinates summing to 1.
	m := &mesh.Mesh{
		Vertices: []float32{
			0, 0, 0,
			10, 0, 0,
			0, 10, 0,
		},
		Indices: []uint32{0, 1, 2},
	}

	pts := Sample(m, 2000)
	if len(pts) != 2000*3 {
		t.Fatalf("got %d floats", len(pts))
	}

	for i := 0; i < len(pts); i += 3 {
		x, y, z := pts[i], pts[i+1], pts[i+2]
		if math32.Abs(z) > 1e-5 {
			t.Fatalf("point %d off the triangle plane: z=%v", i/3, z)
		}
		// For this right triangle: u = 1 - x/10 - y/10, v = x/10, w = y/10
		v := x / 10
		w := y / 10
		u := 1 - v - w
		const eps = 1e-4
		if u < -eps || v < -eps || w < -eps {
			t.Fatalf("point %d outside triangle: bary=(%v,%v,%v)", i/3, u, v, w)
		}
	}
}

func TestSampleAreaWeighting(t *testing.T) {
	// Two disjoint triangles with a 4:1 area ratio. Expected point counts
	// converge to the same ratio.
	m := &mesh.Mesh{
		Vertices: []float32{
			// Large: legs 4x4, area 8
			0, 0, 0,
			4, 0, 0,
			0, 4, 0,
			// Small: legs 2x2, area 2, shifted to x >= 100
			100, 0, 0,
			102, 0, 0,
			100, 2, 0,
		},
		Indices: []uint32{0, 1, 2, 3, 4, 5},
	}

	const n = 40000
	pts := Sample(m, n)

	var small int
	for i := 0; i < len(pts); i += 3 {
		if pts[i] >= 100 {
			small++
		}
	}

	frac := float64(small) / float64(n)
	// Expected fraction 0.2; allow generous statistical tolerance.
	if frac < 0.17 || frac > 0.23 {
		t.Errorf("small-triangle fraction = %v, want ~0.2", frac)
	}
}
