package formats

import (
	"errors"
	"testing"
)

func TestParseOBJ_Triangle(t *testing.T) {
	data := []byte(`# comment
o tri
v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 3
`)

	obj, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if obj.Name != "tri" {
		t.Errorf("expected name tri, got %q", obj.Name)
	}
	if obj.VertexCount() != 3 {
		t.Errorf("expected 3 vertices, got %d", obj.VertexCount())
	}
	if obj.TriangleCount() != 1 {
		t.Errorf("expected 1 triangle, got %d", obj.TriangleCount())
	}
	want := []uint32{0, 1, 2}
	for i, w := range want {
		if obj.Indices[i] != w {
			t.Errorf("index %d = %d, want %d", i, obj.Indices[i], w)
		}
	}
}

func TestParseOBJ_QuadFan(t *testing.T) {
	data := []byte(`v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`)

	obj, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}

	if obj.TriangleCount() != 2 {
		t.Fatalf("expected quad split into 2 triangles, got %d", obj.TriangleCount())
	}
	want := []uint32{0, 1, 2, 0, 2, 3}
	for i, w := range want {
		if obj.Indices[i] != w {
			t.Errorf("index %d = %d, want %d", i, obj.Indices[i], w)
		}
	}
}

func TestParseOBJ_SlashForms(t *testing.T) {
	data := []byte(`v 0 0 0
v 1 0 0
v 0 1 0
vt 0 0
vn 0 0 1
f 1/1 2/1/1 3//1
`)

	obj, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	if obj.TriangleCount() != 1 {
		t.Errorf("expected 1 triangle, got %d", obj.TriangleCount())
	}
}

func TestParseOBJ_NegativeIndices(t *testing.T) {
	data := []byte(`v 0 0 0
v 1 0 0
v 0 1 0
f -3 -2 -1
`)

	obj, err := ParseOBJ(data)
	if err != nil {
		t.Fatalf("ParseOBJ failed: %v", err)
	}
	want := []uint32{0, 1, 2}
	for i, w := range want {
		if obj.Indices[i] != w {
			t.Errorf("index %d = %d, want %d", i, obj.Indices[i], w)
		}
	}
}

func TestParseOBJ_IndexOutOfRange(t *testing.T) {
	data := []byte(`v 0 0 0
v 1 0 0
v 0 1 0
f 1 2 9
`)

	_, err := ParseOBJ(data)
	if !errors.Is(err, ErrOBJIndexOutOfRange) {
		t.Errorf("expected ErrOBJIndexOutOfRange, got %v", err)
	}
}

func TestParseOBJ_MalformedVertex(t *testing.T) {
	_, err := ParseOBJ([]byte("v 1.0 banana 0\n"))
	if !errors.Is(err, ErrMalformedOBJLine) {
		t.Errorf("expected ErrMalformedOBJLine, got %v", err)
	}
}

func TestParseOBJ_Empty(t *testing.T) {
	_, err := ParseOBJ([]byte("# nothing here\n"))
	if !errors.Is(err, ErrNoOBJVertices) {
		t.Errorf("expected ErrNoOBJVertices, got %v", err)
	}
}
