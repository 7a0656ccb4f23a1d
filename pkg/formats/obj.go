// Package formats provides parsers for mesh file formats.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrNoOBJVertices      = errors.New("OBJ contains no vertices")
	ErrMalformedOBJLine   = errors.New("malformed OBJ line")
	ErrOBJIndexOutOfRange = errors.New("OBJ face index out of range")
)

// OBJ represents a parsed Wavefront OBJ model. Faces are triangulated;
// polygons with more than three vertices are split as a triangle fan.
// Texture coordinates, normals, and materials are skipped.
type OBJ struct {
	Name      string
	Positions []float32 // x, y, z per vertex
	Indices   []uint32  // triangle list
}

// VertexCount returns the number of vertices.
func (o *OBJ) VertexCount() int {
	return len(o.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (o *OBJ) TriangleCount() int {
	return len(o.Indices) / 3
}

// ParseOBJ parses a Wavefront OBJ model from raw bytes.
func ParseOBJ(data []byte) (*OBJ, error) {
	obj := &OBJ{}

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if err := obj.parseVertex(fields[1:]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		case "f":
			if err := obj.parseFace(fields[1:]); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
		case "o", "g":
			if obj.Name == "" && len(fields) > 1 {
				obj.Name = fields[1]
			}
		default:
			// vt, vn, s, usemtl, mtllib and anything else: not needed
			// for point sampling.
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading OBJ: %w", err)
	}

	if len(obj.Positions) == 0 {
		return nil, ErrNoOBJVertices
	}

	return obj, nil
}

// ParseOBJFile parses a Wavefront OBJ model from disk.
func ParseOBJFile(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading OBJ file: %w", err)
	}
	return ParseOBJ(data)
}

func (o *OBJ) parseVertex(fields []string) error {
	// "v x y z [w]" - w is ignored
	if len(fields) < 3 {
		return fmt.Errorf("%w: vertex needs 3 coordinates", ErrMalformedOBJLine)
	}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return fmt.Errorf("%w: vertex coordinate %q", ErrMalformedOBJLine, fields[i])
		}
		o.Positions = append(o.Positions, float32(v))
	}
	return nil
}

func (o *OBJ) parseFace(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("%w: face needs at least 3 vertices", ErrMalformedOBJLine)
	}

	idx := make([]uint32, len(fields))
	for i, f := range fields {
		v, err := o.resolveFaceIndex(f)
		if err != nil {
			return err
		}
		idx[i] = v
	}

	// Triangle fan: (0,1,2), (0,2,3), ...
	for i := 2; i < len(idx); i++ {
		o.Indices = append(o.Indices, idx[0], idx[i-1], idx[i])
	}
	return nil
}

// resolveFaceIndex parses one face vertex ("7", "7/2", "7//3", "7/2/3") and
// returns a zero-based position index. Negative indices count back from the
// most recently parsed vertex.
func (o *OBJ) resolveFaceIndex(field string) (uint32, error) {
	s := field
	if slash := strings.IndexByte(s, '/'); slash >= 0 {
		s = s[:slash]
	}

	n, err := strconv.Atoi(s)
	if err != nil || n == 0 {
		return 0, fmt.Errorf("%w: face index %q", ErrMalformedOBJLine, field)
	}

	count := len(o.Positions) / 3
	if n < 0 {
		n = count + n + 1
	}
	if n < 1 || n > count {
		return 0, fmt.Errorf("%w: index %d with %d vertices", ErrOBJIndexOutOfRange, n, count)
	}
	return uint32(n - 1), nil
}
