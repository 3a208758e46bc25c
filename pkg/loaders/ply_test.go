package loaders

import (
	"bytes"
	"encoding/binary"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

// binaryQuadPLY returns a little-endian PLY with a unit quad stored as one polygon
func binaryQuadPLY(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	buf.WriteString("ply\n")
	buf.WriteString("format binary_little_endian 1.0\n")
	buf.WriteString("comment test quad\n")
	buf.WriteString("element vertex 4\n")
	buf.WriteString("property float x\n")
	buf.WriteString("property float y\n")
	buf.WriteString("property float z\n")
	buf.WriteString("property uchar red\n")
	buf.WriteString("element face 1\n")
	buf.WriteString("property list uchar int vertex_indices\n")
	buf.WriteString("end_header\n")

	vertices := [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}}
	for _, v := range vertices {
		if err := binary.Write(&buf, binary.LittleEndian, v); err != nil {
			t.Fatalf("Failed to write vertex: %v", err)
		}
		buf.WriteByte(200) // red, ignored
	}

	buf.WriteByte(4)
	if err := binary.Write(&buf, binary.LittleEndian, [4]int32{0, 1, 2, 3}); err != nil {
		t.Fatalf("Failed to write face: %v", err)
	}
	return buf.Bytes()
}

func TestParsePLY_BinaryLittleEndian(t *testing.T) {
	data, err := ParsePLY(bytes.NewReader(binaryQuadPLY(t)))
	if err != nil {
		t.Fatalf("ParsePLY failed: %v", err)
	}

	if len(data.Vertices) != 4 {
		t.Fatalf("Expected 4 vertices, got %d", len(data.Vertices))
	}
	if data.Vertices[2] != core.NewVec3(1, 1, 0) {
		t.Errorf("Unexpected vertex %v", data.Vertices[2])
	}

	expected := [][3]int{{0, 1, 2}, {0, 2, 3}}
	if len(data.Faces) != 2 || data.Faces[0] != expected[0] || data.Faces[1] != expected[1] {
		t.Errorf("Expected faces %v, got %v", expected, data.Faces)
	}
}

func TestParsePLY_ASCII(t *testing.T) {
	input := `ply
format ascii 1.0
element vertex 3
property double x
property double y
property double z
element face 1
property list uchar uint vertex_indices
end_header
0 0 -1
1.5 0 -1
0 2.5 -1
3 0 1 2
`
	data, err := ParsePLY(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ParsePLY failed: %v", err)
	}
	if len(data.Vertices) != 3 || data.Vertices[2] != core.NewVec3(0, 2.5, -1) {
		t.Errorf("Unexpected vertices %v", data.Vertices)
	}
	if len(data.Faces) != 1 || data.Faces[0] != [3]int{0, 1, 2} {
		t.Errorf("Unexpected faces %v", data.Faces)
	}
}

func TestParsePLY_Errors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected error
	}{
		{"missing magic", "format ascii 1.0\nend_header\n", ErrParse},
		{"missing end_header", "ply\nformat ascii 1.0\nelement vertex 1\n", ErrParse},
		{"bad element count", "ply\nformat ascii 1.0\nelement vertex many\nend_header\n", ErrParse},
		{"unsupported format", "ply\nformat binary_middle_endian 1.0\nend_header\n", ErrParse},
		{"truncated data", "ply\nformat ascii 1.0\nelement vertex 2\nproperty float x\nproperty float y\nproperty float z\nend_header\n0 0 0\n1 1\n", ErrParse},
		{
			"face index out of range",
			"ply\nformat ascii 1.0\nelement vertex 3\nproperty float x\nproperty float y\nproperty float z\n" +
				"element face 1\nproperty list uchar int vertex_indices\nend_header\n0 0 0\n1 0 0\n0 1 0\n3 0 1 3\n",
			ErrIndex,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParsePLY(strings.NewReader(tt.input)); !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
		})
	}
}

func TestLoadMesh_PLYExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "quad.PLY")
	if err := os.WriteFile(path, binaryQuadPLY(t), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}

	mesh, err := LoadMesh(path, core.NewVec3(0, 0, -3))
	if err != nil {
		t.Fatalf("LoadMesh failed: %v", err)
	}
	if mesh.TriangleCount() != 2 {
		t.Errorf("Expected 2 triangles, got %d", mesh.TriangleCount())
	}
	if mesh.BoundingBox().Min.Z != -3 {
		t.Errorf("Expected offset bounds, got %v", mesh.BoundingBox())
	}
}

func TestGetTypeSize(t *testing.T) {
	tests := []struct {
		dataType string
		expected int
	}{
		{"char", 1},
		{"uchar", 1},
		{"short", 2},
		{"ushort", 2},
		{"int", 4},
		{"uint", 4},
		{"float", 4},
		{"float32", 4},
		{"double", 8},
		{"unknown", 0},
	}

	for _, tt := range tests {
		if got := getTypeSize(tt.dataType); got != tt.expected {
			t.Errorf("getTypeSize(%q) = %d, expected %d", tt.dataType, got, tt.expected)
		}
	}
}
