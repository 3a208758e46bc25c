package loaders

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
	"github.com/df07/go-adaptive-raytracer/pkg/geometry"
)

var (
	// ErrParse is returned for malformed mesh input, such as a non-numeric coordinate
	ErrParse = errors.New("mesh parse error")

	// ErrIndex is returned when a face references a vertex that does not exist
	ErrIndex = errors.New("mesh vertex index out of range")

	// ErrEmptyMesh is returned when a mesh file contains no faces
	ErrEmptyMesh = errors.New("mesh has no faces")
)

// MeshData contains the raw vertex and face data read from a mesh file
type MeshData struct {
	Vertices []core.Vec3
	Faces    [][3]int // Zero-based vertex indices, one entry per triangle
}

// addPolygon validates a polygon's vertex indices and fan-triangulates it
func (d *MeshData) addPolygon(indices []int) error {
	if len(indices) < 3 {
		return fmt.Errorf("%w: face needs at least 3 vertices, got %d", ErrParse, len(indices))
	}
	for _, idx := range indices {
		if idx < 0 || idx >= len(d.Vertices) {
			return fmt.Errorf("%w: vertex %d referenced with only %d vertices defined", ErrIndex, idx+1, len(d.Vertices))
		}
	}
	for i := 1; i+1 < len(indices); i++ {
		d.Faces = append(d.Faces, [3]int{indices[0], indices[i], indices[i+1]})
	}
	return nil
}

// Bounds returns the local-space bounding box of every vertex
func (d *MeshData) Bounds() core.AABB {
	if len(d.Vertices) == 0 {
		return core.AABB{}
	}
	return core.NewAABBFromPoints(d.Vertices...)
}

// Mesh builds a geometry mesh placed in the world at offset
func (d *MeshData) Mesh(offset core.Vec3) (*geometry.Mesh, error) {
	if len(d.Faces) == 0 {
		return nil, ErrEmptyMesh
	}

	triangles := make([]*geometry.Triangle, len(d.Faces))
	for i, face := range d.Faces {
		triangles[i] = geometry.NewTriangle(d.Vertices[face[0]], d.Vertices[face[1]], d.Vertices[face[2]])
	}

	return geometry.NewMesh(triangles, offset, d.Bounds().Translate(offset)), nil
}

// ParseMesh reads an OBJ mesh from r and places it at offset
func ParseMesh(r io.Reader, offset core.Vec3) (*geometry.Mesh, error) {
	data, err := ParseOBJ(r)
	if err != nil {
		return nil, err
	}
	return data.Mesh(offset)
}

// LoadMesh loads a mesh file and places it at offset. Files ending in .ply
// are read as PLY; anything else is read as OBJ.
func LoadMesh(path string, offset core.Vec3) (*geometry.Mesh, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mesh file: %w", err)
	}
	defer file.Close()

	var data *MeshData
	if strings.EqualFold(filepath.Ext(path), ".ply") {
		data, err = ParsePLY(file)
	} else {
		data, err = ParseOBJ(file)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	mesh, err := data.Mesh(offset)
	if err != nil {
		return nil, fmt.Errorf("failed to build mesh from %s: %w", path, err)
	}
	return mesh, nil
}
