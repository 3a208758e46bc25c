package loaders

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

// ParseOBJ reads the geometry subset of the OBJ format: "v x y z" vertex
// lines and "f i j k ..." faces with 1-based (or negative, relative)
// indices. Only the first slash-separated field of a face entry is used.
// Comments, blank lines and every other statement are ignored.
func ParseOBJ(r io.Reader) (*MeshData, error) {
	data := &MeshData{}

	scanner := bufio.NewScanner(r)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}

		var err error
		switch fields[0] {
		case "v":
			err = data.parseVertex(fields[1:])
		case "f":
			err = data.parseFace(fields[1:])
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading OBJ: %w", err)
	}
	return data, nil
}

func (d *MeshData) parseVertex(fields []string) error {
	if len(fields) < 3 {
		return fmt.Errorf("%w: vertex needs 3 coordinates, got %d", ErrParse, len(fields))
	}

	var coords [3]float64
	for i := range coords {
		value, err := strconv.ParseFloat(fields[i], 64)
		if err != nil {
			return fmt.Errorf("%w: invalid vertex coordinate %q", ErrParse, fields[i])
		}
		coords[i] = value
	}

	d.Vertices = append(d.Vertices, core.NewVec3(coords[0], coords[1], coords[2]))
	return nil
}

func (d *MeshData) parseFace(fields []string) error {
	indices := make([]int, len(fields))
	for i, field := range fields {
		token, _, _ := strings.Cut(field, "/")
		idx, err := strconv.Atoi(token)
		if err != nil {
			return fmt.Errorf("%w: invalid face index %q", ErrParse, field)
		}

		switch {
		case idx > 0:
			indices[i] = idx - 1
		case idx < 0:
			indices[i] = len(d.Vertices) + idx
		default:
			return fmt.Errorf("%w: face index 0 is not valid", ErrIndex)
		}
	}
	return d.addPolygon(indices)
}
