package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string // Scalar type, or element type for lists
	IsList   bool
	ListType string // For list properties, the type of the count
}

// PLYElement is an element block declared in the header
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string
	Elements []PLYElement
}

// ParsePLY reads vertex positions and polygon faces from a PLY stream.
// Other elements and properties are read and discarded.
func ParsePLY(r io.Reader) (*MeshData, error) {
	reader := bufio.NewReader(r)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, err
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		values = &asciiValueReader{reader: reader}
	case "binary_little_endian":
		values = &binaryValueReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValueReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported PLY format %q", ErrParse, header.Format)
	}

	data := &MeshData{}
	for _, element := range header.Elements {
		if err := data.readPLYElement(element, values); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// parsePLYHeader parses the header up to and including end_header
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("%w: missing PLY magic number", ErrParse)
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("%w: PLY header ended without end_header", ErrParse)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid format line %q", ErrParse, strings.TrimSpace(line))
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid element line %q", ErrParse, strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count %q", ErrParse, parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("%w: property before any element", ErrParse)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			current := &header.Elements[len(header.Elements)-1]
			current.Properties = append(current.Properties, prop)
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) >= 4 && parts[0] == "list" {
		return PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}, nil
	}
	if len(parts) >= 2 && parts[0] != "list" {
		return PLYProperty{Type: parts[0], Name: parts[1]}, nil
	}
	return PLYProperty{}, fmt.Errorf("%w: invalid property definition %q", ErrParse, strings.Join(parts, " "))
}

// readPLYElement reads every item of element, keeping vertex positions and face indices
func (d *MeshData) readPLYElement(element PLYElement, values plyValueReader) error {
	for i := 0; i < element.Count; i++ {
		var position [3]float64
		var faceIndices []int

		for _, prop := range element.Properties {
			if prop.IsList {
				count, err := values.read(prop.ListType)
				if err != nil {
					return fmt.Errorf("%s %d: %w", element.Name, i, err)
				}
				if count < 0 {
					return fmt.Errorf("%s %d: %w: negative list length", element.Name, i, ErrParse)
				}
				list := make([]int, int(count))
				for j := range list {
					v, err := values.read(prop.Type)
					if err != nil {
						return fmt.Errorf("%s %d: %w", element.Name, i, err)
					}
					list[j] = int(v)
				}
				if prop.Name == "vertex_indices" || prop.Name == "vertex_index" {
					faceIndices = list
				}
				continue
			}

			v, err := values.read(prop.Type)
			if err != nil {
				return fmt.Errorf("%s %d: %w", element.Name, i, err)
			}
			switch prop.Name {
			case "x":
				position[0] = v
			case "y":
				position[1] = v
			case "z":
				position[2] = v
			}
		}

		switch element.Name {
		case "vertex":
			d.Vertices = append(d.Vertices, core.NewVec3(position[0], position[1], position[2]))
		case "face":
			if err := d.addPolygon(faceIndices); err != nil {
				return fmt.Errorf("face %d: %w", i, err)
			}
		}
	}
	return nil
}

// plyValueReader reads one scalar of a PLY type as float64
type plyValueReader interface {
	read(dataType string) (float64, error)
}

type asciiValueReader struct {
	reader *bufio.Reader
}

func (a *asciiValueReader) read(dataType string) (float64, error) {
	token, err := a.nextToken()
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid %s value %q", ErrParse, dataType, token)
	}
	return v, nil
}

// nextToken returns the next whitespace-separated token
func (a *asciiValueReader) nextToken() (string, error) {
	var sb strings.Builder
	for {
		b, err := a.reader.ReadByte()
		if err != nil {
			if err == io.EOF && sb.Len() > 0 {
				return sb.String(), nil
			}
			return "", fmt.Errorf("%w: unexpected end of PLY data", ErrParse)
		}
		if b == ' ' || b == '\t' || b == '\n' || b == '\r' {
			if sb.Len() > 0 {
				return sb.String(), nil
			}
			continue
		}
		sb.WriteByte(b)
	}
}

type binaryValueReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (b *binaryValueReader) read(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("%w: unsupported PLY type %q", ErrParse, dataType)
	}
	if _, err := io.ReadFull(b.reader, b.buf[:size]); err != nil {
		return 0, fmt.Errorf("%w: unexpected end of PLY data", ErrParse)
	}

	raw := b.buf[:size]
	switch dataType {
	case "char", "int8":
		return float64(int8(raw[0])), nil
	case "uchar", "uint8":
		return float64(raw[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(raw))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(raw)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(raw))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(raw)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(raw))), nil
	default: // double, float64
		return math.Float64frombits(b.order.Uint64(raw)), nil
	}
}

// getTypeSize returns the size in bytes of a PLY data type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "char", "uchar", "int8", "uint8":
		return 1
	case "short", "ushort", "int16", "uint16":
		return 2
	case "int", "uint", "int32", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}
