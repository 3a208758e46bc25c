package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

// Image is a buffer of linear RGB colors indexed [row][column], with row 0
// being the bottom scanline
type Image struct {
	Width  int
	Height int
	Pixels [][]core.Vec3
}

// NewImage creates a black image
func NewImage(width, height int) *Image {
	pixels := make([][]core.Vec3, height)
	for j := range pixels {
		pixels[j] = make([]core.Vec3, width)
	}
	return &Image{Width: width, Height: height, Pixels: pixels}
}

// At returns the color of pixel (i, j)
func (img *Image) At(i, j int) core.Vec3 {
	return img.Pixels[j][i]
}

// ToRGBA converts to a gamma corrected top-down RGBA image
func (img *Image) ToRGBA() *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	for j := 0; j < img.Height; j++ {
		y := img.Height - 1 - j
		for i := 0; i < img.Width; i++ {
			c := img.Pixels[j][i]
			rgba.SetRGBA(i, y, color.RGBA{
				R: uint8(encodeChannel(c.X)),
				G: uint8(encodeChannel(c.Y)),
				B: uint8(encodeChannel(c.Z)),
				A: 255,
			})
		}
	}
	return rgba
}

// encodeChannel applies square root gamma and scales to [0,255]
func encodeChannel(c float64) int {
	if !(c > 0) {
		return 0
	}
	return int(math.Sqrt(math.Min(c, 1)) * 255)
}

// WritePPM writes img as a plain text PPM. Rows are written from the highest
// index down, so the file reads top scanline first.
func WritePPM(w io.Writer, img *Image) error {
	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "P3\n%d %d\n255\n", img.Width, img.Height); err != nil {
		return err
	}
	for j := img.Height - 1; j >= 0; j-- {
		for i := 0; i < img.Width; i++ {
			c := img.Pixels[j][i]
			if _, err := fmt.Fprintf(bw, "%d %d %d\n", encodeChannel(c.X), encodeChannel(c.Y), encodeChannel(c.Z)); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WritePNG writes img as a PNG
func WritePNG(w io.Writer, img *Image) error {
	return png.Encode(w, img.ToRGBA())
}

// SaveImage writes img to path, as PNG for a .png extension and PPM otherwise
func SaveImage(path string, img *Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}

	write := WritePPM
	if strings.EqualFold(filepath.Ext(path), ".png") {
		write = WritePNG
	}
	if err := write(file, img); err != nil {
		file.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return file.Close()
}
