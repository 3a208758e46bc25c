package renderer

import (
	"math"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

// Floor on the center pixel's standard deviation
const minStdDev = 1e-8

// Denoiser smooths pixels with the neighbors whose surface normals agree
type Denoiser struct {
	smoothSize int
	baseWeight float64
}

// NewDenoiser creates a denoiser using the smoothing settings of config
func NewDenoiser(config Config) *Denoiser {
	return &Denoiser{
		smoothSize: config.SmoothSize,
		baseWeight: config.SmoothingBaseWeight,
	}
}

// Apply denoises a whole buffer, indexed [row][column] with row 0 at the bottom
func (d *Denoiser) Apply(buffers [][]PixelAccumulator) *Image {
	height := len(buffers)
	width := 0
	if height > 0 {
		width = len(buffers[0])
	}

	img := NewImage(width, height)
	for j := 0; j < height; j++ {
		d.DenoiseRow(buffers, j, img.Pixels[j])
	}
	return img
}

// DenoiseRow writes the filtered colors of row j into out. It only reads
// buffers, so rows can be processed concurrently.
func (d *Denoiser) DenoiseRow(buffers [][]PixelAccumulator, j int, out []core.Vec3) {
	for i := range buffers[j] {
		out[i] = d.DenoisePixel(buffers, i, j)
	}
}

// DenoisePixel returns the filtered color of pixel (i, j)
func (d *Denoiser) DenoisePixel(buffers [][]PixelAccumulator, i, j int) core.Vec3 {
	center := &buffers[j][i]
	if !center.NormalAgreement {
		return center.Mean
	}

	half := d.smoothSize / 2
	var sum core.Vec3
	var totalWeight float64

	for dj := -half; dj <= half; dj++ {
		y := j + dj
		if y < 0 || y >= len(buffers) {
			continue
		}
		for di := -half; di <= half; di++ {
			x := i + di
			if x < 0 || x >= len(buffers[y]) {
				continue
			}

			var weight float64
			if di == 0 && dj == 0 {
				weight = d.baseWeight / math.Max(center.StdDev, minStdDev)
			} else if neighbor := &buffers[y][x]; neighbor.NormalAgreement {
				weight = math.Max(0, center.AverageNormal.Dot(neighbor.AverageNormal))
			}

			sum = sum.Add(buffers[y][x].Mean.Multiply(weight))
			totalWeight += weight
		}
	}

	if totalWeight == 0 {
		return center.Mean
	}
	return sum.Multiply(1.0 / totalWeight)
}
