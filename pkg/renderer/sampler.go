package renderer

import (
	"math"
	"math/rand"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
	"github.com/df07/go-adaptive-raytracer/pkg/integrator"
	"github.com/df07/go-adaptive-raytracer/pkg/scene"
)

// PixelAccumulator tracks sampling statistics for a single pixel
type PixelAccumulator struct {
	Mean            core.Vec3 // Running mean color
	StdDev          float64   // Corrected sample standard deviation of the color
	SampleCount     int       // Number of samples taken
	Iterations      int       // Number of batches taken
	NormalAgreement bool      // Every sample hit geometry with consistent normals
	AverageNormal   core.Vec3 // Mean hit normal, valid when NormalAgreement is set

	m2 float64 // Sum of squared distances from the mean
}

// AddSample folds a color sample into the running statistics
func (p *PixelAccumulator) AddSample(color core.Vec3) {
	p.SampleCount++
	delta := color.Subtract(p.Mean)
	p.Mean = p.Mean.Add(delta.Divide(float64(p.SampleCount)))
	p.m2 += delta.Dot(color.Subtract(p.Mean))
	if p.m2 < 0 {
		p.m2 = 0
	}

	if p.SampleCount > 1 {
		p.StdDev = math.Sqrt(p.m2 / float64(p.SampleCount-1))
	}
}

// StandardError returns the standard error of the mean. Fewer than two
// samples carry no spread information, so the error is infinite.
func (p *PixelAccumulator) StandardError() float64 {
	if p.SampleCount < 2 {
		return math.Inf(1)
	}
	return p.StdDev / math.Sqrt(float64(p.SampleCount))
}

// AdaptiveSampler takes batches of samples for a pixel until its mean converges
type AdaptiveSampler struct {
	camera     RayGenerator
	scene      *scene.Scene
	integrator integrator.Integrator
	config     Config
}

// NewAdaptiveSampler creates a sampler for one render
func NewAdaptiveSampler(camera RayGenerator, scn *scene.Scene, integ integrator.Integrator, config Config) *AdaptiveSampler {
	return &AdaptiveSampler{
		camera:     camera,
		scene:      scn,
		integrator: integ,
		config:     config,
	}
}

// SamplePixel renders pixel (i, j), with j counted from the bottom row
func (s *AdaptiveSampler) SamplePixel(i, j int, random *rand.Rand) PixelAccumulator {
	var acc PixelAccumulator

	// Hit normals, collected only while every sample has hit something
	normals := make([]core.Vec3, 0, s.config.SamplesPerBatch)
	allHit := true

	for {
		for k := 0; k < s.config.SamplesPerBatch; k++ {
			u := (float64(i) + random.Float64()) / jitterSpan(s.config.Width)
			v := (float64(j) + random.Float64()) / jitterSpan(s.config.Height)

			color, hit := s.integrator.RayColor(s.camera.GetRay(u, v), s.scene, random)
			acc.AddSample(color)

			if hit == nil {
				allHit = false
			} else if allHit {
				normals = append(normals, hit.Normal)
			}
		}
		acc.Iterations++

		if !s.config.AdaptiveSampling ||
			acc.Iterations >= s.config.MaxIterations ||
			acc.StandardError() <= s.config.ConvergenceThreshold {
			break
		}
	}

	if allHit {
		acc.AverageNormal, acc.NormalAgreement = agreeingNormal(normals, s.config.NormalAgreementThreshold)
	}
	return acc
}

// jitterSpan maps pixel indices so the last pixel lands on the viewport edge
func jitterSpan(size int) float64 {
	if size < 2 {
		return 1
	}
	return float64(size - 1)
}

// agreeingNormal returns the mean of normals and whether every normal lies
// within threshold of it
func agreeingNormal(normals []core.Vec3, threshold float64) (core.Vec3, bool) {
	if len(normals) == 0 {
		return core.Vec3{}, false
	}

	var sum core.Vec3
	for _, n := range normals {
		sum = sum.Add(n)
	}
	average := sum.Multiply(1.0 / float64(len(normals)))

	for _, n := range normals {
		if n.Subtract(average).Length() > threshold {
			return core.Vec3{}, false
		}
	}
	return average, true
}
