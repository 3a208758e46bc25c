package renderer

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
	"github.com/df07/go-adaptive-raytracer/pkg/integrator"
	"github.com/df07/go-adaptive-raytracer/pkg/scene"
)

// DefaultLogger implements core.Logger by writing to stdout
type DefaultLogger struct{}

func (dl *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewDefaultLogger creates a new default logger
func NewDefaultLogger() core.Logger {
	return &DefaultLogger{}
}

// Raytracer renders a scene with adaptive sampling followed by denoising
type Raytracer struct {
	scene    *scene.Scene
	config   Config
	sampler  *AdaptiveSampler
	denoiser *Denoiser
	logger   core.Logger
}

// NewRaytracer validates config, builds the scene's spatial index and sets
// up the sampling pipeline
func NewRaytracer(scn *scene.Scene, config Config, logger core.Logger) (*Raytracer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	start := time.Now()
	bspStats := scn.Preprocess(config.TreeDepth)
	logger.Printf("Built BSP for %d objects (%d primitives) in %v: %d nodes, %d leaves (%d empty), depth %d, %.2f objects/leaf, duplication %.2fx\n",
		bspStats.ObjectCount, scn.GetPrimitiveCount(), time.Since(start),
		bspStats.TotalNodes, bspStats.LeafNodes, bspStats.EmptyLeaves, bspStats.MaxDepth,
		bspStats.AvgLeafSize, bspStats.DuplicationFactor())

	camera := NewCamera(scn.CameraConfig, config.AspectRatio())
	integ := integrator.NewPathTracingIntegrator(integrator.Config{
		MaxBounces:    config.MaxBounces,
		MaxLightValue: config.MaxLightValue,
	})

	return &Raytracer{
		scene:    scn,
		config:   config,
		sampler:  NewAdaptiveSampler(camera, scn, integ, config),
		denoiser: NewDenoiser(config),
		logger:   logger,
	}, nil
}

// Render produces the final image. Every row is sampled before any row is
// denoised.
func (rt *Raytracer) Render() (*Image, RenderStats) {
	width, height := rt.config.Width, rt.config.Height

	buffers := make([][]PixelAccumulator, height)
	for j := range buffers {
		buffers[j] = make([]PixelAccumulator, width)
	}
	img := NewImage(width, height)

	pool := NewWorkerPool(rt.config.Workers, height, func(task RowTask) RowResult {
		switch task.Phase {
		case PhaseSample:
			return RowResult{Row: task.Row, Stats: rt.SampleRow(task.Row, buffers[task.Row])}
		default:
			if rt.config.Denoise {
				rt.denoiser.DenoiseRow(buffers, task.Row, img.Pixels[task.Row])
			} else {
				for i := range buffers[task.Row] {
					img.Pixels[task.Row][i] = buffers[task.Row][i].Mean
				}
			}
			return RowResult{Row: task.Row}
		}
	})
	pool.Start()
	defer pool.Stop()

	rt.logger.Printf("Rendering %s at %dx%d using %d workers...\n",
		rt.scene.Name, width, height, pool.GetNumWorkers())

	start := time.Now()
	stats := newRenderStats(rt.config.MaxSamplesPerPixel())
	for _, result := range pool.RunPhase(PhaseSample, height) {
		stats.merge(result.Stats)
	}
	stats.finalize()
	rt.logger.Printf("Sampling completed in %v: %.1f samples/pixel (range %d - %d of %d), %d/%d pixels converged\n",
		time.Since(start), stats.AverageSamples, stats.MinSamples, stats.MaxSamplesUsed,
		stats.MaxSamples, stats.ConvergedPixels, stats.TotalPixels)

	start = time.Now()
	pool.RunPhase(PhaseDenoise, height)
	if rt.config.Denoise {
		rt.logger.Printf("Denoising completed in %v: %d/%d pixels eligible\n",
			time.Since(start), stats.AgreeingPixels, stats.TotalPixels)
	}

	return img, stats
}

// SampleRow samples every pixel of row j into row. Each row has its own
// random source seeded from the config seed, so results do not depend on
// which worker runs the row.
func (rt *Raytracer) SampleRow(j int, row []PixelAccumulator) RenderStats {
	random := rand.New(rand.NewSource(rowSeed(rt.config.Seed, j)))
	stats := newRenderStats(rt.config.MaxSamplesPerPixel())

	for i := range row {
		row[i] = rt.sampler.SamplePixel(i, j, random)
		stats.addPixel(&row[i], rt.config.MaxIterations)
	}
	return stats
}

func rowSeed(seed int64, row int) int64 {
	return seed*1_000_003 + int64(row)
}
