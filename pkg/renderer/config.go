package renderer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
)

// ErrInvalidConfig is returned by Config.Validate
var ErrInvalidConfig = errors.New("invalid config")

// Config contains every setting of a render
type Config struct {
	Width  int `json:"width"`
	Height int `json:"height"`

	MaxBounces    int     `json:"max_bounces"`     // Maximum path length including the primary ray
	MaxLightValue float64 `json:"max_light_value"` // Per-channel cap after compression

	// Adaptive sampling
	SamplesPerBatch      int     `json:"samples_per_batch"`
	AdaptiveSampling     bool    `json:"adaptive_sampling"`
	MaxIterations        int     `json:"max_iterations"`        // Maximum number of batches per pixel
	ConvergenceThreshold float64 `json:"convergence_threshold"` // Standard error below which a pixel is done

	// Denoising
	Denoise                  bool    `json:"denoise"`
	NormalAgreementThreshold float64 `json:"normal_agreement_threshold"`
	SmoothSize               int     `json:"smooth_size"` // Odd filter window edge
	SmoothingBaseWeight      float64 `json:"smoothing_base_weight"`

	TreeDepth int   `json:"tree_depth"` // Maximum BSP depth
	Workers   int   `json:"workers"`    // 0 uses every logical CPU
	Seed      int64 `json:"seed"`
}

// DefaultConfig returns the standard render settings
func DefaultConfig() Config {
	height := 1000
	aspectRatio := 16.0 / 9.0

	return Config{
		Width:                    int(float64(height) * aspectRatio),
		Height:                   height,
		MaxBounces:               10,
		MaxLightValue:            2.0,
		SamplesPerBatch:          30,
		AdaptiveSampling:         true,
		MaxIterations:            30,
		ConvergenceThreshold:     0.001,
		Denoise:                  true,
		NormalAgreementThreshold: 2.0,
		SmoothSize:               3,
		SmoothingBaseWeight:      4.0,
		TreeDepth:                12,
		Workers:                  0,
		Seed:                     42,
	}
}

// LoadConfig reads a JSON config file. Fields missing from the file keep
// their DefaultConfig values.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("reading config: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate checks that the config describes a renderable setup
func (c Config) Validate() error {
	switch {
	case c.Width < 1 || c.Height < 1:
		return fmt.Errorf("%w: image size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	case c.MaxBounces < 1:
		return fmt.Errorf("%w: max bounces must be at least 1, got %d", ErrInvalidConfig, c.MaxBounces)
	case c.MaxLightValue <= 0:
		return fmt.Errorf("%w: max light value must be positive, got %g", ErrInvalidConfig, c.MaxLightValue)
	case c.SamplesPerBatch < 1:
		return fmt.Errorf("%w: samples per batch must be at least 1, got %d", ErrInvalidConfig, c.SamplesPerBatch)
	case c.MaxIterations < 1:
		return fmt.Errorf("%w: max iterations must be at least 1, got %d", ErrInvalidConfig, c.MaxIterations)
	case c.ConvergenceThreshold < 0:
		return fmt.Errorf("%w: negative convergence threshold %g", ErrInvalidConfig, c.ConvergenceThreshold)
	case c.SmoothSize < 1 || c.SmoothSize%2 == 0:
		return fmt.Errorf("%w: smooth size must be a positive odd number, got %d", ErrInvalidConfig, c.SmoothSize)
	case c.SmoothingBaseWeight <= 0:
		return fmt.Errorf("%w: smoothing base weight must be positive, got %g", ErrInvalidConfig, c.SmoothingBaseWeight)
	case c.TreeDepth < 0:
		return fmt.Errorf("%w: negative tree depth %d", ErrInvalidConfig, c.TreeDepth)
	case c.Workers < 0:
		return fmt.Errorf("%w: negative worker count %d", ErrInvalidConfig, c.Workers)
	}
	return nil
}

// AspectRatio returns width / height
func (c Config) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// MaxSamplesPerPixel returns the sample cap implied by the batch settings
func (c Config) MaxSamplesPerPixel() int {
	if !c.AdaptiveSampling {
		return c.SamplesPerBatch
	}
	return c.SamplesPerBatch * c.MaxIterations
}

// defaultWorkerCount returns the number of logical CPUs
func defaultWorkerCount() int {
	if n, err := cpu.Counts(true); err == nil && n > 0 {
		return n
	}
	return runtime.NumCPU()
}
