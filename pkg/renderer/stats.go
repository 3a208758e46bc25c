package renderer

import "math"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int     // Total number of pixels rendered
	TotalSamples    int     // Total number of samples taken
	AverageSamples  float64 // Average samples per pixel
	MaxSamples      int     // Maximum samples allowed per pixel
	MinSamples      int     // Minimum samples taken per pixel
	MaxSamplesUsed  int     // Maximum samples actually used by any pixel
	ConvergedPixels int     // Pixels that stopped before the iteration cap
	AgreeingPixels  int     // Pixels eligible for denoising
}

// newRenderStats creates empty statistics for a given per-pixel sample cap
func newRenderStats(maxSamples int) RenderStats {
	return RenderStats{
		MaxSamples: maxSamples,
		MinSamples: math.MaxInt,
	}
}

// addPixel records one finished pixel
func (s *RenderStats) addPixel(acc *PixelAccumulator, maxIterations int) {
	s.TotalPixels++
	s.TotalSamples += acc.SampleCount
	if acc.SampleCount < s.MinSamples {
		s.MinSamples = acc.SampleCount
	}
	if acc.SampleCount > s.MaxSamplesUsed {
		s.MaxSamplesUsed = acc.SampleCount
	}
	if acc.Iterations < maxIterations {
		s.ConvergedPixels++
	}
	if acc.NormalAgreement {
		s.AgreeingPixels++
	}
}

// merge folds statistics of a disjoint set of pixels into s
func (s *RenderStats) merge(other RenderStats) {
	s.TotalPixels += other.TotalPixels
	s.TotalSamples += other.TotalSamples
	s.MinSamples = min(s.MinSamples, other.MinSamples)
	s.MaxSamplesUsed = max(s.MaxSamplesUsed, other.MaxSamplesUsed)
	s.ConvergedPixels += other.ConvergedPixels
	s.AgreeingPixels += other.AgreeingPixels
}

// finalize computes derived values once every pixel has been added
func (s *RenderStats) finalize() {
	if s.TotalPixels == 0 {
		s.MinSamples = 0
		return
	}
	s.AverageSamples = float64(s.TotalSamples) / float64(s.TotalPixels)
}
