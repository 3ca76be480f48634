package renderer

import (
	"time"

	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// WorkerStat describes one worker's share of a frame
type WorkerStat struct {
	ID int

	// Samples per pixel this worker traced and the seed of its generator
	Samples int
	Seed    int64

	// Mean pixel luminance and mean per-pixel luminance variance of the
	// worker's own buffer, a rough noise estimate
	MeanLuminance float64
	MeanVariance  float64

	RenderTime time.Duration
}

// FrameStats contains statistics about the rendering process
type FrameStats struct {
	// Individual worker stats in worker order
	Workers []WorkerStat

	// Wall time of the parallel phase and of merging the worker buffers
	RenderTime time.Duration
	MergeTime  time.Duration
}

// TotalSamples returns the per-pixel samples traced across all workers
func (fs FrameStats) TotalSamples() int {
	total := 0
	for _, w := range fs.Workers {
		total += w.Samples
	}
	return total
}

// PixelStats tracks sampling statistics for a single pixel
type PixelStats struct {
	ColorAccum       core.Color // RGB accumulator for final result
	LuminanceAccum   float64    // Luminance accumulator
	LuminanceSqAccum float64    // Luminance squared for variance
	SampleCount      int        // Number of samples taken
}

// AddSample adds a new color sample to the pixel statistics
func (ps *PixelStats) AddSample(color core.Color) {
	ps.ColorAccum = ps.ColorAccum.Add(color)
	luminance := color.Luminance()
	ps.LuminanceAccum += luminance
	ps.LuminanceSqAccum += luminance * luminance
	ps.SampleCount++
}

// GetColor returns the current average color for this pixel
func (ps *PixelStats) GetColor() core.Color {
	if ps.SampleCount == 0 {
		return core.Color{}
	}
	return ps.ColorAccum.Multiply(1.0 / float64(ps.SampleCount))
}

// LuminanceVariance returns the unbiased sample variance of the luminance,
// or zero with fewer than two samples
func (ps *PixelStats) LuminanceVariance() float64 {
	if ps.SampleCount < 2 {
		return 0
	}
	n := float64(ps.SampleCount)
	mean := ps.LuminanceAccum / n
	variance := (ps.LuminanceSqAccum - n*mean*mean) / (n - 1)
	if variance < 0 {
		return 0
	}
	return variance
}
