package renderer

import (
	"errors"

	"github.com/df07/go-mis-pathtracer/pkg/integrator"
)

var (
	ErrInvalidImageSize = errors.New("renderer: image width and height must be positive")
	ErrWorldNotDefined  = errors.New("renderer: no world defined")
	ErrCameraNotDefined = errors.New("renderer: no camera defined")
)

// Options contains rendering configuration
type Options struct {
	Width           int
	Height          int
	Threads         int   // Number of parallel workers (0 = 1)
	SamplesPerPixel int   // Total rays per pixel across all workers
	MaxDepth        int   // Maximum ray bounce depth
	Seed            int64 // Master seed every worker generator is derived from
	Mode            integrator.Mode
}

// DefaultOptions returns sensible default values
func DefaultOptions() Options {
	return Options{
		Width:           400,
		Height:          225,
		Threads:         1,
		SamplesPerPixel: 100,
		MaxDepth:        50,
		Seed:            42,
		Mode:            integrator.ModeDefault,
	}
}

// Normalize returns a copy with a zero thread count or sample count raised
// to one
func (o Options) Normalize() Options {
	if o.Threads < 1 {
		o.Threads = 1
	}
	if o.SamplesPerPixel < 1 {
		o.SamplesPerPixel = 1
	}
	return o
}

// Validate checks the options a render cannot fix up itself
func (o Options) Validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return ErrInvalidImageSize
	}
	return nil
}

// splitSamples divides the per-pixel budget across threads as evenly as
// possible. The first workers take one extra sample each until the
// remainder is spent, and workers that would get nothing are dropped.
func splitSamples(samplesPerPixel, threads int) []int {
	whole := samplesPerPixel / threads
	remainder := samplesPerPixel % threads

	var split []int
	for id := 0; id < threads; id++ {
		samples := whole
		if id < remainder {
			samples++
		}
		if samples == 0 {
			break
		}
		split = append(split, samples)
	}
	return split
}
