package renderer

import (
	"time"

	"github.com/df07/go-mis-pathtracer/pkg/core"
	"github.com/df07/go-mis-pathtracer/pkg/integrator"
	"github.com/df07/go-mis-pathtracer/pkg/log"
	"github.com/df07/go-mis-pathtracer/pkg/scene"
)

var logger = log.New("renderer")

// Render traces the world with opts.Threads workers and returns the merged
// linear frame. onProgress, when not nil, is called from a single goroutine
// with the completed percentage each time it changes. The world is only
// read, so several renders may share it.
func Render(world *scene.World, opts Options, onProgress func(percent int)) (*Frame, error) {
	if world == nil {
		return nil, ErrWorldNotDefined
	}
	if world.Camera == nil {
		return nil, ErrCameraNotDefined
	}
	opts = opts.Normalize()
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	split := splitSamples(opts.SamplesPerPixel, opts.Threads)
	pool := NewWorkerPool(world, integrator.New(opts.Mode, opts.MaxDepth), opts.Width, opts.Height, split, opts.Seed)
	logger.Infof("rendering %dx%d, %d spp over %d workers %v, max depth %d, mode %s",
		opts.Width, opts.Height, opts.SamplesPerPixel, pool.GetNumWorkers(), split, opts.MaxDepth, opts.Mode)

	totalWork := opts.SamplesPerPixel * opts.Width * opts.Height
	aggregatorDone := make(chan struct{})
	go func() {
		defer close(aggregatorDone)
		aggregateProgress(pool.Progress(), pool.GetNumWorkers(), totalWork, onProgress)
	}()

	start := time.Now()
	pool.Start()
	pool.Wait()
	<-aggregatorDone
	renderTime := time.Since(start)

	mergeStart := time.Now()
	frame := NewFrame(opts.Width, opts.Height)
	mergeBuffers(frame.Pixels, pool.Buffers())
	frame.Stats = FrameStats{
		Workers:    pool.Stats(),
		RenderTime: renderTime,
		MergeTime:  time.Since(mergeStart),
	}

	logger.Infof("rendering done in %v, merged %d buffers in %v",
		renderTime, pool.GetNumWorkers(), frame.Stats.MergeTime)
	return frame, nil
}

// aggregateProgress owns the per-worker counters. It calls onProgress when
// the overall percentage changes and returns once updates is closed.
func aggregateProgress(updates <-chan progressUpdate, workers, totalWork int, onProgress func(percent int)) {
	done := make([]int, workers)
	last := -1
	for update := range updates {
		done[update.workerID] = update.done

		total := 0
		for _, d := range done {
			total += d
		}
		percent := 100 * total / totalWork
		if percent != last {
			last = percent
			if onProgress != nil {
				onProgress(percent)
			}
		}
	}
}

// mergeBuffers writes the unweighted average of the worker buffers into
// dst. Workers trace near-equal sample counts, so each buffer gets the same
// weight regardless of its exact count.
func mergeBuffers(dst []core.Color, buffers [][]core.Color) {
	scale := 1.0 / float64(len(buffers))
	for i := range dst {
		var sum core.Color
		for _, buffer := range buffers {
			sum = sum.Add(buffer[i])
		}
		dst[i] = sum.Multiply(scale)
	}
}
