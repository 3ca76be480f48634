package renderer

import (
	"math/rand"
	"sync"
	"time"

	"github.com/df07/go-mis-pathtracer/pkg/core"
	"github.com/df07/go-mis-pathtracer/pkg/integrator"
	"github.com/df07/go-mis-pathtracer/pkg/scene"
)

// progressInterval is the number of pixels between progress reports
const progressInterval = 100

// progressUpdate reports the samples a worker has finished so far
type progressUpdate struct {
	workerID int
	done     int
}

// Worker renders the whole image with its share of the samples into a
// private buffer
type Worker struct {
	ID      int
	samples int
	seed    int64
	sampler core.Sampler
	buffer  []core.Color
	stat    WorkerStat
}

// WorkerPool runs one Worker per sample share over a shared read-only world
type WorkerPool struct {
	world         *scene.World
	integrator    integrator.Integrator
	width, height int
	workers       []*Worker
	progress      chan progressUpdate
	wg            sync.WaitGroup
}

// NewWorkerPool creates a worker for each entry of split. Worker generators
// are seeded in worker order from a master generator seeded with seed.
func NewWorkerPool(world *scene.World, integrator integrator.Integrator, width, height int, split []int, seed int64) *WorkerPool {
	wp := &WorkerPool{
		world:      world,
		integrator: integrator,
		width:      width,
		height:     height,
		progress:   make(chan progressUpdate, 8*len(split)),
	}

	master := rand.New(rand.NewSource(seed))
	for id, samples := range split {
		workerSeed := master.Int63()
		wp.workers = append(wp.workers, &Worker{
			ID:      id,
			samples: samples,
			seed:    workerSeed,
			sampler: core.NewRandomSampler(rand.New(rand.NewSource(workerSeed))),
			buffer:  make([]core.Color, width*height),
		})
	}

	return wp
}

// Start begins all workers
func (wp *WorkerPool) Start() {
	for _, worker := range wp.workers {
		wp.wg.Add(1)
		go worker.run(wp)
	}
}

// Wait joins all workers and then closes the progress channel
func (wp *WorkerPool) Wait() {
	wp.wg.Wait()
	close(wp.progress)
}

// Progress returns the channel workers report progress on. It is closed by
// Wait.
func (wp *WorkerPool) Progress() <-chan progressUpdate {
	return wp.progress
}

// GetNumWorkers returns the number of workers in the pool
func (wp *WorkerPool) GetNumWorkers() int {
	return len(wp.workers)
}

// Buffers returns every worker's finished buffer in worker order
func (wp *WorkerPool) Buffers() [][]core.Color {
	buffers := make([][]core.Color, len(wp.workers))
	for i, w := range wp.workers {
		buffers[i] = w.buffer
	}
	return buffers
}

// Stats returns every worker's statistics in worker order
func (wp *WorkerPool) Stats() []WorkerStat {
	stats := make([]WorkerStat, len(wp.workers))
	for i, w := range wp.workers {
		stats[i] = w.stat
	}
	return stats
}

// run is the main worker loop
func (w *Worker) run(wp *WorkerPool) {
	defer wp.wg.Done()

	start := time.Now()
	camera := wp.world.Camera
	pixels := wp.width * wp.height
	var luminanceSum, varianceSum float64

	for y := 0; y < wp.height; y++ {
		for x := 0; x < wp.width; x++ {
			pixel := y*wp.width + x

			// Intermediate reports are dropped when the aggregator lags
			if pixel%progressInterval == 0 {
				select {
				case wp.progress <- progressUpdate{workerID: w.ID, done: pixel * w.samples}:
				default:
				}
			}

			var stats PixelStats
			for sample := 0; sample < w.samples; sample++ {
				jitter := w.sampler.Get2D()
				s := (float64(x) + jitter.X) / float64(wp.width)
				t := (float64(y) + jitter.Y) / float64(wp.height)
				ray := camera.GetRay(w.sampler, s, t)
				stats.AddSample(wp.integrator.RayColor(ray, wp.world, w.sampler))
			}

			w.buffer[pixel] = stats.GetColor()
			luminanceSum += w.buffer[pixel].Luminance()
			varianceSum += stats.LuminanceVariance()
		}
	}

	wp.progress <- progressUpdate{workerID: w.ID, done: pixels * w.samples}

	w.stat = WorkerStat{
		ID:            w.ID,
		Samples:       w.samples,
		Seed:          w.seed,
		MeanLuminance: luminanceSum / float64(pixels),
		MeanVariance:  varianceSum / float64(pixels),
		RenderTime:    time.Since(start),
	}
}
