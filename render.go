package main

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/df07/go-mis-pathtracer/pkg/integrator"
	"github.com/df07/go-mis-pathtracer/pkg/renderer"
	"github.com/df07/go-mis-pathtracer/pkg/worlds"
	"github.com/olekukonko/tablewriter"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/urfave/cli"
	"gonum.org/v1/gonum/stat"
)

// frameFlags holds the render command's flag values
type frameFlags struct {
	width, height int
	spp, depth    int
	threads       int
	seed          int64
	mode          string
}

func frameFlagsFrom(ctx *cli.Context) frameFlags {
	return frameFlags{
		width:   ctx.Int("width"),
		height:  ctx.Int("height"),
		spp:     ctx.Int("spp"),
		depth:   ctx.Int("depth"),
		threads: ctx.Int("threads"),
		seed:    ctx.Int64("seed"),
		mode:    ctx.String("mode"),
	}
}

// options maps the flags onto render options. A zero width or height takes
// the world's suggested size and zero threads means one per logical core.
func (f frameFlags) options(info worlds.Info) (renderer.Options, error) {
	mode, err := integrator.ParseMode(f.mode)
	if err != nil {
		return renderer.Options{}, err
	}

	opts := renderer.Options{
		Width:           f.width,
		Height:          f.height,
		Threads:         f.threads,
		SamplesPerPixel: f.spp,
		MaxDepth:        f.depth,
		Seed:            f.seed,
		Mode:            mode,
	}
	if opts.Width == 0 {
		opts.Width = info.Width
	}
	if opts.Height == 0 {
		opts.Height = info.Height
	}
	if opts.Threads == 0 {
		opts.Threads = detectThreads()
	}

	return opts, opts.Validate()
}

// detectThreads returns the number of logical cores
func detectThreads() int {
	count, err := cpu.Counts(true)
	if err != nil || count < 1 {
		logger.Debugf("cpu count unavailable (%v), falling back to runtime.NumCPU", err)
		return runtime.NumCPU()
	}
	return count
}

// Render a still frame.
func renderFrame(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}

	info, err := worlds.Lookup(ctx.String("scene"))
	if err != nil {
		return err
	}

	opts, err := frameFlagsFrom(ctx).options(info)
	if err != nil {
		return fmt.Errorf("invalid render options: %w", err)
	}

	start := time.Now()
	world, err := info.Build(worlds.Params{
		AspectRatio: float64(opts.Width) / float64(opts.Height),
		Seed:        opts.Seed,
	})
	if err != nil {
		return err
	}
	logger.Infof("built %s in %d ms", info.DisplayName, time.Since(start).Nanoseconds()/1000000)

	logger.Noticef("rendering %s at %dx%d with %d spp", info.DisplayName, opts.Width, opts.Height, opts.SamplesPerPixel)
	frame, err := renderer.Render(world, opts, progressLogger(10))
	if err != nil {
		return fmt.Errorf("error rendering frame: %w", err)
	}

	imgFile := ctx.String("out")
	start = time.Now()
	if err := writePNG(imgFile, frame.ToRGBA(ctx.Float64("gamma"))); err != nil {
		return err
	}
	logger.Noticef("wrote frame to %s in %d ms", imgFile, time.Since(start).Nanoseconds()/1000000)

	displayFrameStats(frame.Stats)
	return nil
}

// progressLogger returns a progress callback that logs every step percent
// and at completion. The renderer calls it from a single goroutine.
func progressLogger(step int) func(percent int) {
	next := step
	return func(percent int) {
		if percent < next && percent < 100 {
			return
		}
		logger.Infof("%3d%% done", percent)
		for next <= percent {
			next += step
		}
	}
}

// writePNG encodes img to path, creating the parent directory if needed
func writePNG(path string, img image.Image) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("error creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating image file: %w", err)
	}

	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("error encoding png file: %w", err)
	}
	return f.Close()
}

func displayFrameStats(stats renderer.FrameStats) {
	var buf bytes.Buffer
	writeFrameStats(&buf, stats)
	logger.Noticef("frame statistics\n%s", buf.String())
}

// writeFrameStats renders one row per worker. The footer carries the mean
// and standard deviation of the per-worker mean luminance, which should
// agree across workers up to noise.
func writeFrameStats(w io.Writer, stats renderer.FrameStats) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Worker", "Samples", "Seed", "Mean luminance", "Mean variance", "Render time"})

	luminance := make([]float64, len(stats.Workers))
	for i, worker := range stats.Workers {
		luminance[i] = worker.MeanLuminance
		table.Append([]string{
			fmt.Sprintf("%d", worker.ID),
			fmt.Sprintf("%d", worker.Samples),
			fmt.Sprintf("%d", worker.Seed),
			fmt.Sprintf("%.4f", worker.MeanLuminance),
			fmt.Sprintf("%.4f", worker.MeanVariance),
			worker.RenderTime.String(),
		})
	}

	mean, stdDev := meanStdDev(luminance)
	table.SetFooter([]string{
		"TOTAL",
		fmt.Sprintf("%d", stats.TotalSamples()),
		"",
		fmt.Sprintf("%.4f ± %.4f", mean, stdDev),
		fmt.Sprintf("merge %s", stats.MergeTime),
		stats.RenderTime.String(),
	})

	table.Render()
}

// meanStdDev is stat.MeanStdDev with a zero deviation for fewer than two values
func meanStdDev(x []float64) (float64, float64) {
	switch len(x) {
	case 0:
		return 0, 0
	case 1:
		return x[0], 0
	}
	return stat.MeanStdDev(x, nil)
}

func listWorlds(ctx *cli.Context) error {
	if err := setupLogging(ctx); err != nil {
		return err
	}
	writeWorldList(ctx.App.Writer)
	return nil
}

func writeWorldList(w io.Writer) {
	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Id", "Name", "Size", "Description"})
	for _, info := range worlds.List() {
		table.Append([]string{
			info.ID,
			info.DisplayName,
			fmt.Sprintf("%dx%d", info.Width, info.Height),
			info.Description,
		})
	}
	table.Render()
}
