package main

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/df07/go-mis-pathtracer/pkg/integrator"
	"github.com/df07/go-mis-pathtracer/pkg/log"
	"github.com/df07/go-mis-pathtracer/pkg/renderer"
	"github.com/df07/go-mis-pathtracer/pkg/worlds"
)

func TestFrameFlags_Options(t *testing.T) {
	info, err := worlds.Lookup("cornell-box")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name          string
		flags         frameFlags
		width, height int
		mode          integrator.Mode
		expectError   bool
	}{
		{"world size by default", frameFlags{spp: 4, depth: 5, threads: 2}, 400, 400, integrator.ModeDefault, false},
		{"explicit size", frameFlags{width: 64, height: 32, spp: 4, depth: 5, threads: 2, mode: "normals"}, 64, 32, integrator.ModeNormals, false},
		{"unknown mode", frameFlags{spp: 4, depth: 5, threads: 2, mode: "bdpt"}, 0, 0, 0, true},
		{"negative size", frameFlags{width: -1, spp: 4, depth: 5, threads: 2}, 0, 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := tt.flags.options(info)
			if tt.expectError {
				if err == nil {
					t.Errorf("Expected an error, got options %+v", opts)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if opts.Width != tt.width || opts.Height != tt.height || opts.Mode != tt.mode {
				t.Errorf("Expected %dx%d in mode %s, got %+v", tt.width, tt.height, tt.mode, opts)
			}
			if opts.Threads != 2 || opts.SamplesPerPixel != 4 || opts.MaxDepth != 5 {
				t.Errorf("Expected the flag values to carry over, got %+v", opts)
			}
		})
	}
}

func TestFrameFlags_ZeroThreadsUsesEveryCore(t *testing.T) {
	info, _ := worlds.Lookup("spheres")
	opts, err := frameFlags{spp: 1, depth: 1}.options(info)
	if err != nil {
		t.Fatal(err)
	}
	if opts.Threads < 1 || opts.Threads != detectThreads() {
		t.Errorf("Expected one thread per core, got %d", opts.Threads)
	}
}

func TestWritePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(2, 1, color.RGBA{R: 10, G: 20, B: 30, A: 255})

	path := filepath.Join(t.TempDir(), "nested", "frame.png")
	if err := writePNG(path, img); err != nil {
		t.Fatalf("writePNG failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatalf("Failed to decode written PNG: %v", err)
	}
	if decoded.Bounds() != img.Bounds() {
		t.Errorf("Expected bounds %v, got %v", img.Bounds(), decoded.Bounds())
	}
	if r, g, b, _ := decoded.At(2, 1).RGBA(); r>>8 != 10 || g>>8 != 20 || b>>8 != 30 {
		t.Errorf("Expected pixel (10,20,30), got (%d,%d,%d)", r>>8, g>>8, b>>8)
	}
}

func TestWriteFrameStats(t *testing.T) {
	stats := renderer.FrameStats{
		Workers: []renderer.WorkerStat{
			{ID: 0, Samples: 3, Seed: 11, MeanLuminance: 0.5, RenderTime: time.Second},
			{ID: 1, Samples: 2, Seed: 22, MeanLuminance: 0.7, RenderTime: time.Second},
		},
		RenderTime: 2 * time.Second,
	}

	var buf bytes.Buffer
	writeFrameStats(&buf, stats)
	out := buf.String()

	for _, want := range []string{"Mean luminance", "TOTAL", "0.6000", "0.1414", "22"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected %q in stats table:\n%s", want, out)
		}
	}
}

func TestMeanStdDev(t *testing.T) {
	if m, s := meanStdDev(nil); m != 0 || s != 0 {
		t.Errorf("Expected zeros for no values, got %f, %f", m, s)
	}
	if m, s := meanStdDev([]float64{3}); m != 3 || s != 0 {
		t.Errorf("Expected (3, 0) for one value, got %f, %f", m, s)
	}
}

func TestWriteWorldList(t *testing.T) {
	var buf bytes.Buffer
	writeWorldList(&buf)
	for _, info := range worlds.List() {
		if !strings.Contains(buf.String(), info.ID) {
			t.Errorf("Expected world %s in the list", info.ID)
		}
	}
}

func TestApp_Render(t *testing.T) {
	out := filepath.Join(t.TempDir(), "frame.png")
	app := newApp()
	app.Writer = io.Discard

	err := app.Run([]string{"pathtracer", "render",
		"--scene", "cornell-box",
		"--width", "8", "--height", "8",
		"--spp", "2", "--depth", "3", "--threads", "2",
		"--out", out,
	})
	if err != nil {
		t.Fatalf("render command failed: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("Expected the frame to be written: %v", err)
	}
}

func TestApp_RenderUnknownScene(t *testing.T) {
	app := newApp()
	app.Writer = io.Discard

	err := app.Run([]string{"pathtracer", "render", "--scene", "nonexistent", "--out", filepath.Join(t.TempDir(), "x.png")})
	if !errors.Is(err, worlds.ErrUnknownWorld) {
		t.Errorf("Expected ErrUnknownWorld, got %v", err)
	}
}

func TestApp_BadLogLevels(t *testing.T) {
	app := newApp()
	app.Writer = io.Discard

	err := app.Run([]string{"pathtracer", "--log-levels", "scene=loud", "list-worlds"})
	if err == nil || !strings.Contains(err.Error(), "log-levels") {
		t.Errorf("Expected a log level error, got %v", err)
	}
}

func TestApp_ListWorldsWithModuleLevels(t *testing.T) {
	defer log.ResetModuleLevels()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf

	if err := app.Run([]string{"pathtracer", "--log-levels", "worlds=debug", "list-worlds"}); err != nil {
		t.Fatalf("list-worlds failed: %v", err)
	}
	if !strings.Contains(buf.String(), "perlin-spheres") {
		t.Errorf("Expected the world table, got:\n%s", buf.String())
	}
}
