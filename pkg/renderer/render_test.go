package renderer

import (
	"errors"
	"math"
	"reflect"
	"sync"
	"testing"

	"github.com/df07/go-mis-pathtracer/pkg/core"
	"github.com/df07/go-mis-pathtracer/pkg/geometry"
	"github.com/df07/go-mis-pathtracer/pkg/integrator"
	"github.com/df07/go-mis-pathtracer/pkg/material"
	"github.com/df07/go-mis-pathtracer/pkg/scene"
)

// createTestWorld is a diffuse sphere in front of the camera under a sky
func createTestWorld(t *testing.T) *scene.World {
	t.Helper()
	b := scene.NewBuilder()
	root := b.Add(b.NewGroup(),
		b.NewObject(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5), material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3))),
		b.NewObject(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100), material.NewLambertian(core.NewVec3(0.8, 0.8, 0))),
	)
	camera := NewCamera(CameraConfig{
		Center:      core.Vec3{},
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.Up,
		AspectRatio: 2,
		VFov:        90,
	})
	world, err := b.NewWorld(root, camera, scene.NewSkyBackground(), scene.TimeRange{})
	if err != nil {
		t.Fatalf("Failed to build world: %v", err)
	}
	return world
}

func testOptions() Options {
	return Options{
		Width:           16,
		Height:          8,
		Threads:         3,
		SamplesPerPixel: 7,
		MaxDepth:        5,
		Seed:            1234,
	}
}

func TestSplitSamples(t *testing.T) {
	tests := []struct {
		samples, threads int
		expected         []int
	}{
		{10, 3, []int{4, 3, 3}},
		{9, 3, []int{3, 3, 3}},
		{2, 4, []int{1, 1}},
		{1, 8, []int{1}},
		{7, 1, []int{7}},
	}

	for _, tt := range tests {
		got := splitSamples(tt.samples, tt.threads)
		if !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("splitSamples(%d, %d): expected %v, got %v", tt.samples, tt.threads, tt.expected, got)
		}
		total := 0
		for _, s := range got {
			total += s
		}
		if total != tt.samples {
			t.Errorf("splitSamples(%d, %d) lost samples: %v", tt.samples, tt.threads, got)
		}
	}
}

func TestOptions_Normalize(t *testing.T) {
	opts := Options{Width: 4, Height: 4}.Normalize()
	if opts.Threads != 1 || opts.SamplesPerPixel != 1 {
		t.Errorf("Expected zero threads and samples raised to one, got %+v", opts)
	}
	if err := (Options{Width: 0, Height: 4}).Validate(); !errors.Is(err, ErrInvalidImageSize) {
		t.Errorf("Expected ErrInvalidImageSize, got %v", err)
	}
	if err := DefaultOptions().Validate(); err != nil {
		t.Errorf("Expected default options to be valid, got %v", err)
	}
}

func TestRender_Errors(t *testing.T) {
	if _, err := Render(nil, testOptions(), nil); !errors.Is(err, ErrWorldNotDefined) {
		t.Errorf("Expected ErrWorldNotDefined, got %v", err)
	}

	world := createTestWorld(t)
	noCamera := *world
	noCamera.Camera = nil
	if _, err := Render(&noCamera, testOptions(), nil); !errors.Is(err, ErrCameraNotDefined) {
		t.Errorf("Expected ErrCameraNotDefined, got %v", err)
	}

	opts := testOptions()
	opts.Height = -1
	if _, err := Render(world, opts, nil); !errors.Is(err, ErrInvalidImageSize) {
		t.Errorf("Expected ErrInvalidImageSize, got %v", err)
	}
}

func TestRender_Deterministic(t *testing.T) {
	world := createTestWorld(t)

	first, err := Render(world, testOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Render(world, testOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first.Pixels, second.Pixels) {
		t.Error("Expected identical frames for the same seed and thread count")
	}

	opts := testOptions()
	opts.Seed++
	third, err := Render(world, opts, nil)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(first.Pixels, third.Pixels) {
		t.Error("Expected a different seed to change the frame")
	}
}

func TestRender_WorkerStats(t *testing.T) {
	frame, err := Render(createTestWorld(t), testOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}

	workers := frame.Stats.Workers
	if len(workers) != 3 {
		t.Fatalf("Expected 3 workers, got %d", len(workers))
	}
	expected := []int{3, 2, 2}
	for i, w := range workers {
		if w.ID != i || w.Samples != expected[i] {
			t.Errorf("worker %d: expected %d samples, got %+v", i, expected[i], w)
		}
		if w.MeanLuminance <= 0 {
			t.Errorf("worker %d: expected a lit image, got mean luminance %f", i, w.MeanLuminance)
		}
	}
	if workers[0].Seed == workers[1].Seed {
		t.Error("Expected each worker to get its own seed")
	}
	if frame.Stats.TotalSamples() != 7 {
		t.Errorf("Expected 7 samples in total, got %d", frame.Stats.TotalSamples())
	}
}

func TestRender_ZeroThreads(t *testing.T) {
	opts := testOptions()
	opts.Threads = 0
	frame, err := Render(createTestWorld(t), opts, nil)
	if err != nil {
		t.Fatalf("Expected zero threads to render on one worker, got %v", err)
	}
	if len(frame.Stats.Workers) != 1 || frame.Stats.Workers[0].Samples != 7 {
		t.Errorf("Expected a single worker with every sample, got %+v", frame.Stats.Workers)
	}
	if len(frame.Pixels) != opts.Width*opts.Height {
		t.Errorf("Expected %d pixels, got %d", opts.Width*opts.Height, len(frame.Pixels))
	}
}

func TestRender_ProgressIsMonotonic(t *testing.T) {
	opts := testOptions()
	opts.Width, opts.Height = 40, 30

	var mu sync.Mutex
	var reports []int
	_, err := Render(createTestWorld(t), opts, func(percent int) {
		mu.Lock()
		defer mu.Unlock()
		reports = append(reports, percent)
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(reports) == 0 || reports[len(reports)-1] != 100 {
		t.Fatalf("Expected progress to end at 100, got %v", reports)
	}
	for i := 1; i < len(reports); i++ {
		if reports[i] <= reports[i-1] {
			t.Fatalf("Expected strictly increasing progress, got %v", reports)
		}
	}
}

func TestRender_NormalsMode(t *testing.T) {
	opts := testOptions()
	opts.Mode = integrator.ModeNormals
	frame, err := Render(createTestWorld(t), opts, nil)
	if err != nil {
		t.Fatal(err)
	}

	for i, p := range frame.Pixels {
		if p.X < 0 || p.X > 1 || p.Y < 0 || p.Y > 1 || p.Z < 0 || p.Z > 1 {
			t.Fatalf("pixel %d: normal color %v outside [0,1]", i, p)
		}
	}
}

// With max depth 1 every pixel is either black or the sky
func TestRender_MaxDepthOne(t *testing.T) {
	world := createTestWorld(t)
	opts := testOptions()
	opts.MaxDepth = 1
	opts.Threads = 1
	opts.SamplesPerPixel = 1
	frame, err := Render(world, opts, nil)
	if err != nil {
		t.Fatal(err)
	}

	sky := scene.NewSkyBackground()
	black, lit := 0, 0
	for _, p := range frame.Pixels {
		switch {
		case p == (core.Color{}):
			black++
		case p.Z >= sky.Bottom.Z*0.999 && p.X >= sky.Top.X-1e-9 && p.X <= 1:
			lit++
		default:
			t.Fatalf("Unexpected pixel %v", p)
		}
	}
	if black == 0 || lit == 0 {
		t.Errorf("Expected both black and sky pixels, got %d and %d", black, lit)
	}
}

const (
	boxLightHalfSize = 0.1
	boxEmission      = 50.0
	boxFloorAlbedo   = 0.5
)

// closedBoxWorld is the unit cube with a gray floor, walls of the given
// albedo and a small square light just under the ceiling. The camera hangs
// at the center looking straight down at the floor.
func closedBoxWorld(t *testing.T, wallAlbedo float64) *scene.World {
	t.Helper()
	unit := geometry.Range{Min: 0, Max: 1}
	floor := material.NewLambertian(core.NewVec3(boxFloorAlbedo, boxFloorAlbedo, boxFloorAlbedo))
	wall := material.NewLambertian(core.NewVec3(wallAlbedo, wallAlbedo, wallAlbedo))
	lamp := geometry.Range{Min: 0.5 - boxLightHalfSize, Max: 0.5 + boxLightHalfSize}

	b := scene.NewBuilder()
	root := b.Add(b.NewGroup(),
		b.MarkLightCandidates(b.NewObject(
			geometry.NewRect(geometry.PlaneXZ, 0.999, lamp, lamp),
			material.NewDiffuseLight(core.NewVec3(boxEmission, boxEmission, boxEmission)),
		)),
		b.NewObject(geometry.NewRect(geometry.PlaneXZ, 0, unit, unit), floor),
		b.NewObject(geometry.NewRect(geometry.PlaneXZ, 1, unit, unit), wall),
		b.NewObject(geometry.NewRect(geometry.PlaneYZ, 0, unit, unit), wall),
		b.NewObject(geometry.NewRect(geometry.PlaneYZ, 1, unit, unit), wall),
		b.NewObject(geometry.NewRect(geometry.PlaneXY, 0, unit, unit), wall),
		b.NewObject(geometry.NewRect(geometry.PlaneXY, 1, unit, unit), wall),
	)
	camera := NewCamera(CameraConfig{
		Center:      core.NewVec3(0.5, 0.5, 0.5),
		LookAt:      core.NewVec3(0.5, 0, 0.5),
		Up:          core.NewVec3(0, 0, -1),
		AspectRatio: 1,
		VFov:        20,
	})
	world, err := b.NewWorld(root, camera, scene.SolidBackground{}, scene.TimeRange{})
	if err != nil {
		t.Fatalf("Failed to build world: %v", err)
	}
	if world.Light == nil {
		t.Fatal("Expected the ceiling light to be sampled")
	}
	return world
}

func closedBoxOptions(seed int64) Options {
	return Options{
		Width:           16,
		Height:          16,
		Threads:         2,
		SamplesPerPixel: 16,
		MaxDepth:        8,
		Seed:            seed,
	}
}

// With black walls the floor only sees the light, so its radiance is
// albedo/pi times the irradiance from the light square. Over the visible
// patch of floor that irradiance lies between emission*area*h^2/rMax^4 and
// emission*area/h^2.
func TestRender_ClosedBoxDirectLighting(t *testing.T) {
	const (
		height = 0.999
		area   = 4 * boxLightHalfSize * boxLightHalfSize
	)
	patch := 0.5 * math.Tan(10*math.Pi/180)
	rMax2 := height*height + 2*(patch+boxLightHalfSize)*(patch+boxLightHalfSize)

	lower := boxFloorAlbedo / math.Pi * boxEmission * area * height * height / (rMax2 * rMax2)
	upper := boxFloorAlbedo / math.Pi * boxEmission * area / (height * height)

	frame, err := Render(closedBoxWorld(t, 0), closedBoxOptions(7), nil)
	if err != nil {
		t.Fatal(err)
	}
	got := frame.AverageLuminance()
	if got < 0.97*lower || got > 1.03*upper {
		t.Errorf("Expected average luminance in [%f, %f], got %f", lower, upper, got)
	}
}

func TestRender_ClosedBoxRegression(t *testing.T) {
	dark, err := Render(closedBoxWorld(t, 0), closedBoxOptions(7), nil)
	if err != nil {
		t.Fatal(err)
	}
	world := closedBoxWorld(t, 0.5)
	lit, err := Render(world, closedBoxOptions(7), nil)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Render(world, closedBoxOptions(7), nil)
	if err != nil {
		t.Fatal(err)
	}
	reseeded, err := Render(world, closedBoxOptions(8), nil)
	if err != nil {
		t.Fatal(err)
	}

	reference := lit.AverageLuminance()
	if again.AverageLuminance() != reference {
		t.Errorf("Expected the same seed and threads to reproduce %f, got %f", reference, again.AverageLuminance())
	}
	if other := reseeded.AverageLuminance(); math.Abs(other-reference) > 0.05*reference {
		t.Errorf("Expected another seed to agree within 5%%, got %f and %f", reference, other)
	}

	// Gray walls bounce light back onto the floor
	if d := dark.AverageLuminance(); reference < 1.05*d || reference > 3*d {
		t.Errorf("Expected indirect light to brighten the floor moderately, got %f over %f", reference, d)
	}
}
