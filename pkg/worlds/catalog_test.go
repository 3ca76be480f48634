package worlds

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-mis-pathtracer/pkg/core"
	"github.com/df07/go-mis-pathtracer/pkg/material"
	"github.com/df07/go-mis-pathtracer/pkg/renderer"
)

func TestTitleCase(t *testing.T) {
	tests := []struct {
		input, expected string
	}{
		{"cornell-box", "Cornell Box"},
		{"sphere_grid", "Sphere Grid"},
		{"SPHERES", "Spheres"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := titleCase(tt.input); got != tt.expected {
			t.Errorf("titleCase(%q): expected %q, got %q", tt.input, tt.expected, got)
		}
	}
}

func TestList_SortedByDisplayName(t *testing.T) {
	infos := List()
	if len(infos) != 8 {
		t.Fatalf("Expected 8 worlds, got %d", len(infos))
	}
	for i := 1; i < len(infos); i++ {
		if infos[i-1].DisplayName >= infos[i].DisplayName {
			t.Errorf("Expected sorted display names, got %q before %q", infos[i-1].DisplayName, infos[i].DisplayName)
		}
	}
	for _, info := range infos {
		if info.Width <= 0 || info.Height <= 0 || info.Description == "" {
			t.Errorf("world %s: incomplete info %+v", info.ID, info)
		}
	}
}

func TestLookup(t *testing.T) {
	info, err := Lookup("  Cornell-Box ")
	if err != nil {
		t.Fatalf("Expected case-insensitive lookup, got %v", err)
	}
	if info.ID != "cornell-box" || info.DisplayName != "Cornell Box" {
		t.Errorf("Unexpected info %+v", info)
	}

	if _, err := Lookup("dragon"); !errors.Is(err, ErrUnknownWorld) {
		t.Errorf("Expected ErrUnknownWorld, got %v", err)
	}
}

func TestBuild_AllWorlds(t *testing.T) {
	unlit := map[string]bool{"spheres": true, "moving-spheres": true, "perlin-spheres": true}

	for _, info := range List() {
		t.Run(info.ID, func(t *testing.T) {
			world, err := info.Build(Params{Seed: 1})
			if err != nil {
				t.Fatalf("Build failed: %v", err)
			}
			if world.Camera == nil || world.Background == nil {
				t.Fatal("Expected a camera and a background")
			}
			if world.Scene.Len() == 0 {
				t.Error("Expected elements in the scene")
			}
			if hasLight := world.Light != nil; hasLight == unlit[info.ID] {
				t.Errorf("Expected light provider presence %v, got %v", !unlit[info.ID], hasLight)
			}
		})
	}
}

func TestCornellBox_LightAndWalls(t *testing.T) {
	info, _ := Lookup("cornell-box")
	world, err := info.Build(Params{})
	if err != nil {
		t.Fatal(err)
	}

	floorCenter := core.NewVec3(278, 0, 278)
	if pdf := world.Light.PDF(floorCenter, core.Up); pdf <= 0 {
		t.Errorf("Expected the ceiling light straight above the floor center, got pdf %f", pdf)
	}
	if pdf := world.Light.PDF(floorCenter, core.NewVec3(1, 0, 0)); pdf != 0 {
		t.Errorf("Expected zero pdf along the floor, got %f", pdf)
	}

	// The center ray passes the open side and stops inside the box
	sampler := core.NewSeededSampler(1)
	ray := core.NewRay(core.NewVec3(278, 278, -800), core.NewVec3(0, 0, 1))
	hit, ok := world.Hit(ray, 0.001, math.Inf(1), sampler)
	if !ok {
		t.Fatal("Expected the center ray to hit the box")
	}
	if hit.T < 800 || hit.T > 800+cornellSize+1e-9 {
		t.Errorf("Expected a hit inside the box, got t=%f", hit.T)
	}
}

func TestSpheres_SameSeedSameWorld(t *testing.T) {
	info, _ := Lookup("spheres")
	first, err := info.Build(Params{Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	second, err := info.Build(Params{Seed: 7})
	if err != nil {
		t.Fatal(err)
	}
	if first.Scene.Len() != second.Scene.Len() {
		t.Fatalf("Expected equal element counts, got %d and %d", first.Scene.Len(), second.Scene.Len())
	}

	sampler := core.NewSeededSampler(3)
	for i := 0; i < 200; i++ {
		origin := core.NewVec3(13, 2, 3)
		target := core.NewVec3(sampler.Get1D()*20-10, 0, sampler.Get1D()*20-10)
		ray := core.NewRay(origin, target.Subtract(origin).Normalize())

		a, okA := first.Hit(ray, 0.001, math.Inf(1), sampler)
		b, okB := second.Hit(ray, 0.001, math.Inf(1), sampler)
		if okA != okB || (okA && a.Point != b.Point) {
			t.Fatalf("ray %d: worlds built from the same seed disagree", i)
		}
	}
}

func TestPerlinSpheres_SeedChangesTexture(t *testing.T) {
	info, _ := Lookup("perlin-spheres")
	shade := func(seed int64) []core.Color {
		world, err := info.Build(Params{Seed: seed})
		if err != nil {
			t.Fatal(err)
		}
		sampler := core.NewSeededSampler(1)
		var colors []core.Color
		for x := -3.0; x <= 3; x += 0.5 {
			ray := core.NewRay(core.NewVec3(x, 10, 0.3), core.NewVec3(0, -1, 0))
			hit, ok := world.Hit(ray, 0.001, math.Inf(1), sampler)
			if !ok {
				t.Fatalf("Expected the ray at x=%f to hit", x)
			}
			colors = append(colors, hit.Material.(*material.Lambertian).Albedo.Evaluate(hit.UV, hit.Point))
		}
		return colors
	}

	first, again, other := shade(3), shade(3), shade(4)
	differs := false
	for i := range first {
		if first[i] != again[i] {
			t.Fatalf("sample %d: same seed gave %v and %v", i, first[i], again[i])
		}
		if first[i] != other[i] {
			differs = true
		}
	}
	if !differs {
		t.Error("Expected another seed to change the marble")
	}
}

func TestOklchToRGB(t *testing.T) {
	// Zero chroma is a gray whose linear value is the cube of the lightness
	gray := oklchToRGB(0.5, 0, 0)
	for axis := 0; axis < 3; axis++ {
		if math.Abs(gray.Axis(axis)-0.125) > 1e-3 {
			t.Errorf("Expected gray 0.125, got %v", gray)
		}
	}

	for hue := 0.0; hue < 360; hue += 30 {
		c := oklchToRGB(0.7, 0.3, hue)
		if c.Clamp(0, 1) != c {
			t.Errorf("hue %f: expected a clamped color, got %v", hue, c)
		}
	}
}

func TestIcosahedronMesh_VerticesOnSphere(t *testing.T) {
	triangles := icosahedronMesh(0.8)
	if len(triangles) != 20 {
		t.Fatalf("Expected 20 faces, got %d", len(triangles))
	}
	for i, tri := range triangles {
		for _, p := range tri.Positions {
			if math.Abs(p.Length()-0.8) > 1e-9 {
				t.Fatalf("face %d: vertex %v is not on the sphere", i, p)
			}
		}
	}
}

func TestRender_CornellBox(t *testing.T) {
	info, _ := Lookup("cornell-box")
	world, err := info.Build(Params{})
	if err != nil {
		t.Fatal(err)
	}

	frame, err := renderer.Render(world, renderer.Options{
		Width:           12,
		Height:          12,
		Threads:         2,
		SamplesPerPixel: 4,
		MaxDepth:        6,
		Seed:            5,
	}, nil)
	if err != nil {
		t.Fatal(err)
	}

	for i, p := range frame.Pixels {
		if !p.IsFinite() {
			t.Fatalf("pixel %d is not finite: %v", i, p)
		}
	}
	if frame.AverageLuminance() <= 0 {
		t.Error("Expected the lit box to render above black")
	}
}
