package worlds

import (
	"math"
	"math/rand"

	"github.com/df07/go-mis-pathtracer/pkg/core"
	"github.com/df07/go-mis-pathtracer/pkg/geometry"
	"github.com/df07/go-mis-pathtracer/pkg/material"
	"github.com/df07/go-mis-pathtracer/pkg/renderer"
	"github.com/df07/go-mis-pathtracer/pkg/scene"
)

// oklchToRGB converts OKLCH color values to linear RGB clamped to [0, 1]
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Color {
	hRad := h * math.Pi / 180.0

	// OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to cone responses
	lc := l + 0.3963377774*a + 0.2158037573*b
	mc := l - 0.1055613458*a - 0.0638541728*b
	sc := l - 0.0894841775*a - 1.2914855480*b

	lc = lc * lc * lc
	mc = mc * mc * mc
	sc = sc * sc * sc

	r := +4.0767416621*lc - 3.3077115913*mc + 0.2309699292*sc
	g := -1.2684380046*lc + 2.6097574011*mc - 0.3413193965*sc
	blue := -0.0041960863*lc - 0.7034186147*mc + 1.7076147010*sc

	return core.NewVec3(r, g, blue).Clamp(0, 1)
}

// gridSize is the number of spheres along each side of the grid
const gridSize = 12

func buildSphereGrid(p Params, _ *rand.Rand) (*scene.World, error) {
	camera := renderer.NewCamera(renderer.CameraConfig{
		Center:      core.NewVec3(4.5, 6, 18), // back and above the grid
		LookAt:      core.NewVec3(4.5, 0.8, 4.5),
		Up:          core.Up,
		AspectRatio: p.AspectRatio,
		VFov:        40,
		Aperture:    0.02,
	})

	b := scene.NewBuilder()
	root := b.NewGroup()

	// Warm overhead panel, sampled directly
	panel := geometry.Range{Min: 2.5, Max: 6.5}
	b.Add(root, b.MarkLightCandidates(b.NewObject(
		geometry.NewRect(geometry.PlaneXZ, 10, panel, panel),
		material.NewDiffuseLight(core.NewVec3(6, 5.75, 5)),
	)))

	ground := geometry.Range{Min: -50, Max: 50}
	b.Add(root, b.NewObject(
		geometry.NewRect(geometry.PlaneXZ, 0, ground, ground),
		material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)),
	))

	// Spread the grid over a 9x9 area centered on the look-at point
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	radius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	// Hue varies across x, chroma across z
	baseLightness := 0.65
	minChroma, maxChroma := 0.05, 0.25

	spheres := b.NewGroup()
	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2 + 4.5
			z := float64(j)*spacing - targetArea/2 + 4.5

			hue := float64(i) / float64(gridSize-1) * 360
			chroma := minChroma + float64(j)/float64(gridSize-1)*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			roughness := 0.05 + 0.1*float64((i+j)%3)/2

			b.Add(spheres, b.NewObject(
				geometry.NewSphere(core.NewVec3(x, radius, z), radius),
				material.NewMetal(oklchToRGB(lightness, chroma, hue), roughness),
			))
		}
	}
	b.Add(root, spheres)

	return b.NewWorld(root, camera, scene.NewSkyBackground(), scene.TimeRange{})
}
