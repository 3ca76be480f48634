package worlds

import (
	"math/rand"

	"github.com/df07/go-mis-pathtracer/pkg/core"
	"github.com/df07/go-mis-pathtracer/pkg/geometry"
	"github.com/df07/go-mis-pathtracer/pkg/material"
	"github.com/df07/go-mis-pathtracer/pkg/renderer"
	"github.com/df07/go-mis-pathtracer/pkg/scene"
)

// buildPerlinSpheres puts a marble sphere on a marble ground under the sky.
// Both share one noise lattice drawn from rng.
func buildPerlinSpheres(p Params, rng *rand.Rand) (*scene.World, error) {
	camera := renderer.NewCamera(renderer.CameraConfig{
		Center:      core.NewVec3(13, 2, 3),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.Up,
		AspectRatio: p.AspectRatio,
		VFov:        40,
	})

	marble := material.NewTexturedLambertian(material.NewMarbleTexture(4, rng))

	b := scene.NewBuilder()
	root := b.NewGroup()
	b.Add(root, b.NewObject(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000), marble))
	b.Add(root, b.NewObject(geometry.NewSphere(core.NewVec3(0, 2, 0), 2), marble))

	return b.NewWorld(root, camera, scene.NewSkyBackground(), scene.TimeRange{})
}
