package worlds

import (
	"math/rand"

	"github.com/df07/go-mis-pathtracer/pkg/core"
	"github.com/df07/go-mis-pathtracer/pkg/geometry"
	"github.com/df07/go-mis-pathtracer/pkg/material"
	"github.com/df07/go-mis-pathtracer/pkg/renderer"
	"github.com/df07/go-mis-pathtracer/pkg/scene"
)

func buildSimpleLight(p Params, _ *rand.Rand) (*scene.World, error) {
	camera := renderer.NewCamera(renderer.CameraConfig{
		Center:      core.NewVec3(26, 3, 6),
		LookAt:      core.NewVec3(0, 2, 0),
		Up:          core.Up,
		AspectRatio: p.AspectRatio,
		VFov:        20,
	})

	b := scene.NewBuilder()
	root := b.NewGroup()

	checker := material.NewCheckerTexture(10, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	b.Add(root, b.NewObject(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000), material.NewTexturedLambertian(checker)))

	// uv checkerboard wrapped around the sphere
	image := material.NewCheckerboardImage(64, 32, 4, core.NewVec3(0.8, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.8))
	b.Add(root, b.NewObject(geometry.NewSphere(core.NewVec3(0, 2, 0), 2), material.NewTexturedLambertian(image)))

	b.Add(root, b.MarkLightCandidates(b.NewObject(
		geometry.NewRect(geometry.PlaneXY, -2, geometry.Range{Min: 3, Max: 5}, geometry.Range{Min: 1, Max: 3}),
		material.NewDiffuseLight(core.NewVec3(4, 4, 4)),
	)))

	return b.NewWorld(root, camera, scene.SolidBackground{}, scene.TimeRange{})
}
