package worlds

import (
	"math/rand"

	"github.com/df07/go-mis-pathtracer/pkg/core"
	"github.com/df07/go-mis-pathtracer/pkg/geometry"
	"github.com/df07/go-mis-pathtracer/pkg/material"
	"github.com/df07/go-mis-pathtracer/pkg/renderer"
	"github.com/df07/go-mis-pathtracer/pkg/scene"
)

// setupSpheresCamera views the sphere field from low on one side with a
// little depth of field
func setupSpheresCamera(aspectRatio, shutterClose float64) *renderer.Camera {
	return renderer.NewCamera(renderer.CameraConfig{
		Center:        core.NewVec3(13, 2, 3),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.Up,
		AspectRatio:   aspectRatio,
		VFov:          20,
		Aperture:      0.1,
		FocusDistance: 10,
		ShutterOpen:   0,
		ShutterClose:  shutterClose,
	})
}

// addSphereField scatters small spheres over the ground around the three
// feature spheres. Diffuse spheres are passed to onDiffuse so callers can
// animate them.
func addSphereField(b *scene.Builder, root scene.NodeID, rng *rand.Rand, onDiffuse func(id scene.NodeID)) {
	clearing := core.NewVec3(4, 0.2, 0)

	for a := -11; a < 11; a++ {
		for c := -11; c < 11; c++ {
			center := core.NewVec3(float64(a)+0.9*rng.Float64(), 0.2, float64(c)+0.9*rng.Float64())
			if center.Subtract(clearing).Length() <= 0.9 {
				continue
			}

			sphere := geometry.NewSphere(center, 0.2)
			switch choose := rng.Float64(); {
			case choose < 0.8:
				albedo := randomColor(rng).MultiplyVec(randomColor(rng))
				id := b.NewObject(sphere, material.NewLambertian(albedo))
				if onDiffuse != nil {
					onDiffuse(id)
				}
				b.Add(root, id)
			case choose < 0.95:
				albedo := randomColor(rng).Multiply(0.5).Add(core.NewVec3(0.5, 0.5, 0.5))
				b.Add(root, b.NewObject(sphere, material.NewMetal(albedo, 0.5*rng.Float64())))
			default:
				b.Add(root, b.NewObject(sphere, material.NewDielectric(1.5)))
			}
		}
	}

	b.Add(root,
		b.NewObject(geometry.NewSphere(core.NewVec3(0, 1, 0), 1), material.NewDielectric(1.5)),
		b.NewObject(geometry.NewSphere(core.NewVec3(-4, 1, 0), 1), material.NewLambertian(core.NewVec3(0.4, 0.2, 0.1))),
		b.NewObject(geometry.NewSphere(core.NewVec3(4, 1, 0), 1), material.NewMetal(core.NewVec3(0.7, 0.6, 0.5), 0)),
	)
}

func randomColor(rng *rand.Rand) core.Color {
	return core.NewVec3(rng.Float64(), rng.Float64(), rng.Float64())
}

func buildSpheres(p Params, rng *rand.Rand) (*scene.World, error) {
	b := scene.NewBuilder()
	root := b.NewGroup()

	ground := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	b.Add(root, b.NewObject(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000), ground))
	addSphereField(b, root, rng, nil)

	return b.NewWorld(root, setupSpheresCamera(p.AspectRatio, 0), scene.NewSkyBackground(), scene.TimeRange{})
}

func buildMovingSpheres(p Params, rng *rand.Rand) (*scene.World, error) {
	b := scene.NewBuilder()
	root := b.NewGroup()

	checker := material.NewCheckerTexture(10, core.NewVec3(0.2, 0.3, 0.1), core.NewVec3(0.9, 0.9, 0.9))
	b.Add(root, b.NewObject(geometry.NewSphere(core.NewVec3(0, -1000, 0), 1000), material.NewTexturedLambertian(checker)))

	// Diffuse spheres rise by up to half a unit over the shutter interval
	addSphereField(b, root, rng, func(id scene.NodeID) {
		b.Animate(id, core.NewVec3(0, 0.5*rng.Float64(), 0))
	})

	return b.NewWorld(root, setupSpheresCamera(p.AspectRatio, 1), scene.NewSkyBackground(), scene.TimeRange{Start: 0, End: 1})
}
