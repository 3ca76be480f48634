package worlds

import (
	"math/rand"

	"github.com/df07/go-mis-pathtracer/pkg/core"
	"github.com/df07/go-mis-pathtracer/pkg/geometry"
	"github.com/df07/go-mis-pathtracer/pkg/material"
	"github.com/df07/go-mis-pathtracer/pkg/renderer"
	"github.com/df07/go-mis-pathtracer/pkg/scene"
)

// cornellSize is the side of the standard 555 unit Cornell box
const cornellSize = 555.0

// setupCornellCamera looks into the open side of the box
func setupCornellCamera(aspectRatio float64) *renderer.Camera {
	return renderer.NewCamera(renderer.CameraConfig{
		Center:      core.NewVec3(278, 278, -800), // outside the box looking in
		LookAt:      core.NewVec3(278, 278, 0),
		Up:          core.Up,
		AspectRatio: aspectRatio,
		VFov:        40,
	})
}

// addCornellWalls adds the five walls and a ceiling light of the given half
// size and emission. The light is marked as the light to sample.
func addCornellWalls(b *scene.Builder, root scene.NodeID, lightHalfSize float64, emission core.Color) {
	red := material.NewLambertian(core.NewVec3(0.65, 0.05, 0.05))
	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	green := material.NewLambertian(core.NewVec3(0.12, 0.45, 0.15))

	full := geometry.Range{Min: 0, Max: cornellSize}
	center := cornellSize / 2
	lightRange := geometry.Range{Min: center - lightHalfSize, Max: center + lightHalfSize}

	// Light sits just below the ceiling so it is hit before it
	light := b.MarkLightCandidates(b.NewObject(
		geometry.NewRect(geometry.PlaneXZ, cornellSize-1, lightRange, lightRange),
		material.NewDiffuseLight(emission),
	))

	b.Add(root,
		light,
		b.NewObject(geometry.NewRect(geometry.PlaneYZ, cornellSize, full, full), green), // left
		b.NewObject(geometry.NewRect(geometry.PlaneYZ, 0, full, full), red),             // right
		b.NewObject(geometry.NewRect(geometry.PlaneXZ, 0, full, full), white),           // floor
		b.NewObject(geometry.NewRect(geometry.PlaneXZ, cornellSize, full, full), white), // ceiling
		b.NewObject(geometry.NewRect(geometry.PlaneXY, cornellSize, full, full), white), // back
	)
}

// cornellBoxes returns the tall and short box geometry, both resting on the
// origin. Callers rotate and place them.
func cornellBoxes() (tall, short geometry.Geometry) {
	tall = geometry.NewBox(core.Vec3{}, core.NewVec3(165, 330, 165))
	short = geometry.NewBox(core.Vec3{}, core.NewVec3(165, 165, 165))
	return tall, short
}

func placeTallBox(b *scene.Builder, id scene.NodeID) scene.NodeID {
	b.RotateY(id, 15)
	return b.Translate(id, core.NewVec3(265, 0, 295))
}

func placeShortBox(b *scene.Builder, id scene.NodeID) scene.NodeID {
	b.RotateY(id, -18)
	return b.Translate(id, core.NewVec3(130, 0, 65))
}

func buildCornellBox(p Params, _ *rand.Rand) (*scene.World, error) {
	b := scene.NewBuilder()
	root := b.NewGroup()
	addCornellWalls(b, root, 65, core.NewVec3(15, 15, 15))

	white := material.NewLambertian(core.NewVec3(0.73, 0.73, 0.73))
	tall, short := cornellBoxes()
	b.Add(root,
		placeTallBox(b, b.NewObject(tall, white)),
		placeShortBox(b, b.NewObject(short, white)),
	)

	return b.NewWorld(root, setupCornellCamera(p.AspectRatio), scene.SolidBackground{}, scene.TimeRange{})
}

func buildCornellSmoke(p Params, _ *rand.Rand) (*scene.World, error) {
	b := scene.NewBuilder()
	root := b.NewGroup()
	addCornellWalls(b, root, 150, core.NewVec3(7, 7, 7))

	tall, short := cornellBoxes()
	b.Add(root,
		placeTallBox(b, b.NewVolume(tall, material.NewIsotropic(core.NewVec3(0, 0, 0)), 0.01)),
		placeShortBox(b, b.NewVolume(short, material.NewIsotropic(core.NewVec3(1, 1, 1)), 0.01)),
	)

	return b.NewWorld(root, setupCornellCamera(p.AspectRatio), scene.SolidBackground{}, scene.TimeRange{})
}
