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

func buildTriangleMesh(p Params, _ *rand.Rand) (*scene.World, error) {
	camera := renderer.NewCamera(renderer.CameraConfig{
		Center:      core.NewVec3(0, 2, 6),
		LookAt:      core.NewVec3(0, 1, 0),
		Up:          core.Up,
		AspectRatio: p.AspectRatio,
		VFov:        45,
		Aperture:    0.02,
	})

	b := scene.NewBuilder()
	root := b.NewGroup()

	// Overhead light
	panel := geometry.Range{Min: -1.5, Max: 1.5}
	b.Add(root, b.MarkLightCandidates(b.NewObject(
		geometry.NewRect(geometry.PlaneXZ, 6, panel, panel),
		material.NewDiffuseLight(core.NewVec3(4, 3.7, 3.3)),
	)))

	ground := geometry.Range{Min: -20, Max: 20}
	b.Add(root, b.NewObject(
		geometry.NewRect(geometry.PlaneXZ, 0, ground, ground),
		material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7)),
	))

	box := b.NewMesh(boxMesh(core.NewVec3(1, 1, 1)), material.NewMetal(core.NewVec3(0.8, 0.2, 0.2), 0.1))
	b.RotateY(box, 30)
	b.Translate(box, core.NewVec3(-2, 0.5, 0))

	pyramid := b.NewMesh(pyramidMesh(1.5, 2), material.NewLambertian(core.NewVec3(0.2, 0.3, 0.8)))
	b.RotateY(pyramid, 45)
	b.Translate(pyramid, core.NewVec3(0, 1, 0))

	icosahedron := b.NewMesh(icosahedronMesh(0.8), material.NewMetal(core.NewVec3(0.8, 0.6, 0.2), 0.05))
	b.RotateY(icosahedron, 60)
	b.Translate(icosahedron, core.NewVec3(2, 0.8, 0))

	b.Add(root, box, pyramid, icosahedron)

	return b.NewWorld(root, camera, scene.NewSkyBackground(), scene.TimeRange{})
}

// indexedTriangles builds flat triangles from a vertex list and index triples
func indexedTriangles(vertices []core.Point3, faces []int) []*geometry.Triangle {
	triangles := make([]*geometry.Triangle, 0, len(faces)/3)
	for i := 0; i+2 < len(faces); i += 3 {
		triangles = append(triangles, geometry.NewFlatTriangle(vertices[faces[i]], vertices[faces[i+1]], vertices[faces[i+2]]))
	}
	return triangles
}

// boxMesh creates a box centered on the origin
func boxMesh(size core.Vec3) []*geometry.Triangle {
	h := size.Multiply(0.5)
	vertices := []core.Point3{
		core.NewVec3(-h.X, -h.Y, -h.Z), // 0: left-bottom-back
		core.NewVec3(+h.X, -h.Y, -h.Z), // 1: right-bottom-back
		core.NewVec3(+h.X, +h.Y, -h.Z), // 2: right-top-back
		core.NewVec3(-h.X, +h.Y, -h.Z), // 3: left-top-back
		core.NewVec3(-h.X, -h.Y, +h.Z), // 4: left-bottom-front
		core.NewVec3(+h.X, -h.Y, +h.Z), // 5: right-bottom-front
		core.NewVec3(+h.X, +h.Y, +h.Z), // 6: right-top-front
		core.NewVec3(-h.X, +h.Y, +h.Z), // 7: left-top-front
	}

	faces := []int{
		0, 1, 2, 0, 2, 3, // back
		4, 6, 5, 4, 7, 6, // front
		0, 3, 7, 0, 7, 4, // left
		1, 5, 6, 1, 6, 2, // right
		0, 4, 5, 0, 5, 1, // bottom
		3, 2, 6, 3, 6, 7, // top
	}

	return indexedTriangles(vertices, faces)
}

// pyramidMesh creates a square pyramid centered on the origin
func pyramidMesh(baseSize, height float64) []*geometry.Triangle {
	hb, hh := baseSize*0.5, height*0.5
	vertices := []core.Point3{
		core.NewVec3(-hb, -hh, -hb), // 0: left-back
		core.NewVec3(+hb, -hh, -hb), // 1: right-back
		core.NewVec3(+hb, -hh, +hb), // 2: right-front
		core.NewVec3(-hb, -hh, +hb), // 3: left-front
		core.NewVec3(0, +hh, 0),     // 4: apex
	}

	faces := []int{
		0, 2, 1, 0, 3, 2, // base
		0, 1, 4,
		1, 2, 4,
		2, 3, 4,
		3, 0, 4,
	}

	return indexedTriangles(vertices, faces)
}

// icosahedronMesh creates a regular icosahedron with its vertices on a
// sphere of the given radius around the origin
func icosahedronMesh(radius float64) []*geometry.Triangle {
	phi := (1 + math.Sqrt(5)) / 2
	scale := radius / math.Sqrt(1+phi*phi)

	raw := []core.Vec3{
		{X: -1, Y: phi}, {X: 1, Y: phi}, {X: -1, Y: -phi}, {X: 1, Y: -phi},
		{Y: -1, Z: phi}, {Y: 1, Z: phi}, {Y: -1, Z: -phi}, {Y: 1, Z: -phi},
		{X: phi, Z: -1}, {X: phi, Z: 1}, {X: -phi, Z: -1}, {X: -phi, Z: 1},
	}
	vertices := make([]core.Point3, len(raw))
	for i, v := range raw {
		vertices[i] = v.Multiply(scale)
	}

	faces := []int{
		// around vertex 0
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		// around vertex 3
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	return indexedTriangles(vertices, faces)
}
