package geometry

import (
	"math"

	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// parallelEpsilon rejects rays nearly parallel to the triangle's plane
const parallelEpsilon = 1e-4

// Triangle is a single triangle with per-vertex normals and texture
// coordinates
type Triangle struct {
	Positions [3]core.Point3
	Normals   [3]core.Dir3
	UVs       [3]core.Vec2
}

// NewTriangle creates a triangle with explicit vertex attributes
func NewTriangle(positions [3]core.Point3, normals [3]core.Dir3, uvs [3]core.Vec2) *Triangle {
	return &Triangle{Positions: positions, Normals: normals, UVs: uvs}
}

// NewFlatTriangle creates a triangle whose vertices all carry the face normal
func NewFlatTriangle(p0, p1, p2 core.Point3) *Triangle {
	normal := p1.Subtract(p0).Cross(p2.Subtract(p0)).Normalize()
	return &Triangle{
		Positions: [3]core.Point3{p0, p1, p2},
		Normals:   [3]core.Dir3{normal, normal, normal},
		UVs:       [3]core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0, 1)},
	}
}

// Hit intersects the triangle's plane and then checks the barycentric
// weights, each of which must lie strictly inside (0, 1).
func (tr *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.SurfaceInteraction, bool) {
	p0, p1, p2 := tr.Positions[0], tr.Positions[1], tr.Positions[2]
	edge1 := p1.Subtract(p0)
	edge2 := p2.Subtract(p0)
	normal := edge1.Cross(edge2).Normalize()

	denom := ray.Direction.Dot(normal)
	if math.Abs(denom) <= parallelEpsilon {
		return nil, false
	}

	t := p0.Subtract(ray.Origin).Dot(normal) / denom
	if !inRange(t, tMin, tMax) {
		return nil, false
	}

	point := ray.At(t)
	q := point.Subtract(p0)

	perp2 := normal.Cross(edge2)
	w1 := q.Dot(perp2) / edge1.Dot(perp2)
	if !(w1 > 0 && w1 < 1) {
		return nil, false
	}
	perp1 := normal.Cross(edge1)
	w2 := q.Dot(perp1) / edge2.Dot(perp1)
	w0 := 1 - w1 - w2
	if !(w2 > 0 && w0 > 0) {
		return nil, false
	}

	shadingNormal := tr.Normals[0].Multiply(w0).
		Add(tr.Normals[1].Multiply(w1)).
		Add(tr.Normals[2].Multiply(w2)).
		NormalizeOr(normal)
	uv := tr.UVs[0].Multiply(w0).Add(tr.UVs[1].Multiply(w1)).Add(tr.UVs[2].Multiply(w2))

	hit := &core.SurfaceInteraction{
		Point: point,
		T:     t,
		UV:    uv,
	}
	hit.SetFaceNormal(ray, shadingNormal)

	return hit, true
}

// BoundingBox bounds the three vertices. Axes along which the triangle is
// flat get the same padding as a Rect.
func (tr *Triangle) BoundingBox() (core.AABB, bool) {
	box := core.NewAABBFromPoints(tr.Positions[:]...)
	for axis := 0; axis < 3; axis++ {
		if box.Max.Axis(axis)-box.Min.Axis(axis) < RectThickness {
			box.Min = box.Min.WithAxis(axis, box.Min.Axis(axis)-RectThickness)
			box.Max = box.Max.WithAxis(axis, box.Max.Axis(axis)+RectThickness)
		}
	}
	return box, true
}
