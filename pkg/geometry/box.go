package geometry

import (
	"math"

	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// Box is a solid axis-aligned box. Rotated boxes are expressed by wrapping
// a Box in a transform.
type Box struct {
	Bounds core.AABB
}

// NewBox creates a box spanning the two corner points
func NewBox(min, max core.Point3) *Box {
	return &Box{Bounds: core.NewAABBFromPoints(min, max)}
}

// Hit runs a slab test that remembers which face the ray enters and leaves
// through. A ray starting inside the box hits the exit face.
func (b *Box) Hit(ray core.Ray, tMin, tMax float64) (*core.SurfaceInteraction, bool) {
	enter, exit := math.Inf(-1), math.Inf(1)
	enterAxis, exitAxis := -1, -1

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		direction := ray.Direction.Axis(axis)
		lo, hi := b.Bounds.Min.Axis(axis), b.Bounds.Max.Axis(axis)

		if direction == 0 {
			if origin < lo || origin > hi {
				return nil, false
			}
			continue
		}

		t1 := (lo - origin) / direction
		t2 := (hi - origin) / direction
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > enter {
			enter, enterAxis = t1, axis
		}
		if t2 < exit {
			exit, exitAxis = t2, axis
		}
		if enter > exit {
			return nil, false
		}
	}

	var t float64
	var faceAxis int
	var outward core.Vec3
	switch {
	case enterAxis >= 0 && inRange(enter, tMin, tMax):
		// Entering through the min face when travelling in the positive direction
		t, faceAxis = enter, enterAxis
		outward = core.Vec3{}.WithAxis(enterAxis, -math.Copysign(1, ray.Direction.Axis(enterAxis)))
	case exitAxis >= 0 && inRange(exit, tMin, tMax):
		t, faceAxis = exit, exitAxis
		outward = core.Vec3{}.WithAxis(exitAxis, math.Copysign(1, ray.Direction.Axis(exitAxis)))
	default:
		return nil, false
	}

	point := ray.At(t)

	hit := &core.SurfaceInteraction{
		Point: point,
		T:     t,
		UV:    b.faceUV(point, faceAxis),
	}
	hit.SetFaceNormal(ray, outward)

	return hit, true
}

// faceUV normalizes the hit point over the two axes spanning the face
func (b *Box) faceUV(p core.Point3, faceAxis int) core.Vec2 {
	a0, a1 := (faceAxis+1)%3, (faceAxis+2)%3
	size := b.Bounds.Size()
	u := (p.Axis(a0) - b.Bounds.Min.Axis(a0)) / size.Axis(a0)
	v := (p.Axis(a1) - b.Bounds.Min.Axis(a1)) / size.Axis(a1)
	return core.NewVec2(u, v)
}

// BoundingBox returns the box itself
func (b *Box) BoundingBox() (core.AABB, bool) {
	return b.Bounds, true
}
