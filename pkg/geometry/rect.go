package geometry

import (
	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// RectThickness pads a rect's bounding box along its normal axis so the box
// is never flat.
const RectThickness = 0.001

// Plane selects the axis-aligned plane a Rect lies in
type Plane int

const (
	PlaneXY Plane = iota
	PlaneXZ
	PlaneYZ
)

// Axes returns the two in-plane axes followed by the normal axis
func (p Plane) Axes() (int, int, int) {
	switch p {
	case PlaneXY:
		return 0, 1, 2
	case PlaneXZ:
		return 0, 2, 1
	default:
		return 1, 2, 0
	}
}

func (p Plane) String() string {
	switch p {
	case PlaneXY:
		return "xy"
	case PlaneXZ:
		return "xz"
	default:
		return "yz"
	}
}

// Range is a closed interval [Min, Max]
type Range struct {
	Min, Max float64
}

// Contains reports whether v lies in the interval
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Length returns the interval width
func (r Range) Length() float64 {
	return r.Max - r.Min
}

// Rect is an axis-aligned rectangle lying in Plane at coordinate Dist along
// the plane's normal axis, spanning R0 on the first in-plane axis and R1 on
// the second.
type Rect struct {
	Plane Plane
	Dist  float64
	R0    Range
	R1    Range
}

// NewRect creates a new axis-aligned rectangle
func NewRect(plane Plane, dist float64, r0, r1 Range) *Rect {
	return &Rect{Plane: plane, Dist: dist, R0: r0, R1: r1}
}

// Hit tests the ray against the rectangle's plane and ranges. The outward
// normal always points down the negative normal axis.
func (r *Rect) Hit(ray core.Ray, tMin, tMax float64) (*core.SurfaceInteraction, bool) {
	a0, a1, n := r.Plane.Axes()

	t := (r.Dist - ray.Origin.Axis(n)) / ray.Direction.Axis(n)
	if !inRange(t, tMin, tMax) {
		return nil, false
	}

	point := ray.At(t)
	u, v := point.Axis(a0), point.Axis(a1)
	if !r.R0.Contains(u) || !r.R1.Contains(v) {
		return nil, false
	}

	hit := &core.SurfaceInteraction{
		Point: point,
		T:     t,
		UV:    core.NewVec2((u-r.R0.Min)/r.R0.Length(), (v-r.R1.Min)/r.R1.Length()),
	}
	hit.SetFaceNormal(ray, core.Vec3{}.WithAxis(n, -1))

	return hit, true
}

// Area returns the rectangle's surface area
func (r *Rect) Area() float64 {
	return r.R0.Length() * r.R1.Length()
}

// SamplePoint returns a uniformly distributed point on the rectangle
func (r *Rect) SamplePoint(sampler core.Sampler) core.Point3 {
	a0, a1, n := r.Plane.Axes()
	sample := sampler.Get2D()
	return core.Vec3{}.
		WithAxis(a0, r.R0.Min+sample.X*r.R0.Length()).
		WithAxis(a1, r.R1.Min+sample.Y*r.R1.Length()).
		WithAxis(n, r.Dist)
}

// BoundingBox returns the rectangle's bounds, padded along the normal axis
func (r *Rect) BoundingBox() (core.AABB, bool) {
	a0, a1, n := r.Plane.Axes()
	min := core.Vec3{}.WithAxis(a0, r.R0.Min).WithAxis(a1, r.R1.Min).WithAxis(n, r.Dist-RectThickness)
	max := core.Vec3{}.WithAxis(a0, r.R0.Max).WithAxis(a1, r.R1.Max).WithAxis(n, r.Dist+RectThickness)
	return core.NewAABB(min, max), true
}
