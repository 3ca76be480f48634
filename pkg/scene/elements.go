package scene

import (
	"math"

	"github.com/df07/go-mis-pathtracer/pkg/core"
	"github.com/df07/go-mis-pathtracer/pkg/geometry"
	"github.com/df07/go-mis-pathtracer/pkg/material"
	"github.com/df07/go-mis-pathtracer/pkg/transform"
)

// volumeExitOffset is how far past the entry point the exit search starts
const volumeExitOffset = 0.001

// ElementID addresses an element inside a Scene
type ElementID int

// Element is one node of the flattened scene. The set of variants is closed:
// Group, BVHElement, SurfaceElement, VolumeElement, AnimationElement and
// TransformElement.
type Element interface {
	isElement()
}

// Group hits the nearest of its children
type Group struct {
	Children []ElementID
}

// BVHElement wraps a bounding volume hierarchy over other elements
type BVHElement struct {
	BVH *BVH
}

// SurfaceElement is a geometry with a material
type SurfaceElement struct {
	Geometry geometry.Geometry
	Material material.Material
}

// VolumeElement is a constant-density medium filling a closed boundary
type VolumeElement struct {
	Boundary geometry.Geometry
	Phase    material.Material
	Density  float64
}

// AnimationElement moves its child with constant velocity over ray time
type AnimationElement struct {
	Child    ElementID
	Velocity core.Dir3
}

// TransformElement places its child with a rigid transform
type TransformElement struct {
	Child     ElementID
	Transform transform.Transformation
}

func (Group) isElement()            {}
func (BVHElement) isElement()       {}
func (SurfaceElement) isElement()   {}
func (VolumeElement) isElement()    {}
func (AnimationElement) isElement() {}
func (TransformElement) isElement() {}

// HitRecord is a surface interaction together with the material to shade it with
type HitRecord struct {
	core.SurfaceInteraction
	Material material.Material
}

// TimeRange is the shutter interval used to bound moving elements
type TimeRange struct {
	Start, End float64
}

// Scene owns every element; elements refer to each other by ElementID.
// A Scene is read-only once built and safe for concurrent use.
type Scene struct {
	elements []Element
}

// NewScene creates an empty scene
func NewScene() *Scene {
	return &Scene{}
}

// Add stores an element and returns its id
func (s *Scene) Add(element Element) ElementID {
	s.elements = append(s.elements, element)
	return ElementID(len(s.elements) - 1)
}

// Element returns the element stored under id
func (s *Scene) Element(id ElementID) Element {
	return s.elements[id]
}

// Len returns the number of stored elements
func (s *Scene) Len() int {
	return len(s.elements)
}

// Hit finds the nearest hit of the ray with element id in [tMin, tMax).
// The sampler is consumed by participating media.
func (s *Scene) Hit(id ElementID, ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*HitRecord, bool) {
	switch e := s.elements[id].(type) {
	case Group:
		return s.hitList(e.Children, ray, tMin, tMax, sampler)

	case BVHElement:
		return e.BVH.Hit(s, ray, tMin, tMax, sampler)

	case SurfaceElement:
		si, ok := e.Geometry.Hit(ray, tMin, tMax)
		if !ok {
			return nil, false
		}
		return &HitRecord{SurfaceInteraction: *si, Material: e.Material}, true

	case VolumeElement:
		return e.hit(ray, tMin, tMax, sampler)

	case AnimationElement:
		return s.hitTransformed(e.Child, transform.Translate(e.Velocity.Multiply(ray.Time)), ray, tMin, tMax, sampler)

	case TransformElement:
		return s.hitTransformed(e.Child, e.Transform, ray, tMin, tMax, sampler)
	}

	panic("scene: unknown element type")
}

func (s *Scene) hitList(ids []ElementID, ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*HitRecord, bool) {
	var closest *HitRecord
	closestSoFar := tMax
	for _, id := range ids {
		if hit, ok := s.Hit(id, ray, tMin, closestSoFar, sampler); ok {
			closest = hit
			closestSoFar = hit.T
		}
	}
	return closest, closest != nil
}

func (s *Scene) hitTransformed(child ElementID, t transform.Transformation, ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*HitRecord, bool) {
	hit, ok := s.Hit(child, t.ReverseRay(ray), tMin, tMax, sampler)
	if !ok {
		return nil, false
	}
	hit.SurfaceInteraction = t.ApplyInteraction(hit.SurfaceInteraction)
	return hit, true
}

// hit samples a free-flight distance inside the medium. The boundary is
// crossed twice: once to find where the ray enters, once to find where it
// leaves.
func (v VolumeElement) hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*HitRecord, bool) {
	entry, ok := v.Boundary.Hit(ray, math.Inf(-1), math.Inf(1))
	if !ok {
		return nil, false
	}
	exit, ok := v.Boundary.Hit(ray, entry.T+volumeExitOffset, math.Inf(1))
	if !ok {
		return nil, false
	}

	start := math.Max(entry.T, tMin)
	end := math.Min(exit.T, tMax)
	if start >= end {
		return nil, false
	}

	t := math.Max(start, 0) - math.Log(sampler.Get1D())/v.Density
	if t > end {
		return nil, false
	}

	return &HitRecord{
		SurfaceInteraction: core.SurfaceInteraction{
			Point:  ray.At(t),
			Normal: core.Up, // arbitrary; the phase function ignores it
			T:      t,
		},
		Material: v.Phase,
	}, true
}

// BoundingBox returns the bounds of element id over the time range, or false
// when the element has no finite bounds
func (s *Scene) BoundingBox(id ElementID, timeRange TimeRange) (core.AABB, bool) {
	switch e := s.elements[id].(type) {
	case Group:
		if len(e.Children) == 0 {
			return core.AABB{}, false
		}
		var bounds core.AABB
		for i, child := range e.Children {
			box, ok := s.BoundingBox(child, timeRange)
			if !ok {
				return core.AABB{}, false
			}
			if i == 0 {
				bounds = box
			} else {
				bounds = bounds.Union(box)
			}
		}
		return bounds, true

	case BVHElement:
		return e.BVH.BoundingBox()

	case SurfaceElement:
		return e.Geometry.BoundingBox()

	case VolumeElement:
		return e.Boundary.BoundingBox()

	case AnimationElement:
		box, ok := s.BoundingBox(e.Child, timeRange)
		if !ok {
			return core.AABB{}, false
		}
		start := box.Translate(e.Velocity.Multiply(timeRange.Start))
		end := box.Translate(e.Velocity.Multiply(timeRange.End))
		return start.Union(end), true

	case TransformElement:
		box, ok := s.BoundingBox(e.Child, timeRange)
		if !ok {
			return core.AABB{}, false
		}
		return e.Transform.ApplyAABB(box), true
	}

	panic("scene: unknown element type")
}
