package geometry

import (
	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// Geometry is a shape that can be intersected by rays. Hits are accepted
// only for t in the half-open range [tMin, tMax).
type Geometry interface {
	Hit(ray core.Ray, tMin, tMax float64) (*core.SurfaceInteraction, bool)
	// BoundingBox returns false when the shape has no finite bounds
	BoundingBox() (core.AABB, bool)
}

// inRange reports whether t lies in [tMin, tMax). NaN is never in range.
func inRange(t, tMin, tMax float64) bool {
	return t >= tMin && t < tMax
}
