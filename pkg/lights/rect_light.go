package lights

import (
	"math"

	"github.com/df07/go-mis-pathtracer/pkg/core"
	"github.com/df07/go-mis-pathtracer/pkg/geometry"
)

// minLightDistance skips hits at the shading point itself
const minLightDistance = 0.001

// RectLight samples directions toward an axis-aligned rectangle
type RectLight struct {
	Rect *geometry.Rect
}

// NewRectLight creates a new rect light
func NewRectLight(rect *geometry.Rect) *RectLight {
	return &RectLight{Rect: rect}
}

// Sample picks a uniform point on the rect and returns the direction to it
func (rl *RectLight) Sample(origin core.Point3, sampler core.Sampler) core.Dir3 {
	return rl.Rect.SamplePoint(sampler).Subtract(origin).Normalize()
}

// PDF converts the uniform area density 1/area into solid angle:
// distance² / (|cos θ| · area). Directions that miss the rect get zero.
func (rl *RectLight) PDF(origin core.Point3, direction core.Dir3) float64 {
	hit, ok := rl.Rect.Hit(core.NewRay(origin, direction), minLightDistance, math.Inf(1))
	if !ok {
		return 0
	}

	cosine := math.Abs(hit.Normal.Dot(direction))
	return hit.T * hit.T / (cosine * rl.Rect.Area())
}
