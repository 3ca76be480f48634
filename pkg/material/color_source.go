package material

import (
	"math"

	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// ColorSource provides spatially-varying colors for materials
type ColorSource interface {
	// Evaluate returns color at given UV coordinates and 3D point
	// UV is used for image textures, point for procedural textures
	Evaluate(uv core.Vec2, point core.Point3) core.Color
}

// SolidColor provides uniform color
type SolidColor struct {
	Color core.Color
}

// NewSolidColor creates a new solid color source
func NewSolidColor(color core.Color) *SolidColor {
	return &SolidColor{Color: color}
}

// Evaluate returns the solid color regardless of UV or position
func (s *SolidColor) Evaluate(uv core.Vec2, point core.Point3) core.Color {
	return s.Color
}

// CheckerTexture alternates between two sources in a 3-D pattern driven by
// the product of sines of the scaled world position
type CheckerTexture struct {
	Frequency float64
	Even      ColorSource
	Odd       ColorSource
}

// NewCheckerTexture creates a solid-colored 3-D checker
func NewCheckerTexture(frequency float64, even, odd core.Color) *CheckerTexture {
	return &CheckerTexture{Frequency: frequency, Even: NewSolidColor(even), Odd: NewSolidColor(odd)}
}

// Evaluate picks Even where the sine product is negative
func (c *CheckerTexture) Evaluate(uv core.Vec2, point core.Point3) core.Color {
	s := point.Multiply(c.Frequency)
	if math.Sin(s.X)*math.Sin(s.Y)*math.Sin(s.Z) < 0 {
		return c.Even.Evaluate(uv, point)
	}
	return c.Odd.Evaluate(uv, point)
}
