package scene

import (
	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// SolidBackground returns the same color for every escaping ray
type SolidBackground struct {
	Color core.Color
}

// Sample returns the background color
func (b SolidBackground) Sample(ray core.Ray) core.Color {
	return b.Color
}

// SkyBackground blends from Bottom for rays pointing straight down to Top for
// rays pointing straight up
type SkyBackground struct {
	Bottom core.Color
	Top    core.Color
}

// NewSkyBackground returns the usual white to light blue sky
func NewSkyBackground() SkyBackground {
	return SkyBackground{Bottom: core.NewVec3(1, 1, 1), Top: core.NewVec3(0.5, 0.7, 1.0)}
}

// Sample blends on the up component of the ray direction
func (b SkyBackground) Sample(ray core.Ray) core.Color {
	t := 0.5 * (ray.Direction.Normalize().Y + 1)
	return b.Bottom.Multiply(1 - t).Add(b.Top.Multiply(t))
}
