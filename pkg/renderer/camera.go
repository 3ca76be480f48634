package renderer

import (
	"math"

	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// CameraConfig describes a perspective camera with an optional thin lens and
// shutter interval
type CameraConfig struct {
	Center        core.Point3 // Camera position
	LookAt        core.Point3 // Point the camera looks at
	Up            core.Dir3   // Up direction
	AspectRatio   float64     // Width over height
	VFov          float64     // Vertical field of view in degrees
	Aperture      float64     // Lens diameter, 0 for a pinhole
	FocusDistance float64     // Distance to the focal plane, 0 to focus on LookAt
	ShutterOpen   float64     // Ray time when the shutter opens
	ShutterClose  float64     // Ray time when the shutter closes
}

// DefaultCameraConfig looks down -z from the origin
func DefaultCameraConfig() CameraConfig {
	return CameraConfig{
		Center:      core.NewVec3(0, 0, 0),
		LookAt:      core.NewVec3(0, 0, -1),
		Up:          core.Up,
		AspectRatio: 16.0 / 9.0,
		VFov:        90,
	}
}

// Camera generates rays for rendering
type Camera struct {
	origin          core.Point3
	upperLeftCorner core.Point3
	horizontal      core.Dir3
	vertical        core.Dir3
	u, v, w         core.Dir3
	lensRadius      float64
	shutterOpen     float64
	shutterClose    float64
}

// NewCamera creates a camera from config
func NewCamera(config CameraConfig) *Camera {
	theta := config.VFov * math.Pi / 180
	viewportHeight := 2 * math.Tan(theta/2)
	viewportWidth := config.AspectRatio * viewportHeight

	w := config.Center.Subtract(config.LookAt).Normalize()
	u := config.Up.Cross(w).Normalize()
	v := w.Cross(u)

	focusDistance := config.FocusDistance
	if focusDistance <= 0 {
		focusDistance = config.Center.Subtract(config.LookAt).Length()
	}

	horizontal := u.Multiply(viewportWidth * focusDistance)
	vertical := v.Multiply(viewportHeight * focusDistance)
	upperLeftCorner := config.Center.
		Subtract(horizontal.Multiply(0.5)).
		Add(vertical.Multiply(0.5)).
		Subtract(w.Multiply(focusDistance))

	return &Camera{
		origin:          config.Center,
		upperLeftCorner: upperLeftCorner,
		horizontal:      horizontal,
		vertical:        vertical,
		u:               u,
		v:               v,
		w:               w,
		lensRadius:      config.Aperture / 2,
		shutterOpen:     config.ShutterOpen,
		shutterClose:    config.ShutterClose,
	}
}

// GetRay generates a unit-direction ray for screen coordinates (s, t) where
// (0, 0) is the upper left corner and (1, 1) the lower right. The origin is
// jittered over the lens and the time over the shutter interval.
func (c *Camera) GetRay(sampler core.Sampler, s, t float64) core.Ray {
	origin := c.origin
	if c.lensRadius > 0 {
		lens := core.SamplePointInUnitDisk(sampler.Get2D()).Multiply(c.lensRadius)
		origin = origin.Add(c.u.Multiply(lens.X)).Add(c.v.Multiply(lens.Y))
	}

	time := c.shutterOpen
	if c.shutterClose > c.shutterOpen {
		time += sampler.Get1D() * (c.shutterClose - c.shutterOpen)
	}

	target := c.upperLeftCorner.
		Add(c.horizontal.Multiply(s)).
		Subtract(c.vertical.Multiply(t))

	return core.NewRayAtTime(origin, target.Subtract(origin).Normalize(), time)
}

// Forward returns the direction the camera looks in
func (c *Camera) Forward() core.Dir3 {
	return c.w.Negate()
}
