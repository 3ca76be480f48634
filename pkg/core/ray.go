package core

// Ray represents a ray with an origin, a unit direction and a time stamp
// used for motion blur.
type Ray struct {
	Origin    Point3
	Direction Dir3
	Time      float64
}

// NewRay creates a new ray at time zero
func NewRay(origin Point3, direction Dir3) Ray {
	return Ray{Origin: origin, Direction: direction}
}

// NewRayAtTime creates a new ray for the given shutter time
func NewRayAtTime(origin Point3, direction Dir3, time float64) Ray {
	return Ray{Origin: origin, Direction: direction, Time: time}
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Point3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// SurfaceInteraction describes where and how a ray met a surface.
type SurfaceInteraction struct {
	Point     Point3 // Point of intersection
	Normal    Dir3   // Unit normal, always facing against the incoming ray
	UV        Vec2   // Surface parameterization
	T         float64
	FrontFace bool // True when the ray hit the side the outward normal points to
}

// SetFaceNormal sets the normal vector and determines front/back face
func (si *SurfaceInteraction) SetFaceNormal(ray Ray, outwardNormal Dir3) {
	si.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if si.FrontFace {
		si.Normal = outwardNormal
	} else {
		si.Normal = outwardNormal.Negate()
	}
}
