package lights

import "github.com/df07/go-mis-pathtracer/pkg/core"

// Light is a world-space distribution of directions toward an emitter, used
// for importance sampling direct light
type Light interface {
	// Sample returns a unit direction from origin toward a point on the light
	Sample(origin core.Point3, sampler core.Sampler) core.Dir3

	// PDF is the solid-angle density of Sample producing direction, or zero
	// when the direction misses the light
	PDF(origin core.Point3, direction core.Dir3) float64
}

// Distribution binds a light to a shading point so it can be mixed with
// material distributions
type Distribution struct {
	Light  Light
	Origin core.Point3
}

// At returns the light's direction distribution as seen from origin
func At(light Light, origin core.Point3) Distribution {
	return Distribution{Light: light, Origin: origin}
}

// Generate samples a direction toward the light
func (d Distribution) Generate(sampler core.Sampler) core.Dir3 {
	return d.Light.Sample(d.Origin, sampler)
}

// Value returns the solid-angle density of direction
func (d Distribution) Value(direction core.Dir3) float64 {
	return d.Light.PDF(d.Origin, direction)
}

// IsDelta is false for area lights
func (d Distribution) IsDelta() bool {
	return false
}
