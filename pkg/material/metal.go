package material

import (
	"math"

	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo ColorSource
	Fuzz   float64 // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material. Fuzz is clamped to [0, 1].
func NewMetal(albedo core.Color, fuzz float64) *Metal {
	return &Metal{Albedo: NewSolidColor(albedo), Fuzz: math.Max(0, math.Min(fuzz, 1))}
}

// Scatter reflects the incoming ray, perturbed by a point in a ball of radius
// Fuzz. Directions pushed below the surface are absorbed.
func (m *Metal) Scatter(rayIn core.Ray, hit core.SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	reflected := core.Reflect(rayIn.Direction.Normalize(), hit.Normal)
	if m.Fuzz > 0 {
		reflected = reflected.Add(core.SamplePointInUnitSphere(sampler.Get3D()).Multiply(m.Fuzz))
	}

	if reflected.Dot(hit.Normal) <= 0 {
		return ScatterResult{}, false
	}

	return ScatterResult{
		Attenuation:  m.Albedo.Evaluate(hit.UV, hit.Point),
		Distribution: DeltaDistribution{Direction: reflected.Normalize()},
	}, true
}

// ScatteringPDF is zero; mirror reflection has no density
func (m *Metal) ScatteringPDF(rayIn core.Ray, scattered core.Dir3, hit core.SurfaceInteraction) float64 {
	return 0
}
