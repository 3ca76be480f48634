package material

import (
	"math"

	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// Isotropic is the phase function of a participating medium: it scatters
// uniformly over the sphere of directions.
type Isotropic struct {
	Albedo ColorSource
}

// NewIsotropic creates a new isotropic phase material with a solid color
func NewIsotropic(albedo core.Color) *Isotropic {
	return &Isotropic{Albedo: NewSolidColor(albedo)}
}

// Scatter samples the phase function exactly, so the chosen direction is
// reported as a delta distribution with weight one
func (i *Isotropic) Scatter(rayIn core.Ray, hit core.SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{
		Attenuation:  i.Albedo.Evaluate(hit.UV, hit.Point),
		Distribution: DeltaDistribution{Direction: core.SampleOnUnitSphere(sampler.Get2D())},
	}, true
}

// ScatteringPDF returns the uniform sphere density
func (i *Isotropic) ScatteringPDF(rayIn core.Ray, scattered core.Dir3, hit core.SurfaceInteraction) float64 {
	return 1 / (4 * math.Pi)
}
