package material

import (
	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo ColorSource // Base color/reflectance (can be solid or textured)
}

// NewLambertian creates a new lambertian material with a solid color
func NewLambertian(albedo core.Color) *Lambertian {
	return &Lambertian{Albedo: NewSolidColor(albedo)}
}

// NewTexturedLambertian creates a new lambertian material with texture
func NewTexturedLambertian(albedoTexture ColorSource) *Lambertian {
	return &Lambertian{Albedo: albedoTexture}
}

// Scatter always scatters into the cosine lobe around the normal. The cosine
// and 1/π of the BRDF cancel against the lobe's density, leaving the albedo.
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{
		Attenuation:  l.Albedo.Evaluate(hit.UV, hit.Point),
		Distribution: CosineDistribution{Normal: hit.Normal},
	}, true
}

// ScatteringPDF returns max(0, cos θ) / π
func (l *Lambertian) ScatteringPDF(rayIn core.Ray, scattered core.Dir3, hit core.SurfaceInteraction) float64 {
	return cosinePDF(hit.Normal, scattered)
}
