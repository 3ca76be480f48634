package material

import (
	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// DiffuseLight represents a light-emitting material. It emits the same
// radiance from both sides of a surface.
type DiffuseLight struct {
	Emission ColorSource
}

// NewDiffuseLight creates a new emissive material with a solid color
func NewDiffuseLight(emission core.Color) *DiffuseLight {
	return &DiffuseLight{Emission: NewSolidColor(emission)}
}

// Scatter always absorbs; lights only emit
func (e *DiffuseLight) Scatter(rayIn core.Ray, hit core.SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool) {
	return ScatterResult{}, false
}

// ScatteringPDF is zero; the material never scatters
func (e *DiffuseLight) ScatteringPDF(rayIn core.Ray, scattered core.Dir3, hit core.SurfaceInteraction) float64 {
	return 0
}

// Emit returns the emission texture at the hit point
func (e *DiffuseLight) Emit(rayIn core.Ray, hit core.SurfaceInteraction) core.Color {
	return e.Emission.Evaluate(hit.UV, hit.Point)
}
