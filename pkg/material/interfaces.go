package material

import (
	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// Material decides how light arriving at a surface point leaves it
type Material interface {
	// Scatter returns false when the incoming ray is absorbed
	Scatter(rayIn core.Ray, hit core.SurfaceInteraction, sampler core.Sampler) (ScatterResult, bool)

	// ScatteringPDF is the density of the material's own scattering for the
	// outgoing direction. Delta materials are never asked.
	ScatteringPDF(rayIn core.Ray, scattered core.Dir3, hit core.SurfaceInteraction) float64
}

// Emitter interface for materials that emit light
type Emitter interface {
	Emit(rayIn core.Ray, hit core.SurfaceInteraction) core.Color
}

// ScatterResult contains the result of material scattering
type ScatterResult struct {
	Attenuation  core.Color
	Distribution ScatteringDistribution
}

// IsSpecular returns true if the scattered direction is fixed
func (s ScatterResult) IsSpecular() bool {
	return s.Distribution.IsDelta()
}

// EmittedLight returns the light a material emits at hit, or black for
// materials that do not emit
func EmittedLight(m Material, rayIn core.Ray, hit core.SurfaceInteraction) core.Color {
	if emitter, ok := m.(Emitter); ok {
		return emitter.Emit(rayIn, hit)
	}
	return core.Color{}
}
