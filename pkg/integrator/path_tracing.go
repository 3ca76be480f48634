package integrator

import (
	"math"

	"github.com/df07/go-mis-pathtracer/pkg/core"
	"github.com/df07/go-mis-pathtracer/pkg/lights"
	"github.com/df07/go-mis-pathtracer/pkg/material"
	"github.com/df07/go-mis-pathtracer/pkg/scene"
)

const (
	// hitEpsilon keeps a scattered ray from hitting the surface it leaves
	hitEpsilon = 0.001

	// lightMix is the chance of drawing a direction from the world light
	// instead of the material
	lightMix = 0.5
)

var infinity = math.Inf(1)

// PathTracingIntegrator implements unidirectional path tracing with a
// mixture of light and material sampling for diffuse bounces
type PathTracingIntegrator struct {
	maxDepth int
}

// NewPathTracingIntegrator creates a path tracer that follows at most
// maxDepth-1 bounces
func NewPathTracingIntegrator(maxDepth int) *PathTracingIntegrator {
	return &PathTracingIntegrator{maxDepth: maxDepth}
}

// RayColor follows one path from ray until it escapes, is absorbed or runs
// out of depth. A hit with one level of depth left contributes black.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, world *scene.World, sampler core.Sampler) core.Color {
	depth := pt.maxDepth
	throughput := core.NewVec3(1, 1, 1)
	radiance := core.Color{}
	current := ray

	for {
		hit, isHit := world.Hit(current, hitEpsilon, infinity, sampler)
		if !isHit {
			return radiance.Add(throughput.MultiplyVec(world.Background.Sample(current)))
		}
		if depth <= 1 {
			return core.Color{}
		}

		emitted := material.EmittedLight(hit.Material, current, hit.SurfaceInteraction)
		radiance = radiance.Add(throughput.MultiplyVec(emitted))

		scatter, didScatter := hit.Material.Scatter(current, hit.SurfaceInteraction, sampler)
		if !didScatter {
			return radiance
		}

		direction, weight, ok := pt.sampleDirection(current, hit, scatter.Distribution, world.Light, sampler)
		if !ok {
			return radiance
		}

		throughput = throughput.MultiplyVec(scatter.Attenuation).Multiply(weight)
		current = core.NewRayAtTime(hit.Point, direction, current.Time)
		depth--
	}
}

// sampleDirection picks the next direction and its throughput weight. Delta
// distributions are followed with weight 1. Otherwise the direction comes
// from an even mixture of the world light and the material, weighted by the
// material's density over the mixture density. ok is false when the mixture
// density is zero or not finite, or the weight is zero.
func (pt *PathTracingIntegrator) sampleDirection(rayIn core.Ray, hit *scene.HitRecord, distribution material.ScatteringDistribution, light lights.Light, sampler core.Sampler) (core.Dir3, float64, bool) {
	if distribution.IsDelta() {
		return distribution.Generate(sampler), 1, true
	}

	var direction core.Dir3
	var p float64
	if light != nil {
		lightDistribution := lights.At(light, hit.Point)
		if sampler.Get1D() < lightMix {
			direction = lightDistribution.Generate(sampler)
		} else {
			direction = distribution.Generate(sampler)
		}
		p = lightMix*lightDistribution.Value(direction) + (1-lightMix)*distribution.Value(direction)
	} else {
		direction = distribution.Generate(sampler)
		p = distribution.Value(direction)
	}

	if !(p > 0) || math.IsInf(p, 1) {
		return direction, 0, false
	}

	weight := hit.Material.ScatteringPDF(rayIn, direction, hit.SurfaceInteraction) / p
	if !(weight > 0) || math.IsInf(weight, 1) {
		return direction, 0, false
	}
	return direction, weight, true
}
