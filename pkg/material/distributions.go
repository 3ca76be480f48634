package material

import (
	"math"

	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// ScatteringDistribution is a distribution of outgoing directions
type ScatteringDistribution interface {
	Generate(sampler core.Sampler) core.Dir3
	// Value is the density for direction. Delta distributions report 1.
	Value(direction core.Dir3) float64
	IsDelta() bool
}

// CosineDistribution draws directions from the cosine-weighted hemisphere
// around Normal
type CosineDistribution struct {
	Normal core.Dir3
}

// Generate adds a uniform unit-sphere point to the normal and renormalizes
func (c CosineDistribution) Generate(sampler core.Sampler) core.Dir3 {
	return c.Normal.Add(core.SampleOnUnitSphere(sampler.Get2D())).NormalizeOr(c.Normal)
}

// Value returns max(0, cos θ) / π
func (c CosineDistribution) Value(direction core.Dir3) float64 {
	return cosinePDF(c.Normal, direction)
}

// IsDelta is always false
func (c CosineDistribution) IsDelta() bool {
	return false
}

func cosinePDF(normal, direction core.Dir3) float64 {
	return math.Max(0, normal.Dot(direction)) / math.Pi
}

// DeltaDistribution always produces Direction
type DeltaDistribution struct {
	Direction core.Dir3
}

// Generate returns the fixed direction
func (d DeltaDistribution) Generate(sampler core.Sampler) core.Dir3 {
	return d.Direction
}

// Value is 1, so a delta sample carries weight one
func (d DeltaDistribution) Value(direction core.Dir3) float64 {
	return 1
}

// IsDelta is always true
func (d DeltaDistribution) IsDelta() bool {
	return true
}
