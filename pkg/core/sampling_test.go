package core

import (
	"math"
	"math/rand"
	"testing"
)

func TestSampleOnUnitSphere_UnitLength(t *testing.T) {
	sampler := NewRandomSampler(rand.New(rand.NewSource(42)))
	var mean Vec3
	const n = 20000
	for i := 0; i < n; i++ {
		d := SampleOnUnitSphere(sampler.Get2D())
		if math.Abs(d.Length()-1) > 1e-9 {
			t.Fatalf("Expected unit length, got %f", d.Length())
		}
		mean = mean.Add(d)
	}

	// A uniform sphere distribution has zero mean
	mean = mean.Multiply(1.0 / n)
	if mean.Length() > 0.03 {
		t.Errorf("Expected mean near zero, got %v", mean)
	}
}

func TestSamplePointInUnitSphere_Inside(t *testing.T) {
	sampler := NewSeededSampler(3)
	for i := 0; i < 5000; i++ {
		p := SamplePointInUnitSphere(sampler.Get3D())
		if p.Length() > 1+1e-12 {
			t.Fatalf("Point %v lies outside the unit sphere", p)
		}
	}
}

func TestSeededSampler_Deterministic(t *testing.T) {
	a := NewSeededSampler(99)
	b := NewSeededSampler(99)
	for i := 0; i < 100; i++ {
		if a.Get1D() != b.Get1D() {
			t.Fatal("Samplers with the same seed must produce the same stream")
		}
	}
}
