package material

import (
	"math"
	"math/rand"

	"github.com/df07/go-mis-pathtracer/pkg/core"
)

// Perlin is gradient noise over a lattice of random unit vectors. The
// lattice repeats every 2^bits cells along each axis.
type Perlin struct {
	mask     int
	gradient []core.Vec3
	permX    []int
	permY    []int
	permZ    []int
}

// NewPerlin draws the gradients and per-axis permutations from rng
func NewPerlin(bits int, rng *rand.Rand) *Perlin {
	size := 1 << bits
	p := &Perlin{
		mask:     size - 1,
		gradient: make([]core.Vec3, size),
	}
	for i := range p.gradient {
		p.gradient[i] = core.SampleOnUnitSphere(core.NewVec2(rng.Float64(), rng.Float64()))
	}
	p.permX = rng.Perm(size)
	p.permY = rng.Perm(size)
	p.permZ = rng.Perm(size)
	return p
}

// Noise returns a smooth value in roughly [-1, 1]. It is zero at every
// lattice point.
func (p *Perlin) Noise(point core.Point3) float64 {
	fx, fy, fz := math.Floor(point.X), math.Floor(point.Y), math.Floor(point.Z)
	u, v, w := point.X-fx, point.Y-fy, point.Z-fz
	i, j, k := int(fx), int(fy), int(fz)

	// Hermite smoothing hides the lattice
	uu := u * u * (3 - 2*u)
	vv := v * v * (3 - 2*v)
	ww := w * w * (3 - 2*w)

	var accum float64
	for di := 0; di < 2; di++ {
		for dj := 0; dj < 2; dj++ {
			for dk := 0; dk < 2; dk++ {
				g := p.gradient[p.permX[(i+di)&p.mask]^p.permY[(j+dj)&p.mask]^p.permZ[(k+dk)&p.mask]]
				offset := core.NewVec3(u-float64(di), v-float64(dj), w-float64(dk))
				accum += cornerWeight(di, uu) * cornerWeight(dj, vv) * cornerWeight(dk, ww) * g.Dot(offset)
			}
		}
	}
	return accum
}

func cornerWeight(corner int, t float64) float64 {
	if corner == 1 {
		return t
	}
	return 1 - t
}

// Turbulence sums depth octaves of noise, doubling the frequency and scaling
// the amplitude by falloff at each one
func (p *Perlin) Turbulence(point core.Point3, depth int, falloff float64) float64 {
	var accum float64
	amplitude := 1.0
	for i := 0; i < depth; i++ {
		accum += amplitude * p.Noise(point)
		amplitude *= falloff
		point = point.Multiply(2)
	}
	return math.Abs(accum)
}

// MarbleTexture is a gray veined pattern: a sine along z phase-shifted by
// turbulence
type MarbleTexture struct {
	Scale float64
	Noise *Perlin
}

// NewMarbleTexture creates a marble texture over an 8-bit noise lattice
func NewMarbleTexture(scale float64, rng *rand.Rand) *MarbleTexture {
	return &MarbleTexture{Scale: scale, Noise: NewPerlin(8, rng)}
}

// Evaluate returns the same value in every channel, in [0, 1]
func (m *MarbleTexture) Evaluate(uv core.Vec2, point core.Point3) core.Color {
	t := 0.5 * (1 + math.Sin(m.Scale*point.Z+10*m.Noise.Turbulence(point, 7, 0.5)))
	return core.NewVec3(t, t, t)
}
