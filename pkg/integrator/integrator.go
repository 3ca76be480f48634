package integrator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/df07/go-mis-pathtracer/pkg/core"
	"github.com/df07/go-mis-pathtracer/pkg/scene"
)

// ErrUnknownMode is returned by ParseMode for names it does not recognise
var ErrUnknownMode = errors.New("integrator: unknown render mode")

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor returns the linear radiance arriving along ray
	RayColor(ray core.Ray, world *scene.World, sampler core.Sampler) core.Color
}

// Mode selects what a render computes per camera ray
type Mode int

const (
	// ModeDefault is full path tracing
	ModeDefault Mode = iota
	// ModeNormals shows the first hit's normal as a color
	ModeNormals
)

func (m Mode) String() string {
	switch m {
	case ModeDefault:
		return "default"
	case ModeNormals:
		return "normals"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode maps a mode name to a Mode, ignoring case
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return ModeDefault, nil
	case "normals", "normal":
		return ModeNormals, nil
	}
	return ModeDefault, fmt.Errorf("%q: %w", name, ErrUnknownMode)
}

// New returns the integrator for mode
func New(mode Mode, maxDepth int) Integrator {
	if mode == ModeNormals {
		return NormalsIntegrator{}
	}
	return NewPathTracingIntegrator(maxDepth)
}

// NormalsIntegrator renders the first hit's normal remapped to [0,1], or the
// background on a miss. It is only a visual sanity check.
type NormalsIntegrator struct{}

// RayColor returns (n+1)/2 for the nearest hit
func (NormalsIntegrator) RayColor(ray core.Ray, world *scene.World, sampler core.Sampler) core.Color {
	hit, isHit := world.Hit(ray, hitEpsilon, infinity, sampler)
	if !isHit {
		return world.Background.Sample(ray)
	}
	return hit.Normal.Add(core.NewVec3(1, 1, 1)).Multiply(0.5)
}
