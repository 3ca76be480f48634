package scene

import (
	"github.com/df07/go-mis-pathtracer/pkg/core"
	"github.com/df07/go-mis-pathtracer/pkg/lights"
)

// World is everything the integrator needs to trace a ray. It is immutable
// once built.
type World struct {
	Camera     core.Camera
	Background core.Background
	Scene      *Scene
	Root       ElementID
	Light      lights.Light // nil when the scene has no light to sample
}

// Hit intersects the ray with the world's root element
func (w *World) Hit(ray core.Ray, tMin, tMax float64, sampler core.Sampler) (*HitRecord, bool) {
	return w.Scene.Hit(w.Root, ray, tMin, tMax, sampler)
}

// NewWorld flattens the graph under root and combines it with a camera and
// background
func (b *Builder) NewWorld(root NodeID, camera core.Camera, background core.Background, timeRange TimeRange) (*World, error) {
	s, rootID, light, err := b.Finish(root, timeRange)
	if err != nil {
		return nil, err
	}
	return &World{
		Camera:     camera,
		Background: background,
		Scene:      s,
		Root:       rootID,
		Light:      light,
	}, nil
}
