package core

// Camera turns normalized image coordinates into primary rays. s grows to the
// right and t grows upwards, both in [0, 1]. Lens and shutter models belong to
// the implementation.
type Camera interface {
	GetRay(sampler Sampler, s, t float64) Ray
}

// Background supplies radiance for rays that leave the scene.
type Background interface {
	Sample(ray Ray) Color
}
