package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-mis-pathtracer/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	triangle := NewFlatTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	)

	tests := []struct {
		name      string
		ray       core.Ray
		expectHit bool
		expectedT float64
	}{
		{"center hit", core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)), true, 1},
		{"back side hit", core.NewRay(core.NewVec3(0.2, 0.2, -2), core.NewVec3(0, 0, 1)), true, 2},
		{"outside hypotenuse", core.NewRay(core.NewVec3(0.75, 0.75, 1), core.NewVec3(0, 0, -1)), false, 0},
		{"outside negative side", core.NewRay(core.NewVec3(-0.1, 0.5, 1), core.NewVec3(0, 0, -1)), false, 0},
		{"parallel", core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(1, 0, 0)), false, 0},
		{"behind origin", core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1)), false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := triangle.Hit(tt.ray, 0.001, math.Inf(1))
			if isHit != tt.expectHit {
				t.Fatalf("Expected hit=%t, got %t", tt.expectHit, isHit)
			}
			if isHit && math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got %f", tt.expectedT, hit.T)
			}
		})
	}
}

func TestTriangle_InterpolatesAttributes(t *testing.T) {
	triangle := NewTriangle(
		[3]core.Point3{core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0)},
		[3]core.Dir3{core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1), core.NewVec3(0, 0, 1)},
		[3]core.Vec2{core.NewVec2(0, 0), core.NewVec2(1, 0), core.NewVec2(0, 1)},
	)

	ray := core.NewRay(core.NewVec3(0.2, 0.3, 1), core.NewVec3(0, 0, -1))
	hit, isHit := triangle.Hit(ray, 0.001, math.Inf(1))
	if !isHit {
		t.Fatal("Expected hit")
	}

	// With these texture coordinates uv equals the barycentric weights of v1 and v2
	if math.Abs(hit.UV.X-0.2) > 1e-9 || math.Abs(hit.UV.Y-0.3) > 1e-9 {
		t.Errorf("Expected uv (0.2, 0.3), got %v", hit.UV)
	}
	if hit.Normal.Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 || !hit.FrontFace {
		t.Errorf("Expected front-facing +z normal, got %v (front %t)", hit.Normal, hit.FrontFace)
	}
}

func TestTriangle_BoundingBoxPadsFlatAxis(t *testing.T) {
	triangle := NewFlatTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 0, 1))
	box, ok := triangle.BoundingBox()
	if !ok {
		t.Fatal("Triangle should be bounded")
	}
	if box.Max.Y-box.Min.Y <= 0 {
		t.Errorf("Expected non-zero thickness along y, got %v", box)
	}
	if box.Min.X != 0 || box.Max.X != 1 || box.Min.Z != 0 || box.Max.Z != 1 {
		t.Errorf("Unexpected in-plane bounds %v", box)
	}
}
