package renderer

import (
	"testing"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
	"github.com/df07/go-adaptive-raytracer/pkg/scene"
)

func TestCamera_GetRay(t *testing.T) {
	camera := NewCamera(scene.CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90,
	}, 1.0)

	tests := []struct {
		name      string
		s, t      float64
		direction core.Vec3
	}{
		{"center", 0.5, 0.5, core.NewVec3(0, 0, -1)},
		{"right edge", 1, 0.5, core.NewVec3(1, 0, -1)},
		{"top edge", 0.5, 1, core.NewVec3(0, 1, -1)},
		{"lower left", 0, 0, core.NewVec3(-1, -1, -1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ray := camera.GetRay(tt.s, tt.t)
			if ray.Origin != (core.Vec3{}) {
				t.Errorf("Expected origin at camera center, got %v", ray.Origin)
			}
			got := ray.Direction.Normalize()
			expected := tt.direction.Normalize()
			if got.Subtract(expected).Length() > 1e-9 {
				t.Errorf("Expected direction %v, got %v", expected, got)
			}
		})
	}
}

func TestCamera_LooksAtTarget(t *testing.T) {
	center := core.NewVec3(1, 2, 3)
	lookAt := core.NewVec3(4, 2, -1)

	camera := NewCamera(scene.CameraConfig{
		Center: center,
		LookAt: lookAt,
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40,
	}, 16.0/9.0)

	ray := camera.GetRay(0.5, 0.5)
	expected := lookAt.Subtract(center).Normalize()
	if ray.Origin != center {
		t.Errorf("Expected origin %v, got %v", center, ray.Origin)
	}
	if ray.Direction.Normalize().Subtract(expected).Length() > 1e-9 {
		t.Errorf("Expected view direction %v, got %v", expected, ray.Direction.Normalize())
	}
}

func TestCamera_AspectRatioWidensView(t *testing.T) {
	camera := NewCamera(scene.CameraConfig{
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90,
	}, 2.0)

	// Half width is twice the half height at unit focal distance
	right := camera.GetRay(1, 0.5).Direction
	if right.Subtract(core.NewVec3(2, 0, -1)).Length() > 1e-9 {
		t.Errorf("Expected right edge direction (2,0,-1), got %v", right)
	}
}

func TestCamera_DegenerateConfig(t *testing.T) {
	// Zero up vector and coincident look-at must still produce finite rays
	camera := NewCamera(scene.CameraConfig{VFov: 60}, 1.0)
	ray := camera.GetRay(0.3, 0.7)
	if !ray.Direction.IsFinite() || ray.Direction.Length() == 0 {
		t.Errorf("Expected finite non-zero direction, got %v", ray.Direction)
	}
}
