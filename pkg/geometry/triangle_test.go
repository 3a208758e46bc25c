package geometry

import (
	"math"
	"testing"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

func TestTriangle_Hit(t *testing.T) {
	// Triangle in the XY plane
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	)

	tests := []struct {
		name      string
		ray       core.Ray
		tMin      float64
		tMax      float64
		shouldHit bool
		expectedT float64
	}{
		{
			name:      "Ray hits triangle interior",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -1), core.NewVec3(0, 0, 1)),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Ray misses triangle",
			ray:       core.NewRay(core.NewVec3(1, 1, -1), core.NewVec3(0, 0, 1)),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: false,
		},
		{
			name:      "Ray parallel to triangle",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 0), core.NewVec3(1, 0, 0)),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: false,
		},
		{
			name:      "Ray hits from behind",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, -1)),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: true,
			expectedT: 1.0,
		},
		{
			name:      "Hit beyond tMax",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, -5), core.NewVec3(0, 0, 1)),
			tMin:      0.001,
			tMax:      4.0,
			shouldHit: false,
		},
		{
			name:      "Plane behind the ray",
			ray:       core.NewRay(core.NewVec3(0.25, 0.25, 1), core.NewVec3(0, 0, 1)),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: false,
		},
		{
			name:      "Non-unit direction",
			ray:       core.NewRay(core.NewVec3(0.2, 0.3, -2), core.NewVec3(0, 0, 4)),
			tMin:      0.001,
			tMax:      10.0,
			shouldHit: true,
			expectedT: 0.5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hit, isHit := triangle.Hit(tt.ray, tt.tMin, tt.tMax)

			if isHit != tt.shouldHit {
				t.Fatalf("Expected hit=%t, got hit=%t", tt.shouldHit, isHit)
			}
			if !isHit {
				return
			}

			if math.Abs(hit.T-tt.expectedT) > 1e-9 {
				t.Errorf("Expected t=%f, got t=%f", tt.expectedT, hit.T)
			}
			if tt.ray.Direction.Dot(hit.Normal) > 0 {
				t.Errorf("Normal %v faces along the ray", hit.Normal)
			}
			if math.Abs(hit.Point.Z) > 1e-9 {
				t.Errorf("Expected hit point on z=0 plane, got %v", hit.Point)
			}
		})
	}
}

func TestTriangle_FrontFace(t *testing.T) {
	// Counter-clockwise seen from +Z: normal (p2-p1)×(p3-p2) points to +Z
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	)
	if triangle.Normal().Subtract(core.NewVec3(0, 0, 1)).Length() > 1e-9 {
		t.Fatalf("Expected +Z normal, got %v", triangle.Normal())
	}

	hit, isHit := triangle.Hit(core.NewRay(core.NewVec3(0.2, 0.2, 1), core.NewVec3(0, 0, -1)), 0.001, 10)
	if !isHit || !hit.FrontFace {
		t.Error("Expected front face hit from +Z")
	}

	hit, isHit = triangle.Hit(core.NewRay(core.NewVec3(0.2, 0.2, -1), core.NewVec3(0, 0, 1)), 0.001, 10)
	if !isHit || hit.FrontFace {
		t.Error("Expected back face hit from -Z")
	}
}

func TestTriangle_Degenerate(t *testing.T) {
	// Collinear vertices have no plane to hit
	triangle := NewTriangle(
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 1, 1),
		core.NewVec3(2, 2, 2),
	)

	ray := core.NewRay(core.NewVec3(1, 1, -5), core.NewVec3(0, 0, 1))
	if hit, isHit := triangle.Hit(ray, 0.001, 100); isHit {
		t.Errorf("Expected degenerate triangle to be unhittable, got %v", hit)
	}
}

func TestTriangle_BoundingBox(t *testing.T) {
	triangle := NewTriangle(
		core.NewVec3(3, -1, 0),
		core.NewVec3(-2, 4, 1),
		core.NewVec3(0, 0, -6),
	)

	bbox := triangle.BoundingBox()
	if bbox.Min != core.NewVec3(-2, -1, -6) {
		t.Errorf("Unexpected min %v", bbox.Min)
	}
	if bbox.Max != core.NewVec3(3, 4, 1) {
		t.Errorf("Unexpected max %v", bbox.Max)
	}
}
