package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

func TestNewMetal_FuzznessClamp(t *testing.T) {
	tests := []struct {
		name             string
		inputFuzzness    float64
		expectedFuzzness float64
	}{
		{"Valid fuzzness 0.0", 0.0, 0.0},
		{"Valid fuzzness 0.5", 0.5, 0.5},
		{"Valid fuzzness 1.0", 1.0, 1.0},
		{"Clamp above 1.0", 1.5, 1.0},
		{"Clamp below 0.0", -0.5, 0.0},
	}

	albedo := core.NewVec3(0.8, 0.8, 0.8)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			metal := NewMetal(albedo, tt.inputFuzzness)
			if metal.Fuzzness != tt.expectedFuzzness {
				t.Errorf("Expected fuzzness %f, got %f", tt.expectedFuzzness, metal.Fuzzness)
			}
		})
	}
}

func TestMetal_PerfectReflection(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.9, 0.9, 0.9), 0.0)
	random := rand.New(rand.NewSource(42))

	// Ray hitting surface at 45 degrees, deliberately not unit length
	rayIn := core.NewRay(core.NewVec3(0, 1, 1), core.NewVec3(0, -2, -2))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}

	scattered, didScatter := metal.Scatter(rayIn, hit, random)
	if !didScatter {
		t.Fatal("Metal should scatter")
	}

	// Reflection of the unit incoming direction
	expected := core.NewVec3(0, -1, 1).Normalize()
	if scattered.Direction.Subtract(expected).Length() > 1e-10 {
		t.Errorf("Perfect reflection failed: expected %v, got %v", expected, scattered.Direction)
	}
	if scattered.Origin != hit.Point {
		t.Errorf("Expected origin %v, got %v", hit.Point, scattered.Origin)
	}
}

func TestMetal_FuzzyReflection(t *testing.T) {
	metal := NewMetal(core.NewVec3(0.8, 0.8, 0.8), 0.5)
	random := rand.New(rand.NewSource(42))

	rayIn := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))
	hit := core.HitRecord{
		Point:  core.NewVec3(0, 0, 0),
		Normal: core.NewVec3(0, 0, 1),
	}
	perfect := core.NewVec3(0, 0, 1)

	varied := false
	for i := 0; i < 100; i++ {
		scattered, _ := metal.Scatter(rayIn, hit, random)

		// Perturbation is bounded by the fuzz radius
		offset := scattered.Direction.Subtract(perfect).Length()
		if offset > 0.5+1e-12 {
			t.Fatalf("Perturbation %f exceeds fuzz radius", offset)
		}
		if offset > 1e-6 {
			varied = true
		}
	}
	if !varied {
		t.Error("Fuzzy metal should perturb reflections")
	}
}

func TestMetal_ShadeMatchesDiffuseRule(t *testing.T) {
	albedo := core.NewVec3(0.8, 0.2, 0.2)
	metal := NewMetal(albedo, 0.02)
	lambertian := NewLambertian(albedo)

	hit := core.HitRecord{Normal: core.NewVec3(0, 1, 0)}
	ray := core.NewRay(core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0))
	light := core.LightInfo{Color: core.NewVec3(0.3, 0.6, 0.9), Direction: core.NewVec3(0, 0.6, 0.8)}
	recursive := core.NewVec3(0.1, 0.2, 0.3)

	got := metal.Shade(ray, light, hit, recursive)
	want := lambertian.Shade(ray, light, hit, recursive)
	if got != want {
		t.Errorf("Expected %v, got %v", want, got)
	}
}
