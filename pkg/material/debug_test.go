package material

import (
	"math/rand"
	"testing"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

func TestDebugMaterialsNeverScatter(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	hit := core.HitRecord{Normal: core.NewVec3(0, 0, 1)}
	ray := core.NewRay(core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1))

	materials := map[string]Material{
		"normal":   NewNormal(),
		"constant": NewConstantColor(core.NewVec3(1, 0, 0)),
	}
	for name, m := range materials {
		if _, ok := m.Scatter(ray, hit, random); ok {
			t.Errorf("%s material should not scatter", name)
		}
	}
}

func TestNormalToColor(t *testing.T) {
	tests := []struct {
		normal   core.Vec3
		expected core.Vec3
	}{
		{core.NewVec3(0, 0, 1), core.NewVec3(0.5, 0.5, 1)},
		{core.NewVec3(-1, 0, 0), core.NewVec3(0, 0.5, 0.5)},
		{core.NewVec3(0, 1, 0), core.NewVec3(0.5, 1, 0.5)},
	}

	for _, tt := range tests {
		hit := core.HitRecord{Normal: tt.normal}
		got := NewNormal().Shade(core.Ray{}, core.LightInfo{}, hit, core.NewVec3(9, 9, 9))
		if got != tt.expected {
			t.Errorf("Normal %v: expected %v, got %v", tt.normal, tt.expected, got)
		}
	}
}

func TestConstantColorIgnoresLighting(t *testing.T) {
	color := core.NewVec3(0.1, 0.2, 0.3)
	light := core.LightInfo{Color: core.NewVec3(1, 1, 1), Direction: core.NewVec3(0, 0, 1)}
	hit := core.HitRecord{Normal: core.NewVec3(0, 0, 1)}

	if got := NewConstantColor(color).Shade(core.Ray{}, light, hit, core.NewVec3(1, 1, 1)); got != color {
		t.Errorf("Expected %v, got %v", color, got)
	}
}
