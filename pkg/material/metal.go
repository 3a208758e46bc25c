package material

import (
	"math/rand"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

// Metal represents a metallic material with specular reflection
type Metal struct {
	Albedo   core.Vec3 // Metal color
	Fuzzness float64   // 0.0 = perfect mirror, 1.0 = very fuzzy
}

// NewMetal creates a new metal material
func NewMetal(albedo core.Vec3, fuzzness float64) *Metal {
	// Clamp fuzzness to valid range
	if fuzzness > 1.0 {
		fuzzness = 1.0
	}
	if fuzzness < 0.0 {
		fuzzness = 0.0
	}
	return &Metal{Albedo: albedo, Fuzzness: fuzzness}
}

// Scatter implements the Material interface for metal scattering.
// Fuzzed reflections that dip below the surface are still followed; the
// next bounce sorts them out.
func (m *Metal) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.Ray, bool) {
	reflected := rayIn.Direction.Normalize().Reflect(hit.Normal)

	if m.Fuzzness > 0 {
		reflected = reflected.Add(core.RandomInUnitSphere(random).Multiply(m.Fuzzness))
	}

	return core.NewRay(hit.Point, reflected), true
}

// Shade implements the Material interface
func (m *Metal) Shade(rayIn core.Ray, light core.LightInfo, hit core.HitRecord, recursive core.Vec3) core.Vec3 {
	return shadeReflective(m.Albedo, light, hit, recursive)
}
