package material

import (
	"math/rand"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

// Lambertian represents a diffuse material
type Lambertian struct {
	Albedo core.Vec3 // Base color/reflectance
}

// NewLambertian creates a new lambertian material
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo}
}

// Scatter implements the Material interface for lambertian scattering
func (l *Lambertian) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.Ray, bool) {
	scatterDirection := hit.Normal.Add(core.RandomUnitVector(random))

	// Catch degenerate scatter direction
	if scatterDirection.NearZero() {
		scatterDirection = hit.Normal
	}

	return core.NewRay(hit.Point, scatterDirection), true
}

// Shade implements the Material interface
func (l *Lambertian) Shade(rayIn core.Ray, light core.LightInfo, hit core.HitRecord, recursive core.Vec3) core.Vec3 {
	return shadeReflective(l.Albedo, light, hit, recursive)
}
