package integrator

import (
	"math/rand"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
	"github.com/df07/go-adaptive-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// RayColor computes the final color for a primary ray and returns the
	// first surface hit, or nil if the ray escaped
	RayColor(ray core.Ray, scene *scene.Scene, random *rand.Rand) (core.Vec3, *core.HitRecord)
}

// Config holds the integrator settings
type Config struct {
	MaxBounces    int     // Maximum path length including the primary ray
	MaxLightValue float64 // Per-channel cap applied after compression
}
