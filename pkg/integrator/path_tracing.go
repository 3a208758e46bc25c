package integrator

import (
	"math"
	"math/rand"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
	"github.com/df07/go-adaptive-raytracer/pkg/scene"
)

// Minimum hit distance, keeps scattered rays from re-hitting their origin surface
const hitEpsilon = 0.001

// PathTracingIntegrator follows a single scattered path per primary ray and
// shades every vertex once per light
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// RayColor implements Integrator. Per-light colors are summed, softened with
// ln(1+x) and clamped so near-singular paths can't produce fireflies.
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, random *rand.Rand) (core.Vec3, *core.HitRecord) {
	perLight, hit := pt.TracePerLight(ray, scene, random, pt.config.MaxBounces, 0)

	var total core.Vec3
	for _, c := range perLight {
		total = total.Add(c)
	}
	return total.Ln1p().ClampMax(pt.config.MaxLightValue), hit
}

// TracePerLight returns the color carried by ray for each scene light, in
// scene light order, along with the first hit. distSoFar is the path length
// travelled before this ray started.
func (pt *PathTracingIntegrator) TracePerLight(ray core.Ray, scene *scene.Scene, random *rand.Rand, bouncesLeft int, distSoFar float64) ([]core.Vec3, *core.HitRecord) {
	colors := make([]core.Vec3, len(scene.Lights))
	if bouncesLeft <= 0 {
		return colors, nil
	}

	// One intersection query shared by every light
	obj, hit, isHit := scene.Hit(ray, hitEpsilon, math.Inf(1))
	if !isHit {
		for i, light := range scene.Lights {
			colors[i] = light.Escaped(ray, distSoFar)
		}
		return colors, nil
	}

	// An absorbed path carries no light back, but the surface is still shaded
	recursive := make([]core.Vec3, len(scene.Lights))
	if scattered, didScatter := obj.Material.Scatter(ray, *hit, random); didScatter {
		segment := hit.Point.Subtract(ray.Origin).Length()
		recursive, _ = pt.TracePerLight(scattered, scene, random, bouncesLeft-1, distSoFar+segment)
	}

	for i, light := range scene.Lights {
		info := light.At(hit.Point, scene, distSoFar)
		colors[i] = obj.Material.Shade(ray, info, *hit, recursive[i])
	}
	return colors, hit
}
