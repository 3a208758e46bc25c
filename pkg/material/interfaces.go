package material

import (
	"math/rand"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

// Material decides how a surface continues a path and how it combines
// direct light with the light arriving along that continuation
type Material interface {
	// Scatter returns the continuation ray, or false if the path ends here
	Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.Ray, bool)

	// Shade combines one light's contribution at the hit with the color
	// traced recursively along the scattered ray for that same light
	Shade(rayIn core.Ray, light core.LightInfo, hit core.HitRecord, recursive core.Vec3) core.Vec3
}

// shadeReflective is the shading rule shared by diffuse and metal surfaces:
// albedo × light × max(0, l·n) + albedo × recursive
func shadeReflective(albedo core.Vec3, light core.LightInfo, hit core.HitRecord, recursive core.Vec3) core.Vec3 {
	cosTheta := max(0, light.Direction.Dot(hit.Normal))
	direct := albedo.MultiplyVec(light.Color).Multiply(cosTheta)
	return direct.Add(albedo.MultiplyVec(recursive))
}
