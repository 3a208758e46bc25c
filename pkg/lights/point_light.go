package lights

import (
	"math"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

const (
	// Offset applied to shadow rays so they don't re-hit the surface they start on
	shadowEpsilon = 0.001

	// Exponent on the closest-approach distance of an escaped ray. Larger
	// values shrink the visible body of the light in reflections.
	glowExponent = 5.0

	// Lower bound on the closest-approach distance so a ray aimed exactly
	// at the light stays finite
	minGlowDistance = 1e-6
)

// PointLight is an infinitely small light with inverse-square falloff and hard shadows
type PointLight struct {
	Position  core.Vec3
	Color     core.Vec3
	Intensity float64
}

// NewPointLight creates a new point light
func NewPointLight(position, color core.Vec3, intensity float64) *PointLight {
	return &PointLight{Position: position, Color: color, Intensity: intensity}
}

func (pl *PointLight) Type() LightType {
	return LightTypePoint
}

// Falloff returns the attenuation after travelling dist: 1/dist²
func (pl *PointLight) Falloff(dist float64) float64 {
	return 1.0 / (dist * dist)
}

// At implements the Light interface. Any geometry between point and the
// light blocks it entirely.
func (pl *PointLight) At(point core.Vec3, world Occluder, distSoFar float64) core.LightInfo {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return core.LightInfo{}
	}
	direction := toLight.Divide(distance)

	if world != nil && world.Occluded(core.NewRay(point, direction), shadowEpsilon, distance) {
		return core.LightInfo{Direction: direction}
	}

	return core.LightInfo{
		Color:     pl.Color.Multiply(pl.Intensity * pl.Falloff(distance+distSoFar)),
		Direction: direction,
	}
}

// Escaped implements the Light interface. The light is given a small
// visible body: brightness falls off steeply with how closely the ray
// passes the light's position, so it shows up in mirror reflections.
func (pl *PointLight) Escaped(ray core.Ray, distSoFar float64) core.Vec3 {
	unitDirection := ray.Direction.Normalize()
	toLight := pl.Position.Subtract(ray.Origin)

	alignment := toLight.Normalize().Dot(unitDirection)
	if alignment <= 0 {
		return core.Vec3{}
	}

	closestPoint := ray.Origin.Add(unitDirection.Multiply(toLight.Dot(unitDirection)))
	closest := max(closestPoint.Subtract(pl.Position).Length(), minGlowDistance)

	scale := pl.Intensity / toLight.LengthSquared() / math.Pow(closest, glowExponent)
	return pl.Color.Multiply(scale * alignment)
}
