package lights

import "github.com/df07/go-adaptive-raytracer/pkg/core"

type LightType string

const (
	LightTypePoint   LightType = "point"
	LightTypeAmbient LightType = "ambient"
)

// Light contributes to every surface hit and to every ray that escapes the scene
type Light interface {
	Type() LightType

	// At returns the light arriving at point. distSoFar is the path length
	// already travelled by earlier bounces and counts toward falloff.
	At(point core.Vec3, world Occluder, distSoFar float64) core.LightInfo

	// Escaped returns the light seen along a ray that hit no geometry
	Escaped(ray core.Ray, distSoFar float64) core.Vec3
}

// Occluder answers shadow queries against the scene geometry
type Occluder interface {
	// Occluded reports whether anything is hit along ray within [tMin, tMax]
	Occluded(ray core.Ray, tMin, tMax float64) bool
}
