package lights

import "github.com/df07/go-adaptive-raytracer/pkg/core"

// Background maps an escaped ray to a color
type Background interface {
	Color(ray core.Ray) core.Vec3
}

// AmbientLight lights the scene only through rays that escape it
type AmbientLight struct {
	Background Background
}

// NewAmbientLight creates an ambient light with the given background
func NewAmbientLight(background Background) *AmbientLight {
	return &AmbientLight{Background: background}
}

// NewSkyLight creates an ambient light with a sky gradient of the given brightness
func NewSkyLight(brightness float64) *AmbientLight {
	return NewAmbientLight(SkyGradient{Brightness: brightness})
}

func (al *AmbientLight) Type() LightType {
	return LightTypeAmbient
}

// At implements the Light interface; ambient light adds nothing at a surface
func (al *AmbientLight) At(point core.Vec3, world Occluder, distSoFar float64) core.LightInfo {
	return core.LightInfo{}
}

// Escaped implements the Light interface
func (al *AmbientLight) Escaped(ray core.Ray, distSoFar float64) core.Vec3 {
	if al.Background == nil {
		return core.Vec3{}
	}
	return al.Background.Color(ray)
}

// SkyGradient fades from white at the horizon below to blue overhead,
// depending only on the vertical component of the ray direction
type SkyGradient struct {
	Brightness float64
}

// Color implements Background
func (s SkyGradient) Color(ray core.Ray) core.Vec3 {
	y := ray.Direction.Normalize().Y
	return core.Vec3{
		X: (1 - (y+1)/4) * s.Brightness,
		Y: (1 - (y+1)/8) * s.Brightness,
		Z: s.Brightness,
	}
}

// SolidBackground returns the same color in every direction
type SolidBackground struct {
	Value core.Vec3
}

// Color implements Background
func (s SolidBackground) Color(ray core.Ray) core.Vec3 {
	return s.Value
}
