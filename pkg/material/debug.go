package material

import (
	"math/rand"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

// Normal colors a surface by its hit normal, mapped from [-1,1] to [0,1].
// Paths end at the surface.
type Normal struct{}

// NewNormal creates a normal visualization material
func NewNormal() *Normal {
	return &Normal{}
}

// Scatter implements the Material interface; normals never scatter
func (n *Normal) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.Ray, bool) {
	return core.Ray{}, false
}

// Shade implements the Material interface
func (n *Normal) Shade(rayIn core.Ray, light core.LightInfo, hit core.HitRecord, recursive core.Vec3) core.Vec3 {
	return NormalToColor(hit.Normal)
}

// NormalToColor maps a unit normal to an RGB color
func NormalToColor(normal core.Vec3) core.Vec3 {
	return core.NewVec3(1+normal.X, 1+normal.Y, 1+normal.Z).Multiply(0.5)
}

// ConstantColor shades every hit with the same color and ends the path
type ConstantColor struct {
	Color core.Vec3
}

// NewConstantColor creates a constant color material
func NewConstantColor(color core.Vec3) *ConstantColor {
	return &ConstantColor{Color: color}
}

// Scatter implements the Material interface; constant colors never scatter
func (c *ConstantColor) Scatter(rayIn core.Ray, hit core.HitRecord, random *rand.Rand) (core.Ray, bool) {
	return core.Ray{}, false
}

// Shade implements the Material interface
func (c *ConstantColor) Shade(rayIn core.Ray, light core.LightInfo, hit core.HitRecord, recursive core.Vec3) core.Vec3 {
	return c.Color
}
