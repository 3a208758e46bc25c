package scene

import (
	"math"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
	"github.com/df07/go-adaptive-raytracer/pkg/geometry"
	"github.com/df07/go-adaptive-raytracer/pkg/lights"
	"github.com/df07/go-adaptive-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH (lightness 0-1, chroma, hue in degrees) to linear RGB clamped to [0,1]
func oklchToRGB(l, c, h float64) core.Vec3 {
	hRad := h * math.Pi / 180.0
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to cubed LMS
	lms := core.NewVec3(
		l+0.3963377774*a+0.2158037573*b,
		l-0.1055613458*a-0.0638541728*b,
		l-0.0894841775*a-1.2914855480*b,
	)
	lms = lms.MultiplyVec(lms).MultiplyVec(lms)

	rgb := core.NewVec3(
		+4.0767416621*lms.X-3.3077115913*lms.Y+0.2309699292*lms.Z,
		-1.2684380046*lms.X+2.6097574011*lms.Y-0.3413193965*lms.Z,
		-0.0041960863*lms.X-0.7034186147*lms.Y+1.7076147010*lms.Z,
	)
	return rgb.Clamp(0, 1)
}

// NewSphereGridScene creates a gridSize×gridSize grid of metal and diffuse
// spheres on a ground sphere. Useful for exercising the spatial index.
func NewSphereGridScene(gridSize int) *Scene {
	s := NewScene("spheregrid", CameraConfig{
		Center: core.NewVec3(4.5, 6, 18),
		LookAt: core.NewVec3(4.5, 0.8, 4.5),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   40,
	})

	s.Add(geometry.NewSphere(core.NewVec3(4.5, -1000, 4.5), 1000), material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5)))

	// Fit the grid into roughly 9x9 units
	targetArea := 9.0
	spacing := targetArea / float64(max(gridSize-1, 1))
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5
			position := core.NewVec3(x, sphereRadius, z)

			// Hue across X, chroma across Z
			hue := float64(i) / float64(max(gridSize-1, 1)) * 360.0
			chroma := 0.05 + float64(j)/float64(max(gridSize-1, 1))*0.2
			lightness := 0.65 + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			var mat material.Material
			if (i+j)%2 == 0 {
				mat = material.NewMetal(color, 0.05+0.1*float64((i+j)%3)/2.0)
			} else {
				mat = material.NewLambertian(color)
			}
			s.Add(geometry.NewSphere(position, sphereRadius), mat)
		}
	}

	s.AddLight(lights.NewPointLight(core.NewVec3(20, 25, 20), core.NewVec3(1, 0.95, 0.85), 900))
	s.AddLight(lights.NewSkyLight(0.8))

	return s
}
