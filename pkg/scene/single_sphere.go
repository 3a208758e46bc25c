package scene

import (
	"github.com/df07/go-adaptive-raytracer/pkg/core"
	"github.com/df07/go-adaptive-raytracer/pkg/geometry"
	"github.com/df07/go-adaptive-raytracer/pkg/lights"
	"github.com/df07/go-adaptive-raytracer/pkg/material"
)

// NewSingleSphereScene creates one diffuse sphere lit by a point light behind the camera
func NewSingleSphereScene() *Scene {
	s := NewScene("sphere", CameraConfig{
		Center: core.NewVec3(0, 0, 0),
		LookAt: core.NewVec3(0, 0, -1),
		Up:     core.NewVec3(0, 1, 0),
		VFov:   90,
	})

	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.5), material.NewLambertian(core.NewVec3(0.7, 0.3, 0.3)))
	s.AddLight(lights.NewPointLight(core.NewVec3(0, 0, 10), core.NewVec3(1, 1, 1), 100))
	s.AddLight(lights.NewSkyLight(1))

	return s
}
