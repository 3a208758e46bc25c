package scene

import (
	"fmt"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
	"github.com/df07/go-adaptive-raytracer/pkg/geometry"
	"github.com/df07/go-adaptive-raytracer/pkg/lights"
	"github.com/df07/go-adaptive-raytracer/pkg/loaders"
	"github.com/df07/go-adaptive-raytracer/pkg/material"
)

// DefaultMeshPath is where the default scene looks for its tree mesh
const DefaultMeshPath = "data/LowPolyTree1.obj"

// NewDefaultScene creates the demo scene: a row of diffuse, metal and glass
// spheres on a huge ground sphere, a triangle, and a low-poly tree loaded
// from meshPath. An empty meshPath leaves the tree out.
func NewDefaultScene(meshPath string) (*Scene, error) {
	s := NewScene("default", CameraConfig{
		Center: core.NewVec3(0.51, 0.2, 1.5),
		LookAt: core.NewVec3(0.51, 0.2, 0.5), // Straight down -Z
		Up:     core.NewVec3(0, 1, 0),
		VFov:   80,
	})

	// Create materials
	green := material.NewLambertian(core.NewVec3(0.2, 0.8, 0.2))
	ground := material.NewLambertian(core.NewVec3(0.2, 0.2, 0.1))
	redMetal := material.NewMetal(core.NewVec3(0.8, 0.2, 0.2), 0.02)
	glass := material.NewDielectric(1.5)
	blue := material.NewLambertian(core.NewVec3(0.2, 0.2, 1.0))
	foliage := material.NewLambertian(core.NewVec3(0.1, 0.5, 0.1))

	s.Add(geometry.NewSphere(core.NewVec3(1, 0, -1), 0.4), green)
	s.Add(geometry.NewSphere(core.NewVec3(0, -100.5, -1), 100), ground)
	s.Add(geometry.NewSphere(core.NewVec3(-1, 0, -1), 0.4), redMetal)

	// Hollow glass sphere: the negative radius flips the inner surface
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), 0.4), glass)
	s.Add(geometry.NewSphere(core.NewVec3(0, 0, -1), -0.35), glass)

	s.Add(geometry.NewSphere(core.NewVec3(2, 0, -1), 0.4), glass)
	s.Add(geometry.NewTriangle(
		core.NewVec3(-1, -0.5, 0),
		core.NewVec3(-1, 0.5, -0.5),
		core.NewVec3(-1, 0.5, 0.5),
	), blue)

	if meshPath != "" {
		tree, err := loaders.LoadMesh(meshPath, core.NewVec3(2, -0.49, 0.1))
		if err != nil {
			return nil, fmt.Errorf("failed to load tree mesh: %w", err)
		}
		s.Add(tree, foliage)
	}

	s.AddLight(lights.NewPointLight(core.NewVec3(3, 2, 3), core.NewVec3(1, 1, 1), 20))
	s.AddLight(lights.NewSkyLight(1))

	return s, nil
}
