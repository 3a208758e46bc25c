package scene

import (
	"github.com/df07/go-adaptive-raytracer/pkg/core"
	"github.com/df07/go-adaptive-raytracer/pkg/geometry"
	"github.com/df07/go-adaptive-raytracer/pkg/lights"
	"github.com/df07/go-adaptive-raytracer/pkg/material"
)

// Object pairs a shape with the material it is rendered with
type Object struct {
	Material material.Material
	Shape    core.Shape
}

// NewObject creates a new scene object
func NewObject(shape core.Shape, mat material.Material) *Object {
	return &Object{Material: mat, Shape: shape}
}

// Hit implements core.Shape
func (o *Object) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return o.Shape.Hit(ray, tMin, tMax)
}

// BoundingBox implements core.Shape
func (o *Object) BoundingBox() core.AABB {
	return o.Shape.BoundingBox()
}

// CameraConfig describes where a scene is viewed from
type CameraConfig struct {
	Center core.Vec3 // Camera position
	LookAt core.Vec3 // Point the camera looks at
	Up     core.Vec3 // Up direction
	VFov   float64   // Vertical field of view in degrees
}

// Scene contains all the elements needed for rendering. Objects and
// lights must be complete before Preprocess; the scene is read-only after.
type Scene struct {
	Name         string
	CameraConfig CameraConfig
	Objects      []*Object
	Lights       []lights.Light
	Index        *geometry.BSPTree[*Object] // Acceleration structure for ray-object intersection
}

// NewScene creates an empty scene
func NewScene(name string, cameraConfig CameraConfig) *Scene {
	return &Scene{
		Name:         name,
		CameraConfig: cameraConfig,
		Objects:      make([]*Object, 0),
		Lights:       make([]lights.Light, 0),
	}
}

// Add adds a shape with the given material to the scene
func (s *Scene) Add(shape core.Shape, mat material.Material) *Object {
	obj := NewObject(shape, mat)
	s.Objects = append(s.Objects, obj)
	return obj
}

// AddLight adds a light to the scene
func (s *Scene) AddLight(light lights.Light) {
	s.Lights = append(s.Lights, light)
}

// Preprocess builds the spatial index over the scene objects
func (s *Scene) Preprocess(maxDepth int) geometry.BSPStats {
	s.Index = geometry.NewBSPTree(s.Objects, maxDepth)
	return s.Index.Stats()
}

// Hit returns the nearest object hit by the ray. Before Preprocess every
// object is tested.
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*Object, *core.HitRecord, bool) {
	if s.Index != nil {
		return s.Index.Hit(ray, tMin, tMax)
	}

	var closest *Object
	var closestHit *core.HitRecord
	closestSoFar := tMax
	for _, obj := range s.Objects {
		if hit, isHit := obj.Hit(ray, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
			closest = obj
		}
	}
	return closest, closestHit, closestHit != nil
}

// Occluded implements lights.Occluder
func (s *Scene) Occluded(ray core.Ray, tMin, tMax float64) bool {
	_, _, hit := s.Hit(ray, tMin, tMax)
	return hit
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, obj := range s.Objects {
		switch shape := obj.Shape.(type) {
		case *geometry.Mesh:
			// Meshes contain multiple triangles
			count += shape.TriangleCount()
		default:
			count++
		}
	}
	return count
}
