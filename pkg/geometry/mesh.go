package geometry

import (
	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

// Mesh is a triangle soup stored in local coordinates and placed in the
// world by a translation. Rays are moved into mesh space instead of moving
// every triangle into world space.
type Mesh struct {
	triangles []*Triangle
	offset    core.Vec3
	bbox      core.AABB // World-space bounds (offset already applied)
}

// NewMesh creates a mesh from local-space triangles and a world-space bounding box
func NewMesh(triangles []*Triangle, offset core.Vec3, bounds core.AABB) *Mesh {
	return &Mesh{
		triangles: triangles,
		offset:    offset,
		bbox:      bounds,
	}
}

// NewMeshFromTriangles creates a mesh whose bounds are derived from its triangles
func NewMeshFromTriangles(triangles []*Triangle, offset core.Vec3) *Mesh {
	var bbox core.AABB
	if len(triangles) > 0 {
		bbox = triangles[0].BoundingBox()
		for _, triangle := range triangles[1:] {
			bbox = bbox.Union(triangle.BoundingBox())
		}
	}
	return NewMesh(triangles, offset, bbox.Translate(offset))
}

// Hit tests if a ray intersects with any triangle in the mesh
func (m *Mesh) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	// Cheap reject before scanning triangles
	if !m.bbox.Hit(ray, tMin, tMax) {
		return nil, false
	}

	localRay := core.NewRay(ray.Origin.Subtract(m.offset), ray.Direction)

	var closestHit *core.HitRecord
	closestSoFar := tMax
	for _, triangle := range m.triangles {
		if hit, isHit := triangle.Hit(localRay, tMin, closestSoFar); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	if closestHit == nil {
		return nil, false
	}

	// Back to world space; t and normal are translation invariant
	closestHit.Point = closestHit.Point.Add(m.offset)
	return closestHit, true
}

// BoundingBox returns the world-space bounding box of the mesh
func (m *Mesh) BoundingBox() core.AABB {
	return m.bbox
}

// Offset returns the mesh translation
func (m *Mesh) Offset() core.Vec3 {
	return m.offset
}

// TriangleCount returns the number of triangles in this mesh
func (m *Mesh) TriangleCount() int {
	return len(m.triangles)
}

// Triangles returns the local-space triangles
func (m *Mesh) Triangles() []*Triangle {
	return m.triangles
}
