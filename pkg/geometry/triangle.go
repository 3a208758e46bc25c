package geometry

import (
	"math"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
)

// parallelEpsilon rejects rays whose direction is nearly perpendicular to the triangle normal
const parallelEpsilon = 1e-8

// Triangle represents a single triangle defined by three vertices
type Triangle struct {
	P1, P2, P3 core.Vec3 // The three vertices
	normal     core.Vec3 // Cached unit normal
	bbox       core.AABB // Cached bounding box
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(p1, p2, p3 core.Vec3) *Triangle {
	t := &Triangle{
		P1: p1,
		P2: p2,
		P3: p3,
	}

	// Degenerate triangles get a zero normal, which every hit test rejects
	t.normal = p2.Subtract(p1).Cross(p3.Subtract(p2)).Normalize()
	t.bbox = core.NewAABBFromPoints(p1, p2, p3)

	return t
}

// Hit intersects the ray with the triangle's plane, then checks the point
// against the three edges
func (t *Triangle) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	denominator := ray.Direction.Dot(t.normal)
	if math.Abs(denominator) < parallelEpsilon {
		// Ray is parallel to the plane (or the triangle is degenerate)
		return nil, false
	}

	// Signed distance from the ray origin to the plane
	dist := t.normal.Dot(ray.Origin) - t.normal.Dot(t.P1)
	tParam := -dist / denominator
	if tParam < tMin || tParam > tMax {
		return nil, false
	}

	intersection := ray.At(tParam)
	if !t.contains(intersection) {
		return nil, false
	}

	hitRecord := &core.HitRecord{
		T:     tParam,
		Point: intersection,
	}
	hitRecord.SetFaceNormal(ray, t.normal)

	return hitRecord, true
}

// contains checks a point on the triangle's plane against each edge. For every
// vertex, the component of the opposite edge perpendicular to the preceding
// edge points into the triangle.
func (t *Triangle) contains(point core.Vec3) bool {
	p12 := t.P2.Subtract(t.P1)
	p23 := t.P3.Subtract(t.P2)
	p31 := t.P1.Subtract(t.P3)

	perp1 := p23.Subtract(p12.Multiply(p12.Dot(p23) / p12.LengthSquared()))
	perp2 := p31.Subtract(p23.Multiply(p23.Dot(p31) / p23.LengthSquared()))
	perp3 := p12.Subtract(p31.Multiply(p31.Dot(p12) / p31.LengthSquared()))

	return perp1.Dot(point.Subtract(t.P1)) > 0 &&
		perp2.Dot(point.Subtract(t.P2)) > 0 &&
		perp3.Dot(point.Subtract(t.P3)) > 0
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Normal returns the triangle's unit normal (p2-p1)×(p3-p2)
func (t *Triangle) Normal() core.Vec3 {
	return t.normal
}
