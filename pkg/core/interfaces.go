package core

// Logger interface for raytracer logging
type Logger interface {
	Printf(format string, args ...interface{})
}

// Shape interface for objects that can be hit by rays
type Shape interface {
	Hit(ray Ray, tMin, tMax float64) (*HitRecord, bool)
	BoundingBox() AABB
}

// HitRecord contains information about a ray-object intersection
type HitRecord struct {
	Point     Vec3    // Point of intersection
	Normal    Vec3    // Surface normal, always facing against the incoming ray
	T         float64 // Parameter t along the ray
	FrontFace bool    // Whether ray hit the outward-facing side
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *HitRecord) SetFaceNormal(ray Ray, outwardNormal Vec3) {
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// LightInfo is what a light contributes at a surface point
type LightInfo struct {
	Color     Vec3 // Incoming light color after falloff and visibility
	Direction Vec3 // Unit direction from the surface point toward the light
}
