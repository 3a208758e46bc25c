package renderer

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/df07/go-adaptive-raytracer/pkg/core"
	"github.com/df07/go-adaptive-raytracer/pkg/scene"
)

// RayGenerator produces primary rays for viewport coordinates (s, t) in [0,1],
// with (0,0) at the lower left
type RayGenerator interface {
	GetRay(s, t float64) core.Ray
}

// Camera generates rays for rendering
type Camera struct {
	origin          mgl64.Vec3
	lowerLeftCorner mgl64.Vec3
	horizontal      mgl64.Vec3
	vertical        mgl64.Vec3
}

// NewCamera creates a pinhole camera from a scene's camera config
func NewCamera(config scene.CameraConfig, aspectRatio float64) *Camera {
	center := toMgl(config.Center)
	up := toMgl(config.Up)
	if up.Len() == 0 {
		up = mgl64.Vec3{0, 1, 0}
	}

	// Orthonormal basis: w points backwards, u right, v up
	w := center.Sub(toMgl(config.LookAt))
	if w.Len() == 0 {
		w = mgl64.Vec3{0, 0, 1}
	}
	w = w.Normalize()
	u := up.Cross(w)
	if u.Len() == 0 {
		// Up parallel to the view direction
		u = mgl64.Vec3{1, 0, 0}.Cross(w)
	}
	u = u.Normalize()
	v := w.Cross(u)

	halfHeight := math.Tan(mgl64.DegToRad(config.VFov) / 2)
	halfWidth := aspectRatio * halfHeight

	return &Camera{
		origin:          center,
		lowerLeftCorner: center.Sub(u.Mul(halfWidth)).Sub(v.Mul(halfHeight)).Sub(w),
		horizontal:      u.Mul(2 * halfWidth),
		vertical:        v.Mul(2 * halfHeight),
	}
}

// GetRay generates a ray for screen coordinates (s, t) where 0 <= s,t <= 1
func (c *Camera) GetRay(s, t float64) core.Ray {
	direction := c.lowerLeftCorner.
		Add(c.horizontal.Mul(s)).
		Add(c.vertical.Mul(t)).
		Sub(c.origin)

	return core.NewRay(fromMgl(c.origin), fromMgl(direction))
}

func toMgl(v core.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{v.X, v.Y, v.Z}
}

func fromMgl(v mgl64.Vec3) core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}
