// pkg/hud/camera.go
package hud

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-solarflight/pkg/physics"
)

// Default projection parameters
const (
	DefaultFOV  = 75.0
	DefaultNear = 0.1
	DefaultFar  = 1e9
)

// Camera projects world points to viewport coordinates
type Camera struct {
	FOV    float64 // vertical field of view in degrees
	Near   float64
	Far    float64
	Width  float64
	Height float64
	// Aspect scales the viewport's width to height ratio; terminal cells are
	// roughly twice as tall as wide, so terminal front ends use 0.5.
	Aspect float64
}

// NewCamera creates a camera with the default lens for a viewport
func NewCamera(width, height float64) Camera {
	return Camera{
		FOV:    DefaultFOV,
		Near:   DefaultNear,
		Far:    DefaultFar,
		Width:  width,
		Height: height,
		Aspect: 1,
	}
}

// Projection returns the perspective matrix
func (c Camera) Projection() mgl64.Mat4 {
	aspect := 1.0
	if c.Height > 0 {
		aspect = c.Width / c.Height
	}
	if c.Aspect > 0 {
		aspect *= c.Aspect
	}
	return mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// Project maps a world point seen from pose to viewport coordinates.
// visible is false when the point is behind the camera or off screen.
func (c Camera) Project(pose physics.Pose, world mgl64.Vec3) (x, y float64, visible bool) {
	clip := c.Projection().Mul4(pose.ViewMatrix()).Mul4x1(world.Vec4(1))
	w := clip.W()
	if w <= 0 {
		return 0, 0, false
	}
	ndcX := clip.X() / w
	ndcY := clip.Y() / w

	x = (ndcX + 1) / 2 * c.Width
	y = (1 - ndcY) / 2 * c.Height
	visible = ndcX >= -1 && ndcX <= 1 && ndcY >= -1 && ndcY <= 1
	return x, y, visible
}

// ApparentSize returns the on-screen radius of a sphere's silhouette at
// distance, in viewport units. From inside the sphere it covers the viewport.
func (c Camera) ApparentSize(radius, distance float64) float64 {
	if distance <= radius || distance <= 0 {
		return c.Width + c.Height
	}
	f := c.Projection()[5] // cot(fov/2)
	return radius / math.Sqrt(distance*distance-radius*radius) * f * c.Height / 2
}
