// pkg/physics/pose.go
package physics

import (
	"github.com/go-gl/mathgl/mgl64"
)

// Pose is a world position plus a unit orientation.
type Pose struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

// NewPose creates an unrotated pose at the given position
func NewPose(position mgl64.Vec3) Pose {
	return Pose{
		Position:    position,
		Orientation: mgl64.QuatIdent(),
	}
}

// Forward returns the world direction the pose is looking at
func (p Pose) Forward() mgl64.Vec3 {
	return p.Orientation.Rotate(AxisForward)
}

// Right returns the world direction of the pose's local +X axis
func (p Pose) Right() mgl64.Vec3 {
	return p.Orientation.Rotate(AxisRight)
}

// Up returns the world direction of the pose's local +Y axis
func (p Pose) Up() mgl64.Vec3 {
	return p.Orientation.Rotate(AxisUp)
}

// RotateLocal turns the pose by angle radians about one of its own axes.
// The axis is given in the local frame, so successive calls compose on the
// already rotated frame.
func (p *Pose) RotateLocal(axis mgl64.Vec3, angle float64) {
	if angle == 0 {
		return
	}
	p.Orientation = p.Orientation.Mul(mgl64.QuatRotate(angle, axis)).Normalize()
}

// ToWorld rotates a local-frame vector into the world frame
func (p Pose) ToWorld(local mgl64.Vec3) mgl64.Vec3 {
	return p.Orientation.Rotate(local)
}

// TranslateLocal moves the pose by a local-frame offset
func (p *Pose) TranslateLocal(local mgl64.Vec3) {
	p.Position = p.Position.Add(p.ToWorld(local))
}

// ViewMatrix returns the world-to-camera transform for a camera at this pose.
func (p Pose) ViewMatrix() mgl64.Mat4 {
	inverse := p.Orientation.Conjugate().Mat4()
	return inverse.Mul4(mgl64.Translate3D(-p.Position.X(), -p.Position.Y(), -p.Position.Z()))
}
