// pkg/physics/vector.go
package physics

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Local axes of an unrotated pose. The craft looks down -Z.
var (
	AxisRight   = mgl64.Vec3{1, 0, 0}
	AxisUp      = mgl64.Vec3{0, 1, 0}
	AxisForward = mgl64.Vec3{0, 0, -1}
)

// zeroLength is the length below which a vector has no usable direction.
const zeroLength = 1e-12

// SafeNormalize returns a unit vector in the same direction as v.
// A zero-length vector yields the zero vector with ok set to false.
func SafeNormalize(v mgl64.Vec3) (unit mgl64.Vec3, ok bool) {
	length := v.Len()
	if length < zeroLength {
		return mgl64.Vec3{}, false
	}
	return v.Mul(1 / length), true
}

// Distance returns the distance between two points
func Distance(a, b mgl64.Vec3) float64 {
	return a.Sub(b).Len()
}

// FromAngle returns the point at the given angle on a circle of radius
// magnitude lying in the XZ plane.
func FromAngle(angle float64, magnitude float64) mgl64.Vec3 {
	return mgl64.Vec3{
		magnitude * math.Cos(angle),
		0,
		magnitude * math.Sin(angle),
	}
}

// ApproxEqual reports whether every component of a and b differs by less than eps.
func ApproxEqual(a, b mgl64.Vec3, eps float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// ClampUnit limits an intent value to [-1, 1].
func ClampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
