// Package orbit advances celestial bodies along closed-form circular orbits.
//
// Orbits are kinematic: an accumulated angle per body grows linearly with
// simulated time and the position is read off a circle in the XZ plane around
// the parent's current position. There is no gravitation.
package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-solarflight/pkg/physics"
)

// AdvanceAngle returns angle moved forward by dt along a revolution of the given period.
// A zero period means the body does not revolve and the angle is returned unchanged.
// The result is not wrapped; callers only ever feed it to periodic functions.
func AdvanceAngle(angle, period, dt float64) float64 {
	if period == 0 {
		return angle
	}
	return angle + (2*math.Pi/period)*dt
}

// AngularRate returns radians per time unit for the given period, zero for a zero period.
func AngularRate(period float64) float64 {
	if period == 0 {
		return 0
	}
	return 2 * math.Pi / period
}

// Offset returns the position on an orbit of the given radius at the given angle,
// relative to the parent.
func Offset(radius, angle float64) mgl64.Vec3 {
	return physics.FromAngle(angle, radius)
}

// Position returns parent + Offset(radius, angle).
func Position(parent mgl64.Vec3, radius, angle float64) mgl64.Vec3 {
	return parent.Add(Offset(radius, angle))
}
