// pkg/orbit/animator.go
package orbit

import (
	"errors"
	"fmt"

	"github.com/opd-ai/go-solarflight/pkg/entity"
)

// ErrParentNotRegistered is returned when a moon is registered before its planet.
var ErrParentNotRegistered = errors.New("parent body not registered")

// Acceleration limits for the two time multipliers.
const (
	MinAcceleration = 0.0
	MaxAcceleration = 10.0
)

// TimeScale maps real seconds onto simulated time.
type TimeScale struct {
	// DaysPerSecond is how many simulated days pass per real second.
	DaysPerSecond float64
	// OrbitAcceleration multiplies the revolution of every body and belt.
	OrbitAcceleration float64
	// SpinAcceleration multiplies the self-rotation of every body.
	SpinAcceleration float64
}

// DefaultTimeScale runs one simulated day per second with no extra acceleration
func DefaultTimeScale() TimeScale {
	return TimeScale{
		DaysPerSecond:     1,
		OrbitAcceleration: 1,
		SpinAcceleration:  1,
	}
}

// Animator owns the angular state of every registered body and belt.
// Bodies are advanced in registration order, and a moon can only be
// registered after its parent, so a parent has always moved before its
// moons read its position.
type Animator struct {
	scale      TimeScale
	bodies     []*entity.CelestialBody
	registered map[entity.ID]bool
	belts      []*entity.AsteroidBelt
	clock      *Clock
}

// NewAnimator creates an animator with the given time scale
func NewAnimator(scale TimeScale) *Animator {
	a := &Animator{
		registered: make(map[entity.ID]bool),
	}
	a.SetTimeScale(scale)
	return a
}

// SetTimeScale replaces the time scale, clamping both accelerations.
func (a *Animator) SetTimeScale(scale TimeScale) {
	scale.OrbitAcceleration = clampAcceleration(scale.OrbitAcceleration)
	scale.SpinAcceleration = clampAcceleration(scale.SpinAcceleration)
	if scale.DaysPerSecond < 0 {
		scale.DaysPerSecond = 0
	}
	a.scale = scale
}

// SetClock attaches a calendar advanced by DaysPerSecond. The accelerations
// speed up the motion, not the date.
func (a *Animator) SetClock(c *Clock) {
	a.clock = c
}

// TimeScale returns the current time scale
func (a *Animator) TimeScale() TimeScale {
	return a.scale
}

// Register starts animating a body whose visual resource is ready.
// The body is placed on its orbit immediately. Registering a body twice is a no-op.
func (a *Animator) Register(body *entity.CelestialBody) error {
	if body == nil {
		return fmt.Errorf("failed to register body: nil body")
	}
	if a.registered[body.ID] {
		return nil
	}
	if body.Parent != nil && !a.registered[body.Parent.ID] {
		return fmt.Errorf("failed to register %s: %w", body.Name, ErrParentNotRegistered)
	}

	a.bodies = append(a.bodies, body)
	a.registered[body.ID] = true
	place(body)
	return nil
}

// RegisterBelt starts revolving an asteroid belt
func (a *Animator) RegisterBelt(belt *entity.AsteroidBelt) {
	for _, b := range a.belts {
		if b == belt {
			return
		}
	}
	a.belts = append(a.belts, belt)
}

// IsRegistered reports whether the body is being animated
func (a *Animator) IsRegistered(body *entity.CelestialBody) bool {
	return body != nil && a.registered[body.ID]
}

// Bodies returns the registered bodies in the order they are advanced
func (a *Animator) Bodies() []*entity.CelestialBody {
	return a.bodies
}

// Belts returns the registered belts
func (a *Animator) Belts() []*entity.AsteroidBelt {
	return a.belts
}

// Advance moves every registered body and belt forward by dt real seconds.
// Negative dt is treated as zero.
func (a *Animator) Advance(dt float64) {
	if dt <= 0 {
		return
	}
	orbitDt := dt * a.scale.DaysPerSecond * a.scale.OrbitAcceleration
	spinDt := dt * a.scale.DaysPerSecond * a.scale.SpinAcceleration

	for _, body := range a.bodies {
		AdvanceBody(body, orbitDt, spinDt)
	}
	for _, belt := range a.belts {
		belt.OrbitalAngle = AdvanceAngle(belt.OrbitalAngle, belt.OrbitalPeriod, orbitDt)
	}
	if a.clock != nil {
		a.clock.Advance(dt * a.scale.DaysPerSecond)
	}
}

// AdvanceBody applies the orbital law to one body using simulated time
// increments for revolution and spin, then recomputes its pose. The parent,
// if any, must already hold its position for this frame.
func AdvanceBody(body *entity.CelestialBody, orbitDt, spinDt float64) {
	body.OrbitalAngle = AdvanceAngle(body.OrbitalAngle, body.OrbitalPeriod, orbitDt)
	body.RotationAngle = AdvanceAngle(body.RotationAngle, body.RotationPeriod, spinDt)
	place(body)
}

// place derives position and facing from the current angles.
// A body that does not revolve sits on its parent. Moons are offset from the
// parent's position only; the parent's tilt and spin do not carry over.
func place(body *entity.CelestialBody) {
	if body.Revolves() {
		body.Position = Position(body.ParentPosition(), body.OrbitRadius, body.OrbitalAngle)
	} else {
		body.Position = body.ParentPosition()
	}
	body.Orientation = body.Facing()
}

func clampAcceleration(v float64) float64 {
	if v < MinAcceleration {
		return MinAcceleration
	}
	if v > MaxAcceleration {
		return MaxAcceleration
	}
	return v
}
