// pkg/entity/body.go
package entity

import (
	"github.com/go-gl/mathgl/mgl64"

	"github.com/opd-ai/go-solarflight/pkg/physics"
)

// BodyKind classifies a celestial body
type BodyKind int

const (
	Star BodyKind = iota
	Planet
	DwarfPlanet
	Moon
)

// String returns the lower-case name of the kind
func (k BodyKind) String() string {
	switch k {
	case Star:
		return "star"
	case Planet:
		return "planet"
	case DwarfPlanet:
		return "dwarf_planet"
	case Moon:
		return "moon"
	default:
		return "unknown"
	}
}

// ParseBodyKind maps a configuration name onto a kind
func ParseBodyKind(name string) (BodyKind, bool) {
	switch name {
	case "star", "sun":
		return Star, true
	case "planet", "":
		return Planet, true
	case "dwarf_planet", "dwarf":
		return DwarfPlanet, true
	case "moon":
		return Moon, true
	}
	return Planet, false
}

// Ring is a flat annulus around a body, in the same units as the body radius
type Ring struct {
	InnerRadius float64
	OuterRadius float64
}

// CelestialBody is a star, planet or moon moving on a circular orbit.
// The static fields come from configuration; OrbitalAngle, RotationAngle and
// Position are owned by the orbit animator.
type CelestialBody struct {
	BaseEntity
	DisplayName    string
	Kind           BodyKind
	Radius         float64
	OrbitRadius    float64
	OrbitalPeriod  float64
	RotationPeriod float64
	AxialTilt      float64 // radians
	Color          string
	Ring           *Ring
	Moons          []*CelestialBody
	Parent         *CelestialBody

	OrbitalAngle  float64
	RotationAngle float64
}

// NewCelestialBody creates a body parked at the start of its orbit
func NewCelestialBody(id ID, name string, kind BodyKind) *CelestialBody {
	return &CelestialBody{
		BaseEntity: BaseEntity{
			ID:          id,
			Name:        name,
			Orientation: mgl64.QuatIdent(),
			Active:      true,
		},
		DisplayName: name,
		Kind:        kind,
	}
}

// AddMoon attaches a child body that orbits this one
func (b *CelestialBody) AddMoon(moon *CelestialBody) {
	moon.Parent = b
	b.Moons = append(b.Moons, moon)
}

// Revolves reports whether the body moves around its parent.
func (b *CelestialBody) Revolves() bool {
	return b.OrbitalPeriod != 0
}

// TiltRotation returns the fixed rotation that leans the spin axis by the axial tilt.
func (b *CelestialBody) TiltRotation() mgl64.Quat {
	return mgl64.QuatRotate(b.AxialTilt, mgl64.Vec3{0, 0, 1})
}

// SpinAxis returns the world direction of the body's rotation axis
func (b *CelestialBody) SpinAxis() mgl64.Vec3 {
	return b.TiltRotation().Rotate(physics.AxisUp)
}

// Facing returns the body's orientation: its spin applied about the tilted axis.
func (b *CelestialBody) Facing() mgl64.Quat {
	spin := mgl64.QuatRotate(b.RotationAngle, physics.AxisUp)
	return b.TiltRotation().Mul(spin).Normalize()
}

// ParentPosition returns the point this body orbits around
func (b *CelestialBody) ParentPosition() mgl64.Vec3 {
	if b.Parent == nil {
		return mgl64.Vec3{}
	}
	return b.Parent.Position
}

// Walk visits the body and then every moon depth-first
func (b *CelestialBody) Walk(fn func(*CelestialBody)) {
	fn(b)
	for _, moon := range b.Moons {
		moon.Walk(fn)
	}
}
