// pkg/entity/ship.go
package entity

import (
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultCockpitOffset places the cockpit model just below and ahead of the eye point
var DefaultCockpitOffset = mgl64.Vec3{0, -2, -2}

// Ship is the visible craft. Its pose mirrors the flight state each frame;
// the cockpit offset carries the cosmetic shake.
type Ship struct {
	BaseEntity
	CockpitVisible bool
	CockpitBase    mgl64.Vec3
	CockpitOffset  mgl64.Vec3
	Speed          float64
	GearName       string
}

// NewShip creates a ship with the cockpit shown at its resting offset
func NewShip(id ID, name string, position mgl64.Vec3) *Ship {
	return &Ship{
		BaseEntity: BaseEntity{
			ID:          id,
			Name:        name,
			Position:    position,
			Orientation: mgl64.QuatIdent(),
			Active:      true,
		},
		CockpitVisible: true,
		CockpitBase:    DefaultCockpitOffset,
		CockpitOffset:  DefaultCockpitOffset,
	}
}

// ToggleCockpit shows or hides the cockpit overlay and returns the new state
func (s *Ship) ToggleCockpit() bool {
	s.CockpitVisible = !s.CockpitVisible
	return s.CockpitVisible
}

// ResetCockpit puts the cockpit back at its resting offset
func (s *Ship) ResetCockpit() {
	s.CockpitOffset = s.CockpitBase
}
