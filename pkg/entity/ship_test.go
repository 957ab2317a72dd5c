// pkg/entity/ship_test.go
package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestNewShip(t *testing.T) {
	ship := NewShip(4, "craft", mgl64.Vec3{1, 2, 3})

	if !ship.CockpitVisible {
		t.Error("Expected the cockpit to start visible")
	}
	if ship.CockpitOffset != DefaultCockpitOffset {
		t.Errorf("Expected offset %v, got %v", DefaultCockpitOffset, ship.CockpitOffset)
	}
	if ship.Orientation != mgl64.QuatIdent() {
		t.Errorf("Expected identity orientation, got %v", ship.Orientation)
	}
	if !ship.Active {
		t.Error("Expected a new ship to be active")
	}
}

func TestShip_ToggleCockpitAtOrigin(t *testing.T) {
	ship := NewShip(1, "craft", mgl64.Vec3{})

	if ship.ToggleCockpit() {
		t.Error("Expected first toggle to hide the cockpit")
	}
	if !ship.ToggleCockpit() {
		t.Error("Expected second toggle to show the cockpit")
	}
}

func TestShip_ResetCockpit(t *testing.T) {
	ship := NewShip(1, "craft", mgl64.Vec3{})
	ship.CockpitOffset = ship.CockpitOffset.Add(mgl64.Vec3{0.5, -0.2, 0})

	ship.ResetCockpit()
	if ship.CockpitOffset != ship.CockpitBase {
		t.Errorf("Expected %v, got %v", ship.CockpitBase, ship.CockpitOffset)
	}
}
