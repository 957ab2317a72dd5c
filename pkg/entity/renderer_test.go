package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

// MockRenderer records every call made through the Renderer interface
type MockRenderer struct {
	Bodies           []*CelestialBody
	Belts            []*AsteroidBelt
	Ships            []*Ship
	ClearCallCount   int
	PresentCallCount int
}

// RenderBody implements the Renderer interface
func (m *MockRenderer) RenderBody(body *CelestialBody) {
	m.Bodies = append(m.Bodies, body)
}

// RenderBelt implements the Renderer interface
func (m *MockRenderer) RenderBelt(belt *AsteroidBelt) {
	m.Belts = append(m.Belts, belt)
}

// RenderShip implements the Renderer interface
func (m *MockRenderer) RenderShip(ship *Ship) {
	m.Ships = append(m.Ships, ship)
}

// Clear implements the Renderer interface
func (m *MockRenderer) Clear() {
	m.ClearCallCount++
}

// Present implements the Renderer interface
func (m *MockRenderer) Present() {
	m.PresentCallCount++
}

func TestRenderer_InterfaceCompliance(t *testing.T) {
	var _ Renderer = &MockRenderer{}
}

func TestEntity_RenderDispatch(t *testing.T) {
	renderer := &MockRenderer{}

	entities := []Entity{
		NewCelestialBody(1, "earth", Planet),
		NewAsteroidBelt(2, "main-belt", 10, 130, 160, 1600, 7),
		NewShip(3, "player", mgl64.Vec3{}),
	}

	renderer.Clear()
	for _, e := range entities {
		e.Render(renderer)
	}
	renderer.Present()

	if len(renderer.Bodies) != 1 || renderer.Bodies[0].Name != "earth" {
		t.Errorf("Expected one body render for earth, got %v", renderer.Bodies)
	}
	if len(renderer.Belts) != 1 {
		t.Errorf("Expected one belt render, got %d", len(renderer.Belts))
	}
	if len(renderer.Ships) != 1 {
		t.Errorf("Expected one ship render, got %d", len(renderer.Ships))
	}
	if renderer.ClearCallCount != 1 || renderer.PresentCallCount != 1 {
		t.Errorf("Expected one Clear and one Present, got %d and %d",
			renderer.ClearCallCount, renderer.PresentCallCount)
	}
}

func TestBaseEntity_RenderIsNoop(t *testing.T) {
	renderer := &MockRenderer{}
	base := &BaseEntity{ID: 9, Name: "nothing"}
	base.Render(renderer)

	if len(renderer.Bodies)+len(renderer.Belts)+len(renderer.Ships) != 0 {
		t.Error("Expected BaseEntity.Render to draw nothing")
	}
}
