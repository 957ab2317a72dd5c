// pkg/entity/entity.go
package entity

import (
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl64"
)

// ID is a unique identifier for an entity
type ID uint64

var nextID atomic.Uint64

// GenerateID returns a process-wide unique entity ID
func GenerateID() ID {
	return ID(nextID.Add(1))
}

// Entity is the base interface for everything placed in the scene
type Entity interface {
	GetID() ID
	GetName() string
	GetPosition() mgl64.Vec3
	Render(r Renderer)
}

// BaseEntity contains common functionality for all entities
type BaseEntity struct {
	ID          ID
	Name        string
	Position    mgl64.Vec3
	Orientation mgl64.Quat
	Active      bool
}

// GetID returns the entity's unique identifier
func (e *BaseEntity) GetID() ID {
	return e.ID
}

// GetName returns the entity's label key
func (e *BaseEntity) GetName() string {
	return e.Name
}

// GetPosition returns the entity's world position
func (e *BaseEntity) GetPosition() mgl64.Vec3 {
	return e.Position
}

// Render does nothing for a bare entity; concrete types dispatch to the renderer.
func (e *BaseEntity) Render(r Renderer) {}

func (b *CelestialBody) Render(r Renderer) {
	r.RenderBody(b)
}

func (b *AsteroidBelt) Render(r Renderer) {
	r.RenderBelt(b)
}

func (s *Ship) Render(r Renderer) {
	r.RenderShip(s)
}
