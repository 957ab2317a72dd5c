// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Simulation event types
const (
	GearShifted        Type = "gear_shifted"
	CockpitToggled     Type = "cockpit_toggled"
	PointerLockChanged Type = "pointer_lock_changed"
	BodyLoaded         Type = "body_loaded"
	AssetFailed        Type = "asset_failed"
	SimulationStarted  Type = "simulation_started"
	SimulationStopped  Type = "simulation_stopped"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

type subscriber struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine.
type Bus struct {
	handlers map[Type][]subscriber
	nextID   uint64
	mu       sync.RWMutex
}

// Subscription identifies one registered handler
type Subscription struct {
	bus       *Bus
	eventType Type
	id        uint64
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscriber),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscriber{id: id, handler: handler})
	return &Subscription{bus: b, eventType: eventType, id: id}
}

// Cancel removes the subscription's handler. Cancelling twice is a no-op.
func (s *Subscription) Cancel() {
	if s == nil || s.bus == nil {
		return
	}
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.handlers[s.eventType]
	for i, sub := range subs {
		if sub.id == s.id {
			b.handlers[s.eventType] = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	s.bus = nil
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs := b.handlers[event.GetType()]
	handlers := make([]Handler, len(subs))
	for i, sub := range subs {
		handlers[i] = sub.handler
	}
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(event)
	}
}

// Specific event implementations

// GearEvent reports a speed tier change
type GearEvent struct {
	BaseEvent
	Tier      string
	Magnitude float64
	Index     int
	Shift     int // +1 up, -1 down
}

// NewGearEvent creates a gear_shifted event
func NewGearEvent(source interface{}, tier string, magnitude float64, index, shift int) *GearEvent {
	return &GearEvent{
		BaseEvent: BaseEvent{
			EventType: GearShifted,
			Source:    source,
		},
		Tier:      tier,
		Magnitude: magnitude,
		Index:     index,
		Shift:     shift,
	}
}

// ToggleEvent reports an on/off switch such as the cockpit or pointer lock
type ToggleEvent struct {
	BaseEvent
	On bool
}

// NewToggleEvent creates a toggle event of the given type
func NewToggleEvent(eventType Type, source interface{}, on bool) *ToggleEvent {
	return &ToggleEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		On: on,
	}
}

// BodyEvent reports a body's visual resource resolving or failing
type BodyEvent struct {
	BaseEvent
	BodyID uint64
	Name   string
	Err    error
}

// NewBodyEvent creates a body_loaded event, or asset_failed when err is set
func NewBodyEvent(source interface{}, bodyID uint64, name string, err error) *BodyEvent {
	eventType := BodyLoaded
	if err != nil {
		eventType = AssetFailed
	}
	return &BodyEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		BodyID: bodyID,
		Name:   name,
		Err:    err,
	}
}
