// pkg/input/source.go
package input

import (
	"sync"
)

// Capability describes what kind of intents a source can produce
type Capability int

const (
	// DiscreteOnly sources produce key-driven intents only.
	DiscreteOnly Capability = iota
	// DiscreteAndLook sources add continuous mouse-look rotation.
	DiscreteAndLook
)

// String returns the capability name
func (c Capability) String() string {
	switch c {
	case DiscreteOnly:
		return "discrete"
	case DiscreteAndLook:
		return "discrete+look"
	default:
		return "unknown"
	}
}

// Source produces one Snapshot per frame. Current must be called exactly once
// per frame: button edges are consumed by the call.
type Source interface {
	Current() Snapshot
	Capability() Capability
}

// KeyboardSource reads intents from a Keyboard through a set of bindings
type KeyboardSource struct {
	keyboard *Keyboard
	axes     map[Control][2][]Key
	buttons  map[Control][]Key
}

// NewKeyboardSource creates a keyboard-only source
func NewKeyboardSource(keyboard *Keyboard, bindings Bindings) *KeyboardSource {
	s := &KeyboardSource{
		keyboard: keyboard,
		axes:     make(map[Control][2][]Key),
		buttons:  make(map[Control][]Key),
	}
	for _, c := range Axes {
		b := bindings[c]
		s.axes[c] = [2][]Key{parseKeys(b.Positive), parseKeys(b.Negative)}
	}
	for _, c := range Buttons {
		s.buttons[c] = parseKeys(bindings[c].Positive)
	}
	return s
}

// Keyboard returns the device this source reads from
func (s *KeyboardSource) Keyboard() *Keyboard {
	return s.keyboard
}

// Capability implements Source
func (s *KeyboardSource) Capability() Capability {
	return DiscreteOnly
}

// Current implements Source
func (s *KeyboardSource) Current() Snapshot {
	pressed := s.keyboard.ConsumePresses()

	snap := Snapshot{
		Roll:    s.axis(Roll),
		Yaw:     s.axis(Yaw),
		Pitch:   s.axis(Pitch),
		Forward: s.axis(Forward),
		Strafe:  s.axis(Strafe),
	}
	snap.GearUp = anyPressed(pressed, s.buttons[GearUp])
	snap.GearDown = anyPressed(pressed, s.buttons[GearDown])
	snap.ToggleCockpit = anyPressed(pressed, s.buttons[ToggleCockpit])
	snap.PointerLock = anyPressed(pressed, s.buttons[PointerLock])
	snap.Quit = anyPressed(pressed, s.buttons[Quit])
	return snap
}

func (s *KeyboardSource) axis(c Control) float64 {
	keys := s.axes[c]
	v := 0.0
	if s.anyDown(keys[0]) {
		v++
	}
	if s.anyDown(keys[1]) {
		v--
	}
	return v
}

func (s *KeyboardSource) anyDown(keys []Key) bool {
	for _, k := range keys {
		if s.keyboard.Down(k) {
			return true
		}
	}
	return false
}

func anyPressed(pressed map[Key]bool, keys []Key) bool {
	for _, k := range keys {
		if pressed[k] {
			return true
		}
	}
	return false
}

func parseKeys(names []string) []Key {
	keys := make([]Key, 0, len(names))
	for _, n := range names {
		keys = append(keys, ParseKey(n))
	}
	return keys
}

// DefaultLookSensitivity is radians of rotation per pixel of mouse travel
const DefaultLookSensitivity = 0.002

// MouseLookSource adds mouse-look to a keyboard source. Mouse travel only
// turns the craft while the pointer is locked.
type MouseLookSource struct {
	keys        *KeyboardSource
	sensitivity float64

	mu     sync.Mutex
	dx, dy float64
	locked bool
}

// NewMouseLookSource creates a keyboard+mouse-look source.
// A non-positive sensitivity uses DefaultLookSensitivity.
func NewMouseLookSource(keyboard *Keyboard, bindings Bindings, sensitivity float64) *MouseLookSource {
	if sensitivity <= 0 {
		sensitivity = DefaultLookSensitivity
	}
	return &MouseLookSource{
		keys:        NewKeyboardSource(keyboard, bindings),
		sensitivity: sensitivity,
	}
}

// Keyboard returns the device this source reads keys from
func (s *MouseLookSource) Keyboard() *Keyboard {
	return s.keys.keyboard
}

// Capability implements Source
func (s *MouseLookSource) Capability() Capability {
	return DiscreteAndLook
}

// Move accumulates mouse travel in pixels; ignored while the pointer is free
func (s *MouseLookSource) Move(dx, dy float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.locked {
		return
	}
	s.dx += dx
	s.dy += dy
}

// SetPointerLock captures or releases the pointer
func (s *MouseLookSource) SetPointerLock(locked bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.locked = locked
	if !locked {
		s.dx, s.dy = 0, 0
	}
}

// TogglePointerLock flips the pointer capture and returns the new state
func (s *MouseLookSource) TogglePointerLock() bool {
	s.mu.Lock()
	locked := !s.locked
	s.mu.Unlock()
	s.SetPointerLock(locked)
	return locked
}

// PointerLocked reports whether mouse travel is being captured
func (s *MouseLookSource) PointerLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locked
}

// Current implements Source
func (s *MouseLookSource) Current() Snapshot {
	snap := s.keys.Current()
	if snap.PointerLock {
		s.TogglePointerLock()
	}

	s.mu.Lock()
	dx, dy := s.dx, s.dy
	s.dx, s.dy = 0, 0
	s.mu.Unlock()

	// Screen x grows right and y grows down; both turn the craft the negative way.
	snap.LookYaw = -dx * s.sensitivity
	snap.LookPitch = -dy * s.sensitivity
	return snap
}
