// pkg/input/keyboard.go
package input

import (
	"sync"
	"time"
)

// DefaultKeyHold is how long a tapped key counts as held after its last event.
// Terminals only send repeated key presses, never key releases.
const DefaultKeyHold = 150 * time.Millisecond

// keyState tracks one key that is currently down
type keyState struct {
	lastTap time.Time
	sticky  bool // set by KeyDown, cleared only by KeyUp
}

// Keyboard is an owned key-state device. Adapters push events from their own
// goroutine; sources read it once per frame.
type Keyboard struct {
	mu      sync.Mutex
	hold    time.Duration
	now     func() time.Time
	down    map[Key]keyState
	pressed map[Key]bool
}

// NewKeyboard creates a keyboard with the given hold window for tapped keys.
// A non-positive hold uses DefaultKeyHold.
func NewKeyboard(hold time.Duration) *Keyboard {
	if hold <= 0 {
		hold = DefaultKeyHold
	}
	return &Keyboard{
		hold:    hold,
		now:     time.Now,
		down:    make(map[Key]keyState),
		pressed: make(map[Key]bool),
	}
}

// SetClock replaces the time source used for hold expiry
func (k *Keyboard) SetClock(now func() time.Time) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.now = now
}

// KeyDown records an explicit press that lasts until KeyUp
func (k *Keyboard) KeyDown(key Key) {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if !k.isDownLocked(key, now) {
		k.pressed[key] = true
	}
	k.down[key] = keyState{lastTap: now, sticky: true}
}

// KeyUp records an explicit release
func (k *Keyboard) KeyUp(key Key) {
	k.mu.Lock()
	defer k.mu.Unlock()
	delete(k.down, key)
}

// Tap records a press from a device without release events. The key stays
// down for the hold window after the most recent tap.
func (k *Keyboard) Tap(key Key) {
	k.mu.Lock()
	defer k.mu.Unlock()

	now := k.now()
	if !k.isDownLocked(key, now) {
		k.pressed[key] = true
	}
	state := k.down[key]
	state.lastTap = now
	k.down[key] = state
}

// Down reports whether the key is currently held
func (k *Keyboard) Down(key Key) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.isDownLocked(key, k.now())
}

// JustPressed reports whether the key went down since the last ConsumePresses
func (k *Keyboard) JustPressed(key Key) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.pressed[key]
}

// ConsumePresses returns the keys that went down since the previous call and clears them.
func (k *Keyboard) ConsumePresses() map[Key]bool {
	k.mu.Lock()
	defer k.mu.Unlock()

	pressed := k.pressed
	k.pressed = make(map[Key]bool)
	return pressed
}

// Reset releases every key and forgets pending presses
func (k *Keyboard) Reset() {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.down = make(map[Key]keyState)
	k.pressed = make(map[Key]bool)
}

func (k *Keyboard) isDownLocked(key Key, now time.Time) bool {
	state, ok := k.down[key]
	if !ok {
		return false
	}
	if state.sticky {
		return true
	}
	if now.Sub(state.lastTap) < k.hold {
		return true
	}
	delete(k.down, key)
	return false
}
