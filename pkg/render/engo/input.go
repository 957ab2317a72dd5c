// pkg/render/engo/input.go
package engo

import (
	"github.com/EngoEngine/ecs"
	"github.com/EngoEngine/engo"

	"github.com/opd-ai/go-solarflight/pkg/input"
)

var letterKeys = []engo.Key{
	engo.KeyA, engo.KeyB, engo.KeyC, engo.KeyD, engo.KeyE, engo.KeyF, engo.KeyG,
	engo.KeyH, engo.KeyI, engo.KeyJ, engo.KeyK, engo.KeyL, engo.KeyM, engo.KeyN,
	engo.KeyO, engo.KeyP, engo.KeyQ, engo.KeyR, engo.KeyS, engo.KeyT, engo.KeyU,
	engo.KeyV, engo.KeyW, engo.KeyX, engo.KeyY, engo.KeyZ,
}

var digitKeys = []engo.Key{
	engo.KeyZero, engo.KeyOne, engo.KeyTwo, engo.KeyThree, engo.KeyFour,
	engo.KeyFive, engo.KeySix, engo.KeySeven, engo.KeyEight, engo.KeyNine,
}

var namedKeys = map[input.Key]engo.Key{
	input.KeyArrowUp:    engo.KeyArrowUp,
	input.KeyArrowDown:  engo.KeyArrowDown,
	input.KeyArrowLeft:  engo.KeyArrowLeft,
	input.KeyArrowRight: engo.KeyArrowRight,
	input.KeyPageUp:     engo.KeyPageUp,
	input.KeyPageDown:   engo.KeyPageDown,
	input.KeyEscape:     engo.KeyEscape,
	input.KeySpace:      engo.KeySpace,
	input.KeyEnter:      engo.KeyEnter,
	input.KeyShift:      engo.KeyLeftShift,
}

// EngoKey maps a device-independent key onto the engine's key code
func EngoKey(k input.Key) (engo.Key, bool) {
	if ek, ok := namedKeys[k]; ok {
		return ek, true
	}
	r := []rune(string(k))
	if len(r) != 1 {
		return 0, false
	}
	switch {
	case r[0] >= 'a' && r[0] <= 'z':
		return letterKeys[r[0]-'a'], true
	case r[0] >= '0' && r[0] <= '9':
		return digitKeys[r[0]-'0'], true
	}
	return 0, false
}

type buttonState interface {
	JustPressed() bool
	JustReleased() bool
}

// InputSystem forwards engine key and mouse state into the flight input
// devices. It never touches the flight state itself.
type InputSystem struct {
	keyboard *input.Keyboard
	look     *input.MouseLookSource
	keys     map[input.Key]engo.Key

	button func(name string) buttonState
	mouse  func() (float32, float32)

	lastX, lastY float32
	tracking     bool
}

// NewInputSystem creates a system feeding keyboard, and look when it is not
// nil, for every bound key the engine can report.
func NewInputSystem(keyboard *input.Keyboard, look *input.MouseLookSource, bindings input.Bindings) *InputSystem {
	keys := make(map[input.Key]engo.Key)
	for _, k := range bindings.Keys() {
		if ek, ok := EngoKey(k); ok {
			keys[k] = ek
		}
	}
	return &InputSystem{
		keyboard: keyboard,
		look:     look,
		keys:     keys,
		button:   func(name string) buttonState { return engo.Input.Button(name) },
		mouse:    func() (float32, float32) { return engo.Input.Mouse.X, engo.Input.Mouse.Y },
	}
}

func buttonName(k input.Key) string {
	return "key:" + string(k)
}

// Register declares one engine button per bound key
func (is *InputSystem) Register() {
	for k, ek := range is.keys {
		engo.Input.RegisterButton(buttonName(k), ek)
	}
}

// Keys returns how many keys are forwarded
func (is *InputSystem) Keys() int {
	return len(is.keys)
}

// Priority runs input first so the simulation sees this frame's keys
func (is *InputSystem) Priority() int { return 30 }

// Remove satisfies the ecs.System interface
func (is *InputSystem) Remove(ecs.BasicEntity) {}

// Update implements ecs.System
func (is *InputSystem) Update(dt float32) {
	for k := range is.keys {
		b := is.button(buttonName(k))
		if b.JustPressed() {
			is.keyboard.KeyDown(k)
		}
		if b.JustReleased() {
			is.keyboard.KeyUp(k)
		}
	}
	is.trackMouse()
}

// Pointer returns the mouse position. ok is false while the pointer is locked
// for mouse look.
func (is *InputSystem) Pointer() (x, y float32, ok bool) {
	if is.look != nil && is.look.PointerLocked() {
		return 0, 0, false
	}
	x, y = is.mouse()
	return x, y, true
}

func (is *InputSystem) trackMouse() {
	if is.look == nil {
		return
	}
	x, y := is.mouse()
	if is.tracking && is.look.PointerLocked() {
		is.look.Move(float64(x-is.lastX), float64(y-is.lastY))
	}
	is.lastX, is.lastY, is.tracking = x, y, true
}
