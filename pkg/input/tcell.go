// pkg/input/tcell.go
package input

import (
	"github.com/gdamore/tcell/v2"
)

// cellPixels approximates the width of one terminal cell in mouse pixels
const cellPixels = 8.0

// TcellAdapter forwards tcell events into a keyboard and, when present,
// a mouse-look source. A left click toggles the pointer lock.
type TcellAdapter struct {
	keyboard *Keyboard
	look     *MouseLookSource

	lastX, lastY int
	havePos      bool
	lastButtons  tcell.ButtonMask
}

// NewTcellAdapter creates an adapter. look may be nil for a keyboard-only setup.
func NewTcellAdapter(keyboard *Keyboard, look *MouseLookSource) *TcellAdapter {
	return &TcellAdapter{keyboard: keyboard, look: look}
}

// Handle applies one event and reports whether it was an input event
func (a *TcellAdapter) Handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if key, ok := tcellKey(ev); ok {
			a.keyboard.Tap(key)
		}
		return true
	case *tcell.EventMouse:
		a.handleMouse(ev)
		return true
	}
	return false
}

func (a *TcellAdapter) handleMouse(ev *tcell.EventMouse) {
	if a.look == nil {
		return
	}
	x, y := ev.Position()
	buttons := ev.Buttons()

	if buttons&tcell.Button1 != 0 && a.lastButtons&tcell.Button1 == 0 {
		a.look.TogglePointerLock()
	}
	a.lastButtons = buttons

	if a.havePos {
		a.look.Move(float64(x-a.lastX)*cellPixels, float64(y-a.lastY)*cellPixels*2)
	}
	a.lastX, a.lastY = x, y
	a.havePos = true
}

func tcellKey(ev *tcell.EventKey) (Key, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		return RuneKey(ev.Rune()), true
	case tcell.KeyUp:
		return KeyArrowUp, true
	case tcell.KeyDown:
		return KeyArrowDown, true
	case tcell.KeyLeft:
		return KeyArrowLeft, true
	case tcell.KeyRight:
		return KeyArrowRight, true
	case tcell.KeyPgUp:
		return KeyPageUp, true
	case tcell.KeyPgDn:
		return KeyPageDown, true
	case tcell.KeyEscape:
		return KeyEscape, true
	case tcell.KeyCtrlC:
		return KeyCtrlC, true
	case tcell.KeyEnter:
		return KeyEnter, true
	}
	return "", false
}
