// Package input turns raw device events into per-frame control snapshots.
//
// Devices push key and mouse events into an owned Keyboard or MouseLookSource;
// the flight controller pulls one Snapshot per frame through the Source
// interface and never sees the device.
package input

import (
	"strings"
	"unicode"
)

// Key names a physical key independently of the device that reported it.
// Printable keys use their lower-case character.
type Key string

// Named non-printable keys
const (
	KeyArrowUp    Key = "arrowup"
	KeyArrowDown  Key = "arrowdown"
	KeyArrowLeft  Key = "arrowleft"
	KeyArrowRight Key = "arrowright"
	KeyPageUp     Key = "pageup"
	KeyPageDown   Key = "pagedown"
	KeyEscape     Key = "escape"
	KeyCtrlC      Key = "ctrl+c"
	KeyShift      Key = "shift"
	KeySpace      Key = "space"
	KeyEnter      Key = "enter"
)

// RuneKey returns the Key for a printable character
func RuneKey(r rune) Key {
	if r == ' ' {
		return KeySpace
	}
	return Key(string(unicode.ToLower(r)))
}

// ParseKey normalises a key name read from configuration
func ParseKey(name string) Key {
	name = strings.ToLower(strings.TrimSpace(name))
	if len([]rune(name)) == 1 {
		return RuneKey([]rune(name)[0])
	}
	switch name {
	case "up":
		return KeyArrowUp
	case "down":
		return KeyArrowDown
	case "left":
		return KeyArrowLeft
	case "right":
		return KeyArrowRight
	case "pgup":
		return KeyPageUp
	case "pgdn", "pgdown":
		return KeyPageDown
	case "esc":
		return KeyEscape
	}
	return Key(name)
}
