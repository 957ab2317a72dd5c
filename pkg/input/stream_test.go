// pkg/input/stream_test.go
package input

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestStream_Write(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Key
	}{
		{"Printable", "aQ", []Key{"a", "q"}},
		{"Arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []Key{KeyArrowUp, KeyArrowDown, KeyArrowRight, KeyArrowLeft}},
		{"Paging", "\x1b[5~\x1b[6~", []Key{KeyPageUp, KeyPageDown}},
		{"Lone escape", "\x1b", []Key{KeyEscape}},
		{"Ctrl-C", "\x03", []Key{KeyCtrlC}},
		{"Space", " ", []Key{KeySpace}},
		{"Mixed", "r\x1b[Af", []Key{"r", KeyArrowUp, "f"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb, _ := newTestKeyboard()
			s := NewStream(kb)

			n, err := s.Write([]byte(tt.input))
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if n != len(tt.input) {
				t.Errorf("Expected %d bytes written, got %d", len(tt.input), n)
			}

			pressed := kb.ConsumePresses()
			for _, k := range tt.want {
				if !pressed[k] {
					t.Errorf("Expected %q to be pressed, got %v", k, pressed)
				}
			}
			if len(pressed) != len(tt.want) {
				t.Errorf("Expected %d presses, got %d (%v)", len(tt.want), len(pressed), pressed)
			}
		})
	}
}

func TestStream_SplitSequence(t *testing.T) {
	kb, _ := newTestKeyboard()
	s := NewStream(kb)

	s.Write([]byte("\x1b["))
	if len(kb.ConsumePresses()) != 0 {
		t.Fatal("Expected a partial sequence to wait for more input")
	}
	s.Write([]byte("5"))
	s.Write([]byte("~"))

	if !kb.ConsumePresses()[KeyPageUp] {
		t.Error("Expected page up once the sequence completed")
	}
}

func TestStream_Run(t *testing.T) {
	kb, _ := newTestKeyboard()
	s := NewStream(kb)

	if err := s.Run(context.Background(), strings.NewReader("c\x1b[B")); err != nil {
		t.Fatalf("Expected EOF to end cleanly, got %v", err)
	}
	pressed := kb.ConsumePresses()
	if !pressed["c"] || !pressed[KeyArrowDown] {
		t.Errorf("Expected c and arrowdown, got %v", pressed)
	}
}

func TestStream_RunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewStream(NewKeyboard(0))
	err := s.Run(ctx, strings.NewReader("a"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestTcellAdapter_Keys(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want Key
	}{
		{"Rune", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModNone), "a"},
		{"Up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), KeyArrowUp},
		{"PgDn", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), KeyPageDown},
		{"Escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), KeyEscape},
		{"Ctrl-C", tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), KeyCtrlC},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kb, _ := newTestKeyboard()
			a := NewTcellAdapter(kb, nil)
			if !a.Handle(tt.ev) {
				t.Fatal("Expected key event to be handled")
			}
			if !kb.Down(tt.want) {
				t.Errorf("Expected %q to be down", tt.want)
			}
		})
	}
}

func TestTcellAdapter_Mouse(t *testing.T) {
	kb, _ := newTestKeyboard()
	look := NewMouseLookSource(kb, DefaultBindings(), 0.001)
	a := NewTcellAdapter(kb, look)

	a.Handle(tcell.NewEventMouse(10, 10, tcell.Button1, tcell.ModNone))
	if !look.PointerLocked() {
		t.Fatal("Expected a left click to capture the pointer")
	}
	a.Handle(tcell.NewEventMouse(10, 10, tcell.ButtonNone, tcell.ModNone))
	a.Handle(tcell.NewEventMouse(12, 10, tcell.ButtonNone, tcell.ModNone))

	snap := look.Current()
	if snap.LookYaw >= 0 {
		t.Errorf("Expected moving right to turn right (negative yaw), got %v", snap.LookYaw)
	}
	if snap.LookPitch != 0 {
		t.Errorf("Expected no pitch, got %v", snap.LookPitch)
	}
}

func TestTcellAdapter_IgnoresOtherEvents(t *testing.T) {
	a := NewTcellAdapter(NewKeyboard(0), nil)
	if a.Handle(tcell.NewEventResize(80, 24)) {
		t.Error("Expected resize not to be treated as input")
	}
}
