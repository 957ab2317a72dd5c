// pkg/input/stream.go
package input

import (
	"context"
	"errors"
	"io"
)

// Stream decodes a raw terminal byte stream into key taps on a Keyboard.
// It understands printable characters, Ctrl-C, Escape, the arrow keys and
// PageUp/PageDown escape sequences.
type Stream struct {
	keyboard *Keyboard
	pending  []byte
}

// NewStream creates a decoder feeding the given keyboard
func NewStream(keyboard *Keyboard) *Stream {
	return &Stream{keyboard: keyboard}
}

// Write decodes p. An escape sequence split across writes is completed by
// the next write.
func (s *Stream) Write(p []byte) (int, error) {
	buf := append(s.pending, p...)
	s.pending = nil

	for i := 0; i < len(buf); i++ {
		b := buf[i]
		if b != 0x1b {
			s.tapByte(b)
			continue
		}

		// ESC at the very end: a lone Escape key.
		if i+1 >= len(buf) {
			s.keyboard.Tap(KeyEscape)
			continue
		}
		if buf[i+1] != '[' {
			s.keyboard.Tap(KeyEscape)
			continue
		}
		if i+2 >= len(buf) {
			s.pending = append(s.pending, buf[i:]...)
			break
		}

		switch buf[i+2] {
		case 'A':
			s.keyboard.Tap(KeyArrowUp)
			i += 2
		case 'B':
			s.keyboard.Tap(KeyArrowDown)
			i += 2
		case 'C':
			s.keyboard.Tap(KeyArrowRight)
			i += 2
		case 'D':
			s.keyboard.Tap(KeyArrowLeft)
			i += 2
		case '5', '6':
			if i+3 >= len(buf) {
				s.pending = append(s.pending, buf[i:]...)
				i = len(buf)
				continue
			}
			if buf[i+3] == '~' {
				if buf[i+2] == '5' {
					s.keyboard.Tap(KeyPageUp)
				} else {
					s.keyboard.Tap(KeyPageDown)
				}
			}
			i += 3
		default:
			// Unknown CSI sequence: skip the introducer and its final byte.
			i += 2
		}
	}
	return len(p), nil
}

func (s *Stream) tapByte(b byte) {
	switch {
	case b == 0x03:
		s.keyboard.Tap(KeyCtrlC)
	case b == '\r' || b == '\n':
		s.keyboard.Tap(KeyEnter)
	case b >= 0x20 && b < 0x7f:
		s.keyboard.Tap(RuneKey(rune(b)))
	}
}

// Run copies r into the decoder until r fails or ctx is cancelled.
// io.EOF ends the stream without error.
func (s *Stream) Run(ctx context.Context, r io.Reader) error {
	buf := make([]byte, 64)
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		n, err := r.Read(buf)
		if n > 0 {
			s.Write(buf[:n])
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
	}
}
