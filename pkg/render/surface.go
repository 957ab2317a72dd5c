// pkg/render/surface.go
package render

import (
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"
)

// Cell is one character of the terminal grid
type Cell struct {
	Rune  rune
	Color color.RGBA
}

var blank = Cell{Rune: ' ', Color: color.RGBA{255, 255, 255, 255}}

// Surface shows a full grid of cells
type Surface interface {
	Size() (width, height int)
	Show(cells [][]Cell) error
}

// maxChunkSize bounds single writes so SSH channels flow smoothly
const maxChunkSize = 4096

// ANSISurface writes frames as ANSI escape sequences with 24-bit colour
type ANSISurface struct {
	w io.Writer

	mu     sync.Mutex
	width  int
	height int
	buf    strings.Builder
	num    [20]byte
}

// NewANSISurface creates a surface of the given size writing to w
func NewANSISurface(w io.Writer, width, height int) *ANSISurface {
	return &ANSISurface{w: w, width: width, height: height}
}

// SetSize records a terminal resize
func (s *ANSISurface) SetSize(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width, s.height = width, height
}

// Size implements Surface
func (s *ANSISurface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

// Init clears the screen and hides the cursor
func (s *ANSISurface) Init() error {
	_, err := io.WriteString(s.w, "\033[?25l\033[H\033[2J")
	return err
}

// Close resets colours and shows the cursor again
func (s *ANSISurface) Close() error {
	_, err := io.WriteString(s.w, "\033[0m\033[?25h\r\n")
	return err
}

// Show implements Surface. Colour escapes are only emitted when the colour
// changes along a row.
func (s *ANSISurface) Show(cells [][]Cell) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.buf.Reset()
	for row, line := range cells {
		s.moveCursor(1, row+1)
		var current color.RGBA
		for col, c := range line {
			if col == 0 || c.Color != current {
				s.setColor(c.Color)
				current = c.Color
			}
			s.buf.WriteRune(c.Rune)
		}
	}
	s.buf.WriteString("\033[0m")

	data := s.buf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := io.WriteString(s.w, chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return nil
}

func (s *ANSISurface) moveCursor(col, row int) {
	s.buf.WriteString("\033[")
	s.buf.Write(strconv.AppendInt(s.num[:0], int64(row), 10))
	s.buf.WriteByte(';')
	s.buf.Write(strconv.AppendInt(s.num[:0], int64(col), 10))
	s.buf.WriteByte('H')
}

func (s *ANSISurface) setColor(c color.RGBA) {
	s.buf.WriteString("\033[38;2;")
	s.buf.Write(strconv.AppendInt(s.num[:0], int64(c.R), 10))
	s.buf.WriteByte(';')
	s.buf.Write(strconv.AppendInt(s.num[:0], int64(c.G), 10))
	s.buf.WriteByte(';')
	s.buf.Write(strconv.AppendInt(s.num[:0], int64(c.B), 10))
	s.buf.WriteByte('m')
}

// StdoutSize returns the size of the controlling terminal, or the fallback
// when stdout is not a terminal
func StdoutSize(fallbackWidth, fallbackHeight int) (int, int) {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 || h <= 0 {
		return fallbackWidth, fallbackHeight
	}
	return w, h
}

// TcellSurface draws onto a tcell screen
type TcellSurface struct {
	screen tcell.Screen
}

// NewTcellSurface wraps an initialised screen
func NewTcellSurface(screen tcell.Screen) *TcellSurface {
	return &TcellSurface{screen: screen}
}

// Size implements Surface
func (s *TcellSurface) Size() (int, int) {
	return s.screen.Size()
}

// Show implements Surface
func (s *TcellSurface) Show(cells [][]Cell) error {
	for y, line := range cells {
		for x, c := range line {
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(c.Color.R), int32(c.Color.G), int32(c.Color.B)))
			s.screen.SetContent(x, y, c.Rune, nil, style)
		}
	}
	s.screen.Show()
	return nil
}
