package core

import "strings"

// Cell is a single character on the screen with its color role.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is a fixed-size character buffer the board is drawn into each frame.
// Cells are stored row-major. Writes outside the buffer are dropped, so
// callers can draw without clipping themselves.
type Screen struct {
	width  int
	height int
	cells  []Cell
}

// NewScreen creates a blank screen. Negative sizes are treated as zero.
func NewScreen(width, height int) *Screen {
	s := &Screen{}
	s.Resize(width, height)
	return s
}

// Width returns the screen width in characters.
func (s *Screen) Width() int { return s.width }

// Height returns the screen height in characters.
func (s *Screen) Height() int { return s.height }

// Resize reallocates the buffer and blanks it. Frames are redrawn from a
// snapshot every time, so nothing is carried over.
func (s *Screen) Resize(width, height int) {
	s.width, s.height = max(width, 0), max(height, 0)
	if n := s.width * s.height; cap(s.cells) >= n {
		s.cells = s.cells[:n]
	} else {
		s.cells = make([]Cell, n)
	}
	s.Clear()
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for i := range s.cells {
		s.cells[i] = blank
	}
}

func (s *Screen) index(x, y int) (int, bool) {
	if x < 0 || x >= s.width || y < 0 || y >= s.height {
		return 0, false
	}
	return y*s.width + x, true
}

// Set writes r with color role c at (x, y).
func (s *Screen) Set(x, y int, r rune, c Color) {
	if i, ok := s.index(x, y); ok {
		s.cells[i] = Cell{Rune: r, Color: c}
	}
}

// Cell returns the cell at (x, y), or a blank cell outside the buffer.
func (s *Screen) Cell(x, y int) Cell {
	if i, ok := s.index(x, y); ok {
		return s.cells[i]
	}
	return blank
}

// Rune returns the character at (x, y).
func (s *Screen) Rune(x, y int) rune {
	return s.Cell(x, y).Rune
}

// Text writes text left to right starting at (x, y).
func (s *Screen) Text(x, y int, text string, c Color) {
	for _, r := range text {
		s.Set(x, y, r, c)
		x++
	}
}

// TextCentered writes text centered on row y.
func (s *Screen) TextCentered(y int, text string, c Color) {
	s.Text((s.width-len([]rune(text)))/2, y, text, c)
}

// Box outlines a w x h rectangle whose top-left corner is (x, y).
func (s *Screen) Box(x, y, w, h int, c Color) {
	right, bottom := x+w-1, y+h-1

	for i := x + 1; i < right; i++ {
		s.Set(i, y, '─', c)
		s.Set(i, bottom, '─', c)
	}
	for j := y + 1; j < bottom; j++ {
		s.Set(x, j, '│', c)
		s.Set(right, j, '│', c)
	}
	s.Set(x, y, '┌', c)
	s.Set(right, y, '┐', c)
	s.Set(x, bottom, '└', c)
	s.Set(right, bottom, '┘', c)
}

// Row returns row y as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return ""
	}
	var sb strings.Builder
	for _, c := range s.cells[y*s.width : (y+1)*s.width] {
		sb.WriteRune(c.Rune)
	}
	return sb.String()
}

// String returns the whole buffer as plain text, one line per row.
func (s *Screen) String() string {
	rows := make([]string, s.height)
	for y := range rows {
		rows[y] = s.Row(y)
	}
	return strings.Join(rows, "\n")
}
