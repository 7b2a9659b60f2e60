package core

import (
	"fmt"
	"strings"
)

// Board is the fixed-size hex board. Cells are stored in row-major order:
// index = row*Cols + col. A nil cell is empty.
type Board struct {
	Rows  int
	Cols  int
	cells []*Bubble
}

// NewBoard creates an empty board.
func NewBoard(rows, cols int) *Board {
	return &Board{
		Rows:  rows,
		Cols:  cols,
		cells: make([]*Bubble, rows*cols),
	}
}

func (b *Board) index(row, col int) int {
	return row*b.Cols + col
}

// InBounds returns true if (row, col) is inside the board.
func (b *Board) InBounds(row, col int) bool {
	return row >= 0 && row < b.Rows && col >= 0 && col < b.Cols
}

// Get returns the bubble at c, or nil if the cell is empty or out of bounds.
func (b *Board) Get(c Coord) *Bubble {
	if !b.InBounds(c.Row, c.Col) {
		return nil
	}
	return b.cells[b.index(c.Row, c.Col)]
}

// Occupied reports whether c holds a bubble.
func (b *Board) Occupied(c Coord) bool {
	return b.Get(c) != nil
}

// Place stores bubble at its own (Row, Col).
// The board is left untouched when the cell is out of bounds or taken.
func (b *Board) Place(bubble *Bubble) error {
	if !b.InBounds(bubble.Row, bubble.Col) {
		return fmt.Errorf("%w: %v out of bounds", ErrInvalidPlacement, bubble.Coord())
	}
	i := b.index(bubble.Row, bubble.Col)
	if b.cells[i] != nil {
		return fmt.Errorf("%w: %v occupied", ErrInvalidPlacement, bubble.Coord())
	}
	b.cells[i] = bubble
	return nil
}

// Remove empties c and returns what was there.
func (b *Board) Remove(c Coord) *Bubble {
	if !b.InBounds(c.Row, c.Col) {
		return nil
	}
	i := b.index(c.Row, c.Col)
	prev := b.cells[i]
	b.cells[i] = nil
	return prev
}

// Clear empties every cell.
func (b *Board) Clear() {
	for i := range b.cells {
		b.cells[i] = nil
	}
}

// Neighbors returns the in-bounds hex neighbours of c.
func (b *Board) Neighbors(c Coord) []Coord {
	return Neighbors(c, b.Rows, b.Cols)
}

// OccupiedNeighbors returns the bubbles adjacent to c.
func (b *Board) OccupiedNeighbors(c Coord) []*Bubble {
	var out []*Bubble
	for _, n := range b.Neighbors(c) {
		if bubble := b.Get(n); bubble != nil {
			out = append(out, bubble)
		}
	}
	return out
}

// EmptyNeighbors returns the empty cells adjacent to c.
func (b *Board) EmptyNeighbors(c Coord) []Coord {
	var out []Coord
	for _, n := range b.Neighbors(c) {
		if b.Get(n) == nil {
			out = append(out, n)
		}
	}
	return out
}

// Count returns the number of bubbles on the board.
func (b *Board) Count() int {
	n := 0
	for _, cell := range b.cells {
		if cell != nil {
			n++
		}
	}
	return n
}

// IsEmpty returns true if no bubble is left.
func (b *Board) IsEmpty() bool {
	for _, cell := range b.cells {
		if cell != nil {
			return false
		}
	}
	return true
}

// Bubbles returns all bubbles ordered by row then column.
func (b *Board) Bubbles() []*Bubble {
	out := make([]*Bubble, 0, len(b.cells))
	for _, cell := range b.cells {
		if cell != nil {
			out = append(out, cell)
		}
	}
	return out
}

// ColorsPresent returns the distinct colors on the board in palette order.
func (b *Board) ColorsPresent() []Color {
	var seen [ColorCount]bool
	for _, cell := range b.cells {
		if cell != nil && cell.Color.Valid() {
			seen[cell.Color] = true
		}
	}
	out := make([]Color, 0, ColorCount)
	for c := Color(0); c < ColorCount; c++ {
		if seen[c] {
			out = append(out, c)
		}
	}
	return out
}

// HasColor reports whether any bubble of color c is on the board.
func (b *Board) HasColor(c Color) bool {
	for _, cell := range b.cells {
		if cell != nil && cell.Color == c {
			return true
		}
	}
	return false
}

// AnyAtOrBelow reports whether any bubble sits on row or further down.
func (b *Board) AnyAtOrBelow(row int) bool {
	if row < 0 {
		row = 0
	}
	for i := row * b.Cols; i < len(b.cells); i++ {
		if b.cells[i] != nil {
			return true
		}
	}
	return false
}

// ShiftDown moves every bubble one row down. Bubbles on the last row are
// dropped and returned. Row 0 is left empty.
func (b *Board) ShiftDown() []*Bubble {
	var dropped []*Bubble
	last := (b.Rows - 1) * b.Cols
	for i := last; i < len(b.cells); i++ {
		if b.cells[i] != nil {
			dropped = append(dropped, b.cells[i])
		}
	}
	copy(b.cells[b.Cols:], b.cells[:last])
	for i := 0; i < b.Cols; i++ {
		b.cells[i] = nil
	}
	for i, cell := range b.cells {
		if cell != nil {
			cell.Row = i / b.Cols
			cell.Col = i % b.Cols
		}
	}
	return dropped
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	c := NewBoard(b.Rows, b.Cols)
	for i, cell := range b.cells {
		if cell != nil {
			c.cells[i] = cell.Clone()
		}
	}
	return c
}

// String renders the board as text, one line per row. Odd rows are
// indented by one space; empty cells are '.'.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.Rows; r++ {
		if r%2 != 0 {
			sb.WriteByte(' ')
		}
		for c := 0; c < b.Cols; c++ {
			if c > 0 {
				sb.WriteByte(' ')
			}
			cell := b.cells[b.index(r, c)]
			switch {
			case cell == nil:
				sb.WriteByte('.')
			case cell.Kind == KindLocked:
				sb.WriteRune(cell.Color.Char() + ('a' - 'A'))
			default:
				sb.WriteRune(cell.Color.Char())
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
