package core

import "fmt"

// Coord addresses a cell on the offset hex board.
// Row grows downward from the ceiling (row 0). Odd rows are shifted
// right by half a bubble.
type Coord struct {
	Row int
	Col int
}

// At is a convenience constructor for Coord.
func At(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// IsOddRow reports whether the coordinate sits on a shifted row.
func (c Coord) IsOddRow() bool {
	return c.Row%2 != 0
}

// offsets returns the six neighbour deltas for a row of the given parity.
func offsets(odd bool) [6][2]int {
	d := 0
	if odd {
		d = 1
	}
	return [6][2]int{
		{0, -1},
		{0, 1},
		{-1, d},
		{-1, d - 1},
		{1, d},
		{1, d - 1},
	}
}

// Neighbors returns the in-bounds hex neighbours of c on a rows x cols board.
// Same-row left/right first, then the row above, then the row below.
func Neighbors(c Coord, rows, cols int) []Coord {
	out := make([]Coord, 0, 6)
	for _, o := range offsets(c.IsOddRow()) {
		n := Coord{Row: c.Row + o[0], Col: c.Col + o[1]}
		if n.Row < 0 || n.Row >= rows || n.Col < 0 || n.Col >= cols {
			continue
		}
		out = append(out, n)
	}
	return out
}
