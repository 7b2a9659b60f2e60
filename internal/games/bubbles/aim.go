package bubbles

import "github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"

// Aim traces a bubble fired straight up the given column from below the
// board and returns the cell it sticks to: the first empty cell touching
// a bubble in the row above, or row 0. A full column yields a cell past
// the last row, which the engine treats as a miss.
func Aim(b *core.Board, col int) core.Coord {
	for r := b.Rows - 1; r >= 0; r-- {
		c := core.At(r, col)
		if b.Occupied(c) {
			return core.At(r+1, col)
		}
		if r == 0 {
			return c
		}
		for _, n := range b.OccupiedNeighbors(c) {
			if n.Row < r {
				return c
			}
		}
	}
	return core.At(0, col)
}

// Path returns the empty cells the shot passes through on its way to the
// landing cell, bottom first. Used to draw the aim guide.
func Path(b *core.Board, col int) []core.Coord {
	target := Aim(b, col)
	var path []core.Coord
	for r := b.Rows - 1; r > target.Row; r-- {
		c := core.At(r, col)
		if b.Occupied(c) {
			break
		}
		path = append(path, c)
	}
	return path
}
