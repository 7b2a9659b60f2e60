package core

// FindFloating returns every bubble with no path of occupied cells to
// row 0, ordered by row then column. Color and kind are ignored.
func FindFloating(b *Board) []*Bubble {
	anchored := make([]bool, b.Rows*b.Cols)

	queue := make([]Coord, 0, b.Cols)
	for col := 0; col < b.Cols; col++ {
		if b.cells[col] != nil {
			anchored[col] = true
			queue = append(queue, At(0, col))
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, n := range b.Neighbors(cur) {
			i := b.index(n.Row, n.Col)
			if anchored[i] || b.cells[i] == nil {
				continue
			}
			anchored[i] = true
			queue = append(queue, n)
		}
	}

	var floating []*Bubble
	for i, cell := range b.cells {
		if cell != nil && !anchored[i] {
			floating = append(floating, cell)
		}
	}
	return floating
}
