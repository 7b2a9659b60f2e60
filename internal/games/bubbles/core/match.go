package core

// FindMatches returns the connected group of normal bubbles sharing the
// color of the bubble at placed, placed bubble first. Locked bubbles stop
// the search. Callers compare the length against Rules.MinMatch.
func FindMatches(b *Board, placed Coord) []*Bubble {
	start := b.Get(placed)
	if start == nil || !start.Matchable() {
		return nil
	}

	visited := make([]bool, b.Rows*b.Cols)
	visited[b.index(placed.Row, placed.Col)] = true

	group := []*Bubble{start}
	stack := []Coord{placed}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		for _, n := range b.Neighbors(cur) {
			i := b.index(n.Row, n.Col)
			if visited[i] {
				continue
			}
			nb := b.cells[i]
			if nb == nil || nb.Color != start.Color {
				continue
			}
			visited[i] = true
			if !nb.Matchable() {
				continue
			}
			group = append(group, nb)
			stack = append(stack, n)
		}
	}
	return group
}
