package core

import "fmt"

// LayoutCell is one pre-placed bubble of a layout.
type LayoutCell struct {
	Coord
	Color Color
	Kind  Kind
}

// Layout is a starting arrangement of bubbles.
type Layout struct {
	ID    string
	Name  string
	Cells []LayoutCell
}

// LayoutFromRows builds a layout from text rows, one character per column.
// '-', '.' and ' ' are empty; color letters are normal bubbles and their
// lowercase forms are locked bubbles.
func LayoutFromRows(id, name string, rows []string) (Layout, error) {
	l := Layout{ID: id, Name: name}
	for r, line := range rows {
		for c, ch := range []rune(line) {
			switch ch {
			case '-', '.', ' ':
				continue
			}
			kind := KindNormal
			if ch >= 'a' && ch <= 'z' {
				kind = KindLocked
			}
			color, ok := ParseColor(string(ch))
			if !ok {
				return Layout{}, fmt.Errorf("layout %s: unknown color %q at %v", id, ch, At(r, c))
			}
			l.Cells = append(l.Cells, LayoutCell{Coord: At(r, c), Color: color, Kind: kind})
		}
	}
	return l, nil
}

// Fits reports whether every cell lies inside a rows x cols board.
func (l Layout) Fits(rows, cols int) error {
	for _, cell := range l.Cells {
		if cell.Row < 0 || cell.Row >= rows || cell.Col < 0 || cell.Col >= cols {
			return fmt.Errorf("layout %s: cell %v outside %dx%d board", l.ID, cell.Coord, rows, cols)
		}
	}
	return nil
}

// UsesPalette reports an error for the first cell whose color is not in
// palette.
func (l Layout) UsesPalette(palette []Color) error {
	var allowed [ColorCount]bool
	for _, c := range palette {
		if c.Valid() {
			allowed[c] = true
		}
	}
	for _, cell := range l.Cells {
		if !cell.Color.Valid() || !allowed[cell.Color] {
			return fmt.Errorf("layout %s: color %v at %v not in palette", l.ID, cell.Color, cell.Coord)
		}
	}
	return nil
}

// Apply clears b and fills it with fresh bubbles from the layout.
func (l Layout) Apply(b *Board, f *Factory) {
	b.Clear()
	for _, cell := range l.Cells {
		if !b.InBounds(cell.Row, cell.Col) {
			continue
		}
		// Duplicate cells keep the first entry.
		_ = b.Place(f.NewBubble(cell.Row, cell.Col, cell.Color, cell.Kind))
	}
}

// DefaultLayout returns the built-in starting layout.
func DefaultLayout() Layout {
	l, err := LayoutFromRows("classic", "Classic", []string{
		"-RR-BB--YY-GG-",
		"R-RB-BY-Y-G-GR",
		"-GG-PP--OO-BB-",
		"G-GP-PO-O-B-BG",
		"-YY-RR--GG-PP-",
	})
	if err != nil {
		panic(err)
	}
	return l
}
