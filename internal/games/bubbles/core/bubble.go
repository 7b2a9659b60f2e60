package core

// Kind distinguishes bubbles that take part in color matching.
type Kind uint8

const (
	KindNormal Kind = iota
	// KindLocked never matches but still falls when cut off from the ceiling.
	KindLocked
)

// String returns the kind name.
func (k Kind) String() string {
	if k == KindLocked {
		return "locked"
	}
	return "normal"
}

// Status is the transient per-bubble state shown while a removal settles.
type Status uint8

const (
	StatusNone Status = iota
	StatusPopping
	StatusFalling
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case StatusPopping:
		return "popping"
	case StatusFalling:
		return "falling"
	default:
		return "none"
	}
}

// Bubble is a single bubble on the board or in flight.
type Bubble struct {
	ID     uint64
	Color  Color
	Kind   Kind
	Row    int
	Col    int
	Status Status
}

// Coord returns the bubble position.
func (b *Bubble) Coord() Coord {
	return Coord{Row: b.Row, Col: b.Col}
}

// Matchable reports whether the bubble can join a color match.
func (b *Bubble) Matchable() bool {
	return b.Kind == KindNormal
}

// Clone returns a copy of the bubble.
func (b *Bubble) Clone() *Bubble {
	c := *b
	return &c
}
