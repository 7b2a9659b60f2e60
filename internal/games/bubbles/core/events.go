package core

// EventKind identifies what happened during a shot.
type EventKind uint8

const (
	EventShot EventKind = iota
	EventMiss
	EventPopping
	EventFalling
	EventRemoved
	EventBonusShots
	EventBoardCleared
	EventAdvance
	EventGameOver
)

// String returns the event name.
func (k EventKind) String() string {
	switch k {
	case EventShot:
		return "shot"
	case EventMiss:
		return "miss"
	case EventPopping:
		return "popping"
	case EventFalling:
		return "falling"
	case EventRemoved:
		return "removed"
	case EventBonusShots:
		return "bonus_shots"
	case EventBoardCleared:
		return "board_cleared"
	case EventAdvance:
		return "advance"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Event is queued by the session for presentation and metrics.
// Bubbles is set for popping, falling and removed events; Count carries
// the number of bubbles, shots or dropped bubbles depending on Kind.
type Event struct {
	Kind    EventKind
	Coord   Coord
	Bubbles []Bubble
	Count   int
	Score   int
}

func bubbleValues(bs []*Bubble) []Bubble {
	out := make([]Bubble, len(bs))
	for i, b := range bs {
		out[i] = *b
	}
	return out
}
