package core

// Phase is the shot pipeline state.
type Phase uint8

const (
	PhaseAiming Phase = iota
	PhaseResolving
	PhaseAdvancing
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseAiming:
		return "aiming"
	case PhaseResolving:
		return "resolving"
	case PhaseAdvancing:
		return "advancing"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	Rows        int
	Cols        int
	GameOverRow int
	Bubbles     []Bubble // row-major

	Current Color
	Next    Color

	Score             int
	ShotsRemaining    int
	ShotsUntilAdvance int
	ShotsFired        int
	GameOver          bool
	Advancing         bool
	Phase             Phase

	Level     int
	LevelName string
	Player    string
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	bubbles := s.board.Bubbles()
	snap := Snapshot{
		Rows:              s.rules.Rows,
		Cols:              s.rules.Cols,
		GameOverRow:       s.rules.GameOverRow,
		Bubbles:           bubbleValues(bubbles),
		Score:             s.score,
		ShotsRemaining:    max(s.shots, 0),
		ShotsUntilAdvance: max(s.untilAdvance, 0),
		ShotsFired:        s.shotsFired,
		GameOver:          s.gameOver,
		Advancing:         s.phase == PhaseAdvancing,
		Phase:             s.phase,
		Level:             s.level,
		LevelName:         s.layout().Name,
		Player:            s.player,
	}
	if s.current != nil {
		snap.Current = s.current.Color
	}
	if s.next != nil {
		snap.Next = s.next.Color
	}
	return snap
}

// Cell returns the bubble at c in the snapshot, if any.
func (s Snapshot) Cell(c Coord) (Bubble, bool) {
	for _, b := range s.Bubbles {
		if b.Row == c.Row && b.Col == c.Col {
			return b, true
		}
	}
	return Bubble{}, false
}
