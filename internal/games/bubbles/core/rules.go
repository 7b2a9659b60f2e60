package core

import "fmt"

// Rules holds every tunable constant of a session.
type Rules struct {
	Rows        int
	Cols        int
	GameOverRow int

	InitialShots       int
	BonusShots         int
	BonusThreshold     int // score step that grants BonusShots
	ShotsBeforeAdvance int
	NewRowChance       float64

	MinMatch   int
	PopScore   int
	FallScore  int
	ClearBonus int

	// SettleTicks is how long popping/falling bubbles stay visible before
	// removal commits. Zero commits inside Shoot.
	SettleTicks  int
	AdvanceTicks int

	Palette []Color
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		Rows:               20,
		Cols:               14,
		GameOverRow:        14,
		InitialShots:       35,
		BonusShots:         10,
		BonusThreshold:     5000,
		ShotsBeforeAdvance: 6,
		NewRowChance:       0.6,
		MinMatch:           3,
		PopScore:           10,
		FallScore:          20,
		ClearBonus:         1000,
		SettleTicks:        18,
		AdvanceTicks:       12,
		Palette:            AllColors(),
	}
}

// Validate checks the rules for values the session cannot run with.
func (r Rules) Validate() error {
	switch {
	case r.Rows <= 0 || r.Cols <= 0:
		return fmt.Errorf("rules: board must be positive, got %dx%d", r.Rows, r.Cols)
	case r.GameOverRow <= 0 || r.GameOverRow >= r.Rows:
		return fmt.Errorf("rules: game over row %d outside board of %d rows", r.GameOverRow, r.Rows)
	case r.InitialShots <= 0:
		return fmt.Errorf("rules: initial shots must be positive, got %d", r.InitialShots)
	case r.ShotsBeforeAdvance <= 0:
		return fmt.Errorf("rules: shots before advance must be positive, got %d", r.ShotsBeforeAdvance)
	case r.NewRowChance < 0 || r.NewRowChance > 1:
		return fmt.Errorf("rules: new row chance %.2f outside [0,1]", r.NewRowChance)
	case r.MinMatch < 2:
		return fmt.Errorf("rules: min match must be at least 2, got %d", r.MinMatch)
	case r.SettleTicks < 0 || r.AdvanceTicks < 0:
		return fmt.Errorf("rules: negative settle ticks")
	case len(r.Palette) == 0:
		return fmt.Errorf("rules: %w", ErrEmptyPalette)
	}
	for _, c := range r.Palette {
		if !c.Valid() {
			return fmt.Errorf("rules: unknown palette color %d", c)
		}
	}
	return nil
}
