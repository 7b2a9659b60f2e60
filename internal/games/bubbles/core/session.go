package core

import (
	"fmt"
	"math/rand"
)

// Reporter receives the final score when a game ends.
// Implementations must not block the caller.
type Reporter interface {
	ReportScore(player string, score int)
}

// Session owns the board and all counters of one game.
// It is not safe for concurrent use.
type Session struct {
	rules   Rules
	layouts []Layout
	rng     *rand.Rand
	factory *Factory

	board   *Board
	current *Bubble
	next    *Bubble

	level         int
	score         int
	shots         int
	untilAdvance  int
	nextMilestone int
	shotsFired    int
	gameOver      bool
	phase         Phase

	pending *shot
	events  []Event
	err     error

	player   string
	reporter Reporter
}

// NewSession creates a session and resets it to the first layout.
// With no layouts the built-in one is used.
func NewSession(rules Rules, layouts []Layout, rng *rand.Rand) (*Session, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, fmt.Errorf("session: nil random source")
	}
	if len(layouts) == 0 {
		layouts = []Layout{DefaultLayout()}
	}
	for _, l := range layouts {
		if err := l.Fits(rules.Rows, rules.Cols); err != nil {
			return nil, err
		}
		if err := l.UsesPalette(rules.Palette); err != nil {
			return nil, err
		}
	}

	s := &Session{
		rules:   rules,
		layouts: layouts,
		rng:     rng,
		factory: NewFactory(rng, rules.Palette),
		board:   NewBoard(rules.Rows, rules.Cols),
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// SetPlayer sets the name reported with the final score.
func (s *Session) SetPlayer(name string) {
	s.player = name
}

// Player returns the player name.
func (s *Session) Player() string {
	return s.player
}

// SetReporter installs the game-over score reporter.
func (s *Session) SetReporter(r Reporter) {
	s.reporter = r
}

// Reseed replaces the random source used for colors and new rows. Call
// Reset afterwards for a reproducible game. Bubble IDs are not reused.
func (s *Session) Reseed(rng *rand.Rand) error {
	if rng == nil {
		return fmt.Errorf("session: nil random source")
	}
	s.rng = rng
	s.factory.Reseed(rng)
	return nil
}

// Reset starts over from the first layout with a full shot budget.
func (s *Session) Reset() error {
	return s.ResetAt(0)
}

// ResetAt starts over from the given layout index.
func (s *Session) ResetAt(level int) error {
	if level < 0 {
		level = 0
	}
	s.level = level
	s.score = 0
	s.shots = s.rules.InitialShots
	s.untilAdvance = s.rules.ShotsBeforeAdvance
	s.nextMilestone = s.rules.BonusThreshold
	s.shotsFired = 0
	s.gameOver = false
	s.phase = PhaseAiming
	s.pending = nil
	s.events = nil
	s.err = nil

	s.layout().Apply(s.board, s.factory)

	s.current = nil
	s.next = nil
	if err := s.loadProjectiles(); err != nil {
		s.err = err
		return err
	}
	return nil
}

func (s *Session) layout() Layout {
	return s.layouts[s.level%len(s.layouts)]
}

// Rules returns the session rules.
func (s *Session) Rules() Rules { return s.rules }

// Board returns the live board. Callers must treat it as read-only.
func (s *Session) Board() *Board { return s.board }

func (s *Session) Score() int { return s.score }

func (s *Session) ShotsRemaining() int { return max(s.shots, 0) }

func (s *Session) ShotsUntilAdvance() int { return max(s.untilAdvance, 0) }

func (s *Session) Level() int { return s.level }

func (s *Session) Phase() Phase { return s.phase }

func (s *Session) IsGameOver() bool { return s.gameOver }

// IsAdvancing reports whether a board advance is in flight.
func (s *Session) IsAdvancing() bool { return s.phase == PhaseAdvancing }

// Busy reports whether a shot is still resolving.
func (s *Session) Busy() bool { return s.pending != nil }

// Err returns the invariant violation that stopped the session, if any.
func (s *Session) Err() error { return s.err }

// Current returns the color of the projectile about to be fired.
func (s *Session) Current() Color {
	if s.current == nil {
		return 0
	}
	return s.current.Color
}

// Next returns the color of the projectile after the current one.
func (s *Session) Next() Color {
	if s.next == nil {
		return 0
	}
	return s.next.Color
}

// DrainEvents returns the queued events and clears the queue.
func (s *Session) DrainEvents() []Event {
	ev := s.events
	s.events = nil
	return ev
}

func (s *Session) emit(e Event) {
	s.events = append(s.events, e)
}

// addScore adds points and grants bonus shots once per crossed milestone.
func (s *Session) addScore(points int) {
	if points <= 0 {
		return
	}
	s.score += points
	if s.rules.BonusThreshold <= 0 {
		return
	}
	for s.score >= s.nextMilestone {
		s.shots += s.rules.BonusShots
		s.nextMilestone += s.rules.BonusThreshold
		s.emit(Event{Kind: EventBonusShots, Count: s.rules.BonusShots, Score: s.score})
	}
}

// loadProjectiles makes next current and draws a new next, then recolors
// any projectile whose color left the board.
func (s *Session) loadProjectiles() error {
	if s.next != nil {
		s.current = s.next
		s.next = nil
	}
	if s.current == nil {
		b, err := s.newProjectile()
		if err != nil {
			return err
		}
		s.current = b
	}
	b, err := s.newProjectile()
	if err != nil {
		return err
	}
	s.next = b
	return s.refreshProjectiles()
}

func (s *Session) newProjectile() (*Bubble, error) {
	color, err := s.factory.PickColor(s.board)
	if err != nil {
		return nil, fmt.Errorf("session: draw projectile: %w", err)
	}
	return s.factory.NewBubble(-1, -1, color, KindNormal), nil
}

func (s *Session) refreshProjectiles() error {
	if s.board.IsEmpty() {
		return nil
	}
	for _, b := range []*Bubble{s.current, s.next} {
		if b == nil || s.board.HasColor(b.Color) {
			continue
		}
		color, err := s.factory.PickColor(s.board)
		if err != nil {
			return fmt.Errorf("session: recolor projectile: %w", err)
		}
		b.Color = color
	}
	return nil
}
