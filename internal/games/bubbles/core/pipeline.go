package core

import "fmt"

type stage uint8

const (
	stagePop     stage = iota // matched bubbles marked popping
	stageFall                 // floating bubbles marked falling
	stageSettled              // removals committed, win and advance pending
	stageAdvance              // board shift in flight
	stageDone
)

// shot tracks one shot through its resolution stages.
type shot struct {
	stage  stage
	ticks  int
	placed *Bubble // nil on a miss
	popped []*Bubble
	fallen []*Bubble
	didPop bool
}

// ShotResult describes the synchronous part of a shot.
// Popped is known immediately; Fallen is only final when Pending is false.
type ShotResult struct {
	Target  Coord
	Placed  bool
	Popped  int
	Fallen  int
	Pending bool
}

// Shoot fires the current projectile into target. color must equal the
// current projectile color. An out-of-bounds or occupied target is a miss:
// it costs a shot and counts toward the advance countdown.
func (s *Session) Shoot(target Coord, color Color) (ShotResult, error) {
	if s.gameOver {
		return ShotResult{}, ErrGameOver
	}
	if s.pending != nil || s.phase != PhaseAiming {
		return ShotResult{}, ErrBusy
	}
	if s.current == nil {
		return ShotResult{}, fmt.Errorf("session: no projectile loaded: %w", ErrEmptyPalette)
	}
	if color != s.current.Color {
		return ShotResult{}, fmt.Errorf("%w: got %s, want %s", ErrColorMismatch, color, s.current.Color)
	}

	s.shots--
	s.shotsFired++
	s.emit(Event{Kind: EventShot, Coord: target, Score: s.score})

	res := ShotResult{Target: target}
	p := &shot{stage: stageSettled}
	s.pending = p
	s.phase = PhaseResolving

	b := s.current
	b.Row, b.Col = target.Row, target.Col
	b.Status = StatusNone
	if err := s.board.Place(b); err != nil {
		s.emit(Event{Kind: EventMiss, Coord: target})
	} else {
		res.Placed = true
		p.placed = b
		if group := FindMatches(s.board, target); len(group) >= s.rules.MinMatch {
			for _, m := range group {
				m.Status = StatusPopping
			}
			p.didPop = true
			p.popped = group
			p.stage = stagePop
			p.ticks = s.rules.SettleTicks
			s.addScore(len(group) * s.rules.PopScore)
			s.emit(Event{Kind: EventPopping, Coord: target, Bubbles: bubbleValues(group), Count: len(group), Score: s.score})
			res.Popped = len(group)
		}
	}
	s.current = nil

	s.run()

	res.Fallen = len(p.fallen)
	res.Pending = s.pending != nil
	return res, nil
}

// Tick advances the settle timer of the shot in flight by one tick and
// commits every stage that is due.
func (s *Session) Tick() {
	if s.pending == nil {
		return
	}
	if s.pending.ticks > 0 {
		s.pending.ticks--
	}
	s.run()
}

// ResolveAll commits every pending stage without waiting.
func (s *Session) ResolveAll() {
	for s.pending != nil {
		s.pending.ticks = 0
		s.step()
	}
}

func (s *Session) run() {
	for s.pending != nil && s.pending.ticks <= 0 {
		s.step()
	}
}

// step commits the current stage and moves the shot to the next one.
func (s *Session) step() {
	p := s.pending
	switch p.stage {
	case stagePop:
		s.removeAll(p.popped)
		floating := FindFloating(s.board)
		if len(floating) == 0 {
			p.stage = stageSettled
			return
		}
		for _, f := range floating {
			f.Status = StatusFalling
		}
		p.fallen = floating
		s.addScore(len(floating) * s.rules.FallScore)
		s.emit(Event{Kind: EventFalling, Bubbles: bubbleValues(floating), Count: len(floating), Score: s.score})
		p.stage = stageFall
		p.ticks = s.rules.SettleTicks

	case stageFall:
		s.removeAll(p.fallen)
		p.stage = stageSettled

	case stageSettled:
		s.settle(p)

	case stageAdvance:
		s.advanceBoard()
		p.stage = stageDone

	case stageDone:
		s.finishShot(p)
	}
}

func (s *Session) removeAll(bs []*Bubble) {
	for _, b := range bs {
		if s.board.Get(b.Coord()) == b {
			s.board.Remove(b.Coord())
		}
	}
	s.emit(Event{Kind: EventRemoved, Bubbles: bubbleValues(bs), Count: len(bs), Score: s.score})
}

// settle runs the win check, the placed-row check and the advance countdown.
func (s *Session) settle(p *shot) {
	p.stage = stageDone

	if s.board.IsEmpty() {
		s.addScore(s.rules.ClearBonus)
		s.level++
		s.layout().Apply(s.board, s.factory)
		s.emit(Event{Kind: EventBoardCleared, Count: s.level, Score: s.score})
	}

	if p.didPop {
		return
	}

	if p.placed != nil && s.board.Get(p.placed.Coord()) == p.placed && p.placed.Row >= s.rules.GameOverRow {
		s.endGame()
		return
	}

	s.untilAdvance--
	if s.untilAdvance > 0 {
		return
	}
	s.untilAdvance = s.rules.ShotsBeforeAdvance
	s.phase = PhaseAdvancing
	p.stage = stageAdvance
	p.ticks = s.rules.AdvanceTicks
}

// advanceBoard shifts the board down one row and seeds a new top row.
func (s *Session) advanceBoard() {
	dropped := s.board.ShiftDown()
	for col := 0; col < s.board.Cols; col++ {
		if s.rng.Float64() >= s.rules.NewRowChance {
			continue
		}
		color, err := s.factory.PickColor(s.board)
		if err != nil {
			s.fail(err)
			return
		}
		_ = s.board.Place(s.factory.NewBubble(0, col, color, KindNormal))
	}
	s.emit(Event{Kind: EventAdvance, Count: len(dropped), Score: s.score})

	if s.board.AnyAtOrBelow(s.rules.GameOverRow) {
		s.endGame()
	}
}

func (s *Session) finishShot(p *shot) {
	s.pending = nil
	if s.gameOver {
		return
	}
	if s.shots <= 0 {
		s.endGame()
		return
	}
	s.phase = PhaseAiming
	if err := s.loadProjectiles(); err != nil {
		s.fail(err)
	}
}

// endGame is terminal until Reset.
func (s *Session) endGame() {
	if s.gameOver {
		return
	}
	s.gameOver = true
	s.phase = PhaseGameOver
	s.emit(Event{Kind: EventGameOver, Score: s.score})
	if s.reporter != nil {
		s.reporter.ReportScore(s.player, s.score)
	}
}

func (s *Session) fail(err error) {
	s.err = err
	s.pending = nil
	s.endGame()
}
