// Package bubbles provides the terminal front end of the bubble shooter:
// aiming, input handling and rendering around the board engine in core.
package bubbles

import (
	"errors"
	"math/rand"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

// Options configures a Game.
type Options struct {
	Rules      core.Rules
	Layouts    []core.Layout
	StartLevel int
	Player     string

	// Reporter receives the final score of every finished game.
	Reporter core.Reporter
	// OnEvents is called with the events of each tick that produced any.
	OnEvents func([]core.Event)
	// Logger receives engine errors. Nil discards them.
	Logger *log.Logger
}

// GameReporter is a Reporter that also stores the level reached.
type GameReporter interface {
	ReportGame(player string, score, level int)
}

// sessionReporter adds the session level for reporters that want it.
type sessionReporter struct {
	s    *core.Session
	next core.Reporter
}

func (r sessionReporter) ReportScore(player string, score int) {
	if gr, ok := r.next.(GameReporter); ok {
		gr.ReportGame(player, score, r.s.Level())
		return
	}
	r.next.ReportScore(player, score)
}

// Game implements the bubble shooter for the terminal platform.
type Game struct {
	opts    Options
	rng     *rand.Rand
	session *core.Session

	screenW int
	screenH int

	tick     uint64
	aimCol   int
	paused   bool
	tooSmall bool

	missFlash  int // ticks left to show the miss marker
	missAt     core.Coord
	lastBonus  int // ticks left to show the bonus banner
	clearFlash int
	err        error
	loggedErr  error
}

// New validates the options and creates a game. Call Reset before use.
func New(opts Options) (*Game, error) {
	if opts.StartLevel < 0 {
		opts.StartLevel = 0
	}
	// Fail early on bad rules or layouts.
	if _, err := core.NewSession(opts.Rules, opts.Layouts, rand.New(rand.NewSource(1))); err != nil {
		return nil, err
	}
	return &Game{opts: opts}, nil
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "bubbles"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Bubble Shooter"
}

// Reset starts a new game with a fresh random source.
func (g *Game) Reset(cfg platformcore.RuntimeConfig) {
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.tick = 0
	g.paused = false
	g.missFlash = 0
	g.lastBonus = 0
	g.clearFlash = 0
	g.err = nil

	// The session is kept across restarts so bubble IDs stay unique.
	s := g.session
	if s == nil {
		var err error
		s, err = core.NewSession(g.opts.Rules, g.opts.Layouts, g.rng)
		if err != nil {
			g.err = err
			g.logErr()
			return
		}
		if g.opts.StartLevel > 0 {
			if err := s.ResetAt(g.opts.StartLevel); err != nil {
				g.err = err
			}
		}
	} else {
		if err := s.Reseed(g.rng); err != nil {
			g.err = err
		} else if err := s.ResetAt(g.opts.StartLevel); err != nil {
			g.err = err
		}
	}
	s.SetPlayer(g.opts.Player)
	if g.opts.Reporter != nil {
		s.SetReporter(sessionReporter{s: s, next: g.opts.Reporter})
	}
	g.session = s
	g.aimCol = g.opts.Rules.Cols / 2
	g.logErr()

	g.Resize(cfg.ScreenW, cfg.ScreenH)
}

// Resize updates the screen dimensions without touching the game.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	minW, minH := g.minSize()
	g.tooSmall = w < minW || h < minH
}

// SetPlayer changes the name reported with the final score.
func (g *Game) SetPlayer(name string) {
	g.opts.Player = name
	if g.session != nil {
		g.session.SetPlayer(name)
	}
}

// Session exposes the engine for tests and tooling.
func (g *Game) Session() *core.Session {
	return g.session
}

// AimColumn returns the column the launcher points at.
func (g *Game) AimColumn() int {
	return g.aimCol
}

// Err returns the last engine error, if any.
func (g *Game) Err() error {
	if g.err != nil {
		return g.err
	}
	if g.session != nil {
		return g.session.Err()
	}
	return nil
}

// Step advances the game by one tick.
func (g *Game) Step(in platformcore.InputFrame) platformcore.StepResult {
	g.tick++

	if g.session == nil {
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionRestart) && g.session.IsGameOver() {
		g.Reset(platformcore.RuntimeConfig{
			Seed:    g.rng.Int63(),
			ScreenW: g.screenW,
			ScreenH: g.screenH,
		})
		return platformcore.StepResult{State: g.State()}
	}

	if in.Has(platformcore.ActionPause) && !g.session.IsGameOver() {
		g.paused = !g.paused
	}
	if g.paused || g.tooSmall || g.session.IsGameOver() {
		return platformcore.StepResult{State: g.State()}
	}

	g.session.Tick()
	g.decayFlashes()

	cols := g.opts.Rules.Cols
	if in.Has(platformcore.ActionLeft) {
		g.aimCol = platformcore.Clamp(g.aimCol-1, 0, cols-1)
	}
	if in.Has(platformcore.ActionRight) {
		g.aimCol = platformcore.Clamp(g.aimCol+1, 0, cols-1)
	}

	if in.Has(platformcore.ActionFire) && !g.session.Busy() {
		target := Aim(g.session.Board(), g.aimCol)
		if _, err := g.session.Shoot(target, g.session.Current()); err != nil && !errors.Is(err, core.ErrBusy) {
			g.err = err
		}
	}

	g.consumeEvents()
	g.logErr()
	return platformcore.StepResult{State: g.State()}
}

// logErr logs the current engine error once.
func (g *Game) logErr() {
	err := g.Err()
	if err == nil || err == g.loggedErr {
		return
	}
	g.loggedErr = err
	if g.opts.Logger != nil {
		g.opts.Logger.Error("game engine error", "player", g.opts.Player, "error", err)
	}
}

func (g *Game) decayFlashes() {
	if g.missFlash > 0 {
		g.missFlash--
	}
	if g.lastBonus > 0 {
		g.lastBonus--
	}
	if g.clearFlash > 0 {
		g.clearFlash--
	}
}

func (g *Game) consumeEvents() {
	events := g.session.DrainEvents()
	if len(events) == 0 {
		return
	}
	flash := g.opts.Rules.SettleTicks*2 + 10
	for _, e := range events {
		switch e.Kind {
		case core.EventMiss:
			g.missFlash = flash
			g.missAt = e.Coord
		case core.EventBonusShots:
			g.lastBonus = flash * 3
		case core.EventBoardCleared:
			g.clearFlash = flash * 3
		}
	}
	if g.opts.OnEvents != nil {
		g.opts.OnEvents(events)
	}
}

// State returns the current game state.
func (g *Game) State() platformcore.GameState {
	if g.session == nil {
		return platformcore.GameState{GameOver: true}
	}
	return platformcore.GameState{
		Score:    g.session.Score(),
		Level:    g.session.Level(),
		GameOver: g.session.IsGameOver(),
		Paused:   g.paused || g.tooSmall,
	}
}
