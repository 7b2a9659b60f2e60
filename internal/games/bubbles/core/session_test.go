package core

import (
	"errors"
	"math/rand"
	"testing"
)

type recordingReporter struct {
	players []string
	scores  []int
}

func (r *recordingReporter) ReportScore(player string, score int) {
	r.players = append(r.players, player)
	r.scores = append(r.scores, score)
}

// newTestSession returns a 6x5 session that resolves shots synchronously.
func newTestSession(t *testing.T, tweak func(*Rules), rows ...string) *Session {
	t.Helper()
	rules := DefaultRules()
	rules.Rows = 6
	rules.Cols = 5
	rules.GameOverRow = 4
	rules.SettleTicks = 0
	rules.AdvanceTicks = 0
	if tweak != nil {
		tweak(&rules)
	}
	layout, err := LayoutFromRows("t", "Test", rows)
	if err != nil {
		t.Fatalf("LayoutFromRows() failed: %v", err)
	}
	s, err := NewSession(rules, []Layout{layout}, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

// load forces the current projectile color.
func load(s *Session, c Color) Color {
	s.current.Color = c
	return c
}

func TestNewSessionDefaults(t *testing.T) {
	s, err := NewSession(DefaultRules(), nil, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	if got, want := s.Board().Count(), len(DefaultLayout().Cells); got != want {
		t.Errorf("board has %d bubbles, want %d", got, want)
	}
	if s.ShotsRemaining() != 35 {
		t.Errorf("ShotsRemaining() = %d, want 35", s.ShotsRemaining())
	}
	if s.ShotsUntilAdvance() != 6 {
		t.Errorf("ShotsUntilAdvance() = %d, want 6", s.ShotsUntilAdvance())
	}
	if s.Phase() != PhaseAiming {
		t.Errorf("Phase() = %v, want aiming", s.Phase())
	}
	if !s.Board().HasColor(s.Current()) || !s.Board().HasColor(s.Next()) {
		t.Errorf("projectiles %v/%v not on board", s.Current(), s.Next())
	}
}

func TestNewSessionRejectsBadRules(t *testing.T) {
	rules := DefaultRules()
	rules.Palette = nil
	if _, err := NewSession(rules, nil, rand.New(rand.NewSource(1))); !errors.Is(err, ErrEmptyPalette) {
		t.Errorf("error = %v, want ErrEmptyPalette", err)
	}

	rules = DefaultRules()
	rules.Rows = 3
	if _, err := NewSession(rules, nil, rand.New(rand.NewSource(1))); err == nil {
		t.Error("expected error for layout taller than board")
	}
}

func TestNewSessionRejectsOffPaletteLayout(t *testing.T) {
	rules := DefaultRules()
	rules.Palette = []Color{ColorRed, ColorGreen}
	if _, err := NewSession(rules, nil, rand.New(rand.NewSource(1))); err == nil {
		t.Fatal("expected error for default layout with a two-color palette")
	}

	layout, err := LayoutFromRows("rg", "Red Green", []string{"RRG-G", "G-r--"})
	if err != nil {
		t.Fatalf("LayoutFromRows() failed: %v", err)
	}
	s, err := NewSession(rules, []Layout{layout}, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	for _, b := range s.Board().Bubbles() {
		if b.Color != ColorRed && b.Color != ColorGreen {
			t.Errorf("bubble %v has off-palette color %v", b.Coord(), b.Color)
		}
	}
	for _, c := range []Color{s.Current(), s.Next()} {
		if c != ColorRed && c != ColorGreen {
			t.Errorf("projectile color %v not in palette", c)
		}
	}
}

func TestShootPopsThree(t *testing.T) {
	s := newTestSession(t, nil, "RR-BB")

	res, err := s.Shoot(At(0, 2), load(s, ColorRed))
	if err != nil {
		t.Fatalf("Shoot() failed: %v", err)
	}
	if !res.Placed || res.Popped != 3 || res.Pending {
		t.Fatalf("result = %+v, want placed with 3 popped", res)
	}
	if s.Score() != 30 {
		t.Errorf("Score() = %d, want 30", s.Score())
	}
	for col := 0; col < 3; col++ {
		if s.Board().Occupied(At(0, col)) {
			t.Errorf("(0,%d) should be empty", col)
		}
	}
	if s.Board().Count() != 2 {
		t.Errorf("Count() = %d, want 2", s.Board().Count())
	}
	if s.ShotsRemaining() != 34 {
		t.Errorf("ShotsRemaining() = %d, want 34", s.ShotsRemaining())
	}
	if s.ShotsUntilAdvance() != 6 {
		t.Errorf("popping shot moved the countdown to %d", s.ShotsUntilAdvance())
	}
	if s.Current() != ColorBlue || s.Next() != ColorBlue {
		t.Errorf("projectiles = %v/%v, want blue/blue", s.Current(), s.Next())
	}
}

func TestShootPairStays(t *testing.T) {
	s := newTestSession(t, nil, "R-BB-")

	res, err := s.Shoot(At(0, 1), load(s, ColorRed))
	if err != nil {
		t.Fatalf("Shoot() failed: %v", err)
	}
	if res.Popped != 0 {
		t.Errorf("Popped = %d, want 0", res.Popped)
	}
	if s.Board().Count() != 4 || s.Score() != 0 {
		t.Errorf("count=%d score=%d, want 4 and 0", s.Board().Count(), s.Score())
	}
	if s.ShotsUntilAdvance() != 5 {
		t.Errorf("ShotsUntilAdvance() = %d, want 5", s.ShotsUntilAdvance())
	}
}

func TestSnapshotCopiesBoard(t *testing.T) {
	s := newTestSession(t, nil, "R-BB-")
	s.SetPlayer("ada")

	snap := s.Snapshot()
	if snap.Player != "ada" || snap.Phase != PhaseAiming || snap.ShotsRemaining != 35 {
		t.Errorf("snapshot = %+v", snap)
	}
	b, ok := snap.Cell(At(0, 2))
	if !ok || b.Color != ColorBlue {
		t.Fatalf("Cell(0,2) = %+v, %v; want blue", b, ok)
	}
	if _, ok := snap.Cell(At(0, 1)); ok {
		t.Error("Cell(0,1) should be empty")
	}

	s.Board().Remove(At(0, 2))
	if _, ok := snap.Cell(At(0, 2)); !ok {
		t.Error("board change leaked into an earlier snapshot")
	}
}

func TestMissCostsOneShot(t *testing.T) {
	s := newTestSession(t, nil, "RGB--")
	before := s.Board().String()

	for _, target := range []Coord{At(0, 0), At(-1, 2), At(0, 5), At(6, 0)} {
		shots := s.ShotsRemaining()
		res, err := s.Shoot(target, s.Current())
		if err != nil {
			t.Fatalf("Shoot(%v) failed: %v", target, err)
		}
		if res.Placed {
			t.Errorf("Shoot(%v) placed a bubble", target)
		}
		if got := s.ShotsRemaining(); got != shots-1 {
			t.Errorf("Shoot(%v): shots %d -> %d, want -1", target, shots, got)
		}
		if got := s.Board().String(); got != before {
			t.Errorf("Shoot(%v) changed the board:\n%s", target, got)
		}
	}
	if s.ShotsUntilAdvance() != 2 {
		t.Errorf("ShotsUntilAdvance() = %d, want 2", s.ShotsUntilAdvance())
	}
}

func TestLastShotMissEndsGame(t *testing.T) {
	s := newTestSession(t, nil, "RGB--")
	rep := &recordingReporter{}
	s.SetReporter(rep)
	s.SetPlayer("ada")
	s.shots = 1

	if _, err := s.Shoot(At(0, 0), s.Current()); err != nil {
		t.Fatalf("Shoot() failed: %v", err)
	}
	if s.ShotsRemaining() != 0 {
		t.Errorf("ShotsRemaining() = %d, want 0", s.ShotsRemaining())
	}
	if !s.IsGameOver() || s.Phase() != PhaseGameOver {
		t.Fatalf("expected game over, phase %v", s.Phase())
	}
	if len(rep.scores) != 1 || rep.players[0] != "ada" {
		t.Errorf("reports = %v/%v, want one for ada", rep.players, rep.scores)
	}

	if _, err := s.Shoot(At(1, 1), s.Current()); !errors.Is(err, ErrGameOver) {
		t.Errorf("Shoot() after game over error = %v, want ErrGameOver", err)
	}
	if len(rep.scores) != 1 {
		t.Errorf("game over reported %d times", len(rep.scores))
	}
}

func TestClearingBoardReseeds(t *testing.T) {
	s := newTestSession(t, nil,
		"RR---",
		"-B---",
	)
	start := s.Board().String()

	res, err := s.Shoot(At(0, 2), load(s, ColorRed))
	if err != nil {
		t.Fatalf("Shoot() failed: %v", err)
	}
	if res.Popped != 3 || res.Fallen != 1 {
		t.Fatalf("result = %+v, want 3 popped and 1 fallen", res)
	}
	if s.Score() != 30+20+1000 {
		t.Errorf("Score() = %d, want 1050", s.Score())
	}
	if s.IsGameOver() {
		t.Error("clearing the board must not end the game")
	}
	if got := s.Board().String(); got != start {
		t.Errorf("board not reset to starting layout:\n%s\nwant:\n%s", got, start)
	}
	if s.Level() != 1 {
		t.Errorf("Level() = %d, want 1", s.Level())
	}
	if s.ShotsRemaining() != 34 {
		t.Errorf("ShotsRemaining() = %d, want 34", s.ShotsRemaining())
	}

	var cleared bool
	for _, e := range s.DrainEvents() {
		if e.Kind == EventBoardCleared {
			cleared = true
		}
	}
	if !cleared {
		t.Error("missing board cleared event")
	}
}

func TestCountdownAdvancesBoard(t *testing.T) {
	s := newTestSession(t, func(r *Rules) { r.NewRowChance = 1 }, "RB-GY")
	s.untilAdvance = 1

	if _, err := s.Shoot(At(0, 2), load(s, ColorRed)); err != nil {
		t.Fatalf("Shoot() failed: %v", err)
	}
	if s.ShotsUntilAdvance() != 6 {
		t.Errorf("countdown = %d, want reset to 6", s.ShotsUntilAdvance())
	}
	for col := 0; col < 5; col++ {
		if !s.Board().Occupied(At(0, col)) {
			t.Errorf("new row missing bubble at col %d", col)
		}
		if !s.Board().Occupied(At(1, col)) {
			t.Errorf("shifted row missing bubble at col %d", col)
		}
	}
	if placed := s.Board().Get(At(1, 2)); placed == nil || placed.Color != ColorRed {
		t.Errorf("placed bubble not shifted to (1,2): %v", placed)
	}
	if s.IsGameOver() {
		t.Error("unexpected game over")
	}
}

func TestAdvanceIntoGameOverRow(t *testing.T) {
	s := newTestSession(t, func(r *Rules) { r.NewRowChance = 0 },
		"R-G--",
		"-----",
		"-----",
		"B----",
	)
	s.untilAdvance = 1

	if _, err := s.Shoot(At(0, 4), load(s, ColorGreen)); err != nil {
		t.Fatalf("Shoot() failed: %v", err)
	}
	if !s.IsGameOver() {
		t.Fatal("bubble pushed into the game over row must end the game")
	}
}

func TestPlacementInGameOverRow(t *testing.T) {
	s := newTestSession(t, nil, "RG---")

	if _, err := s.Shoot(At(4, 2), load(s, ColorRed)); err != nil {
		t.Fatalf("Shoot() failed: %v", err)
	}
	if !s.IsGameOver() {
		t.Error("non-matching bubble at the game over row must end the game")
	}
}

func TestPopInGameOverRowContinues(t *testing.T) {
	s := newTestSession(t, nil,
		"G----",
		"G----",
		"G----",
		"G----",
		"RR---",
	)

	res, err := s.Shoot(At(4, 2), load(s, ColorRed))
	if err != nil {
		t.Fatalf("Shoot() failed: %v", err)
	}
	if res.Popped != 3 {
		t.Fatalf("Popped = %d, want 3", res.Popped)
	}
	if s.IsGameOver() {
		t.Error("a popping shot must not trigger the game over row check")
	}
}

func TestBonusShotsOncePerMilestone(t *testing.T) {
	s := newTestSession(t, nil, "RRRR-")
	shots := s.shots

	s.addScore(4990)
	if s.shots != shots {
		t.Fatalf("bonus granted below threshold")
	}
	s.addScore(20)
	if s.shots != shots+10 {
		t.Fatalf("shots = %d, want %d after crossing 5000", s.shots, shots+10)
	}
	s.addScore(100)
	if s.shots != shots+10 {
		t.Errorf("bonus re-granted for the same milestone")
	}
	s.addScore(10000)
	if s.shots != shots+30 {
		t.Errorf("shots = %d, want %d after crossing 10000 and 15000", s.shots, shots+30)
	}
}

func TestColorMismatch(t *testing.T) {
	s := newTestSession(t, nil, "RG---")
	load(s, ColorRed)

	if _, err := s.Shoot(At(1, 1), ColorBlue); !errors.Is(err, ErrColorMismatch) {
		t.Fatalf("error = %v, want ErrColorMismatch", err)
	}
	if s.ShotsRemaining() != 35 {
		t.Errorf("rejected shot consumed a shot")
	}
}

func TestTwoPhaseRemoval(t *testing.T) {
	s := newTestSession(t, func(r *Rules) { r.SettleTicks = 2 },
		"RR--Y",
		"-B--Y",
		"-G---",
	)

	res, err := s.Shoot(At(0, 2), load(s, ColorRed))
	if err != nil {
		t.Fatalf("Shoot() failed: %v", err)
	}
	if !res.Pending || s.Phase() != PhaseResolving {
		t.Fatalf("expected resolving phase, got %v (pending=%v)", s.Phase(), res.Pending)
	}
	for col := 0; col < 3; col++ {
		b := s.Board().Get(At(0, col))
		if b == nil || b.Status != StatusPopping {
			t.Fatalf("(0,%d) should be popping, got %v", col, b)
		}
	}
	if _, err := s.Shoot(At(3, 3), s.Current()); !errors.Is(err, ErrBusy) {
		t.Errorf("Shoot() while resolving error = %v, want ErrBusy", err)
	}

	s.Tick()
	if s.Board().Get(At(0, 0)) == nil {
		t.Fatal("popping bubbles removed before the settle interval")
	}
	s.Tick()
	if s.Board().Get(At(0, 0)) != nil {
		t.Fatal("popping bubbles not removed after the settle interval")
	}
	if b := s.Board().Get(At(1, 1)); b == nil || b.Status != StatusFalling {
		t.Fatalf("(1,1) should be falling, got %v", b)
	}

	s.Tick()
	s.Tick()
	if s.Busy() {
		t.Fatal("shot still in flight after both settle intervals")
	}
	if s.Board().Count() != 2 {
		t.Errorf("Count() = %d, want 2", s.Board().Count())
	}
	if s.Score() != 30+2*20 {
		t.Errorf("Score() = %d, want 70", s.Score())
	}
	if s.Phase() != PhaseAiming {
		t.Errorf("Phase() = %v, want aiming", s.Phase())
	}
}

func TestAdvancePhaseBlocksShots(t *testing.T) {
	s := newTestSession(t, func(r *Rules) { r.AdvanceTicks = 3 }, "RB-GY")
	s.untilAdvance = 1

	if _, err := s.Shoot(At(0, 2), load(s, ColorRed)); err != nil {
		t.Fatalf("Shoot() failed: %v", err)
	}
	if !s.IsAdvancing() {
		t.Fatalf("Phase() = %v, want advancing", s.Phase())
	}
	if _, err := s.Shoot(At(2, 2), s.Current()); !errors.Is(err, ErrBusy) {
		t.Errorf("error = %v, want ErrBusy", err)
	}
	s.ResolveAll()
	if s.Phase() != PhaseAiming {
		t.Errorf("Phase() = %v after ResolveAll, want aiming", s.Phase())
	}
	if s.Board().Get(At(1, 0)) == nil {
		t.Error("board did not shift")
	}
}

func TestResetRestoresStart(t *testing.T) {
	s := newTestSession(t, nil, "RR-BB")
	start := s.Board().String()
	if _, err := s.Shoot(At(0, 2), load(s, ColorRed)); err != nil {
		t.Fatalf("Shoot() failed: %v", err)
	}
	s.shots = 1
	if _, err := s.Shoot(At(0, 0), s.Current()); err != nil {
		t.Fatalf("Shoot() failed: %v", err)
	}
	if !s.IsGameOver() {
		t.Fatal("expected game over")
	}

	if err := s.Reset(); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if s.IsGameOver() || s.Score() != 0 || s.ShotsRemaining() != 35 {
		t.Errorf("after reset: over=%v score=%d shots=%d", s.IsGameOver(), s.Score(), s.ShotsRemaining())
	}
	if got := s.Board().String(); got != start {
		t.Errorf("board after reset:\n%s\nwant:\n%s", got, start)
	}
}

// TestRandomPlayInvariants fires at random cells and checks the properties
// that must hold after every resolved shot.
func TestRandomPlayInvariants(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rules := DefaultRules()
		rules.SettleTicks = 0
		rules.AdvanceTicks = 0
		s, err := NewSession(rules, nil, rand.New(rand.NewSource(seed)))
		if err != nil {
			t.Fatalf("NewSession() failed: %v", err)
		}
		aim := rand.New(rand.NewSource(seed * 31))

		lastScore := 0
		for i := 0; i < 300 && !s.IsGameOver(); i++ {
			before := s.ShotsRemaining()
			target := At(aim.Intn(rules.GameOverRow), aim.Intn(rules.Cols))
			res, err := s.Shoot(target, s.Current())
			if err != nil {
				t.Fatalf("seed %d shot %d: Shoot() failed: %v", seed, i, err)
			}
			if res.Pending {
				t.Fatalf("seed %d: shot pending with zero settle ticks", seed)
			}
			if s.Score() < lastScore {
				t.Fatalf("seed %d: score dropped %d -> %d", seed, lastScore, s.Score())
			}
			if res.Popped > 0 {
				if f := FindFloating(s.Board()); len(f) > 0 {
					t.Fatalf("seed %d: %d floating bubbles survived a pop", seed, len(f))
				}
			}
			if !res.Placed && s.ShotsRemaining() != max(before-1, 0) {
				t.Fatalf("seed %d: miss changed shots %d -> %d", seed, before, s.ShotsRemaining())
			}
			for _, b := range s.Board().Bubbles() {
				if b.Status != StatusNone {
					t.Fatalf("seed %d: bubble %v left in status %v", seed, b.Coord(), b.Status)
				}
			}
			if !s.IsGameOver() && !s.Board().IsEmpty() {
				if !s.Board().HasColor(s.Current()) || !s.Board().HasColor(s.Next()) {
					t.Fatalf("seed %d: projectile color not on board", seed)
				}
			}
			lastScore = s.Score()
		}
	}
}
