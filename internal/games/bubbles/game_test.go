package bubbles

import (
	"bytes"
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	platformcore "github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

func testBoard(t *testing.T, rows, cols int, lines ...string) *core.Board {
	t.Helper()
	l, err := core.LayoutFromRows("t", "t", lines)
	if err != nil {
		t.Fatalf("LayoutFromRows() failed: %v", err)
	}
	b := core.NewBoard(rows, cols)
	l.Apply(b, core.NewFactory(rand.New(rand.NewSource(1)), core.AllColors()))
	return b
}

func TestAim(t *testing.T) {
	b := testBoard(t, 6, 5,
		"RR---",
		"-----",
		"-----",
		"-----",
		"-----",
		"----G",
	)

	tests := []struct {
		name string
		col  int
		want core.Coord
	}{
		{"sticks under a bubble", 0, core.At(1, 0)},
		{"odd row reaches up-right", 1, core.At(1, 1)},
		{"empty column hits the ceiling", 3, core.At(0, 3)},
		{"full column misses", 4, core.At(6, 4)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Aim(b, tt.col); got != tt.want {
				t.Errorf("Aim(col %d) = %v, want %v", tt.col, got, tt.want)
			}
		})
	}
}

func TestPath(t *testing.T) {
	b := testBoard(t, 6, 5, "RR---")
	path := Path(b, 0)
	if len(path) != 4 {
		t.Fatalf("Path() = %v, want 4 cells", path)
	}
	if path[0] != core.At(5, 0) || path[3] != core.At(2, 0) {
		t.Errorf("Path() = %v, want rows 5..2", path)
	}
}

func newTestGame(t *testing.T) *Game {
	t.Helper()
	rules := core.DefaultRules()
	rules.SettleTicks = 0
	rules.AdvanceTicks = 0
	g, err := New(Options{Rules: rules, Player: "tester"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 99})
	return g
}

func frame(actions ...platformcore.Action) platformcore.InputFrame {
	f := platformcore.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

func TestNewRejectsBadRules(t *testing.T) {
	rules := core.DefaultRules()
	rules.Rows = 0
	if _, err := New(Options{Rules: rules}); err == nil {
		t.Error("expected error for zero rows")
	}
}

func TestAimMovesAndClamps(t *testing.T) {
	g := newTestGame(t)
	start := g.AimColumn()

	g.Step(frame(platformcore.ActionLeft))
	if g.AimColumn() != start-1 {
		t.Errorf("AimColumn() = %d, want %d", g.AimColumn(), start-1)
	}
	for i := 0; i < 30; i++ {
		g.Step(frame(platformcore.ActionRight))
	}
	if g.AimColumn() != core.DefaultRules().Cols-1 {
		t.Errorf("AimColumn() = %d, want clamped to last column", g.AimColumn())
	}
}

func TestFireUsesShot(t *testing.T) {
	g := newTestGame(t)
	var seen []core.Event
	g.opts.OnEvents = func(ev []core.Event) { seen = append(seen, ev...) }

	before := g.Session().ShotsRemaining()
	g.Step(frame(platformcore.ActionFire))
	if got := g.Session().ShotsRemaining(); got != before-1 {
		t.Errorf("ShotsRemaining() = %d, want %d", got, before-1)
	}
	if len(seen) == 0 || seen[0].Kind != core.EventShot {
		t.Errorf("expected a shot event, got %v", seen)
	}
	if g.Err() != nil {
		t.Errorf("unexpected error: %v", g.Err())
	}
}

func TestPauseStopsInput(t *testing.T) {
	g := newTestGame(t)
	g.Step(frame(platformcore.ActionPause))
	if !g.State().Paused {
		t.Fatal("expected paused state")
	}
	before := g.Session().ShotsRemaining()
	g.Step(frame(platformcore.ActionFire))
	if g.Session().ShotsRemaining() != before {
		t.Error("fired while paused")
	}
}

func TestGameOverAndRestart(t *testing.T) {
	g := newTestGame(t)
	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(frame(platformcore.ActionFire))
	}
	if !g.State().GameOver {
		t.Fatal("game did not end after firing every shot")
	}

	g.Step(frame(platformcore.ActionRestart))
	st := g.State()
	if st.GameOver || st.Score != 0 {
		t.Errorf("after restart: %+v", st)
	}
	if g.Session().ShotsRemaining() != core.DefaultRules().InitialShots {
		t.Errorf("ShotsRemaining() = %d after restart", g.Session().ShotsRemaining())
	}
}

func TestRestartKeepsBubbleIDsUnique(t *testing.T) {
	g := newTestGame(t)
	seen := make(map[uint64]bool)
	for _, b := range g.Session().Board().Bubbles() {
		seen[b.ID] = true
	}
	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(frame(platformcore.ActionFire))
	}
	if !g.State().GameOver {
		t.Fatal("game did not end")
	}

	g.Step(frame(platformcore.ActionRestart))
	for _, b := range g.Session().Board().Bubbles() {
		if seen[b.ID] {
			t.Fatalf("bubble ID %d reused after restart", b.ID)
		}
	}
}

func TestEngineErrorLoggedOnceAndShown(t *testing.T) {
	var buf bytes.Buffer
	g := newTestGame(t)
	g.opts.Logger = log.New(&buf)

	g.err = errors.New("palette exhausted")
	g.Step(frame())
	g.Step(frame())
	if got := strings.Count(buf.String(), "palette exhausted"); got != 1 {
		t.Errorf("error logged %d times, want 1; log:\n%s", got, buf.String())
	}

	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(frame(platformcore.ActionFire))
	}
	if !g.State().GameOver {
		t.Fatal("game did not end")
	}
	screen := platformcore.NewScreen(80, 30)
	g.Render(screen)
	out := screen.String()
	if !strings.Contains(out, "GAME ERROR") || !strings.Contains(out, "palette exhausted") {
		t.Errorf("game over overlay does not show the error:\n%s", out)
	}
}

func TestRender(t *testing.T) {
	g := newTestGame(t)
	screen := platformcore.NewScreen(80, 30)
	g.Render(screen)

	out := screen.String()
	for _, want := range []string{"Bubble Shooter", "Score", "Shots", "Next", "●"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}
}

func TestRenderTooSmall(t *testing.T) {
	g := newTestGame(t)
	g.Resize(30, 10)
	screen := platformcore.NewScreen(30, 10)
	g.Render(screen)
	if !strings.Contains(screen.String(), "Window too small") {
		t.Error("expected too small message")
	}
	if !g.State().Paused {
		t.Error("too small window should pause the game")
	}
}

type levelRecorder struct {
	calls  int
	player string
	score  int
	level  int
}

func (r *levelRecorder) ReportScore(player string, score int) {
	r.ReportGame(player, score, -1)
}

func (r *levelRecorder) ReportGame(player string, score, level int) {
	r.calls++
	r.player, r.score, r.level = player, score, level
}

func TestGameOverReportsLevel(t *testing.T) {
	rules := core.DefaultRules()
	rules.SettleTicks = 0
	rules.AdvanceTicks = 0
	rec := &levelRecorder{}
	g, err := New(Options{Rules: rules, Player: "tester", Reporter: rec})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	g.Reset(platformcore.RuntimeConfig{ScreenW: 80, ScreenH: 30, TickRate: 60, Seed: 7})

	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(frame(platformcore.ActionFire))
	}
	if !g.State().GameOver {
		t.Fatal("game did not end")
	}
	if rec.calls != 1 {
		t.Fatalf("reporter called %d times, want 1", rec.calls)
	}
	if rec.player != "tester" || rec.score != g.State().Score || rec.level != g.Session().Level() {
		t.Errorf("report = %+v, state = %+v", rec, g.State())
	}
}
