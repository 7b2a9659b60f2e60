package bubbles

import (
	"fmt"

	platformcore "github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles/core"
)

const (
	cellW    = 2  // terminal columns per bubble
	sidebarW = 18 // HUD column right of the board
)

// Glyphs.
const (
	glyphBubble  = '●'
	glyphLocked  = '◉'
	glyphPopping = '✸'
	glyphFalling = '○'
	glyphGuide   = '┊'
	glyphMiss    = '✗'
	glyphLimit   = '·'
)

func (g *Game) boardSize() (int, int) {
	r := g.opts.Rules
	return r.Cols*cellW + 3, r.Rows + 4 // border + launcher lines
}

func (g *Game) minSize() (int, int) {
	w, h := g.boardSize()
	return w + sidebarW + 2, h + 1
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.session == nil {
		msg := "Game failed to start"
		if err := g.Err(); err != nil {
			msg = err.Error()
		}
		dst.DrawTextCentered(dst.Height()/2, msg, platformcore.ColorRed)
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	snap := g.session.Snapshot()
	boardW, boardH := g.boardSize()
	totalW := boardW + sidebarW + 2
	x0 := (dst.Width() - totalW) / 2
	y0 := 1

	dst.DrawTextColored(x0, 0, g.Title(), platformcore.ColorBrightWhite)

	box := platformcore.NewRect(x0, y0, boardW, boardH)
	dst.DrawBox(box, platformcore.ColorGray)

	g.renderLimit(dst, box, snap)
	g.renderGuide(dst, box, snap)
	g.renderBubbles(dst, box, snap)
	g.renderLauncher(dst, box, snap)
	g.renderSidebar(dst, box.Right()+2, y0, snap)

	switch {
	case snap.GameOver && g.Err() != nil:
		msg := g.Err().Error()
		if limit := dst.Width() - 8; limit > 3 && len(msg) > limit {
			msg = msg[:limit-3] + "..."
		}
		g.renderOverlay(dst, "GAME ERROR", msg, "R restart  Esc menu")
	case snap.GameOver:
		g.renderOverlay(dst, "GAME OVER", fmt.Sprintf("Score %d", snap.Score), "R restart  Esc menu")
	case g.paused:
		g.renderOverlay(dst, "PAUSED", "", "P resume")
	}
}

// cellPos maps a board cell to screen coordinates inside box.
func cellPos(box platformcore.Rect, c core.Coord) (int, int) {
	x := box.X + 1 + c.Col*cellW
	if c.IsOddRow() {
		x++
	}
	return x, box.Y + 1 + c.Row
}

func (g *Game) renderLimit(dst *platformcore.Screen, box platformcore.Rect, snap core.Snapshot) {
	dst.DrawHLine(box.X+1, box.Y+1+snap.GameOverRow, box.W-2, glyphLimit, platformcore.ColorRed)
}

func (g *Game) renderGuide(dst *platformcore.Screen, box platformcore.Rect, snap core.Snapshot) {
	if snap.GameOver || snap.Phase != core.PhaseAiming {
		return
	}
	for _, c := range Path(g.session.Board(), g.aimCol) {
		x, y := cellPos(box, c)
		dst.SetColored(x, y, glyphGuide, platformcore.ColorGray)
	}
	target := Aim(g.session.Board(), g.aimCol)
	if target.Row < snap.Rows {
		x, y := cellPos(box, target)
		dst.SetColored(x, y, glyphFalling, BubbleColor(snap.Current))
	}
}

func (g *Game) renderBubbles(dst *platformcore.Screen, box platformcore.Rect, snap core.Snapshot) {
	for _, b := range snap.Bubbles {
		x, y := cellPos(box, core.At(b.Row, b.Col))
		glyph := glyphBubble
		color := BubbleColor(b.Color)
		switch {
		case b.Status == core.StatusPopping:
			glyph = glyphPopping
			color = platformcore.ColorBrightWhite
		case b.Status == core.StatusFalling:
			glyph = glyphFalling
		case b.Kind == core.KindLocked:
			glyph = glyphLocked
		}
		dst.SetColored(x, y, glyph, color)
	}

	if g.missFlash > 0 {
		c := g.missAt
		c.Row = platformcore.Clamp(c.Row, 0, snap.Rows-1)
		c.Col = platformcore.Clamp(c.Col, 0, snap.Cols-1)
		x, y := cellPos(box, c)
		dst.SetColored(x, y, glyphMiss, platformcore.ColorBrightRed)
	}
}

func (g *Game) renderLauncher(dst *platformcore.Screen, box platformcore.Rect, snap core.Snapshot) {
	y := box.Bottom() - 2
	x, _ := cellPos(box, core.At(snap.Rows, g.aimCol))
	if snap.GameOver {
		return
	}
	dst.SetColored(x, y, glyphBubble, BubbleColor(snap.Current))
	dst.SetColored(x, y-1, '▲', platformcore.ColorWhite)
}

func (g *Game) renderSidebar(dst *platformcore.Screen, x, y int, snap core.Snapshot) {
	line := func(dy int, label string, value any) {
		dst.DrawTextColored(x, y+dy, label, platformcore.ColorGray)
		dst.DrawText(x+8, y+dy, fmt.Sprint(value))
	}

	line(1, "Score", snap.Score)
	line(2, "Shots", snap.ShotsRemaining)
	line(3, "Drop in", snap.ShotsUntilAdvance)
	line(4, "Level", fmt.Sprintf("%d %s", snap.Level+1, snap.LevelName))
	if snap.Player != "" {
		line(5, "Player", snap.Player)
	}

	dst.DrawTextColored(x, y+7, "Next", platformcore.ColorGray)
	dst.SetColored(x+8, y+7, glyphBubble, BubbleColor(snap.Next))

	switch {
	case snap.Advancing:
		dst.DrawTextColored(x, y+9, "Ceiling drops!", platformcore.ColorRed)
	case g.clearFlash > 0:
		dst.DrawTextColored(x, y+9, "Board cleared!", platformcore.ColorGreen)
	case g.lastBonus > 0:
		dst.DrawTextColored(x, y+9, fmt.Sprintf("+%d shots!", g.opts.Rules.BonusShots), platformcore.ColorYellow)
	}

	help := []string{"←/→ aim", "space fire", "p pause", "q quit"}
	for i, h := range help {
		dst.DrawTextColored(x, y+11+i, h, platformcore.ColorGray)
	}
}

func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	w, h := g.minSize()
	y := dst.Height() / 2
	dst.DrawTextCentered(y, "Window too small", platformcore.ColorDefault)
	dst.DrawTextCentered(y+1, fmt.Sprintf("Need at least %dx%d", w, h), platformcore.ColorGray)
}

func (g *Game) renderOverlay(dst *platformcore.Screen, title, line, hint string) {
	boxW := max(len(title), len(line), len(hint)) + 6
	r := platformcore.NewRect(0, 0, dst.Width(), dst.Height()).Centered(boxW, 7)
	dst.DrawRect(r, ' ')
	dst.DrawBox(r, platformcore.ColorWhite)
	dst.DrawTextColored(r.X+(boxW-len(title))/2, r.Y+1, title, platformcore.ColorBrightWhite)
	if line != "" {
		dst.DrawText(r.X+(boxW-len(line))/2, r.Y+3, line)
	}
	dst.DrawTextColored(r.X+(boxW-len(hint))/2, r.Y+5, hint, platformcore.ColorGray)
}

// BubbleColor maps a bubble color to a screen color.
func BubbleColor(c core.Color) platformcore.Color {
	switch c {
	case core.ColorRed:
		return platformcore.ColorRed
	case core.ColorGreen:
		return platformcore.ColorGreen
	case core.ColorBlue:
		return platformcore.ColorBlue
	case core.ColorYellow:
		return platformcore.ColorYellow
	case core.ColorPurple:
		return platformcore.ColorMagenta
	case core.ColorOrange:
		return platformcore.ColorOrange
	default:
		return platformcore.ColorWhite
	}
}
