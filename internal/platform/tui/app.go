package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-bubbles/internal/core"
	"github.com/vovakirdan/tui-bubbles/internal/games/bubbles"
	"github.com/vovakirdan/tui-bubbles/internal/leaderboard"
)

// AppConfig holds what a player session needs.
type AppConfig struct {
	// Game options shared by every game of the session. Player and
	// StartLevel are overwritten per game.
	Game bubbles.Options

	// Board backs the scoreboard screen; nil hides scores.
	Board leaderboard.Board

	Runtime core.RuntimeConfig
	Player  string
	// Suggested prefills the name prompt when Player is empty.
	Suggested string

	// SkipMenu starts the first game directly.
	SkipMenu   bool
	StartLevel int

	Logger *log.Logger
}

type appScreen int

const (
	screenRegister appScreen = iota
	screenMenu
	screenLevels
	screenScores
	screenGame
)

// AppModel walks a player through registration, menus and games.
// It serves both the local terminal and SSH sessions.
type AppModel struct {
	cfg      AppConfig
	screen   appScreen
	player   string
	level    int
	register RegisterModel
	menu     MenuModel
	levels   LevelMenuModel
	scores   ScoreboardModel
	game     GameModel
	err      error
	quitting bool
}

// NewAppModel creates the top-level model.
func NewAppModel(cfg AppConfig) AppModel {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	m := AppModel{
		cfg:    cfg,
		player: cfg.Player,
		level:  cfg.StartLevel,
	}
	if name, msg := ValidatePlayerName(cfg.Player); msg == "" {
		m.player = name
		m.screen = screenMenu
		m.menu = NewMenuModel(name, cfg.Runtime.ScreenW, cfg.Runtime.ScreenH)
	} else {
		m.screen = screenRegister
		m.register = NewRegisterModel(cfg.Suggested, cfg.Runtime.ScreenW, cfg.Runtime.ScreenH)
	}
	return m
}

// Init starts the first screen.
func (m AppModel) Init() tea.Cmd {
	switch {
	case m.screen == screenRegister:
		return m.register.Init()
	case m.cfg.SkipMenu:
		return func() tea.Msg { return startGameMsg{} }
	}
	return nil
}

// startGameMsg asks the app to launch a game from the menu state.
type startGameMsg struct{}

// Update routes messages to the active screen.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.cfg.Runtime.ScreenW = wsm.Width
		m.cfg.Runtime.ScreenH = wsm.Height
	}
	if _, ok := msg.(startGameMsg); ok && m.screen == screenMenu {
		return m.startGame()
	}

	switch m.screen {
	case screenRegister:
		return m.updateRegister(msg)
	case screenLevels:
		return m.updateLevels(msg)
	case screenScores:
		return m.updateScores(msg)
	case screenGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m AppModel) updateRegister(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.register.Update(msg)
	m.register = next.(RegisterModel)

	if m.register.IsQuitting() {
		return m.quit()
	}
	if m.register.Done() {
		m.player = m.register.Name()
		m.cfg.Logger.Info("player registered", "player", m.player)
		if m.cfg.SkipMenu {
			return m.startGame()
		}
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	if m.menu.IsQuitting() {
		return m.quit()
	}
	switch m.menu.Selected() {
	case ChoicePlay:
		return m.startGame()
	case ChoiceLevels:
		m.screen = screenLevels
		m.levels = NewLevelMenuModel(m.levelNames(), m.cfg.Runtime.ScreenW, m.cfg.Runtime.ScreenH)
		return m, nil
	case ChoiceScores:
		m.screen = screenScores
		m.scores = NewScoreboardModel(m.cfg.Board, m.player, m.cfg.Runtime.ScreenW, m.cfg.Runtime.ScreenH)
		return m, nil
	}
	return m, cmd
}

func (m AppModel) updateLevels(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}
	next, cmd := m.levels.Update(msg)
	m.levels = next.(LevelMenuModel)

	switch {
	case m.levels.IsQuitting():
		return m.quit()
	case m.levels.WantsBack():
		return m.toMenu()
	}
	if level, ok := m.levels.Selected(); ok {
		m.level = level
		return m.startGame()
	}
	return m, cmd
}

func (m AppModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		return m, nil
	}
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	switch {
	case m.scores.IsQuitting():
		return m.quit()
	case m.scores.IsGoingBack():
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	switch {
	case m.game.IsQuitting():
		return m.quit()
	case m.game.BackToMenu():
		return m.toMenu()
	}
	return m, cmd
}

func (m AppModel) startGame() (tea.Model, tea.Cmd) {
	opts := m.cfg.Game
	opts.Player = m.player
	opts.StartLevel = m.level
	if opts.Logger == nil {
		opts.Logger = m.cfg.Logger
	}

	game, err := bubbles.New(opts)
	if err != nil {
		m.cfg.Logger.Error("cannot start game", "error", err)
		m.err = err
		return m.quit()
	}

	rt := m.cfg.Runtime
	rt.Seed = time.Now().UnixNano()
	if m.cfg.Runtime.Seed != 0 {
		// A fixed seed replays the same first game.
		rt.Seed = m.cfg.Runtime.Seed
		m.cfg.Runtime.Seed = 0
	}

	m.game = NewGameModel(game, rt, m.cfg.Logger)
	m.screen = screenGame
	m.cfg.Logger.Info("game starting", "player", m.player, "level", m.level+1)
	return m, m.game.Init()
}

func (m AppModel) toMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.player, m.cfg.Runtime.ScreenW, m.cfg.Runtime.ScreenH)
	return m, nil
}

func (m AppModel) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m AppModel) levelNames() []string {
	layouts := m.cfg.Game.Layouts
	names := make([]string, len(layouts))
	for i, l := range layouts {
		names[i] = l.Name
	}
	return names
}

// View renders the active screen.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.screen {
	case screenRegister:
		return m.register.View()
	case screenLevels:
		return m.levels.View()
	case screenScores:
		return m.scores.View()
	case screenGame:
		return m.game.View()
	default:
		return m.menu.View()
	}
}

// Player returns the registered player name.
func (m AppModel) Player() string {
	return m.player
}

// Err returns the error that ended the session, if any.
func (m AppModel) Err() error {
	return m.err
}

// Run starts the app on the local terminal.
func Run(cfg AppConfig) error {
	p := tea.NewProgram(
		NewAppModel(cfg),
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(AppModel); ok {
		return m.Err()
	}
	return nil
}
