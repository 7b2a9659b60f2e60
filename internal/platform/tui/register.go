package tui

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// MaxPlayerName is the longest accepted player name.
const MaxPlayerName = 32

// RegisterModel asks for the player name before the first game.
type RegisterModel struct {
	input    textinput.Model
	width    int
	height   int
	theme    Theme
	errMsg   string
	name     string
	done     bool
	quitting bool
}

// NewRegisterModel creates the prompt, prefilled with suggestion.
func NewRegisterModel(suggestion string, width, height int) RegisterModel {
	ti := textinput.New()
	ti.Placeholder = "your name"
	ti.CharLimit = MaxPlayerName
	ti.Width = MaxPlayerName
	ti.SetValue(suggestion)
	ti.Focus()

	return RegisterModel{
		input:  ti,
		width:  width,
		height: height,
		theme:  GetTheme(),
	}
}

// Init starts the cursor blink.
func (m RegisterModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m RegisterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, nil
		case "enter":
			name, err := ValidatePlayerName(m.input.Value())
			if err != "" {
				m.errMsg = err
				return m, nil
			}
			m.name = name
			m.done = true
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.errMsg = ""
	return m, cmd
}

// View renders the prompt.
func (m RegisterModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.Repeat("\n", max(m.height/2-4, 1)))
	b.WriteString(centerText(m.theme.MenuTitle.Render("B U B B L E S"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.PromptLabel.Render("Who is playing?"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.input.View(), m.width))
	b.WriteString("\n\n")
	if m.errMsg != "" {
		b.WriteString(centerText(m.theme.PromptError.Render(m.errMsg), m.width))
		b.WriteString("\n")
	}
	b.WriteString(centerText(m.theme.Controls.Render("Enter: Confirm  |  Esc: Quit"), m.width))
	b.WriteString("\n")
	return b.String()
}

// Name returns the accepted name once Done is true.
func (m RegisterModel) Name() string {
	return m.name
}

// Done reports whether a valid name was entered.
func (m RegisterModel) Done() bool {
	return m.done
}

// IsQuitting returns true if user cancelled.
func (m RegisterModel) IsQuitting() bool {
	return m.quitting
}

// ValidatePlayerName trims name and returns a message if it is unusable.
func ValidatePlayerName(name string) (string, string) {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return "", "Name cannot be empty"
	case utf8.RuneCountInString(name) > MaxPlayerName:
		return "", "Name is too long"
	}
	return name, ""
}
