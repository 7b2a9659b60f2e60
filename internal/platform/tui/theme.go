package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles of the menus and prompts.
// The board itself is drawn through core.Screen colors.
type Theme struct {
	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style

	// Footer
	Controls lipgloss.Style

	// Prompt styles
	PromptLabel lipgloss.Style
	PromptError lipgloss.Style

	// Scoreboard highlight for the current player
	Highlight lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		Controls: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),

		PromptLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		PromptError: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),

		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	}
}

// MonochromeTheme drops colors for terminals without them.
func MonochromeTheme() Theme {
	plain := lipgloss.NewStyle()
	bold := lipgloss.NewStyle().Bold(true)
	return Theme{
		MenuTitle:       bold,
		MenuItemNormal:  plain,
		MenuItemActive:  bold.Reverse(true),
		MenuDescription: plain.Faint(true),
		Controls:        plain.Faint(true),
		PromptLabel:     bold,
		PromptError:     bold.Underline(true),
		Highlight:       bold,
	}
}

// Global theme variable (can be changed at runtime)
var theme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(t Theme) {
	theme = t
}

// GetTheme returns the current global theme.
func GetTheme() Theme {
	return theme
}
