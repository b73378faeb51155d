// Package tui renders the single-choice selector the interactive menus are
// built from.
package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette - matches the CLI colors
var (
	ColorPrimary = lipgloss.Color("#7C3AED") // Purple
	ColorAccent  = lipgloss.Color("#06B6D4") // Cyan
	ColorMuted   = lipgloss.Color("#6B7280") // Gray
	ColorText    = lipgloss.Color("#F3F4F6") // Light gray
)

// Styles contains the lipgloss styles used by the selector.
type Styles struct {
	Title    lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Cursor   lipgloss.Style
	More     lipgloss.Style
	HelpKey  lipgloss.Style
	HelpDesc lipgloss.Style
	HelpSep  lipgloss.Style
}

// DefaultStyles returns the default styles.
func DefaultStyles() *Styles {
	s := &Styles{}

	s.Title = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	s.Item = lipgloss.NewStyle().
		PaddingLeft(2)

	s.Selected = lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true)

	s.Cursor = lipgloss.NewStyle().
		Foreground(ColorAccent).
		SetString("▸ ")

	s.More = lipgloss.NewStyle().
		Foreground(ColorMuted).
		PaddingLeft(2)

	s.HelpKey = lipgloss.NewStyle().
		Foreground(ColorMuted).
		Bold(true)

	s.HelpDesc = lipgloss.NewStyle().
		Foreground(ColorMuted)

	s.HelpSep = lipgloss.NewStyle().
		Foreground(ColorMuted).
		SetString(" • ")

	return s
}

// PlainStyles drops colour and unicode, for NO_COLOR and ASCII terminals.
func PlainStyles() *Styles {
	s := &Styles{}
	s.Title = lipgloss.NewStyle()
	s.Item = lipgloss.NewStyle().PaddingLeft(2)
	s.Selected = lipgloss.NewStyle()
	s.Cursor = lipgloss.NewStyle().SetString("> ")
	s.More = lipgloss.NewStyle().PaddingLeft(2)
	s.HelpKey = lipgloss.NewStyle()
	s.HelpDesc = lipgloss.NewStyle()
	s.HelpSep = lipgloss.NewStyle().SetString(" | ")
	return s
}
