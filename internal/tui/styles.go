package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/moneymask/internal/ui"
)

// Styles are the lipgloss styles the TUI renders with, derived from one
// theme palette.
type Styles struct {
	Panel   lipgloss.Style
	Header  lipgloss.Style
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Value   lipgloss.Style
	Amount  lipgloss.Style
	Prompt  lipgloss.Style
	Changed lipgloss.Style
	Error   lipgloss.Style
	Warning lipgloss.Style
}

// NewStyles builds the styles for palette p.
func NewStyles(p ui.TUITheme) Styles {
	fg := func(c lipgloss.TerminalColor) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	return Styles{
		Panel:   fg(p.Text).Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		Header:  fg(p.Accent).Bold(true).Padding(0, 1),
		Title:   fg(p.Accent).Bold(true),
		Muted:   fg(p.Dim),
		Value:   fg(p.Text),
		Amount:  fg(p.Amount).Bold(true),
		Prompt:  fg(p.Accent),
		Changed: fg(p.Success),
		Error:   fg(p.Error),
		Warning: fg(p.Warning),
	}
}
