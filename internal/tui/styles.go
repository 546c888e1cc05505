package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/picalc/internal/ui"
)

// styles groups the lipgloss styles of the dashboard.
type styles struct {
	title   lipgloss.Style
	label   lipgloss.Style
	panel   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
	muted   lipgloss.Style
}

// newStyles derives the dashboard styles from the current ui theme.
func newStyles() styles {
	t := ui.GetCurrentTheme()
	colored := t.Name != ui.NoColorTheme.Name
	pick := func(c lipgloss.TerminalColor) lipgloss.TerminalColor {
		if colored {
			return c
		}
		return lipgloss.NoColor{}
	}
	return styles{
		title:   lipgloss.NewStyle().Bold(colored).Foreground(t.Accent),
		label:   lipgloss.NewStyle().Width(labelWidth),
		panel:   lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(t.Border).Padding(0, 1),
		success: lipgloss.NewStyle().Foreground(pick(lipgloss.Color("#5FD75F"))),
		failure: lipgloss.NewStyle().Foreground(pick(lipgloss.Color("#FF5F5F"))),
		muted:   lipgloss.NewStyle().Foreground(pick(lipgloss.Color("#8A8A8A"))),
	}
}
