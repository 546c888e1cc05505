package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Box renders title and lines inside a rounded border in the colors of the
// current theme. With NoColorTheme the border is kept and colors dropped.
func Box(title string, lines ...string) string {
	t := GetCurrentTheme()
	titleStyle := lipgloss.NewStyle().Bold(t.Name != NoColorTheme.Name).Foreground(t.Accent)
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1)

	body := titleStyle.Render(title)
	if len(lines) > 0 {
		body += "\n" + strings.Join(lines, "\n")
	}
	return boxStyle.Render(body)
}
