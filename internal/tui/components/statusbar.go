package components

import (
	"fmt"

	"github.com/theirongolddev/cashcast/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar. asOf describes the data
// vintage ("342 txns · computed in 0.2s"); refreshing flips the left hint.
func RenderStatusBar(width int, asOf string, refreshing bool) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]help  [r]efresh  [t]heme  [q]uit"
	if refreshing {
		left = " refreshing..."
	}
	right := ""
	if asOf != "" {
		right = fmt.Sprintf("%s ", asOf)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
