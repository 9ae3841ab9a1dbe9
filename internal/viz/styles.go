package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#4fc3f7")
	dim    = lipgloss.Color("#5c6370")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#e5e9f0")).
			Background(lipgloss.Color("#1b3a4b")).
			Padding(0, 1)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(dim).
			Padding(0, 1)

	dimStyle     = lipgloss.NewStyle().Foreground(dim)
	hintStyle    = dimStyle.Italic(true)
	playingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#98c379"))
	pausedStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#e5c07b"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#abb2bf")).Width(20)
	selectStyle  = labelStyle.Bold(true).Foreground(accent)
	valueStyle   = lipgloss.NewStyle().Bold(true).Foreground(accent)
	filledStyle  = lipgloss.NewStyle().Foreground(accent)
)

// progressBar renders how far through the run the cursor is.
func progressBar(fraction float64, width int) string {
	filled := min(max(int(fraction*float64(width)), 0), width)
	return filledStyle.Render(strings.Repeat("━", filled)) +
		dimStyle.Render(strings.Repeat("─", width-filled))
}
