package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")).
			MarginBottom(1)

	CanvasStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(10)

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	StatusRunning = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42"))
	StatusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("214"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)
)

// ProgressBar renders a fixed-width bar for a fraction in [0,1].
func ProgressBar(fraction float64, width int) string {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}
