package reporter

import "github.com/charmbracelet/lipgloss"

var (
	passStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))
	failStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))
	skipStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA726"))
	nameStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	groupStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9D7BF5"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E"))
	detailStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#BDBDBD")).PaddingLeft(4)
	summaryStyle = lipgloss.NewStyle().Bold(true).MarginTop(1)
)

// Status glyphs
const (
	PassMark = "✓"
	FailMark = "✗"
	SkipMark = "-"
)
