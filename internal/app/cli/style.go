package cli

import (
	"github.com/charmbracelet/lipgloss"

	"dozzlecheck/internal/config"
)

// Headline and body styles
var (
	bodyLarge = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0"))
	mutedText = lipgloss.NewStyle().Foreground(lipgloss.Color("#9E9E9E"))
)

// Semantic styles
var (
	errorLabel   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))
	successLabel = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#04B575"))

	// Title components (inline styles without margins)
	appNameStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	appVersionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#BDBDBD"))
	titleWrapper    = lipgloss.NewStyle().MarginBottom(1)

	// Table styles
	tableBorder = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	tableHeader = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).Padding(0, 1)
	tableName   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575")).Padding(0, 1)
	tableCell   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E0E0E0")).Padding(0, 1)
)

// RenderTitle renders the app title block with name, version, and description
func RenderTitle() string {
	title := titleWrapper.Render(
		appNameStyle.Render(config.AppName) + appVersionStyle.Render(" v"+config.Version),
	)
	description := bodyLarge.Render(config.AppDescription)

	return lipgloss.JoinVertical(lipgloss.Left, title, description)
}
