package components

import "github.com/charmbracelet/lipgloss"

// Common styles shared across UI components
var (
	// HeaderStyle for the top line
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(FgPrimary)

	// FooterStyle for the bottom block
	FooterStyle = lipgloss.NewStyle().
			MarginTop(1)

	// FooterHelpStyle indents the help line under the version line
	FooterHelpStyle = lipgloss.NewStyle().
			Padding(0, 1)

	// HelpStyle for help text
	HelpStyle = lipgloss.NewStyle().
			Foreground(FgBorder)

	// SeparatorStyle for horizontal lines
	SeparatorStyle = lipgloss.NewStyle().
			Foreground(SeparatorColor)

	// ContentStyle for the scenario list
	ContentStyle = lipgloss.NewStyle().
			Padding(1, 1, 0, 1)

	// GroupStyle for scenario group prefixes
	GroupStyle = lipgloss.NewStyle().
			Foreground(FgMuted)

	// SelectedStyle for the highlighted row
	SelectedStyle = lipgloss.NewStyle().
			Background(BgSelection).
			Bold(true)

	// MutedStyle for durations and secondary info
	MutedStyle = lipgloss.NewStyle().
			Foreground(FgBorder)

	// ErrorStyle for failure messages
	ErrorStyle = lipgloss.NewStyle().
			Foreground(FgStatusFailed)

	// SpinnerStyle for running scenarios
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(FgStatusRunning)

	// Status styles
	PassedStyle  = lipgloss.NewStyle().Foreground(FgStatusPassed)
	FailedStyle  = lipgloss.NewStyle().Foreground(FgStatusFailed)
	SkippedStyle = lipgloss.NewStyle().Foreground(FgStatusSkipped)

	// Progress bar styles
	ProgressFilledStyle = lipgloss.NewStyle().Foreground(FgPrimary)
	ProgressEmptyStyle  = lipgloss.NewStyle().Foreground(ProgressEmptyColor)
)
