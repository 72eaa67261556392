package components

import "github.com/charmbracelet/lipgloss"

// Color palette for the UI with semantic naming
const (
	// Foreground colors - text and elements
	FgPrimary = lipgloss.Color("#7D56F4") // Purple - primary/focus color
	FgMuted   = lipgloss.Color("7")       // Light gray - muted elements
	FgBorder  = lipgloss.Color("8")       // Gray - borders and help text

	// Background colors
	BgSelection = lipgloss.Color("235") // Dark gray - selected background

	// Status colors - scenario outcomes
	FgStatusPassed  = lipgloss.Color("10") // Green - passed scenario
	FgStatusRunning = lipgloss.Color("11") // Yellow - running scenario
	FgStatusFailed  = lipgloss.Color("9")  // Red - failed scenario
	FgStatusSkipped = lipgloss.Color("8")  // Gray - skipped or pending scenario
)

// SeparatorColor is the adaptive color for header and footer lines
var SeparatorColor = lipgloss.AdaptiveColor{Light: "#737373", Dark: "#a3a3a3"}

// ProgressEmptyColor is the adaptive color for the unfilled part of the progress bar
var ProgressEmptyColor = lipgloss.AdaptiveColor{Light: "#D9D9D9", Dark: "#3C3C3C"}
