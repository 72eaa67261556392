package components

import "time"

// UI timing constants
const (
	// UITickInterval is the base tick rate for animations
	UITickInterval = 50 * time.Millisecond

	// UITicksPerSecond is the derived animation frame rate
	UITicksPerSecond = int(time.Second / UITickInterval)
)

// Header layout constants
const (
	HeaderSeparatorMinWidth = 4
	HeaderFixedChars        = 10
)

// Footer layout constants
const (
	FooterSeparatorMinWidth = 4
	FooterFixedChars        = 5
)

// Scenario list constants
const (
	DefaultViewWidth     = 80
	ScenarioNameMinWidth = 20
	FixedColumnsWidth    = 16
	ErrorMessageMinWidth = 20
	ErrorIndent          = 4
)

// Progress bar constants
const (
	ProgressMinWidth = 10
	ProgressMaxWidth = 60
	ProgressPadding  = 14
)
