package ui

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"

	"dozzlecheck/internal/app/bus"
	"dozzlecheck/internal/config/logger"
)

// UI creates a Bubble Tea program following the run published on the bus; cancel stops the run
type UI func(ctx context.Context, cancel context.CancelFunc) *tea.Program

// NewUI creates a factory function for constructing Bubble Tea programs
func NewUI(b bus.Bus, log logger.Logger) UI {
	log = log.WithComponent("TUI")

	return func(ctx context.Context, cancel context.CancelFunc) *tea.Program {
		model := NewModel(b.Subscribe(ctx), cancel, log)

		p := tea.NewProgram(
			model,
			tea.WithContext(ctx),
			tea.WithoutSignalHandler(),
		)

		log.Debug().Msg("Program created via factory")

		return p
	}
}

// Enabled reports whether the live view should be used instead of plain console lines
func Enabled(noUI bool) bool {
	return !noUI && term.IsTerminal(os.Stdout.Fd())
}
