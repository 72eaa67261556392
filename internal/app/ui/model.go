package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"

	"dozzlecheck/internal/app/bus"
	"dozzlecheck/internal/app/ui/components"
	"dozzlecheck/internal/config/logger"
)

// Status represents the display status of a scenario row
type Status string

// Status values for the scenario lifecycle
const (
	StatusPending Status = "pending"
	StatusRunning Status = "running"
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Row is one scenario in the live list
type Row struct {
	Name     string
	Group    string
	Status   Status
	Step     int
	Steps    int
	Action   string
	Reason   string
	Error    error
	Duration time.Duration
}

// Finished reports whether the row reached a final status
func (r *Row) Finished() bool {
	return r.Status == StatusPassed || r.Status == StatusFailed || r.Status == StatusSkipped
}

// Model is the Bubble Tea model of a suite run
type Model struct {
	cancel  context.CancelFunc
	msgChan <-chan bus.Message
	log     logger.Logger

	state struct {
		target     string
		version    string
		workers    int
		rows       []*Row
		index      map[string]int
		selected   int
		started    time.Time
		finished   bool
		cancelling bool
		summary    bus.SuiteFinished
	}

	ui struct {
		width    int
		height   int
		keys     components.KeyMap
		help     help.Model
		spinner  spinner.Model
		progress *components.Progress
	}
}

// NewModel creates a run model reading events from msgChan; cancel stops the run on user request
func NewModel(msgChan <-chan bus.Message, cancel context.CancelFunc, log logger.Logger) Model {
	m := Model{
		cancel:  cancel,
		msgChan: msgChan,
		log:     log,
	}

	m.state.index = make(map[string]int)
	m.state.started = time.Now()

	m.ui.width = components.DefaultViewWidth
	m.ui.keys = components.DefaultKeyMap()
	m.ui.help = help.New()
	m.ui.spinner = spinner.New(spinner.WithSpinner(spinner.MiniDot), spinner.WithStyle(components.SpinnerStyle))
	m.ui.progress = components.NewProgress()

	return m
}

// Rows returns the scenario rows in suite order
func (m Model) Rows() []*Row {
	return m.state.rows
}

// Finished reports whether the suite has ended
func (m Model) Finished() bool {
	return m.state.finished
}

// Done returns the number of rows with a final status
func (m Model) Done() int {
	done := 0

	for _, r := range m.state.rows {
		if r.Finished() {
			done++
		}
	}

	return done
}

func (m *Model) row(e bus.ScenarioEvent) *Row {
	i, ok := m.state.index[e.Key()]
	if !ok {
		r := &Row{Name: e.Scenario, Group: e.Group, Status: StatusPending}
		m.state.index[e.Key()] = len(m.state.rows)
		m.state.rows = append(m.state.rows, r)

		return r
	}

	return m.state.rows[i]
}
