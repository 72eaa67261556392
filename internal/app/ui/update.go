package ui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"dozzlecheck/internal/app/bus"
	"dozzlecheck/internal/app/ui/components"
)

// msgMsg wraps a bus message for tea messaging
type msgMsg bus.Message

// tickMsg signals a UI tick for animations
type tickMsg time.Time

// channelClosedMsg signals the event channel has closed
type channelClosedMsg struct{}

// Init starts reading events and the animations
func (m Model) Init() tea.Cmd {
	return tea.Batch(waitForMsgCmd(m.msgChan), m.ui.spinner.Tick, tickCmd())
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.ui.width = msg.Width
		m.ui.height = msg.Height
		m.ui.help.Width = msg.Width

		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.ui.spinner, cmd = m.ui.spinner.Update(msg)

		return m, cmd

	case tickMsg:
		m.ui.progress.Update()

		return m, tickCmd()

	case msgMsg:
		m.handleMessage(bus.Message(msg))

		if m.state.finished {
			return m, tea.Quit
		}

		return m, waitForMsgCmd(m.msgChan)

	case channelClosedMsg:
		m.log.Debug().Msg("TUI: Event channel closed, quitting")

		return m, tea.Quit
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.ui.keys.ForceQuit):
		m.log.Warn().Msg("TUI: Cancel requested")
		m.cancelRun()

		return m, tea.Quit

	case key.Matches(msg, m.ui.keys.Quit):
		if m.state.finished {
			return m, tea.Quit
		}

		m.cancelRun()

		return m, nil

	case key.Matches(msg, m.ui.keys.Help):
		m.ui.help.ShowAll = !m.ui.help.ShowAll

		return m, nil

	case key.Matches(msg, m.ui.keys.Up):
		if m.state.selected > 0 {
			m.state.selected--
		}

		return m, nil

	case key.Matches(msg, m.ui.keys.Down):
		if m.state.selected < len(m.state.rows)-1 {
			m.state.selected++
		}

		return m, nil
	}

	return m, nil
}

func (m *Model) cancelRun() {
	if m.state.cancelling {
		return
	}

	m.state.cancelling = true

	if m.cancel != nil {
		m.cancel()
	}
}

// handleMessage applies a bus event to the rows
func (m *Model) handleMessage(msg bus.Message) {
	switch data := msg.Data.(type) {
	case bus.SuiteStarted:
		m.state.target = data.Target
		m.state.workers = data.Workers

		for _, e := range data.Scenarios {
			m.row(e)
		}

	case bus.TargetReady:
		m.state.version = data.Version

	case bus.ScenarioStarted:
		r := m.row(data.ScenarioEvent)
		r.Status = StatusRunning
		r.Steps = data.Steps

	case bus.StepDone:
		r := m.row(data.ScenarioEvent)
		r.Step = data.Index
		r.Steps = data.Total
		r.Action = data.Action

	case bus.ScenarioPassed:
		r := m.row(data.ScenarioEvent)
		r.Status = StatusPassed
		r.Duration = data.Duration

	case bus.ScenarioFailed:
		r := m.row(data.ScenarioEvent)
		r.Status = StatusFailed
		r.Error = data.Error
		r.Duration = data.Duration

	case bus.ScenarioSkipped:
		r := m.row(data.ScenarioEvent)
		r.Status = StatusSkipped
		r.Reason = data.Reason

	case bus.Signal:
		m.state.cancelling = true

	case bus.SuiteFinished:
		m.state.finished = true
		m.state.summary = data
	}

	m.ui.progress.SetTarget(m.Done(), len(m.state.rows))

	// the last frame must show the final state
	if m.state.finished {
		m.ui.progress.Finish()
	}
}

// waitForMsgCmd waits for the next bus message
func waitForMsgCmd(msgChan <-chan bus.Message) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-msgChan
		if !ok {
			return channelClosedMsg{}
		}

		return msgMsg(msg)
	}
}

// tickCmd returns a command that sends a tick after the interval
func tickCmd() tea.Cmd {
	return tea.Tick(components.UITickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
