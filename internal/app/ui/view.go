package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"dozzlecheck/internal/app/ui/components"
	"dozzlecheck/internal/config"
)

// Row glyphs
const (
	pendingMark = "○"
	passedMark  = "✓"
	failedMark  = "✗"
	skippedMark = "-"
)

// View renders the run
func (m Model) View() string {
	width := m.ui.width
	if width <= 0 {
		width = components.DefaultViewWidth
	}

	parts := []string{
		components.RenderHeader(width, m.title(), fmt.Sprintf("%d/%d", m.Done(), len(m.state.rows))),
		components.RenderContent(m.renderProgress(width) + "\n\n" + m.renderRows(width)),
	}

	if m.state.finished {
		parts = append(parts, components.RenderContent(m.renderSummary()))
	}

	parts = append(parts, components.RenderFooter(width, m.ui.help.View(m.ui.keys)))

	return lipgloss.JoinVertical(lipgloss.Left, parts...) + "\n"
}

func (m Model) title() string {
	title := config.AppName
	if m.state.target != "" {
		title += " " + m.state.target
	}

	if m.state.version != "" {
		title += " (" + m.state.version + ")"
	}

	return title
}

func (m Model) renderProgress(width int) string {
	barWidth := width - components.ProgressPadding
	if barWidth > components.ProgressMaxWidth {
		barWidth = components.ProgressMaxWidth
	}

	info := fmt.Sprintf("%3.0f%%", m.ui.progress.Fraction()*100)

	switch {
	case m.state.finished:
		info += " " + components.MutedStyle.Render(m.state.summary.Duration.Round(time.Millisecond).String())
	case m.state.cancelling:
		info += " " + components.ErrorStyle.Render("cancelling…")
	}

	return m.ui.progress.Render(barWidth) + " " + info
}

func (m Model) renderRows(width int) string {
	if len(m.state.rows) == 0 {
		return components.MutedStyle.Render("waiting for scenarios…")
	}

	nameWidth := width - components.FixedColumnsWidth
	if nameWidth < components.ScenarioNameMinWidth {
		nameWidth = components.ScenarioNameMinWidth
	}

	errWidth := width - components.ErrorIndent - components.FixedColumnsWidth/2
	if errWidth < components.ErrorMessageMinWidth {
		errWidth = components.ErrorMessageMinWidth
	}

	lines := make([]string, 0, len(m.state.rows))

	for i, r := range m.state.rows {
		line := m.mark(r) + " " + components.TruncateAndPad(rowName(r), nameWidth) + " " + rowInfo(r)
		if i == m.state.selected {
			line = components.SelectedStyle.Render(line)
		}

		lines = append(lines, line)

		if r.Status == StatusFailed && r.Error != nil {
			msg := components.Truncate(firstLine(r.Error.Error()), errWidth)
			lines = append(lines, strings.Repeat(" ", components.ErrorIndent)+components.ErrorStyle.Render(msg))
		}
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderSummary() string {
	s := m.state.summary

	passed := components.PassedStyle.Render(fmt.Sprintf("%d passed", s.Passed))

	failed := fmt.Sprintf("%d failed", s.Failed)
	if s.Failed > 0 {
		failed = components.FailedStyle.Render(failed)
	}

	skipped := components.SkippedStyle.Render(fmt.Sprintf("%d skipped", s.Skipped))

	return passed + ", " + failed + ", " + skipped
}

func (m Model) mark(r *Row) string {
	switch r.Status {
	case StatusRunning:
		return m.ui.spinner.View()
	case StatusPassed:
		return components.PassedStyle.Render(passedMark)
	case StatusFailed:
		return components.FailedStyle.Render(failedMark)
	case StatusSkipped:
		return components.SkippedStyle.Render(skippedMark)
	default:
		return components.MutedStyle.Render(pendingMark)
	}
}

func rowName(r *Row) string {
	if r.Group == "" {
		return r.Name
	}

	return components.GroupStyle.Render(r.Group+" ›") + " " + r.Name
}

func rowInfo(r *Row) string {
	switch r.Status {
	case StatusRunning:
		if r.Step == 0 {
			return components.MutedStyle.Render(fmt.Sprintf("0/%d", r.Steps))
		}

		return components.MutedStyle.Render(fmt.Sprintf("%d/%d %s", r.Step, r.Steps, r.Action))
	case StatusPassed, StatusFailed:
		return components.MutedStyle.Render(r.Duration.Round(time.Millisecond).String())
	case StatusSkipped:
		return components.MutedStyle.Render(r.Reason)
	default:
		return ""
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}

	return s
}
