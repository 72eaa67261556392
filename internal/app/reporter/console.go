package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"dozzlecheck/internal/app/bus"
	"dozzlecheck/internal/app/results"
)

// Console prints scenario outcomes as they happen and a summary at the end
type Console struct {
	out io.Writer
}

// NewConsole creates a console reporter writing to out
func NewConsole(out io.Writer) *Console {
	return &Console{out: out}
}

// Follow prints scenario events until the bus closes or ctx is done; the returned channel closes when it stops
func (c *Console) Follow(ctx context.Context, b bus.Bus) <-chan struct{} {
	done := make(chan struct{})
	msgs := b.Subscribe(ctx)

	go func() {
		defer close(done)

		for msg := range msgs {
			if line := Line(msg); line != "" {
				fmt.Fprintln(c.out, line)
			}

			if msg.Type == bus.EventSuiteFinished {
				return
			}
		}
	}()

	return done
}

// Report prints the summary
func (c *Console) Report(ctx context.Context, report *results.Report) error {
	_, err := fmt.Fprintln(c.out, Summary(report))
	return err
}

// Line renders a bus message as a single console line, or "" for messages the console ignores
func Line(msg bus.Message) string {
	switch d := msg.Data.(type) {
	case bus.TargetWaiting:
		return mutedStyle.Render(fmt.Sprintf("Waiting for %s ...", d.URL))
	case bus.TargetReady:
		return mutedStyle.Render(fmt.Sprintf("Target ready %s (%s)", versionOrUnknown(d.Version), d.Duration.Round(time.Millisecond)))
	case bus.PreflightKill:
		return skipStyle.Render(fmt.Sprintf("Killed orphaned browser %s (PID: %d)", d.Name, d.PID))
	case bus.ScenarioPassed:
		return fmt.Sprintf("%s %s %s", passStyle.Render(PassMark), name(d.Group, d.Scenario), mutedStyle.Render(duration(d.Duration)))
	case bus.ScenarioFailed:
		line := fmt.Sprintf("%s %s %s", failStyle.Render(FailMark), name(d.Group, d.Scenario), mutedStyle.Render(duration(d.Duration)))
		if d.Error != nil {
			line += "\n" + detailStyle.Render(d.Error.Error())
		}

		return line
	case bus.ScenarioSkipped:
		return fmt.Sprintf("%s %s %s", skipStyle.Render(SkipMark), name(d.Group, d.Scenario), mutedStyle.Render("("+d.Reason+")"))
	case bus.Signal:
		return skipStyle.Render(fmt.Sprintf("Received %s, cancelling", d.Name))
	}

	return ""
}

// Summary renders the totals of a report
func Summary(report *results.Report) string {
	passed, failed, skipped := report.Counts()

	parts := []string{
		fmt.Sprintf("%d scenarios", len(report.Results)),
		passStyle.Render(fmt.Sprintf("%d passed", passed)),
	}

	if failed > 0 {
		parts = append(parts, failStyle.Render(fmt.Sprintf("%d failed", failed)))
	} else {
		parts = append(parts, fmt.Sprintf("%d failed", failed))
	}

	parts = append(parts, fmt.Sprintf("%d skipped", skipped))

	line := strings.Join(parts, ", ") + " in " + report.Duration.Round(time.Millisecond).String()

	details := []string{report.Target}
	if report.Version != "" {
		details = append(details, "dozzle "+report.Version)
	}

	if report.Browser != nil {
		details = append(details, fmt.Sprintf("browser %.0f MB / %d processes", report.Browser.MEM, report.Browser.Processes))
	}

	return summaryStyle.Render(line) + "\n" + mutedStyle.Render(strings.Join(details, " · "))
}

func name(group, scenario string) string {
	if group == "" {
		return nameStyle.Render(scenario)
	}

	return groupStyle.Render(group+" ›") + " " + nameStyle.Render(scenario)
}

func duration(d time.Duration) string {
	return "(" + d.Round(time.Millisecond).String() + ")"
}

func versionOrUnknown(v string) string {
	if v == "" {
		return "unknown version"
	}

	return v
}
