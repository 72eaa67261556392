package cli

import (
	"context"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/reporter"
	"dozzlecheck/internal/app/results"
	"dozzlecheck/internal/app/runner"
	"dozzlecheck/internal/app/ui"
	"dozzlecheck/internal/config"
)

// handleRun executes the suite, follows it on screen and publishes the report
func (c *cli) handleRun(ctx context.Context, opts runOptions) error {
	if opts.locale != "" {
		c.cfg.Locale = strings.TrimSpace(opts.locale)
	}

	plan := runner.Plan{
		BaseURL:     opts.url,
		Grep:        opts.grep,
		Workers:     opts.workers,
		NoReadiness: opts.noReadiness,
	}

	// following outlives a cancelled run so the final events still arrive
	followCtx, stopFollow := context.WithCancel(ctx)
	defer stopFollow()

	runCtx, cancelRun := context.WithCancel(ctx)
	defer cancelRun()

	wait := c.follow(followCtx, cancelRun, opts.noUI)

	report, err := c.runner.Run(runCtx, plan)
	if report == nil {
		stopFollow()
	}

	wait(stopFollow)

	if report == nil {
		c.exitCode = ExitFailed
		return err
	}

	c.publish(ctx, report)

	if err != nil {
		c.exitCode = ExitFailed
		return err
	}

	if !report.Passed() {
		c.exitCode = ExitFailed
	}

	return nil
}

// follow shows the run either in the live view or as console lines; the returned func blocks until display stops
func (c *cli) follow(ctx context.Context, cancelRun context.CancelFunc, noUI bool) func(stop context.CancelFunc) {
	var done <-chan struct{}

	if ui.Enabled(noUI) {
		program := c.ui(ctx, cancelRun)
		exited := make(chan struct{})
		done = exited

		go func() {
			defer close(exited)

			if _, err := program.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				c.log.Error().Err(err).Msg("Live view failed")
			}
		}()
	} else {
		done = reporter.NewConsole(c.out).Follow(ctx, c.bus)
	}

	return func(stop context.CancelFunc) {
		select {
		case <-done:
		case <-time.After(config.UIStopTimeout):
			stop()
			<-done
		}
	}
}

// publish prints the summary and hands the report to the configured reporters
func (c *cli) publish(ctx context.Context, report *results.Report) {
	console := reporter.NewConsole(c.out)
	if err := console.Report(ctx, report); err != nil {
		c.log.Warn().Err(err).Msg("Failed to print summary")
	}

	if err := c.reporter.Report(context.WithoutCancel(ctx), report); err != nil {
		c.log.Error().Err(err).Msg("Failed to publish report")
	}
}
