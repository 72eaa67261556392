package runner

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"
	"time"

	"dozzlecheck/internal/app/browser"
	"dozzlecheck/internal/app/bus"
	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/pattern"
	"dozzlecheck/internal/app/preflight"
	"dozzlecheck/internal/app/results"
	"dozzlecheck/internal/app/scenario"
	"dozzlecheck/internal/app/target"
	"dozzlecheck/internal/app/worker"
	"dozzlecheck/internal/config"
	"dozzlecheck/internal/config/logger"
)

// Skip reasons
const (
	ReasonNotStarted = "not started"
	ReasonNotReady   = "target not ready"
	ReasonNoBrowser  = "browser unavailable"
	ReasonCancelled  = "cancelled"
)

// Plan selects what a run executes
type Plan struct {
	BaseURL     string
	Grep        []string
	Workers     int
	NoReadiness bool
}

// Runner executes the scenario suite
//
//go:generate mockgen -source=runner.go -destination=runner_mock.go -package=runner
type Runner interface {
	Run(ctx context.Context, plan Plan) (*results.Report, error)
}

type runner struct {
	cfg       *config.Config
	probe     target.Probe
	preflight preflight.Preflight
	launcher  browser.Launcher
	executor  scenario.Executor
	bus       bus.Bus
	log       logger.Logger
	signals   []os.Signal
}

// NewRunner creates a new runner instance
func NewRunner(
	cfg *config.Config,
	probe target.Probe,
	preflight preflight.Preflight,
	launcher browser.Launcher,
	executor scenario.Executor,
	bus bus.Bus,
	log logger.Logger,
) Runner {
	return &runner{
		cfg:       cfg,
		probe:     probe,
		preflight: preflight,
		launcher:  launcher,
		executor:  executor,
		bus:       bus,
		log:       log.WithComponent("RUNNER"),
		signals:   []os.Signal{syscall.SIGINT, syscall.SIGTERM},
	}
}

// Run executes the selected scenarios, each on its own page, and always returns a report once scenarios are selected
func (r *runner) Run(ctx context.Context, plan Plan) (*results.Report, error) {
	base := strings.TrimRight(plan.BaseURL, "/")
	if base == "" {
		base = r.cfg.Target.URL
	}

	selected, err := r.selectScenarios(base, plan.Grep)
	if err != nil {
		return nil, err
	}

	workers := plan.Workers
	if workers <= 0 {
		workers = r.cfg.Concurrency.Workers
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stopSignals := r.watchSignals(ctx, cancel)
	defer stopSignals()

	report := &results.Report{
		Target:  base,
		Started: time.Now(),
		Results: make([]*results.Result, len(selected)),
	}

	names := make([]bus.ScenarioEvent, len(selected))
	for i, s := range selected {
		report.Results[i] = results.Skipped(s, ReasonNotStarted)
		names[i] = bus.ScenarioEvent{Scenario: s.Name, Group: s.Group}
	}

	r.bus.Publish(bus.Message{
		Type:     bus.EventSuiteStarted,
		Data:     bus.SuiteStarted{Target: base, Scenarios: names, Workers: workers},
		Critical: true,
	})
	r.log.Info().Msgf("Running %d scenarios against '%s' with %d workers", len(selected), base, workers)

	defer r.finish(report)

	if _, err := r.preflight.Cleanup(ctx, config.BrowserMarkerFlag); err != nil {
		r.log.Warn().Err(err).Msg("Preflight cleanup failed")
	}

	if err := r.waitForTarget(ctx, base, plan.NoReadiness, report); err != nil {
		r.skipAll(report, selected, ReasonNotReady)
		return report, err
	}

	b, err := r.launcher.Launch(ctx)
	if err != nil {
		r.skipAll(report, selected, ReasonNoBrowser)
		return report, err
	}

	defer func() {
		if err := b.Close(); err != nil {
			r.log.Warn().Err(err).Msg("Failed to close browser")
		}
	}()

	r.runAll(ctx, b, base, selected, workers, report)

	statsCtx, statsCancel := context.WithTimeout(context.Background(), time.Second)
	defer statsCancel()

	if stats, err := b.Stats(statsCtx); err == nil && stats.Processes > 0 {
		report.Browser = &stats
	}

	return report, nil
}

func (r *runner) selectScenarios(base string, grep []string) ([]*scenario.Scenario, error) {
	all, err := scenario.Load(r.cfg, base)
	if err != nil {
		return nil, err
	}

	matcher, err := pattern.NewNameMatcher(grep...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrInvalidPattern, err)
	}

	selected := make([]*scenario.Scenario, 0, len(all))

	for _, s := range all {
		if matcher.Match(s.FullName()) || matcher.Match(s.Name) {
			selected = append(selected, s)
		}
	}

	if len(selected) == 0 {
		return nil, fmt.Errorf("%w: %v", errors.ErrNoScenarios, grep)
	}

	return selected, nil
}

// waitForTarget polls the healthcheck and records the application version
func (r *runner) waitForTarget(ctx context.Context, base string, skip bool, report *results.Report) error {
	if skip || !r.cfg.Target.Readiness.Enabled {
		return nil
	}

	started := time.Now()

	r.bus.Publish(bus.Message{Type: bus.EventTargetWaiting, Data: bus.TargetWaiting{URL: base}})

	if err := r.probe.Healthcheck(ctx, base); err != nil {
		r.log.Error().Err(err).Msgf("Target '%s' is not ready", base)
		return err
	}

	version, err := r.probe.Version(ctx, base)
	if err != nil {
		r.log.Warn().Err(err).Msg("Failed to read application version")
	}

	report.Version = version

	r.bus.Publish(bus.Message{
		Type: bus.EventTargetReady,
		Data: bus.TargetReady{URL: base, Version: version, Duration: time.Since(started)},
	})

	return nil
}

// runAll runs scenarios on the worker pool, each result slot written by its own goroutine
func (r *runner) runAll(ctx context.Context, b browser.Browser, base string, selected []*scenario.Scenario, workers int, report *results.Report) {
	pool := worker.New(workers)

	var wg sync.WaitGroup

	for i, s := range selected {
		wg.Add(1)

		go func(i int, s *scenario.Scenario) {
			defer wg.Done()

			if err := pool.Acquire(ctx); err != nil {
				report.Results[i] = results.Skipped(s, ReasonCancelled)
				r.publishSkipped(s, ReasonCancelled)

				return
			}
			defer pool.Release()

			report.Results[i] = r.runScenario(ctx, b, base, s)
		}(i, s)
	}

	wg.Wait()
}

func (r *runner) runScenario(ctx context.Context, b browser.Browser, base string, s *scenario.Scenario) *results.Result {
	log := r.log.WithScenario(s.FullName())
	event := bus.ScenarioEvent{Scenario: s.Name, Group: s.Group}
	started := time.Now()

	result := &results.Result{Name: s.Name, Group: s.Group}

	if err := ctx.Err(); err != nil {
		r.publishSkipped(s, ReasonCancelled)
		return results.Skipped(s, ReasonCancelled)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.bus.Publish(bus.Message{
		Type: bus.EventScenarioStarted,
		Data: bus.ScenarioStarted{ScenarioEvent: event, Steps: len(s.Steps)},
	})

	err := r.withPage(ctx, b, s, func(page browser.Page) error {
		return r.executor.Execute(ctx, page, s, base, func(step scenario.StepResult) {
			r.bus.Publish(bus.Message{
				Type: bus.EventStepDone,
				Data: bus.StepDone{
					ScenarioEvent: event,
					Index:         step.Index,
					Total:         step.Total,
					Action:        string(step.Step.Action),
					Duration:      step.Duration,
				},
			})
		})
	})

	result.Duration = time.Since(started)

	if err != nil {
		result.Status = results.StatusFailed
		result.Failure = results.NewFailure(err)

		log.Error().Err(err).Msg("Scenario failed")
		r.bus.Publish(bus.Message{
			Type: bus.EventScenarioFailed,
			Data: bus.ScenarioFailed{
				ScenarioEvent: event,
				Step:          result.Failure.Step,
				Error:         err,
				Duration:      result.Duration,
			},
			Critical: true,
		})

		return result
	}

	result.Status = results.StatusPassed

	log.Info().Msgf("Scenario passed in %s", result.Duration.Round(time.Millisecond))
	r.bus.Publish(bus.Message{
		Type:     bus.EventScenarioPassed,
		Data:     bus.ScenarioPassed{ScenarioEvent: event, Duration: result.Duration},
		Critical: true,
	})

	return result
}

// withPage acquires a fresh page and releases it whatever the outcome
func (r *runner) withPage(ctx context.Context, b browser.Browser, s *scenario.Scenario, fn func(page browser.Page) error) error {
	page, err := b.NewPage(ctx, browser.PageOptions{Locale: s.Locale})
	if err != nil {
		return err
	}

	defer func() {
		if err := page.Close(); err != nil {
			r.log.Warn().Err(err).Msgf("Failed to close page of '%s'", s.FullName())
		}
	}()

	return fn(page)
}

func (r *runner) skipAll(report *results.Report, selected []*scenario.Scenario, reason string) {
	for i, s := range selected {
		report.Results[i] = results.Skipped(s, reason)
		r.publishSkipped(s, reason)
	}
}

func (r *runner) publishSkipped(s *scenario.Scenario, reason string) {
	r.bus.Publish(bus.Message{
		Type: bus.EventScenarioSkipped,
		Data: bus.ScenarioSkipped{ScenarioEvent: bus.ScenarioEvent{Scenario: s.Name, Group: s.Group}, Reason: reason},
	})
}

func (r *runner) finish(report *results.Report) {
	report.Duration = time.Since(report.Started)
	passed, failed, skipped := report.Counts()

	r.bus.Publish(bus.Message{
		Type:     bus.EventSuiteFinished,
		Data:     bus.SuiteFinished{Passed: passed, Failed: failed, Skipped: skipped, Duration: report.Duration},
		Critical: true,
	})
	r.log.Info().Msgf("Suite finished: %d passed, %d failed, %d skipped", passed, failed, skipped)
}

// watchSignals cancels the run on SIGINT or SIGTERM
func (r *runner) watchSignals(ctx context.Context, cancel context.CancelFunc) func() {
	if len(r.signals) == 0 {
		return func() {}
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, r.signals...)

	done := make(chan struct{})

	go func() {
		select {
		case sig := <-sigChan:
			r.bus.Publish(bus.Message{Type: bus.EventSignal, Data: bus.Signal{Name: sig.String()}, Critical: true})
			r.log.Info().Msgf("Received signal %s, cancelling scenarios...", sig)
			cancel()
		case <-ctx.Done():
		case <-done:
		}
	}()

	return func() {
		signal.Stop(sigChan)
		close(done)
	}
}
