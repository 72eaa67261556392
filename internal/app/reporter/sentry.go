package reporter

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/results"
	"dozzlecheck/internal/config"
	"dozzlecheck/internal/config/logger"
)

const sentryFlushTimeout = 5 * time.Second

type sentryReporter struct {
	hub *sentry.Hub
	log logger.Logger
}

// NewSentry creates a reporter capturing each failed scenario as a Sentry event
func NewSentry(dsn string, log logger.Logger) (Reporter, error) {
	return newSentry(sentry.ClientOptions{
		Dsn:     dsn,
		Release: config.AppName + "@" + config.Version,
	}, log)
}

func newSentry(opts sentry.ClientOptions, log logger.Logger) (*sentryReporter, error) {
	client, err := sentry.NewClient(opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errors.ErrFailedToSendReport, err)
	}

	return &sentryReporter{
		hub: sentry.NewHub(client, sentry.NewScope()),
		log: log,
	}, nil
}

// Report captures failures and flushes before returning
func (s *sentryReporter) Report(ctx context.Context, report *results.Report) error {
	captured := 0

	for _, res := range report.Results {
		if res.Status != results.StatusFailed || res.Failure == nil {
			continue
		}

		s.capture(report, res)
		captured++
	}

	if captured == 0 {
		return nil
	}

	timeout := sentryFlushTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}

	if !s.hub.Flush(timeout) {
		return fmt.Errorf("%w: flush timed out after %s", errors.ErrFailedToSendReport, timeout)
	}

	s.log.Info().Msgf("Sent %d failures to Sentry", captured)

	return nil
}

func (s *sentryReporter) capture(report *results.Report, res *results.Result) {
	s.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("scenario", res.Name)
		scope.SetTag("failure_kind", string(res.Failure.Kind))

		if res.Group != "" {
			scope.SetTag("group", res.Group)
		}

		if report.Version != "" {
			scope.SetTag("target_version", report.Version)
		}

		scope.SetContext("scenario", sentry.Context{
			"name":        res.FullName(),
			"step":        res.Failure.Step,
			"action":      res.Failure.Action,
			"expectation": res.Failure.Expectation,
			"last":        res.Failure.Last,
			"duration":    res.Duration.String(),
			"target":      report.Target,
		})
		scope.SetFingerprint([]string{"dozzlecheck", res.FullName(), string(res.Failure.Kind)})

		err := res.Failure.Err
		if err == nil {
			err = errors.New(res.Failure.Message)
		}

		s.hub.CaptureException(err)
	})
}
