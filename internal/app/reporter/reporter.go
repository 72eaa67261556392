package reporter

import (
	"context"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/results"
	"dozzlecheck/internal/config"
	"dozzlecheck/internal/config/logger"
)

// Reporter publishes a finished suite report
//
//go:generate mockgen -source=reporter.go -destination=reporter_mock.go -package=reporter
type Reporter interface {
	Report(ctx context.Context, report *results.Report) error
}

type multi struct {
	reporters []Reporter
}

// NewReporter builds the reporters enabled in the config; an empty config yields a no-op
func NewReporter(cfg *config.Config, log logger.Logger) (Reporter, error) {
	log = log.WithComponent("REPORTER")
	m := &multi{}

	if cfg.Report.JSON != "" {
		m.reporters = append(m.reporters, NewJSON(cfg.Report.JSON, log))
	}

	if cfg.Report.SentryDSN != "" {
		s, err := NewSentry(cfg.Report.SentryDSN, log)
		if err != nil {
			return nil, err
		}

		m.reporters = append(m.reporters, s)
	}

	return m, nil
}

// Combine fans a report out to several reporters
func Combine(reporters ...Reporter) Reporter {
	return &multi{reporters: reporters}
}

// Report runs every reporter and joins their errors
func (m *multi) Report(ctx context.Context, report *results.Report) error {
	var errs []error

	for _, r := range m.reporters {
		if r == nil {
			continue
		}

		if err := r.Report(ctx, report); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
