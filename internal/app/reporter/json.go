package reporter

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/results"
	"dozzlecheck/internal/config/logger"
)

type jsonReporter struct {
	path string
	log  logger.Logger
}

// NewJSON creates a reporter writing the report as indented JSON to path
func NewJSON(path string, log logger.Logger) Reporter {
	return &jsonReporter{path: path, log: log}
}

// Report writes the file atomically so readers never see a partial report
func (j *jsonReporter) Report(ctx context.Context, report *results.Report) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteReport, err)
	}

	dir := filepath.Dir(j.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteReport, err)
	}

	tmp, err := os.CreateTemp(dir, ".report-*.json")
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteReport, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteReport, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteReport, err)
	}

	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteReport, err)
	}

	if err := os.Rename(tmp.Name(), j.path); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrFailedToWriteReport, err)
	}

	j.log.Info().Msgf("Report written to '%s'", j.path)

	return nil
}
