package results

import (
	"context"
	"time"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/expect"
	"dozzlecheck/internal/app/monitor"
	"dozzlecheck/internal/app/scenario"
)

// Status is the outcome of a scenario
type Status string

const (
	StatusPassed  Status = "passed"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Kind classifies a failure
type Kind string

const (
	KindAssertion Kind = Kind(expect.KindAssertion)
	KindTimeout   Kind = Kind(expect.KindTimeout)
	KindCancelled Kind = "cancelled"
)

// Failure describes why a scenario failed
type Failure struct {
	Kind        Kind   `json:"kind"`
	Step        int    `json:"step,omitempty"`
	Action      string `json:"action,omitempty"`
	Expectation string `json:"expectation,omitempty"`
	Last        string `json:"last,omitempty"`
	Message     string `json:"message"`
	Err         error  `json:"-"`
}

// NewFailure classifies a scenario error. Anything but an unmet expectation or a user
// cancellation means the page failed to load or an interaction never completed
func NewFailure(err error) *Failure {
	if err == nil {
		return nil
	}

	f := &Failure{
		Kind:    KindTimeout,
		Message: err.Error(),
		Err:     err,
	}

	var stepErr *scenario.StepError
	if errors.As(err, &stepErr) {
		f.Step = stepErr.Index
		f.Action = string(stepErr.Step.Action)
	}

	var expectation *expect.Failure
	switch {
	case errors.As(err, &expectation):
		f.Kind = Kind(expectation.Kind)
		f.Expectation = expectation.Expectation
		f.Last = expectation.Last
	case errors.Is(err, context.Canceled):
		f.Kind = KindCancelled
	}

	return f
}

// Result is the outcome of one scenario
type Result struct {
	Name     string        `json:"name"`
	Group    string        `json:"group,omitempty"`
	Status   Status        `json:"status"`
	Failure  *Failure      `json:"failure,omitempty"`
	Reason   string        `json:"reason,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// FullName joins group and name
func (r *Result) FullName() string {
	if r.Group == "" {
		return r.Name
	}

	return r.Group + " › " + r.Name
}

// Skipped creates the placeholder result of a scenario that has not run
func Skipped(s *scenario.Scenario, reason string) *Result {
	return &Result{
		Name:   s.Name,
		Group:  s.Group,
		Status: StatusSkipped,
		Reason: reason,
	}
}

// Report is the outcome of a suite run
type Report struct {
	Target   string         `json:"target"`
	Version  string         `json:"version,omitempty"`
	Started  time.Time      `json:"started"`
	Duration time.Duration  `json:"duration_ns"`
	Results  []*Result      `json:"results"`
	Browser  *monitor.Stats `json:"browser,omitempty"`
}

// Counts returns how many scenarios passed, failed and were skipped
func (r *Report) Counts() (passed, failed, skipped int) {
	for _, res := range r.Results {
		switch res.Status {
		case StatusPassed:
			passed++
		case StatusFailed:
			failed++
		default:
			skipped++
		}
	}

	return passed, failed, skipped
}

// Passed reports whether every selected scenario passed
func (r *Report) Passed() bool {
	if len(r.Results) == 0 {
		return false
	}

	passed, _, _ := r.Counts()

	return passed == len(r.Results)
}
