package expect

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/locator"
	"dozzlecheck/internal/config"
)

// Kind classifies why an expectation did not hold
type Kind string

const (
	// KindAssertion means the page answered but never matched
	KindAssertion Kind = "assertion"
	// KindTimeout means the page did not load or an interaction target was never located
	KindTimeout Kind = "timeout"
)

// Failure describes an expectation that did not hold within its timeout
type Failure struct {
	Kind        Kind          `json:"kind"`
	Expectation string        `json:"expectation"`
	Last        string        `json:"last,omitempty"`
	Timeout     time.Duration `json:"timeout"`
	Err         error         `json:"-"`
}

func (f *Failure) Error() string {
	msg := fmt.Sprintf("%s failed after %s", f.Expectation, f.Timeout)

	if f.Last != "" {
		msg += fmt.Sprintf(": last value '%s'", f.Last)
	}

	if f.Err != nil {
		msg += fmt.Sprintf(": %v", f.Err)
	}

	return msg
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Target is the part of a page that expectations observe
type Target interface {
	Title(ctx context.Context) (string, error)
	URL(ctx context.Context) (string, error)
	Visible(ctx context.Context, loc locator.Locator) (bool, error)
}

// Options controls polling
type Options struct {
	Timeout  time.Duration
	Interval time.Duration
}

// Expect runs bounded-wait assertions against a page
type Expect struct {
	opts Options
}

// New creates an Expect, falling back to the default timing for unset values
func New(opts Options) *Expect {
	if opts.Timeout <= 0 {
		opts.Timeout = config.DefaultExpectTimeout
	}

	if opts.Interval <= 0 {
		opts.Interval = config.DefaultExpectInterval
	}

	return &Expect{opts: opts}
}

// NewFromConfig creates an Expect using the configured timing
func NewFromConfig(cfg *config.Config) *Expect {
	return New(Options{Timeout: cfg.Expect.Timeout, Interval: cfg.Expect.Interval})
}

// Compile compiles a title or url pattern
func Compile(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %w", errors.ErrInvalidPattern, pattern, err)
	}

	return re, nil
}

// ToHaveTitle waits until the document title matches pattern
func (e *Expect) ToHaveTitle(ctx context.Context, page Target, pattern string) error {
	re, err := Compile(pattern)
	if err != nil {
		return err
	}

	return e.poll(ctx, fmt.Sprintf("expect title to match /%s/", pattern), func(ctx context.Context) (bool, string, error) {
		title, err := page.Title(ctx)
		return err == nil && re.MatchString(title), title, err
	})
}

// ToHaveURL waits until the page location matches pattern
func (e *Expect) ToHaveURL(ctx context.Context, page Target, pattern string) error {
	re, err := Compile(pattern)
	if err != nil {
		return err
	}

	return e.poll(ctx, fmt.Sprintf("expect url to match /%s/", pattern), func(ctx context.Context) (bool, string, error) {
		location, err := page.URL(ctx)
		return err == nil && re.MatchString(location), location, err
	})
}

// ToBeVisible waits until the located element is rendered
func (e *Expect) ToBeVisible(ctx context.Context, page Target, loc locator.Locator) error {
	return e.poll(ctx, fmt.Sprintf("expect '%s' to be visible", loc), func(ctx context.Context) (bool, string, error) {
		visible, err := page.Visible(ctx, loc)
		if err != nil {
			return false, "", err
		}

		if !visible {
			return false, "hidden", nil
		}

		return true, "visible", nil
	})
}

// Until retries an interaction while the element it needs is missing
func (e *Expect) Until(ctx context.Context, description string, action func(ctx context.Context) error) error {
	var actionErr error

	err := e.pollFor(ctx, description, KindTimeout, func(ctx context.Context) (bool, string, error) {
		actionErr = action(ctx)
		if errors.Is(actionErr, errors.ErrElementNotFound) {
			return false, "", actionErr
		}

		return true, "", nil
	})
	if err != nil {
		return err
	}

	return actionErr
}

type probeFunc func(ctx context.Context) (ok bool, last string, err error)

func (e *Expect) poll(ctx context.Context, expectation string, probe probeFunc) error {
	return e.pollFor(ctx, expectation, KindAssertion, probe)
}

// pollFor retries probe until it holds; missing is the failure kind when the element never appeared
func (e *Expect) pollFor(ctx context.Context, expectation string, missing Kind, probe probeFunc) error {
	probeCtx, cancel := context.WithTimeout(ctx, e.opts.Timeout)
	defer cancel()

	ticker := time.NewTicker(e.opts.Interval)
	defer ticker.Stop()

	var (
		last    string
		lastErr error
		absent  bool
	)

	for {
		ok, observed, err := probe(probeCtx)

		switch {
		case err == nil && ok:
			return nil
		case err == nil:
			last, lastErr, absent = observed, nil, false
		case errors.Is(err, errors.ErrElementNotFound):
			last, lastErr, absent = "not found", nil, true
		case probeCtx.Err() == nil:
			lastErr, absent = err, false
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-probeCtx.Done():
			if err := ctx.Err(); err != nil {
				return err
			}

			kind := KindAssertion
			switch {
			case lastErr != nil:
				kind = KindTimeout
			case absent:
				kind = missing
			}

			return e.failure(kind, expectation, last, lastErr)
		case <-ticker.C:
		}
	}
}

func (e *Expect) failure(kind Kind, expectation, last string, err error) *Failure {
	return &Failure{
		Kind:        kind,
		Expectation: expectation,
		Last:        last,
		Timeout:     e.opts.Timeout,
		Err:         err,
	}
}
