package readiness

import (
	"context"
	"net/http"
	"time"

	"dozzlecheck/internal/app/errors"
)

const requestTimeout = 2 * time.Second

// HTTPChecker checks readiness via an HTTP endpoint answering 2xx
type HTTPChecker struct {
	url      string
	timeout  time.Duration
	interval time.Duration
	client   *http.Client
}

// NewHTTPChecker creates a new HTTP readiness checker
func NewHTTPChecker(url string, opts Options) *HTTPChecker {
	return &HTTPChecker{
		url:      url,
		timeout:  opts.Timeout,
		interval: opts.Interval,
		client: &http.Client{
			Timeout: requestTimeout,
		},
	}
}

// URL returns the polled endpoint
func (h *HTTPChecker) URL() string {
	return h.url
}

// Check polls the endpoint until it answers 2xx or the timeout elapses
func (h *HTTPChecker) Check(ctx context.Context) error {
	deadline := time.Now().Add(h.timeout)
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	if h.probe(ctx) {
		return nil
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if time.Now().After(deadline) {
				return errors.ErrReadinessCheckFailed
			}

			if h.probe(ctx) {
				return nil
			}
		}
	}
}

func (h *HTTPChecker) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.url, nil)
	if err != nil {
		return false
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 300
}
