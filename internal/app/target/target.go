package target

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/readiness"
	"dozzlecheck/internal/config"
	"dozzlecheck/internal/config/logger"
)

const maxVersionBody = 4096

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Probe talks to the application under test outside the browser
//
//go:generate mockgen -source=target.go -destination=target_mock.go -package=target
type Probe interface {
	Healthcheck(ctx context.Context, base string) error
	Version(ctx context.Context, base string) (string, error)
}

type probe struct {
	opts   readiness.Options
	client *http.Client
	log    logger.Logger
}

// NewProbe creates a probe using the configured readiness timing
func NewProbe(cfg *config.Config, log logger.Logger) Probe {
	return &probe{
		opts: readiness.Options{
			Timeout:  cfg.Target.Readiness.Timeout,
			Interval: cfg.Target.Readiness.Interval,
		},
		client: &http.Client{Timeout: 5 * time.Second},
		log:    log.WithComponent("TARGET"),
	}
}

// Healthcheck polls the healthcheck route until it answers 2xx
func (p *probe) Healthcheck(ctx context.Context, base string) error {
	endpoint, err := Endpoint(base, config.HealthcheckPath)
	if err != nil {
		return err
	}

	checker := readiness.NewHTTPChecker(endpoint, p.opts)

	p.log.Debug().Msgf("Waiting for '%s'", endpoint)

	if err := checker.Check(ctx); err != nil {
		return fmt.Errorf("%w: %s", err, endpoint)
	}

	return nil
}

// Version reads the version route and strips its markup
func (p *probe) Version(ctx context.Context, base string) (string, error) {
	endpoint, err := Endpoint(base, config.VersionPath)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: %d from %s", errors.ErrUnexpectedStatus, resp.StatusCode, endpoint)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxVersionBody))
	if err != nil {
		return "", err
	}

	return ParseVersion(string(body)), nil
}

// Endpoint joins a route onto the base URL, keeping any base path prefix
func Endpoint(base, route string) (string, error) {
	u, err := url.Parse(base)
	if err != nil || u.Host == "" {
		return "", fmt.Errorf("%w: '%s'", errors.ErrInvalidTargetURL, base)
	}

	return u.JoinPath(route).String(), nil
}

// ParseVersion extracts the plain version from a '<pre>v1.2.3</pre>' body
func ParseVersion(body string) string {
	return strings.TrimSpace(html.UnescapeString(tagPattern.ReplaceAllString(body, "")))
}
