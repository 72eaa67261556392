package readiness

import (
	"context"
	"time"
)

// Checker waits until something becomes ready
//
//go:generate mockgen -source=readiness.go -destination=readiness_mock.go -package=readiness
type Checker interface {
	Check(ctx context.Context) error
}

// NoOp returns a checker that is always ready, used when readiness is disabled
func NoOp() Checker {
	return noOpChecker{}
}

type noOpChecker struct{}

func (noOpChecker) Check(ctx context.Context) error {
	return ctx.Err()
}

// Options tunes polling of an HTTP endpoint
type Options struct {
	Timeout  time.Duration
	Interval time.Duration
}
