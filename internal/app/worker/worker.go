package worker

import (
	"context"

	"dozzlecheck/internal/config"
)

// Pool bounds how many scenarios run at the same time
type Pool interface {
	Acquire(ctx context.Context) error
	Release()
	Size() int
}

// pool implements the Pool interface
type pool struct {
	sem chan struct{}
}

// NewWorkerPool creates a pool sized from the concurrency config
func NewWorkerPool(cfg *config.Config) Pool {
	return New(cfg.Concurrency.Workers)
}

// New creates a pool with the given number of slots, falling back to the default when not positive
func New(size int) Pool {
	if size <= 0 {
		size = config.MaxWorkers
	}

	return &pool{
		sem: make(chan struct{}, size),
	}
}

// Acquire acquires a worker slot, blocking if all workers are busy or returning error if context is cancelled
func (w *pool) Acquire(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	select {
	case w.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release releases a worker slot
func (w *pool) Release() {
	<-w.sem
}

// Size returns the number of slots in the pool
func (w *pool) Size() int {
	return cap(w.sem)
}
