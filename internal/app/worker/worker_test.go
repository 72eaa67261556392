package worker

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dozzlecheck/internal/config"
)

func Test_NewWorkerPool(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Concurrency.Workers = 5

	assert.Equal(t, 5, NewWorkerPool(cfg).Size())
	assert.Equal(t, config.MaxWorkers, New(0).Size())
	assert.Equal(t, config.MaxWorkers, New(-2).Size())
}

func Test_AcquireRelease(t *testing.T) {
	ctx := context.Background()
	worker := New(config.MaxWorkers)

	for i := 0; i < worker.Size(); i++ {
		require.NoError(t, worker.Acquire(ctx))
	}

	done := make(chan struct{})

	go func() {
		if err := worker.Acquire(ctx); err == nil {
			close(done)
		}
	}()

	select {
	case <-done:
		t.Fatal("Should not have acquired extra worker slot immediately")
	case <-time.After(50 * time.Millisecond):
	}

	worker.Release()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Should have acquired worker slot after release")
	}

	for i := 0; i < worker.Size(); i++ {
		worker.Release()
	}
}

func Test_ConcurrentWorkers(t *testing.T) {
	ctx := context.Background()
	worker := New(2)

	var (
		active    int
		maxActive int
		mu        sync.Mutex
		wg        sync.WaitGroup
	)

	for i := 0; i < 6; i++ {
		wg.Add(1)

		go func() {
			defer wg.Done()

			if err := worker.Acquire(ctx); err != nil {
				return
			}
			defer worker.Release()

			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			time.Sleep(10 * time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}

	wg.Wait()

	assert.Equal(t, 0, active)
	assert.LessOrEqual(t, maxActive, 2)
	assert.Greater(t, maxActive, 0)
}

func Test_AcquireContextCancelled(t *testing.T) {
	worker := New(1)
	require.NoError(t, worker.Acquire(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)

	go func() {
		done <- worker.Acquire(ctx)
	}()

	cancel()

	select {
	case err := <-done:
		assert.Equal(t, context.Canceled, err)
	case <-time.After(time.Second):
		t.Fatal("Should have received context cancellation error")
	}

	worker.Release()
}

func Test_AcquireAlreadyCancelled(t *testing.T) {
	worker := New(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, worker.Acquire(ctx), context.Canceled)
}
