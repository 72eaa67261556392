package expect

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/locator"
	"dozzlecheck/internal/config"
)

type fakePage struct {
	calls   atomic.Int32
	titles  []string
	url     string
	visible func(n int) (bool, error)
	err     error
}

func (f *fakePage) next() int {
	return int(f.calls.Add(1))
}

func (f *fakePage) Title(ctx context.Context) (string, error) {
	n := f.next()

	if f.err != nil {
		return "", f.err
	}

	if n > len(f.titles) {
		return f.titles[len(f.titles)-1], nil
	}

	return f.titles[n-1], nil
}

func (f *fakePage) URL(ctx context.Context) (string, error) {
	f.next()
	return f.url, f.err
}

func (f *fakePage) Visible(ctx context.Context, loc locator.Locator) (bool, error) {
	return f.visible(f.next())
}

func fast() *Expect {
	return New(Options{Timeout: 150 * time.Millisecond, Interval: 10 * time.Millisecond})
}

func Test_New_Defaults(t *testing.T) {
	e := New(Options{})

	assert.Equal(t, config.DefaultExpectTimeout, e.opts.Timeout)
	assert.Equal(t, config.DefaultExpectInterval, e.opts.Interval)

	cfg := config.DefaultConfig()
	cfg.Expect.Timeout = time.Second
	assert.Equal(t, time.Second, NewFromConfig(cfg).opts.Timeout)
}

func Test_ToHaveTitle(t *testing.T) {
	t.Run("matches after a few polls", func(t *testing.T) {
		page := &fakePage{titles: []string{"", "Loading", "dozzle - Dozzle"}}

		require.NoError(t, fast().ToHaveTitle(context.Background(), page, ".* - Dozzle"))
		assert.Equal(t, int32(3), page.calls.Load())
	})

	t.Run("reports last observed title", func(t *testing.T) {
		page := &fakePage{titles: []string{"Something else"}}

		err := fast().ToHaveTitle(context.Background(), page, ".* - Dozzle")

		var failure *Failure
		require.True(t, errors.As(err, &failure))
		assert.Equal(t, KindAssertion, failure.Kind)
		assert.Equal(t, "Something else", failure.Last)
		assert.Contains(t, failure.Error(), ".* - Dozzle")
		assert.Greater(t, page.calls.Load(), int32(1))
	})

	t.Run("invalid pattern", func(t *testing.T) {
		err := fast().ToHaveTitle(context.Background(), &fakePage{titles: []string{""}}, "(")
		assert.ErrorIs(t, err, errors.ErrInvalidPattern)
	})

	t.Run("driver errors until timeout", func(t *testing.T) {
		boom := fmt.Errorf("websocket closed")
		page := &fakePage{err: boom}

		err := fast().ToHaveTitle(context.Background(), page, "x")

		var failure *Failure
		require.True(t, errors.As(err, &failure))
		assert.Equal(t, KindTimeout, failure.Kind)
		assert.ErrorIs(t, err, boom)
	})
}

func Test_ToHaveURL(t *testing.T) {
	page := &fakePage{url: "http://dozzle:8080/container/abc123"}

	assert.NoError(t, fast().ToHaveURL(context.Background(), page, "/container"))

	err := fast().ToHaveURL(context.Background(), page, "/settings")

	var failure *Failure
	require.True(t, errors.As(err, &failure))
	assert.Equal(t, "http://dozzle:8080/container/abc123", failure.Last)
}

func Test_ToBeVisible(t *testing.T) {
	loc := locator.MustParse(`role=heading[name="About"]`)

	t.Run("not found is retried", func(t *testing.T) {
		page := &fakePage{visible: func(n int) (bool, error) {
			if n < 3 {
				return false, errors.ErrElementNotFound
			}

			return true, nil
		}}

		assert.NoError(t, fast().ToBeVisible(context.Background(), page, loc))
	})

	t.Run("hidden until timeout", func(t *testing.T) {
		page := &fakePage{visible: func(int) (bool, error) { return false, nil }}

		err := fast().ToBeVisible(context.Background(), page, loc)

		var failure *Failure
		require.True(t, errors.As(err, &failure))
		assert.Equal(t, KindAssertion, failure.Kind)
		assert.Equal(t, "hidden", failure.Last)
		assert.Contains(t, failure.Expectation, `role=heading[name="About"]`)
	})

	t.Run("missing until timeout", func(t *testing.T) {
		page := &fakePage{visible: func(int) (bool, error) { return false, errors.ErrElementNotFound }}

		err := fast().ToBeVisible(context.Background(), page, loc)

		var failure *Failure
		require.True(t, errors.As(err, &failure))
		assert.Equal(t, KindAssertion, failure.Kind)
		assert.Equal(t, "not found", failure.Last)
	})
}

func Test_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	page := &fakePage{visible: func(n int) (bool, error) {
		if n == 2 {
			cancel()
		}

		return false, nil
	}}

	e := New(Options{Timeout: time.Minute, Interval: 5 * time.Millisecond})
	err := e.ToBeVisible(ctx, page, locator.MustParse("css=body"))

	assert.ErrorIs(t, err, context.Canceled)

	var failure *Failure
	assert.False(t, errors.As(err, &failure))
}

func Test_Until(t *testing.T) {
	t.Run("retries while missing", func(t *testing.T) {
		calls := 0
		err := fast().Until(context.Background(), "click", func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errors.ErrElementNotFound
			}

			return nil
		})

		assert.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("other errors are returned at once", func(t *testing.T) {
		boom := fmt.Errorf("node detached")
		calls := 0

		err := fast().Until(context.Background(), "click", func(ctx context.Context) error {
			calls++
			return boom
		})

		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)
	})

	t.Run("missing until timeout", func(t *testing.T) {
		err := fast().Until(context.Background(), "click 'role=link'", func(ctx context.Context) error {
			return errors.ErrElementNotFound
		})

		var failure *Failure
		require.True(t, errors.As(err, &failure))
		assert.Equal(t, "click 'role=link'", failure.Expectation)
		assert.Equal(t, "not found", failure.Last)
		assert.Equal(t, KindTimeout, failure.Kind)
	})
}
