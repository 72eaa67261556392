package browser

import (
	"context"
	"sync"
	"time"

	"github.com/chromedp/chromedp"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/locator"
	"dozzlecheck/internal/config"
)

type page struct {
	ctx        context.Context
	cancel     context.CancelFunc
	navTimeout time.Duration
	closeOnce  sync.Once
}

// run executes actions on the tab, bounded by both the tab lifetime and the caller context
func (p *page) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(p.ctx)
	defer cancel()

	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(runCtx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}

	return err
}

// Goto navigates and waits for the load event
func (p *page) Goto(ctx context.Context, url string) error {
	navCtx, cancel := withTimeout(ctx, p.navTimeout)
	defer cancel()

	return p.run(navCtx, chromedp.Navigate(url))
}

// Title returns the current document title
func (p *page) Title(ctx context.Context) (string, error) {
	var title string
	if err := p.run(ctx, chromedp.Title(&title)); err != nil {
		return "", err
	}

	return title, nil
}

// URL returns the current location, including client-side route changes
func (p *page) URL(ctx context.Context) (string, error) {
	var location string
	if err := p.run(ctx, chromedp.Location(&location)); err != nil {
		return "", err
	}

	return location, nil
}

// Press focuses the element and dispatches the key combination
func (p *page) Press(ctx context.Context, loc locator.Locator, keys string) error {
	combo, err := ParseKeys(keys)
	if err != nil {
		return err
	}

	return p.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		id, err := resolve(ctx, loc)
		if err != nil {
			return err
		}

		var focused bool
		if err := callValue(ctx, id, focus, &focused); err != nil {
			return err
		}

		return combo.Action().Do(ctx)
	}))
}

// Click scrolls the element into view and clicks its centre
func (p *page) Click(ctx context.Context, loc locator.Locator) error {
	return p.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		id, err := resolve(ctx, loc)
		if err != nil {
			return err
		}

		var point []float64
		if err := callValue(ctx, id, clickPoint, &point); err != nil {
			return err
		}

		if len(point) != 2 {
			return errors.ErrElementNotFound
		}

		return chromedp.MouseClickXY(point[0], point[1]).Do(ctx)
	}))
}

// Visible reports whether the element exists, is rendered and has a non-empty box
func (p *page) Visible(ctx context.Context, loc locator.Locator) (bool, error) {
	var visible bool

	err := p.run(ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		id, err := resolve(ctx, loc)
		if err != nil {
			return err
		}

		return callValue(ctx, id, isVisible, &visible)
	}))
	if errors.Is(err, errors.ErrElementNotFound) {
		return false, nil
	}

	return visible, err
}

// Close closes the tab and disposes its browser context
func (p *page) Close() error {
	var err error

	p.closeOnce.Do(func() {
		done := make(chan error, 1)

		go func() {
			done <- chromedp.Cancel(p.ctx)
		}()

		select {
		case err = <-done:
		case <-time.After(config.DefaultPageCloseTimeout):
		}

		p.cancel()
	})

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}

	return context.WithTimeout(ctx, d)
}
