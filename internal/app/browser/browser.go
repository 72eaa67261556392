package browser

import (
	"context"
	"fmt"
	"sync"

	cdpbrowser "github.com/chromedp/cdproto/browser"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"

	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/lifecycle"
	"dozzlecheck/internal/app/locator"
	"dozzlecheck/internal/app/monitor"
	"dozzlecheck/internal/config"
	"dozzlecheck/internal/config/logger"
)

// PageOptions configures a new page
type PageOptions struct {
	Locale string
}

// Launcher starts or connects to a browser
//
//go:generate mockgen -source=browser.go -destination=browser_mock.go -package=browser
type Launcher interface {
	Launch(ctx context.Context) (Browser, error)
}

// Browser owns a browser process shared by every page of a run
type Browser interface {
	NewPage(ctx context.Context, opts PageOptions) (Page, error)
	Stats(ctx context.Context) (monitor.Stats, error)
	Close() error
}

// Page is a single tab in its own browser context
type Page interface {
	Goto(ctx context.Context, url string) error
	Title(ctx context.Context) (string, error)
	URL(ctx context.Context) (string, error)
	Press(ctx context.Context, loc locator.Locator, keys string) error
	Click(ctx context.Context, loc locator.Locator) error
	Visible(ctx context.Context, loc locator.Locator) (bool, error)
	Close() error
}

type launcher struct {
	cfg       *config.Config
	monitor   monitor.Monitor
	lifecycle lifecycle.Lifecycle
	log       logger.Logger
}

// NewLauncher creates a launcher from the browser config
func NewLauncher(cfg *config.Config, mon monitor.Monitor, lc lifecycle.Lifecycle, log logger.Logger) Launcher {
	return &launcher{
		cfg:       cfg,
		monitor:   mon,
		lifecycle: lc,
		log:       log.WithComponent("BROWSER"),
	}
}

type chromeBrowser struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	cfg         *config.Config
	monitor     monitor.Monitor
	lifecycle   lifecycle.Lifecycle
	local       bool
	log         logger.Logger
	closeOnce   sync.Once
}

// Launch starts a local Chromium, or attaches to remote_url when set, and waits for it to answer
func (l *launcher) Launch(ctx context.Context) (Browser, error) {
	var (
		allocCtx    context.Context
		allocCancel context.CancelFunc
	)

	if l.cfg.Browser.RemoteURL != "" {
		l.log.Info().Msgf("Connecting to browser at '%s'", l.cfg.Browser.RemoteURL)
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(context.WithoutCancel(ctx), l.cfg.Browser.RemoteURL)
	} else {
		allocCtx, allocCancel = chromedp.NewExecAllocator(context.WithoutCancel(ctx), l.allocatorOptions()...)
	}

	browserCtx, cancel := chromedp.NewContext(allocCtx)

	b := &chromeBrowser{
		ctx:         browserCtx,
		cancel:      cancel,
		allocCancel: allocCancel,
		cfg:         l.cfg,
		monitor:     l.monitor,
		lifecycle:   l.lifecycle,
		local:       l.cfg.Browser.RemoteURL == "",
		log:         l.log,
	}

	if err := chromedp.Run(browserCtx); err != nil {
		b.Close()
		return nil, fmt.Errorf("%w: %w", errors.ErrBrowserNotReady, err)
	}

	if err := ctx.Err(); err != nil {
		b.Close()
		return nil, err
	}

	l.log.Debug().Msgf("Browser started (pid: %d)", b.pid())

	return b, nil
}

func (l *launcher) allocatorOptions() []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	opts = append(opts,
		chromedp.Flag("headless", l.cfg.Browser.Headless),
		chromedp.Flag(config.BrowserMarkerFlag, true),
		chromedp.WindowSize(l.cfg.Browser.Width, l.cfg.Browser.Height),
		chromedp.ModifyCmdFunc(l.lifecycle.Configure),
	)

	if l.cfg.Browser.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(l.cfg.Browser.ExecPath))
	}

	return opts
}

// NewPage opens a tab in a fresh browser context so pages never share cookies or storage
func (b *chromeBrowser) NewPage(ctx context.Context, opts PageOptions) (Page, error) {
	if err := b.ctx.Err(); err != nil {
		return nil, errors.ErrBrowserNotReady
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tabCtx, cancel := chromedp.NewContext(b.ctx, chromedp.WithNewBrowserContext())
	p := &page{
		ctx:        tabCtx,
		cancel:     cancel,
		navTimeout: b.cfg.Expect.NavigationTimeout,
	}

	setup := []chromedp.Action{}
	if opts.Locale != "" {
		setup = append(setup, chromedp.ActionFunc(func(ctx context.Context) error {
			return overrideLocale(ctx, opts.Locale)
		}))
	}

	// The first run allocates the tab and must use the tab context itself
	if err := chromedp.Run(tabCtx, setup...); err != nil {
		p.Close()
		return nil, fmt.Errorf("%w: %w", errors.ErrPageCreateFailed, err)
	}

	return p, nil
}

// overrideLocale forces navigator.language(s), the Accept-Language header and the ICU locale
func overrideLocale(ctx context.Context, locale string) error {
	_, _, _, userAgent, _, err := cdpbrowser.GetVersion().Do(ctx)
	if err != nil {
		return err
	}

	if err := emulation.SetUserAgentOverride(userAgent).WithAcceptLanguage(locale).Do(ctx); err != nil {
		return err
	}

	return emulation.SetLocaleOverride().WithLocale(locale).Do(ctx)
}

// Stats samples the browser process tree
func (b *chromeBrowser) Stats(ctx context.Context) (monitor.Stats, error) {
	pid := b.pid()
	if pid == 0 {
		return monitor.Stats{}, nil
	}

	return b.monitor.GetTreeStats(ctx, pid)
}

func (b *chromeBrowser) pid() int {
	c := chromedp.FromContext(b.ctx)
	if c == nil || c.Browser == nil {
		return 0
	}

	if proc := c.Browser.Process(); proc != nil {
		return proc.Pid
	}

	return 0
}

// Close shuts the browser down, waiting a bounded time for a graceful exit, then reaps its process group
func (b *chromeBrowser) Close() error {
	var err error

	b.closeOnce.Do(func() {
		pid := 0
		if b.local {
			pid = b.pid()
		}

		ctx, cancel := context.WithTimeout(context.Background(), config.DefaultBrowserStopTimeout)
		defer cancel()

		done := make(chan error, 1)

		go func() {
			done <- chromedp.Cancel(b.ctx)
		}()

		select {
		case err = <-done:
		case <-ctx.Done():
			b.log.Warn().Msg("Browser did not stop in time")
		}

		b.cancel()
		b.allocCancel()

		if termErr := b.lifecycle.Terminate(pid, config.BrowserGroupStopTimeout); termErr != nil {
			b.log.Warn().Err(termErr).Msg("Failed to reap browser processes")
		}
	})

	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}
