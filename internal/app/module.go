package app

import (
	"go.uber.org/fx"

	"dozzlecheck/internal/app/browser"
	"dozzlecheck/internal/app/bus"
	"dozzlecheck/internal/app/cli"
	"dozzlecheck/internal/app/discovery"
	"dozzlecheck/internal/app/generator"
	"dozzlecheck/internal/app/lifecycle"
	"dozzlecheck/internal/app/monitor"
	"dozzlecheck/internal/app/preflight"
	"dozzlecheck/internal/app/reporter"
	"dozzlecheck/internal/app/runner"
	"dozzlecheck/internal/app/scenario"
	"dozzlecheck/internal/app/target"
	"dozzlecheck/internal/app/ui"
	"dozzlecheck/internal/app/watcher"
)

var Module = fx.Options(
	bus.Module,
	monitor.Module,
	preflight.Module,
	target.Module,
	lifecycle.Module,
	browser.Module,
	scenario.Module,
	runner.Module,
	reporter.Module,
	discovery.Module,
	generator.Module,
	watcher.Module,
	ui.Module,
	cli.Module,
	fx.Provide(NewApp),
	fx.Invoke(Register),
)
