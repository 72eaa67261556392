package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"dozzlecheck/internal/app"
	"dozzlecheck/internal/app/cli"
	"dozzlecheck/internal/app/ui"
	"dozzlecheck/internal/config"
	"dozzlecheck/internal/config/logger"
)

// main is the entry point for the application
func main() {
	runApp()
}

// runApp contains the main application logic
func runApp() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitFailed)
	}

	args := os.Args[1:]
	application := createApp(cfg, args, isRunCommand(args) && ui.Enabled(hasNoUIFlag(args)))
	application.Run()
}

// hasNoUIFlag checks if --no-ui flag is present in args
func hasNoUIFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--no-ui" || arg == "--no-ui=true" {
			return true
		}
	}

	return false
}

// isRunCommand reports whether the first positional argument selects the run command
func isRunCommand(args []string) bool {
	for _, arg := range args {
		if strings.HasPrefix(arg, "-") {
			continue
		}

		return arg == "run" || arg == "r"
	}

	return false
}

// loadConfig wraps config.Load for easier testing
func loadConfig() (*config.Config, error) {
	return config.Load(config.Path())
}

// createApp creates the FX application, silencing the logger while the terminal UI owns the screen
func createApp(cfg *config.Config, args []string, uiActive bool) *fx.App {
	options := []fx.Option{
		fx.WithLogger(createFxLogger(cfg)),
		fx.Supply(cfg, cli.Args(args)),
		logger.Module,
		app.Module,
	}

	if uiActive {
		options = append(options, fx.Decorate(func() logger.Logger {
			return logger.NewLoggerWithOutput(cfg, io.Discard)
		}))
	}

	return fx.New(options...)
}

// createFxLogger returns an FX logger based on the config
func createFxLogger(cfg *config.Config) func() fxevent.Logger {
	return func() fxevent.Logger {
		if cfg.Logging.Level == logger.DebugLevel {
			return &fxevent.ConsoleLogger{W: os.Stderr}
		}

		return fxevent.NopLogger
	}
}
