//go:generate mockgen -source=cli.go -destination=cli_mock.go -package=cli
package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/fx"

	"dozzlecheck/internal/app/bus"
	"dozzlecheck/internal/app/discovery"
	"dozzlecheck/internal/app/generator"
	"dozzlecheck/internal/app/reporter"
	"dozzlecheck/internal/app/runner"
	"dozzlecheck/internal/app/ui"
	"dozzlecheck/internal/app/watcher"
	"dozzlecheck/internal/config"
	"dozzlecheck/internal/config/logger"
)

// Exit codes
const (
	ExitOK     = 0
	ExitFailed = 1
)

// CLI defines the interface for cli operations
type CLI interface {
	Execute() (int, error)
}

// Args holds the command-line arguments without the program name
type Args []string

// Params contains the dependencies of the cli
type Params struct {
	fx.In

	Args      Args
	Config    *config.Config
	Runner    runner.Runner
	Reporter  reporter.Reporter
	UI        ui.UI
	Bus       bus.Bus
	Discovery discovery.Discovery
	Generator generator.Generator
	Watcher   watcher.Watcher
	Logger    logger.Logger
}

// cli represents the command-line interface for the application
type cli struct {
	args      []string
	cfg       *config.Config
	runner    runner.Runner
	reporter  reporter.Reporter
	ui        ui.UI
	bus       bus.Bus
	discovery discovery.Discovery
	generator generator.Generator
	watcher   watcher.Watcher
	log       logger.Logger
	out       io.Writer
	errOut    io.Writer
	exitCode  int
}

// NewCLI creates a new cli instance
func NewCLI(p Params) CLI {
	return &cli{
		args:      p.Args,
		cfg:       p.Config,
		runner:    p.Runner,
		reporter:  p.Reporter,
		ui:        p.UI,
		bus:       p.Bus,
		discovery: p.Discovery,
		generator: p.Generator,
		watcher:   p.Watcher,
		log:       p.Logger.WithComponent("CLI"),
		out:       os.Stdout,
		errOut:    os.Stderr,
	}
}

// Execute parses the arguments, runs the selected command and returns the process exit code
func (c *cli) Execute() (int, error) {
	c.exitCode = ExitOK

	root := c.buildRootCommand()
	root.SetArgs(c.args)
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	if err := root.ExecuteContext(context.Background()); err != nil {
		c.log.Debug().Err(err).Msg("Command failed")
		fmt.Fprintf(c.errOut, "%s %v\n", errorLabel.Render("Error:"), err)

		if c.exitCode == ExitOK {
			c.exitCode = ExitFailed
		}

		return c.exitCode, err
	}

	return c.exitCode, nil
}

// handleVersion prints the version block
func (c *cli) handleVersion() {
	fmt.Fprintln(c.out, RenderTitle())
}
