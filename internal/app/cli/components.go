package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"dozzlecheck/internal/app/bus"
	"dozzlecheck/internal/app/errors"
	"dozzlecheck/internal/app/generator"
	"dozzlecheck/internal/app/registry"
)

// handleGenerate writes, prints or verifies the declaration file
func (c *cli) handleGenerate(opts generateOptions) error {
	reg, err := c.registry(opts.builtin)
	if err != nil {
		return err
	}

	result, err := c.generator.Generate(reg, generator.Options{
		Output: c.cfg.Components.Output,
		Force:  opts.force,
		DryRun: opts.dryRun,
		Check:  opts.check,
	})
	if err != nil {
		return err
	}

	switch {
	case opts.dryRun:
	case opts.check:
		fmt.Fprintf(c.out, "%s %s is up to date (%d components)\n", successLabel.Render("✓"), result.Path, result.Components)
	case result.Changed:
		fmt.Fprintf(c.out, "%s wrote %s (%d components)\n", successLabel.Render("✓"), result.Path, result.Components)
	default:
		fmt.Fprintf(c.out, "%s %s unchanged (%d components)\n", mutedText.Render("-"), result.Path, result.Components)
	}

	return nil
}

// handleWatch regenerates the declaration once and then on every settled change until interrupted
func (c *cli) handleWatch(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := c.regenerate(nil); err != nil {
		return err
	}

	dir := c.cfg.Components.Dir
	fmt.Fprintf(c.out, "%s watching %s, press ctrl+c to stop\n", mutedText.Render("…"), dir)

	return c.watcher.Watch(ctx, dir, c.discovery.Matcher(), func(files []string) {
		if err := c.regenerate(files); err != nil {
			c.log.Error().Err(err).Msg("Failed to regenerate declaration")
			fmt.Fprintf(c.errOut, "%s %v\n", errorLabel.Render("Error:"), err)
		}
	})
}

// regenerate scans the sources and rewrites the declaration when it changed
func (c *cli) regenerate(files []string) error {
	reg, err := c.discovery.Scan(c.cfg.Components.Dir)
	if err != nil {
		return err
	}

	result, err := c.generator.Generate(reg, generator.Options{Output: c.cfg.Components.Output})
	if err != nil {
		return err
	}

	c.bus.Publish(bus.Message{
		Type: bus.EventDeclarationWritten,
		Data: bus.DeclarationWritten{Path: result.Path, Components: result.Components, Changed: result.Changed},
	})

	if result.Changed {
		fmt.Fprintf(c.out, "%s wrote %s (%d components, %d files changed)\n", successLabel.Render("✓"), result.Path, result.Components, len(files))
	}

	return nil
}

// handleList prints the registry as a table
func (c *cli) handleList(builtin bool) error {
	reg, err := c.registry(builtin)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out, RenderRegistry(reg))

	return nil
}

// registry returns the builtin registry or scans the configured sources
func (c *cli) registry(builtin bool) (registry.Registry, error) {
	if builtin {
		return registry.Builtin(), nil
	}

	reg, err := c.discovery.Scan(c.cfg.Components.Dir)
	if err != nil {
		if errors.Is(err, errors.ErrComponentsDirNotExist) {
			return nil, fmt.Errorf("%w, set components.dir or pass --builtin", err)
		}

		return nil, err
	}

	return reg, nil
}

// RenderRegistry renders the components as a name/kind/path table
func RenderRegistry(reg registry.Registry) string {
	rows := make([][]string, 0, reg.Len())

	for _, comp := range reg.Components() {
		kind := "component"
		if comp.IsIcon() {
			kind = "icon"
		}

		rows = append(rows, []string{comp.Name, kind, comp.Path})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(tableBorder).
		Headers("NAME", "KIND", "PATH").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return tableHeader
			}

			if col == 0 {
				return tableName
			}

			return tableCell
		})

	return t.Render() + "\n" + mutedText.Render(fmt.Sprintf("%d components", reg.Len()))
}
