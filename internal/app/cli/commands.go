package cli

import (
	"github.com/spf13/cobra"

	"dozzlecheck/internal/config"
)

// runOptions holds flag values of the run command
type runOptions struct {
	grep        []string
	workers     int
	url         string
	locale      string
	noReadiness bool
	noUI        bool
}

// generateOptions holds flag values of the components generate command
type generateOptions struct {
	force   bool
	dryRun  bool
	check   bool
	builtin bool
}

// buildRootCommand creates the root cobra command with every subcommand attached
func (c *cli) buildRootCommand() *cobra.Command {
	var noUI bool

	cmd := &cobra.Command{
		Use:           config.AppName,
		Short:         "Acceptance checks and component declarations for Dozzle",
		Long:          RenderTitle(),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().BoolVar(&noUI, "no-ui", false, "Print plain lines instead of the live view")

	cmd.AddCommand(
		c.buildRunCommand(&noUI),
		c.buildComponentsCommand(),
		c.buildScenariosCommand(),
		c.buildVersionCommand(),
	)

	return cmd
}

// buildRunCommand creates the run subcommand
func (c *cli) buildRunCommand(noUI *bool) *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:     "run",
		Aliases: []string{"r"},
		Short:   "Run the acceptance scenarios against a Dozzle instance",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.noUI = *noUI
			return c.handleRun(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.grep, "grep", "g", nil, "Only run scenarios whose name matches the glob (repeatable)")
	cmd.Flags().IntVarP(&opts.workers, "workers", "w", 0, "Number of scenarios run at once")
	cmd.Flags().StringVarP(&opts.url, "url", "u", "", "Base URL of the Dozzle instance")
	cmd.Flags().StringVarP(&opts.locale, "locale", "l", "", "Browser locale for scenarios that do not force one")
	cmd.Flags().BoolVar(&opts.noReadiness, "no-readiness", false, "Skip the healthcheck wait")

	return cmd
}

// buildComponentsCommand creates the components subcommand tree
func (c *cli) buildComponentsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "components",
		Aliases: []string{"c"},
		Short:   "Maintain the component declaration file",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(
		c.buildGenerateCommand(),
		c.buildWatchCommand(),
		c.buildListCommand(),
	)

	return cmd
}

// buildGenerateCommand creates the components generate subcommand
func (c *cli) buildGenerateCommand() *cobra.Command {
	var opts generateOptions

	cmd := &cobra.Command{
		Use:     "generate",
		Aliases: []string{"g"},
		Short:   "Regenerate the declaration file from the component sources",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.handleGenerate(opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Overwrite a declaration file that was not generated")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the declaration instead of writing it")
	cmd.Flags().BoolVar(&opts.check, "check", false, "Fail when the declaration file is out of date")
	cmd.Flags().BoolVar(&opts.builtin, "builtin", false, "Use the builtin Dozzle registry instead of scanning")
	cmd.MarkFlagsMutuallyExclusive("dry-run", "check")

	return cmd
}

// buildWatchCommand creates the components watch subcommand
func (c *cli) buildWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "watch",
		Aliases: []string{"w"},
		Short:   "Regenerate the declaration file whenever components change",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.handleWatch(cmd.Context())
		},
	}
}

// buildListCommand creates the components list subcommand
func (c *cli) buildListCommand() *cobra.Command {
	var builtin bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the declared components",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.handleList(builtin)
		},
	}

	cmd.Flags().BoolVar(&builtin, "builtin", false, "List the builtin Dozzle registry instead of scanning")

	return cmd
}

// buildScenariosCommand creates the scenarios subcommand
func (c *cli) buildScenariosCommand() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:     "scenarios",
		Aliases: []string{"s"},
		Short:   "Print the effective scenario set as YAML",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.handleScenarios(url)
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "", "Base URL the scenario targets resolve against")

	return cmd
}

// buildVersionCommand creates the version subcommand
func (c *cli) buildVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			c.handleVersion()
		},
	}
}
