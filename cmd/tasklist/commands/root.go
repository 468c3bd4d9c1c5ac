// Package commands implements the CLI commands for the tasklist tool.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/tasklist/internal/app"
	"go.trai.ch/tasklist/internal/build"
	"go.trai.ch/tasklist/internal/core/domain"
)

// CLI represents the command line interface for tasklist.
type CLI struct {
	app        Application
	rootCmd    *cobra.Command
	configPath string
}

// Application represents the application logic interface.
type Application interface {
	Add(ctx context.Context, opts app.Options, text string) (domain.Task, error)
	Toggle(ctx context.Context, opts app.Options, id string) (bool, error)
	Remove(ctx context.Context, opts app.Options, id string) (bool, error)
	List(ctx context.Context, opts app.Options, listOpts app.ListOptions) error
	UI(ctx context.Context, opts app.Options) error
	Default(ctx context.Context, opts app.Options, mode string) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{app: a}

	rootCmd := &cobra.Command{
		Use:           "tasklist",
		Short:         "A small persistent to-do list",
		Long:          "Without a subcommand, tasklist opens the interactive screen on a terminal and prints the list otherwise.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mode, _ := cmd.Flags().GetString("mode")
			return c.app.Default(cmd.Context(), c.options(), mode)
		},
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "",
		"Path to the config file (default: "+domain.ConfigFileName+" in the working directory)")
	rootCmd.Flags().StringP("mode", "m", "auto", "Output mode: auto, tui, or linear")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newAddCmd())
	rootCmd.AddCommand(c.newToggleCmd())
	rootCmd.AddCommand(c.newRemoveCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newUICmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

func (c *CLI) options() app.Options {
	return app.Options{ConfigPath: c.configPath}
}
