package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tasklist/internal/app"
)

func (c *CLI) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Print the tasks",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			asJSON, _ := cmd.Flags().GetBool("json")
			return c.app.List(cmd.Context(), c.options(), app.ListOptions{JSON: asJSON})
		},
	}
	cmd.Flags().Bool("json", false, "Print the stored JSON array")
	return cmd
}

func (c *CLI) newUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Open the interactive screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.UI(cmd.Context(), c.options())
		},
	}
}
