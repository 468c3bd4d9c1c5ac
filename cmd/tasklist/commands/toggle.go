package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func (c *CLI) newToggleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <id>",
		Short: "Mark a task done, or not done again",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := c.app.Toggle(cmd.Context(), c.options(), args[0])
			if err != nil {
				return err
			}
			return printMatch(cmd.OutOrStdout(), "toggled", args[0], found)
		},
	}
}

func (c *CLI) newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a task",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			found, err := c.app.Remove(cmd.Context(), c.options(), args[0])
			if err != nil {
				return err
			}
			return printMatch(cmd.OutOrStdout(), "removed", args[0], found)
		},
	}
}

// printMatch reports the outcome of an id lookup. A miss is not an error.
func printMatch(w io.Writer, verb, id string, found bool) error {
	var err error
	if found {
		_, err = fmt.Fprintf(w, "%s %s\n", verb, id)
	} else {
		_, err = fmt.Fprintf(w, "no task with id %s\n", id)
	}
	return err
}
