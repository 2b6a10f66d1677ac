package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Start a new wizard session, discarding the current one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := wire.Session.DeleteSession(); err != nil {
				return err
			}
			c := wire.NewController()
			if err := wire.SaveController(c); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "New session %s. Next: umlwizard submit\n", c.Snapshot().ID)
			return nil
		},
	}
}
