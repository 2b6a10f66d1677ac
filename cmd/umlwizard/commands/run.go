package commands

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"umlwizard/internal/domain"
	"umlwizard/internal/interactive"
	"umlwizard/internal/render"
)

func runCmd() *cobra.Command {
	var fresh bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Walk through the wizard interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New("run needs an interactive terminal; use the step commands instead")
			}
			c, err := wire.LoadController()
			if err != nil {
				return err
			}
			if fresh {
				c.Reset()
			}
			r := &interactive.Runner{
				Wizard: c,
				Prompt: interactive.SurveyPrompter{},
				Out:    cmd.OutOrStdout(),
				Checkpoint: func(domain.SessionState) error {
					return wire.SaveController(c)
				},
			}
			err = r.Run(cmd.Context())
			if errors.Is(err, interactive.ErrAborted) {
				fmt.Fprintln(cmd.OutOrStdout(), "Stopped. Resume with umlwizard run.")
				return nil
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return render.Summary(cmd.OutOrStdout(), c.Snapshot())
		},
	}
	cmd.Flags().BoolVar(&fresh, "new", false, "discard the current session first")
	return cmd
}
