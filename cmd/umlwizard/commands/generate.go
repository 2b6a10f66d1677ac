package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"umlwizard/internal/domain"
	"umlwizard/internal/render"
	"umlwizard/internal/wizard"
)

// stepCmd builds a command that runs one remote wizard operation against
// the checkpointed session.
func stepCmd(use, short, next string, op func(*wizard.Controller, context.Context) error, report func(io.Writer, domain.SessionState)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := wire.LoadController()
			if err != nil {
				return err
			}
			opErr := op(c, cmd.Context())
			// Failures are part of the session too.
			if err := wire.SaveController(c); err != nil {
				return err
			}
			if opErr != nil {
				return opErr
			}
			out := cmd.OutOrStdout()
			report(out, c.Snapshot())
			if next != "" {
				fmt.Fprintf(out, "Next: %s\n", next)
			}
			return nil
		},
	}
}

func usecaseCmd() *cobra.Command {
	return stepCmd("usecase", "Generate the use case diagram", "umlwizard sequence",
		(*wizard.Controller).GenerateUseCaseDiagram,
		func(w io.Writer, st domain.SessionState) {
			uc := st.UseCase
			fmt.Fprintln(w, "Use case diagram ready.")
			fmt.Fprintf(w, "  use cases: %d\n  actors:    %d\n", len(uc.UseCases), len(uc.Actors))
		})
}

func sequenceCmd() *cobra.Command {
	return stepCmd("sequence", "Generate the sequence diagrams", "umlwizard activity",
		(*wizard.Controller).GenerateSequenceDiagram,
		func(w io.Writer, st domain.SessionState) {
			printDiagrams(w, "Sequence diagrams", st.Sequence)
		})
}

func activityCmd() *cobra.Command {
	return stepCmd("activity", "Generate the activity diagrams", "umlwizard export --out <dir>",
		(*wizard.Controller).GenerateActivityDiagram,
		func(w io.Writer, st domain.SessionState) {
			printDiagrams(w, "Activity diagrams", st.Activity)
		})
}

func printDiagrams(w io.Writer, title string, ds []domain.LabeledDiagram) {
	fmt.Fprintf(w, "%s ready (%d):\n", title, len(ds))
	for i, d := range ds {
		fmt.Fprintf(w, "  %d. %s\n", i+1, render.Label(d.Label, "(untitled)"))
	}
}
