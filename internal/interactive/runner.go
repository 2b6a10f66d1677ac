// Package interactive walks a wizard session through its steps with
// terminal prompts.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"

	"umlwizard/internal/domain"
	"umlwizard/internal/render"
	"umlwizard/internal/wizard"
)

// Runner drives a WizardService from prompts.
type Runner struct {
	Wizard domain.WizardService
	Prompt Prompter
	Out    io.Writer
	// Checkpoint, when set, is called after every operation that reached
	// the service or changed the step.
	Checkpoint func(domain.SessionState) error
}

// Run prompts until the user declines the next step or the session is
// complete. Declining is not an error; the session can be resumed later.
func (r *Runner) Run(ctx context.Context) error {
	for {
		st := r.Wizard.Snapshot()
		if st.Step == domain.StepRequirements {
			if err := r.askRequirements(ctx); err != nil {
				return err
			}
			continue
		}

		question, def := r.question(st)
		ok, err := r.Prompt.Confirm(ctx, question, def)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		r.printf("Generating...\n")
		err = r.generate(ctx, st.Step)
		if cerr := r.checkpoint(); cerr != nil {
			return cerr
		}
		switch {
		case err == nil:
			r.report(st.Step)
		case wizard.IsRemoteCallError(err):
			r.printf("Request failed: %v\n", err)
		default:
			return err
		}
	}
}

func (r *Runner) askRequirements(ctx context.Context) error {
	text, err := r.Prompt.Multiline(ctx, "Enter SRS document", "Free-form requirements text; it drives all three diagrams.")
	if err != nil {
		return err
	}
	err = r.Wizard.SubmitRequirements(text)
	if errors.Is(err, wizard.ErrEmptyRequirements) {
		r.printf("The requirements text cannot be empty.\n")
		return nil
	}
	if err != nil {
		return err
	}
	return r.checkpoint()
}

func (r *Runner) question(st domain.SessionState) (string, bool) {
	retry := st.Phase == domain.PhaseFailed
	switch st.Step {
	case domain.StepUseCase:
		if retry {
			return "Retry the use case diagram?", true
		}
		return "Generate use case diagram?", true
	case domain.StepSequence:
		if retry {
			return "Retry the sequence diagrams?", true
		}
		return "Generate sequence diagrams?", true
	}
	switch {
	case retry:
		return "Retry the activity diagrams?", true
	case len(st.Activity) > 0:
		return "Regenerate activity diagrams?", false
	}
	return "Generate activity diagrams?", true
}

func (r *Runner) generate(ctx context.Context, step domain.Step) error {
	switch step {
	case domain.StepUseCase:
		return r.Wizard.GenerateUseCaseDiagram(ctx)
	case domain.StepSequence:
		return r.Wizard.GenerateSequenceDiagram(ctx)
	default:
		return r.Wizard.GenerateActivityDiagram(ctx)
	}
}

func (r *Runner) report(step domain.Step) {
	st := r.Wizard.Snapshot()
	switch step {
	case domain.StepUseCase:
		uc := st.UseCase
		r.printf("Use case diagram ready: %d use case(s), %d actor(s).\n", len(uc.UseCases), len(uc.Actors))
	case domain.StepSequence:
		r.printList("Sequence diagrams", st.Sequence)
	default:
		r.printList("Activity diagrams", st.Activity)
	}
}

func (r *Runner) printList(title string, ds []domain.LabeledDiagram) {
	r.printf("%s ready (%d):\n", title, len(ds))
	for i, d := range ds {
		r.printf("  %d. %s\n", i+1, render.Label(d.Label, "(untitled)"))
	}
}

func (r *Runner) checkpoint() error {
	if r.Checkpoint == nil {
		return nil
	}
	return r.Checkpoint(r.Wizard.Snapshot())
}

func (r *Runner) printf(format string, args ...any) {
	if r.Out != nil {
		fmt.Fprintf(r.Out, format, args...)
	}
}
