package render

import (
	"fmt"
	"io"
	"strings"

	"umlwizard/internal/domain"
)

// nextAction is what the user can do at each step.
var nextAction = map[domain.Step]string{
	domain.StepRequirements: "submit the requirements text",
	domain.StepUseCase:      "generate the use case diagram",
	domain.StepSequence:     "generate the sequence diagrams",
	domain.StepActivity:     "generate the activity diagrams",
}

// Summary writes a short human-readable description of state.
func Summary(w io.Writer, state domain.SessionState) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Session:  %s\n", state.ID)
	fmt.Fprintf(&b, "Step:     %d of 4 (%s)\n", int(state.Step), state.Step)
	fmt.Fprintf(&b, "Status:   %s\n", state.Phase)
	if f := state.Failure; f != nil {
		fmt.Fprintf(&b, "Failed:   %s at %s: %s\n", f.Op, f.At.Format("15:04:05"), f.Message)
	}
	if state.Requirements != "" {
		fmt.Fprintf(&b, "SRS:      %s\n", excerpt(state.Requirements, 60))
	}
	if uc := state.UseCase; uc != nil {
		fmt.Fprintf(&b, "Use case diagram: %d bytes\n", len(uc.Diagram.Payload()))
		if len(uc.UseCases) > 0 {
			fmt.Fprintf(&b, "  use cases: %s\n", strings.Join(uc.UseCases, ", "))
		}
		if len(uc.Actors) > 0 {
			fmt.Fprintf(&b, "  actors:    %s\n", strings.Join(uc.Actors, ", "))
		}
	}
	writeDiagrams(&b, "Sequence diagrams", state.Sequence)
	writeDiagrams(&b, "Activity diagrams", state.Activity)
	if next, ok := nextAction[state.Step]; ok {
		fmt.Fprintf(&b, "Next:     %s\n", next)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeDiagrams(b *strings.Builder, title string, ds []domain.LabeledDiagram) {
	if len(ds) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", title)
	for i, d := range ds {
		fmt.Fprintf(b, "  %d. %s\n", i+1, Label(d.Label, "(untitled)"))
	}
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
