package interfaces

import (
	"context"

	domaintypes "umlwizard/internal/domain/types"
)

// WizardService drives one session through the four wizard steps.
type WizardService interface {
	SubmitRequirements(text string) error
	GenerateUseCaseDiagram(ctx context.Context) error
	GenerateSequenceDiagram(ctx context.Context) error
	GenerateActivityDiagram(ctx context.Context) error
	Snapshot() domaintypes.SessionState
	Reset()
}
