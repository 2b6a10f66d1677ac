package interfaces

import (
	"context"

	domaintypes "umlwizard/internal/domain/types"
)

// DiagramClient is how we talk to the external diagram service, all with context.
type DiagramClient interface {
	GenerateUseCase(
		ctx context.Context,
		req domaintypes.UseCaseRequest,
	) (domaintypes.UseCaseResponse, error)
	GenerateSequence(
		ctx context.Context,
		req domaintypes.SequenceRequest,
	) ([]domaintypes.WireDiagram, error)
	GenerateActivity(
		ctx context.Context,
		req domaintypes.ActivityRequest,
	) ([]domaintypes.WireDiagram, error)
}
