package domain

import (
	interfaces "umlwizard/internal/domain/interfaces"
	types "umlwizard/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	SessionID       = types.SessionID
	Step            = types.Step
	Phase           = types.Phase
	DataURI         = types.DataURI
	UseCaseResult   = types.UseCaseResult
	LabeledDiagram  = types.LabeledDiagram
	Failure         = types.Failure
	SessionState    = types.SessionState
	UseCaseRequest  = types.UseCaseRequest
	UseCaseResponse = types.UseCaseResponse
	SequenceRequest = types.SequenceRequest
	ActivityRequest = types.ActivityRequest
	WireDiagram     = types.WireDiagram
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	DiagramClient = interfaces.DiagramClient
	SessionStore  = interfaces.SessionStore
	WizardService = interfaces.WizardService
)

const (
	StepRequirements = types.StepRequirements
	StepUseCase      = types.StepUseCase
	StepSequence     = types.StepSequence
	StepActivity     = types.StepActivity

	PhaseIdle   = types.PhaseIdle
	PhaseBusy   = types.PhaseBusy
	PhaseFailed = types.PhaseFailed

	PNGDataURIPrefix = types.PNGDataURIPrefix
)

// PNGDataURI wraps a base64 PNG payload as a data URI.
func PNGDataURI(payload string) DataURI { return types.PNGDataURI(payload) }
