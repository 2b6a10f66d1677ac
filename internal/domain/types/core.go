package types

import "strconv"

// SessionID identifies one wizard session.
type SessionID string

// String returns the string form of the session identifier.
func (id SessionID) String() string { return string(id) }

// Step is a wizard step. Steps only move forward.
type Step int

const (
	// StepRequirements collects the SRS text.
	StepRequirements Step = 1
	// StepUseCase offers use-case diagram generation.
	StepUseCase Step = 2
	// StepSequence offers sequence diagram generation.
	StepSequence Step = 3
	// StepActivity offers activity diagram generation. It is terminal.
	StepActivity Step = 4
)

// Valid reports whether s is one of the four wizard steps.
func (s Step) Valid() bool { return s >= StepRequirements && s <= StepActivity }

// String returns a short human name for the step.
func (s Step) String() string {
	switch s {
	case StepRequirements:
		return "requirements"
	case StepUseCase:
		return "use-case"
	case StepSequence:
		return "sequence"
	case StepActivity:
		return "activity"
	}
	return "step(" + strconv.Itoa(int(s)) + ")"
}

// Phase tells whether a remote request is in flight or the last one failed.
type Phase string

const (
	PhaseIdle   Phase = "idle"
	PhaseBusy   Phase = "busy"
	PhaseFailed Phase = "failed"
)

// String returns the string form of the phase.
func (p Phase) String() string { return string(p) }
