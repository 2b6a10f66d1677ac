package types

import "time"

// UseCaseResult is what the use-case step produces. Both later steps
// consume it.
type UseCaseResult struct {
	Diagram  DataURI  `json:"diagram"`
	Code     string   `json:"usecase_code"`
	UseCases []string `json:"use_cases"`
	Actors   []string `json:"actors"`
}

// LabeledDiagram is one entry of a sequence or activity result.
type LabeledDiagram struct {
	Label string  `json:"label"`
	Image DataURI `json:"image"`
}

// Failure records the most recent remote call failure.
type Failure struct {
	Op      string    `json:"op"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// SessionState is the complete state of one wizard session.
type SessionState struct {
	ID           SessionID        `json:"id"`
	Requirements string           `json:"requirements"`
	Step         Step             `json:"step"`
	Phase        Phase            `json:"phase"`
	Failure      *Failure         `json:"failure,omitempty"`
	UseCase      *UseCaseResult   `json:"use_case,omitempty"`
	Sequence     []LabeledDiagram `json:"sequence,omitempty"`
	Activity     []LabeledDiagram `json:"activity,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Loading reports whether a remote request is in flight.
func (s SessionState) Loading() bool { return s.Phase == PhaseBusy }

// Clone returns a deep copy of s.
func (s SessionState) Clone() SessionState {
	out := s
	if s.Failure != nil {
		f := *s.Failure
		out.Failure = &f
	}
	if s.UseCase != nil {
		uc := *s.UseCase
		uc.UseCases = cloneStrings(s.UseCase.UseCases)
		uc.Actors = cloneStrings(s.UseCase.Actors)
		out.UseCase = &uc
	}
	out.Sequence = cloneDiagrams(s.Sequence)
	out.Activity = cloneDiagrams(s.Activity)
	return out
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append([]string(nil), in...)
}

func cloneDiagrams(in []LabeledDiagram) []LabeledDiagram {
	if in == nil {
		return nil
	}
	return append([]LabeledDiagram(nil), in...)
}
