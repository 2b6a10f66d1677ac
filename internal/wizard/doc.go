// Package wizard implements the four-step diagram wizard.
//
// A Controller owns one session: the requirements text, the current step,
// whether a request is in flight, and the three diagram results. Steps only
// move forward:
//
//	1 --SubmitRequirements--> 2 --GenerateUseCaseDiagram--> 3
//	  --GenerateSequenceDiagram--> 4 (GenerateActivityDiagram repeats here)
//
// Each remote operation runs at most once at a time per session. While one is
// in flight the session phase is busy and every other remote operation
// returns ErrBusy. A failed call leaves the step and all results as they
// were, moves the phase to failed with a recorded Failure, and can be retried.
package wizard
