package wizard

import "errors"

// Operation names, as recorded in failures, logs and metrics.
const (
	OpSubmit   = "submitRequirements"
	OpUseCase  = "generateUseCaseDiagram"
	OpSequence = "generateSequenceDiagram"
	OpActivity = "generateActivityDiagram"
)

var (
	// ErrEmptyRequirements is returned when the text is blank after trimming.
	ErrEmptyRequirements = errors.New("requirements text is empty")
	// ErrWrongStep is returned when an operation is invoked at a step where
	// it is not available.
	ErrWrongStep = errors.New("operation not available at this step")
	// ErrBusy is returned while another request for the session is in flight.
	ErrBusy = errors.New("a diagram request is already in flight")
)

// RemoteCallError is the one failure kind of the remote operations: network
// errors, non-2xx statuses and malformed bodies alike.
type RemoteCallError struct {
	Op  string
	Err error
}

func (e *RemoteCallError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *RemoteCallError) Unwrap() error { return e.Err }

// IsRemoteCallError reports whether err came from a failed remote call.
func IsRemoteCallError(err error) bool {
	var rce *RemoteCallError
	return errors.As(err, &rce)
}
