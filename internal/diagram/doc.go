// Package diagram provides an HTTP implementation of the domain.DiagramClient
// interface used by the wizard.
//
// The external diagram service turns requirements text into UML diagrams.
// Three endpoints are consumed, each a JSON POST:
//   - /uml/generate-usecase turns SRS text into a use-case diagram plus the
//     generator code, use-case names and actor names later steps need.
//   - /uml/generate-sequence returns labelled sequence diagrams.
//   - /uml/generate-activity returns labelled activity diagrams.
//
// All requests accept a context for cancellation and deadlines. Non-2xx
// statuses are returned as errors carrying the endpoint and status text, and
// bodies that do not decode into the expected shape are reported as
// ErrMalformedResponse. An optional circuit breaker fails calls fast while
// the service keeps erroring.
package diagram
