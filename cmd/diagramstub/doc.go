// Package main runs an in-memory stand-in for the UML diagram service, for
// local development and tests. Every diagram it returns is the same 1x1 PNG.
//
// HTTP API
//
//	POST /uml/generate-usecase { "srs_text": ... }
//	    Reply with a use case diagram, its source code, and the use cases
//	    and actors found in the text (one per non-empty line, "Actor:"
//	    prefixed lines being actors).
//
//	POST /uml/generate-sequence { "usecase_code", "use_cases", "srs_text" }
//	    Reply with one labelled diagram per use case.
//
//	POST /uml/generate-activity { "usecase_code", "actors", "srs_text" }
//	    Reply with one labelled diagram per actor.
//
//	GET /metrics, GET /healthz
//
// Behaviour
//
//   - With --fail every generate endpoint answers 502, to exercise the
//     wizard's failure path.
//   - Requests with a body that is not JSON get 400.
//   - The default listen address is :8090.
package main
