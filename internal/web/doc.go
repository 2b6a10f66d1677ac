// Package web serves the wizard as a single HTML page.
//
// Each browser gets its own session, keyed by the umlwizard_session cookie
// and held in memory by a Registry. Every step is a plain form POST that
// runs the matching wizard operation and redirects back to the page, so the
// page always reflects the session state.
//
// Routes
//
//	GET  /             the wizard page
//	POST /submit       submit the SRS text (form field srs_text)
//	POST /usecase      generate the use case diagram
//	POST /sequence     generate the sequence diagrams
//	POST /activity     generate the activity diagrams
//	POST /reset        drop the session and start over
//	GET  /api/session  the session state as JSON
//	GET  /healthz      liveness
//	GET  /metrics      prometheus metrics
//
// Requests to the diagram service are not tied to the browser request: a
// user navigating away does not abort a generation that is already running.
package web
