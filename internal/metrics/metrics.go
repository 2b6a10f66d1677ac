// Package metrics holds the prometheus collectors shared by the wizard,
// the diagram client and the web server.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	DiagramRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "umlwizard_diagram_requests_total",
			Help: "Count of requests sent to the diagram service",
		},
		[]string{"endpoint", "status"},
	)
	DiagramDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "umlwizard_diagram_request_duration_seconds",
			Help:    "Time taken by the diagram service to answer",
			Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"endpoint"},
	)
	WizardOperations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "umlwizard_operations_total",
			Help: "Count of wizard operations by outcome",
		},
		[]string{"op", "outcome"},
	)
	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "umlwizard_active_sessions",
			Help: "Current number of web wizard sessions",
		},
	)
)

var once sync.Once

// Init registers the collectors with the default registry. It is safe to
// call more than once.
func Init() {
	once.Do(func() {
		prometheus.MustRegister(
			DiagramRequests,
			DiagramDuration,
			WizardOperations,
			ActiveSessions,
		)
	})
}
