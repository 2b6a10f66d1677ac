package wizard

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"umlwizard/internal/domain"
	"umlwizard/internal/metrics"
)

// Event describes one finished operation.
type Event struct {
	Session  domain.SessionID
	Op       string
	From     domain.Step
	To       domain.Step
	Err      error
	Duration time.Duration
}

// Outcome classifies the event for logs and metrics.
func (e Event) Outcome() string {
	switch {
	case e.Err == nil:
		return "ok"
	case IsRemoteCallError(e.Err):
		return "remote_failure"
	case errors.Is(e.Err, ErrBusy):
		return "busy"
	default:
		return "rejected"
	}
}

// Observer is told about every operation a Controller finishes.
type Observer interface {
	Observe(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

func (f ObserverFunc) Observe(ev Event) { f(ev) }

// LogObserver logs transitions at info and remote failures at error.
func LogObserver(log logrus.FieldLogger) Observer {
	return ObserverFunc(func(ev Event) {
		entry := log.WithFields(logrus.Fields{
			"op":      ev.Op,
			"session": ev.Session.String(),
			"step":    int(ev.To),
		})
		if ev.Duration > 0 {
			entry = entry.WithField("duration", ev.Duration.Round(time.Millisecond).String())
		}
		switch ev.Outcome() {
		case "ok":
			if ev.From != ev.To {
				entry.Infof("moved from %s to %s", ev.From, ev.To)
			} else {
				entry.Info("done")
			}
		case "remote_failure":
			entry.WithError(ev.Err).Error("diagram request failed")
		default:
			entry.WithError(ev.Err).Debug("operation rejected")
		}
	})
}

// MetricsObserver counts operations by outcome.
func MetricsObserver() Observer {
	return ObserverFunc(func(ev Event) {
		metrics.WizardOperations.WithLabelValues(ev.Op, ev.Outcome()).Inc()
	})
}
