package diagram

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
)

// BreakerSettings tunes the circuit breaker in front of the service.
type BreakerSettings struct {
	// MaxFailures consecutive failures open the breaker. Zero disables it.
	MaxFailures uint32
	// Cooldown is how long the breaker stays open before letting one
	// request through.
	Cooldown time.Duration
}

// NewBreaker returns a breaker that opens after s.MaxFailures consecutive
// failures, or nil when s.MaxFailures is zero. A 4xx reply is the caller's
// fault, not the service's, and does not count.
func NewBreaker(name string, s BreakerSettings, log logrus.FieldLogger) *gobreaker.CircuitBreaker {
	if s.MaxFailures == 0 {
		return nil
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         name,
		MaxRequests:  1,
		Timeout:      s.Cooldown,
		IsSuccessful: countsAsHealthy,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("diagram service circuit breaker changed state")
		},
	})
}

func countsAsHealthy(err error) bool {
	if err == nil {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && !se.ServerSide()
}
