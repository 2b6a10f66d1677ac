package web

import (
	"sync"
	"time"

	"umlwizard/internal/domain"
	"umlwizard/internal/metrics"
	"umlwizard/internal/wizard"
)

// entry is one browser session.
type entry struct {
	ctrl   *wizard.Controller
	notice string
	seen   time.Time
}

// Registry holds the in-memory wizard sessions of the web server.
type Registry struct {
	factory func() *wizard.Controller
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[domain.SessionID]*entry
}

// NewRegistry returns an empty registry that builds controllers with factory.
func NewRegistry(factory func() *wizard.Controller) *Registry {
	return &Registry{
		factory:  factory,
		now:      time.Now,
		sessions: make(map[domain.SessionID]*entry),
	}
}

// Get returns the controller for id, if any, and marks it as used.
func (r *Registry) Get(id domain.SessionID) (*wizard.Controller, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.seen = r.now()
	return e.ctrl, true
}

// Create starts a new session and returns its id.
func (r *Registry) Create() (domain.SessionID, *wizard.Controller) {
	c := r.factory()
	id := c.Snapshot().ID

	r.mu.Lock()
	r.sessions[id] = &entry{ctrl: c, seen: r.now()}
	n := len(r.sessions)
	r.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	return id, c
}

// Delete forgets a session.
func (r *Registry) Delete(id domain.SessionID) {
	r.mu.Lock()
	delete(r.sessions, id)
	n := len(r.sessions)
	r.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}

// SetNotice stores a one-shot message for the next page render.
func (r *Registry) SetNotice(id domain.SessionID, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.sessions[id]; ok {
		e.notice = msg
	}
}

// TakeNotice returns and clears the pending message.
func (r *Registry) TakeNotice(id domain.SessionID) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return ""
	}
	msg := e.notice
	e.notice = ""
	return msg
}

// Sweep drops sessions unused for longer than idle. Sessions with a request
// in flight are kept.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	dropped := 0
	for id, e := range r.sessions {
		if e.seen.Before(cutoff) && !e.ctrl.Snapshot().Loading() {
			delete(r.sessions, id)
			dropped++
		}
	}
	n := len(r.sessions)
	r.mu.Unlock()

	metrics.ActiveSessions.Set(float64(n))
	return dropped
}
