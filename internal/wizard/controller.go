package wizard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"umlwizard/internal/domain"
)

// Controller drives one wizard session. It is safe for concurrent use; the
// lock is never held across a network call.
type Controller struct {
	client    domain.DiagramClient
	observers []Observer
	now       func() time.Time

	mu    sync.Mutex
	state domain.SessionState
}

// Option configures a Controller.
type Option func(*Controller)

// WithObserver registers o to be told about every operation.
func WithObserver(o Observer) Option {
	return func(c *Controller) {
		if o != nil {
			c.observers = append(c.observers, o)
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// New returns a controller for a fresh session at step 1.
func New(client domain.DiagramClient, opts ...Option) *Controller {
	c := &Controller{client: client, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	c.state = c.freshState()
	return c
}

// Restore rebuilds a controller from a snapshot. A snapshot taken while a
// request was in flight comes back idle; that request died with its process.
func Restore(client domain.DiagramClient, state domain.SessionState, opts ...Option) (*Controller, error) {
	if !state.Step.Valid() {
		return nil, fmt.Errorf("restore session %s: invalid step %d", state.ID, state.Step)
	}
	if state.Step >= domain.StepSequence && state.UseCase == nil {
		return nil, fmt.Errorf("restore session %s: step %d without a use-case result", state.ID, state.Step)
	}
	c := &Controller{client: client, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	st := state.Clone()
	switch st.Phase {
	case domain.PhaseIdle, domain.PhaseFailed:
	default:
		st.Phase = domain.PhaseIdle
	}
	if st.ID == "" {
		st.ID = newSessionID()
	}
	c.state = st
	return c, nil
}

func (c *Controller) freshState() domain.SessionState {
	now := c.now().UTC()
	return domain.SessionState{
		ID:        newSessionID(),
		Step:      domain.StepRequirements,
		Phase:     domain.PhaseIdle,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newSessionID() domain.SessionID { return domain.SessionID(uuid.NewString()) }

// Snapshot returns a deep copy of the session state.
func (c *Controller) Snapshot() domain.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// Reset throws the session away and starts a new one at step 1.
func (c *Controller) Reset() {
	c.mu.Lock()
	c.state = c.freshState()
	c.mu.Unlock()
}

// SubmitRequirements stores text and moves from step 1 to 2. Blank text
// leaves the session untouched.
func (c *Controller) SubmitRequirements(text string) error {
	c.mu.Lock()
	from := c.state.Step
	var err error
	switch {
	case c.state.Step != domain.StepRequirements:
		err = wrongStep(OpSubmit, domain.StepRequirements, c.state.Step)
	case strings.TrimSpace(text) == "":
		err = ErrEmptyRequirements
	default:
		c.state.Requirements = text
		c.state.Step = domain.StepUseCase
		c.state.UpdatedAt = c.now().UTC()
	}
	ev := Event{Session: c.state.ID, Op: OpSubmit, From: from, To: c.state.Step, Err: err}
	c.mu.Unlock()

	c.notify(ev)
	return err
}

// GenerateUseCaseDiagram sends the requirements to the use-case endpoint.
// On success the result is stored and the session moves to step 3.
func (c *Controller) GenerateUseCaseDiagram(ctx context.Context) error {
	return c.run(ctx, OpUseCase, domain.StepUseCase, func(ctx context.Context, st domain.SessionState) (func(*domain.SessionState), error) {
		resp, err := c.client.GenerateUseCase(ctx, domain.UseCaseRequest{SRSText: st.Requirements})
		if err != nil {
			return nil, err
		}
		return func(s *domain.SessionState) {
			s.UseCase = &domain.UseCaseResult{
				Diagram:  domain.PNGDataURI(resp.UseCaseDiagram),
				Code:     resp.UseCaseCode,
				UseCases: resp.UseCases,
				Actors:   resp.Actors,
			}
			s.Step = domain.StepSequence
		}, nil
	})
}

// GenerateSequenceDiagram echoes the use-case code and names back to the
// sequence endpoint exactly as received; a null list goes back as null. On success the result is stored and the session moves
// to step 4.
func (c *Controller) GenerateSequenceDiagram(ctx context.Context) error {
	return c.run(ctx, OpSequence, domain.StepSequence, func(ctx context.Context, st domain.SessionState) (func(*domain.SessionState), error) {
		diagrams, err := c.client.GenerateSequence(ctx, domain.SequenceRequest{
			UseCaseCode: st.UseCase.Code,
			UseCases:    st.UseCase.UseCases,
			SRSText:     st.Requirements,
		})
		if err != nil {
			return nil, err
		}
		return func(s *domain.SessionState) {
			s.Sequence = toLabeled(diagrams)
			s.Step = domain.StepActivity
		}, nil
	})
}

// GenerateActivityDiagram sends the use-case code and actor names to the
// activity endpoint. Step 4 is terminal, so success only replaces the
// activity result; the call may be repeated.
func (c *Controller) GenerateActivityDiagram(ctx context.Context) error {
	return c.run(ctx, OpActivity, domain.StepActivity, func(ctx context.Context, st domain.SessionState) (func(*domain.SessionState), error) {
		diagrams, err := c.client.GenerateActivity(ctx, domain.ActivityRequest{
			UseCaseCode: st.UseCase.Code,
			Actors:      st.UseCase.Actors,
			SRSText:     st.Requirements,
		})
		if err != nil {
			return nil, err
		}
		return func(s *domain.SessionState) {
			s.Activity = toLabeled(diagrams)
		}, nil
	})
}

// call performs the network request against a copy of the state and returns
// the mutation to commit on success.
type call func(ctx context.Context, st domain.SessionState) (func(*domain.SessionState), error)

// run enforces the step and busy guards, marks the session busy for the
// duration of fn, then commits either the result or the failure.
func (c *Controller) run(ctx context.Context, op string, want domain.Step, fn call) error {
	c.mu.Lock()
	from := c.state.Step
	if err := c.checkLocked(op, want); err != nil {
		ev := Event{Session: c.state.ID, Op: op, From: from, To: from, Err: err}
		c.mu.Unlock()
		c.notify(ev)
		return err
	}
	c.state.Phase = domain.PhaseBusy
	c.state.Failure = nil
	st := c.state.Clone()
	c.mu.Unlock()

	start := c.now()
	commit, err := fn(ctx, st)
	elapsed := c.now().Sub(start)

	c.mu.Lock()
	if c.state.ID != st.ID {
		// Reset while the request was in flight; the reply belongs to a
		// session that no longer exists.
		c.mu.Unlock()
		if err != nil {
			return &RemoteCallError{Op: op, Err: err}
		}
		return nil
	}
	if err != nil {
		c.state.Phase = domain.PhaseFailed
		c.state.Failure = &domain.Failure{Op: op, Message: err.Error(), At: c.now().UTC()}
		err = &RemoteCallError{Op: op, Err: err}
	} else {
		commit(&c.state)
		c.state.Phase = domain.PhaseIdle
	}
	c.state.UpdatedAt = c.now().UTC()
	ev := Event{Session: c.state.ID, Op: op, From: from, To: c.state.Step, Err: err, Duration: elapsed}
	c.mu.Unlock()

	c.notify(ev)
	return err
}

func (c *Controller) checkLocked(op string, want domain.Step) error {
	if c.state.Phase == domain.PhaseBusy {
		return ErrBusy
	}
	if c.state.Step != want {
		return wrongStep(op, want, c.state.Step)
	}
	if want >= domain.StepSequence && c.state.UseCase == nil {
		return fmt.Errorf("%w: %s needs a use-case result", ErrWrongStep, op)
	}
	return nil
}

func (c *Controller) notify(ev Event) {
	for _, o := range c.observers {
		o.Observe(ev)
	}
}

func wrongStep(op string, want, have domain.Step) error {
	return fmt.Errorf("%w: %s needs step %d, session is at step %d", ErrWrongStep, op, want, have)
}

func toLabeled(in []domain.WireDiagram) []domain.LabeledDiagram {
	out := make([]domain.LabeledDiagram, 0, len(in))
	for _, d := range in {
		out = append(out, domain.LabeledDiagram{Label: d.Label, Image: domain.PNGDataURI(d.Image)})
	}
	return out
}

var _ domain.WizardService = (*Controller)(nil)
