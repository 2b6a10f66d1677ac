package app

import (
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"umlwizard/internal/diagram"
	"umlwizard/internal/domain"
	"umlwizard/internal/logging"
	"umlwizard/internal/metrics"
	"umlwizard/internal/store"
	"umlwizard/internal/wizard"
)

// Wire bundles the store, client and logger the commands share.
type Wire struct {
	Config  Config
	Log     *logrus.Entry
	Client  domain.DiagramClient
	Session domain.SessionStore
	HTTP    *http.Client
}

// NewWire constructs the dependency graph from cfg.
func NewWire(cfg Config) (*Wire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log, err := logging.New(logging.Options{
		Level:      cfg.Log.Level,
		File:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
		Compress:   cfg.Log.Compress,
		Component:  "umlwizard",
	})
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	metrics.Init()

	// Transport owns the timeout; the wizard itself never cancels.
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	w := &Wire{
		Config:  cfg,
		Log:     log,
		Session: store.NewSessionFileStore(cfg.Home),
		HTTP:    httpClient,
	}
	w.Client = w.newClient("diagram-service")
	return w, nil
}

// newClient returns a diagram client with a breaker of its own. The
// underlying http.Client and its connection pool are shared.
func (w *Wire) newClient(breaker string) *diagram.HTTP {
	client := diagram.NewHTTP(w.Config.ServiceURL, w.HTTP)
	client.Breaker = diagram.NewBreaker(breaker, diagram.BreakerSettings{
		MaxFailures: w.Config.Breaker.MaxFailures,
		Cooldown:    w.Config.Breaker.Cooldown,
	}, w.Log)
	return client
}

// NewController returns a controller for a fresh session, wired to the
// logging and metrics observers.
func (w *Wire) NewController() *wizard.Controller {
	return wizard.New(w.Client, w.observers()...)
}

// NewSessionController is NewController for servers holding many sessions:
// each controller gets its own breaker, so one visitor's failures never
// short-circuit another's requests.
func (w *Wire) NewSessionController() *wizard.Controller {
	return wizard.New(w.newClient("diagram-service-session"), w.observers()...)
}

// LoadController restores the checkpointed session, or starts a fresh one
// when nothing has been saved.
func (w *Wire) LoadController() (*wizard.Controller, error) {
	state, ok, err := w.Session.LoadSession(w.Config.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if !ok {
		return w.NewController(), nil
	}
	return wizard.Restore(w.Client, state, w.observers()...)
}

// SaveController checkpoints c's session.
func (w *Wire) SaveController(c *wizard.Controller) error {
	if err := w.Session.SaveSession(c.Snapshot(), w.Config.Passphrase); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (w *Wire) observers() []wizard.Option {
	return []wizard.Option{
		wizard.WithObserver(wizard.LogObserver(w.Log)),
		wizard.WithObserver(wizard.MetricsObserver()),
	}
}
