package web

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/flosch/pongo2/v6"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"umlwizard/internal/domain"
	"umlwizard/internal/logging"
	"umlwizard/internal/render"
	"umlwizard/internal/wizard"
)

// CookieName carries the browser's session id.
const CookieName = "umlwizard_session"

//go:embed page.html
var pageHTML string

// Server renders the wizard page and handles its form posts.
type Server struct {
	sessions *Registry
	log      logrus.FieldLogger
	page     *pongo2.Template
}

// NewServer parses the page template and returns a server over sessions.
func NewServer(sessions *Registry, log logrus.FieldLogger) (*Server, error) {
	page, err := pongo2.FromString(pageHTML)
	if err != nil {
		return nil, fmt.Errorf("parse page template: %w", err)
	}
	return &Server{sessions: sessions, log: log, page: page}, nil
}

// Routes returns the HTTP handler for all routes.
func (s *Server) Routes() http.Handler {
	r := mux.NewRouter()
	r.HandleFunc("/", s.handlePage).Methods(http.MethodGet)
	r.HandleFunc("/submit", s.handleSubmit).Methods(http.MethodPost)
	r.HandleFunc("/usecase", s.handleRemote((*wizard.Controller).GenerateUseCaseDiagram)).Methods(http.MethodPost)
	r.HandleFunc("/sequence", s.handleRemote((*wizard.Controller).GenerateSequenceDiagram)).Methods(http.MethodPost)
	r.HandleFunc("/activity", s.handleRemote((*wizard.Controller).GenerateActivityDiagram)).Methods(http.MethodPost)
	r.HandleFunc("/reset", s.handleReset).Methods(http.MethodPost)
	r.HandleFunc("/api/session", s.handleSessionJSON).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.Use(logging.AccessLog(s.log))
	return r
}

// session returns the caller's session, creating one (and its cookie) when
// the cookie is missing or refers to a forgotten session.
func (s *Server) session(w http.ResponseWriter, r *http.Request) (domain.SessionID, *wizard.Controller) {
	if ck, err := r.Cookie(CookieName); err == nil {
		id := domain.SessionID(ck.Value)
		if c, ok := s.sessions.Get(id); ok {
			return id, c
		}
	}
	id, c := s.sessions.Create()
	setSessionCookie(w, id)
	return id, c
}

func setSessionCookie(w http.ResponseWriter, id domain.SessionID) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id.String(),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	id, c := s.session(w, r)
	ctx := pageContext(c.Snapshot())
	ctx["notice"] = s.sessions.TakeNotice(id)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.page.ExecuteWriter(ctx, w); err != nil {
		s.log.WithError(err).Error("render page")
	}
}

func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id, c := s.session(w, r)
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := c.SubmitRequirements(r.PostFormValue("srs_text")); err != nil {
		s.sessions.SetNotice(id, noticeFor(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleRemote(op func(*wizard.Controller, context.Context) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, c := s.session(w, r)
		// Once issued, a generation runs to completion even if the browser
		// goes away; the transport timeout still applies.
		err := op(c, context.WithoutCancel(r.Context()))
		if err != nil && !wizard.IsRemoteCallError(err) {
			s.sessions.SetNotice(id, noticeFor(err))
		}
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if ck, err := r.Cookie(CookieName); err == nil {
		s.sessions.Delete(domain.SessionID(ck.Value))
	}
	id, _ := s.sessions.Create()
	setSessionCookie(w, id)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleSessionJSON(w http.ResponseWriter, r *http.Request) {
	_, c := s.session(w, r)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(c.Snapshot())
}

func noticeFor(err error) string {
	switch {
	case errors.Is(err, wizard.ErrEmptyRequirements):
		return "Please enter the requirements text first."
	case errors.Is(err, wizard.ErrBusy):
		return "A diagram is already being generated. Please wait."
	case errors.Is(err, wizard.ErrWrongStep):
		return "That step is not available right now."
	}
	return err.Error()
}

// pageContext flattens state into plain values for the template.
func pageContext(st domain.SessionState) pongo2.Context {
	ctx := pongo2.Context{
		"step":         int(st.Step),
		"loading":      st.Loading(),
		"requirements": st.Requirements,
		"sequence":     diagramViews(st.Sequence, "Sequence"),
		"activity":     diagramViews(st.Activity, "Activity"),
	}
	if f := st.Failure; f != nil {
		ctx["failure"] = f.Message
		ctx["failure_op"] = f.Op
	}
	if uc := st.UseCase; uc != nil {
		ctx["usecase_image"] = uc.Diagram.String()
		ctx["use_cases"] = uc.UseCases
		ctx["actors"] = uc.Actors
	}
	return ctx
}

func diagramViews(ds []domain.LabeledDiagram, kind string) []map[string]string {
	out := make([]map[string]string, 0, len(ds))
	for i, d := range ds {
		out = append(out, map[string]string{
			"label": render.Label(d.Label, fmt.Sprintf("%s %d", kind, i+1)),
			"src":   d.Image.String(),
		})
	}
	return out
}
