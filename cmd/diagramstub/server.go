package main

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"umlwizard/internal/diagram"
	"umlwizard/internal/domain"
	"umlwizard/internal/logging"
)

// pixel is a transparent 1x1 PNG, base64 encoded.
const pixel = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAQAAAC1HAwCAAAAC0lEQVR42mNkYAAAAAYAAjCB0C8AAAAASUVORK5CYII="

type stub struct {
	fail bool
}

func newStub(fail bool) *stub { return &stub{fail: fail} }

func (s *stub) routes(log logrus.FieldLogger) http.Handler {
	r := mux.NewRouter()
	r.Use(logging.AccessLog(log))
	r.HandleFunc(diagram.PathUseCase, s.handleUseCase).Methods(http.MethodPost)
	r.HandleFunc(diagram.PathSequence, s.handleSequence).Methods(http.MethodPost)
	r.HandleFunc(diagram.PathActivity, s.handleActivity).Methods(http.MethodPost)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}).Methods(http.MethodGet)
	return r
}

func (s *stub) handleUseCase(w http.ResponseWriter, r *http.Request) {
	var req domain.UseCaseRequest
	if !s.decode(w, r, &req) {
		return
	}
	useCases, actors := extract(req.SRSText)
	writeJSON(w, domain.UseCaseResponse{
		UseCaseDiagram: pixel,
		UseCaseCode:    useCaseCode(useCases, actors),
		UseCases:       useCases,
		Actors:         actors,
	})
}

func (s *stub) handleSequence(w http.ResponseWriter, r *http.Request) {
	var req domain.SequenceRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, diagrams(req.UseCases))
}

func (s *stub) handleActivity(w http.ResponseWriter, r *http.Request) {
	var req domain.ActivityRequest
	if !s.decode(w, r, &req) {
		return
	}
	writeJSON(w, diagrams(req.Actors))
}

// decode reads the JSON body into v. It reports false once it has written
// an error response.
func (s *stub) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	defer r.Body.Close()
	if s.fail {
		http.Error(w, "diagram rendering failed", http.StatusBadGateway)
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// extract treats every non-empty line as a use case, except lines starting
// with "Actor:" which name an actor.
func extract(srs string) (useCases, actors []string) {
	useCases, actors = []string{}, []string{}
	for _, line := range strings.Split(srs, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if name, ok := strings.CutPrefix(line, "Actor:"); ok {
			if name = strings.TrimSpace(name); name != "" {
				actors = append(actors, name)
			}
			continue
		}
		useCases = append(useCases, line)
	}
	return useCases, actors
}

func useCaseCode(useCases, actors []string) string {
	var b strings.Builder
	b.WriteString("@startuml\n")
	for _, a := range actors {
		b.WriteString("actor \"" + a + "\"\n")
	}
	for _, u := range useCases {
		b.WriteString("usecase \"" + u + "\"\n")
	}
	b.WriteString("@enduml\n")
	return b.String()
}

func diagrams(labels []string) []domain.WireDiagram {
	out := make([]domain.WireDiagram, 0, len(labels))
	for _, l := range labels {
		out = append(out, domain.WireDiagram{Label: l, Image: pixel})
	}
	return out
}
