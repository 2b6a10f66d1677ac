package app_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umlwizard/internal/app"
	"umlwizard/internal/diagram"
	"umlwizard/internal/domain"
)

func TestWire_CheckpointsAcrossControllers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != diagram.PathUseCase {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"use_case_diagram":"Zm9v","usecase_code":"c","use_cases":["Login"],"actors":["User"]}`))
	}))
	defer srv.Close()

	cfg := app.DefaultConfig(t.TempDir())
	cfg.ServiceURL = srv.URL
	cfg.Log.Level = "error"
	w, err := app.NewWire(cfg)
	require.NoError(t, err)

	// First "process": submit and save.
	c, err := w.LoadController()
	require.NoError(t, err)
	require.NoError(t, c.SubmitRequirements("A user logs in."))
	require.NoError(t, w.SaveController(c))
	id := c.Snapshot().ID

	// Second "process": picks up at step 2.
	c, err = w.LoadController()
	require.NoError(t, err)
	assert.Equal(t, id, c.Snapshot().ID)
	require.NoError(t, c.GenerateUseCaseDiagram(context.Background()))
	require.NoError(t, w.SaveController(c))

	c, err = w.LoadController()
	require.NoError(t, err)
	st := c.Snapshot()
	assert.Equal(t, domain.StepSequence, st.Step)
	assert.Equal(t, domain.DataURI("data:image/png;base64,Zm9v"), st.UseCase.Diagram)
}

func TestNewWire_RejectsInvalidConfig(t *testing.T) {
	cfg := app.DefaultConfig(t.TempDir())
	cfg.ServiceURL = "not a url"
	_, err := app.NewWire(cfg)
	assert.Error(t, err)
}
