package web_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"umlwizard/internal/app"
	"umlwizard/internal/domain"
	"umlwizard/internal/logging"
	"umlwizard/internal/web"
	"umlwizard/internal/wizard"
)

type cannedClient struct {
	mu     sync.Mutex
	actErr error
}

func (c *cannedClient) GenerateUseCase(ctx context.Context, req domain.UseCaseRequest) (domain.UseCaseResponse, error) {
	return domain.UseCaseResponse{
		UseCaseDiagram: "Zm9v",
		UseCaseCode:    "classDiagram...",
		UseCases:       []string{"Login"},
		Actors:         []string{"User"},
	}, nil
}

func (c *cannedClient) GenerateSequence(ctx context.Context, req domain.SequenceRequest) ([]domain.WireDiagram, error) {
	return []domain.WireDiagram{{Label: "Login Sequence", Image: "YmFy"}}, nil
}

func (c *cannedClient) GenerateActivity(ctx context.Context, req domain.ActivityRequest) ([]domain.WireDiagram, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.actErr != nil {
		return nil, c.actErr
	}
	return []domain.WireDiagram{{Label: "<i>User</i> Activity", Image: "YmF6"}}, nil
}

func newTestServer(t *testing.T, client domain.DiagramClient) (*httptest.Server, *web.Registry) {
	t.Helper()
	reg := web.NewRegistry(func() *wizard.Controller { return wizard.New(client) })
	srv, err := web.NewServer(reg, logging.Discard())
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts, reg
}

// browser is an http.Client with its own cookie jar.
func browser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar, Timeout: 5 * time.Second}
}

func get(t *testing.T, c *http.Client, u string) string {
	t.Helper()
	resp, err := c.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func post(t *testing.T, c *http.Client, u string, form url.Values) string {
	t.Helper()
	resp, err := c.PostForm(u, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode, "redirect should land on the page")
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(b)
}

func sessionOf(t *testing.T, c *http.Client, base string) domain.SessionState {
	t.Helper()
	var st domain.SessionState
	require.NoError(t, json.Unmarshal([]byte(get(t, c, base+"/api/session")), &st))
	return st
}

func TestWalkthrough(t *testing.T) {
	ts, _ := newTestServer(t, &cannedClient{})
	b := browser(t)

	page := get(t, b, ts.URL+"/")
	assert.Contains(t, page, `placeholder="Enter SRS Document..."`)

	page = post(t, b, ts.URL+"/submit", url.Values{"srs_text": {"   "}})
	assert.Contains(t, page, "Please enter the requirements text first.")
	assert.Equal(t, domain.StepRequirements, sessionOf(t, b, ts.URL).Step)

	page = post(t, b, ts.URL+"/submit", url.Values{"srs_text": {"A user logs in."}})
	assert.Contains(t, page, "Generate Use Case Diagram")
	assert.Equal(t, domain.StepUseCase, sessionOf(t, b, ts.URL).Step)

	page = post(t, b, ts.URL+"/usecase", nil)
	assert.Contains(t, page, `src="data:image/png;base64,Zm9v"`)
	assert.Contains(t, page, "Generate Sequence Diagram")
	assert.Contains(t, page, "Use cases: Login")

	page = post(t, b, ts.URL+"/sequence", nil)
	assert.Contains(t, page, "<h4>Login Sequence</h4>")
	assert.Contains(t, page, `src="data:image/png;base64,YmFy"`)
	assert.Contains(t, page, "Generate Activity Diagram")

	page = post(t, b, ts.URL+"/activity", nil)
	assert.Contains(t, page, "<h4>User Activity</h4>", "labels are stripped of markup")
	assert.Contains(t, page, `src="data:image/png;base64,YmF6"`)

	st := sessionOf(t, b, ts.URL)
	assert.Equal(t, domain.StepActivity, st.Step)
	assert.Len(t, st.Activity, 1)
}

func TestFailureIsShownAndRetryable(t *testing.T) {
	client := &cannedClient{actErr: errors.New("502 Bad Gateway")}
	ts, _ := newTestServer(t, client)
	b := browser(t)

	post(t, b, ts.URL+"/submit", url.Values{"srs_text": {"A user logs in."}})
	post(t, b, ts.URL+"/usecase", nil)
	post(t, b, ts.URL+"/sequence", nil)
	page := post(t, b, ts.URL+"/activity", nil)

	assert.Contains(t, page, "Generation failed (generateActivityDiagram)")
	assert.Contains(t, page, "502 Bad Gateway")
	assert.Contains(t, page, "Generate Activity Diagram", "button is offered again")
	st := sessionOf(t, b, ts.URL)
	assert.Equal(t, domain.StepActivity, st.Step)
	assert.Equal(t, domain.PhaseFailed, st.Phase)
	assert.Empty(t, st.Activity)

	client.mu.Lock()
	client.actErr = nil
	client.mu.Unlock()
	page = post(t, b, ts.URL+"/activity", nil)
	assert.NotContains(t, page, "Generation failed")
	assert.Len(t, sessionOf(t, b, ts.URL).Activity, 1)
}

func TestOutOfOrderPostIsRejected(t *testing.T) {
	ts, _ := newTestServer(t, &cannedClient{})
	b := browser(t)

	page := post(t, b, ts.URL+"/sequence", nil)
	assert.Contains(t, page, "That step is not available right now.")
	assert.Equal(t, domain.StepRequirements, sessionOf(t, b, ts.URL).Step)
}

func TestBrowsersHaveSeparateSessions(t *testing.T) {
	ts, reg := newTestServer(t, &cannedClient{})
	alice, bob := browser(t), browser(t)

	post(t, alice, ts.URL+"/submit", url.Values{"srs_text": {"A user logs in."}})
	get(t, bob, ts.URL+"/")

	assert.Equal(t, domain.StepUseCase, sessionOf(t, alice, ts.URL).Step)
	assert.Equal(t, domain.StepRequirements, sessionOf(t, bob, ts.URL).Step)
	assert.Equal(t, 2, reg.Len())
}

func TestOneBrowsersFailuresDoNotBlockAnother(t *testing.T) {
	var hits atomic.Int32
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, "render crashed", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	cfg := app.DefaultConfig(t.TempDir())
	cfg.ServiceURL = upstream.URL
	cfg.Log.Level = "error"
	cfg.Breaker.MaxFailures = 3
	w, err := app.NewWire(cfg)
	require.NoError(t, err)

	reg := web.NewRegistry(w.NewSessionController)
	srv, err := web.NewServer(reg, logging.Discard())
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Routes())
	defer ts.Close()

	alice, bob := browser(t), browser(t)
	post(t, alice, ts.URL+"/submit", url.Values{"srs_text": {"A user logs in."}})
	for i := 0; i < 3; i++ {
		post(t, alice, ts.URL+"/usecase", nil)
	}
	require.Equal(t, int32(3), hits.Load())

	// Alice's breaker is now open; her next attempt stays local.
	post(t, alice, ts.URL+"/usecase", nil)
	assert.Equal(t, int32(3), hits.Load())

	post(t, bob, ts.URL+"/submit", url.Values{"srs_text": {"An admin bans a user."}})
	post(t, bob, ts.URL+"/usecase", nil)
	assert.Equal(t, int32(4), hits.Load(), "bob's request must reach the service")

	st := sessionOf(t, bob, ts.URL)
	require.NotNil(t, st.Failure)
	assert.Contains(t, st.Failure.Message, "render crashed")
}

func TestReset(t *testing.T) {
	ts, reg := newTestServer(t, &cannedClient{})
	b := browser(t)

	post(t, b, ts.URL+"/submit", url.Values{"srs_text": {"A user logs in."}})
	before := sessionOf(t, b, ts.URL).ID

	page := post(t, b, ts.URL+"/reset", nil)
	assert.Contains(t, page, "Enter SRS Document")
	after := sessionOf(t, b, ts.URL)
	assert.NotEqual(t, before, after.ID)
	assert.Equal(t, domain.StepRequirements, after.Step)
	assert.Equal(t, 1, reg.Len())
}

func TestHealthzAndMetrics(t *testing.T) {
	ts, _ := newTestServer(t, &cannedClient{})
	assert.Equal(t, "ok", get(t, http.DefaultClient, ts.URL+"/healthz"))
	get(t, http.DefaultClient, ts.URL+"/metrics")
}

func TestRegistrySweep(t *testing.T) {
	reg := web.NewRegistry(func() *wizard.Controller { return wizard.New(&cannedClient{}) })
	id, _ := reg.Create()

	assert.Equal(t, 0, reg.Sweep(time.Hour))
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, 1, reg.Sweep(time.Millisecond))
	_, ok := reg.Get(id)
	assert.False(t, ok)
}
