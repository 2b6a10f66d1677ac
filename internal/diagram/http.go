package diagram

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"

	"umlwizard/internal/domain"
	"umlwizard/internal/metrics"
)

// DefaultBaseURL is the public diagram service.
const DefaultBaseURL = "https://www.uml-microservice.flint.software"

const (
	PathUseCase  = "/uml/generate-usecase"
	PathSequence = "/uml/generate-sequence"
	PathActivity = "/uml/generate-activity"
)

// maxErrorBody caps how much of a failed response body ends up in an error.
const maxErrorBody = 512

var (
	// ErrStatus matches every *StatusError.
	ErrStatus = errors.New("unexpected status from diagram service")
	// ErrMalformedResponse is wrapped when a reply cannot be decoded.
	ErrMalformedResponse = errors.New("malformed diagram service response")
)

// HTTP talks to the diagram service over JSON/HTTP.
type HTTP struct {
	Base    string
	HTTP    *http.Client
	Breaker *gobreaker.CircuitBreaker // optional
}

// NewHTTP returns a client for the service at base. A nil client means
// http.DefaultClient.
func NewHTTP(base string, client *http.Client) *HTTP {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTP{Base: strings.TrimRight(base, "/"), HTTP: client}
}

func (c *HTTP) GenerateUseCase(
	ctx context.Context,
	req domain.UseCaseRequest,
) (domain.UseCaseResponse, error) {
	var out *domain.UseCaseResponse
	if err := c.post(ctx, PathUseCase, req, &out); err != nil {
		return domain.UseCaseResponse{}, err
	}
	if out == nil {
		return domain.UseCaseResponse{}, fmt.Errorf("%w: %s: empty body", ErrMalformedResponse, PathUseCase)
	}
	return *out, nil
}

func (c *HTTP) GenerateSequence(
	ctx context.Context,
	req domain.SequenceRequest,
) ([]domain.WireDiagram, error) {
	return c.postDiagrams(ctx, PathSequence, req)
}

func (c *HTTP) GenerateActivity(
	ctx context.Context,
	req domain.ActivityRequest,
) ([]domain.WireDiagram, error) {
	return c.postDiagrams(ctx, PathActivity, req)
}

func (c *HTTP) postDiagrams(ctx context.Context, path string, in any) ([]domain.WireDiagram, error) {
	var out []domain.WireDiagram
	if err := c.post(ctx, path, in, &out); err != nil {
		return nil, err
	}
	// "null" decodes cleanly into a nil slice; the service always sends a list.
	if out == nil {
		return nil, fmt.Errorf("%w: %s: expected a list of diagrams", ErrMalformedResponse, path)
	}
	return out, nil
}

// post runs one request, through the breaker when one is configured.
func (c *HTTP) post(ctx context.Context, path string, in any, out any) error {
	if c.Breaker == nil {
		return c.do(ctx, path, in, out)
	}
	_, err := c.Breaker.Execute(func() (interface{}, error) {
		return nil, c.do(ctx, path, in, out)
	})
	return err
}

func (c *HTTP) do(ctx context.Context, path string, in any, out any) (err error) {
	start := time.Now()
	status := "error"
	defer func() {
		metrics.DiagramRequests.WithLabelValues(path, status).Inc()
		metrics.DiagramDuration.WithLabelValues(path).Observe(time.Since(start).Seconds())
	}()

	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	status = strconv.Itoa(resp.StatusCode)

	if resp.StatusCode/100 != 2 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Path:   path,
			Status: resp.Status,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(body)),
		}
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrMalformedResponse, path, err)
	}
	return nil
}

// StatusError is returned for a non-2xx reply. It matches ErrStatus.
type StatusError struct {
	Path   string
	Status string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%v: post %s: %s: %s", ErrStatus, e.Path, e.Status, e.Body)
	}
	return fmt.Sprintf("%v: post %s: %s", ErrStatus, e.Path, e.Status)
}

func (e *StatusError) Is(target error) bool { return target == ErrStatus }

// ServerSide reports whether the service itself failed, as opposed to
// rejecting this particular request.
func (e *StatusError) ServerSide() bool { return e.Code >= 500 }

var _ domain.DiagramClient = (*HTTP)(nil)
