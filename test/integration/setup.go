// Package integration provides helpers and integration tests for the trip
// planning system. Integration tests verify that components work together
// correctly, including HTTP handlers, the job orchestrator, and the mock
// flight provider.
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	httpAdapter "github.com/flocktrip/flock-backend/internal/adapter/http"
	"github.com/flocktrip/flock-backend/internal/domain"
	"github.com/flocktrip/flock-backend/internal/infrastructure/timeutil"
	"github.com/flocktrip/flock-backend/internal/usecase"
	"github.com/flocktrip/flock-backend/test/mock"
)

// Harness wires a complete in-process pipeline: the HTTP server, an
// in-memory store and queue, and the mock provider. Tests drive the HTTP
// surface and run the worker side by draining the queue themselves.
type Harness struct {
	Echo         *echo.Echo
	Provider     *mock.Provider
	Store        *mock.JobStore
	Queue        *mock.TaskQueue
	Orchestrator *usecase.Orchestrator
}

// NewHarness builds a pipeline around the given provider with the given
// search concurrency ceiling.
func NewHarness(provider *mock.Provider, concurrency int) *Harness {
	store := mock.NewJobStore()
	queue := mock.NewTaskQueue(128)
	log := zerolog.Nop()

	fanout := usecase.NewSearchFanout(provider, provider, concurrency, log)
	orch := usecase.NewOrchestrator(store, queue, fanout, timeutil.NewRealClock(), log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	handler := httpAdapter.NewJobHandler(orch)
	httpAdapter.RegisterRoutes(e, handler)

	return &Harness{
		Echo:         e,
		Provider:     provider,
		Store:        store,
		Queue:        queue,
		Orchestrator: orch,
	}
}

// DrainQueue plays the worker role: it claims every waiting job, processes
// it and acknowledges the message. Processing errors fail the test.
func (h *Harness) DrainQueue(t *testing.T) int {
	t.Helper()
	ctx := context.Background()

	processed := 0
	for {
		jobID, err := h.Queue.Dequeue(ctx, 10*time.Millisecond)
		if errors.Is(err, domain.ErrNoMessage) {
			return processed
		}
		require.NoError(t, err)

		require.NoError(t, h.Orchestrator.Process(ctx, jobID))
		require.NoError(t, h.Queue.Ack(ctx, jobID))
		processed++
	}
}

// Request represents a test HTTP request configuration.
type Request struct {
	Method      string
	Path        string
	Body        interface{}
	ContentType string
}

// Response represents a test HTTP response.
type Response struct {
	Code    int
	Body    []byte
	Headers http.Header
}

// Do executes a test request and returns the response.
func (h *Harness) Do(req Request) Response {
	var bodyReader *bytes.Reader
	if req.Body != nil {
		bodyBytes, _ := json.Marshal(req.Body)
		bodyReader = bytes.NewReader(bodyBytes)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	httpReq := httptest.NewRequest(req.Method, req.Path, bodyReader)

	if req.ContentType != "" {
		httpReq.Header.Set(echo.HeaderContentType, req.ContentType)
	} else if req.Body != nil {
		httpReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	h.Echo.ServeHTTP(rec, httpReq)

	return Response{
		Code:    rec.Code,
		Body:    rec.Body.Bytes(),
		Headers: rec.Header(),
	}
}

// SubmitJob posts a job submission.
func (h *Harness) SubmitJob(body interface{}) Response {
	return h.Do(Request{
		Method: http.MethodPost,
		Path:   "/api/v1/jobs",
		Body:   body,
	})
}

// GetJob fetches a job's status and result.
func (h *Harness) GetJob(jobID string) Response {
	return h.Do(Request{
		Method: http.MethodGet,
		Path:   "/api/v1/jobs/" + jobID,
	})
}

// HealthRequest makes a health check request.
func (h *Harness) HealthRequest() Response {
	return h.Do(Request{
		Method: http.MethodGet,
		Path:   "/health",
	})
}

// SubmitAndGetID posts a submission, asserts it was accepted and returns
// the new job id.
func (h *Harness) SubmitAndGetID(t *testing.T, body interface{}) string {
	t.Helper()
	resp := h.SubmitJob(body)
	require.Equal(t, http.StatusCreated, resp.Code, "submit should be accepted: %s", resp.Body)

	created, err := resp.ParseCreateResponse()
	require.NoError(t, err)
	require.NotEmpty(t, created.JobID)
	return created.JobID
}

// ParseCreateResponse parses the response body as a job creation response.
func (r *Response) ParseCreateResponse() (*httpAdapter.CreateJobResponse, error) {
	var resp httpAdapter.CreateJobResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseJobResponse parses the response body as a job status response.
func (r *Response) ParseJobResponse() (*httpAdapter.JobResponse, error) {
	var resp httpAdapter.JobResponse
	if err := json.Unmarshal(r.Body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ParseError parses the response body to extract error information.
func (r *Response) ParseError() (map[string]interface{}, error) {
	var errResp map[string]interface{}
	if err := json.Unmarshal(r.Body, &errResp); err != nil {
		return nil, err
	}
	return errResp, nil
}

// TravelerBody is a helper struct for building traveler entries.
type TravelerBody struct {
	Name          string                 `json:"name"`
	OriginAirport string                 `json:"origin_airport"`
	Filters       map[string]interface{} `json:"filters,omitempty"`
}

// SubmissionBody is a helper struct for building job submission bodies.
type SubmissionBody struct {
	Travelers      []TravelerBody         `json:"travelers"`
	Destinations   []string               `json:"destinations"`
	OutboundDate   string                 `json:"outbound_date"`
	ReturnDate     string                 `json:"return_date"`
	DefaultFilters map[string]interface{} `json:"default_filters,omitempty"`
}

// DefaultSubmission returns a valid two-traveler, two-destination
// submission body. Dates are fixed in the future relative to nothing; the
// domain does not reject past dates, only malformed or inverted ones.
func DefaultSubmission() SubmissionBody {
	return SubmissionBody{
		Travelers: []TravelerBody{
			{Name: "Alice", OriginAirport: "JFK"},
			{Name: "Bob", OriginAirport: "BOS"},
		},
		Destinations: []string{"MIA", "CUN"},
		OutboundDate: "2026-04-15",
		ReturnDate:   "2026-04-22",
	}
}

// ProviderForSubmission configures offers for every traveler origin to
// every destination of the given submission, count offers per route.
func ProviderForSubmission(sub SubmissionBody, count int) *mock.Provider {
	provider := mock.NewProvider()
	for _, tr := range sub.Travelers {
		for _, dest := range sub.Destinations {
			provider.WithRouteOffers(tr.OriginAirport, dest, mock.SampleOffers(tr.OriginAirport, dest, count))
		}
	}
	return provider
}
