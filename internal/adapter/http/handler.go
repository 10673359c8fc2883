// Package http provides the HTTP handler layer for the trip planning API.
// It handles request parsing, validation, response formatting, and error mapping.
package http

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/flocktrip/flock-backend/internal/adapter/http/response"
	"github.com/flocktrip/flock-backend/internal/domain"
	"github.com/flocktrip/flock-backend/internal/usecase"
)

// JobHandler handles HTTP requests for trip planning jobs.
type JobHandler struct {
	useCase usecase.TripJobUseCase
}

// NewJobHandler creates a new JobHandler with the given use case.
func NewJobHandler(uc usecase.TripJobUseCase) *JobHandler {
	return &JobHandler{
		useCase: uc,
	}
}

// CreateJob handles POST /api/v1/jobs
//
// @Summary Submit a trip planning job
// @Description Accepts a group trip submission and returns a job id to poll. The search itself runs asynchronously.
// @Tags jobs
// @Accept json
// @Produce json
// @Param request body CreateJobRequest true "Trip submission"
// @Success 201 {object} CreateJobResponse
// @Failure 400 {object} response.ErrorDetail "Validation error"
// @Failure 500 {object} response.ErrorDetail "Internal error"
// @Router /jobs [post]
func (h *JobHandler) CreateJob(c echo.Context) error {
	var req CreateJobRequest

	// Bind request body
	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	// Validate request
	if err := req.Validate(); err != nil {
		return h.handleValidationError(c, err)
	}

	// Resolve defaults and convert to the domain submission
	submission := ToDomainSubmission(&req)

	jobID, err := h.useCase.Submit(c.Request().Context(), submission)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.JobCreated(c, ToCreateJobResponse(jobID))
}

// GetJob handles GET /api/v1/jobs/:id
//
// @Summary Get job status and result
// @Description Returns the job's lifecycle state. The result is included once the job is complete.
// @Tags jobs
// @Produce json
// @Param id path string true "Job ID"
// @Success 200 {object} JobResponse
// @Failure 404 {object} response.ErrorDetail "Job not found"
// @Failure 500 {object} response.ErrorDetail "Internal error"
// @Router /jobs/{id} [get]
func (h *JobHandler) GetJob(c echo.Context) error {
	jobID := c.Param("id")

	job, result, err := h.useCase.GetJob(c.Request().Context(), jobID)
	if err != nil {
		return h.handleError(c, err)
	}

	return response.JobStatus(c, ToJobResponse(job, result))
}

// handleValidationError handles validation errors and returns a 400 response.
func (h *JobHandler) handleValidationError(c echo.Context, err error) error {
	var validationErrs *ValidationErrors
	if errors.As(err, &validationErrs) {
		return response.ValidationError(c, validationErrs.ToMap())
	}

	// Fallback for non-structured validation errors
	return response.ValidationErrorWithMessage(c, err.Error())
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *JobHandler) handleError(c echo.Context, err error) error {
	// Check for invalid submission (domain validation)
	if errors.Is(err, domain.ErrInvalidSubmission) {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	// Check for unknown job id
	if errors.Is(err, domain.ErrJobNotFound) {
		return response.NotFound(c)
	}

	// Check for context deadline exceeded (timeout)
	if errors.Is(err, context.DeadlineExceeded) {
		return response.GatewayTimeout(c)
	}

	// Check for context cancelled
	if errors.Is(err, context.Canceled) {
		return response.RequestCancelled(c)
	}

	// Default to internal server error
	return response.InternalServerError(c)
}

// Health handles GET /health
// Simple health check endpoint.
func (h *JobHandler) Health(c echo.Context) error {
	return response.Health(c)
}
