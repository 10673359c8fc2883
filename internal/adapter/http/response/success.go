// Package response provides standardized HTTP response builders for the trip planning API.
package response

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// HealthResponse represents the health check response.
type HealthResponse struct {
	Status string `json:"status"`
}

// Health writes a health check response.
func Health(c echo.Context) error {
	return c.JSON(http.StatusOK, &HealthResponse{
		Status: "ok",
	})
}

// JobCreated writes a 201 Created response for a newly created job.
func JobCreated(c echo.Context, body interface{}) error {
	return c.JSON(http.StatusCreated, body)
}

// JobStatus writes a 200 OK response with a job status payload.
func JobStatus(c echo.Context, body interface{}) error {
	return c.JSON(http.StatusOK, body)
}
