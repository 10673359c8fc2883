// Package http provides the HTTP handler layer for the trip planning API.
package http

import (
	"github.com/labstack/echo/v4"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RegisterRoutes registers all trip planning API routes.
// It creates a versioned API group and attaches the handler methods.
func RegisterRoutes(e *echo.Echo, h *JobHandler) {
	// Health check endpoint (no version prefix)
	e.GET("/health", h.Health)

	// Swagger documentation endpoint
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// API v1 group
	api := e.Group("/api/v1")

	// Jobs group
	jobs := api.Group("/jobs")
	jobs.POST("", h.CreateJob)
	jobs.GET("/:id", h.GetJob)
}

// RegisterRoutesWithMiddleware registers routes with custom middleware.
// This allows for endpoint-specific middleware configuration.
func RegisterRoutesWithMiddleware(e *echo.Echo, h *JobHandler, middleware ...echo.MiddlewareFunc) {
	// Health check endpoint (no version prefix, no middleware)
	e.GET("/health", h.Health)

	// API v1 group with middleware
	api := e.Group("/api/v1", middleware...)

	// Jobs group
	jobs := api.Group("/jobs")
	jobs.POST("", h.CreateJob)
	jobs.GET("/:id", h.GetJob)
}
