package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the trip planning domain. Callers use errors.Is to
// classify failures at the HTTP and worker boundaries.
var (
	// ErrInvalidSubmission indicates a malformed trip submission.
	ErrInvalidSubmission = errors.New("invalid submission")

	// ErrJobNotFound indicates the requested job id does not exist.
	ErrJobNotFound = errors.New("job not found")

	// ErrJobTerminal indicates an attempted transition on a job that has
	// already reached a terminal state.
	ErrJobTerminal = errors.New("job already in terminal state")

	// ErrResultNotFound indicates no result blob exists for the job yet.
	ErrResultNotFound = errors.New("result not found")

	// ErrNoMessage indicates a blocking queue dequeue elapsed with no
	// message available. It is an expected idle condition, not a failure.
	ErrNoMessage = errors.New("no message available")
)

// ProviderError wraps a failure from the external flight search provider
// for a single traveler/destination query. It never fails a job on its own.
type ProviderError struct {
	// Provider identifies the upstream system (e.g., "amadeus")
	Provider string

	// Err is the underlying cause
	Err error

	// Retryable hints whether a repeat of the same query might succeed
	Retryable bool
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap exposes the underlying error for errors.Is/As.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a non-retryable provider error.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// NewRetryableProviderError creates a provider error that marks the failure
// as transient (timeouts, rate limits).
func NewRetryableProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err, Retryable: true}
}
