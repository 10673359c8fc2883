package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=domain

// QueryConstraints is the half of a traveler's filter set that can be
// pushed into the provider query. An empty ExcludedAirlines slice means the
// parameter must be omitted from the outbound request entirely.
type QueryConstraints struct {
	NonStop          bool
	ExcludedAirlines []string
}

// SearchQuery describes one round-trip availability search for a single
// adult. Travelers are never grouped into one multi-passenger query because
// each has an independent origin and filter set.
type SearchQuery struct {
	Origin        string
	Destination   string
	DepartureDate string
	ReturnDate    string
	Adults        int
	Constraints   QueryConstraints
}

// SearchProvider is the narrow interface onto the external flight search
// system. Implementations own authentication, rate limiting and timeouts.
type SearchProvider interface {
	// Search returns the raw round-trip offers for one query, or an error
	// when the provider call failed.
	Search(ctx context.Context, query SearchQuery) ([]RoundTripOffer, error)
}

// LocationResolver resolves an airport code to a display name. Resolution
// is best effort: implementations return the raw code on any failure and
// never propagate an error to the caller.
type LocationResolver interface {
	ResolveCityName(ctx context.Context, iataCode string) string
}

// JobStore is the durable record of jobs and their results, keyed by job
// id. SaveResult must persist the result and the complete status together
// so a partially-computed result is never visible as complete.
type JobStore interface {
	// CreateJob persists a new pending job.
	CreateJob(ctx context.Context, job *Job) error

	// GetJob returns the job record, or ErrJobNotFound.
	GetJob(ctx context.Context, id string) (*Job, error)

	// MarkRunning transitions the job to running. Returns ErrJobTerminal
	// when the job already reached a terminal state.
	MarkRunning(ctx context.Context, id string) error

	// SaveResult atomically persists the result and transitions the job to
	// complete with the given terminal timestamp. Re-saving the same job's
	// result overwrites the previous blob (reprocessing is idempotent).
	SaveResult(ctx context.Context, id string, result *JobResult, completedAt time.Time) error

	// MarkFailed transitions the job to failed with a human-readable cause.
	MarkFailed(ctx context.Context, id string, cause string, completedAt time.Time) error

	// GetResult returns the persisted result, or ErrResultNotFound.
	GetResult(ctx context.Context, id string) (*JobResult, error)
}

// TaskQueue hands one message per job to exactly one worker at a time.
// Delivery is at-least-once: a message claimed by a worker that dies is
// eventually redelivered, so job processing must be idempotent.
type TaskQueue interface {
	// Enqueue publishes a job id for processing.
	Enqueue(ctx context.Context, jobID string) error

	// Dequeue blocks up to the given duration for the next job id and
	// claims it. Returns ErrNoMessage when the wait elapsed empty.
	Dequeue(ctx context.Context, block time.Duration) (string, error)

	// Ack releases the claim on a processed job id.
	Ack(ctx context.Context, jobID string) error
}
