package domain

import "time"

// JobStatus is the lifecycle state of a trip planning job.
type JobStatus string

// Job lifecycle states. A job starts in pending, is claimed by exactly one
// worker into running, and ends in exactly one of complete or failed.
const (
	JobStatusPending  JobStatus = "pending"
	JobStatusRunning  JobStatus = "running"
	JobStatusComplete JobStatus = "complete"
	JobStatusFailed   JobStatus = "failed"
)

// IsValid checks if the status is a known value.
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusRunning, JobStatusComplete, JobStatusFailed:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status is final. Terminal jobs are never
// mutated again.
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusComplete || s == JobStatusFailed
}

// CanTransitionTo reports whether the state machine permits moving from s
// to next: pending -> running -> {complete, failed}.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	switch s {
	case JobStatusPending:
		return next == JobStatusRunning
	case JobStatusRunning:
		return next == JobStatusComplete || next == JobStatusFailed
	default:
		return false
	}
}

// Job is the durable record of one trip planning request.
type Job struct {
	// ID is the job's unique identifier (a UUID string)
	ID string `json:"id"`

	// Status is the current lifecycle state
	Status JobStatus `json:"status"`

	// CreatedAt is when the job was accepted
	CreatedAt time.Time `json:"created_at"`

	// CompletedAt is set when the job reaches a terminal state
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Submission is the immutable trip request this job was created from
	Submission TripSubmission `json:"submission"`

	// Error holds a human-readable cause when Status is failed
	Error string `json:"error,omitempty"`
}

// NewJob creates a pending job for the given submission.
func NewJob(id string, submission TripSubmission, createdAt time.Time) *Job {
	return &Job{
		ID:         id,
		Status:     JobStatusPending,
		CreatedAt:  createdAt,
		Submission: submission,
	}
}
