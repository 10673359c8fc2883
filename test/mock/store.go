package mock

import (
	"context"
	"sync"
	"time"

	"github.com/flocktrip/flock-backend/internal/domain"
)

// JobStore is an in-memory implementation of domain.JobStore with the same
// semantics as the Postgres store: terminal states are immutable, and a
// result and the complete status become visible together.
type JobStore struct {
	mu      sync.Mutex
	jobs    map[string]*domain.Job
	results map[string]*domain.JobResult

	// CreateErr, GetJobErr, MarkRunningErr and SaveResultErr inject
	// failures into the corresponding operations when non-nil.
	CreateErr      error
	GetJobErr      error
	MarkRunningErr error
	SaveResultErr  error
}

// NewJobStore creates an empty in-memory job store.
func NewJobStore() *JobStore {
	return &JobStore{
		jobs:    make(map[string]*domain.Job),
		results: make(map[string]*domain.JobResult),
	}
}

// CreateJob implements domain.JobStore.
func (s *JobStore) CreateJob(_ context.Context, job *domain.Job) error {
	if s.CreateErr != nil {
		return s.CreateErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *job
	s.jobs[job.ID] = &stored
	return nil
}

// GetJob implements domain.JobStore.
func (s *JobStore) GetJob(_ context.Context, id string) (*domain.Job, error) {
	if s.GetJobErr != nil {
		return nil, s.GetJobErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, domain.ErrJobNotFound
	}
	copied := *job
	return &copied, nil
}

// MarkRunning implements domain.JobStore.
func (s *JobStore) MarkRunning(_ context.Context, id string) error {
	if s.MarkRunningErr != nil {
		return s.MarkRunningErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	if job.Status.IsTerminal() {
		return domain.ErrJobTerminal
	}
	job.Status = domain.JobStatusRunning
	return nil
}

// SaveResult implements domain.JobStore.
func (s *JobStore) SaveResult(_ context.Context, id string, result *domain.JobResult, completedAt time.Time) error {
	if s.SaveResultErr != nil {
		return s.SaveResultErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	stored := *result
	s.results[id] = &stored
	job.Status = domain.JobStatusComplete
	job.CompletedAt = &completedAt
	return nil
}

// MarkFailed implements domain.JobStore.
func (s *JobStore) MarkFailed(_ context.Context, id string, cause string, completedAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return domain.ErrJobNotFound
	}
	job.Status = domain.JobStatusFailed
	job.Error = cause
	job.CompletedAt = &completedAt
	return nil
}

// GetResult implements domain.JobStore.
func (s *JobStore) GetResult(_ context.Context, id string) (*domain.JobResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result, ok := s.results[id]
	if !ok {
		return nil, domain.ErrResultNotFound
	}
	copied := *result
	return &copied, nil
}

// JobCount returns the number of stored jobs.
func (s *JobStore) JobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.jobs)
}

var _ domain.JobStore = (*JobStore)(nil)

// TaskQueue is an in-memory implementation of domain.TaskQueue backed by a
// buffered channel. Dequeue claims a message; Ack records the release so
// tests can assert every claimed message was acknowledged.
type TaskQueue struct {
	messages chan string

	mu      sync.Mutex
	claimed map[string]int
	acked   map[string]int

	// EnqueueErr injects a failure into Enqueue when non-nil.
	EnqueueErr error
}

// NewTaskQueue creates an in-memory queue with room for capacity messages.
func NewTaskQueue(capacity int) *TaskQueue {
	return &TaskQueue{
		messages: make(chan string, capacity),
		claimed:  make(map[string]int),
		acked:    make(map[string]int),
	}
}

// Enqueue implements domain.TaskQueue.
func (q *TaskQueue) Enqueue(_ context.Context, jobID string) error {
	if q.EnqueueErr != nil {
		return q.EnqueueErr
	}
	q.messages <- jobID
	return nil
}

// Dequeue implements domain.TaskQueue.
func (q *TaskQueue) Dequeue(ctx context.Context, block time.Duration) (string, error) {
	select {
	case jobID := <-q.messages:
		q.mu.Lock()
		q.claimed[jobID]++
		q.mu.Unlock()
		return jobID, nil
	case <-time.After(block):
		return "", domain.ErrNoMessage
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Ack implements domain.TaskQueue.
func (q *TaskQueue) Ack(_ context.Context, jobID string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.acked[jobID]++
	return nil
}

// Len returns the number of messages waiting to be claimed.
func (q *TaskQueue) Len() int {
	return len(q.messages)
}

// Acked returns how many times the given job id was acknowledged.
func (q *TaskQueue) Acked(jobID string) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.acked[jobID]
}

var _ domain.TaskQueue = (*TaskQueue)(nil)
