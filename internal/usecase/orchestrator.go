package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/flocktrip/flock-backend/internal/domain"
	"github.com/flocktrip/flock-backend/internal/infrastructure/timeutil"
)

// TripJobUseCase is the application-facing interface for trip planning
// jobs. The HTTP adapter drives Submit and GetJob; the queue worker drives
// Process.
type TripJobUseCase interface {
	// Submit validates the submission, creates a pending job and enqueues
	// it. Returns the new job id.
	Submit(ctx context.Context, sub domain.TripSubmission) (string, error)

	// GetJob returns the job record and, when the job is complete, its
	// result. The result is nil for non-complete jobs.
	GetJob(ctx context.Context, id string) (*domain.Job, *domain.JobResult, error)

	// Process runs one claimed job to a terminal state.
	Process(ctx context.Context, jobID string) error
}

// Orchestrator coordinates the job state machine: it owns the
// pending -> running -> {complete, failed} transitions, drives the search
// fanout, aggregates per destination and persists the result.
type Orchestrator struct {
	store  domain.JobStore
	queue  domain.TaskQueue
	fanout *SearchFanout
	clock  timeutil.Clock
	log    zerolog.Logger
}

// NewOrchestrator wires the orchestrator's collaborators.
func NewOrchestrator(store domain.JobStore, queue domain.TaskQueue, fanout *SearchFanout, clock timeutil.Clock, log zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		store:  store,
		queue:  queue,
		fanout: fanout,
		clock:  clock,
		log:    log,
	}
}

// Submit implements TripJobUseCase.Submit. The precondition is a validated
// submission; Validate is still run as a guard so a malformed submission
// can never become a job.
func (o *Orchestrator) Submit(ctx context.Context, sub domain.TripSubmission) (string, error) {
	if err := sub.Validate(); err != nil {
		return "", err
	}

	jobID := uuid.NewString()
	job := domain.NewJob(jobID, sub, o.clock.Now().UTC())

	if err := o.store.CreateJob(ctx, job); err != nil {
		return "", fmt.Errorf("create job: %w", err)
	}
	o.log.Info().
		Str("job_id", jobID).
		Int("travelers", len(sub.Travelers)).
		Int("destinations", len(sub.Destinations)).
		Str("outbound_date", sub.OutboundDate).
		Str("return_date", sub.ReturnDate).
		Msg("Job created with status=pending")

	// The job stays pending if the hand-off fails; re-enqueueing is an
	// operator decision, the record itself is intact.
	if err := o.queue.Enqueue(ctx, jobID); err != nil {
		o.log.Error().Str("job_id", jobID).Err(err).Msg("Failed to enqueue job")
		return "", fmt.Errorf("enqueue job: %w", err)
	}
	o.log.Info().Str("job_id", jobID).Msg("Job enqueued")

	return jobID, nil
}

// GetJob implements TripJobUseCase.GetJob.
func (o *Orchestrator) GetJob(ctx context.Context, id string) (*domain.Job, *domain.JobResult, error) {
	job, err := o.store.GetJob(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if job.Status != domain.JobStatusComplete {
		return job, nil, nil
	}

	result, err := o.store.GetResult(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrResultNotFound) {
			// Complete without a result blob should be impossible given
			// the store's atomic write; surface the job rather than fail.
			o.log.Error().Str("job_id", id).Msg("Complete job has no stored result")
			return job, nil, nil
		}
		return nil, nil, err
	}
	return job, result, nil
}

// Process implements TripJobUseCase.Process. It is safe to re-run for the
// same job: terminal jobs are skipped, and re-running a claimed job
// overwrites the same result (jobs are immutable keys).
//
// Per-pair provider errors never fail the job; only orchestration-level
// faults (the job cannot be loaded, the result cannot be persisted) do.
func (o *Orchestrator) Process(ctx context.Context, jobID string) (err error) {
	log := o.log.With().Str("job_id", jobID).Logger()

	job, err := o.store.GetJob(ctx, jobID)
	if err != nil {
		return fmt.Errorf("load job %s: %w", jobID, err)
	}
	if job.Status.IsTerminal() {
		log.Info().Str("status", string(job.Status)).Msg("Skipping job already in terminal state")
		return nil
	}

	defer func() {
		if r := recover(); r != nil {
			cause := fmt.Sprintf("job panicked: %v", r)
			o.failJob(ctx, jobID, cause)
			err = errors.New(cause)
		}
	}()

	if err := o.store.MarkRunning(ctx, jobID); err != nil {
		return fmt.Errorf("mark job %s running: %w", jobID, err)
	}
	log.Info().Msg("Status set to running")

	outcomes := o.fanout.Run(ctx, job)
	destNames := o.fanout.ResolveDestinationNames(ctx, job.Submission.Destinations)

	// Aggregate in submission destination order for a deterministic result.
	destinations := make([]domain.DestinationResult, 0, len(job.Submission.Destinations))
	for _, dest := range job.Submission.Destinations {
		rankedPerTraveler := make([][]domain.RoundTripOffer, len(job.Submission.Travelers))
		for i := range job.Submission.Travelers {
			rankedPerTraveler[i] = outcomes[Pair{TravelerIndex: i, Destination: dest}].Offers
		}
		if res := AggregateDestination(dest, destNames[dest], job.Submission.Travelers, rankedPerTraveler, log); res != nil {
			destinations = append(destinations, *res)
		}
	}

	completedAt := o.clock.Now().UTC()
	result := &domain.JobResult{
		JobID:        jobID,
		Status:       domain.JobStatusComplete,
		CompletedAt:  &completedAt,
		Destinations: destinations,
	}

	if err := o.store.SaveResult(ctx, jobID, result, completedAt); err != nil {
		o.failJob(ctx, jobID, fmt.Sprintf("persist result: %v", err))
		return fmt.Errorf("persist result for job %s: %w", jobID, err)
	}

	log.Info().Int("viable_destinations", len(destinations)).Msg("Job complete")
	return nil
}

// failJob records an orchestration fault. A failure to write the failure
// itself is only logged; the queue's redelivery will retry the job.
func (o *Orchestrator) failJob(ctx context.Context, jobID, cause string) {
	if err := o.store.MarkFailed(ctx, jobID, cause, o.clock.Now().UTC()); err != nil {
		o.log.Error().Str("job_id", jobID).Str("cause", cause).Err(err).Msg("Failed to mark job failed")
		return
	}
	o.log.Error().Str("job_id", jobID).Str("cause", cause).Msg("Job failed")
}

// Ensure Orchestrator implements TripJobUseCase at compile time.
var _ TripJobUseCase = (*Orchestrator)(nil)
