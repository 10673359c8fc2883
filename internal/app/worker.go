package app

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/flocktrip/flock-backend/internal/domain"
	"github.com/flocktrip/flock-backend/internal/infrastructure/logger"
	"github.com/flocktrip/flock-backend/internal/infrastructure/retry"
	"github.com/flocktrip/flock-backend/internal/usecase"
)

// Worker is the queue-consumer side of the pipeline. It claims job ids,
// drives each claimed job to a terminal state and acknowledges messages
// according to the outcome: a job that never reached a terminal state keeps
// its message claimed so recovery can redeliver it.
type Worker struct {
	jobs  usecase.TripJobUseCase
	store domain.JobStore
	queue domain.TaskQueue
	block time.Duration
	log   *logger.Logger
}

// NewWorker wires a worker over the given collaborators. block is how long
// one dequeue call waits for a message before polling again.
func NewWorker(jobs usecase.TripJobUseCase, store domain.JobStore, queue domain.TaskQueue, block time.Duration, log *logger.Logger) *Worker {
	return &Worker{
		jobs:  jobs,
		store: store,
		queue: queue,
		block: block,
		log:   log,
	}
}

// Run is the consume loop. It blocks on the queue and processes one job at
// a time until the context is cancelled.
func (w *Worker) Run(ctx context.Context) {
	for {
		jobID, err := w.dequeue(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			if errors.Is(err, domain.ErrNoMessage) {
				continue
			}
			w.log.Error().Err(err).Msg("Dequeue failed after retries")
			continue
		}

		w.handle(ctx, jobID)

		if ctx.Err() != nil {
			return
		}
	}
}

// dequeue claims the next job id, retrying transient broker errors with
// backoff. An empty queue is not an error worth retrying; it is returned
// immediately so the loop can block again.
func (w *Worker) dequeue(ctx context.Context) (string, error) {
	cfg := retry.QueueConfig.WithRetryIf(func(err error) bool {
		return !errors.Is(err, domain.ErrNoMessage)
	})
	return retry.DoWithResult(ctx, func() (string, error) {
		return w.queue.Dequeue(ctx, w.block)
	}, cfg)
}

// handle runs one claimed job and decides the message's fate.
func (w *Worker) handle(ctx context.Context, jobID string) {
	jobLog := w.log.WithJobID(jobID)

	// A payload that is not a job id can never succeed; drop it instead
	// of letting it wedge the queue.
	if _, err := uuid.Parse(jobID); err != nil {
		jobLog.Error().Msg("Discarding malformed queue payload")
		w.ack(ctx, jobLog, jobID)
		return
	}

	jobLog.Info().Msg("Processing job")
	if err := w.jobs.Process(ctx, jobID); err != nil {
		switch {
		case errors.Is(err, domain.ErrJobNotFound):
			// No record will ever appear for this id; redelivery cannot
			// help, so the message is dropped like a malformed payload.
			jobLog.Error().Err(err).Msg("Discarding message for unknown job")
		case !w.reachedTerminal(ctx, jobID):
			// The failure happened before a terminal transition: the record
			// could not be loaded or claimed. The message stays on the
			// processing list so recovery redelivers the job.
			jobLog.Error().Err(err).Msg("Job not in a terminal state, leaving message claimed for redelivery")
			return
		default:
			// The record already reflects the failure; failed is terminal
			// and redelivery of a terminal job would only be skipped.
			jobLog.Error().Err(err).Msg("Job processing failed")
		}
	}

	w.ack(ctx, jobLog, jobID)
}

// reachedTerminal reports whether the job record is in a terminal state.
// When the store cannot answer, the job is treated as non-terminal so the
// message stays claimed.
func (w *Worker) reachedTerminal(ctx context.Context, jobID string) bool {
	job, err := w.store.GetJob(ctx, jobID)
	if err != nil {
		return false
	}
	return job.Status.IsTerminal()
}

func (w *Worker) ack(ctx context.Context, log *logger.Logger, jobID string) {
	// Acknowledge outside the worker's cancellation so a shutdown during
	// processing does not strand the message on the processing list.
	if ctx.Err() != nil {
		ctx = context.Background()
	}
	if err := w.queue.Ack(ctx, jobID); err != nil {
		log.Error().Err(err).Msg("Failed to acknowledge message")
	}
}
