// Package redisq implements the task queue on Redis lists. Enqueue pushes
// job ids onto the pending list; workers claim with BLMOVE into a
// processing list and acknowledge with LREM once the job is done. Ids left
// on the processing list by a crashed worker are moved back at startup.
package redisq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/flocktrip/flock-backend/internal/domain"
)

// DefaultQueueKey is the pending list key used when none is configured.
const DefaultQueueKey = "flock:jobs"

// Queue is a domain.TaskQueue backed by a Redis list pair.
type Queue struct {
	client     *redis.Client
	queueKey   string
	processKey string
}

// New creates a Queue on the given client. queueKey names the pending
// list; the processing list is derived from it.
func New(client *redis.Client, queueKey string) *Queue {
	if queueKey == "" {
		queueKey = DefaultQueueKey
	}
	return &Queue{
		client:     client,
		queueKey:   queueKey,
		processKey: queueKey + ":processing",
	}
}

// NewClient opens a Redis client for the given URL and verifies the
// connection.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// Enqueue implements domain.TaskQueue.
func (q *Queue) Enqueue(ctx context.Context, jobID string) error {
	if err := q.client.LPush(ctx, q.queueKey, jobID).Err(); err != nil {
		return fmt.Errorf("enqueue job: %w", err)
	}
	return nil
}

// Dequeue implements domain.TaskQueue. It blocks for at most the given
// duration and returns domain.ErrNoMessage when nothing arrived. The
// claimed id moves to the processing list until Ack removes it.
func (q *Queue) Dequeue(ctx context.Context, block time.Duration) (string, error) {
	jobID, err := q.client.BLMove(ctx, q.queueKey, q.processKey, "RIGHT", "LEFT", block).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrNoMessage
	}
	if err != nil {
		return "", fmt.Errorf("dequeue job: %w", err)
	}
	return jobID, nil
}

// Ack implements domain.TaskQueue. It removes the claimed id from the
// processing list.
func (q *Queue) Ack(ctx context.Context, jobID string) error {
	if err := q.client.LRem(ctx, q.processKey, 1, jobID).Err(); err != nil {
		return fmt.Errorf("ack job: %w", err)
	}
	return nil
}

// RecoverPending moves ids abandoned on the processing list back onto the
// pending list. Call once at worker startup, before consuming; completed
// jobs redelivered this way are skipped by the terminal-state check.
func (q *Queue) RecoverPending(ctx context.Context) (int, error) {
	recovered := 0
	for {
		_, err := q.client.LMove(ctx, q.processKey, q.queueKey, "RIGHT", "LEFT").Result()
		if errors.Is(err, redis.Nil) {
			return recovered, nil
		}
		if err != nil {
			return recovered, fmt.Errorf("recover pending: %w", err)
		}
		recovered++
	}
}

// Ensure Queue implements domain.TaskQueue at compile time.
var _ domain.TaskQueue = (*Queue)(nil)
