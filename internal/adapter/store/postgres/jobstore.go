// Package postgres implements the durable job store on PostgreSQL. Jobs
// and results live in two tables keyed by job id; the complete transition
// writes the result blob and the status in one transaction so a partially
// computed result is never visible as complete.
package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/flocktrip/flock-backend/internal/domain"
)

// schema creates the job tables. Idempotent; run at startup.
const schema = `
create table if not exists jobs (
	id uuid primary key,
	status text not null,
	submission jsonb not null,
	error text,
	created_at timestamptz not null,
	completed_at timestamptz
);

create table if not exists results (
	job_id uuid primary key references jobs (id),
	data jsonb not null
);
`

// Store is a domain.JobStore backed by a pgx connection pool.
type Store struct {
	pool *pgxpool.Pool
}

// New creates a Store on the given pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// NewPool opens a configured connection pool for the given database URL.
func NewPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = 10
	cfg.MinConns = 1
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 30 * time.Minute

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return pool, nil
}

// EnsureSchema creates the job tables when they do not exist yet.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// CreateJob implements domain.JobStore.
func (s *Store) CreateJob(ctx context.Context, job *domain.Job) error {
	submission, err := json.Marshal(job.Submission)
	if err != nil {
		return fmt.Errorf("marshal submission: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`insert into jobs (id, status, submission, created_at) values ($1, $2, $3, $4)`,
		job.ID, string(job.Status), submission, job.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert job: %w", err)
	}
	return nil
}

// GetJob implements domain.JobStore.
func (s *Store) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	var (
		job        domain.Job
		status     string
		submission []byte
		jobErr     *string
	)
	err := s.pool.QueryRow(ctx,
		`select id, status, submission, error, created_at, completed_at from jobs where id = $1`,
		id,
	).Scan(&job.ID, &status, &submission, &jobErr, &job.CreatedAt, &job.CompletedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrJobNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select job: %w", err)
	}

	job.Status = domain.JobStatus(status)
	if jobErr != nil {
		job.Error = *jobErr
	}
	if err := json.Unmarshal(submission, &job.Submission); err != nil {
		return nil, fmt.Errorf("unmarshal submission: %w", err)
	}
	return &job, nil
}

// MarkRunning implements domain.JobStore. The guard on non-terminal
// status keeps terminal jobs immutable even under queue redelivery.
func (s *Store) MarkRunning(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx,
		`update jobs set status = $2 where id = $1 and status not in ($3, $4)`,
		id, string(domain.JobStatusRunning), string(domain.JobStatusComplete), string(domain.JobStatusFailed),
	)
	if err != nil {
		return fmt.Errorf("mark running: %w", err)
	}
	if tag.RowsAffected() == 0 {
		if _, err := s.GetJob(ctx, id); err != nil {
			return err
		}
		return domain.ErrJobTerminal
	}
	return nil
}

// SaveResult implements domain.JobStore. The result upsert and the status
// update commit together; reprocessing overwrites the previous blob.
func (s *Store) SaveResult(ctx context.Context, id string, result *domain.JobResult, completedAt time.Time) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`insert into results (job_id, data) values ($1, $2)
		 on conflict (job_id) do update set data = excluded.data`,
		id, data,
	); err != nil {
		return fmt.Errorf("upsert result: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`update jobs set status = $2, completed_at = $3 where id = $1`,
		id, string(domain.JobStatusComplete), completedAt,
	); err != nil {
		return fmt.Errorf("complete job: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// MarkFailed implements domain.JobStore.
func (s *Store) MarkFailed(ctx context.Context, id string, cause string, completedAt time.Time) error {
	_, err := s.pool.Exec(ctx,
		`update jobs set status = $2, error = $3, completed_at = $4 where id = $1`,
		id, string(domain.JobStatusFailed), cause, completedAt,
	)
	if err != nil {
		return fmt.Errorf("mark failed: %w", err)
	}
	return nil
}

// GetResult implements domain.JobStore.
func (s *Store) GetResult(ctx context.Context, id string) (*domain.JobResult, error) {
	var data []byte
	err := s.pool.QueryRow(ctx, `select data from results where job_id = $1`, id).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrResultNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select result: %w", err)
	}

	var result domain.JobResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("unmarshal result: %w", err)
	}
	return &result, nil
}

// Ensure Store implements domain.JobStore at compile time.
var _ domain.JobStore = (*Store)(nil)
