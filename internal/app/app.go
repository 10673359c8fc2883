// Package app wires the application's collaborators into a runnable graph.
// Both binaries (the API server and the queue worker) build the same core
// and differ only in which side of it they drive.
package app

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/flocktrip/flock-backend/internal/adapter/provider/amadeus"
	"github.com/flocktrip/flock-backend/internal/adapter/queue/redisq"
	"github.com/flocktrip/flock-backend/internal/adapter/store/postgres"
	"github.com/flocktrip/flock-backend/internal/config"
	"github.com/flocktrip/flock-backend/internal/infrastructure/logger"
	"github.com/flocktrip/flock-backend/internal/infrastructure/retry"
	"github.com/flocktrip/flock-backend/internal/infrastructure/timeutil"
	"github.com/flocktrip/flock-backend/internal/usecase"
)

// App holds the wired application graph.
type App struct {
	Config *config.Config
	Log    *logger.Logger

	Pool        *pgxpool.Pool
	RedisClient *redis.Client

	Store        *postgres.Store
	Queue        *redisq.Queue
	Orchestrator *usecase.Orchestrator
}

// New builds the application graph from configuration. It connects to
// Postgres and Redis and ensures the schema exists. Connection attempts are
// retried with backoff so a backend that is still coming up (container
// orchestration start order) does not kill the process.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*App, error) {
	pool, err := retry.DoWithResult(ctx, func() (*pgxpool.Pool, error) {
		return postgres.NewPool(ctx, cfg.Database.URL)
	}, retry.StoreConfig)
	if err != nil {
		return nil, fmt.Errorf("postgres: %w", err)
	}

	store := postgres.New(pool)
	if err := retry.Do(ctx, func() error {
		return store.EnsureSchema(ctx)
	}, retry.StoreConfig); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: %w", err)
	}

	redisClient, err := retry.DoWithResult(ctx, func() (*redis.Client, error) {
		return redisq.NewClient(ctx, cfg.Redis.URL)
	}, retry.StoreConfig)
	if err != nil {
		pool.Close()
		return nil, fmt.Errorf("redis: %w", err)
	}
	queue := redisq.New(redisClient, cfg.Redis.QueueKey)

	provider := amadeus.NewClient(amadeus.Config{
		ClientID:     cfg.Amadeus.ClientID,
		ClientSecret: cfg.Amadeus.ClientSecret,
		BaseURL:      cfg.Amadeus.BaseURL,
		Timeout:      cfg.Amadeus.Timeout,
		RateLimit:    cfg.Amadeus.RateLimit,
		RateBurst:    cfg.Amadeus.RateBurst,
	}, log.Logger)

	fanout := usecase.NewSearchFanout(provider, provider, cfg.Search.Concurrency, log.Logger)
	orchestrator := usecase.NewOrchestrator(store, queue, fanout, timeutil.NewRealClock(), log.Logger)

	return &App{
		Config:       cfg,
		Log:          log,
		Pool:         pool,
		RedisClient:  redisClient,
		Store:        store,
		Queue:        queue,
		Orchestrator: orchestrator,
	}, nil
}

// Close releases the app's connections.
func (a *App) Close() {
	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Error().Err(err).Msg("Failed to close redis client")
		}
	}
	if a.Pool != nil {
		a.Pool.Close()
	}
}
