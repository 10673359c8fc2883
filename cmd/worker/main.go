// Package main is the entry point for the trip planning queue worker. It
// claims job ids from the Redis queue and runs each job to a terminal state.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/flocktrip/flock-backend/internal/app"
	"github.com/flocktrip/flock-backend/internal/config"
	"github.com/flocktrip/flock-backend/internal/infrastructure/logger"
)

func main() {
	cfg := config.MustLoad()

	log := logger.New(logger.Config{
		Level:       cfg.Logging.Level,
		Format:      cfg.Logging.Format,
		ServiceName: "flock-worker",
	})
	logger.SetGlobal(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info().Msg("Shutting down worker...")
		cancel()
	}()

	application, err := app.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build application")
	}
	defer application.Close()

	// Jobs claimed by a worker that died stay on the processing list;
	// move them back before consuming so they are not lost.
	recovered, err := application.Queue.RecoverPending(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to recover abandoned jobs")
	} else if recovered > 0 {
		log.Info().Int("count", recovered).Msg("Recovered abandoned jobs")
	}

	worker := app.NewWorker(application.Orchestrator, application.Store, application.Queue, cfg.Search.DequeueBlock, log)

	log.Info().Str("queue", cfg.Redis.QueueKey).Msg("Worker started")
	worker.Run(ctx)
	log.Info().Msg("Worker stopped")
}
