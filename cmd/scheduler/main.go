package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leadscout_backend/internal/events"
	"leadscout_backend/internal/integration/kafka"
	"leadscout_backend/internal/leads"
	leadrepo "leadscout_backend/internal/leads/repository"
	"leadscout_backend/internal/scheduler"
	"leadscout_backend/platform/config"
	"leadscout_backend/platform/db"
	"leadscout_backend/platform/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	log := logger.New(cfg.Env)
	log.Info("starting scheduler", "env", cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if err := withRetry(ctx, log, "database connection", 5, 2*time.Second, func() error {
		p, err := db.NewPool(ctx, cfg)
		if err != nil {
			return err
		}
		pool = p
		return nil
	}); err != nil {
		log.Error("failed to connect to database", "error", err)
		panic("failed to connect to database: " + err.Error())
	}
	defer pool.Close()

	eventBus := events.NewInMemoryBus(log)
	if cfg.IsKafkaEnabled() {
		forwarder := kafka.NewForwarder(kafka.NewWriter(cfg), log)
		forwarder.Register(eventBus)
		defer func() { _ = forwarder.Close() }()
	}
	// Drain async handlers before the forwarder closes.
	defer eventBus.Wait()

	// Worker-side lead service; refreshes never call text providers.
	var refresher leads.NextBestActionRefresher = leads.NewService(leadrepo.New(pool), nil, leads.Deps{Bus: eventBus, Logger: log})

	client, err := scheduler.NewClient(cfg)
	if err != nil {
		log.Error("failed to initialize scheduler client", "error", err)
		panic("failed to initialize scheduler client: " + err.Error())
	}
	defer func() { _ = client.Close() }()

	refreshCron, err := scheduler.NewCron(cfg.GetNextBestActionRefreshCron(), client, log)
	if err != nil {
		log.Error("failed to initialize refresh cron", "error", err)
		panic("failed to initialize refresh cron: " + err.Error())
	}
	refreshCron.Start()
	defer func() { <-refreshCron.Stop().Done() }()
	log.Info("next best action refresh scheduled", "cron", cfg.GetNextBestActionRefreshCron())

	worker, err := scheduler.NewWorker(cfg, refresher, log)
	if err != nil {
		log.Error("failed to initialize scheduler worker", "error", err)
		panic("failed to initialize scheduler worker: " + err.Error())
	}

	worker.Run(ctx)
}

func withRetry(ctx context.Context, log *logger.Logger, name string, attempts int, baseDelay time.Duration, fn func() error) error {
	if attempts < 1 {
		return errors.New(name + ": invalid retry attempts")
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := fn(); err == nil {
			return nil
		} else {
			lastErr = err
			log.Warn("retryable operation failed", "operation", name, "attempt", attempt, "error", err)
		}

		if attempt < attempts {
			delay := time.Duration(attempt*attempt) * baseDelay
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
	}

	return errors.New(name + ": " + lastErr.Error())
}
