package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"leadscout_backend/platform/config"
	"leadscout_backend/platform/logger"

	"github.com/hibiken/asynq"
)

// Refresher recomputes next best actions for open leads.
type Refresher interface {
	RefreshNextBestActions(ctx context.Context) (int, error)
}

type Worker struct {
	server    *asynq.Server
	mux       *asynq.ServeMux
	refresher Refresher
	log       *logger.Logger
}

func NewWorker(cfg config.SchedulerConfig, refresher Refresher, log *logger.Logger) (*Worker, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	concurrency := cfg.GetAsynqConcurrency()
	if concurrency < 1 {
		concurrency = 10
	}

	server := asynq.NewServer(opt, asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			queueName(cfg): 1,
		},
	})

	w := newWorker(refresher, log)
	w.server = server
	return w, nil
}

func newWorker(refresher Refresher, log *logger.Logger) *Worker {
	mux := asynq.NewServeMux()
	w := &Worker{
		mux:       mux,
		refresher: refresher,
		log:       log,
	}
	mux.HandleFunc(TaskRefreshNextBestAction, w.handleRefreshNextBestAction)
	return w
}

func (w *Worker) Run(ctx context.Context) {
	if w == nil || w.server == nil {
		return
	}

	go func() {
		<-ctx.Done()
		w.server.Shutdown()
	}()

	if err := w.server.Run(w.mux); err != nil {
		w.log.Error("scheduler worker stopped", "error", err)
	}
}

func (w *Worker) handleRefreshNextBestAction(ctx context.Context, task *asynq.Task) error {
	payload, err := ParseRefreshNextBestActionPayload(task)
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	updated, err := w.refresher.RefreshNextBestActions(ctx)
	if err != nil {
		return err
	}

	w.log.Info("next best action refresh done",
		slog.String("trigger", payload.Trigger),
		slog.Time("requested_at", payload.RequestedAt),
		slog.Int("updated", updated),
	)
	return nil
}
