package scheduler

import (
	"context"
	"fmt"
	"time"

	"leadscout_backend/platform/logger"

	"github.com/robfig/cron/v3"
)

const TriggerCron = "cron"

// NewCron returns a cron runner that enqueues a next best action refresh on
// spec (standard five-field syntax). The caller starts and stops it.
func NewCron(spec string, client RefreshScheduler, log *logger.Logger) (*cron.Cron, error) {
	c := cron.New(cron.WithLocation(time.UTC))
	_, err := c.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := client.EnqueueNextBestActionRefresh(ctx, TriggerCron, time.Now()); err != nil {
			log.Error("failed to enqueue next best action refresh", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return c, nil
}
