package scheduler

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"time"

	"leadscout_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const (
	refreshMaxRetry = 3
	refreshTimeout  = 10 * time.Minute
)

type Client struct {
	client *asynq.Client
	queue  string
}

// RefreshScheduler enqueues next best action refreshes.
type RefreshScheduler interface {
	EnqueueNextBestActionRefresh(ctx context.Context, trigger string, at time.Time) error
}

func NewClient(cfg config.SchedulerConfig) (*Client, error) {
	redisURL := cfg.GetRedisURL()
	if redisURL == "" {
		return nil, fmt.Errorf("redis url not configured")
	}

	opt, err := redisClientOpt(redisURL, cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queueName(cfg),
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

// EnqueueNextBestActionRefresh enqueues one refresh per trigger and minute.
// A second request for the same minute is a no-op, so several scheduler
// replicas can fire the same cron entry.
func (c *Client) EnqueueNextBestActionRefresh(ctx context.Context, trigger string, at time.Time) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewRefreshNextBestActionTask(RefreshNextBestActionPayload{Trigger: trigger, RequestedAt: at.UTC()})
	if err != nil {
		return err
	}

	taskID := fmt.Sprintf("%s:%s:%s", TaskRefreshNextBestAction, trigger, at.UTC().Format("200601021504"))
	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(c.queue),
		asynq.TaskID(taskID),
		asynq.MaxRetry(refreshMaxRetry),
		asynq.Timeout(refreshTimeout),
	)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

func queueName(cfg config.SchedulerConfig) string {
	if queue := cfg.GetAsynqQueueName(); queue != "" {
		return queue
	}
	return "default"
}

func redisClientOpt(redisURL string, tlsInsecure bool) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	var tlsConfig *tls.Config
	if opt.TLSConfig != nil {
		clone := opt.TLSConfig.Clone()
		if tlsInsecure {
			clone.InsecureSkipVerify = true
		}
		tlsConfig = clone
	} else if tlsInsecure {
		tlsConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: tlsConfig,
	}, nil
}
