// Package scheduler provides deferred and periodic background work over
// Redis using asynq.
package scheduler

import (
	"context"
	"crypto/tls"
	"fmt"
	"time"

	"quotation_backend/platform/config"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

type Client struct {
	client *asynq.Client
	queue  string
}

// SessionResetScheduler schedules the post-confirmation reset of a form session.
type SessionResetScheduler interface {
	ScheduleSessionReset(ctx context.Context, sessionID string, delay time.Duration) error
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

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	return &Client{
		client: asynq.NewClient(opt),
		queue:  queue,
	}, nil
}

func (c *Client) Close() error {
	if c == nil || c.client == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Client) ScheduleSessionReset(ctx context.Context, sessionID string, delay time.Duration) error {
	if c == nil || c.client == nil {
		return nil
	}

	task, err := NewSessionResetTask(SessionResetPayload{SessionID: sessionID})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task, asynq.ProcessIn(delay), asynq.Queue(c.queue))
	return err
}

// NewPeriodic returns an asynq scheduler with the recurring maintenance
// tasks registered. Run alongside the worker.
func NewPeriodic(cfg config.SchedulerConfig) (*asynq.Scheduler, error) {
	opt, err := redisClientOpt(cfg.GetRedisURL(), cfg.GetRedisTLSInsecure())
	if err != nil {
		return nil, err
	}

	queue := cfg.GetAsynqQueueName()
	if queue == "" {
		queue = "default"
	}

	sched := asynq.NewScheduler(opt, nil)
	if _, err := sched.Register("@every 1h", NewOTPCleanupTask(), asynq.Queue(queue)); err != nil {
		return nil, err
	}

	return sched, nil
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
