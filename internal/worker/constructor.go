package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func NewWorkerServer(redis *redis.Client) *asynq.Server {
	return asynq.NewServer(
		asynqRedisOpt(redis),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"email":   4,
				"default": 5,
				"low":     1,
			},
			RetryDelayFunc: retryDelay,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				log.Error().
					Err(err).
					Str("task", task.Type()).
					Str("payload", string(task.Payload())).
					Int("retried", retried).
					Int("max_retry", maxRetry).
					Msg("task failed")
			}),
		},
	)
}

func NewScheduler(redis *redis.Client) *asynq.Scheduler {
	return asynq.NewScheduler(
		asynqRedisOpt(redis),
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)
}
