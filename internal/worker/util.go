package worker

import (
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
)

const maxRetryDelay = 10 * time.Minute

func asynqRedisOpt(redis *redis.Client) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     redis.Options().Addr,
		Password: redis.Options().Password,
		DB:       redis.Options().DB,
	}
}

// retryDelay backs off exponentially from one second up to maxRetryDelay.
func retryDelay(n int, _ error, _ *asynq.Task) time.Duration {
	if n > 10 {
		return maxRetryDelay
	}
	return min(time.Duration(1<<n)*time.Second, maxRetryDelay)
}
