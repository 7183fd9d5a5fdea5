package cache

import (
	"context"
	"time"

	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/utils"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(redis *redis.Client) *RedisCache {
	return &RedisCache{client: redis}
}

func (r *RedisCache) Get(ctx context.Context, key string) (*any, *app_errors.AppError) {
	return utils.GetCacheData[any](ctx, r.client, key)
}

func (r *RedisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) *app_errors.AppError {
	return utils.SetCacheData(ctx, r.client, key, &value, ttl)
}

func (r *RedisCache) Del(ctx context.Context, key string) error {
	return utils.DeleteCacheData(ctx, r.client, key)
}

func (r *RedisCache) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context), bool, *app_errors.AppError) {
	token, ok, err := utils.AcquireLock(ctx, r.client, key, ttl)
	if err != nil || !ok {
		return func(context.Context) {}, false, err
	}

	release := func(ctx context.Context) {
		if err := utils.ReleaseLock(ctx, r.client, key, token); err != nil {
			log.Warn().Err(err).Str("lock", key).Msg("Lock konnte nicht freigegeben werden, läuft per TTL ab")
		}
	}
	return release, true, nil
}
