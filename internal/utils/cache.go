package utils

import (
	"context"
	"time"

	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/redis/go-redis/v9"
)

// GetCacheData versucht, einen Wert aus Redis zu lesen und in den generischen Typ T zu unmarshalen.
// Bei Cache-Miss wird (nil, nil) zurückgegeben.
func GetCacheData[T any](ctx context.Context, rdb *redis.Client, cacheKey string) (*T, *app_errors.AppError) {
	val, err := rdb.Get(ctx, cacheKey).Result()
	if err == redis.Nil {
		return nil, nil // Cache-miss
	} else if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	var data T
	if err := json.Unmarshal([]byte(val), &data); err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	return &data, nil
}

// SetCacheData serialisiert das gegebene Objekt (T) als JSON und speichert es mit Ablaufzeit in Redis.
func SetCacheData[T any](ctx context.Context, rdb *redis.Client, cacheKey string, data *T, expire time.Duration) *app_errors.AppError {
	bytes, err := json.Marshal(data)
	if err != nil {
		return app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}

	if err := rdb.Set(ctx, cacheKey, bytes, expire).Err(); err != nil {
		return app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}

	return nil
}

// DeleteCacheData löscht den angegebenen cacheKey aus Redis. Kein Fehler, wenn Key nicht existiert.
func DeleteCacheData(ctx context.Context, rdb *redis.Client, cacheKey string) error {
	return rdb.Del(ctx, cacheKey).Err()
}

// releaseScript löscht den Lock nur, wenn er noch dem Aufrufer gehört.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// AcquireLock setzt lockKey per SET NX mit TTL. Rückgabe: Token des Halters und ob der Lock erworben wurde.
func AcquireLock(ctx context.Context, rdb *redis.Client, lockKey string, ttl time.Duration) (string, bool, *app_errors.AppError) {
	token, err := gonanoid.New()
	if err != nil {
		return "", false, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}

	ok, err := rdb.SetNX(ctx, lockKey, token, ttl).Result()
	if err != nil {
		return "", false, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	return token, ok, nil
}

// ReleaseLock gibt lockKey frei, sofern token noch der aktuelle Halter ist.
func ReleaseLock(ctx context.Context, rdb *redis.Client, lockKey, token string) error {
	return releaseScript.Run(ctx, rdb, []string{lockKey}, token).Err()
}
