package cache

import (
	"context"
	"time"

	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
)

type Cache interface {
	Get(ctx context.Context, key string) (*any, *app_errors.AppError)
	Set(ctx context.Context, key string, value any, ttl time.Duration) *app_errors.AppError
	Del(ctx context.Context, key string) error
}

// Locker hands out short-lived exclusive locks. A lock that is not released
// expires after its ttl, so a crashed holder never blocks forever.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (release func(context.Context), acquired bool, err *app_errors.AppError)
}
