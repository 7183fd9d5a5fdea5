package utils

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type runReport struct {
	Created int `json:"created"`
}

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestCacheData_RoundTripAndMiss(t *testing.T) {
	mr, rdb := setupRedis(t)
	ctx := context.Background()

	miss, err := GetCacheData[runReport](ctx, rdb, "scheduler:last_run")
	assert.Nil(t, err)
	assert.Nil(t, miss)

	require.Nil(t, SetCacheData(ctx, rdb, "scheduler:last_run", &runReport{Created: 3}, time.Hour))
	got, err := GetCacheData[runReport](ctx, rdb, "scheduler:last_run")
	require.Nil(t, err)
	assert.Equal(t, 3, got.Created)
	assert.Equal(t, time.Hour, mr.TTL("scheduler:last_run"))

	require.NoError(t, DeleteCacheData(ctx, rdb, "scheduler:last_run"))
	assert.False(t, mr.Exists("scheduler:last_run"))
}

func TestLock_ExclusiveUntilReleased(t *testing.T) {
	mr, rdb := setupRedis(t)
	ctx := context.Background()

	token, ok, err := AcquireLock(ctx, rdb, "lock:auto-maintenance", time.Minute)
	require.Nil(t, err)
	require.True(t, ok)

	_, ok, err = AcquireLock(ctx, rdb, "lock:auto-maintenance", time.Minute)
	require.Nil(t, err)
	assert.False(t, ok)

	// a stranger's token must not free the lock
	require.NoError(t, ReleaseLock(ctx, rdb, "lock:auto-maintenance", "someone-else"))
	assert.True(t, mr.Exists("lock:auto-maintenance"))

	require.NoError(t, ReleaseLock(ctx, rdb, "lock:auto-maintenance", token))
	assert.False(t, mr.Exists("lock:auto-maintenance"))
}

func TestLock_ExpiresAfterTTL(t *testing.T) {
	mr, rdb := setupRedis(t)
	ctx := context.Background()

	_, ok, err := AcquireLock(ctx, rdb, "lock:auto-maintenance", time.Minute)
	require.Nil(t, err)
	require.True(t, ok)

	mr.FastForward(2 * time.Minute)

	_, ok, err = AcquireLock(ctx, rdb, "lock:auto-maintenance", time.Minute)
	require.Nil(t, err)
	assert.True(t, ok)
}
