package db

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisPool erstellt einen Redis-Client und prüft die Erreichbarkeit per PING.
// Der Client wird von asynq, dem Rate-Limiter und der Scheduler-Sperre gemeinsam genutzt.
// Der Caller schließt den Client mit client.Close().
func RedisPool(addr, password string, db int) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     20,
		MaxIdleConns: 5,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Error().Err(err).Str("addr", addr).Msg("Redis nicht erreichbar")
		_ = rdb.Close()
		return nil, fmt.Errorf("Verbindung zu Redis nicht möglich: %w", err)
	}

	return rdb, nil
}
