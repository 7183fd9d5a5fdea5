package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

// ConnectPool richtet einen Verbindungs-Pool zur Datenbank ein.
func ConnectPool(dsn string, maxConns int32) *pgxpool.Pool {
	// Parsen der DSN
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		log.Err(err).Msg("Fehler beim Parsen der Datenbank-DSN")
		return nil
	}

	// Der Scheduler verarbeitet mehrere Pläne parallel, jeder mit eigener Transaktion
	cfg.MaxConns = maxConns
	cfg.MinConns = min(5, maxConns)
	cfg.MaxConnIdleTime = time.Hour
	cfg.HealthCheckPeriod = time.Minute * 5

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		log.Err(err).Msg("Fehler beim Erstellen des Datenbank-Pools")
		return nil
	}

	if err := pool.Ping(ctx); err != nil {
		log.Err(err).Msg("Datenbank nicht erreichbar")
		pool.Close()
		return nil
	}

	return pool
}
