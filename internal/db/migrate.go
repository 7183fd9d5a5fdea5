package db

import (
	"context"
	"embed"
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate führt alle noch nicht angewendeten Migrationen in Dateinamen-Reihenfolge aus.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);`); err != nil {
		return fmt.Errorf("schema_migrations anlegen: %w", err)
	}

	files, err := MigrationFiles()
	if err != nil {
		return err
	}

	for _, name := range files {
		version := strings.SplitN(name, "_", 2)[0]

		var applied bool
		if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1);`, version).Scan(&applied); err != nil {
			return fmt.Errorf("migration %s prüfen: %w", name, err)
		}
		if applied {
			log.Debug().Str("migration", name).Msg("Migration bereits angewendet")
			continue
		}

		stmt, err := migrations.ReadFile(path.Join("migrations", name))
		if err != nil {
			return fmt.Errorf("migration %s lesen: %w", name, err)
		}

		tx, err := pool.Begin(ctx)
		if err != nil {
			return fmt.Errorf("transaktion für %s: %w", name, err)
		}
		if _, err := tx.Exec(ctx, string(stmt)); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("migration %s ausführen: %w", name, err)
		}
		if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1);`, version); err != nil {
			_ = tx.Rollback(ctx)
			return fmt.Errorf("migration %s vermerken: %w", name, err)
		}
		if err := tx.Commit(ctx); err != nil {
			return fmt.Errorf("migration %s committen: %w", name, err)
		}

		log.Info().Str("migration", name).Msg("Migration angewendet")
	}

	return nil
}

// MigrationFiles listet die eingebetteten Migrationen sortiert auf.
func MigrationFiles() ([]string, error) {
	entries, err := migrations.ReadDir("migrations")
	if err != nil {
		return nil, fmt.Errorf("migrationen lesen: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)
	return files, nil
}
