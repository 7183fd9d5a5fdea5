package main

// Package main startet die HTTP-API des Wartungsdienstes: Konfiguration laden,
// Postgres und Redis verbinden, Schema migrieren, Bridge zur Task-Queue
// aufbauen, Fiber mit Middleware und Routern starten und bei SIGINT/SIGTERM
// sauber herunterfahren.

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/bridge"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/config"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/db"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/i18n"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/middleware"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/queue"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/routers"
	schedule_case "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/use-cases/schedule-case"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const limiterRedisDB = 1

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	// 0. I18N Einführung
	i18nSvc := i18n.NewInitI18nService()
	// 1. Konfiguration laden
	cfg := config.LoadConfig()
	if cfg == nil {
		log.Fatal().Msg("Konfiguration fehlt, Abbruch.")
	}
	// 2. Postgres- und Redis-Pool erstellen
	dbPool := db.ConnectPool(cfg.DATABASE.Postgres.DSN, cfg.DATABASE.Postgres.MaxConns)
	redisPool, err := db.RedisPool(cfg.DATABASE.Redis.Addr, cfg.DATABASE.Redis.Password, cfg.DATABASE.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Redis-Pool konnte nicht initialisiert werden")
	}
	// 3. Schema anwenden
	if cfg.DATABASE.Postgres.ApplyMigrations {
		migrateCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		err := db.Migrate(migrateCtx, dbPool)
		cancel()
		if err != nil {
			log.Fatal().Err(err).Msg("Migration fehlgeschlagen")
		}
	}
	// 4. Paseto-Maker initialisieren
	paseto, err := utils.NewPasetoMaker(cfg.APP_SECRET.Paseto.HexKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Paseto-Maker konnte nicht initialisiert werden")
	}
	// 5. Bridge: Übergänge werden erst nach dem Commit in die Queue gelegt
	taskQueue := queue.NewTaskQueue(redisPool)
	queueBridge := bridge.NewQueueBridge(taskQueue, cfg.BRIDGE.Timeout)

	// 6. Fiber-App mit ErrorHandler, RequestID-, Sprach- und Logger-Middleware
	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.ErrorHandlerMiddleware(i18nSvc),
	})
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.AcceptLanguageMiddleware())
	app.Use(middleware.LoggerMiddleware())

	// 7. Routen registrieren
	routers.SetupRoutes(app, routers.Deps{
		DB:     dbPool,
		Redis:  redisPool,
		I18n:   i18nSvc,
		Paseto: paseto,
		Bridge: queueBridge,
		Scheduler: schedule_case.Options{
			LookaheadDays: cfg.SCHEDULER.LookaheadDays,
			Parallelism:   cfg.SCHEDULER.Parallelism,
			LockTTL:       cfg.SCHEDULER.LockTTL,
		},
		LimiterDB: limiterRedisDB,
	})

	go func() {
		log.Info().Msgf("Starte %s auf Port %s", cfg.APP.Name, cfg.APP.Port)
		if err := app.Listen(fmt.Sprintf(":%s", cfg.APP.Port)); err != nil {
			if err == http.ErrServerClosed {
				log.Info().Msg("Server ordnungsgemäß herunterfahren.")
			} else {
				log.Fatal().Err(err).Msgf("Der Server konnte nicht gestartet werden, %v", err)
			}
		}
	}()

	// 8. Graceful Shutdown bei SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	<-ctx.Done()
	stop()
	log.Warn().Msg("Shutdown-Signal empfangen... Vorbereitung zum Herunterfahren.")

	// Fiber zuerst, damit laufende Handler ihre Transaktionen noch abschließen
	if err := app.Shutdown(); err != nil {
		log.Error().Err(err).Msgf("Beim Herunterfahren ist ein Fehler aufgetreten: %v", err)
	}

	if redisPool != nil {
		redisPool.Close()
		log.Info().Msg("Redis-Pool erfolgreich geschlossen.")
	}

	if dbPool != nil {
		dbPool.Close()
		log.Info().Msg("DB-Pool erfolgreich geschlossen.")
	}
	log.Info().Msg("Server ordnungsgemäß herunterfahren.")
}
