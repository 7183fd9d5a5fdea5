package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/bridge"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/collaborator"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/config"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/db"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/mail"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/queue"
	schedule_case "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/use-cases/schedule-case"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/worker"
	worker_handler "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/worker/handlers"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	cfg := config.LoadConfig()
	if cfg == nil {
		log.Fatal().Msg("missing configuration")
	}

	dbPool := db.ConnectPool(cfg.DATABASE.Postgres.DSN, cfg.DATABASE.Postgres.MaxConns)
	redisPool, err := db.RedisPool(cfg.DATABASE.Redis.Addr, cfg.DATABASE.Redis.Password, cfg.DATABASE.Redis.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("redis pool")
	}

	taskQueue := queue.NewTaskQueue(redisPool)

	// the cron tick runs the planner in the worker; its transitions go through the same bridge as the API
	scheduler := schedule_case.NewScheduleService(dbPool, redisPool, bridge.NewQueueBridge(taskQueue, cfg.BRIDGE.Timeout), schedule_case.Options{
		LookaheadDays: cfg.SCHEDULER.LookaheadDays,
		Parallelism:   cfg.SCHEDULER.Parallelism,
		LockTTL:       cfg.SCHEDULER.LockTTL,
	})

	handler := worker_handler.NewWorkerHandler(dbPool, worker_handler.Deps{
		Scheduler: scheduler,
		Queue:     taskQueue,
		Cracks:    collaborator.NewCrackClient(cfg.COLLABORATOR.CrackURL, cfg.COLLABORATOR.Timeout),
		Materials: collaborator.NewMaterialClient(cfg.COLLABORATOR.MaterialURL, cfg.COLLABORATOR.Timeout),
		Mailer:    mail.NewMailer(cfg),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	// run worker
	errChan := make(chan error, 1)
	go func() {
		log.Info().Msg("Starting worker server...")
		specs := worker.CronSpecs{AutoMaintenance: cfg.SCHEDULER.Cron, DeductionSweep: cfg.SCHEDULER.SweepCron}
		if err := worker.RunWorker(ctx, redisPool, handler, specs); err != nil {
			errChan <- err
		}
	}()

	// wait for shutdown signal or error
	select {
	case sig := <-sigChan:
		log.Info().Str("signal", sig.String()).Msg("received shutdown signal")
		cancel()
		dbPool.Close()
		redisPool.Close()
		log.Info().Msg("worker shutdown complete")
	case err := <-errChan:
		log.Fatal().Err(err).Msg("worker crashed")
	}
}
