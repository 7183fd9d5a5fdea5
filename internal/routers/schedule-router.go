package routers

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	schedule_handlers "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/handlers/schedule"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	redis_fiber "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	triggerLimit  = 3
	triggerWindow = 10 * time.Minute
)

func ScheduleRouter(api fiber.Router, deps Deps) {
	auth := middleware.AuthMiddleware(deps.Paseto, deps.Redis)
	managerOnly := middleware.RequireRoles(entity.RoleManager)
	scheduleHandler := schedule_handlers.NewScheduleHandler(deps.DB, deps.Redis, deps.Bridge, deps.Scheduler, deps.I18n)

	s := api.Group("/schedules", auth, managerOnly)
	s.Post("/", scheduleHandler.CreateSchedule)
	s.Post("/generate", scheduleHandler.GenerateSchedules)
	s.Post("/:schedule_id/cancel", scheduleHandler.CancelSchedule)
	s.Get("/:schedule_id/jobs", scheduleHandler.ListScheduleJobs)
	s.Get("/:schedule_id/jobs/export", scheduleHandler.ExportScheduleJobs)

	// Rollen prüft hier der Service, auch Mitarbeiter dürfen Termine fortschreiben
	api.Post("/schedule-jobs/:job_id/status", auth, scheduleHandler.UpdateJobStatus)
	api.Post("/schedule-jobs/:job_id/notify", auth, scheduleHandler.NotifyJob)

	api.Post("/maintenance/trigger", auth, managerOnly, limiter.New(limiter.Config{
		Max:        triggerLimit,
		Expiration: triggerWindow,
		KeyGenerator: func(c *fiber.Ctx) string {
			actorID := c.Locals("actor_id")
			if actorID == nil {
				return "trigger:ip:" + c.IP() // fallback to ip
			}
			return fmt.Sprintf("trigger:%v", actorID)
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"status": "error",
				"error":  "request.too_many_triggers",
			})
		},
		Storage: newLimiterStorage(deps.Redis, deps.LimiterDB),
	}), scheduleHandler.TriggerAutoMaintenance)
	api.Get("/maintenance/last-run", auth, managerOnly, scheduleHandler.LastRunReport)
}

// newLimiterStorage baut den Fiber-Speicher aus den Verbindungsdaten des bestehenden Redis-Clients.
func newLimiterStorage(rdb *redis.Client, database int) *redis_fiber.Storage {
	host, portRaw, err := net.SplitHostPort(rdb.Options().Addr)
	if err != nil {
		host, portRaw = rdb.Options().Addr, "6379"
	}
	port, err := strconv.Atoi(portRaw)
	if err != nil {
		log.Warn().Err(err).Str("addr", rdb.Options().Addr).Msg("Redis-Port ungültig, nutze 6379")
		port = 6379
	}

	return redis_fiber.New(redis_fiber.Config{
		Host:     host,
		Port:     port,
		Password: rdb.Options().Password,
		Database: database,
	})
}
