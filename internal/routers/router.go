package routers

import (
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/bridge"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/i18n"
	schedule_case "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/use-cases/schedule-case"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Deps bündelt alles, was die Router zum Aufbau der Handler brauchen.
type Deps struct {
	DB        *pgxpool.Pool
	Redis     *redis.Client
	I18n      *i18n.I18nService
	Paseto    *utils.PasetoMaker
	Bridge    bridge.Bridge
	Scheduler schedule_case.Options
	// Redis-Datenbank für den Limiter-Speicher, getrennt von Cache und Queue
	LimiterDB int
}

// SetupRoutes richtet die API-Routen ein.
func SetupRoutes(app *fiber.App, deps Deps) {
	api := app.Group("/api/v1")

	MaintenanceRouter(api, deps)
	ScheduleRouter(api, deps)
	TaskRouter(api, deps)
	HealthRouter(api, deps.DB, deps.Redis)
}
