package routers

import (
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	maintenance_handlers "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/handlers/maintenance"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

func MaintenanceRouter(api fiber.Router, deps Deps) {
	r := api.Group("/maintenance-cycles", middleware.AuthMiddleware(deps.Paseto, deps.Redis), middleware.RequireRoles(entity.RoleManager))
	maintenanceHandler := maintenance_handlers.NewMaintenanceHandler(deps.DB, deps.I18n)

	r.Post("/", maintenanceHandler.CreateCycle)
	r.Put("/:cycle_id", maintenanceHandler.UpdateCycle)
	r.Get("/:cycle_id/history", maintenanceHandler.ListCycleHistory)
}
