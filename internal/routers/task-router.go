package routers

import (
	task_handlers "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/handlers/task"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// TaskRouter registriert die Routen der Reparatur-Workflows. Rollen und Zuständigkeit prüft der Service je Übergang.
func TaskRouter(api fiber.Router, deps Deps) {
	auth := middleware.AuthMiddleware(deps.Paseto, deps.Redis)
	taskHandler := task_handlers.NewTaskHandler(deps.DB, deps.Bridge, deps.I18n)

	api.Post("/schedule-jobs/:job_id/task", auth, taskHandler.CreateTaskForScheduleJob)
	api.Post("/cracks/:crack_id/cancel", auth, taskHandler.MarkCrackCancelled)

	t := api.Group("/tasks", auth)
	t.Post("/", taskHandler.CreateTaskFromCrack)
	t.Post("/:task_id/assignments", taskHandler.CreateAssignment)

	a := api.Group("/assignments", auth)
	a.Post("/:assignment_id/status", taskHandler.ChangeAssignmentStatus)
	a.Post("/:assignment_id/inspections", taskHandler.CreateInspection)

	api.Post("/inspections/:inspection_id/review", auth, taskHandler.ReviewInspection)

	w := api.Group("/worklogs", auth)
	w.Post("/:worklog_id/status", taskHandler.UpdateWorkLogStatus)
	w.Post("/:worklog_id/deposit", taskHandler.ConfirmDeposit)
}
