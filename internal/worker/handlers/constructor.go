package worker_handler

import (
	"context"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/collaborator"
	schedule_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/schedule-dto"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/mail"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/queue"
	employee_repo "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/repo/employee-repo"
	schedule_repo "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/repo/schedule-repo"
	task_repo "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/repo/task-repo"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Scheduler is the part of the schedule service the cron tick drives.
type Scheduler interface {
	TriggerAutoMaintenance(ctx context.Context) (*schedule_dto.RunReport, *app_errors.AppError)
}

type WorkerHandler struct {
	scheduler Scheduler
	tasks     task_repo.TaskRepoContract
	schedules schedule_repo.ScheduleRepoContract
	employees employee_repo.EmployeeRepoContract
	queue     queue.TaskQueueClient
	cracks    collaborator.CrackService
	materials collaborator.MaterialStock
	mailer    mail.Mailer
	now       func() time.Time
}

type Deps struct {
	Scheduler Scheduler
	Queue     queue.TaskQueueClient
	Cracks    collaborator.CrackService
	Materials collaborator.MaterialStock
	Mailer    mail.Mailer
}

func NewWorkerHandler(db *pgxpool.Pool, deps Deps) *WorkerHandler {
	return &WorkerHandler{
		scheduler: deps.Scheduler,
		tasks:     task_repo.NewTaskRepo(db),
		schedules: schedule_repo.NewScheduleRepo(db),
		employees: employee_repo.NewEmployeeRepo(db),
		queue:     deps.Queue,
		cracks:    deps.Cracks,
		materials: deps.Materials,
		mailer:    deps.Mailer,
		now:       time.Now,
	}
}
