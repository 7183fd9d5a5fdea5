package schedule_repo

import (
	"context"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/tx"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
)

type ScheduleRepoContract interface {
	InsertSchedule(ctx context.Context, t tx.Tx, schedule *entity.ScheduleEntity) *app_errors.AppError
	GetScheduleByID(ctx context.Context, t tx.Tx, scheduleID string) (*entity.ScheduleEntity, *app_errors.AppError)
	ListActiveSchedules(ctx context.Context, today, horizonEnd time.Time) ([]entity.ActiveSchedule, *app_errors.AppError)
	UpdateScheduleStatus(ctx context.Context, t tx.Tx, scheduleID string, from, to entity.ScheduleStatus) (bool, *app_errors.AppError)
	CancelOpenJobs(ctx context.Context, t tx.Tx, scheduleID string) (int64, *app_errors.AppError)

	ListJobsInWindow(ctx context.Context, t tx.Tx, scheduleID string, from, until time.Time) ([]entity.ScheduleJobEntity, *app_errors.AppError)
	InsertScheduleJob(ctx context.Context, t tx.Tx, job *entity.ScheduleJobEntity) *app_errors.AppError
	GetJobByID(ctx context.Context, t tx.Tx, jobID string) (*entity.ScheduleJobEntity, *app_errors.AppError)
	UpdateJobStatus(ctx context.Context, t tx.Tx, jobID string, from, to entity.ScheduleJobStatus) (bool, *app_errors.AppError)
	ListJobsBySchedule(ctx context.Context, scheduleID string, status *entity.ScheduleJobStatus) ([]entity.ScheduleJobEntity, *app_errors.AppError)
}
