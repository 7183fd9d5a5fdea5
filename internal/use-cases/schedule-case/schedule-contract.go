package schedule_case

import (
	"context"

	schedule_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/schedule-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
)

type ScheduleServiceContract interface {
	CreateSchedule(ctx context.Context, actor entity.Actor, req *schedule_dto.CreateScheduleRequest) (*schedule_dto.ScheduleResponse, *app_errors.AppError)
	GenerateSchedulesFromConfig(ctx context.Context, actor entity.Actor, req *schedule_dto.GenerateSchedulesRequest) ([]schedule_dto.ScheduleResponse, *app_errors.AppError)
	CancelSchedule(ctx context.Context, actor entity.Actor, scheduleID string) (*schedule_dto.CancelScheduleResponse, *app_errors.AppError)

	UpdateScheduleJobStatus(ctx context.Context, actor entity.Actor, jobID string, req *schedule_dto.UpdateJobStatusRequest) (*schedule_dto.ScheduleJobItem, *app_errors.AppError)
	ListScheduleJobs(ctx context.Context, scheduleID string, filter *schedule_dto.JobListFilter) ([]schedule_dto.ScheduleJobItem, *app_errors.AppError)
	ExportScheduleJobs(ctx context.Context, scheduleID string) ([]byte, string, *app_errors.AppError)
	NotifyScheduleJob(ctx context.Context, actor entity.Actor, jobID string, req *schedule_dto.NotifyJobRequest) *app_errors.AppError

	TriggerAutoMaintenance(ctx context.Context) (*schedule_dto.RunReport, *app_errors.AppError)
	LastRunReport(ctx context.Context) (*schedule_dto.RunReport, *app_errors.AppError)
}
