package task_case

import (
	"context"

	task_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/task-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
)

type TaskServiceContract interface {
	CreateTaskFromCrack(ctx context.Context, actor entity.Actor, req *task_dto.CreateTaskFromCrackRequest) (*task_dto.TaskResponse, *app_errors.AppError)
	CreateTaskForScheduleJob(ctx context.Context, actor entity.Actor, jobID string, req *task_dto.CreateTaskForJobRequest) (*task_dto.TaskResponse, *app_errors.AppError)
	MarkCrackCancelled(ctx context.Context, actor entity.Actor, crackID string) (*task_dto.CrackCancelledResponse, *app_errors.AppError)

	CreateAssignment(ctx context.Context, actor entity.Actor, taskID string, req *task_dto.CreateAssignmentRequest) (*task_dto.AssignmentResponse, *app_errors.AppError)
	ChangeAssignmentStatus(ctx context.Context, actor entity.Actor, assignmentID string, req *task_dto.ChangeAssignmentStatusRequest) (*task_dto.AssignmentTransitionResponse, *app_errors.AppError)

	UpdateWorkLogStatus(ctx context.Context, actor entity.Actor, workLogID string, req *task_dto.UpdateWorkLogStatusRequest) (*task_dto.WorkLogResponse, *app_errors.AppError)
	ConfirmDeposit(ctx context.Context, actor entity.Actor, workLogID string) (*task_dto.WorkLogResponse, *app_errors.AppError)

	CreateInspection(ctx context.Context, actor entity.Actor, assignmentID string, req *task_dto.CreateInspectionRequest) (*task_dto.InspectionResponse, *app_errors.AppError)
	ReviewInspection(ctx context.Context, actor entity.Actor, inspectionID string, req *task_dto.ReviewInspectionRequest) (*task_dto.InspectionResponse, *app_errors.AppError)
}
