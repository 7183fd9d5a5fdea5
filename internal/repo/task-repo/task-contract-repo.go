package task_repo

import (
	"context"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/tx"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
)

type TaskRepoContract interface {
	InsertTask(ctx context.Context, t tx.Tx, task *entity.TaskEntity) *app_errors.AppError
	GetTaskByID(ctx context.Context, t tx.Tx, taskID string) (*entity.TaskEntity, *app_errors.AppError)
	GetWorkContext(ctx context.Context, t tx.Tx, taskID string) (*entity.WorkContext, *app_errors.AppError)
	UpdateTaskStatus(ctx context.Context, t tx.Tx, taskID string, to entity.TaskStatus) *app_errors.AppError
	MarkCrackCancelled(ctx context.Context, t tx.Tx, crackID string) (int64, *app_errors.AppError)

	InsertAssignment(ctx context.Context, t tx.Tx, a *entity.TaskAssignmentEntity) *app_errors.AppError
	GetAssignmentByID(ctx context.Context, t tx.Tx, assignmentID string) (*entity.TaskAssignmentEntity, *app_errors.AppError)
	UpdateAssignmentStatus(ctx context.Context, t tx.Tx, assignmentID string, from, to entity.AssignmentStatus) (bool, *app_errors.AppError)

	InsertWorkLog(ctx context.Context, t tx.Tx, w *entity.WorkLogEntity) *app_errors.AppError
	GetWorkLogByID(ctx context.Context, t tx.Tx, workLogID string) (*entity.WorkLogEntity, *app_errors.AppError)
	GetOpenWorkLogByAssignment(ctx context.Context, t tx.Tx, assignmentID string) (*entity.WorkLogEntity, *app_errors.AppError)
	UpdateWorkLogStatus(ctx context.Context, t tx.Tx, workLogID string, from, to entity.WorkLogStatus) (bool, *app_errors.AppError)
	ConfirmDeposit(ctx context.Context, t tx.Tx, workLogID string, at time.Time) (bool, *app_errors.AppError)

	InsertInspection(ctx context.Context, t tx.Tx, i *entity.InspectionEntity) *app_errors.AppError
	GetInspectionByID(ctx context.Context, t tx.Tx, inspectionID string) (*entity.InspectionEntity, *app_errors.AppError)
	UpdateInspectionStatus(ctx context.Context, t tx.Tx, inspectionID string, from, to entity.ReportStatus) (bool, *app_errors.AppError)
	CountInspections(ctx context.Context, t tx.Tx, taskID, assignmentID string) (pending int, approved int, err *app_errors.AppError)
	ListApprovedInspections(ctx context.Context, t tx.Tx, assignmentID string) ([]entity.InspectionEntity, *app_errors.AppError)

	ClaimMaterialDeduction(ctx context.Context, t tx.Tx, inspectionID string, materials []entity.RepairMaterial) (bool, *app_errors.AppError)
	GetMaterialDeduction(ctx context.Context, inspectionID string) (*entity.MaterialDeductionEntity, *app_errors.AppError)
	MarkDeductionApplied(ctx context.Context, inspectionID string) (bool, *app_errors.AppError)
	ListPendingDeductions(ctx context.Context, createdBefore time.Time, limit int) ([]entity.MaterialDeductionEntity, *app_errors.AppError)
}
