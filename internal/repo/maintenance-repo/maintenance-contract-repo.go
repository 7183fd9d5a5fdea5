package maintenance_repo

import (
	"context"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/tx"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
)

type MaintenanceRepoContract interface {
	InsertCycle(ctx context.Context, t tx.Tx, cycle *entity.MaintenanceCycleEntity) *app_errors.AppError
	GetCycleByID(ctx context.Context, t tx.Tx, cycleID string) (*entity.MaintenanceCycleEntity, *app_errors.AppError)
	LockCycle(ctx context.Context, t tx.Tx, cycleID string) (*entity.MaintenanceCycleEntity, *app_errors.AppError)
	UpdateCycle(ctx context.Context, t tx.Tx, cycle *entity.MaintenanceCycleEntity) *app_errors.AppError
	IsCycleReferenced(ctx context.Context, t tx.Tx, cycleID string) (bool, *app_errors.AppError)
	InsertCycleHistory(ctx context.Context, t tx.Tx, history *entity.MaintenanceCycleHistoryEntity) *app_errors.AppError
	ListCycleHistory(ctx context.Context, cycleID string) ([]entity.MaintenanceCycleHistoryEntity, *app_errors.AppError)
}
