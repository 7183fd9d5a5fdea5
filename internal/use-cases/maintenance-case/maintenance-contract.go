package maintenance_case

import (
	"context"

	maintenance_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/maintenance-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
)

type MaintenanceServiceContract interface {
	CreateCycle(ctx context.Context, actor entity.Actor, req *maintenance_dto.CreateCycleRequest) (*maintenance_dto.CycleResponse, *app_errors.AppError)
	UpdateCycle(ctx context.Context, actor entity.Actor, cycleID string, req *maintenance_dto.UpdateCycleRequest) (*maintenance_dto.CycleResponse, *app_errors.AppError)
	ListCycleHistory(ctx context.Context, cycleID string) ([]maintenance_dto.CycleHistoryItem, *app_errors.AppError)
}
