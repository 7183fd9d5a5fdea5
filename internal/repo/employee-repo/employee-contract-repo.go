package employee_repo

import (
	"context"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
)

type EmployeeRepoContract interface {
	FindByID(ctx context.Context, employeeID string) (*entity.EmployeeEntity, *app_errors.AppError)
	FindByIDs(ctx context.Context, employeeIDs []string) ([]entity.EmployeeEntity, *app_errors.AppError)
	ListByRole(ctx context.Context, role entity.ActorRole) ([]entity.EmployeeEntity, *app_errors.AppError)
}
