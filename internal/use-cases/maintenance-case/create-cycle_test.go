package maintenance_case

import (
	"context"
	"testing"
	"time"

	maintenance_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/maintenance-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	use_cases "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/use-cases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	manager  = entity.Actor{ID: "manager-1", Role: entity.RoleManager}
	employee = entity.Actor{ID: "employee-1", Role: entity.RoleEmployee}
	fixedNow = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
)

func TestCreateCycle_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(use_cases.MockMaintenanceRepo)
	service := &MaintenanceService{repo: repo, now: func() time.Time { return fixedNow }}

	repo.On("InsertCycle", ctx, nil, mock.MatchedBy(func(c *entity.MaintenanceCycleEntity) bool {
		return c.ID != "" && c.Frequency == entity.FrequencyMonthly && c.CreatedBy == manager.ID
	})).Return((*app_errors.AppError)(nil))

	resp, err := service.CreateCycle(ctx, manager, &maintenance_dto.CreateCycleRequest{
		DeviceType: "Elevator",
		Frequency:  "Monthly",
		Basis:      "LegalStandards",
	})

	require.Nil(t, err)
	assert.NotEmpty(t, resp.CycleID)
	assert.Equal(t, "Monthly", resp.Frequency)
	assert.Equal(t, fixedNow, resp.CreatedAt)
	assert.Nil(t, resp.SupersededBy)
	repo.AssertExpectations(t)
}

func TestCreateCycle_EmployeeForbidden(t *testing.T) {
	repo := new(use_cases.MockMaintenanceRepo)
	service := &MaintenanceService{repo: repo, now: time.Now}

	resp, err := service.CreateCycle(context.Background(), employee, &maintenance_dto.CreateCycleRequest{DeviceType: "Pump", Frequency: "Weekly", Basis: "Custom"})

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrForbidden, err.Type)
	repo.AssertNotCalled(t, "InsertCycle", mock.Anything, mock.Anything, mock.Anything)
}
