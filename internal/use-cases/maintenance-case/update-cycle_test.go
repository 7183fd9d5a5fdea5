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

func ptr[T any](v T) *T { return &v }

func currentCycle() *entity.MaintenanceCycleEntity {
	return &entity.MaintenanceCycleEntity{
		ID:         "cycle-1",
		DeviceType: "Elevator",
		Frequency:  entity.FrequencyMonthly,
		Basis:      entity.BasisLegalStandards,
		CreatedBy:  "manager-0",
		CreatedAt:  fixedNow.AddDate(0, -6, 0),
	}
}

func newUpdateFixture() (*MaintenanceService, *use_cases.MockMaintenanceRepo, *use_cases.MockTxManager) {
	repo := new(use_cases.MockMaintenanceRepo)
	txManager := new(use_cases.MockTxManager)
	return &MaintenanceService{repo: repo, txManager: txManager, now: func() time.Time { return fixedNow }}, repo, txManager
}

func TestUpdateCycle_UnreferencedUpdatesInPlace(t *testing.T) {
	ctx := context.Background()
	service, repo, txManager := newUpdateFixture()
	tx := use_cases.NewCommittingTx()

	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	repo.On("LockCycle", ctx, tx, "cycle-1").Return(currentCycle(), (*app_errors.AppError)(nil))
	repo.On("InsertCycleHistory", ctx, tx, mock.MatchedBy(func(h *entity.MaintenanceCycleHistoryEntity) bool {
		return h.CycleID == "cycle-1" && h.Frequency == entity.FrequencyMonthly && *h.Reason == "new regulation" && h.ChangedAt.Equal(fixedNow)
	})).Return((*app_errors.AppError)(nil))
	repo.On("IsCycleReferenced", ctx, tx, "cycle-1").Return(false, (*app_errors.AppError)(nil))
	repo.On("UpdateCycle", ctx, tx, mock.MatchedBy(func(c *entity.MaintenanceCycleEntity) bool {
		return c.ID == "cycle-1" && c.Frequency == entity.FrequencyWeekly
	})).Return((*app_errors.AppError)(nil))

	resp, err := service.UpdateCycle(ctx, manager, "cycle-1", &maintenance_dto.UpdateCycleRequest{
		Frequency: ptr("Weekly"),
		Reason:    ptr("new regulation"),
	})

	require.Nil(t, err)
	assert.Equal(t, "cycle-1", resp.CycleID)
	assert.Equal(t, "Weekly", resp.Frequency)
	assert.Nil(t, resp.SupersededBy)
	repo.AssertExpectations(t)
	tx.AssertExpectations(t)
}

func TestUpdateCycle_ReferencedCreatesSuccessor(t *testing.T) {
	ctx := context.Background()
	service, repo, txManager := newUpdateFixture()
	tx := use_cases.NewCommittingTx()

	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	repo.On("LockCycle", ctx, tx, "cycle-1").Return(currentCycle(), (*app_errors.AppError)(nil))
	repo.On("InsertCycleHistory", ctx, tx, mock.Anything).Return((*app_errors.AppError)(nil))
	repo.On("IsCycleReferenced", ctx, tx, "cycle-1").Return(true, (*app_errors.AppError)(nil))
	repo.On("InsertCycle", ctx, tx, mock.MatchedBy(func(c *entity.MaintenanceCycleEntity) bool {
		return c.ID != "cycle-1" && c.Basis == entity.BasisOperationalConditions && c.CreatedBy == manager.ID
	})).Return((*app_errors.AppError)(nil))

	resp, err := service.UpdateCycle(ctx, manager, "cycle-1", &maintenance_dto.UpdateCycleRequest{Basis: ptr("OperationalConditions")})

	require.Nil(t, err)
	require.NotNil(t, resp.SupersededBy)
	assert.NotEqual(t, "cycle-1", *resp.SupersededBy)
	assert.Equal(t, "OperationalConditions", resp.Basis)
	repo.AssertNotCalled(t, "UpdateCycle", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestUpdateCycle_DeviceTypeOnlySkipsReferenceCheck(t *testing.T) {
	ctx := context.Background()
	service, repo, txManager := newUpdateFixture()
	tx := use_cases.NewCommittingTx()

	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	repo.On("LockCycle", ctx, tx, "cycle-1").Return(currentCycle(), (*app_errors.AppError)(nil))
	repo.On("InsertCycleHistory", ctx, tx, mock.Anything).Return((*app_errors.AppError)(nil))
	repo.On("UpdateCycle", ctx, tx, mock.Anything).Return((*app_errors.AppError)(nil))

	resp, err := service.UpdateCycle(ctx, manager, "cycle-1", &maintenance_dto.UpdateCycleRequest{DeviceType: ptr("Escalator")})

	require.Nil(t, err)
	assert.Equal(t, "Escalator", resp.DeviceType)
	repo.AssertNotCalled(t, "IsCycleReferenced", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateCycle_NoChangeWritesNothing(t *testing.T) {
	ctx := context.Background()
	service, repo, txManager := newUpdateFixture()
	tx := use_cases.NewRollbackTx()

	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	repo.On("LockCycle", ctx, tx, "cycle-1").Return(currentCycle(), (*app_errors.AppError)(nil))

	resp, err := service.UpdateCycle(ctx, manager, "cycle-1", &maintenance_dto.UpdateCycleRequest{Frequency: ptr("Monthly")})

	require.Nil(t, err)
	assert.Equal(t, "Monthly", resp.Frequency)
	repo.AssertNotCalled(t, "InsertCycleHistory", mock.Anything, mock.Anything, mock.Anything)
	tx.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestUpdateCycle_NotFound(t *testing.T) {
	ctx := context.Background()
	service, repo, txManager := newUpdateFixture()
	tx := use_cases.NewRollbackTx()

	txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	notFound := app_errors.NewAppError(404, app_errors.ErrNotFound, "maintenance_cycle.not_found", nil)
	repo.On("LockCycle", ctx, tx, "cycle-x").Return((*entity.MaintenanceCycleEntity)(nil), notFound)

	resp, err := service.UpdateCycle(ctx, manager, "cycle-x", &maintenance_dto.UpdateCycleRequest{Frequency: ptr("Daily")})

	assert.Nil(t, resp)
	assert.Equal(t, app_errors.ErrNotFound, err.Type)
	tx.AssertCalled(t, "Rollback", mock.Anything)
}
