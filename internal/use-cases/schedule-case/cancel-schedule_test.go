package schedule_case

import (
	"context"
	"testing"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/bridge"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	use_cases "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/use-cases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func schedule(status entity.ScheduleStatus) *entity.ScheduleEntity {
	return &entity.ScheduleEntity{ID: "schedule-1", Name: "Elevator weekly", CycleID: "cycle-1", StartDate: day("2025-01-01"), Status: status}
}

func TestCancelSchedule_CancelsOpenJobs(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tx := use_cases.NewCommittingTx()

	f.txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	f.repo.On("GetScheduleByID", ctx, tx, "schedule-1").Return(schedule(entity.ScheduleInProgress), (*app_errors.AppError)(nil))
	f.repo.On("UpdateScheduleStatus", ctx, tx, "schedule-1", entity.ScheduleInProgress, entity.ScheduleCancelled).Return(true, (*app_errors.AppError)(nil))
	f.repo.On("CancelOpenJobs", ctx, tx, "schedule-1").Return(int64(3), (*app_errors.AppError)(nil))
	f.bridge.On("OnTransition", ctx, mock.MatchedBy(func(tr bridge.Transition) bool {
		return tr.Kind == entity.KindSchedule && tr.From == "InProgress" && tr.To == "Cancelled" && tr.ActorID == manager.ID
	})).Return()

	resp, err := f.service.CancelSchedule(ctx, manager, "schedule-1")

	require.Nil(t, err)
	assert.Equal(t, int64(3), resp.CancelledJobs)
	assert.Equal(t, "Cancelled", resp.Status)
	f.bridge.AssertExpectations(t)
	tx.AssertExpectations(t)
}

func TestCancelSchedule_NotActive(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tx := use_cases.NewRollbackTx()

	f.txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	f.repo.On("GetScheduleByID", ctx, tx, "schedule-1").Return(schedule(entity.ScheduleCompleted), (*app_errors.AppError)(nil))

	resp, err := f.service.CancelSchedule(ctx, manager, "schedule-1")

	assert.Nil(t, resp)
	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrInvalidTransition, err.Type)
	assert.Equal(t, "Completed", err.CurrentState)
	f.repo.AssertNotCalled(t, "CancelOpenJobs", mock.Anything, mock.Anything, mock.Anything)
	f.bridge.AssertNotCalled(t, "OnTransition", mock.Anything, mock.Anything)
}

func TestCancelSchedule_LostRaceReportsObservedState(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tx := use_cases.NewRollbackTx()

	f.txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	f.repo.On("GetScheduleByID", ctx, tx, "schedule-1").Return(schedule(entity.ScheduleInProgress), (*app_errors.AppError)(nil)).Once()
	f.repo.On("UpdateScheduleStatus", ctx, tx, "schedule-1", entity.ScheduleInProgress, entity.ScheduleCancelled).Return(false, (*app_errors.AppError)(nil))
	f.repo.On("GetScheduleByID", ctx, tx, "schedule-1").Return(schedule(entity.ScheduleCancelled), (*app_errors.AppError)(nil)).Once()

	_, err := f.service.CancelSchedule(ctx, manager, "schedule-1")

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrInvalidTransition, err.Type)
	assert.Equal(t, "Cancelled", err.CurrentState)
	assert.Equal(t, "schedule-1", err.EntityID)
}

func TestCancelSchedule_Forbidden(t *testing.T) {
	f := newFixture()

	_, err := f.service.CancelSchedule(context.Background(), employee, "schedule-1")

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrForbidden, err.Type)
}
