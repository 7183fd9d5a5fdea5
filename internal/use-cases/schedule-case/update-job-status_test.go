package schedule_case

import (
	"context"
	"testing"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/bridge"
	schedule_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/schedule-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	use_cases "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/use-cases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func job(status entity.ScheduleJobStatus) *entity.ScheduleJobEntity {
	scheduleID := "schedule-1"
	return &entity.ScheduleJobEntity{ID: "job-1", ScheduleID: &scheduleID, BuildingDetailID: "B1", RunDate: day("2025-01-08"), Status: status}
}

func TestUpdateScheduleJobStatus_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tx := use_cases.NewCommittingTx()

	f.txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	f.repo.On("GetJobByID", ctx, tx, "job-1").Return(job(entity.JobPending), (*app_errors.AppError)(nil))
	f.repo.On("UpdateJobStatus", ctx, tx, "job-1", entity.JobPending, entity.JobInProgress).Return(true, (*app_errors.AppError)(nil))
	f.bridge.On("OnTransition", ctx, mock.MatchedBy(func(tr bridge.Transition) bool {
		return tr.Kind == entity.KindScheduleJob && tr.From == "Pending" && tr.To == "InProgress" && *tr.ScheduleJobID == "job-1"
	})).Return()

	item, err := f.service.UpdateScheduleJobStatus(ctx, manager, "job-1", &schedule_dto.UpdateJobStatusRequest{Status: "InProgress"})

	require.Nil(t, err)
	assert.Equal(t, "InProgress", item.Status)
	assert.Equal(t, day("2025-01-08"), item.RunDate.Time)
	require.NotNil(t, item.UpdatedAt)
	f.bridge.AssertExpectations(t)
}

func TestUpdateScheduleJobStatus_CompletedIsImmutable(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tx := use_cases.NewRollbackTx()

	f.txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	f.repo.On("GetJobByID", ctx, tx, "job-1").Return(job(entity.JobCompleted), (*app_errors.AppError)(nil))

	item, err := f.service.UpdateScheduleJobStatus(ctx, manager, "job-1", &schedule_dto.UpdateJobStatusRequest{Status: "Cancel"})

	assert.Nil(t, item)
	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrInvalidTransition, err.Type)
	assert.Equal(t, "Completed", err.CurrentState)
	f.repo.AssertNotCalled(t, "UpdateJobStatus", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateScheduleJobStatus_ConcurrentChange(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tx := use_cases.NewRollbackTx()

	f.txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	f.repo.On("GetJobByID", ctx, tx, "job-1").Return(job(entity.JobInProgress), (*app_errors.AppError)(nil)).Once()
	f.repo.On("UpdateJobStatus", ctx, tx, "job-1", entity.JobInProgress, entity.JobCompleted).Return(false, (*app_errors.AppError)(nil))
	f.repo.On("GetJobByID", ctx, tx, "job-1").Return(job(entity.JobCancel), (*app_errors.AppError)(nil)).Once()

	_, err := f.service.UpdateScheduleJobStatus(ctx, manager, "job-1", &schedule_dto.UpdateJobStatusRequest{Status: "Completed"})

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrInvalidTransition, err.Type)
	assert.Equal(t, "Cancel", err.CurrentState)
	f.bridge.AssertNotCalled(t, "OnTransition", mock.Anything, mock.Anything)
}
