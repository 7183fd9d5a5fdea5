package schedule_case

import (
	"context"
	"errors"
	"testing"
	"time"

	schedule_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/schedule-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	use_cases "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/use-cases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func active(id string, frequency entity.Frequency, start string, end *time.Time) entity.ActiveSchedule {
	return entity.ActiveSchedule{
		ScheduleEntity: entity.ScheduleEntity{
			ID:                id,
			Name:              id,
			StartDate:         day(start),
			EndDate:           end,
			Status:            entity.ScheduleInProgress,
			BuildingDetailIDs: []string{"B1"},
		},
		Frequency: frequency,
	}
}

func TestTriggerAutoMaintenance_SkipsWhenLockHeld(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.locker.On("Acquire", ctx, autoMaintenanceLock, time.Minute).Return(false, (*app_errors.AppError)(nil))

	report, err := f.service.TriggerAutoMaintenance(ctx)

	require.Nil(t, err)
	assert.True(t, report.Skipped)
	f.repo.AssertNotCalled(t, "ListActiveSchedules", mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, 0, f.locker.Released)
}

func TestTriggerAutoMaintenance_FailedScheduleDoesNotAbortRun(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	okTx := use_cases.NewCommittingTx()
	failingTx := use_cases.NewRollbackTx()
	end := day("2025-01-10")

	f.locker.On("Acquire", ctx, autoMaintenanceLock, time.Minute).Return(true, (*app_errors.AppError)(nil))
	f.repo.On("ListActiveSchedules", ctx, day("2025-01-01"), day("2025-01-31")).Return([]entity.ActiveSchedule{
		active("schedule-ok", entity.FrequencyWeekly, "2024-12-25", &end),
		active("schedule-broken", entity.FrequencyDaily, "2025-01-01", nil),
	}, (*app_errors.AppError)(nil))

	f.txManager.On("Begin", ctx).Return(okTx, (*app_errors.AppError)(nil)).Once()
	f.txManager.On("Begin", ctx).Return(failingTx, (*app_errors.AppError)(nil)).Once()

	// weekly from 12-25 inside [01-01, 01-11): 01-01 and 01-08
	f.repo.On("ListJobsInWindow", ctx, mock.Anything, "schedule-ok", day("2025-01-01"), day("2025-01-11")).
		Return([]entity.ScheduleJobEntity{}, (*app_errors.AppError)(nil))
	f.repo.On("ListJobsInWindow", ctx, mock.Anything, "schedule-broken", day("2025-01-01"), day("2025-01-31")).
		Return([]entity.ScheduleJobEntity{}, app_errors.NewAppError(500, app_errors.ErrInternal, "internal_error", errors.New("connection reset")))
	f.repo.On("InsertScheduleJob", ctx, mock.Anything, mock.Anything).Return((*app_errors.AppError)(nil))
	f.cache.On("Set", ctx, lastRunKey, mock.AnythingOfType("*schedule_dto.RunReport"), lastRunTTL).Return((*app_errors.AppError)(nil))

	report, err := f.service.TriggerAutoMaintenance(ctx)

	require.Nil(t, err)
	assert.False(t, report.Skipped)
	assert.Equal(t, 2, report.Schedules)
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, 2, report.JobsCreated)
	require.Len(t, report.Results, 2)

	byID := map[string]schedule_dto.ScheduleRunResult{}
	for _, r := range report.Results {
		byID[r.ScheduleID] = r
	}
	assert.Equal(t, 2, byID["schedule-ok"].JobsCreated)
	assert.Empty(t, byID["schedule-ok"].Error)
	assert.Equal(t, "connection reset", byID["schedule-broken"].Error)
	assert.Equal(t, 1, f.locker.Released)
	f.cache.AssertExpectations(t)
}

func TestTriggerAutoMaintenance_RunsWithoutLockStore(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.locker.On("Acquire", ctx, autoMaintenanceLock, time.Minute).
		Return(false, app_errors.NewAppError(500, app_errors.ErrInternal, "internal_error", errors.New("redis down")))
	f.repo.On("ListActiveSchedules", ctx, mock.Anything, mock.Anything).Return([]entity.ActiveSchedule{}, (*app_errors.AppError)(nil))
	f.cache.On("Set", ctx, lastRunKey, mock.Anything, lastRunTTL).Return(app_errors.NewAppError(500, app_errors.ErrInternal, "internal_error", nil))

	report, err := f.service.TriggerAutoMaintenance(ctx)

	require.Nil(t, err)
	assert.False(t, report.Skipped)
	assert.Equal(t, 0, report.Schedules)
	assert.Equal(t, 0, f.locker.Released)
}

func TestTriggerAutoMaintenance_EndedScheduleOpensNoTransaction(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	end := day("2024-12-31")

	f.locker.On("Acquire", ctx, autoMaintenanceLock, time.Minute).Return(true, (*app_errors.AppError)(nil))
	f.repo.On("ListActiveSchedules", ctx, mock.Anything, mock.Anything).Return([]entity.ActiveSchedule{
		active("schedule-old", entity.FrequencyDaily, "2024-12-01", &end),
	}, (*app_errors.AppError)(nil))
	f.cache.On("Set", ctx, lastRunKey, mock.Anything, lastRunTTL).Return((*app_errors.AppError)(nil))

	report, err := f.service.TriggerAutoMaintenance(ctx)

	require.Nil(t, err)
	assert.Equal(t, 0, report.JobsCreated)
	f.txManager.AssertNotCalled(t, "Begin", mock.Anything)
}

func TestLastRunReport(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	var cached any = map[string]any{"run_id": "run-1", "schedules": 2, "jobs_created": 7}

	f.cache.On("Get", ctx, lastRunKey).Return(&cached, (*app_errors.AppError)(nil))

	report, err := f.service.LastRunReport(ctx)

	require.Nil(t, err)
	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, 7, report.JobsCreated)
}

func TestLastRunReport_NoRunYet(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.cache.On("Get", ctx, lastRunKey).Return((*any)(nil), (*app_errors.AppError)(nil))

	_, err := f.service.LastRunReport(ctx)

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrNotFound, err.Type)
}
