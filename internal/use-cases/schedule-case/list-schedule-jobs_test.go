package schedule_case

import (
	"bytes"
	"context"
	"testing"

	schedule_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/schedule-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestListScheduleJobs_FiltersByStatus(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	pending := entity.JobPending
	status := "Pending"

	f.repo.On("GetScheduleByID", ctx, nil, "schedule-1").Return(schedule(entity.ScheduleInProgress), (*app_errors.AppError)(nil))
	f.repo.On("ListJobsBySchedule", ctx, "schedule-1", &pending).Return([]entity.ScheduleJobEntity{*job(entity.JobPending)}, (*app_errors.AppError)(nil))

	items, err := f.service.ListScheduleJobs(ctx, "schedule-1", &schedule_dto.JobListFilter{Status: &status})

	require.Nil(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "job-1", items[0].JobID)
	assert.Equal(t, "Pending", items[0].Status)
}

func TestListScheduleJobs_UnknownSchedule(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.repo.On("GetScheduleByID", ctx, nil, "schedule-x").Return((*entity.ScheduleEntity)(nil), app_errors.NewAppError(404, app_errors.ErrNotFound, "schedule.not_found", nil))

	items, err := f.service.ListScheduleJobs(ctx, "schedule-x", nil)

	assert.Nil(t, items)
	assert.Equal(t, app_errors.ErrNotFound, err.Type)
	f.repo.AssertNotCalled(t, "ListJobsBySchedule", mock.Anything, mock.Anything, mock.Anything)
}

func TestExportScheduleJobs_Workbook(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.repo.On("GetScheduleByID", ctx, nil, "schedule-1").Return(schedule(entity.ScheduleInProgress), (*app_errors.AppError)(nil))
	f.repo.On("ListJobsBySchedule", ctx, "schedule-1", (*entity.ScheduleJobStatus)(nil)).
		Return([]entity.ScheduleJobEntity{*job(entity.JobPending), *job(entity.JobCompleted)}, (*app_errors.AppError)(nil))

	raw, filename, err := f.service.ExportScheduleJobs(ctx, "schedule-1")

	require.Nil(t, err)
	assert.Equal(t, "schedule-schedule-1-jobs-20250101.xlsx", filename)

	book, openErr := excelize.OpenReader(bytes.NewReader(raw))
	require.NoError(t, openErr)
	defer book.Close()
	rows, rowsErr := book.GetRows(book.GetSheetName(book.GetActiveSheetIndex()))
	require.NoError(t, rowsErr)
	assert.Len(t, rows, 3)
}
