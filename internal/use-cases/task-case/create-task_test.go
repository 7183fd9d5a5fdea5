package task_case

import (
	"context"
	"testing"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/bridge"
	task_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/task-dto"
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
	fixedNow = time.Date(2025, 1, 8, 10, 0, 0, 0, time.UTC)
)

type fixture struct {
	service   *TaskService
	repo      *use_cases.MockTaskRepo
	schedules *use_cases.MockScheduleRepo
	txManager *use_cases.MockTxManager
	bridge    *bridge.MockBridge
}

func newFixture() *fixture {
	f := &fixture{
		repo:      new(use_cases.MockTaskRepo),
		schedules: new(use_cases.MockScheduleRepo),
		txManager: new(use_cases.MockTxManager),
		bridge:    new(bridge.MockBridge),
	}
	f.service = &TaskService{
		repo:      f.repo,
		schedules: f.schedules,
		txManager: f.txManager,
		bridge:    f.bridge,
		now:       func() time.Time { return fixedNow },
	}
	return f
}

func ptr[T any](v T) *T { return &v }

// jobContext is a task spawned by schedule job job-1 in the given job state
func jobContext(taskStatus entity.TaskStatus, jobStatus entity.ScheduleJobStatus) *entity.WorkContext {
	return &entity.WorkContext{
		Task:      entity.TaskEntity{ID: "task-1", Status: taskStatus, ScheduleJobID: ptr("job-1")},
		JobStatus: &jobStatus,
	}
}

// crackContext is a task created from crack crack-1
func crackContext(taskStatus entity.TaskStatus) *entity.WorkContext {
	return &entity.WorkContext{Task: entity.TaskEntity{ID: "task-1", Status: taskStatus, CrackID: ptr("crack-1")}}
}

func TestCreateTaskFromCrack_Success(t *testing.T) {
	ctx := context.Background()
	f := newFixture()

	f.repo.On("InsertTask", ctx, nil, mock.MatchedBy(func(task *entity.TaskEntity) bool {
		return *task.CrackID == "crack-9" && task.ScheduleJobID == nil && task.Status == entity.TaskPending
	})).Return((*app_errors.AppError)(nil))

	resp, err := f.service.CreateTaskFromCrack(ctx, manager, &task_dto.CreateTaskFromCrackRequest{CrackID: "crack-9", Description: "Crack in wall"})

	require.Nil(t, err)
	assert.Equal(t, "Pending", resp.Status)
	assert.Equal(t, "crack-9", *resp.CrackID)
	assert.Equal(t, fixedNow, resp.CreatedAt)
}

func TestCreateTaskFromCrack_Forbidden(t *testing.T) {
	f := newFixture()

	_, err := f.service.CreateTaskFromCrack(context.Background(), employee, &task_dto.CreateTaskFromCrackRequest{CrackID: "crack-9"})

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrForbidden, err.Type)
}

func TestCreateTaskForScheduleJob(t *testing.T) {
	cases := []struct {
		name    string
		status  entity.ScheduleJobStatus
		errType string
	}{
		{"pending job", entity.JobPending, ""},
		{"cancelled job is stale", entity.JobCancel, app_errors.ErrStaleWorkItem},
		{"completed job is closed", entity.JobCompleted, app_errors.ErrInvalidTransition},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := context.Background()
			f := newFixture()
			var tx *use_cases.MockTx
			if tc.errType == "" {
				tx = use_cases.NewCommittingTx()
			} else {
				tx = use_cases.NewRollbackTx()
			}
			job := &entity.ScheduleJobEntity{ID: "job-1", BuildingDetailID: "B1", RunDate: time.Date(2025, 1, 8, 0, 0, 0, 0, time.UTC), Status: tc.status}

			f.txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
			f.schedules.On("GetJobByID", ctx, tx, "job-1").Return(job, (*app_errors.AppError)(nil))
			f.repo.On("InsertTask", ctx, tx, mock.MatchedBy(func(task *entity.TaskEntity) bool {
				return *task.ScheduleJobID == "job-1" && task.Description == "Maintenance of B1 on 2025-01-08"
			})).Return((*app_errors.AppError)(nil))

			resp, err := f.service.CreateTaskForScheduleJob(ctx, manager, "job-1", &task_dto.CreateTaskForJobRequest{})

			if tc.errType == "" {
				require.Nil(t, err)
				assert.Equal(t, "job-1", *resp.ScheduleJobID)
				tx.AssertExpectations(t)
				return
			}
			assert.Nil(t, resp)
			require.NotNil(t, err)
			assert.Equal(t, tc.errType, err.Type)
			f.repo.AssertNotCalled(t, "InsertTask", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestMarkCrackCancelled(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tx := use_cases.NewCommittingTx()

	f.txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	f.repo.On("MarkCrackCancelled", ctx, tx, "crack-1").Return(int64(2), (*app_errors.AppError)(nil))

	resp, err := f.service.MarkCrackCancelled(ctx, manager, "crack-1")

	require.Nil(t, err)
	assert.Equal(t, int64(2), resp.TasksAffected)
	tx.AssertExpectations(t)
}
