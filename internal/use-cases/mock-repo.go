package use_cases

import (
	"context"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/tx"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	employee_repo "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/repo/employee-repo"
	maintenance_repo "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/repo/maintenance-repo"
	schedule_repo "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/repo/schedule-repo"
	task_repo "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/repo/task-repo"
	"github.com/stretchr/testify/mock"
)

var (
	_ maintenance_repo.MaintenanceRepoContract = (*MockMaintenanceRepo)(nil)
	_ schedule_repo.ScheduleRepoContract       = (*MockScheduleRepo)(nil)
	_ task_repo.TaskRepoContract               = (*MockTaskRepo)(nil)
	_ employee_repo.EmployeeRepoContract       = (*MockEmployeeRepo)(nil)
)

type MockMaintenanceRepo struct {
	mock.Mock
}

func (m *MockMaintenanceRepo) InsertCycle(ctx context.Context, t tx.Tx, cycle *entity.MaintenanceCycleEntity) *app_errors.AppError {
	args := m.Called(ctx, t, cycle)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockMaintenanceRepo) GetCycleByID(ctx context.Context, t tx.Tx, cycleID string) (*entity.MaintenanceCycleEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, cycleID)
	return args.Get(0).(*entity.MaintenanceCycleEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockMaintenanceRepo) LockCycle(ctx context.Context, t tx.Tx, cycleID string) (*entity.MaintenanceCycleEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, cycleID)
	return args.Get(0).(*entity.MaintenanceCycleEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockMaintenanceRepo) UpdateCycle(ctx context.Context, t tx.Tx, cycle *entity.MaintenanceCycleEntity) *app_errors.AppError {
	args := m.Called(ctx, t, cycle)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockMaintenanceRepo) IsCycleReferenced(ctx context.Context, t tx.Tx, cycleID string) (bool, *app_errors.AppError) {
	args := m.Called(ctx, t, cycleID)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockMaintenanceRepo) InsertCycleHistory(ctx context.Context, t tx.Tx, history *entity.MaintenanceCycleHistoryEntity) *app_errors.AppError {
	args := m.Called(ctx, t, history)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockMaintenanceRepo) ListCycleHistory(ctx context.Context, cycleID string) ([]entity.MaintenanceCycleHistoryEntity, *app_errors.AppError) {
	args := m.Called(ctx, cycleID)
	return args.Get(0).([]entity.MaintenanceCycleHistoryEntity), args.Get(1).(*app_errors.AppError)
}

type MockScheduleRepo struct {
	mock.Mock
}

func (m *MockScheduleRepo) InsertSchedule(ctx context.Context, t tx.Tx, schedule *entity.ScheduleEntity) *app_errors.AppError {
	args := m.Called(ctx, t, schedule)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockScheduleRepo) GetScheduleByID(ctx context.Context, t tx.Tx, scheduleID string) (*entity.ScheduleEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, scheduleID)
	return args.Get(0).(*entity.ScheduleEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockScheduleRepo) ListActiveSchedules(ctx context.Context, today, horizonEnd time.Time) ([]entity.ActiveSchedule, *app_errors.AppError) {
	args := m.Called(ctx, today, horizonEnd)
	return args.Get(0).([]entity.ActiveSchedule), args.Get(1).(*app_errors.AppError)
}

func (m *MockScheduleRepo) UpdateScheduleStatus(ctx context.Context, t tx.Tx, scheduleID string, from, to entity.ScheduleStatus) (bool, *app_errors.AppError) {
	args := m.Called(ctx, t, scheduleID, from, to)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockScheduleRepo) CancelOpenJobs(ctx context.Context, t tx.Tx, scheduleID string) (int64, *app_errors.AppError) {
	args := m.Called(ctx, t, scheduleID)
	return args.Get(0).(int64), args.Get(1).(*app_errors.AppError)
}

func (m *MockScheduleRepo) ListJobsInWindow(ctx context.Context, t tx.Tx, scheduleID string, from, until time.Time) ([]entity.ScheduleJobEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, scheduleID, from, until)
	return args.Get(0).([]entity.ScheduleJobEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockScheduleRepo) InsertScheduleJob(ctx context.Context, t tx.Tx, job *entity.ScheduleJobEntity) *app_errors.AppError {
	args := m.Called(ctx, t, job)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockScheduleRepo) GetJobByID(ctx context.Context, t tx.Tx, jobID string) (*entity.ScheduleJobEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, jobID)
	return args.Get(0).(*entity.ScheduleJobEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockScheduleRepo) UpdateJobStatus(ctx context.Context, t tx.Tx, jobID string, from, to entity.ScheduleJobStatus) (bool, *app_errors.AppError) {
	args := m.Called(ctx, t, jobID, from, to)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockScheduleRepo) ListJobsBySchedule(ctx context.Context, scheduleID string, status *entity.ScheduleJobStatus) ([]entity.ScheduleJobEntity, *app_errors.AppError) {
	args := m.Called(ctx, scheduleID, status)
	return args.Get(0).([]entity.ScheduleJobEntity), args.Get(1).(*app_errors.AppError)
}

type MockTaskRepo struct {
	mock.Mock
}

func (m *MockTaskRepo) InsertTask(ctx context.Context, t tx.Tx, task *entity.TaskEntity) *app_errors.AppError {
	args := m.Called(ctx, t, task)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockTaskRepo) GetTaskByID(ctx context.Context, t tx.Tx, taskID string) (*entity.TaskEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, taskID)
	return args.Get(0).(*entity.TaskEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) GetWorkContext(ctx context.Context, t tx.Tx, taskID string) (*entity.WorkContext, *app_errors.AppError) {
	args := m.Called(ctx, t, taskID)
	return args.Get(0).(*entity.WorkContext), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) UpdateTaskStatus(ctx context.Context, t tx.Tx, taskID string, to entity.TaskStatus) *app_errors.AppError {
	args := m.Called(ctx, t, taskID, to)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockTaskRepo) MarkCrackCancelled(ctx context.Context, t tx.Tx, crackID string) (int64, *app_errors.AppError) {
	args := m.Called(ctx, t, crackID)
	return args.Get(0).(int64), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) InsertAssignment(ctx context.Context, t tx.Tx, a *entity.TaskAssignmentEntity) *app_errors.AppError {
	args := m.Called(ctx, t, a)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockTaskRepo) GetAssignmentByID(ctx context.Context, t tx.Tx, assignmentID string) (*entity.TaskAssignmentEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, assignmentID)
	return args.Get(0).(*entity.TaskAssignmentEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) UpdateAssignmentStatus(ctx context.Context, t tx.Tx, assignmentID string, from, to entity.AssignmentStatus) (bool, *app_errors.AppError) {
	args := m.Called(ctx, t, assignmentID, from, to)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) InsertWorkLog(ctx context.Context, t tx.Tx, w *entity.WorkLogEntity) *app_errors.AppError {
	args := m.Called(ctx, t, w)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockTaskRepo) GetWorkLogByID(ctx context.Context, t tx.Tx, workLogID string) (*entity.WorkLogEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, workLogID)
	return args.Get(0).(*entity.WorkLogEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) GetOpenWorkLogByAssignment(ctx context.Context, t tx.Tx, assignmentID string) (*entity.WorkLogEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, assignmentID)
	return args.Get(0).(*entity.WorkLogEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) UpdateWorkLogStatus(ctx context.Context, t tx.Tx, workLogID string, from, to entity.WorkLogStatus) (bool, *app_errors.AppError) {
	args := m.Called(ctx, t, workLogID, from, to)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) ConfirmDeposit(ctx context.Context, t tx.Tx, workLogID string, at time.Time) (bool, *app_errors.AppError) {
	args := m.Called(ctx, t, workLogID, at)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) InsertInspection(ctx context.Context, t tx.Tx, i *entity.InspectionEntity) *app_errors.AppError {
	args := m.Called(ctx, t, i)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockTaskRepo) GetInspectionByID(ctx context.Context, t tx.Tx, inspectionID string) (*entity.InspectionEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, inspectionID)
	return args.Get(0).(*entity.InspectionEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) UpdateInspectionStatus(ctx context.Context, t tx.Tx, inspectionID string, from, to entity.ReportStatus) (bool, *app_errors.AppError) {
	args := m.Called(ctx, t, inspectionID, from, to)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) CountInspections(ctx context.Context, t tx.Tx, taskID, assignmentID string) (int, int, *app_errors.AppError) {
	args := m.Called(ctx, t, taskID, assignmentID)
	return args.Int(0), args.Int(1), args.Get(2).(*app_errors.AppError)
}

func (m *MockTaskRepo) ListApprovedInspections(ctx context.Context, t tx.Tx, assignmentID string) ([]entity.InspectionEntity, *app_errors.AppError) {
	args := m.Called(ctx, t, assignmentID)
	return args.Get(0).([]entity.InspectionEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) ClaimMaterialDeduction(ctx context.Context, t tx.Tx, inspectionID string, materials []entity.RepairMaterial) (bool, *app_errors.AppError) {
	args := m.Called(ctx, t, inspectionID, materials)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) GetMaterialDeduction(ctx context.Context, inspectionID string) (*entity.MaterialDeductionEntity, *app_errors.AppError) {
	args := m.Called(ctx, inspectionID)
	return args.Get(0).(*entity.MaterialDeductionEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) MarkDeductionApplied(ctx context.Context, inspectionID string) (bool, *app_errors.AppError) {
	args := m.Called(ctx, inspectionID)
	return args.Bool(0), args.Get(1).(*app_errors.AppError)
}

func (m *MockTaskRepo) ListPendingDeductions(ctx context.Context, createdBefore time.Time, limit int) ([]entity.MaterialDeductionEntity, *app_errors.AppError) {
	args := m.Called(ctx, createdBefore, limit)
	return args.Get(0).([]entity.MaterialDeductionEntity), args.Get(1).(*app_errors.AppError)
}

type MockEmployeeRepo struct {
	mock.Mock
}

func (m *MockEmployeeRepo) FindByID(ctx context.Context, employeeID string) (*entity.EmployeeEntity, *app_errors.AppError) {
	args := m.Called(ctx, employeeID)
	return args.Get(0).(*entity.EmployeeEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockEmployeeRepo) FindByIDs(ctx context.Context, employeeIDs []string) ([]entity.EmployeeEntity, *app_errors.AppError) {
	args := m.Called(ctx, employeeIDs)
	return args.Get(0).([]entity.EmployeeEntity), args.Get(1).(*app_errors.AppError)
}

func (m *MockEmployeeRepo) ListByRole(ctx context.Context, role entity.ActorRole) ([]entity.EmployeeEntity, *app_errors.AppError) {
	args := m.Called(ctx, role)
	return args.Get(0).([]entity.EmployeeEntity), args.Get(1).(*app_errors.AppError)
}
