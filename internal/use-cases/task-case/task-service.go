package task_case

import (
	"context"
	"fmt"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/tx"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/bridge"
	task_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/task-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	schedule_repo "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/repo/schedule-repo"
	task_repo "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/repo/task-repo"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/workflow"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const defaultWorkLogTitle = "Inspection"

type TaskService struct {
	repo      task_repo.TaskRepoContract
	schedules schedule_repo.ScheduleRepoContract
	txManager tx.TxManager
	bridge    bridge.Bridge
	now       func() time.Time
}

func NewTaskService(db *pgxpool.Pool, b bridge.Bridge) TaskServiceContract {
	return &TaskService{
		repo:      task_repo.NewTaskRepo(db),
		schedules: schedule_repo.NewScheduleRepo(db),
		txManager: tx.NewPgxTxManager(db),
		bridge:    b,
		now:       time.Now,
	}
}

func (s *TaskService) CreateTaskFromCrack(ctx context.Context, actor entity.Actor, req *task_dto.CreateTaskFromCrackRequest) (*task_dto.TaskResponse, *app_errors.AppError) {
	if !isManager(actor) {
		return nil, forbidden()
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}
	crackID := req.CrackID
	task := &entity.TaskEntity{
		ID:          id,
		Description: req.Description,
		Status:      entity.TaskPending,
		CrackID:     &crackID,
		CreatedAt:   s.now().UTC(),
	}

	if err := s.repo.InsertTask(ctx, nil, task); err != nil {
		return nil, err
	}

	log.Info().Str("task_id", task.ID).Str("crack_id", crackID).Msg("task created for crack")
	return toTaskResponse(task), nil
}

// CreateTaskForScheduleJob spawns the task of a job whose schedule does not create tasks itself
func (s *TaskService) CreateTaskForScheduleJob(ctx context.Context, actor entity.Actor, jobID string, req *task_dto.CreateTaskForJobRequest) (*task_dto.TaskResponse, *app_errors.AppError) {
	if !isManager(actor) {
		return nil, forbidden()
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer tx.RollbackUnlessCommitted(ctx, t, &committed)

	job, err := s.schedules.GetJobByID(ctx, t, jobID)
	if err != nil {
		return nil, err
	}
	switch job.Status {
	case entity.JobCancel:
		return nil, app_errors.NewStaleWorkItem(job.ID, string(job.Status))
	case entity.JobCompleted:
		return nil, app_errors.NewInvalidTransition(job.ID, string(job.Status), string(entity.TaskPending), "transition.schedule_job_closed")
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}
	description := fmt.Sprintf("Maintenance of %s on %s", job.BuildingDetailID, job.RunDate.Format(time.DateOnly))
	if req.Description != nil {
		description = *req.Description
	}
	task := &entity.TaskEntity{
		ID:            id,
		Description:   description,
		Status:        entity.TaskPending,
		ScheduleJobID: &job.ID,
		CreatedAt:     s.now().UTC(),
	}

	if err := s.repo.InsertTask(ctx, t, task); err != nil {
		return nil, err
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	return toTaskResponse(task), nil
}

// MarkCrackCancelled flags the tasks of a withdrawn crack report. Their work
// items stay as they are and reject further transitions.
func (s *TaskService) MarkCrackCancelled(ctx context.Context, actor entity.Actor, crackID string) (*task_dto.CrackCancelledResponse, *app_errors.AppError) {
	if !isManager(actor) {
		return nil, forbidden()
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer tx.RollbackUnlessCommitted(ctx, t, &committed)

	affected, err := s.repo.MarkCrackCancelled(ctx, t, crackID)
	if err != nil {
		return nil, err
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	log.Info().Str("crack_id", crackID).Int64("tasks", affected).Msg("crack cancelled")
	return &task_dto.CrackCancelledResponse{CrackID: crackID, TasksAffected: affected}, nil
}

// CreateAssignment hands a task to an employee and opens its work log at INIT_INSPECTION.
func (s *TaskService) CreateAssignment(ctx context.Context, actor entity.Actor, taskID string, req *task_dto.CreateAssignmentRequest) (*task_dto.AssignmentResponse, *app_errors.AppError) {
	if !isManager(actor) {
		return nil, forbidden()
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer tx.RollbackUnlessCommitted(ctx, t, &committed)

	wc, err := s.liveContext(ctx, t, taskID)
	if err != nil {
		return nil, err
	}
	if wc.Task.Status == entity.TaskCompleted || wc.Task.Status == entity.TaskCancelled {
		return nil, app_errors.NewInvalidTransition(wc.Task.ID, string(wc.Task.Status), string(entity.TaskAssigned), "transition.task_closed")
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}
	a := &entity.TaskAssignmentEntity{
		ID:          id,
		TaskID:      wc.Task.ID,
		EmployeeID:  req.EmployeeID,
		Description: req.Description,
		Status:      entity.AssignmentPending,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.InsertAssignment(ctx, t, a); err != nil {
		return nil, err
	}

	title := defaultWorkLogTitle
	if req.Title != nil {
		title = *req.Title
	}
	w, err := s.openWorkLog(ctx, t, a, title)
	if err != nil {
		return nil, err
	}

	events := []bridge.Transition{s.event(entity.KindTaskAssignment, a.ID, wc, "", string(a.Status), actor, a.EmployeeID)}
	if wc.Task.Status == entity.TaskPending {
		if err := s.repo.UpdateTaskStatus(ctx, t, wc.Task.ID, entity.TaskAssigned); err != nil {
			return nil, err
		}
		events = append(events, s.event(entity.KindTask, wc.Task.ID, wc, string(entity.TaskPending), string(entity.TaskAssigned), actor))
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.publish(ctx, events)
	return &task_dto.AssignmentResponse{
		AssignmentID: a.ID,
		TaskID:       a.TaskID,
		EmployeeID:   a.EmployeeID,
		Status:       string(a.Status),
		WorkLogID:    &w.ID,
	}, nil
}

// ChangeAssignmentStatus moves an assignment and applies the side effects of
// the new state in the same transaction: InFixing starts the schedule job,
// Confirmed completes task and job, Reassigned cancels the open work log and
// hands the task to a new Pending assignment.
func (s *TaskService) ChangeAssignmentStatus(ctx context.Context, actor entity.Actor, assignmentID string, req *task_dto.ChangeAssignmentStatusRequest) (*task_dto.AssignmentTransitionResponse, *app_errors.AppError) {
	to := entity.AssignmentStatus(req.Status)

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer tx.RollbackUnlessCommitted(ctx, t, &committed)

	a, err := s.repo.GetAssignmentByID(ctx, t, assignmentID)
	if err != nil {
		return nil, err
	}

	wc, err := s.liveContext(ctx, t, a.TaskID)
	if err != nil {
		return nil, err
	}

	if err := workflow.CheckAssignment(a, to, actor); err != nil {
		return nil, err
	}

	// closure needs the work log at FINAL_REVIEW (or cancelled)
	if to == entity.AssignmentConfirmed {
		open, err := s.repo.GetOpenWorkLogByAssignment(ctx, t, a.ID)
		switch {
		case err.Is(app_errors.ErrNotFound):
		case err != nil:
			return nil, err
		default:
			return nil, app_errors.NewInvalidTransition(open.ID, string(open.Status), string(entity.WorkLogFinalReview), "transition.work_log_open")
		}
	}

	moved, err := s.repo.UpdateAssignmentStatus(ctx, t, a.ID, a.Status, to)
	if err != nil {
		return nil, err
	}
	if !moved {
		current, err := s.repo.GetAssignmentByID(ctx, t, a.ID)
		if err != nil {
			return nil, err
		}
		return nil, app_errors.NewInvalidTransition(a.ID, string(current.Status), string(to), "transition.concurrent_update")
	}

	events := []bridge.Transition{s.event(entity.KindTaskAssignment, a.ID, wc, string(a.Status), string(to), actor, a.EmployeeID)}
	resp := &task_dto.AssignmentTransitionResponse{
		AssignmentID: a.ID,
		From:         string(a.Status),
		Status:       string(to),
	}

	switch to {
	case entity.AssignmentInFixing:
		jobEvents, err := s.moveJob(ctx, t, wc, entity.JobPending, entity.JobInProgress, actor)
		if err != nil {
			return nil, err
		}
		events = append(events, jobEvents...)

	case entity.AssignmentConfirmed:
		if err := s.repo.UpdateTaskStatus(ctx, t, wc.Task.ID, entity.TaskCompleted); err != nil {
			return nil, err
		}
		events = append(events, s.event(entity.KindTask, wc.Task.ID, wc, string(wc.Task.Status), string(entity.TaskCompleted), actor))

		jobEvents, err := s.moveJob(ctx, t, wc, entity.JobInProgress, entity.JobCompleted, actor)
		if err != nil {
			return nil, err
		}
		events = append(events, jobEvents...)

	case entity.AssignmentReassigned:
		next, reassignEvents, err := s.reassign(ctx, t, wc, a, req, actor)
		if err != nil {
			return nil, err
		}
		events = append(events, reassignEvents...)
		resp.NextAssignment = next
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.publish(ctx, events)
	log.Info().Str("assignment_id", a.ID).Str("from", string(a.Status)).Str("to", string(to)).Msg("assignment status changed")
	return resp, nil
}

// moveJob advances the schedule job behind the task when it is still in from
func (s *TaskService) moveJob(ctx context.Context, t tx.Tx, wc *entity.WorkContext, from, to entity.ScheduleJobStatus, actor entity.Actor) ([]bridge.Transition, *app_errors.AppError) {
	if wc.Task.ScheduleJobID == nil || wc.JobStatus == nil || *wc.JobStatus != from {
		return nil, nil
	}

	moved, err := s.schedules.UpdateJobStatus(ctx, t, *wc.Task.ScheduleJobID, from, to)
	if err != nil || !moved {
		return nil, err
	}
	return []bridge.Transition{s.event(entity.KindScheduleJob, *wc.Task.ScheduleJobID, wc, string(from), string(to), actor)}, nil
}

// reassign cancels the open work log of old and opens a new assignment with its own work log
func (s *TaskService) reassign(ctx context.Context, t tx.Tx, wc *entity.WorkContext, old *entity.TaskAssignmentEntity, req *task_dto.ChangeAssignmentStatusRequest, actor entity.Actor) (*task_dto.AssignmentResponse, []bridge.Transition, *app_errors.AppError) {
	var events []bridge.Transition
	title := defaultWorkLogTitle

	open, err := s.repo.GetOpenWorkLogByAssignment(ctx, t, old.ID)
	switch {
	case err.Is(app_errors.ErrNotFound):
	case err != nil:
		return nil, nil, err
	default:
		cancelled, err := s.repo.UpdateWorkLogStatus(ctx, t, open.ID, open.Status, entity.WorkLogCancelled)
		if err != nil {
			return nil, nil, err
		}
		if !cancelled {
			return nil, nil, app_errors.NewInvalidTransition(open.ID, string(open.Status), string(entity.WorkLogCancelled), "transition.concurrent_update")
		}
		title = open.Title
		events = append(events, s.event(entity.KindWorkLog, open.ID, wc, string(open.Status), string(entity.WorkLogCancelled), actor))
	}

	employeeID := old.EmployeeID
	if req.EmployeeID != nil {
		employeeID = *req.EmployeeID
	}
	description := old.Description
	if req.Description != nil {
		description = req.Description
	}

	id, err := newID()
	if err != nil {
		return nil, nil, err
	}
	next := &entity.TaskAssignmentEntity{
		ID:          id,
		TaskID:      old.TaskID,
		EmployeeID:  employeeID,
		Description: description,
		Status:      entity.AssignmentPending,
		CreatedAt:   s.now().UTC(),
	}
	if err := s.repo.InsertAssignment(ctx, t, next); err != nil {
		return nil, nil, err
	}

	w, err := s.openWorkLog(ctx, t, next, title)
	if err != nil {
		return nil, nil, err
	}
	events = append(events, s.event(entity.KindTaskAssignment, next.ID, wc, "", string(next.Status), actor, next.EmployeeID))

	return &task_dto.AssignmentResponse{
		AssignmentID: next.ID,
		TaskID:       next.TaskID,
		EmployeeID:   next.EmployeeID,
		Status:       string(next.Status),
		WorkLogID:    &w.ID,
	}, events, nil
}
