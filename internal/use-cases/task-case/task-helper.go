package task_case

import (
	"context"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/tx"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/bridge"
	task_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/task-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

func newID() (string, *app_errors.AppError) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}
	return id.String(), nil
}

func isManager(actor entity.Actor) bool {
	return actor.Role == entity.RoleManager || actor.Role == entity.RoleSystem
}

func forbidden() *app_errors.AppError {
	return app_errors.NewAppError(fiber.StatusForbidden, app_errors.ErrForbidden, "forbidden.actor_not_allowed", nil)
}

// liveContext loads the task behind taskID and fails when its origin was cancelled
func (s *TaskService) liveContext(ctx context.Context, t tx.Tx, taskID string) (*entity.WorkContext, *app_errors.AppError) {
	wc, err := s.repo.GetWorkContext(ctx, t, taskID)
	if err != nil {
		return nil, err
	}
	if err := staleOrigin(wc); err != nil {
		return nil, err
	}
	return wc, nil
}

// staleOrigin reports the cancelled crack or schedule job behind wc, if any
func staleOrigin(wc *entity.WorkContext) *app_errors.AppError {
	if !wc.OriginCancelled() {
		return nil
	}
	if wc.Task.ScheduleJobID != nil {
		return app_errors.NewStaleWorkItem(wc.Task.ID, string(entity.JobCancel))
	}
	return app_errors.NewStaleWorkItem(wc.Task.ID, string(entity.TaskCancelled))
}

// canWorkOn checks if actor may act on the assignment: the assignee or a manager
func canWorkOn(actor entity.Actor, a *entity.TaskAssignmentEntity) bool {
	return isManager(actor) || (actor.Role == entity.RoleEmployee && actor.ID == a.EmployeeID)
}

// event builds a transition of an item belonging to the task in wc
func (s *TaskService) event(kind entity.EntityKind, entityID string, wc *entity.WorkContext, from, to string, actor entity.Actor, recipients ...string) bridge.Transition {
	return bridge.Transition{
		Kind:          kind,
		EntityID:      entityID,
		TaskID:        wc.Task.ID,
		CrackID:       wc.Task.CrackID,
		ScheduleJobID: wc.Task.ScheduleJobID,
		From:          from,
		To:            to,
		ActorID:       actor.ID,
		RecipientIDs:  recipients,
		OccurredAt:    s.now().UTC(),
	}
}

// publish hands committed transitions to the bridge in order
func (s *TaskService) publish(ctx context.Context, events []bridge.Transition) {
	for _, e := range events {
		s.bridge.OnTransition(ctx, e)
	}
}

// openWorkLog creates the INIT_INSPECTION work log of a fresh assignment
func (s *TaskService) openWorkLog(ctx context.Context, t tx.Tx, a *entity.TaskAssignmentEntity, title string) (*entity.WorkLogEntity, *app_errors.AppError) {
	id, err := newID()
	if err != nil {
		return nil, err
	}
	w := &entity.WorkLogEntity{
		ID:               id,
		TaskID:           a.TaskID,
		TaskAssignmentID: a.ID,
		Title:            title,
		Description:      a.Description,
		Status:           entity.WorkLogInitInspection,
		CreatedAt:        s.now().UTC(),
	}
	if err := s.repo.InsertWorkLog(ctx, t, w); err != nil {
		return nil, err
	}
	return w, nil
}

func toTaskResponse(task *entity.TaskEntity) *task_dto.TaskResponse {
	return &task_dto.TaskResponse{
		TaskID:        task.ID,
		Description:   task.Description,
		Status:        string(task.Status),
		CrackID:       task.CrackID,
		ScheduleJobID: task.ScheduleJobID,
		CreatedAt:     task.CreatedAt,
	}
}
