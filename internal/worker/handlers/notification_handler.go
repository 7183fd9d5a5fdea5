package worker_handler

import (
	"context"
	"fmt"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	worker_task "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

func (wh *WorkerHandler) TransitionNotify() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p worker_task.TransitionNotifyPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Error().Err(err).Msg("Worker handler: Error occured when trying to unmarshal task payload.")
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		emails, err := wh.recipientEmails(ctx, p.RecipientIDs)
		if err != nil {
			return err
		}
		if len(emails) == 0 {
			return nil
		}

		return wh.mailer.SendTransitionNotification(emails, &p)
	}
}

func (wh *WorkerHandler) CrackStatusUpdate() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p worker_task.CrackStatusUpdatePayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Error().Err(err).Msg("Worker handler: Error occured when trying to unmarshal task payload.")
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		if err := wh.cracks.UpdateCrackStatus(ctx, p.CrackID, p.Status); err != nil {
			return err
		}
		return nil
	}
}

func (wh *WorkerHandler) ScheduleJobEmail() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p worker_task.ScheduleJobEmailPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Error().Err(err).Msg("Worker handler: Error occured when trying to unmarshal task payload.")
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		job, err := wh.schedules.GetJobByID(ctx, nil, p.ScheduleJobID)
		if err != nil {
			log.Error().Err(err).Str("schedule_job_id", p.ScheduleJobID).Msg("Worker handler: error occured when fetch schedule job")
			return err
		}
		if job.Status == entity.JobCancel {
			return nil
		}

		scheduleName := "Maintenance"
		if job.ScheduleID != nil {
			schedule, err := wh.schedules.GetScheduleByID(ctx, nil, *job.ScheduleID)
			if err != nil {
				return err
			}
			scheduleName = schedule.Name
		}

		emails, err := wh.recipientEmails(ctx, p.RecipientIDs)
		if err != nil {
			return err
		}
		if len(emails) == 0 {
			return nil
		}

		return wh.mailer.SendMaintenanceScheduleEmail(emails, scheduleName, job)
	}
}

// recipientEmails resolves employee ids to addresses; no ids means the managers.
func (wh *WorkerHandler) recipientEmails(ctx context.Context, ids []string) ([]string, *app_errors.AppError) {
	var (
		employees []entity.EmployeeEntity
		err       *app_errors.AppError
	)
	if len(ids) == 0 {
		employees, err = wh.employees.ListByRole(ctx, entity.RoleManager)
	} else {
		employees, err = wh.employees.FindByIDs(ctx, ids)
	}
	if err != nil {
		log.Error().Err(err).Msg("Worker handler: error occured when fetch recipients")
		return nil, err
	}

	emails := make([]string, 0, len(employees))
	for _, e := range employees {
		if e.Email != "" {
			emails = append(emails, e.Email)
		}
	}
	return emails, nil
}
