package schedule_case

import (
	"context"
	"fmt"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/tx"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos"
	schedule_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/schedule-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/planner"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/recurrence"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type scheduleInput struct {
	Name            string
	Description     *string
	StartDate       *dtos.Date
	EndDate         *dtos.Date
	DurationDays    *int
	AutoCreateTasks bool
	SpecificDates   []dtos.Date
	Targets         []string
}

// canPlan checks if actor may change schedules and their jobs
func canPlan(actor entity.Actor) bool {
	return actor.Role == entity.RoleManager || actor.Role == entity.RoleSystem
}

// buildSchedule validates the input against the cycle and returns the new schedule row
func (s *ScheduleService) buildSchedule(actor entity.Actor, cycle *entity.MaintenanceCycleEntity, in scheduleInput) (*entity.ScheduleEntity, *app_errors.AppError) {
	start := recurrence.Day(s.now())
	if in.StartDate != nil {
		start = in.StartDate.Time
	}

	var end *time.Time
	switch {
	case in.EndDate != nil:
		e := in.EndDate.Time
		end = &e
	case in.DurationDays != nil:
		e := start.AddDate(0, 0, *in.DurationDays)
		end = &e
	}
	if end != nil && end.Before(start) {
		return nil, app_errors.NewValidationError([]app_errors.FieldError{{
			Field:      "end_date",
			Reason:     "gtefield",
			MessageKey: "validation.end_before_start",
		}})
	}

	if cycle.Frequency == entity.FrequencySpecific && len(in.SpecificDates) == 0 {
		return nil, app_errors.NewValidationError([]app_errors.FieldError{{
			Field:      "specific_dates",
			Reason:     "required",
			MessageKey: "validation.specific_dates_required",
		}})
	}
	if cycle.Frequency != entity.FrequencySpecific && len(in.SpecificDates) > 0 {
		return nil, app_errors.NewValidationError([]app_errors.FieldError{{
			Field:      "specific_dates",
			Reason:     "excluded",
			MessageKey: "validation.specific_dates_not_allowed",
		}})
	}

	// no targets is a valid schedule that plans nothing
	targets := uniqueTargets(in.Targets)

	var specific []time.Time
	for _, d := range in.SpecificDates {
		specific = append(specific, d.Time)
	}

	id, idErr := uuid.NewV7()
	if idErr != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", idErr)
	}

	return &entity.ScheduleEntity{
		ID:                id.String(),
		Name:              in.Name,
		Description:       in.Description,
		CycleID:           cycle.ID,
		StartDate:         start,
		EndDate:           end,
		Status:            entity.ScheduleInProgress,
		AutoCreateTasks:   in.AutoCreateTasks,
		SpecificDates:     specific,
		BuildingDetailIDs: targets,
		CreatedBy:         actor.ID,
		CreatedAt:         s.now().UTC(),
	}, nil
}

// uniqueTargets drops empty and repeated ids, keeping the first occurrence
func uniqueTargets(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// windowEnd clips horizon to the day after the schedule's end date
func windowEnd(schedule *entity.ScheduleEntity, horizon time.Time) time.Time {
	if schedule.EndDate == nil {
		return horizon
	}
	afterEnd := recurrence.Day(*schedule.EndDate).AddDate(0, 0, 1)
	if afterEnd.Before(horizon) {
		return afterEnd
	}
	return horizon
}

// creationHorizon is the exclusive end of the window planned when a schedule is created
func (s *ScheduleService) creationHorizon(schedule *entity.ScheduleEntity) time.Time {
	today := recurrence.Day(s.now())
	return windowEnd(schedule, today.AddDate(0, 0, s.opts.LookaheadDays))
}

// planAndPersist resolves the due dates of schedule in [from, until), plans
// the missing jobs and stores them in t. A slot taken concurrently counts as
// a duplicate and spawns no task.
func (s *ScheduleService) planAndPersist(ctx context.Context, t tx.Tx, schedule *entity.ScheduleEntity, frequency entity.Frequency, from, until time.Time) (schedule_dto.ScheduleRunResult, *app_errors.AppError) {
	result := schedule_dto.ScheduleRunResult{ScheduleID: schedule.ID}

	due := recurrence.Collect(recurrence.Resolve(recurrence.Rule{
		Frequency:     frequency,
		StartDate:     schedule.StartDate,
		SpecificDates: schedule.SpecificDates,
	}, from, until))
	if len(due) == 0 || len(schedule.BuildingDetailIDs) == 0 {
		return result, nil
	}

	existing, err := s.repo.ListJobsInWindow(ctx, t, schedule.ID, from, until)
	if err != nil {
		return result, err
	}

	requests := planner.Plan(schedule, due, schedule.BuildingDetailIDs, existing)
	result.JobsPlanned = len(requests)

	for _, req := range requests {
		jobID, idErr := uuid.NewV7()
		if idErr != nil {
			return result, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", idErr)
		}

		scheduleID := req.ScheduleID
		job := &entity.ScheduleJobEntity{
			ID:               jobID.String(),
			ScheduleID:       &scheduleID,
			BuildingDetailID: req.BuildingDetailID,
			RunDate:          req.RunDate,
			Status:           req.Status,
			CreatedAt:        s.now().UTC(),
		}

		if err := s.repo.InsertScheduleJob(ctx, t, job); err != nil {
			if err.Is(app_errors.ErrDuplicateJob) {
				result.Duplicates++
				log.Debug().Str("schedule_id", schedule.ID).Str("building_detail_id", req.BuildingDetailID).Time("run_date", req.RunDate).Msg("schedule job already exists")
				continue
			}
			return result, err
		}
		result.JobsCreated++

		if !req.CreateTask {
			continue
		}

		taskID, idErr := uuid.NewV7()
		if idErr != nil {
			return result, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", idErr)
		}
		if err := s.tasks.InsertTask(ctx, t, &entity.TaskEntity{
			ID:            taskID.String(),
			Description:   fmt.Sprintf("%s: %s on %s", schedule.Name, req.BuildingDetailID, req.RunDate.Format(time.DateOnly)),
			Status:        entity.TaskPending,
			ScheduleJobID: &job.ID,
			CreatedAt:     job.CreatedAt,
		}); err != nil {
			return result, err
		}
		result.TasksCreated++
	}

	return result, nil
}

func toScheduleResponse(schedule *entity.ScheduleEntity, result schedule_dto.ScheduleRunResult) *schedule_dto.ScheduleResponse {
	resp := &schedule_dto.ScheduleResponse{
		ScheduleID:        schedule.ID,
		Name:              schedule.Name,
		CycleID:           schedule.CycleID,
		Status:            string(schedule.Status),
		StartDate:         dtos.NewDate(schedule.StartDate),
		AutoCreateTasks:   schedule.AutoCreateTasks,
		BuildingDetailIDs: schedule.BuildingDetailIDs,
		JobsCreated:       result.JobsCreated,
		TasksCreated:      result.TasksCreated,
	}
	if schedule.EndDate != nil {
		end := dtos.NewDate(*schedule.EndDate)
		resp.EndDate = &end
	}
	return resp
}

func toJobItem(job *entity.ScheduleJobEntity) schedule_dto.ScheduleJobItem {
	return schedule_dto.ScheduleJobItem{
		JobID:            job.ID,
		ScheduleID:       job.ScheduleID,
		BuildingDetailID: job.BuildingDetailID,
		RunDate:          dtos.NewDate(job.RunDate),
		Status:           string(job.Status),
		CreatedAt:        job.CreatedAt,
		UpdatedAt:        job.UpdatedAt,
	}
}
