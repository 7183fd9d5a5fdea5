package schedule_case

import (
	"context"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/tx"
	schedule_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/schedule-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/recurrence"
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	autoMaintenanceLock = "scheduler:auto-maintenance"
	lastRunKey          = "scheduler:last_run"
	lastRunTTL          = 24 * time.Hour
)

// TriggerAutoMaintenance plans the jobs of every active schedule inside the
// lookahead window. Each schedule is stored in its own transaction; a failing
// schedule is reported and does not stop the others.
func (s *ScheduleService) TriggerAutoMaintenance(ctx context.Context) (*schedule_dto.RunReport, *app_errors.AppError) {
	runID, idErr := uuid.NewV7()
	if idErr != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", idErr)
	}
	report := &schedule_dto.RunReport{
		RunID:     runID.String(),
		StartedAt: s.now().UTC(),
		Results:   []schedule_dto.ScheduleRunResult{},
	}

	// The lock only reduces overlap; job creation stays idempotent without it
	release, acquired, err := s.locker.Acquire(ctx, autoMaintenanceLock, s.opts.LockTTL)
	switch {
	case err != nil:
		log.Warn().Err(err).Str("run_id", report.RunID).Msg("scheduler lock unavailable, running without it")
	case !acquired:
		log.Info().Str("run_id", report.RunID).Msg("scheduler run skipped, lock is held")
		report.Skipped = true
		report.FinishedAt = s.now().UTC()
		return report, nil
	default:
		defer release(context.WithoutCancel(ctx))
	}

	today := recurrence.Day(s.now())
	horizon := today.AddDate(0, 0, s.opts.LookaheadDays)

	schedules, err := s.repo.ListActiveSchedules(ctx, today, horizon)
	if err != nil {
		return nil, err
	}

	results := make([]schedule_dto.ScheduleRunResult, len(schedules))
	var g errgroup.Group
	g.SetLimit(max(s.opts.Parallelism, 1))
	for i := range schedules {
		g.Go(func() error {
			results[i] = s.runSchedule(ctx, &schedules[i], today, horizon)
			return nil
		})
	}
	_ = g.Wait()

	report.Schedules = len(schedules)
	report.Results = results
	for _, r := range results {
		report.JobsCreated += r.JobsCreated
		if r.Error != "" {
			report.Failed++
		}
	}
	report.FinishedAt = s.now().UTC()

	if err := s.cache.Set(ctx, lastRunKey, report, lastRunTTL); err != nil {
		log.Warn().Err(err).Str("run_id", report.RunID).Msg("failed to cache scheduler run report")
	}

	log.Info().
		Str("run_id", report.RunID).
		Int("schedules", report.Schedules).
		Int("jobs_created", report.JobsCreated).
		Int("failed", report.Failed).
		Msg("auto maintenance run finished")
	return report, nil
}

// runSchedule plans one schedule over [max(today, start), min(horizon, end+1))
func (s *ScheduleService) runSchedule(ctx context.Context, schedule *entity.ActiveSchedule, today, horizon time.Time) schedule_dto.ScheduleRunResult {
	from := today
	if start := recurrence.Day(schedule.StartDate); start.After(from) {
		from = start
	}
	until := windowEnd(&schedule.ScheduleEntity, horizon)
	if !from.Before(until) {
		return schedule_dto.ScheduleRunResult{ScheduleID: schedule.ID}
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return failedRun(schedule.ID, err)
	}
	committed := false
	defer tx.RollbackUnlessCommitted(ctx, t, &committed)

	result, err := s.planAndPersist(ctx, t, &schedule.ScheduleEntity, schedule.Frequency, from, until)
	if err != nil {
		return failedRun(schedule.ID, err)
	}

	if err := t.Commit(ctx); err != nil {
		return failedRun(schedule.ID, err)
	}
	committed = true

	return result
}

func failedRun(scheduleID string, err *app_errors.AppError) schedule_dto.ScheduleRunResult {
	log.Error().Err(err).Str("schedule_id", scheduleID).Msg("schedule run failed")
	return schedule_dto.ScheduleRunResult{ScheduleID: scheduleID, Error: err.Error()}
}

func (s *ScheduleService) LastRunReport(ctx context.Context) (*schedule_dto.RunReport, *app_errors.AppError) {
	cached, err := s.cache.Get(ctx, lastRunKey)
	if err != nil {
		return nil, err
	}
	if cached == nil {
		return nil, app_errors.NewAppError(fiber.StatusNotFound, app_errors.ErrNotFound, "scheduler.no_run_yet", nil)
	}

	raw, mErr := json.Marshal(*cached)
	if mErr != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", mErr)
	}
	var report schedule_dto.RunReport
	if uErr := json.Unmarshal(raw, &report); uErr != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", uErr)
	}
	return &report, nil
}
