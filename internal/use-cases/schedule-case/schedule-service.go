package schedule_case

import (
	"context"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/cache"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/tx"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/bridge"
	schedule_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/schedule-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	maintenance_repo "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/repo/maintenance-repo"
	schedule_repo "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/repo/schedule-repo"
	task_repo "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/repo/task-repo"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/report"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/workflow"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Options tune the scheduler driver.
type Options struct {
	LookaheadDays int
	Parallelism   int
	LockTTL       time.Duration
}

type ScheduleService struct {
	repo      schedule_repo.ScheduleRepoContract
	cycles    maintenance_repo.MaintenanceRepoContract
	tasks     task_repo.TaskRepoContract
	txManager tx.TxManager
	locker    cache.Locker
	cache     cache.Cache
	bridge    bridge.Bridge
	opts      Options
	now       func() time.Time
}

func NewScheduleService(db *pgxpool.Pool, redis *redis.Client, b bridge.Bridge, opts Options) ScheduleServiceContract {
	redisCache := cache.NewRedisCache(redis)
	return &ScheduleService{
		repo:      schedule_repo.NewScheduleRepo(db),
		cycles:    maintenance_repo.NewMaintenanceRepo(db),
		tasks:     task_repo.NewTaskRepo(db),
		txManager: tx.NewPgxTxManager(db),
		locker:    redisCache,
		cache:     redisCache,
		bridge:    b,
		opts:      opts,
		now:       time.Now,
	}
}

func (s *ScheduleService) CreateSchedule(ctx context.Context, actor entity.Actor, req *schedule_dto.CreateScheduleRequest) (*schedule_dto.ScheduleResponse, *app_errors.AppError) {
	if !canPlan(actor) {
		return nil, app_errors.NewAppError(fiber.StatusForbidden, app_errors.ErrForbidden, "forbidden.actor_not_allowed", nil)
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer tx.RollbackUnlessCommitted(ctx, t, &committed)

	// Check if cycle exists
	cycle, err := s.cycles.GetCycleByID(ctx, t, req.CycleID)
	if err != nil {
		return nil, err
	}

	schedule, err := s.buildSchedule(actor, cycle, scheduleInput{
		Name:            req.Name,
		Description:     req.Description,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		DurationDays:    req.DurationDays,
		AutoCreateTasks: req.AutoCreateTasks,
		SpecificDates:   req.SpecificDates,
		Targets:         req.BuildingDetailIDs,
	})
	if err != nil {
		return nil, err
	}

	if err := s.repo.InsertSchedule(ctx, t, schedule); err != nil {
		return nil, err
	}

	result, err := s.planAndPersist(ctx, t, schedule, cycle.Frequency, schedule.StartDate, s.creationHorizon(schedule))
	if err != nil {
		return nil, err
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	log.Info().Str("schedule_id", schedule.ID).Int("jobs", result.JobsCreated).Int("tasks", result.TasksCreated).Msg("schedule created")
	return toScheduleResponse(schedule, result), nil
}

// GenerateSchedulesFromConfig creates one schedule per cycle config for the
// same targets. Either every schedule and its jobs are stored, or none.
func (s *ScheduleService) GenerateSchedulesFromConfig(ctx context.Context, actor entity.Actor, req *schedule_dto.GenerateSchedulesRequest) ([]schedule_dto.ScheduleResponse, *app_errors.AppError) {
	if !canPlan(actor) {
		return nil, app_errors.NewAppError(fiber.StatusForbidden, app_errors.ErrForbidden, "forbidden.actor_not_allowed", nil)
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer tx.RollbackUnlessCommitted(ctx, t, &committed)

	out := make([]schedule_dto.ScheduleResponse, 0, len(req.CycleConfigs))
	for _, cfg := range req.CycleConfigs {
		cycle, err := s.cycles.GetCycleByID(ctx, t, cfg.CycleID)
		if err != nil {
			return nil, err
		}

		name := cycle.DeviceType + " maintenance"
		if cfg.Name != nil {
			name = *cfg.Name
		}

		schedule, err := s.buildSchedule(actor, cycle, scheduleInput{
			Name:            name,
			StartDate:       cfg.StartDate,
			EndDate:         cfg.EndDate,
			DurationDays:    cfg.DurationDays,
			AutoCreateTasks: cfg.AutoCreateTasks,
			SpecificDates:   cfg.SpecificDates,
			Targets:         req.BuildingDetailIDs,
		})
		if err != nil {
			return nil, err
		}

		if err := s.repo.InsertSchedule(ctx, t, schedule); err != nil {
			return nil, err
		}

		result, err := s.planAndPersist(ctx, t, schedule, cycle.Frequency, schedule.StartDate, s.creationHorizon(schedule))
		if err != nil {
			return nil, err
		}
		out = append(out, *toScheduleResponse(schedule, result))
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	log.Info().Int("schedules", len(out)).Msg("schedules generated from cycle configs")
	return out, nil
}

// CancelSchedule stops a schedule and cancels its open jobs. Completed jobs
// and already spawned tasks are left alone.
func (s *ScheduleService) CancelSchedule(ctx context.Context, actor entity.Actor, scheduleID string) (*schedule_dto.CancelScheduleResponse, *app_errors.AppError) {
	if !canPlan(actor) {
		return nil, app_errors.NewAppError(fiber.StatusForbidden, app_errors.ErrForbidden, "forbidden.actor_not_allowed", nil)
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer tx.RollbackUnlessCommitted(ctx, t, &committed)

	schedule, err := s.repo.GetScheduleByID(ctx, t, scheduleID)
	if err != nil {
		return nil, err
	}
	if schedule.Status != entity.ScheduleInProgress {
		return nil, app_errors.NewInvalidTransition(schedule.ID, string(schedule.Status), string(entity.ScheduleCancelled), "transition.schedule_not_active")
	}

	moved, err := s.repo.UpdateScheduleStatus(ctx, t, schedule.ID, schedule.Status, entity.ScheduleCancelled)
	if err != nil {
		return nil, err
	}
	if !moved {
		current, err := s.repo.GetScheduleByID(ctx, t, schedule.ID)
		if err != nil {
			return nil, err
		}
		return nil, app_errors.NewInvalidTransition(schedule.ID, string(current.Status), string(entity.ScheduleCancelled), "transition.concurrent_update")
	}

	cancelled, err := s.repo.CancelOpenJobs(ctx, t, schedule.ID)
	if err != nil {
		return nil, err
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	s.bridge.OnTransition(ctx, bridge.Transition{
		Kind:       entity.KindSchedule,
		EntityID:   schedule.ID,
		From:       string(schedule.Status),
		To:         string(entity.ScheduleCancelled),
		ActorID:    actor.ID,
		OccurredAt: s.now().UTC(),
	})

	log.Info().Str("schedule_id", schedule.ID).Int64("cancelled_jobs", cancelled).Msg("schedule cancelled")
	return &schedule_dto.CancelScheduleResponse{
		ScheduleID:    schedule.ID,
		Status:        string(entity.ScheduleCancelled),
		CancelledJobs: cancelled,
	}, nil
}

func (s *ScheduleService) UpdateScheduleJobStatus(ctx context.Context, actor entity.Actor, jobID string, req *schedule_dto.UpdateJobStatusRequest) (*schedule_dto.ScheduleJobItem, *app_errors.AppError) {
	if !canPlan(actor) {
		return nil, app_errors.NewAppError(fiber.StatusForbidden, app_errors.ErrForbidden, "forbidden.actor_not_allowed", nil)
	}
	to := entity.ScheduleJobStatus(req.Status)

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer tx.RollbackUnlessCommitted(ctx, t, &committed)

	job, err := s.repo.GetJobByID(ctx, t, jobID)
	if err != nil {
		return nil, err
	}

	if err := workflow.CheckScheduleJob(job, to); err != nil {
		return nil, err
	}

	moved, err := s.repo.UpdateJobStatus(ctx, t, job.ID, job.Status, to)
	if err != nil {
		return nil, err
	}
	if !moved {
		current, err := s.repo.GetJobByID(ctx, t, job.ID)
		if err != nil {
			return nil, err
		}
		return nil, app_errors.NewInvalidTransition(job.ID, string(current.Status), string(to), "transition.concurrent_update")
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	from := job.Status
	now := s.now().UTC()
	job.Status = to
	job.UpdatedAt = &now

	s.bridge.OnTransition(ctx, bridge.Transition{
		Kind:          entity.KindScheduleJob,
		EntityID:      job.ID,
		ScheduleJobID: &job.ID,
		From:          string(from),
		To:            string(to),
		ActorID:       actor.ID,
		OccurredAt:    now,
	})

	item := toJobItem(job)
	return &item, nil
}

func (s *ScheduleService) ListScheduleJobs(ctx context.Context, scheduleID string, filter *schedule_dto.JobListFilter) ([]schedule_dto.ScheduleJobItem, *app_errors.AppError) {
	// Check if schedule exists
	if _, err := s.repo.GetScheduleByID(ctx, nil, scheduleID); err != nil {
		return nil, err
	}

	var status *entity.ScheduleJobStatus
	if filter != nil && filter.Status != nil {
		st := entity.ScheduleJobStatus(*filter.Status)
		status = &st
	}

	jobs, err := s.repo.ListJobsBySchedule(ctx, scheduleID, status)
	if err != nil {
		return nil, err
	}

	items := make([]schedule_dto.ScheduleJobItem, 0, len(jobs))
	for i := range jobs {
		items = append(items, toJobItem(&jobs[i]))
	}
	return items, nil
}

func (s *ScheduleService) ExportScheduleJobs(ctx context.Context, scheduleID string) ([]byte, string, *app_errors.AppError) {
	schedule, err := s.repo.GetScheduleByID(ctx, nil, scheduleID)
	if err != nil {
		return nil, "", err
	}

	jobs, err := s.repo.ListJobsBySchedule(ctx, scheduleID, nil)
	if err != nil {
		return nil, "", err
	}

	raw, exportErr := report.ScheduleJobsWorkbook(schedule, jobs)
	if exportErr != nil {
		return nil, "", app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", exportErr)
	}
	return raw, report.ScheduleJobsFilename(schedule, s.now()), nil
}

// NotifyScheduleJob asks the bridge to e-mail the job to the given
// employees. Without recipients the managers are notified.
func (s *ScheduleService) NotifyScheduleJob(ctx context.Context, actor entity.Actor, jobID string, req *schedule_dto.NotifyJobRequest) *app_errors.AppError {
	if !canPlan(actor) {
		return app_errors.NewAppError(fiber.StatusForbidden, app_errors.ErrForbidden, "forbidden.actor_not_allowed", nil)
	}

	job, err := s.repo.GetJobByID(ctx, nil, jobID)
	if err != nil {
		return err
	}
	if job.Status == entity.JobCancel {
		return app_errors.NewStaleWorkItem(job.ID, string(job.Status))
	}

	s.bridge.SendMaintenanceScheduleEmail(ctx, job.ID, req.RecipientIDs)
	return nil
}
