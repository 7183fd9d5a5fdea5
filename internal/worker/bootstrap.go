package worker

import (
	"fmt"

	worker_handler "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/worker/handlers"
	worker_task "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/worker/tasks"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

// CronSpecs holds the cron expressions of the periodic tasks.
type CronSpecs struct {
	AutoMaintenance string
	DeductionSweep  string
}

func RegisterWorkerHandlers(mux *asynq.ServeMux, h *worker_handler.WorkerHandler) {
	mux.HandleFunc(worker_task.TaskAutoMaintenance, h.AutoMaintenance())
	mux.HandleFunc(worker_task.TaskMaterialDeductionSweep, h.MaterialDeductionSweep())
	mux.HandleFunc(worker_task.TaskMaterialDeduct, h.MaterialDeduct())
	mux.HandleFunc(worker_task.TaskTransitionNotify, h.TransitionNotify())
	mux.HandleFunc(worker_task.TaskCrackStatusUpdate, h.CrackStatusUpdate())
	mux.HandleFunc(worker_task.TaskScheduleJobEmail, h.ScheduleJobEmail())
}

func RegisterCronJobs(s *asynq.Scheduler, specs CronSpecs) error {
	jobs := []struct {
		spec string
		task *asynq.Task
		opts []asynq.Option
		desc string
	}{
		{
			spec: specs.AutoMaintenance,
			task: asynq.NewTask(worker_task.TaskAutoMaintenance, nil),
			// a missed tick is covered by the next one
			opts: []asynq.Option{asynq.Queue("default"), asynq.MaxRetry(0)},
			desc: "auto maintenance run",
		},
		{
			spec: specs.DeductionSweep,
			task: asynq.NewTask(worker_task.TaskMaterialDeductionSweep, nil),
			opts: []asynq.Option{asynq.Queue("low")},
			desc: "material deduction sweep",
		},
	}

	for _, job := range jobs {
		if _, err := s.Register(job.spec, job.task, job.opts...); err != nil {
			return fmt.Errorf("register %s failed: %w", job.desc, err)
		}
		log.Info().Str("spec", job.spec).Msgf("scheduled: %s", job.desc)
	}

	return nil
}
