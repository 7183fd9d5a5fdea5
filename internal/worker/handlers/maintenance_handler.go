package worker_handler

import (
	"context"
	"fmt"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	worker_task "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"
)

const (
	// deductions younger than this are still on their way through the bridge
	sweepGrace = 5 * time.Minute
	sweepBatch = 100
)

func (wh *WorkerHandler) AutoMaintenance() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		report, err := wh.scheduler.TriggerAutoMaintenance(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Worker handler: auto maintenance run failed")
			return err
		}

		log.Info().
			Str("run_id", report.RunID).
			Bool("skipped", report.Skipped).
			Int("schedules", report.Schedules).
			Int("jobs_created", report.JobsCreated).
			Int("failed", report.Failed).
			Msg("Worker handler: auto maintenance run finished")
		return nil
	}
}

// MaterialDeductionSweep re-enqueues claimed deductions whose task was lost.
func (wh *WorkerHandler) MaterialDeductionSweep() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		pending, err := wh.tasks.ListPendingDeductions(ctx, wh.now().UTC().Add(-sweepGrace), sweepBatch)
		if err != nil {
			log.Error().Err(err).Msg("Worker handler: Error occured when list pending deductions")
			return err
		}
		if len(pending) == 0 {
			return nil
		}

		requeued := 0
		for _, d := range pending {
			if err := wh.queue.EnqueueMaterialDeduction(ctx, &worker_task.MaterialDeductPayload{InspectionID: d.InspectionID}); err != nil {
				log.Warn().Err(err).Str("inspection_id", d.InspectionID).Msg("Worker handler: re-enqueue deduction failed")
				continue
			}
			requeued++
		}

		log.Info().Int("pending", len(pending)).Int("requeued", requeued).Msg("Worker handler: deduction sweep finished")
		return nil
	}
}

// MaterialDeduct applies a claimed deduction once. The stock service dedups
// on the inspection id, so a crash between deduct and mark is safe to retry.
func (wh *WorkerHandler) MaterialDeduct() asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		var p worker_task.MaterialDeductPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			log.Error().Err(err).Msg("Worker handler: Error occured when trying to unmarshal task payload.")
			return fmt.Errorf("%w: %v", asynq.SkipRetry, err)
		}

		d, err := wh.tasks.GetMaterialDeduction(ctx, p.InspectionID)
		if err.Is(app_errors.ErrNotFound) {
			log.Warn().Str("inspection_id", p.InspectionID).Msg("Worker handler: deduction not claimed, dropping task")
			return nil
		}
		if err != nil {
			return err
		}

		// Idempotency check
		if d.Status == entity.DeductionApplied {
			return nil
		}

		if err := wh.materials.DeductMaterials(ctx, d.InspectionID, d.Materials); err != nil {
			return err
		}

		if _, err := wh.tasks.MarkDeductionApplied(ctx, d.InspectionID); err != nil {
			log.Error().Err(err).Str("inspection_id", d.InspectionID).Msg("Worker handler: deducted but could not mark applied")
			return err
		}

		log.Info().Str("inspection_id", d.InspectionID).Int("items", len(d.Materials)).Msg("Worker handler: materials deducted")
		return nil
	}
}
