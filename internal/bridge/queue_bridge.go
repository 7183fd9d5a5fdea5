package bridge

import (
	"context"
	"time"

	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/queue"
	worker_task "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/worker/tasks"
	"github.com/rs/zerolog/log"
)

type QueueBridge struct {
	queue   queue.TaskQueueClient
	timeout time.Duration
}

func NewQueueBridge(q queue.TaskQueueClient, timeout time.Duration) *QueueBridge {
	return &QueueBridge{queue: q, timeout: timeout}
}

func (b *QueueBridge) OnTransition(ctx context.Context, t Transition) {
	ctx, cancel := b.bounded(ctx)
	defer cancel()

	occurredAt := t.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now().UTC()
	}

	if err := b.queue.EnqueueTransitionNotify(ctx, &worker_task.TransitionNotifyPayload{
		Kind:         string(t.Kind),
		EntityID:     t.EntityID,
		TaskID:       t.TaskID,
		From:         t.From,
		To:           t.To,
		ActorID:      t.ActorID,
		RecipientIDs: t.RecipientIDs,
		OccurredAt:   occurredAt,
	}); err != nil {
		logUnavailable("notification", err, t.EntityID)
	}

	if status, ok := CrackStatusFor(t); ok {
		if err := b.queue.EnqueueCrackStatusUpdate(ctx, &worker_task.CrackStatusUpdatePayload{
			CrackID: *t.CrackID,
			TaskID:  t.TaskID,
			Status:  status,
		}); err != nil {
			logUnavailable("crack", err, t.EntityID)
		}
	}
}

func (b *QueueBridge) SendMaintenanceScheduleEmail(ctx context.Context, scheduleJobID string, recipientIDs []string) {
	ctx, cancel := b.bounded(ctx)
	defer cancel()

	if err := b.queue.EnqueueScheduleJobEmail(ctx, &worker_task.ScheduleJobEmailPayload{
		ScheduleJobID: scheduleJobID,
		RecipientIDs:  recipientIDs,
	}); err != nil {
		logUnavailable("mail", err, scheduleJobID)
	}
}

// RequestMaterialDeduction enqueues the stock deduction of a claimed inspection.
// A lost enqueue is picked up by the deduction sweep.
func (b *QueueBridge) RequestMaterialDeduction(ctx context.Context, inspectionID string) {
	ctx, cancel := b.bounded(ctx)
	defer cancel()

	if err := b.queue.EnqueueMaterialDeduction(ctx, &worker_task.MaterialDeductPayload{InspectionID: inspectionID}); err != nil {
		logUnavailable("material", err, inspectionID)
	}
}

// bounded detaches from the request so a finished HTTP call does not abort delivery.
func (b *QueueBridge) bounded(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), b.timeout)
}

func logUnavailable(collaborator string, err error, entityID string) {
	appErr := app_errors.NewDownstreamUnavailable(collaborator, err)
	log.Warn().
		Err(appErr.Err).
		Str("type", appErr.Type).
		Str("collaborator", collaborator).
		Str("entity_id", entityID).
		Msg("bridge delivery failed")
}
