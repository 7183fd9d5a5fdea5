package queue

import (
	"context"
	"errors"

	worker_task "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/worker/tasks"
	"github.com/goccy/go-json"
	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

type TaskQueueClient interface {
	EnqueueTransitionNotify(ctx context.Context, payload *worker_task.TransitionNotifyPayload) error
	EnqueueCrackStatusUpdate(ctx context.Context, payload *worker_task.CrackStatusUpdatePayload) error
	EnqueueMaterialDeduction(ctx context.Context, payload *worker_task.MaterialDeductPayload) error
	EnqueueScheduleJobEmail(ctx context.Context, payload *worker_task.ScheduleJobEmailPayload) error
	EnqueueAutoMaintenance(ctx context.Context) error
}

type TaskQueue struct {
	client *asynq.Client
}

func NewTaskQueue(redis *redis.Client) *TaskQueue {
	return &TaskQueue{
		client: asynq.NewClientFromRedisClient(redis),
	}
}

func (q *TaskQueue) EnqueueTransitionNotify(ctx context.Context, payload *worker_task.TransitionNotifyPayload) error {
	p, _ := json.Marshal(payload)
	task := asynq.NewTask(worker_task.TaskTransitionNotify, p, asynq.Queue("email"), asynq.MaxRetry(5))

	_, err := q.client.EnqueueContext(ctx, task)
	return err
}

func (q *TaskQueue) EnqueueCrackStatusUpdate(ctx context.Context, payload *worker_task.CrackStatusUpdatePayload) error {
	p, _ := json.Marshal(payload)
	task := asynq.NewTask(worker_task.TaskCrackStatusUpdate, p, asynq.Queue("default"), asynq.MaxRetry(10))

	_, err := q.client.EnqueueContext(ctx, task)
	return err
}

// EnqueueMaterialDeduction is idempotent per inspection: a task that is still
// queued or retrying under the same id is not enqueued twice.
func (q *TaskQueue) EnqueueMaterialDeduction(ctx context.Context, payload *worker_task.MaterialDeductPayload) error {
	log.Info().Str("inspection_id", payload.InspectionID).Msg("Preparing enqueueing material deduction.")
	p, _ := json.Marshal(payload)
	task := asynq.NewTask(
		worker_task.TaskMaterialDeduct,
		p,
		asynq.Queue("default"),
		asynq.MaxRetry(10),
		asynq.TaskID(worker_task.MaterialDeductTaskID(payload.InspectionID)),
	)

	_, err := q.client.EnqueueContext(ctx, task)
	if errors.Is(err, asynq.ErrTaskIDConflict) {
		return nil
	}
	return err
}

func (q *TaskQueue) EnqueueScheduleJobEmail(ctx context.Context, payload *worker_task.ScheduleJobEmailPayload) error {
	p, _ := json.Marshal(payload)
	task := asynq.NewTask(worker_task.TaskScheduleJobEmail, p, asynq.Queue("email"), asynq.MaxRetry(5))

	_, err := q.client.EnqueueContext(ctx, task)
	return err
}

func (q *TaskQueue) EnqueueAutoMaintenance(ctx context.Context) error {
	task := asynq.NewTask(worker_task.TaskAutoMaintenance, nil, asynq.Queue("default"), asynq.MaxRetry(0))

	_, err := q.client.EnqueueContext(ctx, task)
	return err
}
