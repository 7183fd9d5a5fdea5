package worker_task

import "time"

const TaskAutoMaintenance = "default:auto_maintenance"

const TaskMaterialDeductionSweep = "low:material_deduction_sweep"

const TaskTransitionNotify = "email:transition_notify"

const TaskCrackStatusUpdate = "default:crack_status_update"

const TaskMaterialDeduct = "default:material_deduct"

const TaskScheduleJobEmail = "email:schedule_job_email"

// TransitionNotifyPayload tells the involved people that a work item moved.
type TransitionNotifyPayload struct {
	Kind         string    `json:"kind"`
	EntityID     string    `json:"entity_id"`
	TaskID       string    `json:"task_id"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	ActorID      string    `json:"actor_id"`
	RecipientIDs []string  `json:"recipient_ids"`
	OccurredAt   time.Time `json:"occurred_at"`
}

type CrackStatusUpdatePayload struct {
	CrackID string `json:"crack_id"`
	TaskID  string `json:"task_id"`
	Status  string `json:"status"`
}

type MaterialDeductPayload struct {
	InspectionID string `json:"inspection_id"`
}

type ScheduleJobEmailPayload struct {
	ScheduleJobID string   `json:"schedule_job_id"`
	RecipientIDs  []string `json:"recipient_ids"`
}

// MaterialDeductTaskID dedups deduction tasks per inspection inside asynq.
func MaterialDeductTaskID(inspectionID string) string {
	return "material-deduct:" + inspectionID
}
