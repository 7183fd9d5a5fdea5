package task_dto

import "time"

type TaskResponse struct {
	TaskID        string    `json:"task_id"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	CrackID       *string   `json:"crack_id,omitempty"`
	ScheduleJobID *string   `json:"schedule_job_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

type AssignmentResponse struct {
	AssignmentID string  `json:"assignment_id"`
	TaskID       string  `json:"task_id"`
	EmployeeID   string  `json:"employee_id"`
	Status       string  `json:"status"`
	WorkLogID    *string `json:"work_log_id,omitempty"`
}

// AssignmentTransitionResponse carries the moved assignment and, after a
// reassignment, the assignment that replaced it.
type AssignmentTransitionResponse struct {
	AssignmentID   string              `json:"assignment_id"`
	From           string              `json:"from"`
	Status         string              `json:"status"`
	NextAssignment *AssignmentResponse `json:"next_assignment,omitempty"`
}

type WorkLogResponse struct {
	WorkLogID          string     `json:"work_log_id"`
	TaskID             string     `json:"task_id"`
	From               string     `json:"from,omitempty"`
	Status             string     `json:"status"`
	DepositConfirmedAt *time.Time `json:"deposit_confirmed_at,omitempty"`
	DeductionsQueued   int        `json:"deductions_queued,omitempty"`
}

type InspectionResponse struct {
	InspectionID     string  `json:"inspection_id"`
	TaskAssignmentID string  `json:"task_assignment_id"`
	ReportStatus     string  `json:"report_status"`
	TotalCost        float64 `json:"total_cost"`
}

type CrackCancelledResponse struct {
	CrackID       string `json:"crack_id"`
	TasksAffected int64  `json:"tasks_affected"`
}
