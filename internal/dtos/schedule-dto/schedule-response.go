package schedule_dto

import (
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos"
)

type ScheduleResponse struct {
	ScheduleID        string     `json:"schedule_id"`
	Name              string     `json:"name"`
	CycleID           string     `json:"cycle_id"`
	Status            string     `json:"status"`
	StartDate         dtos.Date  `json:"start_date"`
	EndDate           *dtos.Date `json:"end_date,omitempty"`
	AutoCreateTasks   bool       `json:"auto_create_tasks"`
	BuildingDetailIDs []string   `json:"building_detail_ids"`
	JobsCreated       int        `json:"jobs_created"`
	TasksCreated      int        `json:"tasks_created"`
}

type CancelScheduleResponse struct {
	ScheduleID    string `json:"schedule_id"`
	Status        string `json:"status"`
	CancelledJobs int64  `json:"cancelled_jobs"`
}

type ScheduleJobItem struct {
	JobID            string     `json:"job_id"`
	ScheduleID       *string    `json:"schedule_id,omitempty"`
	BuildingDetailID string     `json:"building_detail_id"`
	RunDate          dtos.Date  `json:"run_date"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

type ScheduleRunResult struct {
	ScheduleID   string `json:"schedule_id"`
	JobsPlanned  int    `json:"jobs_planned"`
	JobsCreated  int    `json:"jobs_created"`
	Duplicates   int    `json:"duplicates"`
	TasksCreated int    `json:"tasks_created"`
	Error        string `json:"error,omitempty"`
}

// RunReport summarises one scheduler run.
type RunReport struct {
	RunID       string              `json:"run_id"`
	StartedAt   time.Time           `json:"started_at"`
	FinishedAt  time.Time           `json:"finished_at"`
	Skipped     bool                `json:"skipped"`
	Schedules   int                 `json:"schedules"`
	JobsCreated int                 `json:"jobs_created"`
	Failed      int                 `json:"failed"`
	Results     []ScheduleRunResult `json:"results"`
}
