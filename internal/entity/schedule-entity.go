package entity

import "time"

type ScheduleEntity struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	Description       *string        `json:"description,omitempty"`
	CycleID           string         `json:"cycle_id"`
	StartDate         time.Time      `json:"start_date"`
	EndDate           *time.Time     `json:"end_date,omitempty"`
	Status            ScheduleStatus `json:"status"`
	AutoCreateTasks   bool           `json:"auto_create_tasks"`
	SpecificDates     []time.Time    `json:"specific_dates,omitempty"`
	BuildingDetailIDs []string       `json:"building_detail_ids"`
	CreatedBy         string         `json:"created_by"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         *time.Time     `json:"updated_at,omitempty"`
}

// ActiveSchedule is a schedule joined with the recurrence fields of its cycle.
type ActiveSchedule struct {
	ScheduleEntity
	Frequency  Frequency `json:"frequency"`
	DeviceType string    `json:"device_type"`
}

type ScheduleJobEntity struct {
	ID               string            `json:"id"`
	ScheduleID       *string           `json:"schedule_id,omitempty"`
	BuildingDetailID string            `json:"building_detail_id"`
	RunDate          time.Time         `json:"run_date"`
	Status           ScheduleJobStatus `json:"status"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        *time.Time        `json:"updated_at,omitempty"`
}

// ScheduleJobRequest is one planned job that does not exist yet.
type ScheduleJobRequest struct {
	ScheduleID       string            `json:"schedule_id"`
	BuildingDetailID string            `json:"building_detail_id"`
	RunDate          time.Time         `json:"run_date"`
	Status           ScheduleJobStatus `json:"status"`
	CreateTask       bool              `json:"create_task"`
}

// JobKey identifies the dedup slot of a schedule job.
type JobKey struct {
	ScheduleID       string
	BuildingDetailID string
	RunDate          string
}

func NewJobKey(scheduleID, buildingDetailID string, runDate time.Time) JobKey {
	return JobKey{
		ScheduleID:       scheduleID,
		BuildingDetailID: buildingDetailID,
		RunDate:          runDate.UTC().Format(time.DateOnly),
	}
}

type ScheduleStatus string

const (
	ScheduleInProgress ScheduleStatus = "InProgress"
	ScheduleCompleted  ScheduleStatus = "Completed"
	ScheduleCancelled  ScheduleStatus = "Cancelled"
)

func (s ScheduleStatus) IsValid() bool {
	switch s {
	case ScheduleInProgress, ScheduleCompleted, ScheduleCancelled:
		return true
	}
	return false
}

type ScheduleJobStatus string

const (
	JobPending    ScheduleJobStatus = "Pending"
	JobInProgress ScheduleJobStatus = "InProgress"
	JobCompleted  ScheduleJobStatus = "Completed"
	JobCancel     ScheduleJobStatus = "Cancel"
)

func (s ScheduleJobStatus) IsValid() bool {
	switch s {
	case JobPending, JobInProgress, JobCompleted, JobCancel:
		return true
	}
	return false
}

func (s ScheduleJobStatus) IsTerminal() bool {
	return s == JobCompleted || s == JobCancel
}
