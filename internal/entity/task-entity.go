package entity

import "time"

type TaskEntity struct {
	ID               string     `json:"id"`
	Description      string     `json:"description"`
	Status           TaskStatus `json:"status"`
	CrackID          *string    `json:"crack_id,omitempty"`
	ScheduleJobID    *string    `json:"schedule_job_id,omitempty"`
	CrackCancelledAt *time.Time `json:"crack_cancelled_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

// WorkContext is a task together with the state of the thing it was created from.
type WorkContext struct {
	Task      TaskEntity         `json:"task"`
	JobStatus *ScheduleJobStatus `json:"job_status,omitempty"`
}

// OriginCancelled reports whether the crack or schedule job behind the task was cancelled.
func (w *WorkContext) OriginCancelled() bool {
	if w.Task.CrackCancelledAt != nil {
		return true
	}
	return w.JobStatus != nil && *w.JobStatus == JobCancel
}

type TaskAssignmentEntity struct {
	ID          string           `json:"id"`
	TaskID      string           `json:"task_id"`
	EmployeeID  string           `json:"employee_id"`
	Description *string          `json:"description,omitempty"`
	Status      AssignmentStatus `json:"status"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   *time.Time       `json:"updated_at,omitempty"`
}

type WorkLogEntity struct {
	ID                 string        `json:"id"`
	TaskID             string        `json:"task_id"`
	TaskAssignmentID   string        `json:"task_assignment_id"`
	Title              string        `json:"title"`
	Description        *string       `json:"description,omitempty"`
	Status             WorkLogStatus `json:"status"`
	DepositConfirmedAt *time.Time    `json:"deposit_confirmed_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          *time.Time    `json:"updated_at,omitempty"`
}

type InspectionEntity struct {
	ID               string           `json:"id"`
	TaskAssignmentID string           `json:"task_assignment_id"`
	InspectedBy      string           `json:"inspected_by"`
	ImageURLs        []string         `json:"image_urls"`
	Description      *string          `json:"description,omitempty"`
	TotalCost        float64          `json:"total_cost"`
	Materials        []RepairMaterial `json:"materials,omitempty"`
	ReportStatus     ReportStatus     `json:"report_status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        *time.Time       `json:"updated_at,omitempty"`
}

type RepairMaterial struct {
	MaterialID string `json:"material_id"`
	Quantity   int    `json:"quantity"`
}

// MaterialDeductionEntity is the exactly-once ledger row for an inspection's materials.
type MaterialDeductionEntity struct {
	InspectionID string           `json:"inspection_id"`
	Status       DeductionStatus  `json:"status"`
	Materials    []RepairMaterial `json:"materials"`
	CreatedAt    time.Time        `json:"created_at"`
	AppliedAt    *time.Time       `json:"applied_at,omitempty"`
}

type EmployeeEntity struct {
	ID    string    `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  ActorRole `json:"role"`
}

// Actor is the authenticated principal performing an operation.
type Actor struct {
	ID   string    `json:"id"`
	Role ActorRole `json:"role"`
}

type ActorRole string

const (
	RoleEmployee ActorRole = "Employee"
	RoleManager  ActorRole = "Manager"
	RoleSystem   ActorRole = "System"
)

func (r ActorRole) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleSystem:
		return true
	}
	return false
}

type TaskStatus string

const (
	TaskPending   TaskStatus = "Pending"
	TaskAssigned  TaskStatus = "Assigned"
	TaskCompleted TaskStatus = "Completed"
	TaskCancelled TaskStatus = "Cancelled"
)

type AssignmentStatus string

const (
	AssignmentPending    AssignmentStatus = "Pending"
	AssignmentInFixing   AssignmentStatus = "InFixing"
	AssignmentFixed      AssignmentStatus = "Fixed"
	AssignmentVerified   AssignmentStatus = "Verified"
	AssignmentUnverified AssignmentStatus = "Unverified"
	AssignmentConfirmed  AssignmentStatus = "Confirmed"
	AssignmentReassigned AssignmentStatus = "Reassigned"
)

// AssignmentStatuses lists every assignment state in workflow order.
var AssignmentStatuses = []AssignmentStatus{
	AssignmentPending,
	AssignmentInFixing,
	AssignmentFixed,
	AssignmentVerified,
	AssignmentUnverified,
	AssignmentConfirmed,
	AssignmentReassigned,
}

func (s AssignmentStatus) IsValid() bool {
	switch s {
	case AssignmentPending, AssignmentInFixing, AssignmentFixed, AssignmentVerified,
		AssignmentUnverified, AssignmentConfirmed, AssignmentReassigned:
		return true
	}
	return false
}

func (s AssignmentStatus) IsTerminal() bool {
	return s == AssignmentConfirmed || s == AssignmentReassigned
}

type WorkLogStatus string

const (
	WorkLogInitInspection         WorkLogStatus = "INIT_INSPECTION"
	WorkLogWaitForDeposit         WorkLogStatus = "WAIT_FOR_DEPOSIT"
	WorkLogExecuteCracks          WorkLogStatus = "EXECUTE_CRACKS"
	WorkLogConfirmNoPendingIssues WorkLogStatus = "CONFIRM_NO_PENDING_ISSUES"
	WorkLogFinalReview            WorkLogStatus = "FINAL_REVIEW"
	WorkLogCancelled              WorkLogStatus = "CANCELLED"
)

// WorkLogStatuses lists every work log state; the first five are the ordered success path.
var WorkLogStatuses = []WorkLogStatus{
	WorkLogInitInspection,
	WorkLogWaitForDeposit,
	WorkLogExecuteCracks,
	WorkLogConfirmNoPendingIssues,
	WorkLogFinalReview,
	WorkLogCancelled,
}

func (s WorkLogStatus) IsValid() bool {
	switch s {
	case WorkLogInitInspection, WorkLogWaitForDeposit, WorkLogExecuteCracks,
		WorkLogConfirmNoPendingIssues, WorkLogFinalReview, WorkLogCancelled:
		return true
	}
	return false
}

func (s WorkLogStatus) IsTerminal() bool {
	return s == WorkLogFinalReview || s == WorkLogCancelled
}

type ReportStatus string

const (
	ReportPending      ReportStatus = "Pending"
	ReportApproved     ReportStatus = "Approved"
	ReportRejected     ReportStatus = "Rejected"
	ReportAutoApproved ReportStatus = "AutoApproved"
	ReportNoPending    ReportStatus = "NoPending"
)

// IsApproved reports whether the inspection unlocks FINAL_REVIEW.
func (s ReportStatus) IsApproved() bool {
	return s == ReportApproved || s == ReportAutoApproved
}

type DeductionStatus string

const (
	DeductionPending DeductionStatus = "Pending"
	DeductionApplied DeductionStatus = "Applied"
)

// EntityKind names the entity a transition event belongs to.
type EntityKind string

const (
	KindSchedule       EntityKind = "Schedule"
	KindScheduleJob    EntityKind = "ScheduleJob"
	KindTask           EntityKind = "Task"
	KindTaskAssignment EntityKind = "TaskAssignment"
	KindWorkLog        EntityKind = "WorkLog"
	KindInspection     EntityKind = "Inspection"
)
