package task_dto

import (
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/workflow"
	"github.com/go-playground/validator/v10"
)

type CreateTaskFromCrackRequest struct {
	CrackID     string `json:"crack_id" validate:"required"`
	Description string `json:"description" validate:"required,min=3"`
}

type CreateTaskForJobRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=3"`
}

type CreateAssignmentRequest struct {
	EmployeeID  string  `json:"employee_id" validate:"required,uuid"`
	Description *string `json:"description,omitempty"`
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3,max=200"`
}

type ChangeAssignmentStatusRequest struct {
	Status string `json:"status" validate:"required,assignmentStatus"`
	// only used when Status is Reassigned; empty keeps the current employee
	EmployeeID  *string `json:"employee_id,omitempty" validate:"omitempty,uuid"`
	Description *string `json:"description,omitempty"`
}

type UpdateWorkLogStatusRequest struct {
	Status string `json:"status" validate:"required,workLogStatus"`
}

type CreateInspectionRequest struct {
	ImageURLs       []string          `json:"image_urls" validate:"omitempty,dive,url"`
	Description     *string           `json:"description,omitempty"`
	TotalCost       float64           `json:"total_cost" validate:"gte=0"`
	Materials       []MaterialRequest `json:"materials,omitempty" validate:"omitempty,dive"`
	NoPendingIssues bool              `json:"no_pending_issues"`
}

type MaterialRequest struct {
	MaterialID string `json:"material_id" validate:"required"`
	Quantity   int    `json:"quantity" validate:"required,min=1"`
}

type ReviewInspectionRequest struct {
	Decision string `json:"decision" validate:"required,reviewDecision"`
}

type ParamTaskID struct {
	ID string `params:"task_id" validate:"required,uuid"`
}

type ParamAssignmentID struct {
	ID string `params:"assignment_id" validate:"required,uuid"`
}

type ParamWorkLogID struct {
	ID string `params:"worklog_id" validate:"required,uuid"`
}

type ParamInspectionID struct {
	ID string `params:"inspection_id" validate:"required,uuid"`
}

type ParamCrackID struct {
	ID string `params:"crack_id" validate:"required"`
}

func IsValidAssignmentStatus(fl validator.FieldLevel) bool {
	return entity.AssignmentStatus(fl.Field().String()).IsValid()
}

func IsValidWorkLogStatus(fl validator.FieldLevel) bool {
	return entity.WorkLogStatus(fl.Field().String()).IsValid()
}

func IsValidReviewDecision(fl validator.FieldLevel) bool {
	switch workflow.ReviewDecision(fl.Field().String()) {
	case workflow.ReviewApprove, workflow.ReviewReject:
		return true
	default:
		return false
	}
}
