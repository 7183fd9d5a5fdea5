package workflow

import (
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/gofiber/fiber/v2"
)

var jobTransitions = map[entity.ScheduleJobStatus][]entity.ScheduleJobStatus{
	entity.JobPending:    {entity.JobInProgress, entity.JobCancel},
	entity.JobInProgress: {entity.JobCompleted, entity.JobCancel},
}

// CheckScheduleJob validates a schedule job status change. Completed jobs are immutable.
func CheckScheduleJob(job *entity.ScheduleJobEntity, to entity.ScheduleJobStatus) *app_errors.AppError {
	if !to.IsValid() {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrValidation, "validation.schedule_job_status", nil)
	}
	for _, allowed := range jobTransitions[job.Status] {
		if allowed == to {
			return nil
		}
	}
	return app_errors.NewInvalidTransition(job.ID, string(job.Status), string(to), "transition.schedule_job_invalid")
}

// ReviewDecision is a manager's verdict on a pending inspection.
type ReviewDecision string

const (
	ReviewApprove ReviewDecision = "Approve"
	ReviewReject  ReviewDecision = "Reject"
)

// CheckReview validates a review of inspection i and returns the resulting report status.
func CheckReview(i *entity.InspectionEntity, decision ReviewDecision, actor entity.Actor) (entity.ReportStatus, *app_errors.AppError) {
	if actor.Role != entity.RoleManager {
		return "", app_errors.NewAppError(fiber.StatusForbidden, app_errors.ErrForbidden, "forbidden.actor_not_allowed", nil)
	}

	var to entity.ReportStatus
	switch decision {
	case ReviewApprove:
		to = entity.ReportApproved
	case ReviewReject:
		to = entity.ReportRejected
	default:
		return "", app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrValidation, "validation.review_decision", nil)
	}

	if i.ReportStatus != entity.ReportPending {
		return "", app_errors.NewInvalidTransition(i.ID, string(i.ReportStatus), string(to), "transition.inspection_reviewed")
	}
	return to, nil
}

// InitialReportStatus decides the report status of a new inspection.
// A report of no pending issues is NoPending; a report without cost or
// material is approved automatically; everything else waits for review.
func InitialReportStatus(noPendingIssues bool, totalCost float64, materials []entity.RepairMaterial) entity.ReportStatus {
	switch {
	case noPendingIssues:
		return entity.ReportNoPending
	case totalCost == 0 && len(materials) == 0:
		return entity.ReportAutoApproved
	default:
		return entity.ReportPending
	}
}
