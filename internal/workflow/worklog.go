package workflow

import (
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/gofiber/fiber/v2"
)

// workLogNext is the ordered success path. CANCELLED is reachable from any non-terminal state.
var workLogNext = map[entity.WorkLogStatus]entity.WorkLogStatus{
	entity.WorkLogInitInspection:         entity.WorkLogWaitForDeposit,
	entity.WorkLogWaitForDeposit:         entity.WorkLogExecuteCracks,
	entity.WorkLogExecuteCracks:          entity.WorkLogConfirmNoPendingIssues,
	entity.WorkLogConfirmNoPendingIssues: entity.WorkLogFinalReview,
}

// WorkLogFacts are the guard inputs loaded by the caller inside the transition transaction.
type WorkLogFacts struct {
	DepositConfirmed    bool
	PendingInspections  int
	ApprovedInspections int
}

// NextWorkLog returns the successor on the success path, if any.
func NextWorkLog(s entity.WorkLogStatus) (entity.WorkLogStatus, bool) {
	next, ok := workLogNext[s]
	return next, ok
}

// CheckWorkLog validates moving w to the requested state given facts.
func CheckWorkLog(w *entity.WorkLogEntity, to entity.WorkLogStatus, facts WorkLogFacts) *app_errors.AppError {
	if !to.IsValid() {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrValidation, "validation.work_log_status", nil)
	}

	if w.Status.IsTerminal() {
		return app_errors.NewInvalidTransition(w.ID, string(w.Status), string(to), "transition.work_log_terminal")
	}

	if to == entity.WorkLogCancelled {
		return nil
	}

	if next, ok := workLogNext[w.Status]; !ok || next != to {
		return app_errors.NewInvalidTransition(w.ID, string(w.Status), string(to), "transition.work_log_out_of_order")
	}

	switch to {
	case entity.WorkLogExecuteCracks:
		if !facts.DepositConfirmed {
			return app_errors.NewInvalidTransition(w.ID, string(w.Status), string(to), "transition.deposit_missing")
		}
	case entity.WorkLogConfirmNoPendingIssues:
		if facts.PendingInspections > 0 {
			return app_errors.NewInvalidTransition(w.ID, string(w.Status), string(to), "transition.pending_inspections")
		}
	case entity.WorkLogFinalReview:
		if facts.ApprovedInspections == 0 {
			return app_errors.NewInvalidTransition(w.ID, string(w.Status), string(to), "transition.inspection_not_approved")
		}
	}

	return nil
}

// ConsumesMaterials reports whether entering s deducts inspection materials.
func ConsumesMaterials(s entity.WorkLogStatus) bool {
	return s == entity.WorkLogFinalReview
}
