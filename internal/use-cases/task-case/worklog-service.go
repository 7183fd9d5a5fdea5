package task_case

import (
	"context"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/tx"
	task_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/task-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/workflow"
	"github.com/rs/zerolog/log"
)

// UpdateWorkLogStatus advances a work log one stage along its path, or
// cancels it. Entering FINAL_REVIEW claims the material deduction of every
// approved inspection; only fresh claims are handed to the bridge.
func (s *TaskService) UpdateWorkLogStatus(ctx context.Context, actor entity.Actor, workLogID string, req *task_dto.UpdateWorkLogStatusRequest) (*task_dto.WorkLogResponse, *app_errors.AppError) {
	to := entity.WorkLogStatus(req.Status)

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer tx.RollbackUnlessCommitted(ctx, t, &committed)

	w, err := s.repo.GetWorkLogByID(ctx, t, workLogID)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.GetAssignmentByID(ctx, t, w.TaskAssignmentID)
	if err != nil {
		return nil, err
	}
	if !canWorkOn(actor, a) {
		return nil, forbidden()
	}
	if to != entity.WorkLogCancelled && a.Status.IsTerminal() {
		return nil, app_errors.NewInvalidTransition(a.ID, string(a.Status), string(to), "transition.assignment_closed")
	}

	wc, err := s.repo.GetWorkContext(ctx, t, w.TaskID)
	if err != nil {
		return nil, err
	}
	// a stale work log may still be closed
	if to != entity.WorkLogCancelled {
		if err := staleOrigin(wc); err != nil {
			return nil, err
		}
	}

	pending, approved, err := s.repo.CountInspections(ctx, t, w.TaskID, w.TaskAssignmentID)
	if err != nil {
		return nil, err
	}
	facts := workflow.WorkLogFacts{
		DepositConfirmed:    w.DepositConfirmedAt != nil,
		PendingInspections:  pending,
		ApprovedInspections: approved,
	}

	if err := workflow.CheckWorkLog(w, to, facts); err != nil {
		return nil, err
	}

	moved, err := s.repo.UpdateWorkLogStatus(ctx, t, w.ID, w.Status, to)
	if err != nil {
		return nil, err
	}
	if !moved {
		current, err := s.repo.GetWorkLogByID(ctx, t, w.ID)
		if err != nil {
			return nil, err
		}
		return nil, app_errors.NewInvalidTransition(w.ID, string(current.Status), string(to), "transition.concurrent_update")
	}

	var claimed []string
	if workflow.ConsumesMaterials(to) {
		inspections, err := s.repo.ListApprovedInspections(ctx, t, w.TaskAssignmentID)
		if err != nil {
			return nil, err
		}
		for _, i := range inspections {
			if len(i.Materials) == 0 {
				continue
			}
			fresh, err := s.repo.ClaimMaterialDeduction(ctx, t, i.ID, i.Materials)
			if err != nil {
				return nil, err
			}
			if fresh {
				claimed = append(claimed, i.ID)
			}
		}
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	for _, inspectionID := range claimed {
		s.bridge.RequestMaterialDeduction(ctx, inspectionID)
	}
	s.bridge.OnTransition(ctx, s.event(entity.KindWorkLog, w.ID, wc, string(w.Status), string(to), actor, a.EmployeeID))

	log.Info().Str("work_log_id", w.ID).Str("from", string(w.Status)).Str("to", string(to)).Int("deductions", len(claimed)).Msg("work log status changed")
	return &task_dto.WorkLogResponse{
		WorkLogID:          w.ID,
		TaskID:             w.TaskID,
		From:               string(w.Status),
		Status:             string(to),
		DepositConfirmedAt: w.DepositConfirmedAt,
		DeductionsQueued:   len(claimed),
	}, nil
}

// ConfirmDeposit records the deposit payment of a work log. Confirming twice is a no-op.
func (s *TaskService) ConfirmDeposit(ctx context.Context, actor entity.Actor, workLogID string) (*task_dto.WorkLogResponse, *app_errors.AppError) {
	if !isManager(actor) {
		return nil, forbidden()
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer tx.RollbackUnlessCommitted(ctx, t, &committed)

	w, err := s.repo.GetWorkLogByID(ctx, t, workLogID)
	if err != nil {
		return nil, err
	}
	if w.DepositConfirmedAt != nil {
		return toWorkLogResponse(w), nil
	}
	if w.Status.IsTerminal() {
		return nil, app_errors.NewInvalidTransition(w.ID, string(w.Status), string(w.Status), "transition.work_log_terminal")
	}

	at := s.now().UTC()
	confirmed, err := s.repo.ConfirmDeposit(ctx, t, w.ID, at)
	if err != nil {
		return nil, err
	}
	if !confirmed {
		current, err := s.repo.GetWorkLogByID(ctx, t, w.ID)
		if err != nil {
			return nil, err
		}
		if current.DepositConfirmedAt != nil {
			return toWorkLogResponse(current), nil
		}
		return nil, app_errors.NewInvalidTransition(w.ID, string(current.Status), string(current.Status), "transition.concurrent_update")
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	w.DepositConfirmedAt = &at
	return toWorkLogResponse(w), nil
}

// CreateInspection files an inspection report on an open assignment.
func (s *TaskService) CreateInspection(ctx context.Context, actor entity.Actor, assignmentID string, req *task_dto.CreateInspectionRequest) (*task_dto.InspectionResponse, *app_errors.AppError) {
	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer tx.RollbackUnlessCommitted(ctx, t, &committed)

	a, err := s.repo.GetAssignmentByID(ctx, t, assignmentID)
	if err != nil {
		return nil, err
	}
	if !canWorkOn(actor, a) {
		return nil, forbidden()
	}
	if a.Status.IsTerminal() {
		return nil, app_errors.NewInvalidTransition(a.ID, string(a.Status), string(a.Status), "transition.assignment_closed")
	}

	wc, err := s.liveContext(ctx, t, a.TaskID)
	if err != nil {
		return nil, err
	}

	materials := make([]entity.RepairMaterial, 0, len(req.Materials))
	for _, m := range req.Materials {
		materials = append(materials, entity.RepairMaterial{MaterialID: m.MaterialID, Quantity: m.Quantity})
	}

	id, err := newID()
	if err != nil {
		return nil, err
	}
	inspection := &entity.InspectionEntity{
		ID:               id,
		TaskAssignmentID: a.ID,
		InspectedBy:      actor.ID,
		ImageURLs:        req.ImageURLs,
		Description:      req.Description,
		TotalCost:        req.TotalCost,
		Materials:        materials,
		ReportStatus:     workflow.InitialReportStatus(req.NoPendingIssues, req.TotalCost, materials),
		CreatedAt:        s.now().UTC(),
	}
	if err := s.repo.InsertInspection(ctx, t, inspection); err != nil {
		return nil, err
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	// pending reports go to the managers
	var recipients []string
	if inspection.ReportStatus != entity.ReportPending {
		recipients = []string{a.EmployeeID}
	}
	s.bridge.OnTransition(ctx, s.event(entity.KindInspection, inspection.ID, wc, "", string(inspection.ReportStatus), actor, recipients...))

	return toInspectionResponse(inspection), nil
}

// ReviewInspection approves or rejects a pending inspection.
func (s *TaskService) ReviewInspection(ctx context.Context, actor entity.Actor, inspectionID string, req *task_dto.ReviewInspectionRequest) (*task_dto.InspectionResponse, *app_errors.AppError) {
	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer tx.RollbackUnlessCommitted(ctx, t, &committed)

	inspection, err := s.repo.GetInspectionByID(ctx, t, inspectionID)
	if err != nil {
		return nil, err
	}

	to, err := workflow.CheckReview(inspection, workflow.ReviewDecision(req.Decision), actor)
	if err != nil {
		return nil, err
	}

	a, err := s.repo.GetAssignmentByID(ctx, t, inspection.TaskAssignmentID)
	if err != nil {
		return nil, err
	}
	wc, err := s.liveContext(ctx, t, a.TaskID)
	if err != nil {
		return nil, err
	}

	moved, err := s.repo.UpdateInspectionStatus(ctx, t, inspection.ID, inspection.ReportStatus, to)
	if err != nil {
		return nil, err
	}
	if !moved {
		current, err := s.repo.GetInspectionByID(ctx, t, inspection.ID)
		if err != nil {
			return nil, err
		}
		return nil, app_errors.NewInvalidTransition(inspection.ID, string(current.ReportStatus), string(to), "transition.concurrent_update")
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	from := inspection.ReportStatus
	inspection.ReportStatus = to
	s.bridge.OnTransition(ctx, s.event(entity.KindInspection, inspection.ID, wc, string(from), string(to), actor, inspection.InspectedBy))

	return toInspectionResponse(inspection), nil
}

func toWorkLogResponse(w *entity.WorkLogEntity) *task_dto.WorkLogResponse {
	return &task_dto.WorkLogResponse{
		WorkLogID:          w.ID,
		TaskID:             w.TaskID,
		Status:             string(w.Status),
		DepositConfirmedAt: w.DepositConfirmedAt,
	}
}

func toInspectionResponse(i *entity.InspectionEntity) *task_dto.InspectionResponse {
	return &task_dto.InspectionResponse{
		InspectionID:     i.ID,
		TaskAssignmentID: i.TaskAssignmentID,
		ReportStatus:     string(i.ReportStatus),
		TotalCost:        i.TotalCost,
	}
}
