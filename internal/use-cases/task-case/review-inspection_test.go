package task_case

import (
	"context"
	"testing"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/bridge"
	task_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/task-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	use_cases "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/use-cases"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func inspection(status entity.ReportStatus) *entity.InspectionEntity {
	return &entity.InspectionEntity{ID: "insp-1", TaskAssignmentID: "assignment-1", InspectedBy: employee.ID, TotalCost: 80, ReportStatus: status}
}

func TestReviewInspection_Approve(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tx := use_cases.NewCommittingTx()

	f.txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	f.repo.On("GetInspectionByID", ctx, tx, "insp-1").Return(inspection(entity.ReportPending), (*app_errors.AppError)(nil))
	f.repo.On("GetAssignmentByID", ctx, tx, "assignment-1").Return(assignment(entity.AssignmentFixed), (*app_errors.AppError)(nil))
	f.repo.On("GetWorkContext", ctx, tx, "task-1").Return(crackContext(entity.TaskAssigned), (*app_errors.AppError)(nil))
	f.repo.On("UpdateInspectionStatus", ctx, tx, "insp-1", entity.ReportPending, entity.ReportApproved).Return(true, (*app_errors.AppError)(nil))
	f.bridge.On("OnTransition", ctx, mock.MatchedBy(func(tr bridge.Transition) bool {
		return tr.From == "Pending" && tr.To == "Approved" && len(tr.RecipientIDs) == 1 && tr.RecipientIDs[0] == employee.ID
	})).Return()

	resp, err := f.service.ReviewInspection(ctx, manager, "insp-1", &task_dto.ReviewInspectionRequest{Decision: "Approve"})

	require.Nil(t, err)
	assert.Equal(t, "Approved", resp.ReportStatus)
	f.bridge.AssertExpectations(t)
}

func TestReviewInspection_AlreadyReviewed(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tx := use_cases.NewRollbackTx()

	f.txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	f.repo.On("GetInspectionByID", ctx, tx, "insp-1").Return(inspection(entity.ReportRejected), (*app_errors.AppError)(nil))

	_, err := f.service.ReviewInspection(ctx, manager, "insp-1", &task_dto.ReviewInspectionRequest{Decision: "Approve"})

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrInvalidTransition, err.Type)
	assert.Equal(t, "Rejected", err.CurrentState)
}

func TestReviewInspection_LostRace(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tx := use_cases.NewRollbackTx()

	f.txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	f.repo.On("GetInspectionByID", ctx, tx, "insp-1").Return(inspection(entity.ReportPending), (*app_errors.AppError)(nil)).Once()
	f.repo.On("GetAssignmentByID", ctx, tx, "assignment-1").Return(assignment(entity.AssignmentFixed), (*app_errors.AppError)(nil))
	f.repo.On("GetWorkContext", ctx, tx, "task-1").Return(crackContext(entity.TaskAssigned), (*app_errors.AppError)(nil))
	f.repo.On("UpdateInspectionStatus", ctx, tx, "insp-1", entity.ReportPending, entity.ReportRejected).Return(false, (*app_errors.AppError)(nil))
	f.repo.On("GetInspectionByID", ctx, tx, "insp-1").Return(inspection(entity.ReportApproved), (*app_errors.AppError)(nil)).Once()

	_, err := f.service.ReviewInspection(ctx, manager, "insp-1", &task_dto.ReviewInspectionRequest{Decision: "Reject"})

	require.NotNil(t, err)
	assert.Equal(t, "Approved", err.CurrentState)
	f.bridge.AssertNotCalled(t, "OnTransition", mock.Anything, mock.Anything)
}

func TestReviewInspection_EmployeeCannotReview(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	tx := use_cases.NewRollbackTx()

	f.txManager.On("Begin", ctx).Return(tx, (*app_errors.AppError)(nil))
	f.repo.On("GetInspectionByID", ctx, tx, "insp-1").Return(inspection(entity.ReportPending), (*app_errors.AppError)(nil))

	_, err := f.service.ReviewInspection(ctx, employee, "insp-1", &task_dto.ReviewInspectionRequest{Decision: "Approve"})

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrForbidden, err.Type)
}
