package workflow

import (
	"testing"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	employee = entity.Actor{ID: "employee-1", Role: entity.RoleEmployee}
	manager  = entity.Actor{ID: "manager-1", Role: entity.RoleManager}
)

func assignment(status entity.AssignmentStatus) *entity.TaskAssignmentEntity {
	return &entity.TaskAssignmentEntity{ID: "assignment-1", TaskID: "task-1", EmployeeID: employee.ID, Status: status}
}

func TestAssignmentTable_CoversEveryState(t *testing.T) {
	for _, s := range entity.AssignmentStatuses {
		_, ok := assignmentTransitions[s]
		assert.True(t, ok, "missing row for %s", s)
		if s.IsTerminal() {
			assert.Empty(t, AssignmentTargets(s), "terminal %s must have no exits", s)
		} else {
			assert.Contains(t, AssignmentTargets(s), entity.AssignmentReassigned, "%s must allow manual reassignment", s)
		}
	}
}

func TestCheckAssignment_HappyPath(t *testing.T) {
	steps := []struct {
		from  entity.AssignmentStatus
		to    entity.AssignmentStatus
		actor entity.Actor
	}{
		{entity.AssignmentPending, entity.AssignmentInFixing, employee},
		{entity.AssignmentInFixing, entity.AssignmentFixed, employee},
		{entity.AssignmentFixed, entity.AssignmentVerified, manager},
		{entity.AssignmentVerified, entity.AssignmentConfirmed, manager},
	}
	for _, step := range steps {
		assert.Nil(t, CheckAssignment(assignment(step.from), step.to, step.actor), "%s -> %s", step.from, step.to)
	}
}

func TestCheckAssignment_RejectThenReassign(t *testing.T) {
	assert.Nil(t, CheckAssignment(assignment(entity.AssignmentFixed), entity.AssignmentUnverified, manager))
	assert.Nil(t, CheckAssignment(assignment(entity.AssignmentUnverified), entity.AssignmentReassigned, manager))
	assert.True(t, SpawnsAssignment(entity.AssignmentReassigned))
}

func TestCheckAssignment_InvalidTransition(t *testing.T) {
	err := CheckAssignment(assignment(entity.AssignmentPending), entity.AssignmentConfirmed, manager)

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrInvalidTransition, err.Type)
	assert.Equal(t, "assignment-1", err.EntityID)
	assert.Equal(t, string(entity.AssignmentPending), err.CurrentState)
}

func TestCheckAssignment_TerminalIsFinal(t *testing.T) {
	for _, s := range []entity.AssignmentStatus{entity.AssignmentConfirmed, entity.AssignmentReassigned} {
		err := CheckAssignment(assignment(s), entity.AssignmentReassigned, manager)
		require.NotNil(t, err)
		assert.Equal(t, app_errors.ErrInvalidTransition, err.Type)
	}
}

func TestCheckAssignment_ActorGuards(t *testing.T) {
	err := CheckAssignment(assignment(entity.AssignmentFixed), entity.AssignmentVerified, employee)
	require.NotNil(t, err)
	assert.Equal(t, "forbidden.actor_not_allowed", err.MessageKey)

	other := entity.Actor{ID: "employee-2", Role: entity.RoleEmployee}
	err = CheckAssignment(assignment(entity.AssignmentPending), entity.AssignmentInFixing, other)
	require.NotNil(t, err)
	assert.Equal(t, "forbidden.not_assignee", err.MessageKey)

	err = CheckAssignment(assignment(entity.AssignmentPending), entity.AssignmentInFixing, manager)
	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrForbidden, err.Type)
}

func TestCheckAssignment_UnknownStatus(t *testing.T) {
	err := CheckAssignment(assignment(entity.AssignmentPending), entity.AssignmentStatus("Done"), manager)

	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrValidation, err.Type)
}

var satisfied = WorkLogFacts{DepositConfirmed: true, PendingInspections: 0, ApprovedInspections: 1}

func TestCheckWorkLog_CanonicalPath(t *testing.T) {
	w := &entity.WorkLogEntity{ID: "wl-1", Status: entity.WorkLogInitInspection}
	path := entity.WorkLogStatuses[1:5]

	for _, to := range path {
		require.Nil(t, CheckWorkLog(w, to, satisfied), "%s -> %s", w.Status, to)
		w.Status = to
	}
	assert.Equal(t, entity.WorkLogFinalReview, w.Status)
	assert.True(t, ConsumesMaterials(w.Status))
}

func TestCheckWorkLog_SkippingAnyStageFails(t *testing.T) {
	path := entity.WorkLogStatuses[:5]
	for i, from := range path {
		for j, to := range path {
			if j == i+1 {
				continue
			}
			w := &entity.WorkLogEntity{ID: "wl-1", Status: from}
			err := CheckWorkLog(w, to, satisfied)
			require.NotNil(t, err, "%s -> %s must fail", from, to)
			assert.Equal(t, app_errors.ErrInvalidTransition, err.Type)
			assert.Equal(t, string(from), err.CurrentState)
		}
	}
}

func TestCheckWorkLog_CancelFromNonTerminal(t *testing.T) {
	for _, from := range entity.WorkLogStatuses[:4] {
		w := &entity.WorkLogEntity{ID: "wl-1", Status: from}
		assert.Nil(t, CheckWorkLog(w, entity.WorkLogCancelled, WorkLogFacts{}), "cancel from %s", from)
	}

	for _, from := range []entity.WorkLogStatus{entity.WorkLogFinalReview, entity.WorkLogCancelled} {
		w := &entity.WorkLogEntity{ID: "wl-1", Status: from}
		err := CheckWorkLog(w, entity.WorkLogCancelled, WorkLogFacts{})
		require.NotNil(t, err)
		assert.Equal(t, "transition.work_log_terminal", err.MessageKey)
	}
}

func TestCheckWorkLog_Guards(t *testing.T) {
	cases := []struct {
		name  string
		from  entity.WorkLogStatus
		to    entity.WorkLogStatus
		facts WorkLogFacts
		key   string
	}{
		{"deposit missing", entity.WorkLogWaitForDeposit, entity.WorkLogExecuteCracks, WorkLogFacts{ApprovedInspections: 1}, "transition.deposit_missing"},
		{"pending inspections", entity.WorkLogExecuteCracks, entity.WorkLogConfirmNoPendingIssues, WorkLogFacts{DepositConfirmed: true, PendingInspections: 2, ApprovedInspections: 1}, "transition.pending_inspections"},
		{"no approved inspection", entity.WorkLogConfirmNoPendingIssues, entity.WorkLogFinalReview, WorkLogFacts{DepositConfirmed: true}, "transition.inspection_not_approved"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckWorkLog(&entity.WorkLogEntity{ID: "wl-1", Status: tc.from}, tc.to, tc.facts)
			require.NotNil(t, err)
			assert.Equal(t, app_errors.ErrInvalidTransition, err.Type)
			assert.Equal(t, tc.key, err.MessageKey)
		})
	}
}

func TestCheckScheduleJob(t *testing.T) {
	job := &entity.ScheduleJobEntity{ID: "job-1", Status: entity.JobPending}
	assert.Nil(t, CheckScheduleJob(job, entity.JobInProgress))
	assert.Nil(t, CheckScheduleJob(job, entity.JobCancel))
	assert.NotNil(t, CheckScheduleJob(job, entity.JobCompleted))

	completed := &entity.ScheduleJobEntity{ID: "job-2", Status: entity.JobCompleted}
	err := CheckScheduleJob(completed, entity.JobCancel)
	require.NotNil(t, err)
	assert.Equal(t, app_errors.ErrInvalidTransition, err.Type)
}

func TestCheckReview(t *testing.T) {
	pending := &entity.InspectionEntity{ID: "insp-1", ReportStatus: entity.ReportPending}

	to, err := CheckReview(pending, ReviewApprove, manager)
	assert.Nil(t, err)
	assert.Equal(t, entity.ReportApproved, to)

	to, err = CheckReview(pending, ReviewReject, manager)
	assert.Nil(t, err)
	assert.Equal(t, entity.ReportRejected, to)

	_, err = CheckReview(pending, ReviewApprove, employee)
	assert.Equal(t, app_errors.ErrForbidden, err.Type)

	_, err = CheckReview(&entity.InspectionEntity{ID: "insp-2", ReportStatus: entity.ReportAutoApproved}, ReviewReject, manager)
	assert.Equal(t, app_errors.ErrInvalidTransition, err.Type)
}

func TestInitialReportStatus(t *testing.T) {
	assert.Equal(t, entity.ReportNoPending, InitialReportStatus(true, 100, nil))
	assert.Equal(t, entity.ReportAutoApproved, InitialReportStatus(false, 0, nil))
	assert.Equal(t, entity.ReportPending, InitialReportStatus(false, 0, []entity.RepairMaterial{{MaterialID: "m-1", Quantity: 2}}))
	assert.Equal(t, entity.ReportPending, InitialReportStatus(false, 12.5, nil))
}
