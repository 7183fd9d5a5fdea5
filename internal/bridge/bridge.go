package bridge

import (
	"context"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
)

// Transition is a committed state change of a work item.
type Transition struct {
	Kind          entity.EntityKind
	EntityID      string
	TaskID        string
	CrackID       *string
	ScheduleJobID *string
	From          string
	To            string
	ActorID       string
	RecipientIDs  []string
	OccurredAt    time.Time
}

// Bridge carries committed transitions to the outside world. It never fails
// the caller: delivery problems are logged and retried by the queue.
type Bridge interface {
	OnTransition(ctx context.Context, t Transition)
	SendMaintenanceScheduleEmail(ctx context.Context, scheduleJobID string, recipientIDs []string)
	RequestMaterialDeduction(ctx context.Context, inspectionID string)
}

// crackStatuses maps assignment states to what the crack service shows.
var crackStatuses = map[entity.AssignmentStatus]string{
	entity.AssignmentInFixing:   "InFixing",
	entity.AssignmentFixed:      "WaitingConfirm",
	entity.AssignmentUnverified: "Reviewing",
	entity.AssignmentConfirmed:  "Completed",
}

// CrackStatusFor returns the crack status to publish for t, if any.
func CrackStatusFor(t Transition) (string, bool) {
	if t.CrackID == nil || t.Kind != entity.KindTaskAssignment {
		return "", false
	}
	status, ok := crackStatuses[entity.AssignmentStatus(t.To)]
	return status, ok
}
