// Package workflow holds the transition tables and guards of the repair
// workflow. It is pure: callers load the facts, apply the returned verdict
// and persist the result with a conditional update.
package workflow

import (
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/gofiber/fiber/v2"
)

// assignmentTransitions maps from -> to -> role allowed to perform it.
var assignmentTransitions = map[entity.AssignmentStatus]map[entity.AssignmentStatus]entity.ActorRole{
	entity.AssignmentPending: {
		entity.AssignmentInFixing:   entity.RoleEmployee,
		entity.AssignmentReassigned: entity.RoleManager,
	},
	entity.AssignmentInFixing: {
		entity.AssignmentFixed:      entity.RoleEmployee,
		entity.AssignmentReassigned: entity.RoleManager,
	},
	entity.AssignmentFixed: {
		entity.AssignmentVerified:   entity.RoleManager,
		entity.AssignmentUnverified: entity.RoleManager,
		entity.AssignmentReassigned: entity.RoleManager,
	},
	entity.AssignmentVerified: {
		entity.AssignmentConfirmed:  entity.RoleManager,
		entity.AssignmentReassigned: entity.RoleManager,
	},
	entity.AssignmentUnverified: {
		entity.AssignmentReassigned: entity.RoleManager,
	},
	entity.AssignmentConfirmed:  {},
	entity.AssignmentReassigned: {},
}

// AssignmentTargets returns the states reachable from s in one step.
func AssignmentTargets(s entity.AssignmentStatus) []entity.AssignmentStatus {
	var out []entity.AssignmentStatus
	for _, to := range entity.AssignmentStatuses {
		if _, ok := assignmentTransitions[s][to]; ok {
			out = append(out, to)
		}
	}
	return out
}

// CheckAssignment validates moving a to the requested state on behalf of actor.
func CheckAssignment(a *entity.TaskAssignmentEntity, to entity.AssignmentStatus, actor entity.Actor) *app_errors.AppError {
	if !to.IsValid() {
		return app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrValidation, "validation.assignment_status", nil)
	}

	role, ok := assignmentTransitions[a.Status][to]
	if !ok {
		return app_errors.NewInvalidTransition(a.ID, string(a.Status), string(to), "transition.assignment_invalid")
	}

	if actor.Role != role {
		return app_errors.NewAppError(fiber.StatusForbidden, app_errors.ErrForbidden, "forbidden.actor_not_allowed", nil)
	}

	if role == entity.RoleEmployee && actor.ID != a.EmployeeID {
		return app_errors.NewAppError(fiber.StatusForbidden, app_errors.ErrForbidden, "forbidden.not_assignee", nil)
	}

	return nil
}

// SpawnsAssignment reports whether entering s creates a follow-up assignment for the task.
func SpawnsAssignment(s entity.AssignmentStatus) bool {
	return s == entity.AssignmentReassigned
}
