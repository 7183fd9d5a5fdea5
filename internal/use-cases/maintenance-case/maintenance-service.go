package maintenance_case

import (
	"context"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/tx"
	maintenance_dto "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos/maintenance-dto"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	maintenance_repo "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/repo/maintenance-repo"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

type MaintenanceService struct {
	repo      maintenance_repo.MaintenanceRepoContract
	txManager tx.TxManager
	now       func() time.Time
}

func NewMaintenanceService(db *pgxpool.Pool) MaintenanceServiceContract {
	return &MaintenanceService{
		repo:      maintenance_repo.NewMaintenanceRepo(db),
		txManager: tx.NewPgxTxManager(db),
		now:       time.Now,
	}
}

func (s *MaintenanceService) CreateCycle(ctx context.Context, actor entity.Actor, req *maintenance_dto.CreateCycleRequest) (*maintenance_dto.CycleResponse, *app_errors.AppError) {
	// Only managers maintain the cycle catalogue
	if actor.Role != entity.RoleManager {
		return nil, app_errors.NewAppError(fiber.StatusForbidden, app_errors.ErrForbidden, "forbidden.actor_not_allowed", nil)
	}

	id, idErr := uuid.NewV7()
	if idErr != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", idErr)
	}

	cycle := &entity.MaintenanceCycleEntity{
		ID:         id.String(),
		DeviceType: req.DeviceType,
		Frequency:  entity.Frequency(req.Frequency),
		Basis:      entity.CycleBasis(req.Basis),
		CreatedBy:  actor.ID,
		CreatedAt:  s.now().UTC(),
	}

	if err := s.repo.InsertCycle(ctx, nil, cycle); err != nil {
		return nil, err
	}

	return toCycleResponse(cycle.ID, cycle, nil), nil
}

// UpdateCycle appends the previous values to the history before changing the
// cycle. A cycle already used by schedules keeps its recurrence: a change of
// frequency or basis creates a new cycle and the old one points to it.
func (s *MaintenanceService) UpdateCycle(ctx context.Context, actor entity.Actor, cycleID string, req *maintenance_dto.UpdateCycleRequest) (*maintenance_dto.CycleResponse, *app_errors.AppError) {
	if actor.Role != entity.RoleManager {
		return nil, app_errors.NewAppError(fiber.StatusForbidden, app_errors.ErrForbidden, "forbidden.actor_not_allowed", nil)
	}

	t, err := s.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	committed := false
	defer tx.RollbackUnlessCommitted(ctx, t, &committed)

	// Lock current cycle
	current, err := s.repo.LockCycle(ctx, t, cycleID)
	if err != nil {
		return nil, err
	}

	next := *current
	if req.DeviceType != nil {
		next.DeviceType = *req.DeviceType
	}
	if req.Frequency != nil {
		next.Frequency = entity.Frequency(*req.Frequency)
	}
	if req.Basis != nil {
		next.Basis = entity.CycleBasis(*req.Basis)
	}

	// Nothing changed, nothing to record
	if next.DeviceType == current.DeviceType && next.Frequency == current.Frequency && next.Basis == current.Basis {
		return toCycleResponse(current.ID, current, nil), nil
	}

	now := s.now().UTC()
	historyID, idErr := uuid.NewV7()
	if idErr != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", idErr)
	}
	if err := s.repo.InsertCycleHistory(ctx, t, &entity.MaintenanceCycleHistoryEntity{
		ID:         historyID.String(),
		CycleID:    current.ID,
		DeviceType: current.DeviceType,
		Frequency:  current.Frequency,
		Basis:      current.Basis,
		Reason:     req.Reason,
		ChangedBy:  actor.ID,
		ChangedAt:  now,
	}); err != nil {
		return nil, err
	}

	recurrenceChanged := next.Frequency != current.Frequency || next.Basis != current.Basis
	referenced := false
	if recurrenceChanged {
		if referenced, err = s.repo.IsCycleReferenced(ctx, t, current.ID); err != nil {
			return nil, err
		}
	}

	var supersededBy *string
	if referenced {
		newID, idErr := uuid.NewV7()
		if idErr != nil {
			return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", idErr)
		}
		next.ID = newID.String()
		next.CreatedBy = actor.ID
		next.CreatedAt = now
		next.UpdatedAt = nil
		if err := s.repo.InsertCycle(ctx, t, &next); err != nil {
			return nil, err
		}
		supersededBy = &next.ID
	} else {
		if err := s.repo.UpdateCycle(ctx, t, &next); err != nil {
			return nil, err
		}
	}

	if err := t.Commit(ctx); err != nil {
		return nil, err
	}
	committed = true

	log.Info().Str("cycle_id", current.ID).Bool("superseded", supersededBy != nil).Msg("maintenance cycle updated")
	return toCycleResponse(current.ID, &next, supersededBy), nil
}

func (s *MaintenanceService) ListCycleHistory(ctx context.Context, cycleID string) ([]maintenance_dto.CycleHistoryItem, *app_errors.AppError) {
	// Check if cycle exists
	if _, err := s.repo.GetCycleByID(ctx, nil, cycleID); err != nil {
		return nil, err
	}

	rows, err := s.repo.ListCycleHistory(ctx, cycleID)
	if err != nil {
		return nil, err
	}

	items := make([]maintenance_dto.CycleHistoryItem, 0, len(rows))
	for _, h := range rows {
		items = append(items, maintenance_dto.CycleHistoryItem{
			HistoryID:  h.ID,
			DeviceType: h.DeviceType,
			Frequency:  string(h.Frequency),
			Basis:      string(h.Basis),
			Reason:     h.Reason,
			ChangedBy:  h.ChangedBy,
			ChangedAt:  h.ChangedAt,
		})
	}
	return items, nil
}

func toCycleResponse(cycleID string, c *entity.MaintenanceCycleEntity, supersededBy *string) *maintenance_dto.CycleResponse {
	return &maintenance_dto.CycleResponse{
		CycleID:      cycleID,
		DeviceType:   c.DeviceType,
		Frequency:    string(c.Frequency),
		Basis:        string(c.Basis),
		CreatedAt:    c.CreatedAt,
		SupersededBy: supersededBy,
	}
}
