package maintenance_repo

import (
	"context"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/tx"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type MaintenanceRepo struct {
	db *pgxpool.Pool
}

func NewMaintenanceRepo(db *pgxpool.Pool) MaintenanceRepoContract {
	return &MaintenanceRepo{
		db: db,
	}
}

const cycleColumns = `id, device_type, frequency, basis, created_by, created_at, updated_at`

func scanCycle(row pgx.Row) (*entity.MaintenanceCycleEntity, error) {
	var c entity.MaintenanceCycleEntity
	if err := row.Scan(&c.ID, &c.DeviceType, &c.Frequency, &c.Basis, &c.CreatedBy, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MaintenanceRepo) InsertCycle(ctx context.Context, t tx.Tx, cycle *entity.MaintenanceCycleEntity) *app_errors.AppError {
	q, err := tx.Conn(r.db, t)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO maintenance_cycles (id, device_type, frequency, basis, created_by, created_at)
	VALUES ($1, $2, $3, $4, $5, $6);
	`

	if _, err := q.Exec(ctx, query, cycle.ID, cycle.DeviceType, cycle.Frequency, cycle.Basis, cycle.CreatedBy, cycle.CreatedAt); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *MaintenanceRepo) GetCycleByID(ctx context.Context, t tx.Tx, cycleID string) (*entity.MaintenanceCycleEntity, *app_errors.AppError) {
	q, err := tx.Conn(r.db, t)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + cycleColumns + ` FROM maintenance_cycles WHERE id = $1;`

	cycle, scanErr := scanCycle(q.QueryRow(ctx, query, cycleID))
	if scanErr != nil {
		return nil, app_errors.MapPgxNotFound(scanErr, "maintenance_cycle.not_found")
	}
	return cycle, nil
}

// LockCycle reads the cycle with a row lock so concurrent updates append history in order.
func (r *MaintenanceRepo) LockCycle(ctx context.Context, t tx.Tx, cycleID string) (*entity.MaintenanceCycleEntity, *app_errors.AppError) {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + cycleColumns + ` FROM maintenance_cycles WHERE id = $1 FOR UPDATE;`

	cycle, scanErr := scanCycle(pgxTx.QueryRow(ctx, query, cycleID))
	if scanErr != nil {
		return nil, app_errors.MapPgxNotFound(scanErr, "maintenance_cycle.not_found")
	}
	return cycle, nil
}

func (r *MaintenanceRepo) UpdateCycle(ctx context.Context, t tx.Tx, cycle *entity.MaintenanceCycleEntity) *app_errors.AppError {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return err
	}

	query := `
	UPDATE maintenance_cycles
	SET device_type = $2,
		frequency = $3,
		basis = $4,
		updated_at = now()
	WHERE id = $1;
	`

	tag, execErr := pgxTx.Exec(ctx, query, cycle.ID, cycle.DeviceType, cycle.Frequency, cycle.Basis)
	if execErr != nil {
		return app_errors.MapPgxError(execErr)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NewAppError(404, app_errors.ErrNotFound, "maintenance_cycle.not_found", nil)
	}
	return nil
}

func (r *MaintenanceRepo) IsCycleReferenced(ctx context.Context, t tx.Tx, cycleID string) (bool, *app_errors.AppError) {
	q, err := tx.Conn(r.db, t)
	if err != nil {
		return false, err
	}

	query := `SELECT EXISTS (SELECT 1 FROM schedules WHERE cycle_id = $1);`

	var exists bool
	if err := q.QueryRow(ctx, query, cycleID).Scan(&exists); err != nil {
		return false, app_errors.MapPgxError(err)
	}
	return exists, nil
}

func (r *MaintenanceRepo) InsertCycleHistory(ctx context.Context, t tx.Tx, history *entity.MaintenanceCycleHistoryEntity) *app_errors.AppError {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO maintenance_cycle_history (id, cycle_id, device_type, frequency, basis, reason, changed_by, changed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`

	if _, err := pgxTx.Exec(ctx, query, history.ID, history.CycleID, history.DeviceType, history.Frequency, history.Basis, history.Reason, history.ChangedBy, history.ChangedAt); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *MaintenanceRepo) ListCycleHistory(ctx context.Context, cycleID string) ([]entity.MaintenanceCycleHistoryEntity, *app_errors.AppError) {
	query := `
	SELECT id, cycle_id, device_type, frequency, basis, reason, changed_by, changed_at
	FROM maintenance_cycle_history
	WHERE cycle_id = $1
	ORDER BY changed_at ASC, id ASC;
	`

	rows, err := r.db.Query(ctx, query, cycleID)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	defer rows.Close()

	results := []entity.MaintenanceCycleHistoryEntity{}
	for rows.Next() {
		var h entity.MaintenanceCycleHistoryEntity
		if err := rows.Scan(&h.ID, &h.CycleID, &h.DeviceType, &h.Frequency, &h.Basis, &h.Reason, &h.ChangedBy, &h.ChangedAt); err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		results = append(results, h)
	}

	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return results, nil
}
