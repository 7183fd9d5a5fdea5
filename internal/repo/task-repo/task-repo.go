package task_repo

import (
	"context"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/tx"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaskRepo struct {
	db *pgxpool.Pool
}

func NewTaskRepo(db *pgxpool.Pool) TaskRepoContract {
	return &TaskRepo{
		db: db,
	}
}

const taskColumns = `id, description, status, crack_id, schedule_job_id, crack_cancelled_at, created_at, updated_at`

func scanTask(row pgx.Row) (*entity.TaskEntity, error) {
	var t entity.TaskEntity
	if err := row.Scan(&t.ID, &t.Description, &t.Status, &t.CrackID, &t.ScheduleJobID, &t.CrackCancelledAt, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepo) InsertTask(ctx context.Context, t tx.Tx, task *entity.TaskEntity) *app_errors.AppError {
	q, err := tx.Conn(r.db, t)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO tasks (id, description, status, crack_id, schedule_job_id, created_at)
	VALUES ($1, $2, $3, $4, $5, $6);
	`

	if _, err := q.Exec(ctx, query, task.ID, task.Description, task.Status, task.CrackID, task.ScheduleJobID, task.CreatedAt); err != nil {
		appErr := app_errors.MapPgxError(err)
		if appErr.Is(app_errors.ErrConflict) {
			appErr.MessageKey = "task.already_exists"
		}
		return appErr
	}
	return nil
}

func (r *TaskRepo) GetTaskByID(ctx context.Context, t tx.Tx, taskID string) (*entity.TaskEntity, *app_errors.AppError) {
	q, err := tx.Conn(r.db, t)
	if err != nil {
		return nil, err
	}

	task, scanErr := scanTask(q.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1;`, taskID))
	if scanErr != nil {
		return nil, app_errors.MapPgxNotFound(scanErr, "task.not_found")
	}
	return task, nil
}

// GetWorkContext loads the task together with the status of its origin schedule job.
func (r *TaskRepo) GetWorkContext(ctx context.Context, t tx.Tx, taskID string) (*entity.WorkContext, *app_errors.AppError) {
	q, err := tx.Conn(r.db, t)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT t.id, t.description, t.status, t.crack_id, t.schedule_job_id, t.crack_cancelled_at, t.created_at, t.updated_at, sj.status
	FROM tasks t
	LEFT JOIN schedule_jobs sj ON sj.id = t.schedule_job_id
	WHERE t.id = $1;
	`

	var wc entity.WorkContext
	task := &wc.Task
	if err := q.QueryRow(ctx, query, taskID).Scan(&task.ID, &task.Description, &task.Status, &task.CrackID, &task.ScheduleJobID, &task.CrackCancelledAt, &task.CreatedAt, &task.UpdatedAt, &wc.JobStatus); err != nil {
		return nil, app_errors.MapPgxNotFound(err, "task.not_found")
	}
	return &wc, nil
}

func (r *TaskRepo) UpdateTaskStatus(ctx context.Context, t tx.Tx, taskID string, to entity.TaskStatus) *app_errors.AppError {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return err
	}

	tag, execErr := pgxTx.Exec(ctx, `UPDATE tasks SET status = $2, updated_at = now() WHERE id = $1;`, taskID, to)
	if execErr != nil {
		return app_errors.MapPgxError(execErr)
	}
	if tag.RowsAffected() == 0 {
		return app_errors.NewAppError(fiber.StatusNotFound, app_errors.ErrNotFound, "task.not_found", nil)
	}
	return nil
}

// MarkCrackCancelled flags every task of the crack; their work items become stale.
func (r *TaskRepo) MarkCrackCancelled(ctx context.Context, t tx.Tx, crackID string) (int64, *app_errors.AppError) {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return 0, err
	}

	query := `
	UPDATE tasks
	SET crack_cancelled_at = now(),
		updated_at = now()
	WHERE crack_id = $1
		AND crack_cancelled_at IS NULL;
	`

	tag, execErr := pgxTx.Exec(ctx, query, crackID)
	if execErr != nil {
		return 0, app_errors.MapPgxError(execErr)
	}
	return tag.RowsAffected(), nil
}

func (r *TaskRepo) InsertAssignment(ctx context.Context, t tx.Tx, a *entity.TaskAssignmentEntity) *app_errors.AppError {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO task_assignments (id, task_id, employee_id, description, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6);
	`

	if _, err := pgxTx.Exec(ctx, query, a.ID, a.TaskID, a.EmployeeID, a.Description, a.Status, a.CreatedAt); err != nil {
		appErr := app_errors.MapPgxError(err)
		if appErr.Is(app_errors.ErrConflict) {
			appErr.MessageKey = "assignment.active_exists"
		}
		return appErr
	}
	return nil
}

func (r *TaskRepo) GetAssignmentByID(ctx context.Context, t tx.Tx, assignmentID string) (*entity.TaskAssignmentEntity, *app_errors.AppError) {
	q, err := tx.Conn(r.db, t)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT id, task_id, employee_id, description, status, created_at, updated_at
	FROM task_assignments
	WHERE id = $1;
	`

	var a entity.TaskAssignmentEntity
	if err := q.QueryRow(ctx, query, assignmentID).Scan(&a.ID, &a.TaskID, &a.EmployeeID, &a.Description, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
		return nil, app_errors.MapPgxNotFound(err, "assignment.not_found")
	}
	return &a, nil
}

func (r *TaskRepo) UpdateAssignmentStatus(ctx context.Context, t tx.Tx, assignmentID string, from, to entity.AssignmentStatus) (bool, *app_errors.AppError) {
	return r.conditionalUpdate(ctx, t, `UPDATE task_assignments SET status = $3, updated_at = now() WHERE id = $1 AND status = $2;`, assignmentID, from, to)
}

const workLogColumns = `id, task_id, task_assignment_id, title, description, status, deposit_confirmed_at, created_at, updated_at`

func scanWorkLog(row pgx.Row) (*entity.WorkLogEntity, error) {
	var w entity.WorkLogEntity
	if err := row.Scan(&w.ID, &w.TaskID, &w.TaskAssignmentID, &w.Title, &w.Description, &w.Status, &w.DepositConfirmedAt, &w.CreatedAt, &w.UpdatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *TaskRepo) InsertWorkLog(ctx context.Context, t tx.Tx, w *entity.WorkLogEntity) *app_errors.AppError {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO work_logs (id, task_id, task_assignment_id, title, description, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7);
	`

	if _, err := pgxTx.Exec(ctx, query, w.ID, w.TaskID, w.TaskAssignmentID, w.Title, w.Description, w.Status, w.CreatedAt); err != nil {
		appErr := app_errors.MapPgxError(err)
		if appErr.Is(app_errors.ErrConflict) {
			appErr.MessageKey = "work_log.active_exists"
		}
		return appErr
	}
	return nil
}

func (r *TaskRepo) GetWorkLogByID(ctx context.Context, t tx.Tx, workLogID string) (*entity.WorkLogEntity, *app_errors.AppError) {
	q, err := tx.Conn(r.db, t)
	if err != nil {
		return nil, err
	}

	w, scanErr := scanWorkLog(q.QueryRow(ctx, `SELECT `+workLogColumns+` FROM work_logs WHERE id = $1;`, workLogID))
	if scanErr != nil {
		return nil, app_errors.MapPgxNotFound(scanErr, "work_log.not_found")
	}
	return w, nil
}

func (r *TaskRepo) GetOpenWorkLogByAssignment(ctx context.Context, t tx.Tx, assignmentID string) (*entity.WorkLogEntity, *app_errors.AppError) {
	q, err := tx.Conn(r.db, t)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT ` + workLogColumns + `
	FROM work_logs
	WHERE task_assignment_id = $1
		AND status NOT IN ('FINAL_REVIEW', 'CANCELLED')
	LIMIT 1;
	`

	w, scanErr := scanWorkLog(q.QueryRow(ctx, query, assignmentID))
	if scanErr != nil {
		return nil, app_errors.MapPgxNotFound(scanErr, "work_log.not_found")
	}
	return w, nil
}

func (r *TaskRepo) UpdateWorkLogStatus(ctx context.Context, t tx.Tx, workLogID string, from, to entity.WorkLogStatus) (bool, *app_errors.AppError) {
	return r.conditionalUpdate(ctx, t, `UPDATE work_logs SET status = $3, updated_at = now() WHERE id = $1 AND status = $2;`, workLogID, from, to)
}

// ConfirmDeposit sets deposit_confirmed_at once, and only on an open work log.
func (r *TaskRepo) ConfirmDeposit(ctx context.Context, t tx.Tx, workLogID string, at time.Time) (bool, *app_errors.AppError) {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return false, err
	}

	query := `
	UPDATE work_logs
	SET deposit_confirmed_at = $2,
		updated_at = now()
	WHERE id = $1
		AND deposit_confirmed_at IS NULL
		AND status NOT IN ('FINAL_REVIEW', 'CANCELLED');
	`

	tag, execErr := pgxTx.Exec(ctx, query, workLogID, at)
	if execErr != nil {
		return false, app_errors.MapPgxError(execErr)
	}
	return tag.RowsAffected() == 1, nil
}

const inspectionColumns = `id, task_assignment_id, inspected_by, image_urls, description, total_cost::float8, materials, report_status, created_at, updated_at`

func scanInspection(row pgx.Row) (*entity.InspectionEntity, error) {
	var i entity.InspectionEntity
	if err := row.Scan(&i.ID, &i.TaskAssignmentID, &i.InspectedBy, &i.ImageURLs, &i.Description, &i.TotalCost, &i.Materials, &i.ReportStatus, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *TaskRepo) InsertInspection(ctx context.Context, t tx.Tx, i *entity.InspectionEntity) *app_errors.AppError {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO inspections (id, task_assignment_id, inspected_by, image_urls, description, total_cost, materials, report_status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`

	materials := i.Materials
	if materials == nil {
		materials = []entity.RepairMaterial{}
	}
	images := i.ImageURLs
	if images == nil {
		images = []string{}
	}

	if _, err := pgxTx.Exec(ctx, query, i.ID, i.TaskAssignmentID, i.InspectedBy, images, i.Description, i.TotalCost, materials, i.ReportStatus, i.CreatedAt); err != nil {
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *TaskRepo) GetInspectionByID(ctx context.Context, t tx.Tx, inspectionID string) (*entity.InspectionEntity, *app_errors.AppError) {
	q, err := tx.Conn(r.db, t)
	if err != nil {
		return nil, err
	}

	i, scanErr := scanInspection(q.QueryRow(ctx, `SELECT `+inspectionColumns+` FROM inspections WHERE id = $1;`, inspectionID))
	if scanErr != nil {
		return nil, app_errors.MapPgxNotFound(scanErr, "inspection.not_found")
	}
	return i, nil
}

func (r *TaskRepo) UpdateInspectionStatus(ctx context.Context, t tx.Tx, inspectionID string, from, to entity.ReportStatus) (bool, *app_errors.AppError) {
	return r.conditionalUpdate(ctx, t, `UPDATE inspections SET report_status = $3, updated_at = now() WHERE id = $1 AND report_status = $2;`, inspectionID, from, to)
}

// CountInspections returns the pending inspections of the whole task and the
// approved inspections of the given assignment.
func (r *TaskRepo) CountInspections(ctx context.Context, t tx.Tx, taskID, assignmentID string) (int, int, *app_errors.AppError) {
	q, err := tx.Conn(r.db, t)
	if err != nil {
		return 0, 0, err
	}

	query := `
	SELECT
		COUNT(*) FILTER (WHERE i.report_status = 'Pending'),
		COUNT(*) FILTER (WHERE i.task_assignment_id = $2 AND i.report_status IN ('Approved', 'AutoApproved'))
	FROM inspections i
	JOIN task_assignments ta ON ta.id = i.task_assignment_id
	WHERE ta.task_id = $1;
	`

	var pending, approved int
	if err := q.QueryRow(ctx, query, taskID, assignmentID).Scan(&pending, &approved); err != nil {
		return 0, 0, app_errors.MapPgxError(err)
	}
	return pending, approved, nil
}

func (r *TaskRepo) ListApprovedInspections(ctx context.Context, t tx.Tx, assignmentID string) ([]entity.InspectionEntity, *app_errors.AppError) {
	q, err := tx.Conn(r.db, t)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT ` + inspectionColumns + `
	FROM inspections
	WHERE task_assignment_id = $1
		AND report_status IN ('Approved', 'AutoApproved')
	ORDER BY created_at ASC;
	`

	rows, queryErr := q.Query(ctx, query, assignmentID)
	if queryErr != nil {
		return nil, app_errors.MapPgxError(queryErr)
	}
	defer rows.Close()

	results := []entity.InspectionEntity{}
	for rows.Next() {
		i, err := scanInspection(rows)
		if err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		results = append(results, *i)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return results, nil
}

// ClaimMaterialDeduction records the ledger row for an inspection. It reports
// false when the inspection was already claimed.
func (r *TaskRepo) ClaimMaterialDeduction(ctx context.Context, t tx.Tx, inspectionID string, materials []entity.RepairMaterial) (bool, *app_errors.AppError) {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return false, err
	}

	query := `
	INSERT INTO material_deductions (inspection_id, status, materials)
	VALUES ($1, 'Pending', $2)
	ON CONFLICT (inspection_id) DO NOTHING;
	`

	tag, execErr := pgxTx.Exec(ctx, query, inspectionID, materials)
	if execErr != nil {
		return false, app_errors.MapPgxError(execErr)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TaskRepo) GetMaterialDeduction(ctx context.Context, inspectionID string) (*entity.MaterialDeductionEntity, *app_errors.AppError) {
	query := `
	SELECT inspection_id, status, materials, created_at, applied_at
	FROM material_deductions
	WHERE inspection_id = $1;
	`

	var d entity.MaterialDeductionEntity
	if err := r.db.QueryRow(ctx, query, inspectionID).Scan(&d.InspectionID, &d.Status, &d.Materials, &d.CreatedAt, &d.AppliedAt); err != nil {
		return nil, app_errors.MapPgxNotFound(err, "material_deduction.not_found")
	}
	return &d, nil
}

func (r *TaskRepo) MarkDeductionApplied(ctx context.Context, inspectionID string) (bool, *app_errors.AppError) {
	query := `
	UPDATE material_deductions
	SET status = 'Applied',
		applied_at = now()
	WHERE inspection_id = $1
		AND status = 'Pending';
	`

	tag, err := r.db.Exec(ctx, query, inspectionID)
	if err != nil {
		return false, app_errors.MapPgxError(err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *TaskRepo) ListPendingDeductions(ctx context.Context, createdBefore time.Time, limit int) ([]entity.MaterialDeductionEntity, *app_errors.AppError) {
	query := `
	SELECT inspection_id, status, materials, created_at, applied_at
	FROM material_deductions
	WHERE status = 'Pending'
		AND created_at < $1
	ORDER BY created_at ASC
	LIMIT $2;
	`

	rows, err := r.db.Query(ctx, query, createdBefore, limit)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	defer rows.Close()

	results := []entity.MaterialDeductionEntity{}
	for rows.Next() {
		var d entity.MaterialDeductionEntity
		if err := rows.Scan(&d.InspectionID, &d.Status, &d.Materials, &d.CreatedAt, &d.AppliedAt); err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		results = append(results, d)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return results, nil
}

// conditionalUpdate runs an UPDATE guarded by the expected current status and
// reports whether the row moved.
func (r *TaskRepo) conditionalUpdate(ctx context.Context, t tx.Tx, query string, id string, from, to any) (bool, *app_errors.AppError) {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return false, err
	}

	tag, execErr := pgxTx.Exec(ctx, query, id, from, to)
	if execErr != nil {
		return false, app_errors.MapPgxError(execErr)
	}
	return tag.RowsAffected() == 1, nil
}
