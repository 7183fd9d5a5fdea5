package schedule_repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/tx"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScheduleRepo struct {
	db *pgxpool.Pool
}

func NewScheduleRepo(db *pgxpool.Pool) ScheduleRepoContract {
	return &ScheduleRepo{
		db: db,
	}
}

const jobColumns = `id, schedule_id, building_detail_id, run_date, status, created_at, updated_at`

func scanJob(row pgx.Row) (*entity.ScheduleJobEntity, error) {
	var j entity.ScheduleJobEntity
	if err := row.Scan(&j.ID, &j.ScheduleID, &j.BuildingDetailID, &j.RunDate, &j.Status, &j.CreatedAt, &j.UpdatedAt); err != nil {
		return nil, err
	}
	j.RunDate = j.RunDate.UTC()
	return &j, nil
}

func collectJobs(rows pgx.Rows) ([]entity.ScheduleJobEntity, *app_errors.AppError) {
	defer rows.Close()

	results := []entity.ScheduleJobEntity{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		results = append(results, *job)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return results, nil
}

func (r *ScheduleRepo) InsertSchedule(ctx context.Context, t tx.Tx, s *entity.ScheduleEntity) *app_errors.AppError {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO schedules (
			id,
			name,
			description,
			cycle_id,
			start_date,
			end_date,
			status,
			auto_create_tasks,
			specific_dates,
			created_by,
			created_at
		) VALUES (
			$1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11
		);
	`

	specific := s.SpecificDates
	if specific == nil {
		specific = []time.Time{}
	}

	if _, err := pgxTx.Exec(ctx, query, s.ID, s.Name, s.Description, s.CycleID, s.StartDate, s.EndDate, s.Status, s.AutoCreateTasks, specific, s.CreatedBy, s.CreatedAt); err != nil {
		return app_errors.MapPgxError(err)
	}

	// Ziele in Eingabereihenfolge speichern, der Planer hängt davon ab
	batch := &pgx.Batch{}
	for i, id := range s.BuildingDetailIDs {
		batch.Queue(`INSERT INTO schedule_targets (schedule_id, building_detail_id, position) VALUES ($1, $2, $3) ON CONFLICT DO NOTHING;`, s.ID, id, i)
	}
	if batch.Len() == 0 {
		return nil
	}

	results := pgxTx.SendBatch(ctx, batch)
	defer results.Close()
	for range batch.Len() {
		if _, err := results.Exec(); err != nil {
			return app_errors.MapPgxError(err)
		}
	}
	return nil
}

func (r *ScheduleRepo) GetScheduleByID(ctx context.Context, t tx.Tx, scheduleID string) (*entity.ScheduleEntity, *app_errors.AppError) {
	q, err := tx.Conn(r.db, t)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT s.id, s.name, s.description, s.cycle_id, s.start_date, s.end_date, s.status,
		s.auto_create_tasks, s.specific_dates, s.created_by, s.created_at, s.updated_at,
		COALESCE(array_agg(st.building_detail_id ORDER BY st.position) FILTER (WHERE st.building_detail_id IS NOT NULL), '{}')
	FROM schedules s
	LEFT JOIN schedule_targets st ON st.schedule_id = s.id
	WHERE s.id = $1
	GROUP BY s.id;
	`

	var s entity.ScheduleEntity
	if err := q.QueryRow(ctx, query, scheduleID).Scan(&s.ID, &s.Name, &s.Description, &s.CycleID, &s.StartDate, &s.EndDate, &s.Status, &s.AutoCreateTasks, &s.SpecificDates, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt, &s.BuildingDetailIDs); err != nil {
		return nil, app_errors.MapPgxNotFound(err, "schedule.not_found")
	}
	return &s, nil
}

// ListActiveSchedules returns in-progress schedules whose date range touches [today, horizonEnd).
func (r *ScheduleRepo) ListActiveSchedules(ctx context.Context, today, horizonEnd time.Time) ([]entity.ActiveSchedule, *app_errors.AppError) {
	query := `
	SELECT s.id, s.name, s.description, s.cycle_id, s.start_date, s.end_date, s.status,
		s.auto_create_tasks, s.specific_dates, s.created_by, s.created_at, s.updated_at,
		COALESCE(array_agg(st.building_detail_id ORDER BY st.position) FILTER (WHERE st.building_detail_id IS NOT NULL), '{}'),
		c.frequency, c.device_type
	FROM schedules s
	JOIN maintenance_cycles c ON c.id = s.cycle_id
	LEFT JOIN schedule_targets st ON st.schedule_id = s.id
	WHERE s.status = 'InProgress'
		AND s.start_date < $2
		AND (s.end_date IS NULL OR s.end_date >= $1)
	GROUP BY s.id, c.frequency, c.device_type
	ORDER BY s.start_date ASC, s.id ASC;
	`

	rows, err := r.db.Query(ctx, query, today, horizonEnd)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	defer rows.Close()

	results := []entity.ActiveSchedule{}
	for rows.Next() {
		var a entity.ActiveSchedule
		if err := rows.Scan(&a.ID, &a.Name, &a.Description, &a.CycleID, &a.StartDate, &a.EndDate, &a.Status, &a.AutoCreateTasks, &a.SpecificDates, &a.CreatedBy, &a.CreatedAt, &a.UpdatedAt, &a.BuildingDetailIDs, &a.Frequency, &a.DeviceType); err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		results = append(results, a)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return results, nil
}

func (r *ScheduleRepo) UpdateScheduleStatus(ctx context.Context, t tx.Tx, scheduleID string, from, to entity.ScheduleStatus) (bool, *app_errors.AppError) {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return false, err
	}

	query := `
	UPDATE schedules
	SET status = $3,
		updated_at = now()
	WHERE id = $1
		AND status = $2;
	`

	tag, execErr := pgxTx.Exec(ctx, query, scheduleID, from, to)
	if execErr != nil {
		return false, app_errors.MapPgxError(execErr)
	}
	return tag.RowsAffected() == 1, nil
}

// CancelOpenJobs cancels the Pending and InProgress jobs of a schedule. Completed jobs stay.
func (r *ScheduleRepo) CancelOpenJobs(ctx context.Context, t tx.Tx, scheduleID string) (int64, *app_errors.AppError) {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return 0, err
	}

	query := `
	UPDATE schedule_jobs
	SET status = 'Cancel',
		updated_at = now()
	WHERE schedule_id = $1
		AND status IN ('Pending', 'InProgress');
	`

	tag, execErr := pgxTx.Exec(ctx, query, scheduleID)
	if execErr != nil {
		return 0, app_errors.MapPgxError(execErr)
	}
	return tag.RowsAffected(), nil
}

func (r *ScheduleRepo) ListJobsInWindow(ctx context.Context, t tx.Tx, scheduleID string, from, until time.Time) ([]entity.ScheduleJobEntity, *app_errors.AppError) {
	q, err := tx.Conn(r.db, t)
	if err != nil {
		return nil, err
	}

	query := `
	SELECT ` + jobColumns + `
	FROM schedule_jobs
	WHERE schedule_id = $1
		AND run_date >= $2
		AND run_date < $3
	ORDER BY run_date ASC;
	`

	rows, queryErr := q.Query(ctx, query, scheduleID, from, until)
	if queryErr != nil {
		return nil, app_errors.MapPgxError(queryErr)
	}
	return collectJobs(rows)
}

// InsertScheduleJob creates the job unless its slot is taken by a live job,
// in which case DUPLICATE_JOB is returned and nothing is written.
func (r *ScheduleRepo) InsertScheduleJob(ctx context.Context, t tx.Tx, job *entity.ScheduleJobEntity) *app_errors.AppError {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return err
	}

	query := `
	INSERT INTO schedule_jobs (id, schedule_id, building_detail_id, run_date, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6)
	ON CONFLICT (schedule_id, building_detail_id, run_date) WHERE status <> 'Cancel'
	DO NOTHING
	RETURNING id;
	`

	var id string
	if err := pgxTx.QueryRow(ctx, query, job.ID, job.ScheduleID, job.BuildingDetailID, job.RunDate, job.Status, job.CreatedAt).Scan(&id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return app_errors.NewDuplicateJob(fmt.Errorf("job slot %s/%s/%s already taken", deref(job.ScheduleID), job.BuildingDetailID, job.RunDate.Format(time.DateOnly)))
		}
		return app_errors.MapPgxError(err)
	}
	return nil
}

func (r *ScheduleRepo) GetJobByID(ctx context.Context, t tx.Tx, jobID string) (*entity.ScheduleJobEntity, *app_errors.AppError) {
	q, err := tx.Conn(r.db, t)
	if err != nil {
		return nil, err
	}

	query := `SELECT ` + jobColumns + ` FROM schedule_jobs WHERE id = $1;`

	job, scanErr := scanJob(q.QueryRow(ctx, query, jobID))
	if scanErr != nil {
		return nil, app_errors.MapPgxNotFound(scanErr, "schedule_job.not_found")
	}
	return job, nil
}

func (r *ScheduleRepo) UpdateJobStatus(ctx context.Context, t tx.Tx, jobID string, from, to entity.ScheduleJobStatus) (bool, *app_errors.AppError) {
	pgxTx, err := tx.Unwrap(t)
	if err != nil {
		return false, err
	}

	query := `
	UPDATE schedule_jobs
	SET status = $3,
		updated_at = now()
	WHERE id = $1
		AND status = $2;
	`

	tag, execErr := pgxTx.Exec(ctx, query, jobID, from, to)
	if execErr != nil {
		return false, app_errors.MapPgxError(execErr)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *ScheduleRepo) ListJobsBySchedule(ctx context.Context, scheduleID string, status *entity.ScheduleJobStatus) ([]entity.ScheduleJobEntity, *app_errors.AppError) {
	query := `
	SELECT ` + jobColumns + `
	FROM schedule_jobs
	WHERE schedule_id = $1
	`
	args := []any{scheduleID}

	if status != nil {
		query += " AND status = $2"
		args = append(args, *status)
	}
	query += " ORDER BY run_date ASC, building_detail_id ASC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return collectJobs(rows)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
