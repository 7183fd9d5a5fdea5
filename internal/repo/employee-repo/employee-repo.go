package employee_repo

import (
	"context"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type EmployeeRepo struct {
	db *pgxpool.Pool
}

func NewEmployeeRepo(db *pgxpool.Pool) EmployeeRepoContract {
	return &EmployeeRepo{
		db: db,
	}
}

func (r *EmployeeRepo) FindByID(ctx context.Context, employeeID string) (*entity.EmployeeEntity, *app_errors.AppError) {
	query := `
		SELECT id, name, email, role FROM employees WHERE id = $1 LIMIT 1
	`

	var e entity.EmployeeEntity
	if err := r.db.QueryRow(ctx, query, employeeID).Scan(&e.ID, &e.Name, &e.Email, &e.Role); err != nil {
		return nil, app_errors.MapPgxNotFound(err, "employee.not_found")
	}
	return &e, nil
}

func (r *EmployeeRepo) FindByIDs(ctx context.Context, employeeIDs []string) ([]entity.EmployeeEntity, *app_errors.AppError) {
	if len(employeeIDs) == 0 {
		return []entity.EmployeeEntity{}, nil
	}

	rows, err := r.db.Query(ctx, `SELECT id, name, email, role FROM employees WHERE id = ANY($1) ORDER BY name`, employeeIDs)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return collectEmployees(rows)
}

func (r *EmployeeRepo) ListByRole(ctx context.Context, role entity.ActorRole) ([]entity.EmployeeEntity, *app_errors.AppError) {
	rows, err := r.db.Query(ctx, `SELECT id, name, email, role FROM employees WHERE role = $1 ORDER BY name`, role)
	if err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return collectEmployees(rows)
}

func collectEmployees(rows pgx.Rows) ([]entity.EmployeeEntity, *app_errors.AppError) {
	defer rows.Close()

	employees := []entity.EmployeeEntity{}
	for rows.Next() {
		var e entity.EmployeeEntity
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &e.Role); err != nil {
			return nil, app_errors.MapPgxError(err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, app_errors.MapPgxError(err)
	}
	return employees, nil
}
