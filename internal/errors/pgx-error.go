package app_errors

import (
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func MapPgxError(err error) *AppError {
	if errors.Is(err, pgx.ErrNoRows) {
		return NewAppError(404, ErrNotFound, "not_found", err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return NewAppError(409, ErrConflict, "conflict", err)
		case "23503": // foreign_key_violation
			return NewAppError(400, ErrValidation, "invalid_request", err)
		case "23514": // check_violation
			return NewAppError(400, ErrValidation, "invalid_request", err)
		}
	}

	return NewAppError(500, ErrInternal, "internal_error", err)
}

// MapPgxNotFound is MapPgxError with a specific i18n key for missing rows.
func MapPgxNotFound(err error, notFoundKey string) *AppError {
	if errors.Is(err, pgx.ErrNoRows) {
		return NewAppError(404, ErrNotFound, notFoundKey, nil)
	}
	return MapPgxError(err)
}
