package tx

import (
	"context"
	"fmt"

	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxTxManager struct {
	db *pgxpool.Pool
}

func NewPgxTxManager(db *pgxpool.Pool) *PgxTxManager {
	return &PgxTxManager{db: db}
}

// Begin opens a read-committed transaction. Transition safety comes from
// conditional updates on the status column, not from the isolation level.
func (m *PgxTxManager) Begin(ctx context.Context) (Tx, *app_errors.AppError) {
	tx, err := m.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", err)
	}

	return &PgxTx{Tx: tx}, nil
}

type PgxTx struct {
	Tx pgx.Tx
}

func (t *PgxTx) Commit(ctx context.Context) *app_errors.AppError {
	if err := t.Tx.Commit(ctx); err != nil {
		return app_errors.NewAppError(
			fiber.StatusInternalServerError,
			app_errors.ErrInternal,
			"internal_error",
			err,
		)
	}
	return nil
}

func (t *PgxTx) Rollback(ctx context.Context) *app_errors.AppError {
	_ = t.Tx.Rollback(ctx)
	return nil
}

// Unwrap gives repositories the pgx transaction behind t.
func Unwrap(t Tx) (pgx.Tx, *app_errors.AppError) {
	p, ok := t.(*PgxTx)
	if !ok || p.Tx == nil {
		return nil, app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "internal_error", fmt.Errorf("unsupported transaction type %T", t))
	}
	return p.Tx, nil
}

// Querier is the part of pgx shared by the pool and a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Conn returns the transaction behind t, or the pool when t is nil.
func Conn(pool *pgxpool.Pool, t Tx) (Querier, *app_errors.AppError) {
	if t == nil {
		return pool, nil
	}
	return Unwrap(t)
}
