package tx

import (
	"context"

	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
)

type Tx interface {
	Commit(ctx context.Context) *app_errors.AppError
	Rollback(ctx context.Context) *app_errors.AppError
}

type TxManager interface {
	Begin(ctx context.Context) (Tx, *app_errors.AppError)
}

// RollbackUnlessCommitted is meant to be deferred right after Begin.
func RollbackUnlessCommitted(ctx context.Context, t Tx, committed *bool) {
	if !*committed {
		_ = t.Rollback(ctx)
	}
}
