package use_cases

import (
	"context"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/cache"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/abstraction/tx"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/stretchr/testify/mock"
)

var (
	_ tx.Tx        = (*MockTx)(nil)
	_ tx.TxManager = (*MockTxManager)(nil)
	_ cache.Cache  = (*MockCache)(nil)
	_ cache.Locker = (*MockLocker)(nil)
)

type MockTx struct {
	mock.Mock
}

func (m *MockTx) Commit(ctx context.Context) *app_errors.AppError {
	args := m.Called(ctx)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockTx) Rollback(ctx context.Context) *app_errors.AppError {
	args := m.Called(ctx)
	return args.Get(0).(*app_errors.AppError)
}

// NewCommittingTx expects exactly one Commit; Rollback is tolerated.
func NewCommittingTx() *MockTx {
	t := new(MockTx)
	t.On("Commit", mock.Anything).Return((*app_errors.AppError)(nil)).Once()
	t.On("Rollback", mock.Anything).Return((*app_errors.AppError)(nil)).Maybe()
	return t
}

// NewRollbackTx is a transaction that must not be committed.
func NewRollbackTx() *MockTx {
	t := new(MockTx)
	t.On("Rollback", mock.Anything).Return((*app_errors.AppError)(nil))
	return t
}

type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) Begin(ctx context.Context) (tx.Tx, *app_errors.AppError) {
	args := m.Called(ctx)
	return args.Get(0).(tx.Tx), args.Get(1).(*app_errors.AppError)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(ctx context.Context, key string) (*any, *app_errors.AppError) {
	args := m.Called(ctx, key)
	return args.Get(0).(*any), args.Get(1).(*app_errors.AppError)
}

func (m *MockCache) Set(ctx context.Context, key string, val any, ttl time.Duration) *app_errors.AppError {
	args := m.Called(ctx, key, val, ttl)
	return args.Get(0).(*app_errors.AppError)
}

func (m *MockCache) Del(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockLocker struct {
	mock.Mock
	Released int
}

func (m *MockLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (func(context.Context), bool, *app_errors.AppError) {
	args := m.Called(ctx, key, ttl)
	release := func(context.Context) { m.Released++ }
	return release, args.Bool(0), args.Get(1).(*app_errors.AppError)
}
