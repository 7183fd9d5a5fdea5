package queue

import (
	"context"

	worker_task "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/worker/tasks"
	"github.com/stretchr/testify/mock"
)

var _ TaskQueueClient = (*MockTaskQueue)(nil)

// Mock TaskQueue for testing
type MockTaskQueue struct {
	mock.Mock
}

func (m *MockTaskQueue) EnqueueTransitionNotify(ctx context.Context, payload *worker_task.TransitionNotifyPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockTaskQueue) EnqueueCrackStatusUpdate(ctx context.Context, payload *worker_task.CrackStatusUpdatePayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockTaskQueue) EnqueueMaterialDeduction(ctx context.Context, payload *worker_task.MaterialDeductPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockTaskQueue) EnqueueScheduleJobEmail(ctx context.Context, payload *worker_task.ScheduleJobEmailPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

func (m *MockTaskQueue) EnqueueAutoMaintenance(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
