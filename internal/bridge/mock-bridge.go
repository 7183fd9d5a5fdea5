package bridge

import (
	"context"

	"github.com/stretchr/testify/mock"
)

var _ Bridge = (*MockBridge)(nil)

type MockBridge struct {
	mock.Mock
}

func (m *MockBridge) OnTransition(ctx context.Context, t Transition) {
	m.Called(ctx, t)
}

func (m *MockBridge) SendMaintenanceScheduleEmail(ctx context.Context, scheduleJobID string, recipientIDs []string) {
	m.Called(ctx, scheduleJobID, recipientIDs)
}

func (m *MockBridge) RequestMaterialDeduction(ctx context.Context, inspectionID string) {
	m.Called(ctx, inspectionID)
}
