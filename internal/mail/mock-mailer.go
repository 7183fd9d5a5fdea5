package mail

import (
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	worker_task "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/worker/tasks"
	"github.com/stretchr/testify/mock"
)

var _ Mailer = (*MockMailer)(nil)

type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendMaintenanceScheduleEmail(to []string, scheduleName string, job *entity.ScheduleJobEntity) error {
	args := m.Called(to, scheduleName, job)
	return args.Error(0)
}

func (m *MockMailer) SendTransitionNotification(to []string, event *worker_task.TransitionNotifyPayload) error {
	args := m.Called(to, event)
	return args.Error(0)
}
