package collaborator

import (
	"context"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/stretchr/testify/mock"
)

var (
	_ CrackService  = (*MockCrackService)(nil)
	_ MaterialStock = (*MockMaterialStock)(nil)
)

type MockCrackService struct {
	mock.Mock
}

func (m *MockCrackService) UpdateCrackStatus(ctx context.Context, crackID, status string) *app_errors.AppError {
	args := m.Called(ctx, crackID, status)
	return args.Get(0).(*app_errors.AppError)
}

type MockMaterialStock struct {
	mock.Mock
}

func (m *MockMaterialStock) DeductMaterials(ctx context.Context, inspectionID string, materials []entity.RepairMaterial) *app_errors.AppError {
	args := m.Called(ctx, inspectionID, materials)
	return args.Get(0).(*app_errors.AppError)
}
