package collaborator

import (
	"context"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

type MaterialClient struct {
	http *resty.Client
}

func NewMaterialClient(baseURL string, timeout time.Duration) *MaterialClient {
	return &MaterialClient{http: newRestyClient(baseURL, timeout)}
}

type deductRequest struct {
	Reference string                  `json:"reference"`
	Items     []entity.RepairMaterial `json:"items"`
}

// DeductMaterials sends the inspection id as Idempotency-Key, so a redelivered
// task never deducts twice on the stock side either.
func (c *MaterialClient) DeductMaterials(ctx context.Context, inspectionID string, materials []entity.RepairMaterial) *app_errors.AppError {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", inspectionID).
		SetBody(deductRequest{Reference: inspectionID, Items: materials}).
		Post("/materials/deduct")

	if appErr := asAppError("material", resp, err); appErr != nil {
		log.Warn().Err(appErr.Err).Str("inspection_id", inspectionID).Msg("material deduction failed")
		return appErr
	}

	log.Info().Str("inspection_id", inspectionID).Int("items", len(materials)).Msg("materials deducted")
	return nil
}
