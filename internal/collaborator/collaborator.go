package collaborator

import (
	"context"
	"fmt"
	"time"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/go-resty/resty/v2"
	"github.com/goccy/go-json"
)

// CrackService updates the status of a crack report in the crack service.
type CrackService interface {
	UpdateCrackStatus(ctx context.Context, crackID, status string) *app_errors.AppError
}

// MaterialStock deducts repair materials from the stock service.
type MaterialStock interface {
	DeductMaterials(ctx context.Context, inspectionID string, materials []entity.RepairMaterial) *app_errors.AppError
}

// newRestyClient builds a client without retries; asynq owns redelivery.
func newRestyClient(baseURL string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetRetryCount(0).
		SetJSONMarshaler(json.Marshal).
		SetJSONUnmarshaler(json.Unmarshal).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
}

func asAppError(collaborator string, resp *resty.Response, err error) *app_errors.AppError {
	if err != nil {
		return app_errors.NewDownstreamUnavailable(collaborator, err)
	}
	if resp.IsError() {
		return app_errors.NewDownstreamUnavailable(collaborator, fmt.Errorf("%s responded %d: %s", collaborator, resp.StatusCode(), resp.String()))
	}
	return nil
}
