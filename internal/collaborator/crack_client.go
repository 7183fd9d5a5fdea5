package collaborator

import (
	"context"
	"time"

	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

type CrackClient struct {
	http *resty.Client
}

func NewCrackClient(baseURL string, timeout time.Duration) *CrackClient {
	return &CrackClient{http: newRestyClient(baseURL, timeout)}
}

type crackStatusRequest struct {
	Status string `json:"status"`
}

func (c *CrackClient) UpdateCrackStatus(ctx context.Context, crackID, status string) *app_errors.AppError {
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("crack_id", crackID).
		SetBody(crackStatusRequest{Status: status}).
		Patch("/cracks/{crack_id}/status")

	if appErr := asAppError("crack", resp, err); appErr != nil {
		log.Warn().Err(appErr.Err).Str("crack_id", crackID).Str("status", status).Msg("crack status update failed")
		return appErr
	}

	log.Info().Str("crack_id", crackID).Str("status", status).Msg("crack status updated")
	return nil
}
