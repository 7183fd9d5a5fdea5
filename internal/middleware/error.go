package middleware

import (
	"errors"

	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	internal_i18n "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/i18n"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// ErrorHandlerMiddleware behandelt Fehler, die während der Anfrageverarbeitung auftreten.
func ErrorHandlerMiddleware(i18nSvc internal_i18n.Service) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		lang, ok := c.Locals("lang").(string)
		if !ok || lang == "" {
			lang = c.Get("Accept-Language", "en")
		}

		var appErr *app_errors.AppError
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
		case errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound:
			appErr = app_errors.NewAppError(fiber.StatusNotFound, app_errors.ErrNotFound, "route.not_found", err)
		default:
			appErr = app_errors.NewAppError(
				fiber.StatusInternalServerError,
				app_errors.ErrInternal,
				"internal_error",
				err,
			)
		}

		message := i18nSvc.T(lang, appErr.MessageKey, nil)

		reqID, _ := c.Locals("request_id").(string)

		respErr := fiber.Map{
			"code":       appErr.Code,
			"type":       appErr.Type,
			"message":    message,
			"request_id": reqID,
		}

		// Zustandsfehler nennen das betroffene Objekt, seinen beobachteten und den angefragten Zustand
		if appErr.EntityID != "" {
			respErr["entity_id"] = appErr.EntityID
		}
		if appErr.CurrentState != "" {
			respErr["current_state"] = appErr.CurrentState
		}
		if appErr.RequestedState != "" {
			respErr["requested_state"] = appErr.RequestedState
		}

		if len(appErr.Details) > 0 {
			var details []fiber.Map

			for _, d := range appErr.Details {
				details = append(details, fiber.Map{
					"field":  d.Field,
					"reason": d.Reason,
					"message": i18nSvc.T(
						lang,
						d.MessageKey,
						d.Params,
					),
				})
			}

			respErr["details"] = details
		}

		if appErr.Err != nil {
			evt := log.Error()
			if appErr.Code < fiber.StatusInternalServerError {
				evt = log.Warn()
			}
			evt.Err(appErr.Err).Str("type", appErr.Type).Str("request_id", reqID).Msg("application error")
		}

		return c.Status(appErr.Code).JSON(fiber.Map{
			"status": "error",
			"error":  respErr,
		})
	}
}
