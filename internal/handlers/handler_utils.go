package handlers

import (
	"strings"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	internal_i18n "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/i18n"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// CreateResponse erstellt eine standardisierte WebResponse.
func CreateResponse[T any](message string, data T, requestID string, details ...any) dtos.WebResponse[T] {
	return dtos.WebResponse[T]{
		Message:   message,
		Data:      data,
		RequestID: requestID,
		Details:   details,
	}
}

// GetActor liest den vom AuthMiddleware gesetzten Akteur aus dem Kontext.
func GetActor(c *fiber.Ctx) (entity.Actor, *app_errors.AppError) {
	actorID, ok := c.Locals("actor_id").(string)
	if !ok || actorID == "" {
		return entity.Actor{}, app_errors.NewAppError(fiber.StatusUnauthorized, app_errors.ErrUnauthorized, "auth.unauthorized", nil)
	}

	role, _ := c.Locals("role").(string)
	actor := entity.Actor{ID: actorID, Role: entity.ActorRole(role)}
	if !actor.Role.IsValid() {
		return entity.Actor{}, app_errors.NewAppError(fiber.StatusUnauthorized, app_errors.ErrUnauthorized, "auth.unauthorized", nil)
	}

	return actor, nil
}

func GetRequestID(c *fiber.Ctx) string {
	reqID, ok := c.Locals("request_id").(string)
	if !ok {
		reqID = "unknown"
	}
	return reqID
}

// GetParams bindet und validiert Pfadparameter in T.
func GetParams[T any](c *fiber.Ctx, v *validator.Validate) (T, *app_errors.AppError) {
	var param T
	if err := c.ParamsParser(&param); err != nil {
		return param, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidParam, "request.invalid_param", err)
	}

	if err := v.Struct(param); err != nil {
		return param, app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return param, nil
}

// GetBody bindet und validiert den JSON-Body in T.
func GetBody[T any](c *fiber.Ctx, v *validator.Validate) (*T, *app_errors.AppError) {
	if len(c.Body()) == 0 {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.body_empty", nil)
	}

	req := new(T)
	if err := c.BodyParser(req); err != nil {
		return nil, app_errors.NewAppError(fiber.StatusBadRequest, app_errors.ErrInvalidBody, "request.invalid_body", err)
	}

	if err := v.Struct(req); err != nil {
		return nil, app_errors.NewValidationError(app_errors.ParseValidationError(err))
	}
	return req, nil
}

// GetOptionalBody wie GetBody, ein leerer Body ergibt jedoch ein leeres T.
func GetOptionalBody[T any](c *fiber.Ctx, v *validator.Validate) (*T, *app_errors.AppError) {
	if len(c.Body()) == 0 {
		return new(T), nil
	}
	return GetBody[T](c, v)
}

// WriteResponse schreibt eine lokalisierte Erfolgsantwort.
func WriteResponse[T any](c *fiber.Ctx, i18n internal_i18n.Service, status int, messageKey string, data T, details ...any) error {
	lang, _ := c.Locals("lang").(string)
	webResp := CreateResponse(i18n.T(lang, messageKey, nil), data, GetRequestID(c), details...)
	if err := c.Status(status).JSON(webResp); err != nil {
		return app_errors.NewAppError(fiber.StatusInternalServerError, app_errors.ErrInternal, "response.write_failed", err)
	}
	return nil
}

// NormalizeWorkLogStatus macht aus "final review" oder "final_review" den Status FINAL_REVIEW.
func NormalizeWorkLogStatus(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, " ", "_")
	return strings.ToUpper(s)
}
