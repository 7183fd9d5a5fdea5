package middleware

import (
	"slices"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/entity"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/gofiber/fiber/v2"
)

// RequireRoles prüft, ob die im Context unter "role" gespeicherte Rolle einer der erlaubten Rollen (allowedRoles) entspricht.
func RequireRoles(allowedRoles ...entity.ActorRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role == "" {
			// Ist keine Rolle vorhanden, wird ein 401 Unauthorized zurückgegeben. Bei fehlender Berechtigung erfolgt ein 403 Forbidden.
			return unauthorized(c, "Kein Zugriff, keine Rolle gefunden.")
		}

		if slices.Contains(allowedRoles, entity.ActorRole(role)) {
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"status": "error",
			"error": dtos.ErrorResponse{
				Code:    fiber.StatusForbidden,
				Type:    app_errors.ErrForbidden,
				Message: "Sie haben hier nicht zu melden",
			},
		})
	}
}
