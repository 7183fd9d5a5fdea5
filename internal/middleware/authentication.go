package middleware

import (
	"strings"

	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/dtos"
	app_errors "github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/errors"
	"github.com/SP25-BMCMS/BMCMS-BE-sub002/internal/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RevokedTokenKey ist der Redis-Schlüssel, unter dem ein widerrufenes Token (jti) liegt.
func RevokedTokenKey(jti string) string {
	return "token:revoked:" + jti
}

// AuthMiddleware validiert das Authorization-Header ("Bearer <token>") und verifiziert das PASETO-Token.
// Bei Erfolg setzt es die Context-Lokale "actor_id", "role" und "jti".
func AuthMiddleware(pasetoMaker *utils.PasetoMaker, redis *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return unauthorized(c, "Authorization header fehlt")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(c, "Token-Format ist falsch. Nutze Bearer <token>.")
		}

		// Verifizieren via PASETO
		payload, err := pasetoMaker.VerifyToken(parts[1])
		if err != nil {
			log.Err(err).Msg("Verification error")
			return unauthorized(c, "Token ist ungültig oder abgelaufen (1)") // 1 => Token kann nicht verifiziert werden
		}

		// Überprüft, ob das Token widerrufen wurde. Ein Redis-Ausfall sperrt niemanden aus.
		if payload.JTI != "" {
			revoked, err := redis.Exists(c.Context(), RevokedTokenKey(payload.JTI)).Result()
			if err != nil {
				log.Warn().Err(err).Msg("Revocation check failed")
			} else if revoked > 0 {
				return unauthorized(c, "Token ist ungültig oder abgelaufen (2)") // 2 => Token wurde widerrufen
			}
		}

		// Speichern zu kontext, sodass Handler es nutzen kann
		c.Locals("actor_id", payload.ActorID)
		c.Locals("role", string(payload.Role))
		c.Locals("jti", payload.JTI)

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"status": "error",
		"error": dtos.ErrorResponse{
			Code:    fiber.StatusUnauthorized,
			Type:    app_errors.ErrUnauthorized,
			Message: message,
		},
	})
}
