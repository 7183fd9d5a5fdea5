package routers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// HealthRouter registriert Health- und Readiness-Endpoints.
//   - GET /healthz: JSON-Status, immer 200
//   - GET /livez:   Liveness als Text
//   - GET /readyz:  pingt Redis (Queue, Locks) und Postgres, 503 wenn eins fehlt
func HealthRouter(app fiber.Router, db *pgxpool.Pool, redis *redis.Client) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "Health-OK",
			"message": "Wartungsdienst lebt.",
		})
	})

	app.Get("/livez", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).SendString("Lebt.")
	})

	app.Get("/readyz", func(c *fiber.Ctx) error {
		if err := redis.Ping(c.Context()).Err(); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "Fehlversuch",
				"error":  "Redis ist nicht bereit.",
			})
		}

		if err := db.Ping(c.Context()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "Fehlversuch",
				"error":  "Datenbank ist nicht bereit.",
			})
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "Bereit",
			"message": "Datenbank, Redis und Dienst sind einsatzbereit.",
		})
	})
}
