package middleware

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const maxRequestIDLength = 64

// RequestIDMiddleware übernimmt die X-Request-ID eines Aufrufers (z. B. des
// Gebäude-Gateways), sofern sie nicht zu lang ist, und erzeugt sonst eine
// neue "MNT-"-ID. Die ID landet in c.Locals und im Antwortheader.
func RequestIDMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		requestID := c.Get(fiber.HeaderXRequestID)
		if requestID == "" || len(requestID) > maxRequestIDLength {
			id, err := gonanoid.New()
			if err != nil {
				return fmt.Errorf("request id: %w", err)
			}
			requestID = "MNT-" + id
		}

		c.Locals("request_id", requestID)
		c.Set(fiber.HeaderXRequestID, requestID)

		return c.Next()
	}
}
