package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/arzan03/pointboard/internal/logging"
)

// RequestLogger writes one structured line per request. It expects the
// requestid middleware to run first.
func RequestLogger(log logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		rid, _ := c.Locals("requestid").(string)
		args := []any{
			"request_id", rid,
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start).String(),
		}
		if err != nil {
			log.Error(c.UserContext(), "request failed", append(args, "err", err)...)
			return err
		}
		log.Info(c.UserContext(), "request", args...)
		return nil
	}
}
