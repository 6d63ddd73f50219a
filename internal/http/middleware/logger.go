package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"solidgo/internal/logging"
)

// RequestLogger logs each HTTP request through the application logger.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency_ms (as float)
//
// The middleware only decides what to record; where the record goes is
// whatever sinks the logger was built with.
func RequestLogger(log *logging.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Process request
		err := c.Next()

		// Collect fields after handler executed to capture final status
		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := c.Response().StatusCode()
		latency := float64(time.Since(start).Microseconds()) / 1000.0

		log.Info("request", map[string]any{
			"request_id": rid,
			"method":     c.Method(),
			"path":       c.Path(), // path segment only, no query string
			"status":     status,
			"latency_ms": latency,
		})

		return err
	}
}
