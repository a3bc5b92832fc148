package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// StructuredLogger tags each request with an id and logs it at a status-based level.
// A well-formed X-Request-ID from the caller is kept so it can be correlated upstream.
// Successful health probes are logged at debug.
func StructuredLogger(logger *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(fiber.HeaderXRequestID)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}

		c.Locals("requestID", requestID)
		c.Set(fiber.HeaderXRequestID, requestID)

		err := c.Next()

		status := c.Response().StatusCode()

		logAttrs := []slog.Attr{
			slog.String("request_id", requestID),
			slog.String("method", c.Method()),
			slog.String("path", c.Path()),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
			slog.Int("bytes_out", len(c.Response().Body())),
		}

		if route := c.Route(); route != nil && route.Path != c.Path() {
			logAttrs = append(logAttrs, slog.String("route", route.Path))
		}

		level, msg := slog.LevelInfo, "request completed"
		switch {
		case err != nil:
			logAttrs = append(logAttrs, slog.String("error", err.Error()))
			level, msg = slog.LevelError, "request error"
		case status >= 500:
			level, msg = slog.LevelError, "server error"
		case status >= 400:
			level, msg = slog.LevelWarn, "client error"
		case c.Path() == "/health":
			level = slog.LevelDebug
		}

		logger.LogAttrs(c.Context(), level, msg, logAttrs...)
		return err
	}
}
