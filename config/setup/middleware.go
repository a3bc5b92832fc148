package setup

import (
	"daily-planner/config"
	"daily-planner/middleware"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// ApplyMiddleware applies all global middleware to the Fiber app.
// The API carries no credentials, so CORS allows no auth headers or cookies.
func ApplyMiddleware(app *fiber.App, cfg *config.Config, logger *slog.Logger) {
	app.Use(
		recover.New(),
		middleware.StructuredLogger(logger),
		middleware.Security(),
		cors.New(cors.Config{
			AllowOrigins:  cfg.CORSOrigins,
			AllowMethods:  "GET,POST,PATCH,DELETE,OPTIONS",
			AllowHeaders:  "Origin,Content-Type,Accept," + fiber.HeaderXRequestID,
			ExposeHeaders: fiber.HeaderXRequestID,
			MaxAge:        86400,
		}),
		limiter.New(limiter.Config{
			Next: func(c *fiber.Ctx) bool {
				return c.Path() == "/health"
			},
			Max:        200,
			Expiration: time.Minute,
			LimitReached: func(c *fiber.Ctx) error {
				return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
					"error": "Rate limit exceeded",
				})
			},
		}),
	)
}
