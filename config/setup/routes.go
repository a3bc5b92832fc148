package setup

import (
	"daily-planner/app"
	"daily-planner/handlers"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {
	fiberApp.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "backend": application.Config.StorageBackend})
	})

	api := fiberApp.Group("/api")

	api.Get("/tasks", handlers.GetTasks(application))
	api.Post("/tasks", handlers.CreateTask(application))
	api.Patch("/tasks/:id", handlers.UpdateTask(application))
	api.Delete("/tasks/:id", handlers.DeleteTask(application))

	api.Get("/notes", handlers.GetNotes(application))
	api.Post("/notes", handlers.CreateNote(application))
	api.Patch("/notes/:id", handlers.UpdateNote(application))
	api.Delete("/notes/:id", handlers.DeleteNote(application))

	// A manual sync lists the whole backend, so it gets a tighter limit
	api.Post("/sync", limiter.New(limiter.Config{
		Max:        6,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Sync rate limit exceeded",
			})
		},
	}), handlers.TriggerSync(application))
}
