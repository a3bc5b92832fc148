package handlers

import (
	"daily-planner/app"

	"github.com/gofiber/fiber/v2"
)

// TriggerSync mirrors the current snapshot immediately
func TriggerSync(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if a.SyncWorker == nil {
			return serviceUnavailable(c, "Sync is not configured")
		}

		result, err := a.SyncWorker.SyncNow(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Sync failed", err)
		}

		return success(c, fiber.Map{
			"sync":     result,
			"interval": a.SyncWorker.Interval().String(),
		})
	}
}
