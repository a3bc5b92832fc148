package handlers

import (
	"daily-planner/app"
	"daily-planner/models"

	"github.com/gofiber/fiber/v2"
)

// GetTasks lists every task, newest first
func GetTasks(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tasks, err := a.Tasks.List(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch tasks", err)
		}

		return success(c, fiber.Map{"tasks": tasks})
	}
}

// CreateTask creates a task with the default status and priority filled in
func CreateTask(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateTaskRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		task, err := a.Tasks.Create(c.UserContext(), req.NewTask())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create task", err)
		}

		return created(c, fiber.Map{"task": task})
	}
}

// UpdateTask applies a partial update. An unknown id is not an error.
func UpdateTask(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return badRequest(c, "Invalid task ID")
		}

		var req models.UpdateTaskRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		patch := req.Patch()
		if patch.IsEmpty() {
			return badRequest(c, "No fields to update")
		}

		if err := a.Tasks.Update(c.UserContext(), id, patch); err != nil {
			return serverErrorWithDetails(c, "Failed to update task", err)
		}

		return success(c, fiber.Map{"message": "Task updated successfully"})
	}
}

// DeleteTask removes a task. An unknown id is not an error.
func DeleteTask(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return badRequest(c, "Invalid task ID")
		}

		if err := a.Tasks.Delete(c.UserContext(), id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete task", err)
		}

		return success(c, fiber.Map{"message": "Task deleted successfully"})
	}
}
