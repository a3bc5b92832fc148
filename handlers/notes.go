package handlers

import (
	"daily-planner/app"
	"daily-planner/models"

	"github.com/gofiber/fiber/v2"
)

func GetNotes(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		notes, err := a.Notes.List(c.UserContext())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to fetch notes", err)
		}

		return success(c, fiber.Map{"notes": notes})
	}
}

func CreateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req models.CreateNoteRequest
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}

		if err := a.Validator.Validate(&req); err != nil {
			return validationError(c, err)
		}

		note, err := a.Notes.Create(c.UserContext(), req.Note())
		if err != nil {
			return serverErrorWithDetails(c, "Failed to create note", err)
		}

		return created(c, fiber.Map{"note": note})
	}
}

func UpdateNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return badRequest(c, "Invalid note ID")
		}

		var req models.UpdateNoteRequest
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

		if err := a.Notes.Update(c.UserContext(), id, patch); err != nil {
			return serverErrorWithDetails(c, "Failed to update note", err)
		}

		return success(c, fiber.Map{"message": "Note updated successfully"})
	}
}

func DeleteNote(a *app.App) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return badRequest(c, "Invalid note ID")
		}

		if err := a.Notes.Delete(c.UserContext(), id); err != nil {
			return serverErrorWithDetails(c, "Failed to delete note", err)
		}

		return success(c, fiber.Map{"message": "Note deleted successfully"})
	}
}
