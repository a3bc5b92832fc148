package storage

import (
	"context"
	"daily-planner/models"
)

// Collection names shared by every backend
const (
	CollectionTasks = "tasks"
	CollectionNotes = "notes"
)

// Backend is the interface for all storage backends.
// Each method maps to one verb against one collection: select all ordered by
// id descending, insert returning the inserted rows, update where id equals,
// delete where id equals. Update and delete report success when no record matches.
type Backend interface {
	// ==================== TASK OPERATIONS ====================

	ListTasks(ctx context.Context) ([]models.Task, error)
	InsertTask(ctx context.Context, task models.TaskInsert) ([]models.Task, error)
	UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) error
	DeleteTask(ctx context.Context, id int64) error

	// ==================== NOTE OPERATIONS ====================

	ListNotes(ctx context.Context) ([]models.Note, error)
	InsertNote(ctx context.Context, note models.Note) ([]models.Note, error)
	UpdateNote(ctx context.Context, id int64, patch models.NotePatch) error
	DeleteNote(ctx context.Context, id int64) error
}

