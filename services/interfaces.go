package services

import (
	"context"
	"daily-planner/models"
)

// TaskRepository defines the backend verbs needed by TaskService
type TaskRepository interface {
	ListTasks(ctx context.Context) ([]models.Task, error)
	InsertTask(ctx context.Context, task models.TaskInsert) ([]models.Task, error)
	UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) error
	DeleteTask(ctx context.Context, id int64) error
}

// NoteRepository defines the backend verbs needed by NoteService
type NoteRepository interface {
	ListNotes(ctx context.Context) ([]models.Note, error)
	InsertNote(ctx context.Context, note models.Note) ([]models.Note, error)
	UpdateNote(ctx context.Context, id int64, patch models.NotePatch) error
	DeleteNote(ctx context.Context, id int64) error
}
