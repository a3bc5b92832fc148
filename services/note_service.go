package services

import (
	"context"
	"daily-planner/models"
	"daily-planner/storage"
	"log/slog"
)

// NoteService handles access to note records
type NoteService struct {
	repo   NoteRepository
	logger *slog.Logger
}

// NewNoteService creates a new note service
func NewNoteService(repo NoteRepository, logger *slog.Logger) *NoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteService{
		repo:   repo,
		logger: logger,
	}
}

// List returns every note, most recently created first
func (ns *NoteService) List(ctx context.Context) ([]models.Note, error) {
	notes, err := ns.repo.ListNotes(ctx)
	if err != nil {
		ns.logger.Debug("list failed", "collection", storage.CollectionNotes, "error", err)
		return nil, err
	}

	if notes == nil {
		notes = make([]models.Note, 0)
	}
	return notes, nil
}

// Create inserts a note and returns it with its assigned id
func (ns *NoteService) Create(ctx context.Context, note models.Note) (*models.Note, error) {
	// Ids are always assigned by the backend
	note.ID = 0

	rows, err := ns.repo.InsertNote(ctx, note)
	if err != nil {
		ns.logger.Debug("insert failed", "collection", storage.CollectionNotes, "error", err)
		return nil, err
	}
	if len(rows) == 0 {
		return nil, storage.ErrEmptyResult
	}

	created := rows[0]
	return &created, nil
}

// Update writes the supplied fields to the note with the given id
func (ns *NoteService) Update(ctx context.Context, id int64, patch models.NotePatch) error {
	if err := ns.repo.UpdateNote(ctx, id, patch); err != nil {
		ns.logger.Debug("update failed", "collection", storage.CollectionNotes, "id", id, "error", err)
		return err
	}
	return nil
}

// Delete removes the note with the given id
func (ns *NoteService) Delete(ctx context.Context, id int64) error {
	if err := ns.repo.DeleteNote(ctx, id); err != nil {
		ns.logger.Debug("delete failed", "collection", storage.CollectionNotes, "id", id, "error", err)
		return err
	}
	return nil
}
