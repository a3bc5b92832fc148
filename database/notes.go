package database

import (
	"context"
	"daily-planner/models"
	"daily-planner/storage"
	"strings"

	"github.com/Masterminds/squirrel"
)

// ==================== NOTE OPERATIONS ====================

var noteColumns = []string{"id", "title", "content", "color"}

func (r *Repository) queryNotes(ctx context.Context, query string, args []interface{}) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := make([]models.Note, 0)
	for rows.Next() {
		var note models.Note
		if err := rows.Scan(&note.ID, &note.Title, &note.Content, &note.Color); err != nil {
			return nil, err
		}
		notes = append(notes, note)
	}

	return notes, rows.Err()
}

func (r *Repository) ListNotes(ctx context.Context) ([]models.Note, error) {
	query, args, err := r.sq.Select(noteColumns...).
		From(storage.CollectionNotes).
		OrderBy("id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryNotes(ctx, query, args)
}

func (r *Repository) InsertNote(ctx context.Context, note models.Note) ([]models.Note, error) {
	query, args, err := r.sq.Insert(storage.CollectionNotes).
		Columns("title", "content", "color").
		Values(note.Title, note.Content, note.Color).
		Suffix("RETURNING " + strings.Join(noteColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryNotes(ctx, query, args)
}

func (r *Repository) UpdateNote(ctx context.Context, id int64, patch models.NotePatch) error {
	if patch.IsEmpty() {
		return nil
	}

	set := map[string]interface{}{}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Color != nil {
		set["color"] = *patch.Color
	}

	query, args, err := r.sq.Update(storage.CollectionNotes).
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

func (r *Repository) DeleteNote(ctx context.Context, id int64) error {
	query, args, err := r.sq.Delete(storage.CollectionNotes).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
