package rest

import (
	"context"
	"daily-planner/models"
	"daily-planner/storage"
	"net/http"
	"net/url"
)

var _ storage.Backend = (*Client)(nil)

var listQuery = url.Values{
	"select": []string{"*"},
	"order":  []string{"id.desc"},
}

// ==================== TASK OPERATIONS ====================

func (c *Client) ListTasks(ctx context.Context) ([]models.Task, error) {
	var tasks []models.Task
	if err := c.do(ctx, http.MethodGet, c.collectionURL(storage.CollectionTasks, listQuery), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) InsertTask(ctx context.Context, task models.TaskInsert) ([]models.Task, error) {
	var rows []models.Task
	err := c.do(ctx, http.MethodPost, c.collectionURL(storage.CollectionTasks, nil), []models.TaskInsert{task}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) error {
	if patch.IsEmpty() {
		return nil
	}
	return c.do(ctx, http.MethodPatch, c.collectionURL(storage.CollectionTasks, idFilter(id)), patch, nil)
}

func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.collectionURL(storage.CollectionTasks, idFilter(id)), nil, nil)
}

// ==================== NOTE OPERATIONS ====================

func (c *Client) ListNotes(ctx context.Context) ([]models.Note, error) {
	var notes []models.Note
	if err := c.do(ctx, http.MethodGet, c.collectionURL(storage.CollectionNotes, listQuery), nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *Client) InsertNote(ctx context.Context, note models.Note) ([]models.Note, error) {
	var rows []models.Note
	err := c.do(ctx, http.MethodPost, c.collectionURL(storage.CollectionNotes, nil), []models.Note{note}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (c *Client) UpdateNote(ctx context.Context, id int64, patch models.NotePatch) error {
	if patch.IsEmpty() {
		return nil
	}
	return c.do(ctx, http.MethodPatch, c.collectionURL(storage.CollectionNotes, idFilter(id)), patch, nil)
}

func (c *Client) DeleteNote(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, c.collectionURL(storage.CollectionNotes, idFilter(id)), nil, nil)
}
