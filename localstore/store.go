// Package localstore implements the local persistence variant: each record
// type is kept as one serialized array under a fixed key of a kv.Area and
// is always saved as a whole.
package localstore

import (
	"context"
	"daily-planner/kv"
	"daily-planner/models"
	"daily-planner/storage"
	"encoding/json"
)

// Fixed keys of the two aggregates
const (
	TasksKey = "tasks"
	NotesKey = "notes"
)

// Keys of the highest id ever assigned per collection
const (
	TasksSeqKey = "tasks_seq"
	NotesSeqKey = "notes_seq"
)

// Store reads and bulk-saves the task and note aggregates
type Store struct {
	area kv.Area
}

func New(area kv.Area) *Store {
	return &Store{area: area}
}

// Tasks returns the saved task sequence, or an empty one if nothing was saved yet
func (s *Store) Tasks(ctx context.Context) ([]models.LocalTask, error) {
	tasks := make([]models.LocalTask, 0)
	if err := s.load(ctx, TasksKey, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// SaveTasks overwrites the whole task aggregate
func (s *Store) SaveTasks(ctx context.Context, tasks []models.LocalTask) error {
	if tasks == nil {
		tasks = []models.LocalTask{}
	}
	return s.save(ctx, TasksKey, tasks)
}

// Notes returns the saved note sequence, or an empty one if nothing was saved yet
func (s *Store) Notes(ctx context.Context) ([]models.Note, error) {
	notes := make([]models.Note, 0)
	if err := s.load(ctx, NotesKey, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// SaveNotes overwrites the whole note aggregate
func (s *Store) SaveNotes(ctx context.Context, notes []models.Note) error {
	if notes == nil {
		notes = []models.Note{}
	}
	return s.save(ctx, NotesKey, notes)
}

// Seq returns the highest id assigned under key, or 0 if none was recorded
func (s *Store) Seq(ctx context.Context, key string) (int64, error) {
	var seq int64
	if err := s.load(ctx, key, &seq); err != nil {
		return 0, err
	}
	return seq, nil
}

func (s *Store) SaveSeq(ctx context.Context, key string, seq int64) error {
	return s.save(ctx, key, seq)
}

func (s *Store) load(ctx context.Context, key string, out interface{}) error {
	data, err := s.area.Get(ctx, key)
	if err != nil {
		return err
	}
	if data == nil {
		return nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &storage.ParseError{Key: key, Err: err}
	}
	return nil
}

func (s *Store) save(ctx context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.area.Put(ctx, key, data)
}
