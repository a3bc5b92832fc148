package localstore

import (
	"context"
	"daily-planner/models"
	"daily-planner/storage"
	"sort"
	"sync"
	"time"
)

// Backend adapts the bulk-save Store to storage.Backend.
// Every write loads the aggregate, changes it in memory and saves it back.
// The mutex serializes this within one process only; two processes sharing
// an area can still overwrite each other's changes.
type Backend struct {
	store *Store
	mu    sync.Mutex
	now   func() time.Time
}

var _ storage.Backend = (*Backend)(nil)

func NewBackend(store *Store) *Backend {
	return &Backend{
		store: store,
		now:   time.Now,
	}
}

func (b *Backend) timestamp() string {
	return b.now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

// nextID reserves the id after the larger of the recorded high-water mark and
// the highest stored id, so ids of deleted records are never handed out again.
// Aggregates saved without a mark (older files, other clients) start from maxID.
func (b *Backend) nextID(ctx context.Context, seqKey string, maxID int64) (int64, error) {
	seq, err := b.store.Seq(ctx, seqKey)
	if err != nil {
		return 0, err
	}
	if maxID > seq {
		seq = maxID
	}
	seq++

	if err := b.store.SaveSeq(ctx, seqKey, seq); err != nil {
		return 0, err
	}
	return seq, nil
}

// ==================== TASK OPERATIONS ====================

func (b *Backend) ListTasks(ctx context.Context) ([]models.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored, err := b.store.Tasks(ctx)
	if err != nil {
		return nil, err
	}

	tasks := make([]models.Task, 0, len(stored))
	for _, lt := range stored {
		tasks = append(tasks, lt.Task())
	}
	sort.SliceStable(tasks, func(i, j int) bool { return tasks[i].ID > tasks[j].ID })
	return tasks, nil
}

func (b *Backend) InsertTask(ctx context.Context, in models.TaskInsert) ([]models.Task, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored, err := b.store.Tasks(ctx)
	if err != nil {
		return nil, err
	}

	var maxID int64
	for _, lt := range stored {
		if lt.ID > maxID {
			maxID = lt.ID
		}
	}
	id, err := b.nextID(ctx, TasksSeqKey, maxID)
	if err != nil {
		return nil, err
	}

	task := models.Task{
		ID:        id,
		Text:      in.Text,
		Status:    in.Status,
		CreatedAt: b.timestamp(),
		DueDate:   in.DueDate,
		Priority:  in.Priority,
	}

	stored = append(stored, models.LocalTaskFrom(task))
	if err := b.store.SaveTasks(ctx, stored); err != nil {
		return nil, err
	}
	return []models.Task{task}, nil
}

func (b *Backend) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	stored, err := b.store.Tasks(ctx)
	if err != nil {
		return err
	}

	for i, lt := range stored {
		if lt.ID == id {
			stored[i] = models.LocalTaskFrom(patch.Apply(lt.Task()))
			return b.store.SaveTasks(ctx, stored)
		}
	}
	return nil
}

func (b *Backend) DeleteTask(ctx context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	stored, err := b.store.Tasks(ctx)
	if err != nil {
		return err
	}

	kept := stored[:0]
	for _, lt := range stored {
		if lt.ID != id {
			kept = append(kept, lt)
		}
	}
	if len(kept) == len(stored) {
		return nil
	}
	return b.store.SaveTasks(ctx, kept)
}

// ==================== NOTE OPERATIONS ====================

func (b *Backend) ListNotes(ctx context.Context) ([]models.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	notes, err := b.store.Notes(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(notes, func(i, j int) bool { return notes[i].ID > notes[j].ID })
	return notes, nil
}

func (b *Backend) InsertNote(ctx context.Context, note models.Note) ([]models.Note, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	notes, err := b.store.Notes(ctx)
	if err != nil {
		return nil, err
	}

	var maxID int64
	for _, n := range notes {
		if n.ID > maxID {
			maxID = n.ID
		}
	}
	id, err := b.nextID(ctx, NotesSeqKey, maxID)
	if err != nil {
		return nil, err
	}
	note.ID = id

	if err := b.store.SaveNotes(ctx, append(notes, note)); err != nil {
		return nil, err
	}
	return []models.Note{note}, nil
}

func (b *Backend) UpdateNote(ctx context.Context, id int64, patch models.NotePatch) error {
	if patch.IsEmpty() {
		return nil
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	notes, err := b.store.Notes(ctx)
	if err != nil {
		return err
	}

	for i, n := range notes {
		if n.ID == id {
			notes[i] = patch.Apply(n)
			return b.store.SaveNotes(ctx, notes)
		}
	}
	return nil
}

func (b *Backend) DeleteNote(ctx context.Context, id int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	notes, err := b.store.Notes(ctx)
	if err != nil {
		return err
	}

	kept := notes[:0]
	for _, n := range notes {
		if n.ID != id {
			kept = append(kept, n)
		}
	}
	if len(kept) == len(notes) {
		return nil
	}
	return b.store.SaveNotes(ctx, kept)
}
