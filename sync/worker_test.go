package sync

import (
	"context"
	"daily-planner/kv"
	"daily-planner/localstore"
	"daily-planner/models"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

type countingArea struct {
	*kv.MemoryArea
	puts int
}

func (c *countingArea) Put(ctx context.Context, key string, value []byte) error {
	c.puts++
	return c.MemoryArea.Put(ctx, key, value)
}

type failingSource struct{}

func (failingSource) ListTasks(ctx context.Context) ([]models.Task, error) {
	return nil, errors.New("backend down")
}

func (failingSource) ListNotes(ctx context.Context) ([]models.Note, error) {
	return nil, nil
}

func setupWorker(t *testing.T) (*Worker, *localstore.Backend, *localstore.Store, *countingArea) {
	t.Helper()

	source := localstore.NewBackend(localstore.New(kv.NewMemoryArea()))
	mirrorArea := &countingArea{MemoryArea: kv.NewMemoryArea()}
	mirror := localstore.New(mirrorArea)

	return NewWorker(source, mirror, time.Hour, nil), source, mirror, mirrorArea
}

func TestWorker_SyncNowMirrorsSnapshot(t *testing.T) {
	worker, source, mirror, area := setupWorker(t)
	ctx := context.Background()

	_, err := source.InsertTask(ctx, models.TaskInsert{Text: "buy milk", Status: models.TaskStatusPending, Priority: models.TaskPriorityMedium})
	require.NoError(t, err)
	_, err = source.InsertNote(ctx, models.Note{Title: "Ideas", Color: "yellow"})
	require.NoError(t, err)

	result, err := worker.SyncNow(ctx)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, 1, result.Tasks)
	assert.Equal(t, 1, result.Notes)

	tasks, err := mirror.Tasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "buy milk", tasks[0].Text)
	assert.False(t, tasks[0].Completed)

	notes, err := mirror.Notes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ideas", notes[0].Title)
	assert.Equal(t, 2, area.puts)

	t.Run("Unchanged snapshot is not rewritten", func(t *testing.T) {
		result, err := worker.SyncNow(ctx)
		require.NoError(t, err)
		assert.False(t, result.Changed)
		assert.Equal(t, 2, area.puts)
	})

	t.Run("Only the changed aggregate is rewritten", func(t *testing.T) {
		completed := models.TaskStatusCompleted
		require.NoError(t, source.UpdateTask(ctx, 1, models.TaskPatch{Status: &completed}))

		result, err := worker.SyncNow(ctx)
		require.NoError(t, err)
		assert.True(t, result.Changed)
		assert.Equal(t, 3, area.puts)

		tasks, err := mirror.Tasks(ctx)
		require.NoError(t, err)
		assert.True(t, tasks[0].Completed)
	})
}

func TestWorker_EmptySourceWritesEmptyAggregates(t *testing.T) {
	worker, _, _, area := setupWorker(t)

	result, err := worker.SyncNow(context.Background())
	require.NoError(t, err)
	assert.True(t, result.Changed)

	raw, err := area.Get(context.Background(), localstore.TasksKey)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(raw))
}

func TestWorker_SourceErrorIsReturned(t *testing.T) {
	mirrorArea := kv.NewMemoryArea()
	worker := NewWorker(failingSource{}, localstore.New(mirrorArea), time.Hour, nil)

	_, err := worker.SyncNow(context.Background())
	assert.EqualError(t, err, "backend down")

	raw, err := mirrorArea.Get(context.Background(), localstore.TasksKey)
	require.NoError(t, err)
	assert.Nil(t, raw, "mirror must be untouched on failure")
}

func TestWorker_StartStop(t *testing.T) {
	worker, _, _, area := setupWorker(t)

	worker.Start()
	worker.Start() // second start is a no-op

	// The first run happens immediately on start
	assert.Eventually(t, func() bool {
		raw, err := area.MemoryArea.Get(context.Background(), localstore.NotesKey)
		return err == nil && raw != nil
	}, time.Second, 10*time.Millisecond)

	worker.Stop()
	worker.Stop() // second stop is a no-op

	// Restart after stop
	worker.Start()
	worker.Stop()
	assert.Equal(t, time.Hour, worker.Interval())
}

type fakeReporter struct {
	token *oauth2.Token
}

func (f *fakeReporter) GetCurrentToken() (*oauth2.Token, error) {
	return f.token, nil
}

func TestWorker_PersistsRefreshedToken(t *testing.T) {
	worker, _, _, _ := setupWorker(t)

	original := &oauth2.Token{AccessToken: "old", Expiry: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	reporter := &fakeReporter{token: original}

	var saved []*oauth2.Token
	worker.WatchToken(reporter, original, func(tok *oauth2.Token) error {
		saved = append(saved, tok)
		return nil
	})

	_, err := worker.SyncNow(context.Background())
	require.NoError(t, err)
	assert.Empty(t, saved)

	reporter.token = &oauth2.Token{AccessToken: "new", Expiry: original.Expiry.Add(time.Hour)}
	_, err = worker.SyncNow(context.Background())
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "new", saved[0].AccessToken)

	_, err = worker.SyncNow(context.Background())
	require.NoError(t, err)
	assert.Len(t, saved, 1)
}
