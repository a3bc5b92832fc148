package rest

import (
	"context"
	"daily-planner/models"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "service-key"

// fakeRecordService is an in-memory stand-in for the PostgREST tasks collection
type fakeRecordService struct {
	t      *testing.T
	mu     sync.Mutex
	nextID int64
	tasks  map[int64]map[string]interface{}
	fail   bool
}

func newFakeRecordService(t *testing.T) *fakeRecordService {
	return &fakeRecordService{t: t, nextID: 1, tasks: map[int64]map[string]interface{}{}}
}

func (f *fakeRecordService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	assert.Equal(f.t, testKey, r.Header.Get("apikey"))
	assert.Equal(f.t, "Bearer "+testKey, r.Header.Get("Authorization"))

	if f.fail {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"code":"22P02","message":"invalid input syntax","details":null,"hint":null}`))
		return
	}

	if r.URL.Path != "/rest/v1/tasks" {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"code":"PGRST205","message":"Could not find the table"}`))
		return
	}

	var id int64
	if filter := r.URL.Query().Get("id"); filter != "" {
		parsed, err := strconv.ParseInt(strings.TrimPrefix(filter, "eq."), 10, 64)
		require.NoError(f.t, err)
		id = parsed
	}

	switch r.Method {
	case http.MethodGet:
		assert.Equal(f.t, "id.desc", r.URL.Query().Get("order"))
		ids := make([]int64, 0, len(f.tasks))
		for k := range f.tasks {
			ids = append(ids, k)
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] > ids[j] })
		rows := make([]map[string]interface{}, 0, len(ids))
		for _, k := range ids {
			rows = append(rows, f.tasks[k])
		}
		json.NewEncoder(w).Encode(rows)

	case http.MethodPost:
		assert.Equal(f.t, "return=representation", r.Header.Get("Prefer"))
		var body []map[string]interface{}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&body))
		created := make([]map[string]interface{}, 0, len(body))
		for _, row := range body {
			_, hasID := row["id"]
			assert.False(f.t, hasID, "insert must not carry an id")
			row["id"] = f.nextID
			row["created_at"] = "2025-10-18T09:00:00.000000+00:00"
			f.tasks[f.nextID] = row
			f.nextID++
			created = append(created, row)
		}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(created)

	case http.MethodPatch:
		var patch map[string]interface{}
		require.NoError(f.t, json.NewDecoder(r.Body).Decode(&patch))
		if row, ok := f.tasks[id]; ok {
			for k, v := range patch {
				row[k] = v
			}
		}
		w.WriteHeader(http.StatusNoContent)

	case http.MethodDelete:
		delete(f.tasks, id)
		w.WriteHeader(http.StatusNoContent)
	}
}

func setupTestClient(t *testing.T) (*Client, *fakeRecordService) {
	t.Helper()

	fake := newFakeRecordService(t)
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	return NewClient(context.Background(), server.URL+"/", testKey), fake
}

func TestClient_TaskLifecycle(t *testing.T) {
	client, _ := setupTestClient(t)
	ctx := context.Background()

	tasks, err := client.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, tasks)

	rows, err := client.InsertTask(ctx, models.TaskInsert{
		Text:     "buy milk",
		Status:   models.TaskStatusPending,
		Priority: models.TaskPriorityMedium,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	first := rows[0]
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, "2025-10-18T09:00:00.000000+00:00", first.CreatedAt)
	assert.Nil(t, first.DueDate)

	rows, err = client.InsertTask(ctx, models.TaskInsert{Text: "x", Status: models.TaskStatusPending, Priority: models.TaskPriorityHigh})
	require.NoError(t, err)
	second := rows[0]

	completed := models.TaskStatusCompleted
	require.NoError(t, client.UpdateTask(ctx, first.ID, models.TaskPatch{Status: &completed}))

	tasks, err = client.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, second.ID, tasks[0].ID)
	assert.Equal(t, models.TaskStatusCompleted, tasks[1].Status)
	assert.Equal(t, "buy milk", tasks[1].Text)
	assert.Equal(t, models.TaskPriorityMedium, tasks[1].Priority)

	// Missing ids are not reported by the service
	assert.NoError(t, client.UpdateTask(ctx, 404, models.TaskPatch{Status: &completed}))
	assert.NoError(t, client.DeleteTask(ctx, 404))

	require.NoError(t, client.DeleteTask(ctx, first.ID))
	tasks, err = client.ListTasks(ctx)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, second.ID, tasks[0].ID)
}

func TestClient_APIErrorReturnedUnchanged(t *testing.T) {
	client, fake := setupTestClient(t)
	fake.fail = true

	_, err := client.ListTasks(context.Background())
	require.Error(t, err)

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "22P02", apiErr.Code)
	assert.Equal(t, "invalid input syntax", apiErr.Message)
	assert.Contains(t, apiErr.Error(), "22P02")
}

func TestClient_UnknownCollection(t *testing.T) {
	client, _ := setupTestClient(t)

	_, err := client.ListNotes(context.Background())

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
}

func TestParseAPIError_PlainBody(t *testing.T) {
	apiErr := parseAPIError(http.StatusBadGateway, []byte("upstream down\n"))
	assert.Equal(t, "upstream down", apiErr.Message)

	apiErr = parseAPIError(http.StatusServiceUnavailable, nil)
	assert.Equal(t, "Service Unavailable", apiErr.Message)
}

func TestClient_PatchOnlySendsSuppliedFields(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "eq.12", r.URL.Query().Get("id"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(context.Background(), server.URL, testKey)
	color := "green"
	require.NoError(t, client.UpdateNote(context.Background(), 12, models.NotePatch{Color: &color}))

	assert.Equal(t, map[string]interface{}{"color": "green"}, got)
}

func TestClient_EmptyPatchSendsNothing(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(context.Background(), server.URL, testKey)

	require.NoError(t, client.UpdateTask(context.Background(), 3, models.TaskPatch{}))
	require.NoError(t, client.UpdateNote(context.Background(), 3, models.NotePatch{}))
	assert.Zero(t, requests)
}
