package handlers_test

import (
	"bytes"
	"daily-planner/app"
	"daily-planner/config"
	"daily-planner/config/setup"
	"daily-planner/kv"
	"daily-planner/localstore"
	"daily-planner/models"
	"daily-planner/services"
	"daily-planner/sync"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	fiber  *fiber.App
	mirror *localstore.Store
}

// setupTestApp wires the HTTP layer over an in-memory local backend
func setupTestApp(t *testing.T, withSync bool) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{Env: "test", StorageBackend: config.BackendLocal}
	backend := localstore.NewBackend(localstore.New(kv.NewMemoryArea()))

	env := &testEnv{}
	var worker *sync.Worker
	if withSync {
		env.mirror = localstore.New(kv.NewMemoryArea())
		worker = sync.NewWorker(backend, env.mirror, time.Hour, logger)
	}

	application := app.New(cfg, services.NewTaskService(backend, logger), services.NewNoteService(backend, logger), worker, logger)

	env.fiber = setup.NewFiberApp(cfg, logger)
	setup.RegisterRoutes(env.fiber, application)
	return env
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		if raw, ok := body.(string); ok {
			reader = bytes.NewBufferString(raw)
		} else {
			data, err := json.Marshal(body)
			require.NoError(t, err)
			reader = bytes.NewBuffer(data)
		}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.fiber.Test(req, -1)
	require.NoError(t, err)

	var out map[string]json.RawMessage
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		require.NoError(t, json.Unmarshal(data, &out), string(data))
	}
	return resp, out
}

func TestHealth(t *testing.T) {
	env := setupTestApp(t, false)

	resp, body := env.do(t, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `"local"`, string(body["backend"]))
}

func TestTasks_CRUD(t *testing.T) {
	env := setupTestApp(t, false)

	t.Run("Empty list", func(t *testing.T) {
		resp, body := env.do(t, "GET", "/api/tasks", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `[]`, string(body["tasks"]))
	})

	var createdTask models.Task
	t.Run("Create applies defaults", func(t *testing.T) {
		resp, body := env.do(t, "POST", "/api/tasks", fiber.Map{"text": "buy milk"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		require.NoError(t, json.Unmarshal(body["task"], &createdTask))

		assert.Equal(t, int64(1), createdTask.ID)
		assert.Equal(t, models.TaskStatusPending, createdTask.Status)
		assert.Equal(t, models.TaskPriorityMedium, createdTask.Priority)
		assert.NotEmpty(t, createdTask.CreatedAt)
	})

	t.Run("Create keeps given priority", func(t *testing.T) {
		resp, body := env.do(t, "POST", "/api/tasks", fiber.Map{"text": "x", "priority": "high", "due_date": "2025-10-17"})
		require.Equal(t, http.StatusCreated, resp.StatusCode)

		var task models.Task
		require.NoError(t, json.Unmarshal(body["task"], &task))
		assert.Equal(t, models.TaskPriorityHigh, task.Priority)
		require.NotNil(t, task.DueDate)
		assert.Equal(t, "2025-10-17", *task.DueDate)
	})

	t.Run("Update changes only status", func(t *testing.T) {
		resp, _ := env.do(t, "PATCH", "/api/tasks/1", fiber.Map{"status": "completed"})
		require.Equal(t, http.StatusOK, resp.StatusCode)

		_, body := env.do(t, "GET", "/api/tasks", nil)
		var tasks []models.Task
		require.NoError(t, json.Unmarshal(body["tasks"], &tasks))
		require.Len(t, tasks, 2)

		// Newest first
		assert.Equal(t, int64(2), tasks[0].ID)
		assert.Equal(t, int64(1), tasks[1].ID)
		assert.Equal(t, models.TaskStatusCompleted, tasks[1].Status)
		assert.Equal(t, createdTask.Text, tasks[1].Text)
		assert.Equal(t, createdTask.Priority, tasks[1].Priority)
		assert.Equal(t, createdTask.CreatedAt, tasks[1].CreatedAt)
	})

	t.Run("Delete removes the task", func(t *testing.T) {
		resp, _ := env.do(t, "DELETE", "/api/tasks/1", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		_, body := env.do(t, "GET", "/api/tasks", nil)
		var tasks []models.Task
		require.NoError(t, json.Unmarshal(body["tasks"], &tasks))
		require.Len(t, tasks, 1)
		assert.Equal(t, int64(2), tasks[0].ID)
	})

	t.Run("Unknown id is not an error", func(t *testing.T) {
		resp, _ := env.do(t, "PATCH", "/api/tasks/999", fiber.Map{"text": "ghost"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = env.do(t, "DELETE", "/api/tasks/999", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})
}

func TestTasks_BadRequests(t *testing.T) {
	env := setupTestApp(t, false)

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		errMsg string
	}{
		{"Malformed body", "POST", "/api/tasks", "{not json", "Invalid request body"},
		{"Missing text", "POST", "/api/tasks", fiber.Map{"priority": "low"}, "Validation failed"},
		{"Unknown priority", "POST", "/api/tasks", fiber.Map{"text": "x", "priority": "urgent"}, "Validation failed"},
		{"Bad due date", "POST", "/api/tasks", fiber.Map{"text": "x", "due_date": "tomorrow"}, "Validation failed"},
		{"Non-numeric id", "PATCH", "/api/tasks/abc", fiber.Map{"text": "x"}, "Invalid task ID"},
		{"Unknown status", "PATCH", "/api/tasks/1", fiber.Map{"status": "done"}, "Validation failed"},
		{"Empty patch", "PATCH", "/api/tasks/1", fiber.Map{}, "No fields to update"},
		{"Null due date does not clear it", "PATCH", "/api/tasks/1", `{"due_date": null}`, "No fields to update"},
		{"Negative id", "DELETE", "/api/tasks/-4", nil, "Invalid task ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := env.do(t, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

			var msg string
			require.NoError(t, json.Unmarshal(body["error"], &msg))
			assert.Equal(t, tt.errMsg, msg)
		})
	}
}

func TestTasks_ValidationDetails(t *testing.T) {
	env := setupTestApp(t, false)

	_, body := env.do(t, "POST", "/api/tasks", fiber.Map{"priority": "urgent"})

	var details []map[string]string
	require.NoError(t, json.Unmarshal(body["details"], &details))
	require.Len(t, details, 2)
	assert.Equal(t, "text", details[0]["field"])
	assert.Equal(t, "priority", details[1]["field"])
}

func TestNotes_CRUD(t *testing.T) {
	env := setupTestApp(t, false)

	resp, body := env.do(t, "POST", "/api/notes", fiber.Map{"title": "Ideas", "content": "ship it", "color": "yellow"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var note models.Note
	require.NoError(t, json.Unmarshal(body["note"], &note))
	assert.Equal(t, int64(1), note.ID)
	assert.Equal(t, "Ideas", note.Title)

	resp, _ = env.do(t, "PATCH", "/api/notes/1", fiber.Map{"color": "blue"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = env.do(t, "GET", "/api/notes", nil)
	var notes []models.Note
	require.NoError(t, json.Unmarshal(body["notes"], &notes))
	require.Len(t, notes, 1)
	assert.Equal(t, models.Note{ID: 1, Title: "Ideas", Content: "ship it", Color: "blue"}, notes[0])

	resp, _ = env.do(t, "DELETE", "/api/notes/1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = env.do(t, "GET", "/api/notes", nil)
	assert.JSONEq(t, `[]`, string(body["notes"]))

	resp, _ = env.do(t, "POST", "/api/notes", fiber.Map{"content": "no title"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSync(t *testing.T) {
	t.Run("Not configured", func(t *testing.T) {
		env := setupTestApp(t, false)

		resp, _ := env.do(t, "POST", "/api/sync", nil)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})

	t.Run("Mirrors the snapshot", func(t *testing.T) {
		env := setupTestApp(t, true)

		env.do(t, "POST", "/api/tasks", fiber.Map{"text": "buy milk"})

		resp, body := env.do(t, "POST", "/api/sync", nil)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var result sync.Result
		require.NoError(t, json.Unmarshal(body["sync"], &result))
		assert.Equal(t, 1, result.Tasks)
		assert.True(t, result.Changed)

		tasks, err := env.mirror.Tasks(t.Context())
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		assert.Equal(t, "buy milk", tasks[0].Text)
	})
}
