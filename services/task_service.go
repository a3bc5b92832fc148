package services

import (
	"context"
	"daily-planner/models"
	"daily-planner/storage"
	"log/slog"
)

// TaskService is the access point for task records.
// Backend errors are returned to the caller unchanged.
type TaskService struct {
	repo   TaskRepository
	logger *slog.Logger
}

// NewTaskService creates a new task service
func NewTaskService(repo TaskRepository, logger *slog.Logger) *TaskService {
	if logger == nil {
		logger = slog.Default()
	}
	return &TaskService{
		repo:   repo,
		logger: logger,
	}
}

// List returns every task, most recently created first
func (ts *TaskService) List(ctx context.Context) ([]models.Task, error) {
	tasks, err := ts.repo.ListTasks(ctx)
	if err != nil {
		ts.logger.Debug("list failed", "collection", storage.CollectionTasks, "error", err)
		return nil, err
	}

	if tasks == nil {
		tasks = make([]models.Task, 0)
	}
	return tasks, nil
}

// Create inserts a new pending task. Priority defaults to medium.
func (ts *TaskService) Create(ctx context.Context, in models.NewTask) (*models.Task, error) {
	priority := in.Priority
	if priority == "" {
		priority = models.TaskPriorityMedium
	}

	rows, err := ts.repo.InsertTask(ctx, models.TaskInsert{
		Text:     in.Text,
		Status:   models.TaskStatusPending,
		DueDate:  in.DueDate,
		Priority: priority,
	})
	if err != nil {
		ts.logger.Debug("insert failed", "collection", storage.CollectionTasks, "error", err)
		return nil, err
	}
	if len(rows) == 0 {
		return nil, storage.ErrEmptyResult
	}

	task := rows[0]
	return &task, nil
}

// Update writes the supplied fields to the task with the given id
func (ts *TaskService) Update(ctx context.Context, id int64, patch models.TaskPatch) error {
	if err := ts.repo.UpdateTask(ctx, id, patch); err != nil {
		ts.logger.Debug("update failed", "collection", storage.CollectionTasks, "id", id, "error", err)
		return err
	}
	return nil
}

// Delete removes the task with the given id
func (ts *TaskService) Delete(ctx context.Context, id int64) error {
	if err := ts.repo.DeleteTask(ctx, id); err != nil {
		ts.logger.Debug("delete failed", "collection", storage.CollectionTasks, "id", id, "error", err)
		return err
	}
	return nil
}
