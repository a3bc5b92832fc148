package database

import (
	"context"
	"daily-planner/models"
	"daily-planner/storage"
	"database/sql"
	"strings"

	"github.com/Masterminds/squirrel"
)

// ==================== TASK OPERATIONS ====================

var taskColumns = []string{"id", "text", "status", "created_at", "due_date", "priority"}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTask(row rowScanner) (models.Task, error) {
	var task models.Task
	var dueDate sql.NullString

	if err := row.Scan(&task.ID, &task.Text, &task.Status, &task.CreatedAt, &dueDate, &task.Priority); err != nil {
		return models.Task{}, err
	}
	if dueDate.Valid {
		task.DueDate = &dueDate.String
	}
	return task, nil
}

func (r *Repository) queryTasks(ctx context.Context, query string, args []interface{}) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	// Initialize with empty slice to avoid returning nil
	tasks := make([]models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// ListTasks returns all tasks, highest id first
func (r *Repository) ListTasks(ctx context.Context) ([]models.Task, error) {
	query, args, err := r.sq.Select(taskColumns...).
		From(storage.CollectionTasks).
		OrderBy("id DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryTasks(ctx, query, args)
}

// InsertTask inserts a task and returns the inserted row
func (r *Repository) InsertTask(ctx context.Context, task models.TaskInsert) ([]models.Task, error) {
	query, args, err := r.sq.Insert(storage.CollectionTasks).
		Columns("text", "status", "due_date", "priority").
		Values(task.Text, string(task.Status), nullable(task.DueDate), string(task.Priority)).
		Suffix("RETURNING " + strings.Join(taskColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, err
	}

	return r.queryTasks(ctx, query, args)
}

// UpdateTask writes the non-nil patch fields. Missing ids are not an error.
func (r *Repository) UpdateTask(ctx context.Context, id int64, patch models.TaskPatch) error {
	if patch.IsEmpty() {
		return nil
	}

	set := map[string]interface{}{}
	if patch.Text != nil {
		set["text"] = *patch.Text
	}
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.DueDate != nil {
		set["due_date"] = *patch.DueDate
	}
	if patch.Priority != nil {
		set["priority"] = string(*patch.Priority)
	}

	query, args, err := r.sq.Update(storage.CollectionTasks).
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}

// DeleteTask removes the task with the given id
func (r *Repository) DeleteTask(ctx context.Context, id int64) error {
	query, args, err := r.sq.Delete(storage.CollectionTasks).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, query, args...)
	return err
}
