package models

// LocalTask is the task shape kept by the local persistence variant.
// Completed replaces Status and Priority; both are still written when known so
// the per-record adapter can read them back, and are optional on load.
type LocalTask struct {
	ID        int64        `json:"id"`
	Text      string       `json:"text"`
	Completed bool         `json:"completed"`
	CreatedAt string       `json:"created_at"`
	DueDate   *string      `json:"due_date,omitempty"`
	Status    TaskStatus   `json:"status,omitempty"`
	Priority  TaskPriority `json:"priority,omitempty"`
}

// Task converts to the full task shape. A missing status is derived from the
// completed flag, a status that contradicts the flag gives way to it, and a
// missing priority defaults to medium.
func (lt LocalTask) Task() Task {
	status := lt.Status
	switch {
	case status == "" && lt.Completed:
		status = TaskStatusCompleted
	case status == "":
		status = TaskStatusPending
	// The completed flag is authoritative when a bulk save changed only it
	case lt.Completed && status != TaskStatusCompleted:
		status = TaskStatusCompleted
	case !lt.Completed && status == TaskStatusCompleted:
		status = TaskStatusPending
	}
	priority := lt.Priority
	if priority == "" {
		priority = TaskPriorityMedium
	}

	return Task{
		ID:        lt.ID,
		Text:      lt.Text,
		Status:    status,
		CreatedAt: lt.CreatedAt,
		DueDate:   lt.DueDate,
		Priority:  priority,
	}
}

func LocalTaskFrom(t Task) LocalTask {
	return LocalTask{
		ID:        t.ID,
		Text:      t.Text,
		Completed: t.Status == TaskStatusCompleted,
		CreatedAt: t.CreatedAt,
		DueDate:   t.DueDate,
		Status:    t.Status,
		Priority:  t.Priority,
	}
}
