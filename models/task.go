package models

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "pending"
	TaskStatusInProgress TaskStatus = "in-progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	TaskPriorityHigh   TaskPriority = "high"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityLow    TaskPriority = "low"
)

// Task is a record of the "tasks" collection.
// ID and CreatedAt are assigned by the storage layer.
type Task struct {
	ID        int64        `json:"id"`
	Text      string       `json:"text"`
	Status    TaskStatus   `json:"status"`
	CreatedAt string       `json:"created_at"`
	DueDate   *string      `json:"due_date,omitempty"`
	Priority  TaskPriority `json:"priority"`
}

// TaskInsert is the row submitted on insert. It carries no id or creation
// timestamp so the backend assigns both.
type TaskInsert struct {
	Text     string       `json:"text"`
	Status   TaskStatus   `json:"status"`
	DueDate  *string      `json:"due_date,omitempty"`
	Priority TaskPriority `json:"priority"`
}

// TaskPatch holds the fields of a partial update. Nil fields are left untouched.
type TaskPatch struct {
	Text     *string       `json:"text,omitempty"`
	Status   *TaskStatus   `json:"status,omitempty"`
	DueDate  *string       `json:"due_date,omitempty"`
	Priority *TaskPriority `json:"priority,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p TaskPatch) IsEmpty() bool {
	return p.Text == nil && p.Status == nil && p.DueDate == nil && p.Priority == nil
}

// Apply returns a copy of t with the patch fields written over it.
func (p TaskPatch) Apply(t Task) Task {
	if p.Text != nil {
		t.Text = *p.Text
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	return t
}

type CreateTaskRequest struct {
	Text     string       `json:"text" validate:"required,max=2000"`
	DueDate  *string      `json:"due_date,omitempty" validate:"omitempty,dateformat"`
	Priority TaskPriority `json:"priority,omitempty" validate:"omitempty,taskpriority"`
}

type UpdateTaskRequest struct {
	Text     *string       `json:"text,omitempty" validate:"omitempty,min=1,max=2000"`
	Status   *TaskStatus   `json:"status,omitempty" validate:"omitempty,taskstatus"`
	DueDate  *string       `json:"due_date,omitempty" validate:"omitempty,dateformat"`
	Priority *TaskPriority `json:"priority,omitempty" validate:"omitempty,taskpriority"`
}

func (r UpdateTaskRequest) Patch() TaskPatch {
	return TaskPatch{
		Text:     r.Text,
		Status:   r.Status,
		DueDate:  r.DueDate,
		Priority: r.Priority,
	}
}

// NewTask is the caller-supplied part of a task on create.
type NewTask struct {
	Text     string
	DueDate  *string
	Priority TaskPriority
}

func (r CreateTaskRequest) NewTask() NewTask {
	return NewTask{
		Text:     r.Text,
		DueDate:  r.DueDate,
		Priority: r.Priority,
	}
}
