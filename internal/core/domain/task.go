package domain

import "time"

// Task statuses.
const (
	TaskNeedsAction = "needsAction"
	TaskCompleted   = "completed"
)

// DefaultTaskList is the alias for the user's default task list.
const DefaultTaskList = "@default"

// TaskList is a named list of tasks.
type TaskList struct {
	ID      string
	Title   string
	Updated time.Time
}

// Task is a normalised task record.
type Task struct {
	ID         string
	TaskListID string
	Title      string
	Notes      string
	Status     string
	Due        *time.Time
	Completed  *time.Time
	Links      []TaskLink
}

// IsCompleted returns true if the task is done.
func (t Task) IsCompleted() bool {
	return t.Status == TaskCompleted
}

// TaskLink is a link attached to a task.
type TaskLink struct {
	Type        string
	Description string
	Link        string
}

// TaskFilter narrows a task listing.
type TaskFilter struct {
	// TaskListID defaults to "@default".
	TaskListID    string
	ShowCompleted bool
}
