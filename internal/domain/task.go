package domain

import "time"

// Task is an ordered card within a board list. ListID is mutable: a task
// may be reassigned to a different list, which appends a move entry to its
// activity log.
type Task struct {
	ID          int64     `json:"id" db:"id"`
	ListID      int64     `json:"list_id" db:"list_id"`
	Title       string    `json:"title" db:"title"`
	Description *string   `json:"description,omitempty" db:"description"`
	Position    int       `json:"position" db:"position"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// TaskLog is an append-only, system-generated activity entry. Entries are
// written only as a side effect of task creation and cross-list moves and
// are never updated, only cascade-deleted with their task.
type TaskLog struct {
	ID        int64     `json:"id" db:"id"`
	TaskID    int64     `json:"task_id" db:"task_id"`
	Message   string    `json:"message" db:"message"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// TaskFilter narrows task listings. Conditions combine with AND semantics;
// nil fields do not filter.
type TaskFilter struct {
	CreatedAfter *time.Time
	UpdatedAfter *time.Time
}
