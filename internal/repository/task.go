package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sumire/taskboard/internal/domain"
)

// TaskRepository handles task and task log data access operations. A task
// write and its activity log entry always share one transaction.
type TaskRepository struct {
	db *sqlx.DB
}

// NewTaskRepository creates a new TaskRepository.
func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// CreateWithLog inserts a task together with its creation log entry. Both
// rows commit together or not at all.
func (r *TaskRepository) CreateWithLog(ctx context.Context, t domain.Task, logMessage string) (*domain.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create task: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var created domain.Task
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO tasks (list_id, title, description, position)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, list_id, title, description, position, created_at, updated_at`,
		t.ListID, t.Title, t.Description, t.Position,
	).StructScan(&created)
	if err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO task_logs (task_id, message) VALUES ($1, $2)`,
		created.ID, logMessage,
	); err != nil {
		return nil, fmt.Errorf("insert creation log: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create task: %w", err)
	}
	return &created, nil
}

// FindByID retrieves a task by its ID.
func (r *TaskRepository) FindByID(ctx context.Context, id int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.GetContext(ctx, &t,
		`SELECT id, list_id, title, description, position, created_at, updated_at
		 FROM tasks WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find task by id %d: %w", id, err)
	}
	return &t, nil
}

// ListByList retrieves a list's tasks ordered by position, optionally
// narrowed by creation/update cutoffs.
func (r *TaskRepository) ListByList(ctx context.Context, listID int64, filter domain.TaskFilter) ([]domain.Task, error) {
	query := `SELECT id, list_id, title, description, position, created_at, updated_at
		 FROM tasks WHERE list_id = $1`
	args := []any{listID}

	if filter.CreatedAfter != nil {
		args = append(args, *filter.CreatedAfter)
		query += fmt.Sprintf(" AND created_at >= $%d", len(args))
	}
	if filter.UpdatedAfter != nil {
		args = append(args, *filter.UpdatedAfter)
		query += fmt.Sprintf(" AND updated_at >= $%d", len(args))
	}
	query += " ORDER BY position"

	tasks := []domain.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, fmt.Errorf("list tasks of list %d: %w", listID, err)
	}
	return tasks, nil
}

// CountByList returns the number of tasks in a board list.
func (r *TaskRepository) CountByList(ctx context.Context, listID int64) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM tasks WHERE list_id = $1`, listID)
	if err != nil {
		return 0, fmt.Errorf("count tasks of list %d: %w", listID, err)
	}
	return n, nil
}

// UpdateWithLog overwrites a task's mutable fields, refreshes updated_at,
// and, when logMessage is non-nil, appends an activity log entry in the same
// transaction. Callers pass a log message exactly when the update moves the
// task to a different list.
func (r *TaskRepository) UpdateWithLog(ctx context.Context, t domain.Task, logMessage *string) (*domain.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update task: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var updated domain.Task
	err = tx.QueryRowxContext(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, position = $3, list_id = $4, updated_at = NOW()
		 WHERE id = $5
		 RETURNING id, list_id, title, description, position, created_at, updated_at`,
		t.Title, t.Description, t.Position, t.ListID, t.ID,
	).StructScan(&updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update task %d: %w", t.ID, err)
	}

	if logMessage != nil {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO task_logs (task_id, message) VALUES ($1, $2)`,
			updated.ID, *logMessage,
		); err != nil {
			return nil, fmt.Errorf("insert move log: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update task: %w", err)
	}
	return &updated, nil
}

// DeleteTree removes a task together with its activity log in one
// transaction.
func (r *TaskRepository) DeleteTree(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete task: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM task_logs WHERE task_id = $1`, id); err != nil {
		return fmt.Errorf("delete task %d logs: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete task %d: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete task: %w", err)
	}
	return nil
}

// ListLogs retrieves a task's activity log, newest first.
func (r *TaskRepository) ListLogs(ctx context.Context, taskID int64) ([]domain.TaskLog, error) {
	logs := []domain.TaskLog{}
	err := r.db.SelectContext(ctx, &logs,
		`SELECT id, task_id, message, created_at
		 FROM task_logs WHERE task_id = $1
		 ORDER BY created_at DESC, id DESC`, taskID)
	if err != nil {
		return nil, fmt.Errorf("list logs of task %d: %w", taskID, err)
	}
	return logs, nil
}
