package service

import (
	"context"
	"fmt"

	"github.com/sumire/taskboard/internal/domain"
)

// TaskStore defines the task data access interface consumed by TaskService.
type TaskStore interface {
	CreateWithLog(ctx context.Context, t domain.Task, logMessage string) (*domain.Task, error)
	FindByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByList(ctx context.Context, listID int64, filter domain.TaskFilter) ([]domain.Task, error)
	CountByList(ctx context.Context, listID int64) (int, error)
	UpdateWithLog(ctx context.Context, t domain.Task, logMessage *string) (*domain.Task, error)
	DeleteTree(ctx context.Context, id int64) error
	ListLogs(ctx context.Context, taskID int64) ([]domain.TaskLog, error)
}

// TaskService manages task lifecycle, cross-list moves, and the activity
// log entries those produce.
type TaskService struct {
	tasks TaskStore
	lists BoardListStore
}

// NewTaskService creates a new TaskService.
func NewTaskService(tasks TaskStore, lists BoardListStore) *TaskService {
	return &TaskService{tasks: tasks, lists: lists}
}

// Create inserts a task into a board list. When position is nil it defaults
// to the current task count of the list; as with board lists, concurrent
// creates can race to the same position. Exactly one creation log entry is
// written, atomically with the task.
func (s *TaskService) Create(ctx context.Context, listID int64, title string, description *string, position *int) (*domain.Task, error) {
	list, err := s.lists.FindByID(ctx, listID)
	if err != nil {
		return nil, err
	}
	if title == "" {
		return nil, &domain.ValidationError{Field: "title", Message: "must not be empty"}
	}

	pos := 0
	if position != nil {
		pos = *position
	} else {
		n, err := s.tasks.CountByList(ctx, listID)
		if err != nil {
			return nil, err
		}
		pos = n
	}

	t := domain.Task{ListID: listID, Title: title, Description: description, Position: pos}
	return s.tasks.CreateWithLog(ctx, t, fmt.Sprintf("Task created in list %q", list.Name))
}

// Get retrieves a single task.
func (s *TaskService) Get(ctx context.Context, id int64) (*domain.Task, error) {
	return s.tasks.FindByID(ctx, id)
}

// List retrieves a list's tasks ordered by position, narrowed by the given
// filter.
func (s *TaskService) List(ctx context.Context, listID int64, filter domain.TaskFilter) ([]domain.Task, error) {
	return s.tasks.ListByList(ctx, listID, filter)
}

// Update applies a partial update. A nil or empty title leaves the current
// title unchanged; description and position always overwrite when non-nil.
// When listID is non-nil and differs from the task's current list, the task
// is reassigned and exactly one move log entry is written, atomically with
// the field update, recording both list names at the moment of the move.
func (s *TaskService) Update(ctx context.Context, id int64, title *string, description *string, listID *int64, position *int) (*domain.Task, error) {
	current, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	next := *current
	if title != nil && *title != "" {
		next.Title = *title
	}
	if description != nil {
		next.Description = description
	}
	if position != nil {
		next.Position = *position
	}

	var logMessage *string
	if listID != nil && *listID != current.ListID {
		oldList, err := s.lists.FindByID(ctx, current.ListID)
		if err != nil {
			return nil, err
		}
		newList, err := s.lists.FindByID(ctx, *listID)
		if err != nil {
			return nil, err
		}
		next.ListID = *listID
		msg := fmt.Sprintf("Moved from %q to %q", oldList.Name, newList.Name)
		logMessage = &msg
	}

	return s.tasks.UpdateWithLog(ctx, next, logMessage)
}

// Delete removes a task together with its activity log.
func (s *TaskService) Delete(ctx context.Context, id int64) error {
	return s.tasks.DeleteTree(ctx, id)
}

// Logs retrieves a task's activity log, newest first.
func (s *TaskService) Logs(ctx context.Context, taskID int64) ([]domain.TaskLog, error) {
	return s.tasks.ListLogs(ctx, taskID)
}
