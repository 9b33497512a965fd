package service

import (
	"context"

	"github.com/sumire/taskboard/internal/domain"
)

// BoardListStore defines the board list data access interface consumed by
// BoardListService and TaskService.
type BoardListStore interface {
	Create(ctx context.Context, l domain.BoardList) (*domain.BoardList, error)
	FindByID(ctx context.Context, id int64) (*domain.BoardList, error)
	ListByProject(ctx context.Context, projectID int64) ([]domain.BoardList, error)
	CountByProject(ctx context.Context, projectID int64) (int, error)
	Update(ctx context.Context, id int64, name string, position int) (*domain.BoardList, error)
	DeleteTree(ctx context.Context, id int64) error
}

// BoardListService manages board list lifecycle within a project.
type BoardListService struct {
	lists    BoardListStore
	projects ProjectStore
}

// NewBoardListService creates a new BoardListService.
func NewBoardListService(lists BoardListStore, projects ProjectStore) *BoardListService {
	return &BoardListService{lists: lists, projects: projects}
}

// Create inserts a board list under a project. When position is nil it
// defaults to the current sibling count (append at end). The count and the
// insert are separate statements, so concurrent creates can assign the same
// position to two siblings; duplicates are tolerated, not repaired.
func (s *BoardListService) Create(ctx context.Context, projectID int64, name string, position *int) (*domain.BoardList, error) {
	if _, err := s.projects.FindByID(ctx, projectID); err != nil {
		return nil, err
	}
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Message: "must not be empty"}
	}

	pos := 0
	if position != nil {
		pos = *position
	} else {
		n, err := s.lists.CountByProject(ctx, projectID)
		if err != nil {
			return nil, err
		}
		pos = n
	}

	return s.lists.Create(ctx, domain.BoardList{ProjectID: projectID, Name: name, Position: pos})
}

// Get retrieves a single board list.
func (s *BoardListService) Get(ctx context.Context, id int64) (*domain.BoardList, error) {
	return s.lists.FindByID(ctx, id)
}

// List retrieves a project's board lists ordered by position.
func (s *BoardListService) List(ctx context.Context, projectID int64) ([]domain.BoardList, error) {
	return s.lists.ListByProject(ctx, projectID)
}

// Update applies a partial update. A nil or empty name leaves the current
// name unchanged; a non-nil position always overwrites, including 0, with no
// collision check against siblings.
func (s *BoardListService) Update(ctx context.Context, id int64, name *string, position *int) (*domain.BoardList, error) {
	current, err := s.lists.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newName := current.Name
	if name != nil && *name != "" {
		newName = *name
	}
	newPosition := current.Position
	if position != nil {
		newPosition = *position
	}

	return s.lists.Update(ctx, id, newName, newPosition)
}

// Delete removes a board list together with its tasks and their logs.
// Sibling positions are not compacted; the gap remains.
func (s *BoardListService) Delete(ctx context.Context, id int64) error {
	return s.lists.DeleteTree(ctx, id)
}
