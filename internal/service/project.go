package service

import (
	"context"

	"github.com/sumire/taskboard/internal/domain"
)

// DefaultListNames are the board lists seeded with every new project, in
// position order.
var DefaultListNames = []string{"To Do", "In Progress", "Done"}

// ProjectStore defines the project data access interface consumed by
// ProjectService.
type ProjectStore interface {
	CreateWithLists(ctx context.Context, name string, description *string, listNames []string) (*domain.Project, error)
	FindByID(ctx context.Context, id int64) (*domain.Project, error)
	List(ctx context.Context) ([]domain.Project, error)
	Update(ctx context.Context, id int64, name string, description *string) (*domain.Project, error)
	DeleteTree(ctx context.Context, id int64) error
}

// ProjectService manages project lifecycle and default list seeding.
type ProjectService struct {
	projects ProjectStore
}

// NewProjectService creates a new ProjectService.
func NewProjectService(projects ProjectStore) *ProjectService {
	return &ProjectService{projects: projects}
}

// Create inserts a project seeded with the three default board lists at
// positions 0, 1, 2. The project and its lists commit atomically.
func (s *ProjectService) Create(ctx context.Context, name string, description *string) (*domain.Project, error) {
	if name == "" {
		return nil, &domain.ValidationError{Field: "name", Message: "must not be empty"}
	}
	return s.projects.CreateWithLists(ctx, name, description, DefaultListNames)
}

// Get retrieves a single project.
func (s *ProjectService) Get(ctx context.Context, id int64) (*domain.Project, error) {
	return s.projects.FindByID(ctx, id)
}

// List retrieves all projects.
func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.projects.List(ctx)
}

// Update applies a partial update. A nil or empty name leaves the current
// name unchanged; a non-nil description always overwrites, including to the
// empty string.
func (s *ProjectService) Update(ctx context.Context, id int64, name *string, description *string) (*domain.Project, error) {
	current, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newName := current.Name
	if name != nil && *name != "" {
		newName = *name
	}
	newDescription := current.Description
	if description != nil {
		newDescription = description
	}

	return s.projects.Update(ctx, id, newName, newDescription)
}

// Delete removes a project and everything it owns: board lists, their
// tasks, those tasks' logs, and the membership roster.
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return s.projects.DeleteTree(ctx, id)
}
