package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sumire/taskboard/internal/domain"
)

// ProjectRepository handles project data access operations. Writes that
// touch multiple rows run inside a single transaction so that a project is
// never observable without its seed lists, and a deleted project never
// leaves orphaned children.
type ProjectRepository struct {
	db *sqlx.DB
}

// NewProjectRepository creates a new ProjectRepository.
func NewProjectRepository(db *sqlx.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// CreateWithLists inserts a project together with its seed lists, positioned
// 0..n-1 in the order given. The inserts commit together or not at all.
func (r *ProjectRepository) CreateWithLists(ctx context.Context, name string, description *string, listNames []string) (*domain.Project, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create project: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	var p domain.Project
	err = tx.QueryRowxContext(ctx,
		`INSERT INTO projects (name, description)
		 VALUES ($1, $2)
		 RETURNING id, name, description, created_at, updated_at`,
		name, description,
	).StructScan(&p)
	if err != nil {
		return nil, fmt.Errorf("insert project: %w", err)
	}

	for i, listName := range listNames {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO board_lists (project_id, name, position) VALUES ($1, $2, $3)`,
			p.ID, listName, i,
		); err != nil {
			return nil, fmt.Errorf("seed list %q: %w", listName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create project: %w", err)
	}
	return &p, nil
}

// FindByID retrieves a project by its ID.
func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	err := r.db.GetContext(ctx, &p,
		`SELECT id, name, description, created_at, updated_at
		 FROM projects WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find project by id %d: %w", id, err)
	}
	return &p, nil
}

// List retrieves all projects.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	projects := []domain.Project{}
	err := r.db.SelectContext(ctx, &projects,
		`SELECT id, name, description, created_at, updated_at
		 FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	return projects, nil
}

// Update overwrites a project's name and description and refreshes
// updated_at. Returns the updated project.
func (r *ProjectRepository) Update(ctx context.Context, id int64, name string, description *string) (*domain.Project, error) {
	var p domain.Project
	err := r.db.QueryRowxContext(ctx,
		`UPDATE projects
		 SET name = $1, description = $2, updated_at = NOW()
		 WHERE id = $3
		 RETURNING id, name, description, created_at, updated_at`,
		name, description, id,
	).StructScan(&p)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update project %d: %w", id, err)
	}
	return &p, nil
}

// DeleteTree removes a project and its whole owned subtree: board lists,
// their tasks, those tasks' logs, and the membership roster, all in one
// transaction.
func (r *ProjectRepository) DeleteTree(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete project: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmts := []string{
		`DELETE FROM task_logs WHERE task_id IN (
			SELECT t.id FROM tasks t
			JOIN board_lists l ON t.list_id = l.id
			WHERE l.project_id = $1)`,
		`DELETE FROM tasks WHERE list_id IN (
			SELECT id FROM board_lists WHERE project_id = $1)`,
		`DELETE FROM board_lists WHERE project_id = $1`,
		`DELETE FROM project_members WHERE project_id = $1`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("delete project %d subtree: %w", id, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete project %d: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete project: %w", err)
	}
	return nil
}
