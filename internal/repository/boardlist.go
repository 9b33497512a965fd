package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sumire/taskboard/internal/domain"
)

// BoardListRepository handles board list data access operations.
type BoardListRepository struct {
	db *sqlx.DB
}

// NewBoardListRepository creates a new BoardListRepository.
func NewBoardListRepository(db *sqlx.DB) *BoardListRepository {
	return &BoardListRepository{db: db}
}

// Create inserts a board list and returns the stored row.
func (r *BoardListRepository) Create(ctx context.Context, l domain.BoardList) (*domain.BoardList, error) {
	var created domain.BoardList
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO board_lists (project_id, name, position)
		 VALUES ($1, $2, $3)
		 RETURNING id, project_id, name, position, created_at`,
		l.ProjectID, l.Name, l.Position,
	).StructScan(&created)
	if err != nil {
		return nil, fmt.Errorf("insert board list: %w", err)
	}
	return &created, nil
}

// FindByID retrieves a board list by its ID.
func (r *BoardListRepository) FindByID(ctx context.Context, id int64) (*domain.BoardList, error) {
	var l domain.BoardList
	err := r.db.GetContext(ctx, &l,
		`SELECT id, project_id, name, position, created_at
		 FROM board_lists WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find board list by id %d: %w", id, err)
	}
	return &l, nil
}

// ListByProject retrieves a project's board lists ordered by position.
func (r *BoardListRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.BoardList, error) {
	lists := []domain.BoardList{}
	err := r.db.SelectContext(ctx, &lists,
		`SELECT id, project_id, name, position, created_at
		 FROM board_lists WHERE project_id = $1 ORDER BY position`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list board lists of project %d: %w", projectID, err)
	}
	return lists, nil
}

// CountByProject returns the number of board lists under a project.
func (r *BoardListRepository) CountByProject(ctx context.Context, projectID int64) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n,
		`SELECT COUNT(*) FROM board_lists WHERE project_id = $1`, projectID)
	if err != nil {
		return 0, fmt.Errorf("count board lists of project %d: %w", projectID, err)
	}
	return n, nil
}

// Update overwrites a board list's name and position. Positions are not
// checked against siblings; duplicates are allowed.
func (r *BoardListRepository) Update(ctx context.Context, id int64, name string, position int) (*domain.BoardList, error) {
	var l domain.BoardList
	err := r.db.QueryRowxContext(ctx,
		`UPDATE board_lists
		 SET name = $1, position = $2
		 WHERE id = $3
		 RETURNING id, project_id, name, position, created_at`,
		name, position, id,
	).StructScan(&l)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update board list %d: %w", id, err)
	}
	return &l, nil
}

// DeleteTree removes a board list together with its tasks and their logs in
// one transaction.
func (r *BoardListRepository) DeleteTree(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete board list: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmts := []string{
		`DELETE FROM task_logs WHERE task_id IN (
			SELECT id FROM tasks WHERE list_id = $1)`,
		`DELETE FROM tasks WHERE list_id = $1`,
	}
	for _, stmt := range stmts {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return fmt.Errorf("delete board list %d subtree: %w", id, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM board_lists WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete board list %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete board list %d: %w", id, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete board list: %w", err)
	}
	return nil
}
