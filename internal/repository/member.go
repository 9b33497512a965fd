package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sumire/taskboard/internal/domain"
)

// MemberRepository handles project membership data access operations.
type MemberRepository struct {
	db *sqlx.DB
}

// NewMemberRepository creates a new MemberRepository.
func NewMemberRepository(db *sqlx.DB) *MemberRepository {
	return &MemberRepository{db: db}
}

// Find retrieves the membership row for a (project, user) pair.
func (r *MemberRepository) Find(ctx context.Context, projectID, userID int64) (*domain.ProjectMember, error) {
	var m domain.ProjectMember
	err := r.db.GetContext(ctx, &m,
		`SELECT id, project_id, user_id, joined_at
		 FROM project_members WHERE project_id = $1 AND user_id = $2`,
		projectID, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("find member %d of project %d: %w", userID, projectID, err)
	}
	return &m, nil
}

// Insert creates a membership row. The unique index on
// (project_id, user_id) rejects duplicates that slip past the caller's
// existence check.
func (r *MemberRepository) Insert(ctx context.Context, projectID, userID int64) (*domain.ProjectMember, error) {
	var m domain.ProjectMember
	err := r.db.QueryRowxContext(ctx,
		`INSERT INTO project_members (project_id, user_id)
		 VALUES ($1, $2)
		 RETURNING id, project_id, user_id, joined_at`,
		projectID, userID,
	).StructScan(&m)
	if err != nil {
		return nil, fmt.Errorf("insert member %d of project %d: %w", userID, projectID, err)
	}
	return &m, nil
}

// Delete removes the membership row for a (project, user) pair.
func (r *MemberRepository) Delete(ctx context.Context, projectID, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM project_members WHERE project_id = $1 AND user_id = $2`,
		projectID, userID)
	if err != nil {
		return fmt.Errorf("delete member %d of project %d: %w", userID, projectID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete member %d of project %d: %w", userID, projectID, err)
	}
	if affected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByProject retrieves a project's membership roster.
func (r *MemberRepository) ListByProject(ctx context.Context, projectID int64) ([]domain.ProjectMember, error) {
	members := []domain.ProjectMember{}
	err := r.db.SelectContext(ctx, &members,
		`SELECT id, project_id, user_id, joined_at
		 FROM project_members WHERE project_id = $1 ORDER BY id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("list members of project %d: %w", projectID, err)
	}
	return members, nil
}
