package service

import (
	"context"
	"errors"

	"github.com/sumire/taskboard/internal/domain"
)

// MemberStore defines the membership data access interface consumed by
// MemberService.
type MemberStore interface {
	Find(ctx context.Context, projectID, userID int64) (*domain.ProjectMember, error)
	Insert(ctx context.Context, projectID, userID int64) (*domain.ProjectMember, error)
	Delete(ctx context.Context, projectID, userID int64) error
	ListByProject(ctx context.Context, projectID int64) ([]domain.ProjectMember, error)
}

// MemberService manages the idempotent project membership roster.
type MemberService struct {
	members MemberStore
}

// NewMemberService creates a new MemberService.
func NewMemberService(members MemberStore) *MemberService {
	return &MemberService{members: members}
}

// Add enrolls a user in a project. Adding an existing member is a no-op
// that returns the existing row unchanged.
func (s *MemberService) Add(ctx context.Context, projectID, userID int64) (*domain.ProjectMember, error) {
	existing, err := s.members.Find(ctx, projectID, userID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}
	return s.members.Insert(ctx, projectID, userID)
}

// Remove deletes a membership. Removing a user who is not a member fails
// with ErrNotFound.
func (s *MemberService) Remove(ctx context.Context, projectID, userID int64) error {
	return s.members.Delete(ctx, projectID, userID)
}

// List retrieves a project's membership roster.
func (s *MemberService) List(ctx context.Context, projectID int64) ([]domain.ProjectMember, error) {
	return s.members.ListByProject(ctx, projectID)
}
