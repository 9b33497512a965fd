package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/taskboard/internal/domain"
	"github.com/sumire/taskboard/internal/service"
)

// MemberHandler handles project membership endpoints.
type MemberHandler struct {
	members *service.MemberService
}

// NewMemberHandler creates a new MemberHandler.
func NewMemberHandler(members *service.MemberService) *MemberHandler {
	return &MemberHandler{members: members}
}

type memberRequest struct {
	UserID int64 `json:"user_id" validate:"required"`
}

// Add handles POST /projects/:project_id/members. Adding an existing
// member returns the existing row with 201, same as a fresh add.
func (h *MemberHandler) Add(c echo.Context) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	var req memberRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	m, err := h.members.Add(c.Request().Context(), projectID, req.UserID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, m)
}

// List handles GET /projects/:project_id/members.
func (h *MemberHandler) List(c echo.Context) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	members, err := h.members.List(c.Request().Context(), projectID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, members)
}

// Remove handles DELETE /projects/:project_id/members. The user to remove
// is identified by the request body.
func (h *MemberHandler) Remove(c echo.Context) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	var req memberRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.members.Remove(c.Request().Context(), projectID, req.UserID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
