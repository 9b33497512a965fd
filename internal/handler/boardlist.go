package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/taskboard/internal/domain"
	"github.com/sumire/taskboard/internal/service"
)

// BoardListHandler handles board list endpoints.
type BoardListHandler struct {
	lists *service.BoardListService
}

// NewBoardListHandler creates a new BoardListHandler.
func NewBoardListHandler(lists *service.BoardListService) *BoardListHandler {
	return &BoardListHandler{lists: lists}
}

type createBoardListRequest struct {
	Name     string `json:"name" validate:"required"`
	Position *int   `json:"position"`
}

type updateBoardListRequest struct {
	Name     *string `json:"name"`
	Position *int    `json:"position"`
}

// Create handles POST /projects/:project_id/lists.
func (h *BoardListHandler) Create(c echo.Context) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	var req createBoardListRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	l, err := h.lists.Create(c.Request().Context(), projectID, req.Name, req.Position)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, l)
}

// List handles GET /projects/:project_id/lists.
func (h *BoardListHandler) List(c echo.Context) error {
	projectID, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	lists, err := h.lists.List(c.Request().Context(), projectID)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, lists)
}

// Get handles GET /lists/:list_id.
func (h *BoardListHandler) Get(c echo.Context) error {
	id, err := pathID(c, "list_id")
	if err != nil {
		return err
	}

	l, err := h.lists.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, l)
}

// Update handles PUT /lists/:list_id.
func (h *BoardListHandler) Update(c echo.Context) error {
	id, err := pathID(c, "list_id")
	if err != nil {
		return err
	}

	var req updateBoardListRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	l, err := h.lists.Update(c.Request().Context(), id, req.Name, req.Position)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, l)
}

// Delete handles DELETE /lists/:list_id.
func (h *BoardListHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "list_id")
	if err != nil {
		return err
	}

	if err := h.lists.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
