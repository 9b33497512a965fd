package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/taskboard/internal/domain"
	"github.com/sumire/taskboard/internal/service"
)

// TaskHandler handles task endpoints.
type TaskHandler struct {
	tasks *service.TaskService
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(tasks *service.TaskService) *TaskHandler {
	return &TaskHandler{tasks: tasks}
}

type createTaskRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	Position    *int    `json:"position"`
}

type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ListID      *int64  `json:"list_id"`
	Position    *int    `json:"position"`
}

// Create handles POST /lists/:list_id/tasks.
func (h *TaskHandler) Create(c echo.Context) error {
	listID, err := pathID(c, "list_id")
	if err != nil {
		return err
	}

	var req createTaskRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	t, err := h.tasks.Create(c.Request().Context(), listID, req.Title, req.Description, req.Position)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, t)
}

// List handles GET /lists/:list_id/tasks. The created_after and
// updated_after query parameters are RFC 3339 timestamps; malformed values
// are ignored.
func (h *TaskHandler) List(c echo.Context) error {
	listID, err := pathID(c, "list_id")
	if err != nil {
		return err
	}

	filter := domain.TaskFilter{
		CreatedAfter: timeQuery(c, "created_after"),
		UpdatedAfter: timeQuery(c, "updated_after"),
	}

	tasks, err := h.tasks.List(c.Request().Context(), listID, filter)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, tasks)
}

// Get handles GET /tasks/:task_id.
func (h *TaskHandler) Get(c echo.Context) error {
	id, err := pathID(c, "task_id")
	if err != nil {
		return err
	}

	t, err := h.tasks.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, t)
}

// Update handles PUT /tasks/:task_id.
func (h *TaskHandler) Update(c echo.Context) error {
	id, err := pathID(c, "task_id")
	if err != nil {
		return err
	}

	var req updateTaskRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	t, err := h.tasks.Update(c.Request().Context(), id, req.Title, req.Description, req.ListID, req.Position)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, t)
}

// Delete handles DELETE /tasks/:task_id.
func (h *TaskHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "task_id")
	if err != nil {
		return err
	}

	if err := h.tasks.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Logs handles GET /tasks/:task_id/logs.
func (h *TaskHandler) Logs(c echo.Context) error {
	id, err := pathID(c, "task_id")
	if err != nil {
		return err
	}

	logs, err := h.tasks.Logs(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, logs)
}
