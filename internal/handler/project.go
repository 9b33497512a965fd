package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sumire/taskboard/internal/domain"
	"github.com/sumire/taskboard/internal/service"
)

// ProjectHandler handles project endpoints.
type ProjectHandler struct {
	projects *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projects *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projects: projects}
}

type createProjectRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description *string `json:"description"`
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// Create handles POST /projects.
func (h *ProjectHandler) Create(c echo.Context) error {
	var req createProjectRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	p, err := h.projects.Create(c.Request().Context(), req.Name, req.Description)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusCreated, p)
}

// List handles GET /projects.
func (h *ProjectHandler) List(c echo.Context) error {
	projects, err := h.projects.List(c.Request().Context())
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, projects)
}

// Get handles GET /projects/:project_id.
func (h *ProjectHandler) Get(c echo.Context) error {
	id, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	p, err := h.projects.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, p)
}

// Update handles PUT /projects/:project_id.
func (h *ProjectHandler) Update(c echo.Context) error {
	id, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	var req updateProjectRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	p, err := h.projects.Update(c.Request().Context(), id, req.Name, req.Description)
	if err != nil {
		return err
	}
	return JSON(c, http.StatusOK, p)
}

// Delete handles DELETE /projects/:project_id.
func (h *ProjectHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "project_id")
	if err != nil {
		return err
	}

	if err := h.projects.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
