package project

import (
	"errors"
	"net/http"
	"strconv"

	"taskhub/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(protected *gin.RouterGroup) {
	group := protected.Group("/projects")
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

// Create adds a project owned by the authenticated user.
// @Summary		Create project
// @Tags		Projects
// @Security	BearerAuth
// @Param		request	body	CreateProjectRequest	true	"name, description"
// @Success		201	{object}	response.Envelope "Project created"
// @Failure		400	{object}	response.Envelope "Validation failed"
// @Router		/projects [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	p, err := h.service.Create(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to create project")
		return
	}

	response.Success(c, http.StatusCreated, "Project created successfully", p)
}

// List returns the user's projects, newest first, with task counts.
// @Summary		List projects
// @Tags		Projects
// @Security	BearerAuth
// @Success		200	{object}	response.Envelope "Projects"
// @Router		/projects [GET]
func (h *Handler) List(c *gin.Context) {
	projects, err := h.service.List(c.Request.Context(), c.GetString("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list projects")
		return
	}

	response.Success(c, http.StatusOK, "Projects retrieved successfully", projects)
}

// Get returns one project.
// @Summary		Get project
// @Tags		Projects
// @Security	BearerAuth
// @Param		id	path	int	true	"Project ID"
// @Success		200	{object}	response.Envelope "Project"
// @Failure		403	{object}	response.Envelope "Owned by another user"
// @Failure		404	{object}	response.Envelope "Not found"
// @Router		/projects/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), c.GetString("user_id"), id)
	if err != nil {
		h.mapError(c, err, "Failed to load project")
		return
	}

	response.Success(c, http.StatusOK, "Project retrieved successfully", p)
}

// Update patches name and/or description.
// @Summary		Update project
// @Tags		Projects
// @Security	BearerAuth
// @Param		id	path	int	true	"Project ID"
// @Param		request	body	UpdateProjectRequest	true	"fields to update"
// @Success		200	{object}	response.Envelope "Updated project"
// @Failure		403	{object}	response.Envelope "Owned by another user"
// @Failure		404	{object}	response.Envelope "Not found"
// @Router		/projects/{id} [PATCH]
func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.GetString("user_id"), id, req)
	if err != nil {
		h.mapError(c, err, "Failed to update project")
		return
	}

	response.Success(c, http.StatusOK, "Project updated successfully", p)
}

// Delete removes the project and its tasks.
// @Summary		Delete project
// @Tags		Projects
// @Security	BearerAuth
// @Param		id	path	int	true	"Project ID"
// @Success		200	{object}	response.Envelope "Deleted"
// @Failure		403	{object}	response.Envelope "Owned by another user"
// @Failure		404	{object}	response.Envelope "Not found"
// @Router		/projects/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetString("user_id"), id); err != nil {
		h.mapError(c, err, "Failed to delete project")
		return
	}

	response.Success(c, http.StatusOK, "Project deleted successfully", nil)
}

func (h *Handler) mapError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "Project not found")
	case errors.Is(err, ErrAccessDenied):
		response.Error(c, http.StatusForbidden, "You do not have access to this project")
	default:
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid project ID")
		return 0, false
	}
	return id, true
}
