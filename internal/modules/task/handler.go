package task

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
	group := protected.Group("/tasks")
	{
		group.POST("", h.Create)
		group.GET("", h.List)
		group.GET("/:id", h.Get)
		group.PATCH("/:id", h.Update)
		group.DELETE("/:id", h.Delete)
	}
}

// Create adds a task inside one of the user's projects.
// @Summary		Create task
// @Tags		Tasks
// @Security	BearerAuth
// @Param		request	body	CreateTaskRequest	true	"title, project_id, optional status/priority/due_date"
// @Success		201	{object}	response.Envelope "Task created"
// @Failure		400	{object}	response.Envelope "Validation failed"
// @Failure		403	{object}	response.Envelope "Project owned by another user"
// @Failure		404	{object}	response.Envelope "Project not found"
// @Router		/tasks [POST]
func (h *Handler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	t, err := h.service.Create(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		h.mapError(c, err, "Failed to create task")
		return
	}

	response.Success(c, http.StatusCreated, "Task created successfully", t)
}

// List returns the user's tasks, newest first, optionally filtered by
// project_id, status and priority query parameters.
// @Summary		List tasks
// @Tags		Tasks
// @Security	BearerAuth
// @Param		project_id	query	int		false	"Filter by project"
// @Param		status		query	string	false	"PENDING, IN_PROGRESS or DONE"
// @Param		priority	query	string	false	"LOW, MEDIUM, HIGH or URGENT"
// @Success		200	{object}	response.Envelope "Tasks"
// @Router		/tasks [GET]
func (h *Handler) List(c *gin.Context) {
	var req FilterTasksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid query parameters", err.Error())
		return
	}

	tasks, err := h.service.List(c.Request.Context(), c.GetString("user_id"), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Failed to list tasks")
		return
	}

	response.Success(c, http.StatusOK, "Tasks retrieved successfully", tasks)
}

// Get returns one task with its owning project.
// @Summary		Get task
// @Tags		Tasks
// @Security	BearerAuth
// @Param		id	path	int	true	"Task ID"
// @Success		200	{object}	response.Envelope "Task"
// @Failure		403	{object}	response.Envelope "Owned by another user"
// @Failure		404	{object}	response.Envelope "Not found"
// @Router		/tasks/{id} [GET]
func (h *Handler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	t, err := h.service.Get(c.Request.Context(), c.GetString("user_id"), id)
	if err != nil {
		h.mapError(c, err, "Failed to load task")
		return
	}

	response.Success(c, http.StatusOK, "Task retrieved successfully", t)
}

// Update patches any subset of title, description, status, priority, due_date.
// @Summary		Update task
// @Tags		Tasks
// @Security	BearerAuth
// @Param		id	path	int	true	"Task ID"
// @Param		request	body	UpdateTaskRequest	true	"fields to update"
// @Success		200	{object}	response.Envelope "Updated task"
// @Failure		403	{object}	response.Envelope "Owned by another user"
// @Failure		404	{object}	response.Envelope "Not found"
// @Router		/tasks/{id} [PATCH]
func (h *Handler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}

	t, err := h.service.Update(c.Request.Context(), c.GetString("user_id"), id, req)
	if err != nil {
		h.mapError(c, err, "Failed to update task")
		return
	}

	response.Success(c, http.StatusOK, "Task updated successfully", t)
}

// Delete removes the task.
// @Summary		Delete task
// @Tags		Tasks
// @Security	BearerAuth
// @Param		id	path	int	true	"Task ID"
// @Success		200	{object}	response.Envelope "Deleted"
// @Failure		403	{object}	response.Envelope "Owned by another user"
// @Failure		404	{object}	response.Envelope "Not found"
// @Router		/tasks/{id} [DELETE]
func (h *Handler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), c.GetString("user_id"), id); err != nil {
		h.mapError(c, err, "Failed to delete task")
		return
	}

	response.Success(c, http.StatusOK, "Task deleted successfully", nil)
}

func (h *Handler) mapError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "Task not found")
	case errors.Is(err, ErrAccessDenied):
		response.Error(c, http.StatusForbidden, "You do not have access to this task")
	case errors.Is(err, ErrProjectNotFound):
		response.Error(c, http.StatusNotFound, "Project not found")
	case errors.Is(err, ErrProjectAccessDenied):
		response.Error(c, http.StatusForbidden, "You do not have access to this project")
	default:
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Invalid task ID")
		return 0, false
	}
	return id, true
}
