package task

import (
	"time"

	"taskhub/internal/domain"
)

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	ProjectID   int64      `json:"project_id" binding:"required"`
	Status      string     `json:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS DONE"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Status      *string    `json:"status,omitempty" binding:"omitempty,oneof=PENDING IN_PROGRESS DONE"`
	Priority    *string    `json:"priority,omitempty" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	DueDate     *time.Time `json:"due_date,omitempty"`
}

// FilterTasksRequest is bound from query parameters; every field optional.
type FilterTasksRequest struct {
	ProjectID int64  `form:"project_id"`
	Status    string `form:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS DONE"`
	Priority  string `form:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
}

type TaskProject struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type TaskResponse struct {
	ID          int64               `json:"id"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      domain.TaskStatus   `json:"status"`
	Priority    domain.TaskPriority `json:"priority"`
	DueDate     *time.Time          `json:"due_date"`
	ProjectID   int64               `json:"project_id"`
	UserID      string              `json:"user_id"`
	Project     *TaskProject        `json:"project,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}
