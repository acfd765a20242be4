package domain

import "time"

type TaskStatus string

const (
	TaskStatusPending    TaskStatus = "PENDING"
	TaskStatusInProgress TaskStatus = "IN_PROGRESS"
	TaskStatusDone       TaskStatus = "DONE"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "LOW"
	TaskPriorityMedium TaskPriority = "MEDIUM"
	TaskPriorityHigh   TaskPriority = "HIGH"
	TaskPriorityUrgent TaskPriority = "URGENT"
)

type Task struct {
	ID          int64        `json:"id" gorm:"primaryKey"`
	Title       string       `json:"title" gorm:"not null"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status" gorm:"size:16;default:PENDING"`
	Priority    TaskPriority `json:"priority" gorm:"size:16;default:MEDIUM"`
	DueDate     *time.Time   `json:"due_date"`

	ProjectID int64   `json:"project_id" gorm:"index;not null"`
	Project   Project `json:"-" gorm:"foreignKey:ProjectID;constraint:OnDelete:CASCADE"`

	UserID string `json:"user_id" gorm:"index;size:36;not null"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
