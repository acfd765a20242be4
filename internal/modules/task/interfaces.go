package task

import (
	"context"

	"taskhub/internal/domain"
	"taskhub/internal/repository"
)

// TaskRepositoryInterface lists only the methods the task service uses.
type TaskRepositoryInterface interface {
	Create(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id int64) (*domain.Task, error)
	ListByUser(ctx context.Context, userID string, f repository.TaskFilter) ([]domain.Task, error)
	Update(ctx context.Context, t *domain.Task) error
	Delete(ctx context.Context, id int64) error
}

// ProjectReader resolves the project a task is being attached to.
type ProjectReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
}
