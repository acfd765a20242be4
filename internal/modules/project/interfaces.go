package project

import (
	"context"

	"taskhub/internal/domain"
	"taskhub/internal/repository"
)

// ProjectRepositoryInterface lists only the methods the project service uses.
type ProjectRepositoryInterface interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id int64) (*domain.Project, error)
	ListByUser(ctx context.Context, userID string) ([]repository.ProjectWithTaskCount, error)
	CountTasks(ctx context.Context, projectID int64) (int64, error)
	Update(ctx context.Context, p *domain.Project) error
	Delete(ctx context.Context, id int64) error
}
