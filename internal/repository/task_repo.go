package repository

import (
	"context"

	"taskhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// TaskFilter narrows ListByUser. Zero values mean "no filter".
type TaskFilter struct {
	ProjectID int64
	Status    domain.TaskStatus
	Priority  domain.TaskPriority
}

func (r *TaskRepository) Create(ctx context.Context, t *domain.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	var t domain.Task
	err := r.db.WithContext(ctx).Preload("Project").First(&t, id).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TaskRepository) ListByUser(ctx context.Context, userID string, f TaskFilter) ([]domain.Task, error) {
	q := r.db.WithContext(ctx).Preload("Project").Where("user_id = ?", userID)
	if f.ProjectID != 0 {
		q = q.Where("project_id = ?", f.ProjectID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Priority != "" {
		q = q.Where("priority = ?", f.Priority)
	}

	var tasks []domain.Task
	err := q.Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

func (r *TaskRepository) Update(ctx context.Context, t *domain.Task) error {
	// Omit associations so a preloaded Project is not written back.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(t).Error
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&domain.Task{}, id).Error
}
