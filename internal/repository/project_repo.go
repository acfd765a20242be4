package repository

import (
	"context"

	"taskhub/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// ProjectWithTaskCount carries the aggregate the list endpoint shows.
type ProjectWithTaskCount struct {
	domain.Project
	TaskCount int64 `json:"task_count" gorm:"column:task_count"`
}

func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*domain.Project, error) {
	var p domain.Project
	err := r.db.WithContext(ctx).First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProjectRepository) ListByUser(ctx context.Context, userID string) ([]ProjectWithTaskCount, error) {
	var rows []ProjectWithTaskCount
	err := r.db.WithContext(ctx).Model(&domain.Project{}).
		Select("projects.*, (SELECT COUNT(*) FROM tasks WHERE tasks.project_id = projects.id) AS task_count").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

func (r *ProjectRepository) CountTasks(ctx context.Context, projectID int64) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.Task{}).
		Where("project_id = ?", projectID).
		Count(&count).Error
	return count, err
}

func (r *ProjectRepository) Update(ctx context.Context, p *domain.Project) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(p).Error
}

// Delete removes the project and its tasks. SQLite ships with foreign keys
// off, so the cascade is done by hand inside one transaction.
func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("project_id = ?", id).Delete(&domain.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Project{}, id).Error
	})
}
