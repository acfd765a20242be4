package project

import (
	"context"
	"errors"

	"taskhub/internal/domain"

	"gorm.io/gorm"
)

// Service owns project CRUD. Every read and write is scoped to the calling
// user; a project owned by someone else is ErrAccessDenied, never leaked.
type Service struct {
	projects ProjectRepositoryInterface
}

func NewService(projects ProjectRepositoryInterface) *Service {
	return &Service{projects: projects}
}

func (s *Service) Create(ctx context.Context, userID string, req CreateProjectRequest) (*ProjectResponse, error) {
	p := &domain.Project{
		Name:        req.Name,
		Description: req.Description,
		UserID:      userID,
	}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return toResponse(p, 0), nil
}

func (s *Service) List(ctx context.Context, userID string) ([]ProjectResponse, error) {
	rows, err := s.projects.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]ProjectResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, *toResponse(&row.Project, row.TaskCount))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, userID string, id int64) (*ProjectResponse, error) {
	p, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	count, err := s.projects.CountTasks(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(p, count), nil
}

func (s *Service) Update(ctx context.Context, userID string, id int64, req UpdateProjectRequest) (*ProjectResponse, error) {
	p, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != "" {
		p.Name = *req.Name
	}
	if req.Description != nil {
		p.Description = *req.Description
	}

	if err := s.projects.Update(ctx, p); err != nil {
		return nil, err
	}

	count, err := s.projects.CountTasks(ctx, id)
	if err != nil {
		return nil, err
	}
	return toResponse(p, count), nil
}

func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.projects.Delete(ctx, id)
}

func (s *Service) getOwned(ctx context.Context, userID string, id int64) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrAccessDenied
	}
	return p, nil
}

func toResponse(p *domain.Project, taskCount int64) *ProjectResponse {
	return &ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		UserID:      p.UserID,
		TaskCount:   taskCount,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
