package task

import (
	"context"
	"errors"

	"taskhub/internal/domain"
	"taskhub/internal/repository"

	"gorm.io/gorm"
)

// Service owns task CRUD. A task is always created inside a project the
// calling user owns; reads and writes on someone else's task are
// ErrAccessDenied, never leaked.
type Service struct {
	tasks    TaskRepositoryInterface
	projects ProjectReader
}

func NewService(tasks TaskRepositoryInterface, projects ProjectReader) *Service {
	return &Service{tasks: tasks, projects: projects}
}

func (s *Service) Create(ctx context.Context, userID string, req CreateTaskRequest) (*TaskResponse, error) {
	p, err := s.ownedProject(ctx, userID, req.ProjectID)
	if err != nil {
		return nil, err
	}

	t := &domain.Task{
		Title:       req.Title,
		Description: req.Description,
		Status:      domain.TaskStatusPending,
		Priority:    domain.TaskPriorityMedium,
		DueDate:     req.DueDate,
		ProjectID:   req.ProjectID,
		UserID:      userID,
	}
	if req.Status != "" {
		t.Status = domain.TaskStatus(req.Status)
	}
	if req.Priority != "" {
		t.Priority = domain.TaskPriority(req.Priority)
	}

	if err := s.tasks.Create(ctx, t); err != nil {
		return nil, err
	}
	t.Project = *p
	return toResponse(t), nil
}

func (s *Service) List(ctx context.Context, userID string, req FilterTasksRequest) ([]TaskResponse, error) {
	// A project filter only returns tasks from projects the user owns;
	// ListByUser scopes by user_id so a foreign project id yields nothing.
	filter := repository.TaskFilter{
		ProjectID: req.ProjectID,
		Status:    domain.TaskStatus(req.Status),
		Priority:  domain.TaskPriority(req.Priority),
	}

	rows, err := s.tasks.ListByUser(ctx, userID, filter)
	if err != nil {
		return nil, err
	}

	out := make([]TaskResponse, 0, len(rows))
	for i := range rows {
		out = append(out, *toResponse(&rows[i]))
	}
	return out, nil
}

func (s *Service) Get(ctx context.Context, userID string, id int64) (*TaskResponse, error) {
	t, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	return toResponse(t), nil
}

func (s *Service) Update(ctx context.Context, userID string, id int64, req UpdateTaskRequest) (*TaskResponse, error) {
	t, err := s.getOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil && *req.Title != "" {
		t.Title = *req.Title
	}
	if req.Description != nil {
		t.Description = *req.Description
	}
	if req.Status != nil {
		t.Status = domain.TaskStatus(*req.Status)
	}
	if req.Priority != nil {
		t.Priority = domain.TaskPriority(*req.Priority)
	}
	if req.DueDate != nil {
		t.DueDate = req.DueDate
	}

	if err := s.tasks.Update(ctx, t); err != nil {
		return nil, err
	}
	return toResponse(t), nil
}

func (s *Service) Delete(ctx context.Context, userID string, id int64) error {
	if _, err := s.getOwned(ctx, userID, id); err != nil {
		return err
	}
	return s.tasks.Delete(ctx, id)
}

func (s *Service) getOwned(ctx context.Context, userID string, id int64) (*domain.Task, error) {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if t.UserID != userID {
		return nil, ErrAccessDenied
	}
	return t, nil
}

func (s *Service) ownedProject(ctx context.Context, userID string, projectID int64) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, err
	}
	if p.UserID != userID {
		return nil, ErrProjectAccessDenied
	}
	return p, nil
}

func toResponse(t *domain.Task) *TaskResponse {
	resp := &TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate,
		ProjectID:   t.ProjectID,
		UserID:      t.UserID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
	if t.Project.ID != 0 {
		resp.Project = &TaskProject{ID: t.Project.ID, Name: t.Project.Name}
	}
	return resp
}
