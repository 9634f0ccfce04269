package services

import (
	"context"
	"strings"

	"github.com/pratik-mahalle/proftrack/internal/domain/project"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
)

// ProjectService implements project.Service
type ProjectService struct {
	repo   project.Repository
	logger *logger.Logger
}

// NewProjectService creates a new project service
func NewProjectService(repo project.Repository, log *logger.Logger) project.Service {
	return &ProjectService{
		repo:   repo,
		logger: log,
	}
}

// Create creates a new project
func (s *ProjectService) Create(ctx context.Context, p *project.Project) error {
	if p.Status == "" {
		p.Status = project.StatusActive
	}
	if err := validateProject(p); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create project")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    p.UserID,
		"project_id": p.ID,
	}).Info("Project created")

	return nil
}

// GetByID retrieves a project by ID
func (s *ProjectService) GetByID(ctx context.Context, userID, id int64) (*project.Project, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// Update applies patch to a project owned by userID
func (s *ProjectService) Update(ctx context.Context, userID, id int64, patch project.Patch) (*project.Project, error) {
	p, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(p)
	if err := validateProject(p); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, p); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update project")
		return nil, err
	}

	return p, nil
}

// Delete deletes a project
func (s *ProjectService) Delete(ctx context.Context, userID, id int64) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    userID,
		"project_id": id,
	}).Info("Project deleted")

	return nil
}

// List retrieves projects with filters and pagination
func (s *ProjectService) List(ctx context.Context, userID int64, filter project.Filter, limit, offset int) ([]*project.Project, int64, error) {
	return s.repo.List(ctx, userID, filter, limit, offset)
}

func validateProject(p *project.Project) error {
	p.Title = strings.TrimSpace(p.Title)
	if p.Title == "" {
		return errors.ValidationError("Project title is required", nil)
	}

	switch p.Status {
	case project.StatusPlanned, project.StatusActive, project.StatusCompleted:
	default:
		return errors.ValidationError("Invalid project status", map[string]string{"status": p.Status})
	}

	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return errors.ValidationError("Project end date is before its start date", nil)
	}
	return nil
}
