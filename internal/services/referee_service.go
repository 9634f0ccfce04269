package services

import (
	"context"
	"strings"

	"github.com/pratik-mahalle/proftrack/internal/domain/project"
	"github.com/pratik-mahalle/proftrack/internal/domain/referee"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
)

// RefereeService implements referee.Service
type RefereeService struct {
	repo     referee.Repository
	projects project.Repository
	logger   *logger.Logger
}

// NewRefereeService creates a new referee service
func NewRefereeService(repo referee.Repository, projects project.Repository, log *logger.Logger) referee.Service {
	return &RefereeService{
		repo:     repo,
		projects: projects,
		logger:   log,
	}
}

// Create creates a new referee
func (s *RefereeService) Create(ctx context.Context, r *referee.Referee) error {
	if err := s.validate(ctx, r); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, r); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create referee")
		return err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    r.UserID,
		"referee_id": r.ID,
	}).Info("Referee created")

	return nil
}

// GetByID retrieves a referee by ID
func (s *RefereeService) GetByID(ctx context.Context, userID, id int64) (*referee.Referee, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// Update applies patch to a referee owned by userID
func (s *RefereeService) Update(ctx context.Context, userID, id int64, patch referee.Patch) (*referee.Referee, error) {
	r, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(r)
	if err := s.validate(ctx, r); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, r); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update referee")
		return nil, err
	}
	return r, nil
}

// Delete deletes a referee
func (s *RefereeService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}

// List retrieves the referees of a user
func (s *RefereeService) List(ctx context.Context, userID int64, filter referee.Filter) ([]*referee.Referee, error) {
	return s.repo.List(ctx, userID, filter)
}

func (s *RefereeService) validate(ctx context.Context, r *referee.Referee) error {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = strings.TrimSpace(r.Email)
	if r.FullName == "" {
		return errors.ValidationError("Referee name is required", nil)
	}
	if r.Email == "" {
		return errors.ValidationError("Referee email is required", nil)
	}

	// A linked project has to belong to the same user.
	if r.ProjectID != nil {
		if _, err := s.projects.GetByID(ctx, r.UserID, *r.ProjectID); err != nil {
			return err
		}
	}
	return nil
}
