package services

import (
	"context"
	"strings"

	"github.com/pratik-mahalle/proftrack/internal/domain/user"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
)

const maxDisplayNameLength = 100

// UserService implements user.Service
type UserService struct {
	repo   user.Repository
	logger *logger.Logger
}

// NewUserService creates a new user service
func NewUserService(repo user.Repository, log *logger.Logger) user.Service {
	return &UserService{
		repo:   repo,
		logger: log,
	}
}

// GetByID retrieves a user by ID
func (s *UserService) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return s.repo.GetByID(ctx, id)
}

// UpdateProfile changes the display name of a user
func (s *UserService) UpdateProfile(ctx context.Context, id int64, displayName string) (*user.User, error) {
	displayName = strings.TrimSpace(displayName)
	if displayName == "" {
		return nil, errors.ValidationError("Display name is required", nil)
	}
	if len([]rune(displayName)) > maxDisplayNameLength {
		return nil, errors.ValidationError("Display name is too long", nil)
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	u.DisplayName = displayName
	if err := s.repo.Update(ctx, u); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update profile")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
	}).Info("Profile updated")

	return u, nil
}
