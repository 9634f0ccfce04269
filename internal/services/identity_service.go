package services

import (
	"context"
	stderrors "errors"

	"github.com/pratik-mahalle/proftrack/internal/domain/identity"
	"github.com/pratik-mahalle/proftrack/internal/domain/user"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/pkg/metrics"
)

// IdentityService implements identity.Verifier. It resolves bearer tokens
// through a CredentialResolver and maps the verified email onto a local
// user, creating the row on first sight.
type IdentityService struct {
	resolver identity.CredentialResolver
	users    user.Repository
	logger   *logger.Logger
}

// NewIdentityService creates a new identity verifier
func NewIdentityService(resolver identity.CredentialResolver, users user.Repository, log *logger.Logger) identity.Verifier {
	return &IdentityService{
		resolver: resolver,
		users:    users,
		logger:   log,
	}
}

// Verify resolves an Authorization header value to a principal
func (s *IdentityService) Verify(ctx context.Context, header string) (*identity.Principal, bool) {
	token, ok := identity.BearerToken(header)
	if !ok {
		metrics.RecordIdentityVerification("missing")
		return nil, false
	}

	id, err := s.resolver.Resolve(ctx, token)
	if err != nil {
		if stderrors.Is(err, identity.ErrProviderUnavailable) {
			metrics.RecordIdentityVerification("provider_unavailable")
			s.logger.WithFields(map[string]interface{}{
				"resolver": s.resolver.Name(),
			}).WithError(err).Warn("Identity provider unreachable")
		} else {
			metrics.RecordIdentityVerification("rejected")
			s.logger.WithFields(map[string]interface{}{
				"resolver": s.resolver.Name(),
			}).WithError(err).Debug("Token rejected")
		}
		return nil, false
	}

	email := identity.NormalizeEmail(id.Email)
	if email == "" {
		metrics.RecordIdentityVerification("rejected")
		s.logger.Debug("Token has no email claim")
		return nil, false
	}
	// email is the key shared with the store and the payment provider
	if !id.EmailVerified {
		metrics.RecordIdentityVerification("unverified_email")
		s.logger.WithFields(map[string]interface{}{
			"resolver": s.resolver.Name(),
			"subject":  id.Subject,
		}).Info("Token email is not verified")
		return nil, false
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil && !errors.IsNotFound(err) {
		metrics.RecordIdentityVerification("store_error")
		s.logger.ErrorWithErr(err, "Failed to look up user for token")
		return nil, false
	}

	if u == nil {
		u, err = s.createOnFirstSight(ctx, email, id)
		if err != nil {
			metrics.RecordIdentityVerification("store_error")
			s.logger.ErrorWithErr(err, "Failed to create user for token")
			return nil, false
		}
	}

	metrics.RecordIdentityVerification("ok")
	return &identity.Principal{
		UserID:  u.ID,
		Email:   u.Email,
		Subject: id.Subject,
	}, true
}

func (s *IdentityService) createOnFirstSight(ctx context.Context, email string, id *identity.Identity) (*user.User, error) {
	candidate := &user.User{
		Email:              email,
		DisplayName:        id.DisplayName,
		Role:               user.RoleUser,
		SubscriptionStatus: user.StatusInactive,
	}
	if id.Subject != "" {
		subject := id.Subject
		candidate.IdentitySubject = &subject
	}

	stored, created, err := s.users.CreateIfAbsent(ctx, candidate)
	if err != nil {
		return nil, err
	}

	if created {
		s.logger.WithFields(map[string]interface{}{
			"user_id": stored.ID,
			"email":   stored.Email,
		}).Info("User created on first sign-in")
	}
	return stored, nil
}
