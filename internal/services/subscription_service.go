package services

import (
	"context"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/domain/identity"
	"github.com/pratik-mahalle/proftrack/internal/domain/subscription"
	"github.com/pratik-mahalle/proftrack/internal/domain/user"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/pkg/metrics"
)

// SubscriptionService implements subscription.Ledger on the user store
type SubscriptionService struct {
	users  user.Repository
	now    func() time.Time
	logger *logger.Logger
}

// NewSubscriptionService creates a new ledger. A nil now uses time.Now.
func NewSubscriptionService(users user.Repository, now func() time.Time, log *logger.Logger) subscription.Ledger {
	if now == nil {
		now = time.Now
	}
	return &SubscriptionService{
		users:  users,
		now:    now,
		logger: log,
	}
}

// Activate marks the subscription for email active for days from now
func (s *SubscriptionService) Activate(ctx context.Context, email string, days int, customerRef string) (*user.User, error) {
	email = identity.NormalizeEmail(email)
	if email == "" {
		return nil, errors.ValidationError("Email is required to activate a subscription", nil)
	}
	if days < 1 {
		return nil, errors.ValidationError("Subscription length must be at least one day", nil)
	}

	now := s.now()
	endsAt := now.Add(time.Duration(days) * 24 * time.Hour)
	change := user.SubscriptionChange{
		Email:  email,
		Status: user.StatusActive,
		EndsAt: &endsAt,
		At:     now,
	}
	if customerRef != "" {
		change.CustomerRef = &customerRef
	}

	u, err := s.users.UpsertSubscription(ctx, change)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to activate subscription")
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id": u.ID,
		"email":   u.Email,
		"ends_at": endsAt.Format(time.RFC3339),
	}).Info("Subscription activated")

	return u, nil
}

// Deactivate marks the subscription inactive
func (s *SubscriptionService) Deactivate(ctx context.Context, userID int64) error {
	changed, err := s.users.SetSubscriptionStatus(ctx, userID, user.StatusInactive, s.now())
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to deactivate subscription")
		return err
	}

	if changed {
		s.logger.WithFields(map[string]interface{}{
			"user_id": userID,
		}).Info("Subscription deactivated")
	}
	return nil
}

// Access evaluates the stored subscription of userID at the current time
func (s *SubscriptionService) Access(ctx context.Context, userID int64) (subscription.Access, error) {
	u, err := s.users.GetByID(ctx, userID)
	if errors.IsNotFound(err) {
		return subscription.Evaluate(nil, s.now()), nil
	}
	if err != nil {
		return subscription.Access{}, err
	}
	return subscription.Evaluate(u, s.now()), nil
}

// ExpireLapsed flips lapsed ACTIVE subscriptions to INACTIVE
func (s *SubscriptionService) ExpireLapsed(ctx context.Context) (int64, error) {
	n, err := s.users.ExpireSubscriptions(ctx, s.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		metrics.RecordExpired(n)
		s.logger.Infof("Expired %d lapsed subscriptions", n)
	}
	return n, nil
}
