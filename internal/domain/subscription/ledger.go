package subscription

import (
	"context"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/domain/user"
)

// Reason codes carried on denied requests. The gate sees every caller after
// the verifier has stored them, so ReasonNoAccount only reaches billing
// status lookups for users that no longer exist.
const (
	ReasonNoAccount = "no_account"
	ReasonInactive  = "inactive_subscription"
	ReasonExpired   = "subscription_expired"
)

// Access is the outcome of evaluating a user's subscription at an instant
type Access struct {
	Active bool       `json:"active"`
	Reason string     `json:"reason,omitempty"`
	Status string     `json:"status"`
	EndsAt *time.Time `json:"ends_at,omitempty"`
}

// IsActive reports whether the subscription is ACTIVE with an end date
// strictly after now.
func IsActive(u *user.User, now time.Time) bool {
	if u == nil || u.SubscriptionStatus != user.StatusActive || u.SubscriptionEndsAt == nil {
		return false
	}
	return u.SubscriptionEndsAt.After(now)
}

// Evaluate explains IsActive with a reason code. A subscription whose end
// date has passed reads as expired whether or not the sweeper has already
// flipped it to INACTIVE; one that was never paid, or was cancelled before
// its end date, reads as inactive.
func Evaluate(u *user.User, now time.Time) Access {
	if u == nil {
		return Access{Reason: ReasonNoAccount, Status: user.StatusInactive}
	}

	access := Access{Status: u.SubscriptionStatus, EndsAt: u.SubscriptionEndsAt}
	switch {
	case IsActive(u, now):
		access.Active = true
	case u.SubscriptionEndsAt != nil && !u.SubscriptionEndsAt.After(now):
		access.Reason = ReasonExpired
	case u.SubscriptionStatus != user.StatusActive:
		access.Reason = ReasonInactive
	default:
		// ACTIVE without an end date
		access.Reason = ReasonInactive
	}
	return access
}

// Ledger tracks subscription status and expiry per user
type Ledger interface {
	// Activate upserts by email: status ACTIVE, end date now+days. Repeated
	// calls overwrite the end date rather than extend it.
	Activate(ctx context.Context, email string, days int, customerRef string) (*user.User, error)

	// Deactivate sets status INACTIVE; a no-op when already inactive
	Deactivate(ctx context.Context, userID int64) error

	// Access evaluates the stored subscription of a user at the current time
	Access(ctx context.Context, userID int64) (Access, error)

	// ExpireLapsed marks lapsed ACTIVE subscriptions INACTIVE
	ExpireLapsed(ctx context.Context) (int64, error)
}
