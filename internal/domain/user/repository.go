package user

import (
	"context"
	"time"
)

// Repository defines the interface for user data access
type Repository interface {
	// Create inserts a new user and fails if the email is taken
	Create(ctx context.Context, user *User) error

	// CreateIfAbsent inserts the user unless the email already exists and
	// returns the stored row. created is false when another writer won.
	CreateIfAbsent(ctx context.Context, user *User) (stored *User, created bool, err error)

	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByCustomerRef(ctx context.Context, ref string) (*User, error)

	// Update persists profile fields
	Update(ctx context.Context, user *User) error

	// UpsertSubscription writes subscription fields for the email, creating
	// the user when it does not exist yet.
	UpsertSubscription(ctx context.Context, change SubscriptionChange) (*User, error)

	// SetSubscriptionStatus changes the status only when it differs and
	// reports whether a row was modified.
	SetSubscriptionStatus(ctx context.Context, id int64, status string, at time.Time) (bool, error)

	// ExpireSubscriptions marks ACTIVE users whose end date is not after
	// now as INACTIVE.
	ExpireSubscriptions(ctx context.Context, now time.Time) (int64, error)

	List(ctx context.Context, limit, offset int) ([]*User, int64, error)
}
