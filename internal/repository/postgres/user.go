package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/db"
	"github.com/pratik-mahalle/proftrack/internal/domain/user"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
)

const userColumns = `id, email, display_name, role, subscription_status, subscription_ends_at,
	payment_customer_ref, identity_subject, created_at, updated_at`

// UserRepository implements user.Repository
type UserRepository struct {
	db *db.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(database *db.DB) user.Repository {
	return &UserRepository{db: database}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	applyUserDefaults(u)

	query := `
		INSERT INTO users (email, display_name, role, subscription_status, subscription_ends_at,
			payment_customer_ref, identity_subject, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, r.db.Rebind(query),
		u.Email, u.DisplayName, u.Role, u.SubscriptionStatus, unixOrNil(u.SubscriptionEndsAt),
		u.PaymentCustomerRef, u.IdentitySubject, u.CreatedAt.Unix(), u.UpdatedAt.Unix(),
	).Scan(&u.ID)
	if err != nil {
		return errors.DatabaseError("Failed to create user", err)
	}

	return nil
}

// CreateIfAbsent inserts the user unless the email is already present
func (r *UserRepository) CreateIfAbsent(ctx context.Context, u *user.User) (*user.User, bool, error) {
	applyUserDefaults(u)

	query := `
		INSERT INTO users (email, display_name, role, subscription_status, subscription_ends_at,
			payment_customer_ref, identity_subject, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (email) DO NOTHING
	`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		u.Email, u.DisplayName, u.Role, u.SubscriptionStatus, unixOrNil(u.SubscriptionEndsAt),
		u.PaymentCustomerRef, u.IdentitySubject, u.CreatedAt.Unix(), u.UpdatedAt.Unix(),
	)
	if err != nil {
		return nil, false, errors.DatabaseError("Failed to create user", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return nil, false, errors.DatabaseError("Failed to get affected rows", err)
	}

	stored, err := r.GetByEmail(ctx, u.Email)
	if err != nil {
		return nil, false, err
	}
	return stored, affected == 1, nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// GetByCustomerRef retrieves a user by the payment provider's customer code
func (r *UserRepository) GetByCustomerRef(ctx context.Context, ref string) (*user.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE payment_customer_ref = ?`, ref)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg interface{}) (*user.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, r.db.Rebind(query), arg))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("User")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get user", err)
	}
	return u, nil
}

// Update updates profile fields of a user
func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	u.UpdatedAt = time.Now()

	query := `UPDATE users SET display_name = ?, role = ?, updated_at = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), u.DisplayName, u.Role, u.UpdatedAt.Unix(), u.ID)
	if err != nil {
		return errors.DatabaseError("Failed to update user", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return errors.DatabaseError("Failed to get affected rows", err)
	}
	if rows == 0 {
		return errors.NotFound("User")
	}

	return nil
}

// UpsertSubscription writes the subscription fields keyed by email
func (r *UserRepository) UpsertSubscription(ctx context.Context, c user.SubscriptionChange) (*user.User, error) {
	query := `
		INSERT INTO users (email, display_name, role, subscription_status, subscription_ends_at,
			payment_customer_ref, created_at, updated_at)
		VALUES (?, '', ?, ?, ?, ?, ?, ?)
		ON CONFLICT (email) DO UPDATE SET
			subscription_status = excluded.subscription_status,
			subscription_ends_at = excluded.subscription_ends_at,
			payment_customer_ref = COALESCE(excluded.payment_customer_ref, users.payment_customer_ref),
			updated_at = excluded.updated_at
	`

	_, err := r.db.ExecContext(ctx, r.db.Rebind(query),
		c.Email, user.RoleUser, c.Status, unixOrNil(c.EndsAt), c.CustomerRef, c.At.Unix(), c.At.Unix(),
	)
	if err != nil {
		return nil, errors.DatabaseError("Failed to upsert subscription", err)
	}

	return r.GetByEmail(ctx, c.Email)
}

// SetSubscriptionStatus updates the status when it differs from the stored one
func (r *UserRepository) SetSubscriptionStatus(ctx context.Context, id int64, status string, at time.Time) (bool, error) {
	query := `UPDATE users SET subscription_status = ?, updated_at = ? WHERE id = ? AND subscription_status <> ?`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), status, at.Unix(), id, status)
	if err != nil {
		return false, errors.DatabaseError("Failed to update subscription status", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return false, errors.DatabaseError("Failed to get affected rows", err)
	}
	return rows > 0, nil
}

// ExpireSubscriptions flips lapsed ACTIVE subscriptions to INACTIVE
func (r *UserRepository) ExpireSubscriptions(ctx context.Context, now time.Time) (int64, error) {
	query := `
		UPDATE users SET subscription_status = ?, updated_at = ?
		WHERE subscription_status = ?
		  AND (subscription_ends_at IS NULL OR subscription_ends_at <= ?)
	`

	result, err := r.db.ExecContext(ctx, r.db.Rebind(query), user.StatusInactive, now.Unix(), user.StatusActive, now.Unix())
	if err != nil {
		return 0, errors.DatabaseError("Failed to expire subscriptions", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}
	return rows, nil
}

// List retrieves all users with pagination
func (r *UserRepository) List(ctx context.Context, limit, offset int) ([]*user.User, int64, error) {
	var total int64
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&total); err != nil {
		return nil, 0, errors.DatabaseError("Failed to count users", err)
	}

	query := `SELECT ` + userColumns + ` FROM users ORDER BY id DESC LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, r.db.Rebind(query), limit, offset)
	if err != nil {
		return nil, 0, errors.DatabaseError("Failed to list users", err)
	}
	defer rows.Close()

	var users []*user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, errors.DatabaseError("Failed to scan user", err)
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, errors.DatabaseError("Failed to iterate users", err)
	}

	return users, total, nil
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	var endsAt sql.NullInt64
	var customerRef, subject sql.NullString
	var createdAt, updatedAt int64

	err := row.Scan(&u.ID, &u.Email, &u.DisplayName, &u.Role, &u.SubscriptionStatus, &endsAt,
		&customerRef, &subject, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	u.SubscriptionEndsAt = timeOrNil(endsAt)
	u.PaymentCustomerRef = stringOrNil(customerRef)
	u.IdentitySubject = stringOrNil(subject)
	u.CreatedAt = time.Unix(createdAt, 0)
	u.UpdatedAt = time.Unix(updatedAt, 0)
	return &u, nil
}

func applyUserDefaults(u *user.User) {
	now := time.Now()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = u.CreatedAt
	if u.Role == "" {
		u.Role = user.RoleUser
	}
	if u.SubscriptionStatus == "" {
		u.SubscriptionStatus = user.StatusInactive
	}
}
