package user

import "time"

// User is a person known to the system. Email is the correlation key shared
// with the identity provider and the payment provider.
type User struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	DisplayName        string     `json:"display_name"`
	Role               string     `json:"role"`
	SubscriptionStatus string     `json:"subscription_status"`
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at,omitempty"`
	PaymentCustomerRef *string    `json:"-"`
	IdentitySubject    *string    `json:"-"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// Subscription statuses
const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
	StatusPending  = "PENDING"
)

// User roles
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// SubscriptionChange describes a ledger write keyed by email
type SubscriptionChange struct {
	Email       string
	Status      string
	EndsAt      *time.Time
	CustomerRef *string
	At          time.Time
}
