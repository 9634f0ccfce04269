package dto

import (
	"time"

	"github.com/pratik-mahalle/proftrack/internal/domain/subscription"
	"github.com/pratik-mahalle/proftrack/internal/domain/user"
)

// ProfileDTO is the signed-in user's own view of their account
type ProfileDTO struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	DisplayName        string     `json:"display_name"`
	Role               string     `json:"role"`
	SubscriptionStatus string     `json:"subscription_status"`
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// UpdateProfileRequest changes profile fields
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=1,max=100"`
}

// BillingStatusDTO explains whether the subscription currently grants access
type BillingStatusDTO struct {
	Status string     `json:"status"`
	EndsAt *time.Time `json:"ends_at,omitempty"`
	Active bool       `json:"active"`
	Reason string     `json:"reason,omitempty"`
}

// ProfileToDTO converts a domain user
func ProfileToDTO(u *user.User) ProfileDTO {
	return ProfileDTO{
		ID:                 u.ID,
		Email:              u.Email,
		DisplayName:        u.DisplayName,
		Role:               u.Role,
		SubscriptionStatus: u.SubscriptionStatus,
		SubscriptionEndsAt: u.SubscriptionEndsAt,
		CreatedAt:          u.CreatedAt,
	}
}

// BillingStatusFromAccess converts a subscription evaluation
func BillingStatusFromAccess(a subscription.Access) BillingStatusDTO {
	return BillingStatusDTO{
		Status: a.Status,
		EndsAt: a.EndsAt,
		Active: a.Active,
		Reason: a.Reason,
	}
}
