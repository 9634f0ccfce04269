package subscription

import (
	"testing"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/domain/user"
)

func TestIsActive(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Second)
	future := now.Add(time.Second)

	tests := []struct {
		name string
		user *user.User
		want bool
	}{
		{name: "nil user", user: nil, want: false},
		{name: "active without end date", user: &user.User{SubscriptionStatus: user.StatusActive}, want: false},
		{name: "active ended in the past", user: &user.User{SubscriptionStatus: user.StatusActive, SubscriptionEndsAt: &past}, want: false},
		{name: "active ending exactly now", user: &user.User{SubscriptionStatus: user.StatusActive, SubscriptionEndsAt: &now}, want: false},
		{name: "active ending in the future", user: &user.User{SubscriptionStatus: user.StatusActive, SubscriptionEndsAt: &future}, want: true},
		{name: "inactive with future end date", user: &user.User{SubscriptionStatus: user.StatusInactive, SubscriptionEndsAt: &future}, want: false},
		{name: "pending with future end date", user: &user.User{SubscriptionStatus: user.StatusPending, SubscriptionEndsAt: &future}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsActive(tt.user, now); got != tt.want {
				t.Errorf("IsActive() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestEvaluate(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name       string
		user       *user.User
		wantActive bool
		wantReason string
	}{
		{name: "no account", user: nil, wantReason: ReasonNoAccount},
		{name: "inactive", user: &user.User{SubscriptionStatus: user.StatusInactive}, wantReason: ReasonInactive},
		{name: "expired", user: &user.User{SubscriptionStatus: user.StatusActive, SubscriptionEndsAt: &past}, wantReason: ReasonExpired},
		{name: "expired and swept", user: &user.User{SubscriptionStatus: user.StatusInactive, SubscriptionEndsAt: &past}, wantReason: ReasonExpired},
		{name: "ending exactly now", user: &user.User{SubscriptionStatus: user.StatusActive, SubscriptionEndsAt: &now}, wantReason: ReasonExpired},
		{name: "cancelled before end date", user: &user.User{SubscriptionStatus: user.StatusInactive, SubscriptionEndsAt: &future}, wantReason: ReasonInactive},
		{name: "active without end date", user: &user.User{SubscriptionStatus: user.StatusActive}, wantReason: ReasonInactive},
		{name: "active", user: &user.User{SubscriptionStatus: user.StatusActive, SubscriptionEndsAt: &future}, wantActive: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.user, now)
			if got.Active != tt.wantActive {
				t.Errorf("Evaluate().Active = %v, want %v", got.Active, tt.wantActive)
			}
			if got.Reason != tt.wantReason {
				t.Errorf("Evaluate().Reason = %q, want %q", got.Reason, tt.wantReason)
			}
		})
	}
}
