package services

import (
	"context"
	"testing"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/domain/subscription"
	"github.com/pratik-mahalle/proftrack/internal/domain/user"
	"github.com/pratik-mahalle/proftrack/internal/testutil"
)

func TestSubscriptionService_Activate(t *testing.T) {
	clock := testutil.NewClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	users := testutil.NewMockUserRepository()
	ledger := NewSubscriptionService(users, clock.Now, newTestLogger())
	ctx := context.Background()

	u, err := ledger.Activate(ctx, " A@X.com ", 30, "CUS_1")
	if err != nil {
		t.Fatalf("Activate() error = %v", err)
	}
	if u.Email != "a@x.com" {
		t.Errorf("Activate() email = %q, want normalized", u.Email)
	}
	if u.SubscriptionStatus != user.StatusActive {
		t.Errorf("Activate() status = %q", u.SubscriptionStatus)
	}
	want := clock.Now().AddDate(0, 0, 30)
	if u.SubscriptionEndsAt == nil || !u.SubscriptionEndsAt.Equal(want) {
		t.Errorf("Activate() ends at %v, want %v", u.SubscriptionEndsAt, want)
	}

	clock.Advance(10 * 24 * time.Hour)
	u2, err := ledger.Activate(ctx, "a@x.com", 30, "")
	if err != nil {
		t.Fatalf("second Activate() error = %v", err)
	}
	want = clock.Now().AddDate(0, 0, 30)
	if !u2.SubscriptionEndsAt.Equal(want) {
		t.Errorf("second Activate() ends at %v, want %v (reset, not extended)", u2.SubscriptionEndsAt, want)
	}
	if u2.ID != u.ID {
		t.Errorf("second Activate() created a new user")
	}
	if u2.PaymentCustomerRef == nil || *u2.PaymentCustomerRef != "CUS_1" {
		t.Errorf("customer ref lost on reactivation")
	}
}

func TestSubscriptionService_ActivateValidation(t *testing.T) {
	ledger := NewSubscriptionService(testutil.NewMockUserRepository(), nil, newTestLogger())
	ctx := context.Background()

	if _, err := ledger.Activate(ctx, "  ", 30, ""); err == nil {
		t.Error("expected error for empty email")
	}
	if _, err := ledger.Activate(ctx, "a@x.com", 0, ""); err == nil {
		t.Error("expected error for zero days")
	}
}

func TestSubscriptionService_Deactivate(t *testing.T) {
	users := testutil.NewMockUserRepository()
	ends := time.Now().Add(time.Hour)
	u := users.Add(&user.User{Email: "a@x.com", SubscriptionStatus: user.StatusActive, SubscriptionEndsAt: &ends})
	ledger := NewSubscriptionService(users, nil, newTestLogger())
	ctx := context.Background()

	if err := ledger.Deactivate(ctx, u.ID); err != nil {
		t.Fatalf("Deactivate() error = %v", err)
	}
	if err := ledger.Deactivate(ctx, u.ID); err != nil {
		t.Fatalf("second Deactivate() error = %v", err)
	}
	if got := users.WriteCount(); got != 1 {
		t.Errorf("writes = %d, want 1", got)
	}

	access, err := ledger.Access(ctx, u.ID)
	if err != nil {
		t.Fatalf("Access() error = %v", err)
	}
	if access.Active || access.Reason != subscription.ReasonInactive {
		t.Errorf("Access() = %+v, want inactive", access)
	}
}

func TestSubscriptionService_Access(t *testing.T) {
	clock := testutil.NewClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	users := testutil.NewMockUserRepository()
	ledger := NewSubscriptionService(users, clock.Now, newTestLogger())
	ctx := context.Background()

	access, err := ledger.Access(ctx, 42)
	if err != nil {
		t.Fatalf("Access() unknown user error = %v", err)
	}
	if access.Active || access.Reason != subscription.ReasonNoAccount {
		t.Errorf("Access() unknown user = %+v", access)
	}

	u, _ := ledger.Activate(ctx, "a@x.com", 1, "")
	access, _ = ledger.Access(ctx, u.ID)
	if !access.Active {
		t.Errorf("Access() right after activation = %+v", access)
	}

	clock.Advance(24 * time.Hour)
	access, _ = ledger.Access(ctx, u.ID)
	if access.Active || access.Reason != subscription.ReasonExpired {
		t.Errorf("Access() at end instant = %+v, want expired", access)
	}
}

func TestSubscriptionService_ExpireLapsed(t *testing.T) {
	clock := testutil.NewClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	users := testutil.NewMockUserRepository()
	ledger := NewSubscriptionService(users, clock.Now, newTestLogger())
	ctx := context.Background()

	short, _ := ledger.Activate(ctx, "short@x.com", 1, "")
	long, _ := ledger.Activate(ctx, "long@x.com", 30, "")

	clock.Advance(48 * time.Hour)
	n, err := ledger.ExpireLapsed(ctx)
	if err != nil {
		t.Fatalf("ExpireLapsed() error = %v", err)
	}
	if n != 1 {
		t.Errorf("ExpireLapsed() = %d, want 1", n)
	}

	got, _ := users.GetByID(ctx, short.ID)
	if got.SubscriptionStatus != user.StatusInactive {
		t.Errorf("short subscription not expired")
	}
	got, _ = users.GetByID(ctx, long.ID)
	if got.SubscriptionStatus != user.StatusActive {
		t.Errorf("long subscription expired early")
	}

	access, err := ledger.Access(ctx, short.ID)
	if err != nil {
		t.Fatalf("Access() error = %v", err)
	}
	if access.Active || access.Reason != subscription.ReasonExpired {
		t.Errorf("Access() after sweep = %+v, want expired", access)
	}
}
