package postgres

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/domain/user"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/testutil"
)

func TestUserRepository_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)

	tests := []struct {
		name    string
		user    *user.User
		wantErr bool
	}{
		{
			name:    "create user successfully",
			user:    &user.User{Email: "test@example.com"},
			wantErr: false,
		},
		{
			name:    "create another user",
			user:    &user.User{Email: "another@example.com", DisplayName: "Another"},
			wantErr: false,
		},
		{
			name:    "duplicate email",
			user:    &user.User{Email: "test@example.com"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.Create(context.Background(), tt.user)

			if (err != nil) != tt.wantErr {
				t.Errorf("Create() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr {
				if tt.user.ID == 0 {
					t.Error("Create() did not set user ID")
				}
				if tt.user.SubscriptionStatus != user.StatusInactive {
					t.Errorf("Create() status = %v, want %v", tt.user.SubscriptionStatus, user.StatusInactive)
				}
				if tt.user.Role != user.RoleUser {
					t.Errorf("Create() role = %v, want %v", tt.user.Role, user.RoleUser)
				}
			}
		})
	}
}

func TestUserRepository_GetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{Email: "test@example.com", IdentitySubject: testutil.Ptr("uid-1")}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := repo.GetByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Email != u.Email {
		t.Errorf("GetByID() email = %v, want %v", got.Email, u.Email)
	}
	if got.IdentitySubject == nil || *got.IdentitySubject != "uid-1" {
		t.Errorf("GetByID() subject = %v", got.IdentitySubject)
	}

	_, err = repo.GetByID(ctx, 999)
	if !errors.IsNotFound(err) {
		t.Errorf("GetByID() missing user error = %v, want not found", err)
	}
}

func TestUserRepository_CreateIfAbsent(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	first, created, err := repo.CreateIfAbsent(ctx, &user.User{Email: "a@x.com", DisplayName: "First"})
	if err != nil || !created {
		t.Fatalf("first CreateIfAbsent() = created %v, err %v", created, err)
	}

	second, created, err := repo.CreateIfAbsent(ctx, &user.User{Email: "a@x.com", DisplayName: "Second"})
	if err != nil {
		t.Fatalf("second CreateIfAbsent() error = %v", err)
	}
	if created {
		t.Error("second CreateIfAbsent() reported created")
	}
	if second.ID != first.ID || second.DisplayName != "First" {
		t.Errorf("second CreateIfAbsent() returned %+v, want the stored row", second)
	}
}

func TestUserRepository_CreateIfAbsent_Concurrent(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	const workers = 10
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		ids     = map[int64]bool{}
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			stored, ok, err := repo.CreateIfAbsent(ctx, &user.User{Email: "race@x.com"})
			if err != nil {
				t.Errorf("CreateIfAbsent() error = %v", err)
				return
			}
			mu.Lock()
			defer mu.Unlock()
			ids[stored.ID] = true
			if ok {
				created++
			}
		}()
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("created = %d, want exactly 1", created)
	}
	if len(ids) != 1 {
		t.Errorf("saw %d distinct ids, want 1", len(ids))
	}

	_, total, err := repo.List(ctx, 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 {
		t.Errorf("users = %d, want 1", total)
	}
}

func TestUserRepository_UpsertSubscription(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	ends := now.AddDate(0, 0, 30)

	u, err := repo.UpsertSubscription(ctx, user.SubscriptionChange{
		Email:       "new@x.com",
		Status:      user.StatusActive,
		EndsAt:      &ends,
		CustomerRef: testutil.Ptr("CUS_1"),
		At:          now,
	})
	if err != nil {
		t.Fatalf("UpsertSubscription() insert error = %v", err)
	}
	if u.SubscriptionStatus != user.StatusActive || u.SubscriptionEndsAt == nil || u.SubscriptionEndsAt.Unix() != ends.Unix() {
		t.Errorf("inserted user = %+v", u)
	}

	later := ends.AddDate(0, 0, 10)
	u2, err := repo.UpsertSubscription(ctx, user.SubscriptionChange{
		Email:  "new@x.com",
		Status: user.StatusActive,
		EndsAt: &later,
		At:     now.Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("UpsertSubscription() update error = %v", err)
	}
	if u2.ID != u.ID {
		t.Errorf("update created a new row")
	}
	if u2.SubscriptionEndsAt.Unix() != later.Unix() {
		t.Errorf("end date = %v, want %v", u2.SubscriptionEndsAt, later)
	}
	if u2.PaymentCustomerRef == nil || *u2.PaymentCustomerRef != "CUS_1" {
		t.Errorf("customer ref was not preserved: %v", u2.PaymentCustomerRef)
	}

	byRef, err := repo.GetByCustomerRef(ctx, "CUS_1")
	if err != nil || byRef.ID != u.ID {
		t.Errorf("GetByCustomerRef() = %v, %v", byRef, err)
	}
}

func TestUserRepository_SetSubscriptionStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{Email: "a@x.com", SubscriptionStatus: user.StatusActive}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	changed, err := repo.SetSubscriptionStatus(ctx, u.ID, user.StatusInactive, time.Now())
	if err != nil || !changed {
		t.Fatalf("first SetSubscriptionStatus() = %v, %v", changed, err)
	}

	changed, err = repo.SetSubscriptionStatus(ctx, u.ID, user.StatusInactive, time.Now())
	if err != nil {
		t.Fatalf("second SetSubscriptionStatus() error = %v", err)
	}
	if changed {
		t.Error("second SetSubscriptionStatus() should be a no-op")
	}
}

func TestUserRepository_ExpireSubscriptions(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	lapsed := &user.User{Email: "lapsed@x.com", SubscriptionStatus: user.StatusActive, SubscriptionEndsAt: &past}
	boundary := &user.User{Email: "boundary@x.com", SubscriptionStatus: user.StatusActive, SubscriptionEndsAt: &now}
	current := &user.User{Email: "current@x.com", SubscriptionStatus: user.StatusActive, SubscriptionEndsAt: &future}
	for _, u := range []*user.User{lapsed, boundary, current} {
		if err := repo.Create(ctx, u); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	n, err := repo.ExpireSubscriptions(ctx, now)
	if err != nil {
		t.Fatalf("ExpireSubscriptions() error = %v", err)
	}
	if n != 2 {
		t.Errorf("ExpireSubscriptions() = %d, want 2", n)
	}

	got, _ := repo.GetByID(ctx, current.ID)
	if got.SubscriptionStatus != user.StatusActive {
		t.Errorf("current subscription was expired")
	}
	got, _ = repo.GetByID(ctx, boundary.ID)
	if got.SubscriptionStatus != user.StatusInactive {
		t.Errorf("subscription ending exactly now should be expired")
	}
}

func TestUserRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer testutil.CleanupDB(db)

	repo := NewUserRepository(db)
	ctx := context.Background()

	u := &user.User{Email: "a@x.com"}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	u.DisplayName = "Ada"
	if err := repo.Update(ctx, u); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, _ := repo.GetByID(ctx, u.ID)
	if got.DisplayName != "Ada" {
		t.Errorf("Update() display name = %q", got.DisplayName)
	}

	if err := repo.Update(ctx, &user.User{ID: 999}); !errors.IsNotFound(err) {
		t.Errorf("Update() missing user error = %v, want not found", err)
	}
}
