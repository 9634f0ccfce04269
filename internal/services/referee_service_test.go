package services

import (
	"context"
	"testing"

	"github.com/pratik-mahalle/proftrack/internal/domain/project"
	"github.com/pratik-mahalle/proftrack/internal/domain/referee"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/testutil"
)

func TestRefereeService_Create(t *testing.T) {
	projects := testutil.NewMockProjectRepository()
	owned := &project.Project{UserID: 1, Title: "Mine", Status: project.StatusActive}
	foreign := &project.Project{UserID: 2, Title: "Theirs", Status: project.StatusActive}
	projects.Create(context.Background(), owned)
	projects.Create(context.Background(), foreign)

	tests := []struct {
		name     string
		referee  *referee.Referee
		wantCode string
	}{
		{
			name:    "valid",
			referee: &referee.Referee{UserID: 1, FullName: " Grace ", Email: "grace@x.com", ProjectID: &owned.ID},
		},
		{
			name:     "missing name",
			referee:  &referee.Referee{UserID: 1, Email: "grace@x.com"},
			wantCode: errors.ErrCodeValidation,
		},
		{
			name:     "missing email",
			referee:  &referee.Referee{UserID: 1, FullName: "Grace"},
			wantCode: errors.ErrCodeValidation,
		},
		{
			name:     "project of another user",
			referee:  &referee.Referee{UserID: 1, FullName: "Grace", Email: "grace@x.com", ProjectID: &foreign.ID},
			wantCode: errors.ErrCodeNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockRefereeRepository()
			service := NewRefereeService(repo, projects, newTestLogger())

			err := service.Create(context.Background(), tt.referee)
			if tt.wantCode != "" {
				if !errors.HasCode(err, tt.wantCode) {
					t.Errorf("Create() error = %v, want %s", err, tt.wantCode)
				}
				if len(repo.Referees) != 0 {
					t.Error("invalid referee was stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if tt.referee.FullName != "Grace" {
				t.Errorf("name not trimmed: %q", tt.referee.FullName)
			}
		})
	}
}

func TestRefereeService_UpdateAndList(t *testing.T) {
	projects := testutil.NewMockProjectRepository()
	repo := testutil.NewMockRefereeRepository()
	service := NewRefereeService(repo, projects, newTestLogger())
	ctx := context.Background()

	p := &project.Project{UserID: 1, Title: "Bridge", Status: project.StatusActive}
	projects.Create(ctx, p)

	r := &referee.Referee{UserID: 1, FullName: "Grace", Email: "grace@x.com"}
	if err := service.Create(ctx, r); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := service.Update(ctx, 1, r.ID, referee.Patch{ProjectID: &p.ID})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.ProjectID == nil || *updated.ProjectID != p.ID {
		t.Errorf("Update() project = %v", updated.ProjectID)
	}

	list, err := service.List(ctx, 1, referee.Filter{ProjectID: &p.ID})
	if err != nil || len(list) != 1 {
		t.Errorf("List() = %d referees, err %v", len(list), err)
	}
	list, _ = service.List(ctx, 2, referee.Filter{})
	if len(list) != 0 {
		t.Errorf("List() for another user = %d referees", len(list))
	}
}
