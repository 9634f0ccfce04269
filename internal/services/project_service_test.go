package services

import (
	"context"
	"testing"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/domain/project"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/testutil"
)

func TestProjectService_Create(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	before := start.AddDate(0, -1, 0)

	tests := []struct {
		name       string
		project    *project.Project
		wantErr    bool
		wantStatus string
		wantTitle  string
	}{
		{
			name:       "defaults status to active",
			project:    &project.Project{UserID: 1, Title: "  Bridge survey  "},
			wantStatus: project.StatusActive,
			wantTitle:  "Bridge survey",
		},
		{
			name:       "keeps explicit status",
			project:    &project.Project{UserID: 1, Title: "Plan", Status: project.StatusPlanned},
			wantStatus: project.StatusPlanned,
			wantTitle:  "Plan",
		},
		{
			name:    "empty title",
			project: &project.Project{UserID: 1, Title: "   "},
			wantErr: true,
		},
		{
			name:    "unknown status",
			project: &project.Project{UserID: 1, Title: "X", Status: "paused"},
			wantErr: true,
		},
		{
			name:    "end before start",
			project: &project.Project{UserID: 1, Title: "X", StartDate: &start, EndDate: &before},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := testutil.NewMockProjectRepository()
			service := NewProjectService(repo, newTestLogger())

			err := service.Create(context.Background(), tt.project)
			if tt.wantErr {
				if !errors.HasCode(err, errors.ErrCodeValidation) {
					t.Errorf("Create() error = %v, want validation error", err)
				}
				if len(repo.Projects) != 0 {
					t.Error("invalid project was stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create() error = %v", err)
			}
			if tt.project.ID == 0 || tt.project.Status != tt.wantStatus || tt.project.Title != tt.wantTitle {
				t.Errorf("Create() = %+v", tt.project)
			}
		})
	}
}

func TestProjectService_Update(t *testing.T) {
	repo := testutil.NewMockProjectRepository()
	service := NewProjectService(repo, newTestLogger())
	ctx := context.Background()

	p := &project.Project{UserID: 1, Title: "Bridge"}
	if err := service.Create(ctx, p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	updated, err := service.Update(ctx, 1, p.ID, project.Patch{Status: testutil.Ptr(project.StatusCompleted)})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if updated.Status != project.StatusCompleted || updated.Title != "Bridge" {
		t.Errorf("Update() = %+v", updated)
	}

	if _, err := service.Update(ctx, 1, p.ID, project.Patch{Title: testutil.Ptr("")}); !errors.HasCode(err, errors.ErrCodeValidation) {
		t.Errorf("Update() empty title error = %v", err)
	}
	if repo.Projects[p.ID].Title != "Bridge" {
		t.Error("rejected patch reached the store")
	}

	if _, err := service.Update(ctx, 2, p.ID, project.Patch{Title: testutil.Ptr("Mine now")}); !errors.IsNotFound(err) {
		t.Errorf("Update() by another user error = %v, want not found", err)
	}
}

func TestProjectService_DeleteScopedToOwner(t *testing.T) {
	repo := testutil.NewMockProjectRepository()
	service := NewProjectService(repo, newTestLogger())
	ctx := context.Background()

	p := &project.Project{UserID: 1, Title: "Bridge"}
	if err := service.Create(ctx, p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := service.Delete(ctx, 2, p.ID); !errors.IsNotFound(err) {
		t.Errorf("Delete() by another user error = %v, want not found", err)
	}
	if err := service.Delete(ctx, 1, p.ID); err != nil {
		t.Errorf("Delete() error = %v", err)
	}
	if _, err := service.GetByID(ctx, 1, p.ID); !errors.IsNotFound(err) {
		t.Errorf("GetByID() after delete error = %v", err)
	}
}
