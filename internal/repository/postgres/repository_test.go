package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/db"
	"github.com/pratik-mahalle/proftrack/internal/domain/project"
	"github.com/pratik-mahalle/proftrack/internal/domain/referee"
	"github.com/pratik-mahalle/proftrack/internal/domain/report"
	"github.com/pratik-mahalle/proftrack/internal/domain/user"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/testutil"
)

func seedUser(t *testing.T, database *db.DB, email string) int64 {
	t.Helper()
	u := &user.User{Email: email}
	if err := NewUserRepository(database).Create(context.Background(), u); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u.ID
}

func TestProjectRepository_CRUD(t *testing.T) {
	database := testutil.NewTestDB(t)
	defer testutil.CleanupDB(database)

	repo := NewProjectRepository(database)
	ctx := context.Background()
	owner := seedUser(t, database, "owner@x.com")
	other := seedUser(t, database, "other@x.com")

	start := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	p := &project.Project{
		UserID:    owner,
		Title:     "Bridge survey",
		Status:    project.StatusActive,
		StartDate: &start,
	}
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.ID == 0 {
		t.Fatal("Create() did not set ID")
	}

	got, err := repo.GetByID(ctx, owner, p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Title != "Bridge survey" || got.StartDate == nil || got.StartDate.Unix() != start.Unix() {
		t.Errorf("GetByID() = %+v", got)
	}
	if got.EndDate != nil {
		t.Errorf("EndDate = %v, want nil", got.EndDate)
	}

	if _, err := repo.GetByID(ctx, other, p.ID); !errors.IsNotFound(err) {
		t.Errorf("GetByID() by another user error = %v, want not found", err)
	}

	got.Status = project.StatusCompleted
	if err := repo.Update(ctx, got); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	foreign := *got
	foreign.UserID = other
	if err := repo.Update(ctx, &foreign); !errors.IsNotFound(err) {
		t.Errorf("Update() by another user error = %v, want not found", err)
	}

	if err := repo.Delete(ctx, other, p.ID); !errors.IsNotFound(err) {
		t.Errorf("Delete() by another user error = %v, want not found", err)
	}
	if err := repo.Delete(ctx, owner, p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(ctx, owner, p.ID); !errors.IsNotFound(err) {
		t.Errorf("GetByID() after delete error = %v, want not found", err)
	}
}

func TestProjectRepository_List(t *testing.T) {
	database := testutil.NewTestDB(t)
	defer testutil.CleanupDB(database)

	repo := NewProjectRepository(database)
	ctx := context.Background()
	owner := seedUser(t, database, "owner@x.com")
	other := seedUser(t, database, "other@x.com")

	for _, p := range []*project.Project{
		{UserID: owner, Title: "A", Status: project.StatusActive},
		{UserID: owner, Title: "B", Status: project.StatusCompleted},
		{UserID: owner, Title: "C", Status: project.StatusActive},
		{UserID: other, Title: "D", Status: project.StatusActive},
	} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	tests := []struct {
		name      string
		filter    project.Filter
		limit     int
		wantTotal int64
		wantLen   int
	}{
		{name: "all owned", filter: project.Filter{}, limit: 10, wantTotal: 3, wantLen: 3},
		{name: "by status", filter: project.Filter{Status: project.StatusActive}, limit: 10, wantTotal: 2, wantLen: 2},
		{name: "paged", filter: project.Filter{}, limit: 2, wantTotal: 3, wantLen: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := repo.List(ctx, owner, tt.filter, tt.limit, 0)
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if total != tt.wantTotal || len(items) != tt.wantLen {
				t.Errorf("List() = %d items, total %d; want %d, %d", len(items), total, tt.wantLen, tt.wantTotal)
			}
			for _, p := range items {
				if p.UserID != owner {
					t.Errorf("List() leaked project of user %d", p.UserID)
				}
			}
		})
	}
}

func TestRefereeRepository_ListByProject(t *testing.T) {
	database := testutil.NewTestDB(t)
	defer testutil.CleanupDB(database)

	projects := NewProjectRepository(database)
	repo := NewRefereeRepository(database)
	ctx := context.Background()
	owner := seedUser(t, database, "owner@x.com")

	p := &project.Project{UserID: owner, Title: "Bridge", Status: project.StatusActive}
	if err := projects.Create(ctx, p); err != nil {
		t.Fatalf("create project: %v", err)
	}

	attached := &referee.Referee{UserID: owner, ProjectID: &p.ID, FullName: "Grace", Email: "grace@x.com"}
	loose := &referee.Referee{UserID: owner, FullName: "Alan", Email: "alan@x.com"}
	for _, r := range []*referee.Referee{attached, loose} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	all, err := repo.List(ctx, owner, referee.Filter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 || all[0].FullName != "Alan" {
		t.Errorf("List() = %d referees, first %q; want 2 ordered by name", len(all), firstName(all))
	}

	byProject, err := repo.List(ctx, owner, referee.Filter{ProjectID: &p.ID})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(byProject) != 1 || byProject[0].ID != attached.ID {
		t.Errorf("List(project) = %v", byProject)
	}

	if err := projects.Delete(ctx, owner, p.ID); err != nil {
		t.Fatalf("delete project: %v", err)
	}
	got, err := repo.GetByID(ctx, owner, attached.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.ProjectID != nil {
		t.Errorf("referee still points at deleted project %d", *got.ProjectID)
	}
}

func firstName(rs []*referee.Referee) string {
	if len(rs) == 0 {
		return ""
	}
	return rs[0].FullName
}

func TestReportRepository_UpdateAndFilter(t *testing.T) {
	database := testutil.NewTestDB(t)
	defer testutil.CleanupDB(database)

	repo := NewReportRepository(database)
	ctx := context.Background()
	owner := seedUser(t, database, "owner@x.com")

	summary := &report.Report{UserID: owner, Title: "Summary", Kind: report.KindSummary, Status: report.StatusDraft}
	competency := &report.Report{UserID: owner, Title: "Competency", Kind: report.KindCompetency, Status: report.StatusFinal}
	for _, r := range []*report.Report{summary, competency} {
		if err := repo.Create(ctx, r); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	summary.ArchiveLocation = testutil.Ptr("s3://bucket/reports/1.md")
	if err := repo.Update(ctx, summary); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	got, err := repo.GetByID(ctx, owner, summary.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.ArchiveLocation == nil || *got.ArchiveLocation != "s3://bucket/reports/1.md" {
		t.Errorf("ArchiveLocation = %v", got.ArchiveLocation)
	}

	items, total, err := repo.List(ctx, owner, report.Filter{Kind: report.KindCompetency}, 10, 0)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].ID != competency.ID {
		t.Errorf("List(kind) = %d items, total %d", len(items), total)
	}
}

func TestPaymentEventLog(t *testing.T) {
	database := testutil.NewTestDB(t)
	defer testutil.CleanupDB(database)

	log := NewPaymentEventLog(database)
	ctx := context.Background()

	seen, err := log.Seen(ctx, "ref_1")
	if err != nil || seen {
		t.Fatalf("Seen() before record = %v, %v", seen, err)
	}

	if err := log.Record(ctx, "ref_1", "charge.success", "a@x.com"); err != nil {
		t.Fatalf("Record() error = %v", err)
	}
	if err := log.Record(ctx, "ref_1", "charge.success", "a@x.com"); err != nil {
		t.Fatalf("second Record() error = %v", err)
	}

	seen, err = log.Seen(ctx, "ref_1")
	if err != nil || !seen {
		t.Errorf("Seen() after record = %v, %v", seen, err)
	}
}
