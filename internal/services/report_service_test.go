package services

import (
	"context"
	stderrors "errors"
	"strings"
	"testing"

	"github.com/pratik-mahalle/proftrack/internal/domain/project"
	"github.com/pratik-mahalle/proftrack/internal/domain/referee"
	"github.com/pratik-mahalle/proftrack/internal/domain/report"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/testutil"
)

type reportFixture struct {
	reports  *testutil.MockReportRepository
	projects *testutil.MockProjectRepository
	referees *testutil.MockRefereeRepository
	writer   *testutil.MockWriter
	archive  *testutil.MockArchive
	project  *project.Project
}

func newReportFixture() *reportFixture {
	f := &reportFixture{
		reports:  testutil.NewMockReportRepository(),
		projects: testutil.NewMockProjectRepository(),
		referees: testutil.NewMockRefereeRepository(),
		writer:   &testutil.MockWriter{Text: "\n## Summary\nBuilt a bridge.\n"},
		archive:  testutil.NewMockArchive(),
	}
	ctx := context.Background()
	f.project = &project.Project{UserID: 1, Title: "Harbour Bridge", Role: "Site engineer", Status: project.StatusActive}
	f.projects.Create(ctx, f.project)
	f.referees.Create(ctx, &referee.Referee{UserID: 1, ProjectID: &f.project.ID, FullName: "Grace Hopper", Position: "Director"})
	return f
}

func (f *reportFixture) service() report.Service {
	return NewReportService(f.reports, f.projects, f.referees, f.writer, "mock", f.archive, newTestLogger())
}

func TestReportService_Create(t *testing.T) {
	f := newReportFixture()
	service := f.service()
	ctx := context.Background()

	r := &report.Report{UserID: 1, Title: "Notes"}
	if err := service.Create(ctx, r); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if r.Kind != report.KindSummary || r.Status != report.StatusDraft {
		t.Errorf("Create() defaults = %q / %q", r.Kind, r.Status)
	}

	invalid := []*report.Report{
		{UserID: 1, Title: " "},
		{UserID: 1, Title: "X", Kind: "essay"},
		{UserID: 1, Title: "X", Status: "published"},
	}
	for _, r := range invalid {
		if err := service.Create(ctx, r); !errors.HasCode(err, errors.ErrCodeValidation) {
			t.Errorf("Create(%+v) error = %v, want validation error", r, err)
		}
	}

	foreign := &report.Report{UserID: 2, Title: "X", ProjectID: &f.project.ID}
	if err := service.Create(ctx, foreign); !errors.IsNotFound(err) {
		t.Errorf("Create() with foreign project error = %v, want not found", err)
	}
}

func TestReportService_Generate(t *testing.T) {
	f := newReportFixture()
	service := f.service()

	r, err := service.Generate(context.Background(), 1, f.project.ID, report.KindCompetency)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if r.ID == 0 || r.Status != report.StatusDraft || r.Kind != report.KindCompetency {
		t.Errorf("Generate() = %+v", r)
	}
	if r.Title != "Competency report: Harbour Bridge" {
		t.Errorf("Generate() title = %q", r.Title)
	}
	if r.Content != "## Summary\nBuilt a bridge." {
		t.Errorf("Generate() content = %q", r.Content)
	}

	if len(f.writer.Prompts) != 1 {
		t.Fatalf("writer called %d times", len(f.writer.Prompts))
	}
	prompt := f.writer.Prompts[0]
	for _, want := range []string{"competency", "Harbour Bridge", "Site engineer", "Grace Hopper, Director"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestReportService_GenerateFailures(t *testing.T) {
	t.Run("unknown kind", func(t *testing.T) {
		f := newReportFixture()
		_, err := f.service().Generate(context.Background(), 1, f.project.ID, "poem")
		if !errors.HasCode(err, errors.ErrCodeValidation) {
			t.Errorf("Generate() error = %v", err)
		}
	})

	t.Run("project of another user", func(t *testing.T) {
		f := newReportFixture()
		_, err := f.service().Generate(context.Background(), 2, f.project.ID, "")
		if !errors.IsNotFound(err) {
			t.Errorf("Generate() error = %v", err)
		}
		if len(f.writer.Prompts) != 0 {
			t.Error("writer called for a foreign project")
		}
	})

	t.Run("writer error", func(t *testing.T) {
		f := newReportFixture()
		f.writer.Err = stderrors.New("quota exceeded")
		_, err := f.service().Generate(context.Background(), 1, f.project.ID, "")
		if !errors.HasCode(err, errors.ErrCodeUpstream) {
			t.Errorf("Generate() error = %v", err)
		}
		if len(f.reports.Reports) != 0 {
			t.Error("report stored after writer failure")
		}
	})

	t.Run("writer not configured", func(t *testing.T) {
		f := newReportFixture()
		service := NewReportService(f.reports, f.projects, f.referees, nil, "", f.archive, newTestLogger())
		_, err := service.Generate(context.Background(), 1, f.project.ID, "")
		if !errors.HasCode(err, errors.ErrCodeServiceUnavailable) {
			t.Errorf("Generate() error = %v", err)
		}
	})
}

func TestReportService_Export(t *testing.T) {
	f := newReportFixture()
	service := f.service()
	ctx := context.Background()

	r := &report.Report{UserID: 1, Title: "Harbour Bridge: Final!", Content: "Body text"}
	if err := service.Create(ctx, r); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	export, err := service.Export(ctx, 1, r.ID)
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	wantKey := "1/1-harbour-bridge-final.md"
	if export.Location != "mem://"+wantKey {
		t.Errorf("Export() location = %q", export.Location)
	}
	body, ok := f.archive.Objects[wantKey]
	if !ok {
		t.Fatalf("archive keys = %v", f.archive.Objects)
	}
	if !strings.HasPrefix(string(body), "# Harbour Bridge: Final!\n") || !strings.Contains(string(body), "Body text") {
		t.Errorf("archived markdown = %q", body)
	}

	stored, _ := f.reports.GetByID(ctx, 1, r.ID)
	if stored.ArchiveLocation == nil || *stored.ArchiveLocation != export.Location {
		t.Errorf("archive location not recorded: %v", stored.ArchiveLocation)
	}
}

func TestReportService_ExportFailures(t *testing.T) {
	f := newReportFixture()
	ctx := context.Background()
	r := &report.Report{UserID: 1, Title: "Notes"}
	f.service().Create(ctx, r)

	if _, err := f.service().Export(ctx, 2, r.ID); !errors.IsNotFound(err) {
		t.Errorf("Export() by another user error = %v", err)
	}

	f.archive.Err = stderrors.New("access denied")
	if _, err := f.service().Export(ctx, 1, r.ID); !errors.HasCode(err, errors.ErrCodeUpstream) {
		t.Errorf("Export() archive failure = %v", err)
	}

	noArchive := NewReportService(f.reports, f.projects, f.referees, f.writer, "mock", nil, newTestLogger())
	if _, err := noArchive.Export(ctx, 1, r.ID); !errors.HasCode(err, errors.ErrCodeServiceUnavailable) {
		t.Errorf("Export() without archive = %v", err)
	}
}

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Harbour Bridge", "harbour-bridge"},
		{"  --Hello, World!--  ", "hello-world"},
		{"???", "report"},
		{strings.Repeat("a", 70), strings.Repeat("a", 60)},
	}
	for _, tt := range tests {
		if got := slugify(tt.in); got != tt.want {
			t.Errorf("slugify(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
