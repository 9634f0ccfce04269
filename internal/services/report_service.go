package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/domain/project"
	"github.com/pratik-mahalle/proftrack/internal/domain/referee"
	"github.com/pratik-mahalle/proftrack/internal/domain/report"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/pkg/metrics"
)

// ReportService implements report.Service. The writer and archive are
// optional; the operations that need them answer SERVICE_UNAVAILABLE when
// they are not configured.
type ReportService struct {
	repo       report.Repository
	projects   project.Repository
	referees   referee.Repository
	writer     report.Writer
	writerName string
	archive    report.Archive
	logger     *logger.Logger
}

// NewReportService creates a new report service
func NewReportService(
	repo report.Repository,
	projects project.Repository,
	referees referee.Repository,
	writer report.Writer,
	writerName string,
	archive report.Archive,
	log *logger.Logger,
) report.Service {
	return &ReportService{
		repo:       repo,
		projects:   projects,
		referees:   referees,
		writer:     writer,
		writerName: writerName,
		archive:    archive,
		logger:     log,
	}
}

// Create creates a new report
func (s *ReportService) Create(ctx context.Context, r *report.Report) error {
	if r.Kind == "" {
		r.Kind = report.KindSummary
	}
	if r.Status == "" {
		r.Status = report.StatusDraft
	}
	if err := s.validate(ctx, r); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, r); err != nil {
		s.logger.ErrorWithErr(err, "Failed to create report")
		return err
	}
	return nil
}

// GetByID retrieves a report by ID
func (s *ReportService) GetByID(ctx context.Context, userID, id int64) (*report.Report, error) {
	return s.repo.GetByID(ctx, userID, id)
}

// Update applies patch to a report owned by userID
func (s *ReportService) Update(ctx context.Context, userID, id int64, patch report.Patch) (*report.Report, error) {
	r, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(r)
	if err := s.validate(ctx, r); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, r); err != nil {
		s.logger.ErrorWithErr(err, "Failed to update report")
		return nil, err
	}
	return r, nil
}

// Delete deletes a report
func (s *ReportService) Delete(ctx context.Context, userID, id int64) error {
	return s.repo.Delete(ctx, userID, id)
}

// List retrieves reports with filters and pagination
func (s *ReportService) List(ctx context.Context, userID int64, filter report.Filter, limit, offset int) ([]*report.Report, int64, error) {
	return s.repo.List(ctx, userID, filter, limit, offset)
}

// Generate drafts a report about a project and stores it as a draft
func (s *ReportService) Generate(ctx context.Context, userID, projectID int64, kind string) (*report.Report, error) {
	if s.writer == nil {
		return nil, errors.ServiceUnavailable("Report generation is not configured")
	}
	if kind == "" {
		kind = report.KindSummary
	}
	if !validKind(kind) {
		return nil, errors.ValidationError("Invalid report kind", map[string]string{"kind": kind})
	}

	p, err := s.projects.GetByID(ctx, userID, projectID)
	if err != nil {
		return nil, err
	}
	refs, err := s.referees.List(ctx, userID, referee.Filter{ProjectID: &projectID})
	if err != nil {
		return nil, err
	}

	start := time.Now()
	text, err := s.writer.Draft(ctx, buildReportPrompt(kind, p, refs))
	if err != nil {
		metrics.RecordReportGeneration(s.writerName, "error", time.Since(start))
		s.logger.ErrorWithErr(err, "Report writer failed")
		return nil, errors.Upstream(s.writerName, err)
	}
	metrics.RecordReportGeneration(s.writerName, "ok", time.Since(start))

	r := &report.Report{
		UserID:    userID,
		ProjectID: &projectID,
		Title:     fmt.Sprintf("%s: %s", kindTitle(kind), p.Title),
		Kind:      kind,
		Content:   strings.TrimSpace(text),
		Status:    report.StatusDraft,
	}
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}

	s.logger.WithFields(map[string]interface{}{
		"user_id":    userID,
		"project_id": projectID,
		"report_id":  r.ID,
		"writer":     s.writerName,
	}).Info("Report drafted")

	return r, nil
}

// Export uploads the report as Markdown and records where it went
func (s *ReportService) Export(ctx context.Context, userID, id int64) (*report.Export, error) {
	if s.archive == nil {
		return nil, errors.ServiceUnavailable("Report archive is not configured")
	}

	r, err := s.repo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%d/%d-%s.md", userID, r.ID, slugify(r.Title))
	location, err := s.archive.Put(ctx, key, "text/markdown; charset=utf-8", []byte(renderMarkdown(r)))
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to archive report")
		return nil, errors.Upstream("report archive", err)
	}

	r.ArchiveLocation = &location
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}

	return &report.Export{ReportID: r.ID, Location: location}, nil
}

func (s *ReportService) validate(ctx context.Context, r *report.Report) error {
	r.Title = strings.TrimSpace(r.Title)
	if r.Title == "" {
		return errors.ValidationError("Report title is required", nil)
	}
	if !validKind(r.Kind) {
		return errors.ValidationError("Invalid report kind", map[string]string{"kind": r.Kind})
	}
	if r.Status != report.StatusDraft && r.Status != report.StatusFinal {
		return errors.ValidationError("Invalid report status", map[string]string{"status": r.Status})
	}
	if r.ProjectID != nil {
		if _, err := s.projects.GetByID(ctx, r.UserID, *r.ProjectID); err != nil {
			return err
		}
	}
	return nil
}

func validKind(kind string) bool {
	switch kind {
	case report.KindSummary, report.KindCompetency, report.KindRefereeStatement:
		return true
	}
	return false
}

func kindTitle(kind string) string {
	switch kind {
	case report.KindCompetency:
		return "Competency report"
	case report.KindRefereeStatement:
		return "Referee statement"
	default:
		return "Project summary"
	}
}

func buildReportPrompt(kind string, p *project.Project, refs []*referee.Referee) string {
	var b strings.Builder

	switch kind {
	case report.KindCompetency:
		b.WriteString("Write a competency report in the first person describing the engineering competencies demonstrated on this project.\n\n")
	case report.KindRefereeStatement:
		b.WriteString("Write a short statement a referee could sign confirming the applicant's role and contribution on this project.\n\n")
	default:
		b.WriteString("Write a concise professional summary of this engineering project.\n\n")
	}

	fmt.Fprintf(&b, "Project: %s\n", p.Title)
	if p.Role != "" {
		fmt.Fprintf(&b, "Role: %s\n", p.Role)
	}
	if p.Employer != "" {
		fmt.Fprintf(&b, "Employer: %s\n", p.Employer)
	}
	if p.Location != "" {
		fmt.Fprintf(&b, "Location: %s\n", p.Location)
	}
	if p.StartDate != nil {
		fmt.Fprintf(&b, "Started: %s\n", p.StartDate.Format("January 2006"))
	}
	if p.EndDate != nil {
		fmt.Fprintf(&b, "Finished: %s\n", p.EndDate.Format("January 2006"))
	}
	if p.Summary != "" {
		fmt.Fprintf(&b, "Description: %s\n", p.Summary)
	}

	if len(refs) > 0 {
		b.WriteString("Referees:\n")
		for _, r := range refs {
			fmt.Fprintf(&b, "- %s", r.FullName)
			if r.Position != "" {
				fmt.Fprintf(&b, ", %s", r.Position)
			}
			if r.Organisation != "" {
				fmt.Fprintf(&b, " at %s", r.Organisation)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("\nUse Markdown headings. Do not invent facts beyond those given.")
	return b.String()
}

func renderMarkdown(r *report.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	fmt.Fprintf(&b, "_%s, %s, updated %s_\n\n", kindTitle(r.Kind), r.Status, r.UpdatedAt.UTC().Format("2006-01-02"))
	b.WriteString(r.Content)
	b.WriteString("\n")
	return b.String()
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(s string) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-")
	if len(slug) > 60 {
		slug = strings.TrimRight(slug[:60], "-")
	}
	if slug == "" {
		return "report"
	}
	return slug
}
