package dto

import (
	"time"

	"github.com/pratik-mahalle/proftrack/internal/domain/report"
)

// ReportDTO represents a report in API responses
type ReportDTO struct {
	ID              int64     `json:"id"`
	ProjectID       *int64    `json:"project_id,omitempty"`
	Title           string    `json:"title"`
	Kind            string    `json:"kind"`
	Content         string    `json:"content"`
	Status          string    `json:"status"`
	ArchiveLocation *string   `json:"archive_location,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateReportRequest represents a report creation request
type CreateReportRequest struct {
	ProjectID *int64 `json:"project_id,omitempty" validate:"omitempty,gt=0"`
	Title     string `json:"title" validate:"required,max=200"`
	Kind      string `json:"kind" validate:"required,oneof=summary competency referee_statement"`
	Content   string `json:"content"`
	Status    string `json:"status" validate:"omitempty,oneof=draft final"`
}

// UpdateReportRequest represents a partial report update
type UpdateReportRequest struct {
	ProjectID *int64  `json:"project_id,omitempty" validate:"omitempty,gt=0"`
	Title     *string `json:"title,omitempty" validate:"omitempty,min=1,max=200"`
	Kind      *string `json:"kind,omitempty" validate:"omitempty,oneof=summary competency referee_statement"`
	Content   *string `json:"content,omitempty"`
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=draft final"`
}

// GenerateReportRequest asks the AI writer to draft a report for a project
type GenerateReportRequest struct {
	ProjectID int64  `json:"project_id" validate:"required,gt=0"`
	Kind      string `json:"kind" validate:"required,oneof=summary competency referee_statement"`
}

// ReportExportDTO is returned after a report is archived
type ReportExportDTO struct {
	ReportID int64  `json:"report_id"`
	Location string `json:"location"`
}

// ToReport builds a domain report owned by userID
func (req CreateReportRequest) ToReport(userID int64) *report.Report {
	return &report.Report{
		UserID:    userID,
		ProjectID: req.ProjectID,
		Title:     req.Title,
		Kind:      req.Kind,
		Content:   req.Content,
		Status:    req.Status,
	}
}

// ToPatch converts the request to a domain patch
func (req UpdateReportRequest) ToPatch() report.Patch {
	return report.Patch{
		ProjectID: req.ProjectID,
		Title:     req.Title,
		Kind:      req.Kind,
		Content:   req.Content,
		Status:    req.Status,
	}
}

// ReportToDTO converts a domain report
func ReportToDTO(r *report.Report) ReportDTO {
	return ReportDTO{
		ID:              r.ID,
		ProjectID:       r.ProjectID,
		Title:           r.Title,
		Kind:            r.Kind,
		Content:         r.Content,
		Status:          r.Status,
		ArchiveLocation: r.ArchiveLocation,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// ReportsToDTO converts a slice of domain reports
func ReportsToDTO(reports []*report.Report) []ReportDTO {
	out := make([]ReportDTO, 0, len(reports))
	for _, r := range reports {
		out = append(out, ReportToDTO(r))
	}
	return out
}
