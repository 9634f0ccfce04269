package report

import "time"

// Report is a written document a user prepares, optionally about a project
type Report struct {
	ID              int64     `json:"id"`
	UserID          int64     `json:"user_id"`
	ProjectID       *int64    `json:"project_id,omitempty"`
	Title           string    `json:"title"`
	Kind            string    `json:"kind"`
	Content         string    `json:"content"`
	Status          string    `json:"status"`
	ArchiveLocation *string   `json:"archive_location,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Report kinds
const (
	KindSummary          = "summary"
	KindCompetency       = "competency"
	KindRefereeStatement = "referee_statement"
)

// Report status
const (
	StatusDraft = "draft"
	StatusFinal = "final"
)

// Filter contains report filtering options
type Filter struct {
	ProjectID *int64
	Kind      string
	Status    string
}

// Patch holds the fields of an update; nil fields are left unchanged
type Patch struct {
	ProjectID *int64
	Title     *string
	Kind      *string
	Content   *string
	Status    *string
}

// Apply copies the non-nil fields of the patch onto r
func (pt Patch) Apply(r *Report) {
	if pt.ProjectID != nil {
		r.ProjectID = pt.ProjectID
	}
	if pt.Title != nil {
		r.Title = *pt.Title
	}
	if pt.Kind != nil {
		r.Kind = *pt.Kind
	}
	if pt.Content != nil {
		r.Content = *pt.Content
	}
	if pt.Status != nil {
		r.Status = *pt.Status
	}
}

// Export is the result of archiving a report
type Export struct {
	ReportID int64  `json:"report_id"`
	Location string `json:"location"`
}
