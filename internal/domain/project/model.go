package project

import "time"

// Project is a piece of engineering work a user tracks
type Project struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Title     string     `json:"title"`
	Summary   string     `json:"summary"`
	Employer  string     `json:"employer"`
	Role      string     `json:"role"`
	Location  string     `json:"location"`
	Status    string     `json:"status"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Project status
const (
	StatusPlanned   = "planned"
	StatusActive    = "active"
	StatusCompleted = "completed"
)

// Filter contains project filtering options
type Filter struct {
	Status string
}

// Patch holds the fields of an update; nil fields are left unchanged
type Patch struct {
	Title     *string
	Summary   *string
	Employer  *string
	Role      *string
	Location  *string
	Status    *string
	StartDate *time.Time
	EndDate   *time.Time
}

// Apply copies the non-nil fields of the patch onto p
func (pt Patch) Apply(p *Project) {
	if pt.Title != nil {
		p.Title = *pt.Title
	}
	if pt.Summary != nil {
		p.Summary = *pt.Summary
	}
	if pt.Employer != nil {
		p.Employer = *pt.Employer
	}
	if pt.Role != nil {
		p.Role = *pt.Role
	}
	if pt.Location != nil {
		p.Location = *pt.Location
	}
	if pt.Status != nil {
		p.Status = *pt.Status
	}
	if pt.StartDate != nil {
		p.StartDate = pt.StartDate
	}
	if pt.EndDate != nil {
		p.EndDate = pt.EndDate
	}
}
