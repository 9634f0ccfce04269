package client

import "time"

// ListOptions contains common pagination options
type ListOptions struct {
	Page     int
	PageSize int
}

// Page is one page of a paginated listing
type Page[T any] struct {
	Data       []T   `json:"data"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	TotalItems int64 `json:"total_items"`
	TotalPages int   `json:"total_pages"`
}

// Project is a tracked piece of engineering work
type Project struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Summary   string    `json:"summary"`
	Employer  string    `json:"employer"`
	Role      string    `json:"role"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	StartDate string    `json:"start_date,omitempty"`
	EndDate   string    `json:"end_date,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Referee is a person who vouches for a user's work
type Referee struct {
	ID           int64     `json:"id"`
	ProjectID    *int64    `json:"project_id,omitempty"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Position     string    `json:"position,omitempty"`
	Organisation string    `json:"organisation,omitempty"`
	Relationship string    `json:"relationship,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Report is a written document, optionally about a project
type Report struct {
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

// ReportExport is the archive location of an exported report
type ReportExport struct {
	ReportID int64  `json:"report_id"`
	Location string `json:"location"`
}

// Profile is the signed-in user's account
type Profile struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	DisplayName        string     `json:"display_name"`
	Role               string     `json:"role"`
	SubscriptionStatus string     `json:"subscription_status"`
	SubscriptionEndsAt *time.Time `json:"subscription_ends_at,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
}

// BillingStatus explains whether the subscription currently grants access
type BillingStatus struct {
	Status string     `json:"status"`
	EndsAt *time.Time `json:"ends_at,omitempty"`
	Active bool       `json:"active"`
	Reason string     `json:"reason,omitempty"`
}

// HealthResponse is returned by the health endpoints
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database,omitempty"`
	Identity string `json:"identity,omitempty"`
}
