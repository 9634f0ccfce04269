package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ReportService handles report API calls
type ReportService struct {
	client *Client
}

// ReportListOptions contains options for listing reports
type ReportListOptions struct {
	ListOptions
	ProjectID *int64
	Kind      string
	Status    string
}

// CreateReportRequest represents a hand-written report
type CreateReportRequest struct {
	ProjectID *int64 `json:"project_id,omitempty"`
	Title     string `json:"title"`
	Kind      string `json:"kind"`
	Content   string `json:"content,omitempty"`
	Status    string `json:"status,omitempty"`
}

// List retrieves one page of reports
func (s *ReportService) List(ctx context.Context, opts *ReportListOptions) (*Page[Report], error) {
	query := url.Values{}
	if opts != nil {
		setPaging(query, opts.ListOptions)
		if opts.ProjectID != nil {
			query.Set("project_id", strconv.FormatInt(*opts.ProjectID, 10))
		}
		if opts.Kind != "" {
			query.Set("kind", opts.Kind)
		}
		if opts.Status != "" {
			query.Set("status", opts.Status)
		}
	}

	var page Page[Report]
	if err := s.client.doRequest(ctx, "GET", withQuery("/api/reports", query), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves a report by ID
func (s *ReportService) Get(ctx context.Context, id int64) (*Report, error) {
	var r Report
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/reports/%d", id), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Create stores a hand-written report
func (s *ReportService) Create(ctx context.Context, req CreateReportRequest) (*Report, error) {
	var r Report
	if err := s.client.doRequest(ctx, "POST", "/api/reports", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Generate asks the server to draft a report for a project
func (s *ReportService) Generate(ctx context.Context, projectID int64, kind string) (*Report, error) {
	req := map[string]interface{}{
		"project_id": projectID,
		"kind":       kind,
	}

	var r Report
	if err := s.client.doRequest(ctx, "POST", "/api/reports/generate", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Export archives a report and returns where it was stored
func (s *ReportService) Export(ctx context.Context, id int64) (*ReportExport, error) {
	var exp ReportExport
	if err := s.client.doRequest(ctx, "POST", fmt.Sprintf("/api/reports/%d/export", id), nil, &exp); err != nil {
		return nil, err
	}
	return &exp, nil
}

// Delete removes a report
func (s *ReportService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/reports/%d", id), nil, nil)
}
