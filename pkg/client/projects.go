package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// ProjectService handles project API calls
type ProjectService struct {
	client *Client
}

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	Title     string `json:"title"`
	Summary   string `json:"summary,omitempty"`
	Employer  string `json:"employer,omitempty"`
	Role      string `json:"role,omitempty"`
	Location  string `json:"location,omitempty"`
	Status    string `json:"status,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
}

// UpdateProjectRequest represents a partial project update
type UpdateProjectRequest struct {
	Title     *string `json:"title,omitempty"`
	Summary   *string `json:"summary,omitempty"`
	Employer  *string `json:"employer,omitempty"`
	Role      *string `json:"role,omitempty"`
	Location  *string `json:"location,omitempty"`
	Status    *string `json:"status,omitempty"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
}

// ProjectListOptions contains options for listing projects
type ProjectListOptions struct {
	ListOptions
	Status string
}

// List retrieves one page of projects
func (s *ProjectService) List(ctx context.Context, opts *ProjectListOptions) (*Page[Project], error) {
	query := url.Values{}
	if opts != nil {
		setPaging(query, opts.ListOptions)
		if opts.Status != "" {
			query.Set("status", opts.Status)
		}
	}

	var page Page[Project]
	if err := s.client.doRequest(ctx, "GET", withQuery("/api/projects", query), nil, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// Get retrieves a project by ID
func (s *ProjectService) Get(ctx context.Context, id int64) (*Project, error) {
	var p Project
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/projects/%d", id), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Create creates a project
func (s *ProjectService) Create(ctx context.Context, req CreateProjectRequest) (*Project, error) {
	var p Project
	if err := s.client.doRequest(ctx, "POST", "/api/projects", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Update applies a partial update
func (s *ProjectService) Update(ctx context.Context, id int64, req UpdateProjectRequest) (*Project, error) {
	var p Project
	if err := s.client.doRequest(ctx, "PUT", fmt.Sprintf("/api/projects/%d", id), req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete removes a project
func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/projects/%d", id), nil, nil)
}

func setPaging(query url.Values, opts ListOptions) {
	if opts.Page > 0 {
		query.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(opts.PageSize))
	}
}

func withQuery(path string, query url.Values) string {
	if len(query) == 0 {
		return path
	}
	return path + "?" + query.Encode()
}
