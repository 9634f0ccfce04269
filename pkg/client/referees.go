package client

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// RefereeService handles referee API calls
type RefereeService struct {
	client *Client
}

// CreateRefereeRequest represents a request to add a referee
type CreateRefereeRequest struct {
	ProjectID    *int64 `json:"project_id,omitempty"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Position     string `json:"position,omitempty"`
	Organisation string `json:"organisation,omitempty"`
	Relationship string `json:"relationship,omitempty"`
}

// List retrieves referees, optionally only those linked to projectID
func (s *RefereeService) List(ctx context.Context, projectID *int64) ([]Referee, error) {
	query := url.Values{}
	if projectID != nil {
		query.Set("project_id", strconv.FormatInt(*projectID, 10))
	}

	var refs []Referee
	if err := s.client.doRequest(ctx, "GET", withQuery("/api/referees", query), nil, &refs); err != nil {
		return nil, err
	}
	return refs, nil
}

// Get retrieves a referee by ID
func (s *RefereeService) Get(ctx context.Context, id int64) (*Referee, error) {
	var r Referee
	if err := s.client.doRequest(ctx, "GET", fmt.Sprintf("/api/referees/%d", id), nil, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Create adds a referee
func (s *RefereeService) Create(ctx context.Context, req CreateRefereeRequest) (*Referee, error) {
	var r Referee
	if err := s.client.doRequest(ctx, "POST", "/api/referees", req, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

// Delete removes a referee
func (s *RefereeService) Delete(ctx context.Context, id int64) error {
	return s.client.doRequest(ctx, "DELETE", fmt.Sprintf("/api/referees/%d", id), nil, nil)
}
