package client

import "context"

// Health checks the liveness of the API
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doRequest(ctx, "GET", "/healthz", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// Ready checks that the API can reach its dependencies
func (c *Client) Ready(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.doRequest(ctx, "GET", "/readyz", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}
