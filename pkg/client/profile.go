package client

import "context"

// Profile returns the signed-in user's profile
func (c *Client) Profile(ctx context.Context) (*Profile, error) {
	var p Profile
	if err := c.doRequest(ctx, "GET", "/api/profile", nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProfile changes the display name
func (c *Client) UpdateProfile(ctx context.Context, displayName string) (*Profile, error) {
	req := map[string]string{"display_name": displayName}

	var p Profile
	if err := c.doRequest(ctx, "PUT", "/api/profile", req, &p); err != nil {
		return nil, err
	}
	return &p, nil
}
