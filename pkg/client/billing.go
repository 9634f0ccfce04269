package client

import (
	"context"
	"encoding/json"
	"fmt"
)

// BillingService handles subscription and payment API calls
type BillingService struct {
	client *Client
}

// Status returns the caller's subscription state
func (s *BillingService) Status(ctx context.Context) (*BillingStatus, error) {
	var st BillingStatus
	if err := s.client.doRequest(ctx, "GET", "/api/billing/status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

// Checkout starts a payment and returns the hosted checkout URL
func (s *BillingService) Checkout(ctx context.Context, amount float64) (string, error) {
	body, err := json.Marshal(map[string]float64{"amount": amount})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	var resp struct {
		AuthorizationURL string `json:"authorization_url"`
	}
	if err := s.client.doRaw(ctx, "POST", "/api/payments/initialize", body, nil, &resp); err != nil {
		return "", err
	}
	return resp.AuthorizationURL, nil
}

// SendWebhook replays a signed webhook payload against the server
func (s *BillingService) SendWebhook(ctx context.Context, payload []byte, signature string) error {
	headers := map[string]string{"x-paystack-signature": signature}
	return s.client.doRaw(ctx, "POST", "/api/payments/webhook", payload, headers, nil)
}
