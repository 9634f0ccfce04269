package dto

// InitializePaymentRequest starts a subscription checkout
type InitializePaymentRequest struct {
	Amount float64 `json:"amount"`
}

// InitializePaymentResponse carries the hosted checkout page
type InitializePaymentResponse struct {
	AuthorizationURL string `json:"authorization_url"`
}

// WebhookAck acknowledges a webhook delivery
type WebhookAck struct {
	Received bool `json:"received"`
}
