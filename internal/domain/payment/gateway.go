package payment

import (
	"context"
	"time"
)

// Transaction statuses reported by the provider
const (
	TxSuccess   = "success"
	TxFailed    = "failed"
	TxAbandoned = "abandoned"
)

// CheckoutRequest asks the provider for a hosted payment page
type CheckoutRequest struct {
	Email       string
	AmountMinor int64
	Currency    string
	CallbackURL string
	Metadata    map[string]string
}

// Checkout is the provider's answer to a CheckoutRequest
type Checkout struct {
	AuthorizationURL string
	AccessCode       string
	Reference        string
}

// Transaction is the provider's view of a payment
type Transaction struct {
	Reference       string
	Status          string
	Email           string
	CustomerCode    string
	AmountMinor     int64
	GatewayResponse string
	PaidAt          *time.Time
}

// Gateway is the outbound side of the payment provider
type Gateway interface {
	Initialize(ctx context.Context, req CheckoutRequest) (*Checkout, error)
	Verify(ctx context.Context, reference string) (*Transaction, error)
}

// EventLog remembers which transaction references were already applied
type EventLog interface {
	Seen(ctx context.Context, reference string) (bool, error)
	Record(ctx context.Context, reference, eventType, email string) error
}

// VerifyOutcome tells the callback handler where to send the browser
type VerifyOutcome struct {
	Success   bool
	Reference string
	Reason    string
}

// Service is the payment reconciler
type Service interface {
	// Initialize starts a checkout and returns the hosted page URL
	Initialize(ctx context.Context, userID int64, email, subject string, amount float64) (string, error)

	// HandleWebhook authenticates and applies one webhook delivery
	HandleWebhook(ctx context.Context, body []byte, signature string) error

	// VerifyCallback resolves the provider redirect for a reference
	VerifyCallback(ctx context.Context, reference string) VerifyOutcome
}
