package payment

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Webhook event types handled by the reconciler
const (
	EventChargeSuccess        = "charge.success"
	EventSubscriptionDisable  = "subscription.disable"
	EventSubscriptionNotRenew = "subscription.not_renew"
	EventInvoicePaymentFailed = "invoice.payment_failed"
)

var (
	ErrInvalidSignature = errors.New("payment: invalid webhook signature")
	ErrInvalidPayload   = errors.New("payment: invalid webhook payload")
)

// Event is one decoded webhook delivery. The concrete type is one of
// ChargeSucceeded, SubscriptionEnded or Unrecognized.
type Event interface {
	EventType() string
}

// ChargeSucceeded reports a completed payment
type ChargeSucceeded struct {
	Reference    string
	Email        string
	CustomerCode string
	Amount       int64
	UserID       string
	Subject      string
}

func (ChargeSucceeded) EventType() string { return EventChargeSuccess }

// SubscriptionEnded covers cancellation, non-renewal and failed invoices
type SubscriptionEnded struct {
	Type             string
	Email            string
	CustomerCode     string
	SubscriptionCode string
}

func (e SubscriptionEnded) EventType() string { return e.Type }

// Unrecognized is any event type the reconciler does not act on
type Unrecognized struct {
	Type string
}

func (e Unrecognized) EventType() string { return e.Type }

type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type customer struct {
	Email        string `json:"email"`
	CustomerCode string `json:"customer_code"`
}

type metadata struct {
	UserID  flexString `json:"user_id"`
	Subject string     `json:"identity_subject"`
	Email   string     `json:"email"`
}

type chargeData struct {
	Reference string          `json:"reference"`
	Amount    int64           `json:"amount"`
	Email     string          `json:"email"`
	Customer  *customer       `json:"customer"`
	Metadata  json.RawMessage `json:"metadata"`
}

type subscriptionData struct {
	SubscriptionCode string    `json:"subscription_code"`
	Customer         *customer `json:"customer"`
	Subscription     *struct {
		SubscriptionCode string `json:"subscription_code"`
	} `json:"subscription"`
}

// ParseEvent decodes a raw webhook body. Known event types with a shape that
// lacks the fields the reconciler needs fail with ErrInvalidPayload; unknown
// event types decode to Unrecognized.
func ParseEvent(body []byte) (Event, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	if env.Event == "" {
		return nil, fmt.Errorf("%w: missing event type", ErrInvalidPayload)
	}

	switch env.Event {
	case EventChargeSuccess:
		return parseCharge(env.Data)
	case EventSubscriptionDisable, EventSubscriptionNotRenew, EventInvoicePaymentFailed:
		return parseSubscriptionEnded(env.Event, env.Data)
	default:
		return Unrecognized{Type: env.Event}, nil
	}
}

func parseCharge(raw json.RawMessage) (Event, error) {
	var data chargeData
	if err := decodeObject(raw, &data); err != nil {
		return nil, err
	}

	var meta metadata
	if isObject(data.Metadata) {
		if err := json.Unmarshal(data.Metadata, &meta); err != nil {
			return nil, fmt.Errorf("%w: metadata: %v", ErrInvalidPayload, err)
		}
	}

	ev := ChargeSucceeded{
		Reference: strings.TrimSpace(data.Reference),
		Amount:    data.Amount,
		UserID:    string(meta.UserID),
		Subject:   meta.Subject,
	}
	if data.Customer != nil {
		ev.Email = data.Customer.Email
		ev.CustomerCode = data.Customer.CustomerCode
	}
	ev.Email = firstNonEmpty(ev.Email, meta.Email, data.Email)

	if ev.Reference == "" {
		return nil, fmt.Errorf("%w: charge without reference", ErrInvalidPayload)
	}
	if ev.Email == "" {
		return nil, fmt.Errorf("%w: charge %s without customer email", ErrInvalidPayload, ev.Reference)
	}
	return ev, nil
}

func parseSubscriptionEnded(eventType string, raw json.RawMessage) (Event, error) {
	var data subscriptionData
	if err := decodeObject(raw, &data); err != nil {
		return nil, err
	}

	ev := SubscriptionEnded{Type: eventType, SubscriptionCode: data.SubscriptionCode}
	if data.Customer != nil {
		ev.Email = strings.TrimSpace(data.Customer.Email)
		ev.CustomerCode = strings.TrimSpace(data.Customer.CustomerCode)
	}
	if ev.SubscriptionCode == "" && data.Subscription != nil {
		ev.SubscriptionCode = data.Subscription.SubscriptionCode
	}

	if ev.Email == "" && ev.CustomerCode == "" {
		return nil, fmt.Errorf("%w: %s without customer", ErrInvalidPayload, eventType)
	}
	return ev, nil
}

func decodeObject(raw json.RawMessage, v interface{}) error {
	if !isObject(raw) {
		return fmt.Errorf("%w: data must be an object", ErrInvalidPayload)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return nil
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

// flexString accepts either a JSON string or a JSON number
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*f = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}
