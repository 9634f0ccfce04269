package payment

import (
	"errors"
	"strings"
	"testing"
)

func TestParseEvent_ChargeSuccess(t *testing.T) {
	body := []byte(`{
		"event": "charge.success",
		"data": {
			"reference": " ref_123 ",
			"amount": 500000,
			"customer": {"email": "a@x.com", "customer_code": "CUS_1"},
			"metadata": {"user_id": 42, "identity_subject": "uid-9"}
		}
	}`)

	ev, err := ParseEvent(body)
	if err != nil {
		t.Fatalf("ParseEvent() error = %v", err)
	}
	charge, ok := ev.(ChargeSucceeded)
	if !ok {
		t.Fatalf("expected ChargeSucceeded, got %T", ev)
	}
	if charge.Reference != "ref_123" {
		t.Errorf("Reference = %q", charge.Reference)
	}
	if charge.Email != "a@x.com" || charge.CustomerCode != "CUS_1" {
		t.Errorf("customer = %q / %q", charge.Email, charge.CustomerCode)
	}
	if charge.Amount != 500000 {
		t.Errorf("Amount = %d", charge.Amount)
	}
	if charge.UserID != "42" || charge.Subject != "uid-9" {
		t.Errorf("metadata = %q / %q", charge.UserID, charge.Subject)
	}
	if charge.EventType() != EventChargeSuccess {
		t.Errorf("EventType() = %q", charge.EventType())
	}
}

func TestParseEvent_ChargeEmailFallbacks(t *testing.T) {
	body := []byte(`{"event":"charge.success","data":{"reference":"r1","metadata":{"email":"meta@x.com"}}}`)
	ev, err := ParseEvent(body)
	if err != nil {
		t.Fatalf("ParseEvent() error = %v", err)
	}
	if got := ev.(ChargeSucceeded).Email; got != "meta@x.com" {
		t.Errorf("Email = %q, want metadata email", got)
	}

	body = []byte(`{"event":"charge.success","data":{"reference":"r2","email":"top@x.com","metadata":""}}`)
	ev, err = ParseEvent(body)
	if err != nil {
		t.Fatalf("ParseEvent() error = %v", err)
	}
	if got := ev.(ChargeSucceeded).Email; got != "top@x.com" {
		t.Errorf("Email = %q, want data email", got)
	}
}

func TestParseEvent_SubscriptionEnded(t *testing.T) {
	for _, eventType := range []string{EventSubscriptionDisable, EventSubscriptionNotRenew, EventInvoicePaymentFailed} {
		t.Run(eventType, func(t *testing.T) {
			body := []byte(`{"event":"` + eventType + `","data":{"customer":{"email":"a@x.com"},"subscription":{"subscription_code":"SUB_1"}}}`)
			ev, err := ParseEvent(body)
			if err != nil {
				t.Fatalf("ParseEvent() error = %v", err)
			}
			ended, ok := ev.(SubscriptionEnded)
			if !ok {
				t.Fatalf("expected SubscriptionEnded, got %T", ev)
			}
			if ended.Email != "a@x.com" || ended.SubscriptionCode != "SUB_1" || ended.EventType() != eventType {
				t.Errorf("unexpected event %+v", ended)
			}
		})
	}
}

func TestParseEvent_Unrecognized(t *testing.T) {
	ev, err := ParseEvent([]byte(`{"event":"transfer.success","data":{}}`))
	if err != nil {
		t.Fatalf("ParseEvent() error = %v", err)
	}
	if u, ok := ev.(Unrecognized); !ok || u.Type != "transfer.success" {
		t.Errorf("expected Unrecognized transfer.success, got %#v", ev)
	}
}

func TestParseEvent_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `not json`},
		{"missing event", `{"data":{}}`},
		{"charge data not object", `{"event":"charge.success","data":"x"}`},
		{"charge without reference", `{"event":"charge.success","data":{"customer":{"email":"a@x.com"}}}`},
		{"charge without email", `{"event":"charge.success","data":{"reference":"r"}}`},
		{"subscription without customer", `{"event":"subscription.disable","data":{}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseEvent([]byte(tt.body))
			if !errors.Is(err, ErrInvalidPayload) {
				t.Errorf("ParseEvent() error = %v, want ErrInvalidPayload", err)
			}
		})
	}
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"event":"charge.success"}`)
	secret := "sk_test_123"
	sig := Sign(body, secret)

	tests := []struct {
		name      string
		body      []byte
		signature string
		secret    string
		want      bool
	}{
		{"valid", body, sig, secret, true},
		{"uppercase hex", body, strings.ToUpper(sig), secret, true},
		{"tampered body", []byte(`{"event":"charge.failed"}`), sig, secret, false},
		{"wrong secret", body, sig, "other", false},
		{"empty signature", body, "", secret, false},
		{"empty secret", body, sig, "", false},
		{"not hex", body, "zz", secret, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := VerifySignature(tt.body, tt.signature, tt.secret); got != tt.want {
				t.Errorf("VerifySignature() = %v, want %v", got, tt.want)
			}
		})
	}
}

