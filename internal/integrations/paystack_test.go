package integrations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/domain/payment"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
)

func TestPaystackClient_Initialize(t *testing.T) {
	var got paystackInitializeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/transaction/initialize" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk_test" {
			t.Errorf("Authorization = %q", r.Header.Get("Authorization"))
		}
		json.NewDecoder(r.Body).Decode(&got)
		w.Write([]byte(`{"status":true,"message":"Authorization URL created","data":{"authorization_url":"https://checkout.paystack.com/x","access_code":"x","reference":"ref_x"}}`))
	}))
	defer server.Close()

	client := NewPaystackClient("sk_test", server.URL+"/", 5*time.Second)
	checkout, err := client.Initialize(context.Background(), payment.CheckoutRequest{
		Email:       "a@x.com",
		AmountMinor: 500000,
		Currency:    "NGN",
		CallbackURL: "https://app.example.com/api/payments/verify",
		Metadata:    map[string]string{"user_id": "7"},
	})
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	if checkout.AuthorizationURL != "https://checkout.paystack.com/x" || checkout.Reference != "ref_x" {
		t.Errorf("Initialize() = %+v", checkout)
	}
	if got.Amount != 500000 || got.Email != "a@x.com" || got.Metadata["user_id"] != "7" {
		t.Errorf("request body = %+v", got)
	}
}

func TestPaystackClient_Verify(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/transaction/verify/ref_1" {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Write([]byte(`{"status":true,"message":"Verification successful","data":{
			"reference":"ref_1","status":"success","amount":500000,"gateway_response":"Successful",
			"paid_at":"2026-03-01T12:00:00Z",
			"customer":{"email":"a@x.com","customer_code":"CUS_1"}}}`))
	}))
	defer server.Close()

	tx, err := NewPaystackClient("sk_test", server.URL, time.Second).Verify(context.Background(), "ref_1")
	if err != nil {
		t.Fatalf("Verify() error = %v", err)
	}
	if tx.Status != payment.TxSuccess || tx.Email != "a@x.com" || tx.CustomerCode != "CUS_1" || tx.AmountMinor != 500000 {
		t.Errorf("Verify() = %+v", tx)
	}
	if tx.PaidAt == nil || !tx.PaidAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("PaidAt = %v", tx.PaidAt)
	}
}

func TestPaystackClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantCode string
	}{
		{name: "provider rejects", status: http.StatusBadRequest, body: `{"status":false,"message":"Invalid key"}`, wantCode: errors.ErrCodeUpstream},
		{name: "status false on 200", status: http.StatusOK, body: `{"status":false,"message":"Transaction reference not found"}`, wantCode: errors.ErrCodeUpstream},
		{name: "html error page", status: http.StatusBadGateway, body: `<html>bad gateway</html>`, wantCode: errors.ErrCodeUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewPaystackClient("sk_test", server.URL, time.Second).Verify(context.Background(), "ref_1")
			if !errors.HasCode(err, tt.wantCode) {
				t.Errorf("Verify() error = %v, want %s", err, tt.wantCode)
			}
		})
	}

	_, err := NewPaystackClient("", "http://127.0.0.1:1", time.Second).Verify(context.Background(), "ref_1")
	if !errors.HasCode(err, errors.ErrCodeServiceUnavailable) {
		t.Errorf("Verify() without key error = %v", err)
	}
}
