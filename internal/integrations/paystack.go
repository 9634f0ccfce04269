package integrations

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/domain/payment"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
)

const paystackProvider = "Paystack"

// PaystackClient implements payment.Gateway against the Paystack REST API
type PaystackClient struct {
	secretKey  string
	baseURL    string
	httpClient *http.Client
}

// NewPaystackClient creates a new Paystack client
func NewPaystackClient(secretKey, baseURL string, timeout time.Duration) *PaystackClient {
	if baseURL == "" {
		baseURL = "https://api.paystack.co"
	}
	return &PaystackClient{
		secretKey:  secretKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

type paystackEnvelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type paystackInitializeRequest struct {
	Email       string            `json:"email"`
	Amount      int64             `json:"amount"`
	Currency    string            `json:"currency,omitempty"`
	CallbackURL string            `json:"callback_url,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

type paystackInitializeData struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type paystackTransaction struct {
	Reference       string     `json:"reference"`
	Status          string     `json:"status"`
	Amount          int64      `json:"amount"`
	GatewayResponse string     `json:"gateway_response"`
	PaidAt          *time.Time `json:"paid_at"`
	Customer        struct {
		Email        string `json:"email"`
		CustomerCode string `json:"customer_code"`
	} `json:"customer"`
}

// Initialize creates a hosted checkout session
func (c *PaystackClient) Initialize(ctx context.Context, req payment.CheckoutRequest) (*payment.Checkout, error) {
	var data paystackInitializeData
	err := c.do(ctx, http.MethodPost, "/transaction/initialize", paystackInitializeRequest{
		Email:       req.Email,
		Amount:      req.AmountMinor,
		Currency:    req.Currency,
		CallbackURL: req.CallbackURL,
		Metadata:    req.Metadata,
	}, &data)
	if err != nil {
		return nil, err
	}

	return &payment.Checkout{
		AuthorizationURL: data.AuthorizationURL,
		AccessCode:       data.AccessCode,
		Reference:        data.Reference,
	}, nil
}

// Verify looks a transaction up by reference
func (c *PaystackClient) Verify(ctx context.Context, reference string) (*payment.Transaction, error) {
	var data paystackTransaction
	if err := c.do(ctx, http.MethodGet, "/transaction/verify/"+url.PathEscape(reference), nil, &data); err != nil {
		return nil, err
	}

	return &payment.Transaction{
		Reference:       data.Reference,
		Status:          data.Status,
		Email:           data.Customer.Email,
		CustomerCode:    data.Customer.CustomerCode,
		AmountMinor:     data.Amount,
		GatewayResponse: data.GatewayResponse,
		PaidAt:          data.PaidAt,
	}, nil
}

func (c *PaystackClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	if c.secretKey == "" {
		return errors.ServiceUnavailable("Payment provider is not configured")
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errors.Internal("Failed to encode payment request", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return errors.Internal("Failed to build payment request", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Upstream(paystackProvider, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return errors.Upstream(paystackProvider, err)
	}

	var env paystackEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return errors.Upstream(paystackProvider, fmt.Errorf("status %d: undecodable body", resp.StatusCode))
	}
	if resp.StatusCode >= 300 || !env.Status {
		return errors.Upstream(paystackProvider, fmt.Errorf("status %d: %s", resp.StatusCode, env.Message))
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return errors.Upstream(paystackProvider, fmt.Errorf("decode data: %w", err))
		}
	}
	return nil
}
