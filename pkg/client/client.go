package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Client is the ProfTrack API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

// Config holds the client configuration
type Config struct {
	BaseURL    string        // API base URL (e.g., "https://app.proftrack.io")
	Token      string        // Bearer token from the identity provider
	Timeout    time.Duration // HTTP client timeout (default: 30s)
	HTTPClient *http.Client  // Optional custom HTTP client
}

// NewClient creates a new ProfTrack API client
func NewClient(cfg Config) *Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: cfg.Timeout,
			// the verify callback answers with a redirect meant for browsers
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		}
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: httpClient,
		token:      cfg.Token,
	}
}

// SetToken sets the bearer token for authenticated requests
func (c *Client) SetToken(token string) {
	c.token = token
}

// GetToken returns the current bearer token
func (c *Client) GetToken() string {
	return c.token
}

// envelope is the success/error wrapper used by the resource APIs
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   *APIError       `json:"error"`
}

// doRequest sends body as JSON and decodes the "data" member of the
// response envelope into result.
func (c *Client) doRequest(ctx context.Context, method, path string, body interface{}, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	respBody, status, err := c.send(ctx, method, path, reqBody, nil)
	if err != nil {
		return err
	}
	if status >= 400 {
		return parseAPIError(status, respBody)
	}

	if result == nil || len(respBody) == 0 {
		return nil
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return nil
	}
	if err := json.Unmarshal(env.Data, result); err != nil {
		return fmt.Errorf("failed to parse response data: %w", err)
	}
	return nil
}

// doRaw sends a pre-encoded body and decodes the whole response into result
func (c *Client) doRaw(ctx context.Context, method, path string, body []byte, headers map[string]string, result interface{}) error {
	respBody, status, err := c.send(ctx, method, path, bytes.NewReader(body), headers)
	if err != nil {
		return err
	}
	if status >= 400 {
		return parseAPIError(status, respBody)
	}
	if result != nil && len(respBody) > 0 {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
	}
	return nil
}

func (c *Client) send(ctx context.Context, method, path string, body io.Reader, headers map[string]string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	return respBody, resp.StatusCode, nil
}

// Projects returns the project service
func (c *Client) Projects() *ProjectService {
	return &ProjectService{client: c}
}

// Referees returns the referee service
func (c *Client) Referees() *RefereeService {
	return &RefereeService{client: c}
}

// Reports returns the report service
func (c *Client) Reports() *ReportService {
	return &ReportService{client: c}
}

// Billing returns the billing and payment service
func (c *Client) Billing() *BillingService {
	return &BillingService{client: c}
}
