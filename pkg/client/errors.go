package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError represents an error returned by the API
type APIError struct {
	StatusCode int                    `json:"-"`
	Code       string                 `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("API error [%s]: %s (status: %d)", e.Code, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("API error: %s (status: %d)", e.Message, e.StatusCode)
}

// Reason returns the subscription reason code carried by a 403, if any
func (e *APIError) Reason() string {
	if e.Details == nil {
		return ""
	}
	reason, _ := e.Details["reason"].(string)
	return reason
}

// IsNotFound returns true if the error is a 404 not found error
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsUnauthenticated returns true for a missing or rejected credential
func (e *APIError) IsUnauthenticated() bool {
	return e.StatusCode == http.StatusUnauthorized
}

// IsSubscriptionRequired returns true when the caller lacks an active subscription
func (e *APIError) IsSubscriptionRequired() bool {
	return e.StatusCode == http.StatusForbidden
}

// IsValidationError returns true if the error is a 400 validation error
func (e *APIError) IsValidationError() bool {
	return e.StatusCode == http.StatusBadRequest
}

// IsServerError returns true if the error is a 5xx server error
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}

// parseAPIError understands both the {"error":{...}} envelope and the flat
// {"message":...} body of the payment routes.
func parseAPIError(status int, body []byte) error {
	var env envelope
	if err := json.Unmarshal(body, &env); err == nil {
		if env.Error != nil {
			env.Error.StatusCode = status
			return env.Error
		}
		if env.Message != "" {
			return &APIError{StatusCode: status, Message: env.Message}
		}
	}

	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(status)
	}
	return &APIError{StatusCode: status, Message: msg}
}
