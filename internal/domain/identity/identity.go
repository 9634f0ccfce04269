package identity

import (
	"context"
	"errors"
	"strings"
)

var (
	// ErrTokenRejected means the provider refused the credential
	ErrTokenRejected = errors.New("identity: token rejected")
	// ErrProviderUnavailable means the provider could not be reached
	ErrProviderUnavailable = errors.New("identity: provider unavailable")
)

// Identity is what a credential proves about its holder
type Identity struct {
	Subject       string
	Email         string
	DisplayName   string
	// EmailVerified is set when the provider asserts the holder owns Email
	EmailVerified bool
}

// Principal is an authenticated caller resolved to a local user
type Principal struct {
	UserID  int64
	Email   string
	Subject string
}

// CredentialResolver turns a bearer token into a verified identity
type CredentialResolver interface {
	Resolve(ctx context.Context, token string) (*Identity, error)
	Name() string
}

// Verifier resolves an Authorization header to a principal. Failures never
// surface as errors; ok is false instead.
type Verifier interface {
	Verify(ctx context.Context, authorizationHeader string) (principal *Principal, ok bool)
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value
func BearerToken(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}
	return token, true
}

// NormalizeEmail lower-cases and trims an address for use as a lookup key
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
