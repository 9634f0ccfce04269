package middleware

import (
	"context"
	"net/http"

	"github.com/pratik-mahalle/proftrack/internal/domain/identity"
)

// ContextKey is a custom type for context keys
type ContextKey string

const (
	// PrincipalKey is the context key for the authenticated principal
	PrincipalKey ContextKey = "principal"
)

// WithPrincipal returns a copy of ctx carrying p
func WithPrincipal(ctx context.Context, p *identity.Principal) context.Context {
	return context.WithValue(ctx, PrincipalKey, p)
}

// GetPrincipal extracts the authenticated principal from the request context
func GetPrincipal(r *http.Request) (*identity.Principal, bool) {
	p, ok := r.Context().Value(PrincipalKey).(*identity.Principal)
	return p, ok && p != nil
}

// GetUserID extracts the user ID from the request context
func GetUserID(r *http.Request) (int64, bool) {
	p, ok := GetPrincipal(r)
	if !ok {
		return 0, false
	}
	return p.UserID, true
}

// GetUserEmail extracts the user email from the request context
func GetUserEmail(r *http.Request) (string, bool) {
	p, ok := GetPrincipal(r)
	if !ok {
		return "", false
	}
	return p.Email, true
}
