package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/pratik-mahalle/proftrack/internal/auth"
	"github.com/pratik-mahalle/proftrack/internal/config"
	"github.com/pratik-mahalle/proftrack/internal/domain/identity"
)

// DevResolver stands in for the identity provider during local development.
// It is only constructed when AUTH_DEV_BYPASS is set.
//
// Accepted tokens, in order: an HS256 token signed with AUTH_DEV_SECRET, a
// bare email address, or anything else which maps to the fixed dev user.
type DevResolver struct {
	email  string
	name   string
	secret string
}

// NewDevResolver creates a dev resolver from auth configuration
func NewDevResolver(cfg config.AuthConfig) *DevResolver {
	return &DevResolver{
		email:  cfg.DevEmail,
		name:   cfg.DevName,
		secret: cfg.DevSecret,
	}
}

// Name identifies the resolver in logs
func (r *DevResolver) Name() string { return "dev" }

// Resolve maps token to a development identity
func (r *DevResolver) Resolve(ctx context.Context, token string) (*identity.Identity, error) {
	if r.secret != "" && strings.Count(token, ".") == 2 {
		claims, err := auth.ParseClaims(token, r.secret)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", identity.ErrTokenRejected, err)
		}
		return &identity.Identity{
			Subject:       claims.Subject,
			Email:         claims.Email,
			DisplayName:   claims.Name,
			EmailVerified: true,
		}, nil
	}

	if strings.Contains(token, "@") {
		return &identity.Identity{
			Subject:       "dev:" + token,
			Email:         token,
			EmailVerified: true,
		}, nil
	}

	return &identity.Identity{
		Subject:       "dev:" + r.email,
		Email:         r.email,
		DisplayName:   r.name,
		EmailVerified: true,
	}, nil
}
