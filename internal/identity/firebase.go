package identity

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sync"
	"sync/atomic"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"

	"github.com/pratik-mahalle/proftrack/internal/config"
	"github.com/pratik-mahalle/proftrack/internal/domain/identity"
)

// FirebaseApp is the process-wide handle to the identity provider. The
// underlying client is created once, on first use or on Init, and is
// read-only afterwards.
type FirebaseApp struct {
	cfg    config.FirebaseConfig
	once   sync.Once
	client *auth.Client
	err    error
	ready  atomic.Bool
}

// NewFirebaseApp creates an uninitialised handle
func NewFirebaseApp(cfg config.FirebaseConfig) *FirebaseApp {
	return &FirebaseApp{cfg: cfg}
}

// Init initialises the client if that has not happened yet
func (a *FirebaseApp) Init(ctx context.Context) error {
	_, err := a.Auth(ctx)
	return err
}

// Auth returns the auth client, initialising it on the first call
func (a *FirebaseApp) Auth(ctx context.Context) (*auth.Client, error) {
	a.once.Do(func() {
		a.client, a.err = a.newClient(context.WithoutCancel(ctx))
		a.ready.Store(a.err == nil)
	})
	return a.client, a.err
}

// IsReady reports whether the client was initialised successfully
func (a *FirebaseApp) IsReady() bool {
	return a.ready.Load()
}

func (a *FirebaseApp) newClient(ctx context.Context) (*auth.Client, error) {
	if a.cfg.ProjectID == "" {
		return nil, stderrors.New("FIREBASE_PROJECT_ID must be set")
	}

	opt, err := a.credentials()
	if err != nil {
		return nil, err
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: a.cfg.ProjectID}, opt)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase app: %w", err)
	}

	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("initialize firebase auth: %w", err)
	}
	return client, nil
}

func (a *FirebaseApp) credentials() (option.ClientOption, error) {
	if a.cfg.CredentialsFile != "" {
		return option.WithCredentialsFile(a.cfg.CredentialsFile), nil
	}

	if a.cfg.ClientEmail == "" || a.cfg.PrivateKey == "" {
		return nil, stderrors.New("either FIREBASE_CREDENTIALS_FILE or FIREBASE_CLIENT_EMAIL and FIREBASE_PRIVATE_KEY must be set")
	}

	serviceAccount, err := json.Marshal(map[string]string{
		"type":         "service_account",
		"project_id":   a.cfg.ProjectID,
		"client_email": a.cfg.ClientEmail,
		"private_key":  a.cfg.PrivateKey,
		"token_uri":    "https://oauth2.googleapis.com/token",
	})
	if err != nil {
		return nil, fmt.Errorf("encode service account: %w", err)
	}
	return option.WithCredentialsJSON(serviceAccount), nil
}

// FirebaseResolver verifies Firebase ID tokens
type FirebaseResolver struct {
	app *FirebaseApp
}

// NewFirebaseResolver creates a resolver backed by the given handle
func NewFirebaseResolver(app *FirebaseApp) *FirebaseResolver {
	return &FirebaseResolver{app: app}
}

// Name identifies the resolver in logs
func (r *FirebaseResolver) Name() string { return "firebase" }

// Resolve verifies token and returns the identity it proves
func (r *FirebaseResolver) Resolve(ctx context.Context, token string) (*identity.Identity, error) {
	client, err := r.app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", identity.ErrProviderUnavailable, err)
	}

	tok, err := client.VerifyIDToken(ctx, token)
	if err != nil {
		if auth.IsCertificateFetchFailed(err) || stderrors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %v", identity.ErrProviderUnavailable, err)
		}
		return nil, fmt.Errorf("%w: %v", identity.ErrTokenRejected, err)
	}

	return identityFromClaims(tok.UID, tok.Claims), nil
}

func identityFromClaims(uid string, claims map[string]interface{}) *identity.Identity {
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)
	verified, _ := claims["email_verified"].(bool)
	return &identity.Identity{
		Subject:       uid,
		Email:         email,
		DisplayName:   name,
		EmailVerified: verified,
	}
}
