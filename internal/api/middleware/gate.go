package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/pratik-mahalle/proftrack/internal/domain/identity"
	"github.com/pratik-mahalle/proftrack/internal/domain/subscription"
	"github.com/pratik-mahalle/proftrack/internal/pkg/errors"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/pkg/metrics"
	"github.com/pratik-mahalle/proftrack/internal/pkg/utils"
)

// RouteClass is the access rule applied to a path
type RouteClass string

const (
	ClassPublic       RouteClass = "public"
	ClassAuthOnly     RouteClass = "auth_only"
	ClassSubscription RouteClass = "subscription"
)

// Gate outcomes
const (
	OutcomePassthrough     = "passthrough"
	OutcomeAuthorized      = "authorized"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeDenied          = "denied"
	OutcomeError           = "error"
)

// GateConfig configures the request gate
type GateConfig struct {
	SubscriptionPrefixes []string
	AuthOnlyPrefixes     []string
	LoginPath            string
	BillingPath          string
}

// Gate authenticates requests on guarded routes and enforces the
// subscription requirement. Unlisted paths pass through untouched.
type Gate struct {
	cfg      GateConfig
	verifier identity.Verifier
	ledger   subscription.Ledger
	logger   *logger.Logger
}

// NewGate validates the route classes and builds a gate
func NewGate(cfg GateConfig, verifier identity.Verifier, ledger subscription.Ledger, log *logger.Logger) (*Gate, error) {
	for _, sub := range cfg.SubscriptionPrefixes {
		for _, auth := range cfg.AuthOnlyPrefixes {
			if overlaps(sub, auth) {
				return nil, fmt.Errorf("gate prefixes overlap: %q and %q", sub, auth)
			}
		}
	}
	if cfg.LoginPath == "" {
		cfg.LoginPath = "/login"
	}
	if cfg.BillingPath == "" {
		cfg.BillingPath = "/billing"
	}
	return &Gate{cfg: cfg, verifier: verifier, ledger: ledger, logger: log}, nil
}

// Classify returns the route class for path
func (g *Gate) Classify(path string) RouteClass {
	for _, p := range g.cfg.SubscriptionPrefixes {
		if matchPrefix(path, p) {
			return ClassSubscription
		}
	}
	for _, p := range g.cfg.AuthOnlyPrefixes {
		if matchPrefix(path, p) {
			return ClassAuthOnly
		}
	}
	return ClassPublic
}

// Handler is the middleware form of the gate
func (g *Gate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		class := g.Classify(r.URL.Path)
		if class == ClassPublic {
			metrics.RecordGateDecision(string(class), OutcomePassthrough)
			next.ServeHTTP(w, r)
			return
		}

		AddLogField(r, "gate_class", string(class))

		principal, ok := g.verifier.Verify(r.Context(), r.Header.Get("Authorization"))
		if !ok {
			g.record(r, class, OutcomeUnauthenticated)
			g.unauthenticated(w, r)
			return
		}

		AddLogField(r, "user_id", principal.UserID)
		AddLogField(r, "email", principal.Email)

		if class == ClassSubscription {
			access, err := g.ledger.Access(r.Context(), principal.UserID)
			if err != nil {
				g.record(r, class, OutcomeError)
				g.logger.ErrorWithErr(err, "Subscription lookup failed")
				utils.WriteErrorFrom(w, err)
				return
			}
			if !access.Active {
				g.record(r, class, OutcomeDenied)
				AddLogField(r, "gate_reason", access.Reason)
				g.denied(w, r, access.Reason)
				return
			}
		}

		g.record(r, class, OutcomeAuthorized)
		next.ServeHTTP(w, r.WithContext(WithPrincipal(r.Context(), principal)))
	})
}

func (g *Gate) record(r *http.Request, class RouteClass, outcome string) {
	metrics.RecordGateDecision(string(class), outcome)
	AddLogField(r, "gate_outcome", outcome)
}

func (g *Gate) unauthenticated(w http.ResponseWriter, r *http.Request) {
	if isAPIPath(r.URL.Path) {
		utils.WriteError(w, errors.Unauthenticated("Authentication required"))
		return
	}
	target := g.cfg.LoginPath + "?redirect=" + url.QueryEscape(r.URL.RequestURI())
	http.Redirect(w, r, target, http.StatusFound)
}

func (g *Gate) denied(w http.ResponseWriter, r *http.Request, reason string) {
	if isAPIPath(r.URL.Path) {
		utils.WriteError(w, errors.Unauthorized("An active subscription is required").
			WithDetails(map[string]string{"reason": reason}))
		return
	}
	target := g.cfg.BillingPath + "?reason=" + url.QueryEscape(reason)
	http.Redirect(w, r, target, http.StatusFound)
}

func matchPrefix(path, prefix string) bool {
	prefix = strings.TrimRight(prefix, "/")
	if prefix == "" {
		return false
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

func overlaps(a, b string) bool {
	return matchPrefix(a, b) || matchPrefix(b, a)
}

func isAPIPath(path string) bool {
	return matchPrefix(path, "/api")
}
