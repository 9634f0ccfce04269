package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pratik-mahalle/proftrack/internal/api/handlers"
	"github.com/pratik-mahalle/proftrack/internal/api/middleware"
	"github.com/pratik-mahalle/proftrack/internal/config"
	"github.com/pratik-mahalle/proftrack/internal/domain/payment"
	identityprovider "github.com/pratik-mahalle/proftrack/internal/identity"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/repository/postgres"
	"github.com/pratik-mahalle/proftrack/internal/services"
	"github.com/pratik-mahalle/proftrack/internal/testutil"
)

const testWebhookSecret = "sk_test_router"

// setupRouter wires the full stack over an in-memory SQLite database with
// the dev resolver, which maps a bare email bearer token to that identity.
func setupRouter(t *testing.T) http.Handler {
	t.Helper()
	return setupRouterWithLimit(t, 1000, 1000)
}

func setupRouterWithLimit(t *testing.T, rps float64, burst int) http.Handler {
	t.Helper()
	database := testutil.NewTestDB(t)
	t.Cleanup(func() { testutil.CleanupDB(database) })

	log := logger.New(logger.Config{Level: "error", Format: "json"})
	cfg := &config.Config{
		Server: config.ServerConfig{
			FrontendURL: "http://localhost:5173",
			AppBaseURL:  "http://localhost:8080",
			Environment: "test",
			RateLimit:   rps,
			RateBurst:   burst,
		},
		Auth: config.AuthConfig{DevBypass: true, DevEmail: "dev@localhost", LoginPath: "/login", BillingPath: "/billing"},
		Payment: config.PaymentConfig{
			SecretKey:        testWebhookSecret,
			Currency:         "NGN",
			SubscriptionDays: 30,
			SuccessPath:      "/dashboard",
		},
	}

	userRepo := postgres.NewUserRepository(database)
	projectRepo := postgres.NewProjectRepository(database)
	refereeRepo := postgres.NewRefereeRepository(database)
	reportRepo := postgres.NewReportRepository(database)

	verifier := services.NewIdentityService(identityprovider.NewDevResolver(cfg.Auth), userRepo, log)
	ledger := services.NewSubscriptionService(userRepo, nil, log)
	paymentService := services.NewPaymentService(testutil.NewMockGateway(), ledger, userRepo,
		postgres.NewPaymentEventLog(database), cfg.Payment, cfg.Server.AppBaseURL, log)

	gate, err := middleware.NewGate(middleware.GateConfig{
		SubscriptionPrefixes: []string{"/dashboard", "/api/projects", "/api/referees", "/api/reports"},
		AuthOnlyPrefixes:     []string{"/billing", "/api/profile", "/api/billing", "/api/payments/initialize"},
		LoginPath:            cfg.Auth.LoginPath,
		BillingPath:          cfg.Auth.BillingPath,
	}, verifier, ledger, log)
	if err != nil {
		t.Fatalf("NewGate() error = %v", err)
	}

	return New(cfg, log, gate, &Handlers{
		Health: handlers.NewHealthHandler(database, nil, log),
		Payment: handlers.NewPaymentHandler(paymentService, handlers.PaymentRedirects{
			FrontendURL: cfg.Server.FrontendURL,
			SuccessPath: cfg.Payment.SuccessPath,
			BillingPath: cfg.Auth.BillingPath,
		}, log),
		Profile: handlers.NewProfileHandler(services.NewUserService(userRepo, log), ledger, log),
		Project: handlers.NewProjectHandler(services.NewProjectService(projectRepo, log), log),
		Referee: handlers.NewRefereeHandler(services.NewRefereeService(refereeRepo, projectRepo, log), log),
		Report: handlers.NewReportHandler(services.NewReportService(reportRepo, projectRepo, refereeRepo,
			nil, "", nil, log), log),
	})
}

func do(t *testing.T, h http.Handler, method, target, token string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func sendWebhook(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	raw := []byte(body)
	return do(t, h, http.MethodPost, "/api/payments/webhook", "", raw, map[string]string{
		payment.SignatureHeader: payment.Sign(raw, testWebhookSecret),
	})
}

func TestRouter_SubscriptionLifecycle(t *testing.T) {
	h := setupRouter(t)
	const token = "ada@example.com"

	rr := do(t, h, http.MethodGet, "/dashboard", "", nil, nil)
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/login?redirect=%2Fdashboard" {
		t.Fatalf("anonymous dashboard: %d %q", rr.Code, rr.Header().Get("Location"))
	}

	rr = do(t, h, http.MethodGet, "/api/projects", token, nil, nil)
	if rr.Code != http.StatusForbidden || !strings.Contains(rr.Body.String(), "inactive_subscription") {
		t.Fatalf("unpaid projects: %d %s", rr.Code, rr.Body.String())
	}

	// Auth-only routes work before paying.
	rr = do(t, h, http.MethodGet, "/api/profile", token, nil, nil)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), token) {
		t.Fatalf("profile: %d %s", rr.Code, rr.Body.String())
	}

	rr = sendWebhook(t, h, `{"event":"charge.success","data":{"reference":"ref_1","customer":{"email":"Ada@Example.com","customer_code":"CUS_1"}}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("webhook: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, h, http.MethodPost, "/api/projects", token, []byte(`{"title":"Harbour Bridge"}`), nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create project: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, h, http.MethodGet, "/api/projects", token, nil, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("paid projects: %d %s", rr.Code, rr.Body.String())
	}
	var page struct {
		Data struct {
			TotalItems int64 `json:"total_items"`
		} `json:"data"`
	}
	json.NewDecoder(rr.Body).Decode(&page)
	if page.Data.TotalItems != 1 {
		t.Errorf("total_items = %d, want 1", page.Data.TotalItems)
	}

	rr = sendWebhook(t, h, `{"event":"subscription.disable","data":{"customer":{"customer_code":"CUS_1"}}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("disable webhook: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, h, http.MethodGet, "/dashboard", token, nil, nil)
	if rr.Code != http.StatusFound || rr.Header().Get("Location") != "/billing?reason=inactive_subscription" {
		t.Errorf("cancelled dashboard: %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestRouter_PublicRoutes(t *testing.T) {
	h := setupRouter(t)

	rr := do(t, h, http.MethodGet, "/health", "", nil, nil)
	if rr.Code != http.StatusOK {
		t.Errorf("/health: %d", rr.Code)
	}

	rr = sendWebhook(t, h, `{"event":"transfer.success","data":{}}`)
	if rr.Code != http.StatusOK {
		t.Errorf("unknown event: %d %s", rr.Code, rr.Body.String())
	}

	rr = do(t, h, http.MethodPost, "/api/payments/webhook", "", []byte(`{"event":"charge.success"}`), map[string]string{
		payment.SignatureHeader: "deadbeef",
	})
	if rr.Code != http.StatusBadRequest {
		t.Errorf("bad signature: %d", rr.Code)
	}

	rr = do(t, h, http.MethodGet, "/api/payments/verify", "", nil, nil)
	if rr.Code != http.StatusFound || !strings.HasSuffix(rr.Header().Get("Location"), "/billing?payment=failed&reason=missing_reference") {
		t.Errorf("verify without reference: %d %q", rr.Code, rr.Header().Get("Location"))
	}
}

func TestRouter_WebhookIsNotRateLimited(t *testing.T) {
	h := setupRouterWithLimit(t, 0.001, 1)

	for i := 0; i < 5; i++ {
		rr := sendWebhook(t, h, `{"event":"transfer.success","data":{"reference":"trf_1"}}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("delivery %d: %d %s", i+1, rr.Code, rr.Body.String())
		}
	}

	if rr := do(t, h, http.MethodGet, "/health", "", nil, nil); rr.Code != http.StatusOK {
		t.Fatalf("first health check: %d", rr.Code)
	}
	if rr := do(t, h, http.MethodGet, "/health", "", nil, nil); rr.Code != http.StatusTooManyRequests {
		t.Errorf("second health check: %d, want 429", rr.Code)
	}
}
