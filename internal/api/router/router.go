package router

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/pratik-mahalle/proftrack/docs"
	"github.com/pratik-mahalle/proftrack/internal/api/handlers"
	"github.com/pratik-mahalle/proftrack/internal/api/middleware"
	"github.com/pratik-mahalle/proftrack/internal/config"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/pkg/metrics"
)

// WebhookPath receives payment provider deliveries
const WebhookPath = "/api/payments/webhook"

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Health  *handlers.HealthHandler
	Payment *handlers.PaymentHandler
	Profile *handlers.ProfileHandler
	Project *handlers.ProjectHandler
	Referee *handlers.RefereeHandler
	Report  *handlers.ReportHandler
}

// New builds the HTTP handler. The gate runs on every request and decides
// from the path alone whether a credential or a subscription is required.
func New(cfg *config.Config, log *logger.Logger, gate *middleware.Gate, h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(metrics.Middleware)
	r.Use(middleware.SecurityHeaders(cfg.IsProduction()))
	r.Use(middleware.CORS(cfg.Server.FrontendURL, cfg.IsProduction()))
	// webhook deliveries are signed and never rate limited
	r.Use(middleware.RateLimit(cfg.Server.RateLimit, cfg.Server.RateBurst, WebhookPath))
	r.Use(gate.Handler)

	// Operations
	r.Get("/health", h.Health.Healthz)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	// Payments
	r.Post("/api/payments/initialize", h.Payment.Initialize)
	r.Post(WebhookPath, h.Payment.Webhook)
	r.Get("/api/payments/verify", h.Payment.Verify)

	// Profile and billing
	r.Get("/api/profile", h.Profile.Get)
	r.Put("/api/profile", h.Profile.Update)
	r.Get("/api/billing/status", h.Profile.BillingStatus)

	r.Route("/api/projects", func(r chi.Router) {
		r.Get("/", h.Project.List)
		r.Post("/", h.Project.Create)
		r.Get("/{id}", h.Project.Get)
		r.Put("/{id}", h.Project.Update)
		r.Delete("/{id}", h.Project.Delete)
	})

	r.Route("/api/referees", func(r chi.Router) {
		r.Get("/", h.Referee.List)
		r.Post("/", h.Referee.Create)
		r.Get("/{id}", h.Referee.Get)
		r.Put("/{id}", h.Referee.Update)
		r.Delete("/{id}", h.Referee.Delete)
	})

	r.Route("/api/reports", func(r chi.Router) {
		r.Get("/", h.Report.List)
		r.Post("/", h.Report.Create)
		// drafting calls a paid API, so it gets a tighter per-user budget
		r.With(middleware.UserRateLimit(0.2, 3)).Post("/generate", h.Report.Generate)
		r.Get("/{id}", h.Report.Get)
		r.Put("/{id}", h.Report.Update)
		r.Delete("/{id}", h.Report.Delete)
		r.Post("/{id}/export", h.Report.Export)
	})

	if cfg.Server.StaticDir != "" {
		r.NotFound(spaHandler(cfg.Server.StaticDir))
	}

	return r
}

// spaHandler serves files from dir and falls back to index.html so client
// side routes such as /dashboard resolve. API paths keep their 404.
func spaHandler(dir string) http.HandlerFunc {
	fileServer := http.FileServer(http.Dir(dir))
	index := filepath.Join(dir, "index.html")

	return func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") || r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}

		path := filepath.Join(dir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			fileServer.ServeHTTP(w, r)
			return
		}
		http.ServeFile(w, r, index)
	}
}
