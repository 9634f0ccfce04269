package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/pkg/utils"
)

// Pinger is satisfied by *sql.DB and *db.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// ReadinessCheck reports whether a dependency is ready to serve traffic
type ReadinessCheck interface {
	IsReady() bool
}

// HealthHandler handles health check requests
type HealthHandler struct {
	db       Pinger
	identity ReadinessCheck
	logger   *logger.Logger
}

// NewHealthHandler creates a new health handler. identity may be nil when
// the dev resolver is in use.
func NewHealthHandler(db Pinger, identity ReadinessCheck, log *logger.Logger) *HealthHandler {
	return &HealthHandler{
		db:       db,
		identity: identity,
		logger:   log,
	}
}

// Healthz handles liveness probe
// @Summary Liveness probe
// @Description Check if the application is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is alive"
// @Router /health [get]
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Readyz handles readiness probe
// @Summary Readiness probe
// @Description Check the database and the identity provider client
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string "Application is ready"
// @Failure 503 {object} utils.ErrorResponse "Service unavailable"
// @Router /readyz [get]
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		h.logger.ErrorWithErr(err, "Database ping failed")
		utils.WriteErrorMessage(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Database connection failed")
		return
	}

	identityState := "dev"
	if h.identity != nil {
		if !h.identity.IsReady() {
			utils.WriteErrorMessage(w, http.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "Identity provider not initialized")
			return
		}
		identityState = "ready"
	}

	utils.WriteSuccess(w, http.StatusOK, map[string]string{
		"status":   "ready",
		"database": "connected",
		"identity": identityState,
	})
}
