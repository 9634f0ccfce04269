package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "proftrack"

var (
	// HTTP metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	httpRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_in_flight",
			Help:      "Number of HTTP requests currently being served",
		},
	)

	// Gate and identity metrics
	gateDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "gate",
			Name:      "decisions_total",
			Help:      "Request gate decisions by route class and outcome",
		},
		[]string{"class", "outcome"},
	)

	identityVerificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "identity",
			Name:      "verifications_total",
			Help:      "Credential verifications by result",
		},
		[]string{"result"},
	)

	// Payment and subscription metrics
	paymentWebhooksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "payment",
			Name:      "webhooks_total",
			Help:      "Payment webhook deliveries by event type and outcome",
		},
		[]string{"event", "outcome"},
	)

	subscriptionActivationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "subscription",
			Name:      "activations_total",
			Help:      "Subscription activations by source",
		},
		[]string{"source"},
	)

	subscriptionExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "subscription",
			Name:      "expired_total",
			Help:      "Subscriptions flipped to INACTIVE by the sweeper",
		},
	)

	// Report metrics
	reportGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "report",
			Name:      "generation_duration_seconds",
			Help:      "Duration of AI report drafting in seconds",
			Buckets:   []float64{.5, 1, 2.5, 5, 10, 30, 60},
		},
		[]string{"provider", "status"},
	)
)

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware returns a middleware that records Prometheus metrics
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		httpRequestsInFlight.Inc()
		defer httpRequestsInFlight.Dec()

		wrapped := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(wrapped, r)

		routePattern := "unknown"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			routePattern = rctx.RoutePattern()
		}

		status := strconv.Itoa(wrapped.statusCode)
		duration := time.Since(start).Seconds()

		httpRequestsTotal.WithLabelValues(r.Method, routePattern, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, routePattern, status).Observe(duration)
	})
}

// Handler returns the Prometheus metrics HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordGateDecision counts one request gate outcome
func RecordGateDecision(class, outcome string) {
	gateDecisionsTotal.WithLabelValues(class, outcome).Inc()
}

// RecordIdentityVerification counts one verifier result
func RecordIdentityVerification(result string) {
	identityVerificationsTotal.WithLabelValues(result).Inc()
}

// RecordWebhook counts one webhook delivery
func RecordWebhook(event, outcome string) {
	paymentWebhooksTotal.WithLabelValues(event, outcome).Inc()
}

// RecordActivation counts a subscription activation
func RecordActivation(source string) {
	subscriptionActivationsTotal.WithLabelValues(source).Inc()
}

// RecordExpired adds n sweeper expirations
func RecordExpired(n int64) {
	subscriptionExpiredTotal.Add(float64(n))
}

// RecordReportGeneration observes one AI drafting call
func RecordReportGeneration(provider, status string, duration time.Duration) {
	reportGenerationDuration.WithLabelValues(provider, status).Observe(duration.Seconds())
}
