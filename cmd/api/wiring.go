package main

import (
	"context"
	"fmt"

	"github.com/pratik-mahalle/proftrack/internal/api/handlers"
	"github.com/pratik-mahalle/proftrack/internal/config"
	"github.com/pratik-mahalle/proftrack/internal/db"
	"github.com/pratik-mahalle/proftrack/internal/domain/identity"
	"github.com/pratik-mahalle/proftrack/internal/domain/payment"
	"github.com/pratik-mahalle/proftrack/internal/domain/report"
	identityprovider "github.com/pratik-mahalle/proftrack/internal/identity"
	"github.com/pratik-mahalle/proftrack/internal/integrations"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/repository/postgres"
	redisrepo "github.com/pratik-mahalle/proftrack/internal/repository/redis"
)

// buildResolver picks the credential resolver once at start-up. The dev
// resolver is only constructed when AUTH_DEV_BYPASS is set.
func buildResolver(ctx context.Context, cfg *config.Config, log *logger.Logger) (identity.CredentialResolver, handlers.ReadinessCheck, error) {
	if cfg.Auth.DevBypass {
		log.Warn("AUTH_DEV_BYPASS is enabled, bearer tokens are not checked against the identity provider")
		return identityprovider.NewDevResolver(cfg.Auth), nil, nil
	}

	app := identityprovider.NewFirebaseApp(cfg.Firebase)
	if err := app.Init(ctx); err != nil {
		// requests fail closed and /readyz reports 503
		log.ErrorWithErr(err, "Identity provider initialization failed")
	}
	return identityprovider.NewFirebaseResolver(app), app, nil
}

// buildWriter returns the configured AI report writer, or nil
func buildWriter(cfg *config.Config, log *logger.Logger) (report.Writer, string) {
	switch cfg.AI.Provider {
	case "openai":
		if cfg.AI.OpenAIAPIKey != "" {
			return integrations.NewOpenAIClient(cfg.AI.OpenAIAPIKey, cfg.AI.OpenAIModel), "openai"
		}
	case "gemini":
		if cfg.AI.GeminiAPIKey != "" {
			return integrations.NewGeminiClient(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel), "gemini"
		}
	}
	log.Warn("No AI provider configured, report generation is disabled")
	return nil, ""
}

// buildEventLog returns the webhook dedupe log: Redis when enabled,
// otherwise the payment_events table.
func buildEventLog(ctx context.Context, cfg *config.Config, database *db.DB, log *logger.Logger) (payment.EventLog, func(), error) {
	if !cfg.Redis.Enabled {
		return postgres.NewPaymentEventLog(database), func() {}, nil
	}

	client, err := redisrepo.NewClient(ctx, cfg.Redis)
	if err != nil {
		return nil, nil, fmt.Errorf("connect redis: %w", err)
	}
	log.Info("Using Redis for payment event dedupe")
	return redisrepo.NewPaymentEventLog(client, cfg.Redis.EventTTL), func() { _ = client.Close() }, nil
}
