package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pratik-mahalle/proftrack/internal/api/handlers"
	"github.com/pratik-mahalle/proftrack/internal/api/middleware"
	"github.com/pratik-mahalle/proftrack/internal/api/router"
	"github.com/pratik-mahalle/proftrack/internal/archive"
	"github.com/pratik-mahalle/proftrack/internal/config"
	"github.com/pratik-mahalle/proftrack/internal/db"
	"github.com/pratik-mahalle/proftrack/internal/integrations"
	"github.com/pratik-mahalle/proftrack/internal/pkg/logger"
	"github.com/pratik-mahalle/proftrack/internal/repository/postgres"
	"github.com/pratik-mahalle/proftrack/internal/services"
	"github.com/pratik-mahalle/proftrack/internal/worker"
)

// @title ProfTrack API
// @version 1.0
// @description Project, referee and report tracking with subscription billing.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log := logger.Init(logger.Config{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		OutputPath: cfg.Logging.OutputPath,
		Service:    "proftrack-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.FatalWithErr(err, "Server exited with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	database, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer database.Close()

	applied, err := database.Migrate(ctx)
	if err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"driver":  cfg.Database.Driver,
		"applied": applied,
	}).Info("Database ready")

	// Repositories
	userRepo := postgres.NewUserRepository(database)
	projectRepo := postgres.NewProjectRepository(database)
	refereeRepo := postgres.NewRefereeRepository(database)
	reportRepo := postgres.NewReportRepository(database)

	events, closeEvents, err := buildEventLog(ctx, cfg, database, log)
	if err != nil {
		return err
	}
	defer closeEvents()

	resolver, readiness, err := buildResolver(ctx, cfg, log)
	if err != nil {
		return err
	}

	writer, writerName := buildWriter(cfg, log)

	reportArchive, err := archive.New(ctx, cfg.Archive)
	if err != nil {
		return fmt.Errorf("configure report archive: %w", err)
	}
	if reportArchive == nil {
		log.Warn("No report archive configured, exports are disabled")
	}

	// Services
	verifier := services.NewIdentityService(resolver, userRepo, log)
	ledger := services.NewSubscriptionService(userRepo, nil, log)
	gateway := integrations.NewPaystackClient(cfg.Payment.SecretKey, cfg.Payment.BaseURL, cfg.Payment.Timeout)
	paymentService := services.NewPaymentService(gateway, ledger, userRepo, events, cfg.Payment, cfg.Server.AppBaseURL, log)
	userService := services.NewUserService(userRepo, log)
	projectService := services.NewProjectService(projectRepo, log)
	refereeService := services.NewRefereeService(refereeRepo, projectRepo, log)
	reportService := services.NewReportService(reportRepo, projectRepo, refereeRepo, writer, writerName, reportArchive, log)

	gate, err := middleware.NewGate(middleware.GateConfig{
		SubscriptionPrefixes: cfg.Gate.SubscriptionPrefixes,
		AuthOnlyPrefixes:     cfg.Gate.AuthOnlyPrefixes,
		LoginPath:            cfg.Auth.LoginPath,
		BillingPath:          cfg.Auth.BillingPath,
	}, verifier, ledger, log)
	if err != nil {
		return fmt.Errorf("configure request gate: %w", err)
	}

	h := &router.Handlers{
		Health: handlers.NewHealthHandler(database, readiness, log),
		Payment: handlers.NewPaymentHandler(paymentService, handlers.PaymentRedirects{
			FrontendURL: cfg.Server.FrontendURL,
			SuccessPath: cfg.Payment.SuccessPath,
			BillingPath: cfg.Auth.BillingPath,
		}, log),
		Profile: handlers.NewProfileHandler(userService, ledger, log),
		Project: handlers.NewProjectHandler(projectService, log),
		Referee: handlers.NewRefereeHandler(refereeService, log),
		Report:  handlers.NewReportHandler(reportService, log),
	}

	sweeper := worker.NewSubscriptionSweeper(ledger, cfg.Worker.SweepSchedule, log)
	if err := sweeper.Start(ctx); err != nil {
		return err
	}
	defer sweeper.Stop()

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.New(cfg, log, gate, h),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(map[string]interface{}{
			"addr":        srv.Addr,
			"environment": cfg.Server.Environment,
			"dev_bypass":  cfg.Auth.DevBypass,
		}).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
