package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anonto42/socialite/backend/internal/middleware"
	"github.com/anonto42/socialite/backend/internal/router"
	"github.com/anonto42/socialite/backend/pkg/config"
	"github.com/anonto42/socialite/backend/pkg/events"
	"github.com/anonto42/socialite/backend/pkg/firebase"
	"github.com/anonto42/socialite/backend/pkg/logger"
	"github.com/anonto42/socialite/backend/pkg/metrics"
	"github.com/anonto42/socialite/backend/validators"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
)

func main() {
	bootLog := logger.New("socialite-api", "info").Entry()

	// Load configuration
	cfg, err := config.Load(bootLog)
	if err != nil {
		bootLog.WithError(err).Fatal("Failed to load configuration")
	}

	log := logger.New("socialite-api", cfg.LogLevel).Entry()
	if err := run(cfg, log); err != nil {
		log.WithError(err).Fatal("Server stopped")
	}
}

// run returns only after every opened connection has been closed.
func run(cfg *config.Config, log *logrus.Entry) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize database connections
	db, err := config.InitDB(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize databases: %w", err)
	}
	defer db.CloseDB()

	if err := router.Migrate(db.Postgres); err != nil {
		return fmt.Errorf("failed to auto migrate models: %w", err)
	}
	log.Info("PostgreSQL auto-migrations completed for all models.")

	deps := router.Deps{Config: cfg, DB: db, Log: log}

	// Firebase is optional: without it only local tokens are accepted
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath, log)
		if err != nil {
			return fmt.Errorf("failed to initialize firebase: %w", err)
		}
		deps.Firebase = firebaseApp.AuthClient
	} else {
		log.Warn("FIREBASE_CREDENTIALS_PATH not set, Firebase login disabled")
	}

	if cfg.NatsURL != "" {
		nc, err := events.Connect(events.NatsConfig{
			URL:           cfg.NatsURL,
			MaxReconnects: 10,
			ReconnectWait: 2 * time.Second,
			ClientName:    "socialite-api",
		}, log.WithField("component", "nats"))
		if err != nil {
			return fmt.Errorf("failed to connect to NATS: %w", err)
		}
		defer nc.Close()
		deps.Publisher = nc
		log.Info("Connected to NATS")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	deps.Metrics = metrics.NewMetrics("socialite", reg)

	serveErr := make(chan error, 2)

	metricsServer := &http.Server{Addr: ":" + cfg.MetricsPort, Handler: deps.Metrics.Handler()}
	go func() {
		log.WithField("port", cfg.MetricsPort).Info("Metrics server listening")
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("metrics server: %w", err)
		}
	}()

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	jwt := middleware.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	router.SetupMiddleware(e, deps, jwt)
	router.SetupRoutes(e, deps, jwt)
	if cfg.DevTokensEnabled() {
		log.Warn("DEV_TOKENS enabled: /api/v1/auth/dev-token issues tokens without credentials")
	}

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("api server: %w", err)
		}
	}()

	return awaitShutdown(ctx, log, serveErr, e.Shutdown, metricsServer.Shutdown)
}

// awaitShutdown blocks until ctx is cancelled or a server fails, then
// shuts every server down. A server failure is returned so deferred cleanup
// in run still executes before main exits.
func awaitShutdown(ctx context.Context, log *logrus.Entry, serveErr <-chan error, shutdowns ...func(context.Context) error) error {
	var failure error
	select {
	case <-ctx.Done():
		log.Info("Shutting down")
	case failure = <-serveErr:
		log.WithError(failure).Error("Server failed, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, shutdown := range shutdowns {
		if err := shutdown(shutdownCtx); err != nil {
			log.WithError(err).Error("Server shutdown failed")
		}
	}
	return failure
}
