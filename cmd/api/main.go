// Package main provides the entrypoint for the Margdarshak API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/margdarshak/margdarshak/internal/advisor"
	"github.com/margdarshak/margdarshak/internal/api"
	"github.com/margdarshak/margdarshak/internal/api/middleware"
	"github.com/margdarshak/margdarshak/internal/database"
	"github.com/margdarshak/margdarshak/internal/provider/resilience"
	"github.com/margdarshak/margdarshak/internal/region"
	"github.com/margdarshak/margdarshak/internal/routing"
	"github.com/margdarshak/margdarshak/internal/routing/osrm"
	"github.com/margdarshak/margdarshak/internal/telemetry"
	"github.com/margdarshak/margdarshak/internal/traffic"
	"github.com/margdarshak/margdarshak/internal/trip"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "margdarshak-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Margdarshak API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Initialize regional reference data. Postgres is optional: without
	// it the server runs on the built-in dataset, which covers the major
	// metros and is enough for local development.
	var regions *region.Store
	if os.Getenv("DB_ENABLED") == "true" {
		dbConfig := database.ConfigFromEnv()
		pool, dbErr := database.Connect(ctx, dbConfig)
		if dbErr != nil {
			log.Fatal().Err(dbErr).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		regions = region.NewStore(region.NewPostgresRepository(pool))
	} else {
		regions = region.NewStore(region.NewInMemoryRepository(region.DefaultDataset()))
		log.Info().Msg("using built-in regional dataset")
	}

	// Provider health registry feeds the ops status endpoint
	providers := resilience.NewRegistry()

	// Initialize routing service. Without an OSRM endpoint every route
	// falls back to the great-circle estimate.
	var routeProvider routing.Provider
	if osrmURL := os.Getenv("OSRM_BASE_URL"); osrmURL != "" {
		routeProvider = osrm.NewClient(osrm.ClientConfig{
			BaseURL:  osrmURL,
			Registry: providers,
			Logger:   log,
		})
		log.Info().Str("base_url", osrmURL).Msg("OSRM routing provider initialized")
	} else {
		log.Warn().Msg("OSRM not configured, routes use great-circle fallback")
	}

	router := routing.NewService(routing.ServiceConfig{
		Provider: routeProvider,
		Logger:   log,
	})

	// Initialize traffic calculator and departure planner
	calculator := traffic.NewCalculator(traffic.CalculatorConfig{
		Store:  regions,
		Logger: log,
	})

	planner := trip.NewPlanner(trip.PlannerConfig{
		Traffic: calculator,
		Logger:  log,
	})

	// Initialize advisor client (may be nil if not configured)
	var tripAdvisor trip.Advisor
	if advisorURL := os.Getenv("ADVISOR_BASE_URL"); advisorURL != "" {
		tripAdvisor = advisor.NewClient(advisor.ClientConfig{
			BaseURL:  advisorURL,
			Registry: providers,
			Logger:   log,
		})
		log.Info().Str("base_url", advisorURL).Msg("advisor client initialized")
	}

	// Initialize trip service
	trips := trip.NewService(trip.ServiceConfig{
		Regions: regions,
		Traffic: calculator,
		Router:  router,
		Planner: planner,
		Advisor: tripAdvisor,
		Logger:  log,
	})
	log.Info().Msg("trip service initialized")

	// Create router with configuration
	handler := api.NewRouter(api.RouterConfig{
		Version:     Version,
		BuildTime:   BuildTime,
		Logger:      log,
		ServiceName: serviceName,
		Metrics:     metrics,
		Trips:       trips,
		Regions:     regions,
		Traffic:     calculator,
		Providers:   providers,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
