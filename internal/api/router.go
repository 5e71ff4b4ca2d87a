// Package api provides the HTTP API for Margdarshak.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/margdarshak/margdarshak/internal/api/handler"
	"github.com/margdarshak/margdarshak/internal/api/middleware"
	"github.com/margdarshak/margdarshak/internal/provider/resilience"
	"github.com/margdarshak/margdarshak/internal/region"
	"github.com/margdarshak/margdarshak/internal/traffic"
	"github.com/margdarshak/margdarshak/internal/trip"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version     string
	BuildTime   string
	Logger      zerolog.Logger
	ServiceName string
	Metrics     *middleware.Metrics
	Trips       *trip.Service
	Regions     *region.Store
	Traffic     *traffic.Calculator
	Providers   *resilience.Registry
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "margdarshak-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.RequireJSON)          // Reject non-JSON bodies early
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Regions, cfg.Providers)
	tripHandler := handler.NewTripHandler(cfg.Trips)
	metadataHandler := handler.NewMetadataHandler(handler.MetadataHandlerConfig{
		Regions: cfg.Regions,
		Traffic: cfg.Traffic,
	})

	// Departure scans evaluate the multiplier for every slot in the
	// horizon, so they get the tighter limit.
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Metadata endpoints - standard rate limiting
		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/cities", metadataHandler.ListCities)
			r.Get("/modes", metadataHandler.ListModes)
		})

		// Trip scoring endpoints - expensive compute, strict rate limiting
		r.With(expensiveRateLimit).Post("/trips:estimate", tripHandler.Estimate)
		r.With(expensiveRateLimit).Post("/trips:departures", tripHandler.BestDepartures)
	})

	return r
}
