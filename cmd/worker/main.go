// Package main provides the entrypoint for the Margdarshak background worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/margdarshak/margdarshak/internal/database"
	"github.com/margdarshak/margdarshak/internal/provider/resilience"
	"github.com/margdarshak/margdarshak/internal/region"
	"github.com/margdarshak/margdarshak/internal/routing"
	"github.com/margdarshak/margdarshak/internal/routing/osrm"
	"github.com/margdarshak/margdarshak/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "margdarshak-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting Margdarshak worker")

	// Worker also exposes a health endpoint for Cloud Run
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Snapshot source: Postgres when configured, otherwise the built-in
	// dataset. Reloads against the static source still validate and
	// re-warm routes, which is useful for local runs.
	var source worker.SnapshotSource
	if os.Getenv("DB_ENABLED") == "true" {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Str("database", dbConfig.Database).
			Msg("database connected")

		source = region.NewPostgresRepository(pool)
	} else {
		source = worker.StaticSource{Data: region.DefaultDataset()}
		log.Info().Msg("using built-in regional dataset")
	}

	store := region.NewStore(region.NewInMemoryRepository(region.DefaultDataset()))
	providers := resilience.NewRegistry()

	// Routing service for cache warming after a successful swap. Without
	// OSRM the warm pass exercises the great-circle fallback only.
	var routeProvider routing.Provider
	if osrmURL := os.Getenv("OSRM_BASE_URL"); osrmURL != "" {
		routeProvider = osrm.NewClient(osrm.ClientConfig{
			BaseURL:  osrmURL,
			Registry: providers,
			Logger:   log,
		})
	}
	router := routing.NewService(routing.ServiceConfig{
		Provider: routeProvider,
		Logger:   log,
	})

	reloadJob := worker.NewReloadJob(worker.ReloadJobConfig{
		Logger: log,
		Source: source,
		Store:  store,
		Router: router,
	})

	// Run one reload at startup so the worker never sits on stale data
	// while waiting for the first scheduled message.
	if result := reloadJob.Run(ctx); result.Err() != nil {
		log.Error().Err(result.Err()).Msg("initial reload failed")
	}

	// Health check server
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		total, failed, lastAt := reloadJob.Stats()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":%q,"reloads":%d,"failed":%d,"last_reload":%q}`,
			Version, total, failed, lastAt.Format(time.RFC3339))
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Job dispatch: Pub/Sub when configured, otherwise a local ticker
	// drives periodic reloads.
	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
	if subscription == "" {
		subscription = "margdarshak-worker-jobs"
	}

	if projectID != "" {
		handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			ReloadJob:        reloadJob,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer handler.Close()

		go func() {
			log.Info().
				Str("project", projectID).
				Str("subscription", subscription).
				Msg("receiving pubsub messages")
			if err := handler.Start(ctx); err != nil {
				log.Error().Err(err).Msg("pubsub receive stopped")
			}
		}()
	} else {
		interval := 6 * time.Hour
		if raw := os.Getenv("RELOAD_INTERVAL"); raw != "" {
			if parsed, err := time.ParseDuration(raw); err == nil {
				interval = parsed
			}
		}

		go func() {
			log.Info().Dur("interval", interval).Msg("pubsub not configured, using local reload schedule")
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					if result := reloadJob.Run(ctx); result.Err() != nil {
						log.Error().Err(result.Err()).Msg("scheduled reload failed")
					}
				}
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
