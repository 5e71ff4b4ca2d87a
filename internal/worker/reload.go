package worker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/margdarshak/margdarshak/internal/region"
	"github.com/margdarshak/margdarshak/internal/routing"
	"github.com/margdarshak/margdarshak/pkg/geo"
)

// SnapshotSource loads a full reference dataset. The Postgres repository
// implements it; tests and the default deployment use a static source.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (region.Dataset, error)
}

// StaticSource serves a fixed dataset as a SnapshotSource.
type StaticSource struct {
	Data region.Dataset
}

// Snapshot returns the fixed dataset.
func (s StaticSource) Snapshot(_ context.Context) (region.Dataset, error) {
	return s.Data, nil
}

// ReloadJob reloads regional reference data and swaps it into the live
// store. It validates the incoming dataset before the swap and optionally
// prewarms the route cache for the configured metro corridors.
type ReloadJob struct {
	config ReloadConfig
	logger zerolog.Logger

	source SnapshotSource
	store  *region.Store

	// Router is optional; nil skips route warming.
	router *routing.Service

	mu            sync.Mutex
	lastReloadAt  time.Time
	totalReloads  int64
	failedReloads int64
}

// ReloadJobConfig holds configuration for creating a ReloadJob.
type ReloadJobConfig struct {
	Config ReloadConfig
	Logger zerolog.Logger
	Source SnapshotSource
	Store  *region.Store
	Router *routing.Service
}

// NewReloadJob creates a new reload job processor.
func NewReloadJob(cfg ReloadJobConfig) *ReloadJob {
	config := cfg.Config
	if len(config.Targets) == 0 {
		config = DefaultReloadConfig()
	}
	if config.Concurrency == 0 {
		config.Concurrency = 3
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	return &ReloadJob{
		config: config,
		logger: cfg.Logger,
		source: cfg.Source,
		store:  cfg.Store,
		router: cfg.Router,
	}
}

// ReloadResult contains the result of a reload operation.
type ReloadResult struct {
	StartTime    time.Time
	EndTime      time.Time
	Duration     time.Duration
	Cities       int
	Festivals    int
	Zones        int
	Swapped      bool
	WarmedRoutes int
	Errors       []ValidationError
}

// ValidationError describes one dataset problem found during reload.
type ValidationError struct {
	City  string
	Field string
	Error string
}

// Run loads, validates and swaps the dataset, then warms routes. A dataset
// with validation errors is never swapped in; the previous data stays live.
func (j *ReloadJob) Run(ctx context.Context) *ReloadResult {
	startTime := time.Now()
	result := &ReloadResult{StartTime: startTime}

	j.logger.Info().
		Int("concurrency", j.config.Concurrency).
		Msg("starting region reload job")

	loadCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	data, err := j.source.Snapshot(loadCtx)
	if err != nil {
		result.Errors = append(result.Errors, ValidationError{Field: "snapshot", Error: err.Error()})
		j.finish(result, startTime)
		return result
	}

	result.Cities = len(data.Cities)
	result.Festivals = len(data.Festivals)
	result.Zones = len(data.Zones)

	result.Errors = append(result.Errors, j.validate(ctx, data)...)
	if len(result.Errors) > 0 {
		j.logger.Error().
			Int("errors", len(result.Errors)).
			Msg("dataset failed validation, keeping previous data")
		j.finish(result, startTime)
		return result
	}

	j.store.Swap(region.NewInMemoryRepository(data))
	result.Swapped = true

	if j.config.WarmRoutes && j.router != nil {
		result.WarmedRoutes = j.warmRoutes(ctx)
	}

	j.finish(result, startTime)
	return result
}

// validate checks every city profile concurrently.
func (j *ReloadJob) validate(ctx context.Context, data region.Dataset) []ValidationError {
	known := make(map[string]bool, len(data.Cities))
	for _, c := range data.Cities {
		known[c.Name] = true
	}

	citiesChan := make(chan *region.CityProfile, len(data.Cities))
	errsChan := make(chan []ValidationError, len(data.Cities))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for city := range citiesChan {
				select {
				case <-ctx.Done():
					return
				default:
					errsChan <- validateCity(city)
				}
			}
		}()
	}

	for _, c := range data.Cities {
		citiesChan <- c
	}
	close(citiesChan)

	go func() {
		wg.Wait()
		close(errsChan)
	}()

	var errs []ValidationError
	for cityErrs := range errsChan {
		errs = append(errs, cityErrs...)
	}

	// Zones referencing uncovered cities are data bugs, not scoring input.
	for _, z := range data.Zones {
		if !known[z.City] {
			errs = append(errs, ValidationError{
				City:  z.City,
				Field: "zone:" + z.ID,
				Error: "construction zone references uncovered city",
			})
		}
	}

	return errs
}

func validateCity(c *region.CityProfile) []ValidationError {
	var errs []ValidationError

	check := func(ok bool, field, msg string) {
		if !ok {
			errs = append(errs, ValidationError{City: c.Name, Field: field, Error: msg})
		}
	}

	check(c.Name != "", "name", "empty city name")
	check(c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180, "point", "coordinate out of range")
	for _, w := range []struct {
		name   string
		window region.PeakWindow
	}{
		{"morningPeak", c.MorningPeak},
		{"eveningPeak", c.EveningPeak},
	} {
		check(w.window.StartHour >= 0 && w.window.EndHour <= 23 && w.window.StartHour <= w.window.EndHour,
			w.name, "peak window hours out of order")
		check(w.window.Severity >= 0 && w.window.Severity <= 10, w.name, "severity outside 0-10")
	}
	check(c.Speeds.PeakKmh > 0 && c.Speeds.PeakKmh <= c.Speeds.OffPeakKmh && c.Speeds.OffPeakKmh <= c.Speeds.NightKmh,
		"speeds", "expected peak <= off-peak <= night speeds")

	return errs
}

// warmRoutes primes the route cache for the configured corridors so the
// first request after a reload does not pay the provider round trip.
func (j *ReloadJob) warmRoutes(ctx context.Context) int {
	pairs := j.config.WarmPairs()

	pairsChan := make(chan RoutePair, len(pairs))
	warmedChan := make(chan bool, len(pairs))

	var wg sync.WaitGroup
	for i := 0; i < j.config.Concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pair := range pairsChan {
				select {
				case <-ctx.Done():
					return
				default:
					warmedChan <- j.warmPair(ctx, pair)
				}
			}
		}()
	}

	for _, p := range pairs {
		pairsChan <- p
	}
	close(pairsChan)

	go func() {
		wg.Wait()
		close(warmedChan)
	}()

	warmed := 0
	for ok := range warmedChan {
		if ok {
			warmed++
		}
	}
	return warmed
}

func (j *ReloadJob) warmPair(ctx context.Context, pair RoutePair) bool {
	pairCtx, cancel := context.WithTimeout(ctx, j.config.Timeout)
	defer cancel()

	_, err := j.router.Route(pairCtx, routing.RouteRequest{
		Origin:      geo.Coordinate{Lat: pair.Origin.Lat, Lon: pair.Origin.Lon},
		Destination: geo.Coordinate{Lat: pair.Destination.Lat, Lon: pair.Destination.Lon},
		Profile:     routing.ProfileDriving,
	}, 0)
	if err != nil {
		j.logger.Warn().Err(err).
			Str("origin", pair.OriginName).
			Str("destination", pair.DestinationName).
			Msg("route warming failed")
		return false
	}
	return true
}

func (j *ReloadJob) finish(result *ReloadResult, startTime time.Time) {
	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(startTime)

	j.mu.Lock()
	j.totalReloads++
	j.lastReloadAt = result.EndTime
	if !result.Swapped {
		j.failedReloads++
	}
	j.mu.Unlock()

	j.logger.Info().
		Dur("duration", result.Duration).
		Int("cities", result.Cities).
		Int("festivals", result.Festivals).
		Int("zones", result.Zones).
		Bool("swapped", result.Swapped).
		Int("warmed_routes", result.WarmedRoutes).
		Int("errors", len(result.Errors)).
		Msg("region reload job completed")
}

// Stats reports reload counters for health checks.
func (j *ReloadJob) Stats() (total, failed int64, lastAt time.Time) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.totalReloads, j.failedReloads, j.lastReloadAt
}

// Err aggregates a reload's validation errors into one error value.
func (r *ReloadResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	return fmt.Errorf("reload found %d dataset errors (first: %s %s: %s)",
		len(r.Errors), r.Errors[0].City, r.Errors[0].Field, r.Errors[0].Error)
}
