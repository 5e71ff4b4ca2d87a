package routing

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/margdarshak/margdarshak/pkg/geo"
)

// ServiceConfig holds configuration for the routing service.
type ServiceConfig struct {
	// Provider is the routing engine. Optional: with no provider every
	// request takes the great-circle fallback.
	Provider Provider

	// Logger for service operations.
	Logger zerolog.Logger

	// CacheTTL is how long routes stay cached (default: 10 minutes).
	CacheTTL time.Duration

	// CacheGridSize quantizes cache keys in degrees (default: 0.01,
	// about 1.1 km); nearby endpoints share cached routes.
	CacheGridSize float64

	// FallbackSpeedKmh derives the fallback duration when the caller
	// gives no mode speed (default: 40).
	FallbackSpeedKmh float64
}

// Service provides raw routes with caching and fallback. The engine calls
// it exactly once per request, before any scoring.
type Service struct {
	provider      Provider
	logger        zerolog.Logger
	cacheTTL      time.Duration
	cacheGridSize float64
	fallbackSpeed float64

	mu    sync.RWMutex
	cache map[string]*cachedRoute
}

type cachedRoute struct {
	route     *Route
	expiresAt time.Time
}

// NewService creates a routing service.
func NewService(cfg ServiceConfig) *Service {
	cacheTTL := cfg.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 10 * time.Minute
	}
	gridSize := cfg.CacheGridSize
	if gridSize == 0 {
		gridSize = 0.01
	}
	fallbackSpeed := cfg.FallbackSpeedKmh
	if fallbackSpeed == 0 {
		fallbackSpeed = 40
	}

	return &Service{
		provider:      cfg.Provider,
		logger:        cfg.Logger,
		cacheTTL:      cacheTTL,
		cacheGridSize: gridSize,
		fallbackSpeed: fallbackSpeed,
		cache:         make(map[string]*cachedRoute),
	}
}

// Route returns the raw route between two points. Provider failures never
// surface to the caller: the service substitutes a great-circle estimate
// with a duration derived from speedHintKmh (or the configured fallback
// speed when zero), so a degraded provider degrades confidence, not
// availability.
func (s *Service) Route(ctx context.Context, req RouteRequest, speedHintKmh float64) (*Route, error) {
	if err := validate(req.Origin); err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	if err := validate(req.Destination); err != nil {
		return nil, fmt.Errorf("destination: %w", err)
	}

	key := s.cacheKey(req)

	s.mu.RLock()
	if cached, ok := s.cache[key]; ok && time.Now().Before(cached.expiresAt) {
		s.mu.RUnlock()
		return cached.route, nil
	}
	s.mu.RUnlock()

	if s.provider != nil {
		route, err := s.provider.Route(ctx, req)
		if err == nil {
			s.store(key, route)
			return route, nil
		}
		s.logger.Warn().Err(err).
			Str("provider", s.provider.Name()).
			Str("profile", string(req.Profile)).
			Msg("provider failed, using great-circle fallback")
	}

	return s.fallback(req, speedHintKmh), nil
}

// fallback estimates the route from geometry alone.
func (s *Service) fallback(req RouteRequest, speedHintKmh float64) *Route {
	speed := speedHintKmh
	if speed <= 0 {
		speed = s.fallbackSpeed
	}
	distanceKm := geo.RoadDistanceKm(req.Origin, req.Destination)
	return &Route{
		DistanceKm:      distanceKm,
		DurationMinutes: distanceKm / speed * 60,
		Path:            []geo.Coordinate{req.Origin, req.Destination},
		Source:          "great-circle",
	}
}

func (s *Service) store(key string, route *Route) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[key] = &cachedRoute{
		route:     route,
		expiresAt: time.Now().Add(s.cacheTTL),
	}
}

// cacheKey quantizes both endpoints onto the cache grid.
func (s *Service) cacheKey(req RouteRequest) string {
	snap := func(v float64) float64 {
		return math.Floor(v/s.cacheGridSize) * s.cacheGridSize
	}
	return fmt.Sprintf("%s:%.2f,%.2f:%.2f,%.2f",
		req.Profile,
		snap(req.Origin.Lat), snap(req.Origin.Lon),
		snap(req.Destination.Lat), snap(req.Destination.Lon),
	)
}

// InvalidateCache clears all cached routes.
func (s *Service) InvalidateCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]*cachedRoute)
}

func validate(c geo.Coordinate) error {
	if c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180 {
		return ErrInvalidCoordinates
	}
	return nil
}
