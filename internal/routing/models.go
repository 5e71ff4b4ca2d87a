// Package routing obtains raw route geometry (distance and free-flow
// duration) from an external provider, with caching and a great-circle
// fallback so the scoring engine always has a base estimate to work from.
package routing

import (
	"context"
	"errors"

	"github.com/margdarshak/margdarshak/pkg/geo"
)

// Sentinel errors for routing operations.
var (
	// ErrProviderUnavailable indicates the provider is down or its circuit
	// breaker is open.
	ErrProviderUnavailable = errors.New("routing provider unavailable")
	// ErrNoRouteFound indicates no drivable route exists between the points.
	ErrNoRouteFound = errors.New("no route found between the given points")
	// ErrInvalidCoordinates indicates out-of-range coordinates.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)

// Provider fetches raw routes from an external routing engine.
type Provider interface {
	// Route retrieves the primary route between two points.
	Route(ctx context.Context, req RouteRequest) (*Route, error)
	// Name returns the provider identifier for logging and metrics.
	Name() string
}

// Profile is a provider-side routing profile. The engine's five transport
// modes collapse onto three provider profiles: anything motorized routes
// as driving.
type Profile string

// Provider routing profiles.
const (
	ProfileDriving Profile = "driving"
	ProfileCycling Profile = "cycling"
	ProfileWalking Profile = "walking"
)

// RouteRequest is a request for raw route geometry.
type RouteRequest struct {
	Origin      geo.Coordinate
	Destination geo.Coordinate
	Profile     Profile
}

// Route is the raw geometry the scoring engine consumes. Turn-by-turn
// maneuvers stay with the provider; distance, free-flow duration and a
// simplified path cross this boundary.
type Route struct {
	DistanceKm      float64
	DurationMinutes float64
	// Path is the simplified route shape, oldest point first. The
	// great-circle fallback degrades it to the two endpoints.
	Path []geo.Coordinate
	// Source names where the numbers came from: the provider, the cache,
	// or the great-circle fallback.
	Source string
}

// Error carries provider error details.
type Error struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
