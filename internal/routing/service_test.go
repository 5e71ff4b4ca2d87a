package routing_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margdarshak/margdarshak/internal/routing"
	"github.com/margdarshak/margdarshak/pkg/geo"
)

type countingProvider struct {
	route *routing.Route
	err   error
	calls int
}

func (p *countingProvider) Route(_ context.Context, _ routing.RouteRequest) (*routing.Route, error) {
	p.calls++
	if p.err != nil {
		return nil, p.err
	}
	return p.route, nil
}

func (p *countingProvider) Name() string { return "counting" }

var (
	bengaluru = geo.Coordinate{Lat: 12.9716, Lon: 77.5946}
	mumbai    = geo.Coordinate{Lat: 19.076, Lon: 72.8777}
)

func drivingRequest() routing.RouteRequest {
	return routing.RouteRequest{
		Origin:      bengaluru,
		Destination: mumbai,
		Profile:     routing.ProfileDriving,
	}
}

func TestService_UsesProvider(t *testing.T) {
	provider := &countingProvider{
		route: &routing.Route{
			DistanceKm:      984,
			DurationMinutes: 700,
			Path:            []geo.Coordinate{bengaluru, mumbai},
			Source:          "counting",
		},
	}
	svc := routing.NewService(routing.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
	})

	route, err := svc.Route(context.Background(), drivingRequest(), 55)

	require.NoError(t, err)
	assert.Equal(t, "counting", route.Source)
	assert.InDelta(t, 984, route.DistanceKm, 0.01)
	assert.Len(t, route.Path, 2)
}

func TestService_CachesRoutes(t *testing.T) {
	provider := &countingProvider{
		route: &routing.Route{DistanceKm: 984, DurationMinutes: 700, Source: "counting"},
	}
	svc := routing.NewService(routing.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
	})

	_, err := svc.Route(context.Background(), drivingRequest(), 55)
	require.NoError(t, err)
	_, err = svc.Route(context.Background(), drivingRequest(), 55)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
}

func TestService_CacheGridSnapsNearbyEndpoints(t *testing.T) {
	provider := &countingProvider{
		route: &routing.Route{DistanceKm: 984, DurationMinutes: 700, Source: "counting"},
	}
	svc := routing.NewService(routing.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
	})

	first := drivingRequest()
	_, err := svc.Route(context.Background(), first, 55)
	require.NoError(t, err)

	// Nudge the origin by well under the 0.01 degree grid size.
	nearby := first
	nearby.Origin.Lat += 0.001
	_, err = svc.Route(context.Background(), nearby, 55)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
}

func TestService_FallbackWithoutProvider(t *testing.T) {
	svc := routing.NewService(routing.ServiceConfig{
		Logger: zerolog.New(io.Discard),
	})

	route, err := svc.Route(context.Background(), drivingRequest(), 50)

	require.NoError(t, err)
	assert.Equal(t, "great-circle", route.Source)
	// Haversine Bengaluru to Mumbai is about 845 km, times the 1.3
	// detour factor.
	assert.InDelta(t, 1099, route.DistanceKm, 20)
	assert.InDelta(t, route.DistanceKm/50*60, route.DurationMinutes, 0.01)
	assert.Equal(t, []geo.Coordinate{bengaluru, mumbai}, route.Path)
}

func TestService_FallbackOnProviderError(t *testing.T) {
	provider := &countingProvider{err: errors.New("boom")}
	svc := routing.NewService(routing.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
	})

	route, err := svc.Route(context.Background(), drivingRequest(), 55)

	require.NoError(t, err)
	assert.Equal(t, "great-circle", route.Source)
	assert.Equal(t, 1, provider.calls)
}

func TestService_FallbackDefaultSpeed(t *testing.T) {
	svc := routing.NewService(routing.ServiceConfig{
		Logger: zerolog.New(io.Discard),
	})

	route, err := svc.Route(context.Background(), drivingRequest(), 0)

	require.NoError(t, err)
	assert.InDelta(t, route.DistanceKm/40*60, route.DurationMinutes, 0.01)
}

func TestService_RejectsInvalidCoordinates(t *testing.T) {
	svc := routing.NewService(routing.ServiceConfig{
		Logger: zerolog.New(io.Discard),
	})

	req := drivingRequest()
	req.Origin.Lat = 91

	_, err := svc.Route(context.Background(), req, 55)

	require.Error(t, err)
	assert.ErrorIs(t, err, routing.ErrInvalidCoordinates)
}

func TestService_InvalidateCache(t *testing.T) {
	provider := &countingProvider{
		route: &routing.Route{DistanceKm: 984, DurationMinutes: 700, Source: "counting"},
	}
	svc := routing.NewService(routing.ServiceConfig{
		Provider: provider,
		Logger:   zerolog.New(io.Discard),
	})

	_, err := svc.Route(context.Background(), drivingRequest(), 55)
	require.NoError(t, err)

	svc.InvalidateCache()

	_, err = svc.Route(context.Background(), drivingRequest(), 55)
	require.NoError(t, err)
	assert.Equal(t, 2, provider.calls)
}
