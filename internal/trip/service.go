package trip

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/margdarshak/margdarshak/internal/region"
	"github.com/margdarshak/margdarshak/internal/routing"
	"github.com/margdarshak/margdarshak/internal/traffic"
	"github.com/margdarshak/margdarshak/pkg/geo"
	"github.com/margdarshak/margdarshak/pkg/polyline"
)

// Advisor supplies optional human-readable guidance for an estimate.
// Implementations must never be required for a numeric result.
type Advisor interface {
	Advise(ctx context.Context, est *Estimate) (string, error)
}

// EstimateRequest describes one trip to score.
type EstimateRequest struct {
	// OriginCity and DestinationCity name the endpoints. Known cities
	// resolve to their profile coordinates when no explicit coordinates
	// are given.
	OriginCity      string
	DestinationCity string

	// Origin and Destination override city-derived coordinates.
	Origin      *geo.Coordinate
	Destination *geo.Coordinate

	// Mode is the transport mode to score.
	Mode Mode

	// DepartAt is the departure time. Zero value means now.
	DepartAt time.Time
}

// Advisory is a non-numeric note attached to an estimate.
type Advisory struct {
	// Kind is "construction" or "infrastructure".
	Kind string

	// Message is the human-readable note.
	Message string
}

// Estimate is a fully scored trip.
type Estimate struct {
	// Mode is the transport mode scored.
	Mode Mode

	// DepartAt is the departure time the estimate applies to.
	DepartAt time.Time

	// ScoredCity is the city whose congestion profile was applied.
	ScoredCity string

	// BaseDistanceKm and BaseDurationMinutes come from the route before
	// any mode or congestion adjustments.
	BaseDistanceKm      float64
	BaseDurationMinutes float64

	// RouteSource names where the base route came from.
	RouteSource string

	// RoutePolyline is the encoded route shape, empty when the route
	// carried no path.
	RoutePolyline string

	// Adjusted holds the mode- and congestion-adjusted figures.
	Adjusted Adjusted

	// Traffic is the congestion multiplier and its contributing factors.
	Traffic traffic.Result

	// Advisories are construction and infrastructure notes for the
	// scored city.
	Advisories []Advisory

	// Advice is optional reasoning-service guidance. Empty when no
	// advisor is configured or the advisor failed.
	Advice string
}

// DeparturesRequest describes one departure-time scan.
type DeparturesRequest struct {
	// EstimateRequest locates and modes the trip; DepartAt is the scan's
	// reference time.
	EstimateRequest

	// HorizonSlots and SlotMinutes shape the scan. Zero values take the
	// defaults.
	HorizonSlots int
	SlotMinutes  int
}

// ServiceConfig holds configuration for the trip service.
type ServiceConfig struct {
	// Regions provides city profiles, construction zones and
	// infrastructure changes.
	Regions *region.Store

	// Traffic computes congestion multipliers.
	Traffic *traffic.Calculator

	// Router resolves raw routes.
	Router *routing.Service

	// Planner scans departure horizons.
	Planner *Planner

	// Advisor is optional; estimate failures there are logged, not
	// surfaced.
	Advisor Advisor

	// Logger for service operations.
	Logger zerolog.Logger

	// Clock supplies the current time. Defaults to time.Now.
	Clock func() time.Time
}

// Service scores trips: it resolves endpoints, fetches the raw route and
// applies mode and congestion adjustments.
type Service struct {
	regions *region.Store
	traffic *traffic.Calculator
	router  *routing.Service
	planner *Planner
	advisor Advisor
	logger  zerolog.Logger
	clock   func() time.Time
}

// NewService creates a trip service.
func NewService(cfg ServiceConfig) *Service {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		regions: cfg.Regions,
		traffic: cfg.Traffic,
		router:  cfg.Router,
		planner: cfg.Planner,
		advisor: cfg.Advisor,
		logger:  cfg.Logger,
		clock:   clock,
	}
}

// Estimate scores one trip at its departure time.
func (s *Service) Estimate(ctx context.Context, req EstimateRequest) (*Estimate, error) {
	profile, err := ProfileFor(req.Mode)
	if err != nil {
		return nil, err
	}

	departAt := req.DepartAt
	if departAt.IsZero() {
		departAt = s.clock()
	}

	origin, destination, err := s.resolveEndpoints(ctx, req)
	if err != nil {
		return nil, err
	}

	route, err := s.route(ctx, origin, destination, profile)
	if err != nil {
		return nil, err
	}

	city := s.scoringCity(ctx, req.OriginCity, req.DestinationCity)
	result := s.traffic.Multiplier(ctx, city, departAt.Hour(), departAt.Weekday(), departAt.Month())

	adjusted, err := AdjustedDuration(route.DistanceKm, route.DurationMinutes, profile, result.Multiplier)
	if err != nil {
		return nil, err
	}

	est := &Estimate{
		Mode:                req.Mode,
		DepartAt:            departAt,
		ScoredCity:          city,
		BaseDistanceKm:      route.DistanceKm,
		BaseDurationMinutes: route.DurationMinutes,
		RouteSource:         route.Source,
		RoutePolyline:       polyline.Encode(route.Path),
		Adjusted:            adjusted,
		Traffic:             result,
		Advisories:          s.advisories(ctx, city),
	}

	s.attachAdvice(ctx, est)

	s.logger.Debug().
		Str("mode", string(req.Mode)).
		Str("city", city).
		Float64("multiplier", result.Multiplier).
		Int("duration_minutes", adjusted.DurationMinutes).
		Msg("trip estimated")

	return est, nil
}

// BestDepartures scans the departure horizon for one trip.
func (s *Service) BestDepartures(ctx context.Context, req DeparturesRequest) (*Plan, error) {
	profile, err := ProfileFor(req.Mode)
	if err != nil {
		return nil, err
	}

	now := req.DepartAt
	if now.IsZero() {
		now = s.clock()
	}

	origin, destination, err := s.resolveEndpoints(ctx, req.EstimateRequest)
	if err != nil {
		return nil, err
	}

	route, err := s.route(ctx, origin, destination, profile)
	if err != nil {
		return nil, err
	}

	return s.planner.BestDepartures(ctx, PlanRequest{
		BaseDistanceKm:      route.DistanceKm,
		BaseDurationMinutes: route.DurationMinutes,
		Profile:             profile,
		OriginCity:          req.OriginCity,
		DestinationCity:     req.DestinationCity,
		HorizonSlots:        req.HorizonSlots,
		SlotMinutes:         req.SlotMinutes,
		Now:                 now,
	})
}

// resolveEndpoints turns the request into coordinates. Explicit
// coordinates win; otherwise the named city's profile location is used.
func (s *Service) resolveEndpoints(ctx context.Context, req EstimateRequest) (geo.Coordinate, geo.Coordinate, error) {
	origin, err := s.resolvePoint(ctx, req.Origin, req.OriginCity)
	if err != nil {
		return geo.Coordinate{}, geo.Coordinate{}, fmt.Errorf("origin: %w", err)
	}
	destination, err := s.resolvePoint(ctx, req.Destination, req.DestinationCity)
	if err != nil {
		return geo.Coordinate{}, geo.Coordinate{}, fmt.Errorf("destination: %w", err)
	}
	return origin, destination, nil
}

func (s *Service) resolvePoint(ctx context.Context, coord *geo.Coordinate, city string) (geo.Coordinate, error) {
	if coord != nil {
		return *coord, nil
	}
	profile, err := s.regions.CityProfile(ctx, city)
	if err != nil {
		return geo.Coordinate{}, fmt.Errorf("%q: %w", city, err)
	}
	return geo.Coordinate{Lat: profile.Lat, Lon: profile.Lon}, nil
}

func (s *Service) route(ctx context.Context, origin, destination geo.Coordinate, profile ModeProfile) (*routing.Route, error) {
	return s.router.Route(ctx, routing.RouteRequest{
		Origin:      origin,
		Destination: destination,
		Profile:     routingProfile(profile),
	}, profile.AverageSpeedKmh)
}

// scoringCity picks the city whose congestion profile applies: the origin
// when covered, else the destination, else the origin's neutral default.
func (s *Service) scoringCity(ctx context.Context, origin, destination string) string {
	if s.traffic.KnowsCity(ctx, origin) {
		return origin
	}
	if s.traffic.KnowsCity(ctx, destination) {
		return destination
	}
	return origin
}

// advisories gathers construction and infrastructure notes for a city.
// Lookup failures degrade to no advisories.
func (s *Service) advisories(ctx context.Context, city string) []Advisory {
	var advisories []Advisory

	zones, err := s.regions.ActiveConstructionZones(ctx, city)
	if err == nil {
		for _, z := range zones {
			msg := fmt.Sprintf("%s: roadwork adds about %.0f min", z.Corridor, z.DelayMinutes)
			if z.AlternateRoute != "" {
				msg += ", consider " + z.AlternateRoute
			}
			advisories = append(advisories, Advisory{Kind: "construction", Message: msg})
		}
	}

	changes, err := s.regions.InfrastructureChanges(ctx, city)
	if err == nil {
		for _, ch := range changes {
			advisories = append(advisories, Advisory{
				Kind:    "infrastructure",
				Message: fmt.Sprintf("%s: %s", ch.Category, ch.Summary),
			})
		}
	}

	return advisories
}

func (s *Service) attachAdvice(ctx context.Context, est *Estimate) {
	if s.advisor == nil {
		return
	}
	advice, err := s.advisor.Advise(ctx, est)
	if err != nil {
		s.logger.Warn().Err(err).Msg("advisor unavailable, returning estimate without advice")
		return
	}
	est.Advice = advice
}

// routingProfile maps a transport mode onto the routing engine's profiles.
// Motorized modes all route as driving.
func routingProfile(profile ModeProfile) routing.Profile {
	switch {
	case !profile.TrafficAffected && profile.AverageSpeedKmh <= 6:
		return routing.ProfileWalking
	case !profile.TrafficAffected:
		return routing.ProfileCycling
	default:
		return routing.ProfileDriving
	}
}
