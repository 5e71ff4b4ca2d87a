package trip

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/margdarshak/margdarshak/internal/traffic"
)

// Departure scan defaults.
const (
	// DefaultHorizonSlots and DefaultSlotMinutes scan the next 12 hours
	// at half-hour steps.
	DefaultHorizonSlots = 24
	DefaultSlotMinutes  = 30

	// leaveNowWindow bounds the "leave now" slot selection.
	leaveNowWindow = 15 * time.Minute

	// nextOptimalHorizon bounds the "next optimal" slot selection.
	nextOptimalHorizon = 6 * time.Hour

	// goodToLeaveDelayMinutes is the delay under which leaving now is
	// considered as good as waiting.
	goodToLeaveDelayMinutes = 5
)

// Slot is one sampled departure time with its estimate.
type Slot struct {
	// At is the sampled departure time.
	At time.Time

	// DurationMinutes is the adjusted trip duration for this departure.
	DurationMinutes int

	// DelayMinutes is the duration above the best slot in the horizon.
	// At least one slot in every scan has zero delay.
	DelayMinutes int

	// Multiplier is the congestion multiplier at this departure time.
	Multiplier float64

	// Level is the congestion level derived from the multiplier.
	Level traffic.Level
}

// Plan is the outcome of a departure-time scan. The three views are
// selections over the same slot list, not separate computations.
type Plan struct {
	// Slots is the full sampled horizon, ascending by time.
	Slots []Slot

	// LeaveNow is the best slot within the leave-now window of the scan's
	// reference time. Nil when the first sample falls outside the window.
	LeaveNow *Slot

	// GoodToLeaveNow reports whether LeaveNow's delay is small enough
	// that waiting buys nothing meaningful.
	GoodToLeaveNow bool

	// NextOptimal is the least-delayed slot within the next six hours,
	// earliest on ties.
	NextOptimal *Slot

	// Best is the fastest slot across the whole horizon, earliest on ties.
	Best *Slot
}

// PlanRequest describes one departure-time scan.
type PlanRequest struct {
	// BaseDistanceKm and BaseDurationMinutes are the raw route geometry
	// from the routing provider.
	BaseDistanceKm      float64
	BaseDurationMinutes float64

	// Profile is the transport mode profile to score with.
	Profile ModeProfile

	// OriginCity and DestinationCity choose the congestion profile.
	// Scoring uses the origin's profile; when the origin is uncovered but
	// the destination is, the destination's profile is used. Neither
	// being covered degrades to the neutral multiplier, never an error.
	OriginCity      string
	DestinationCity string

	// HorizonSlots and SlotMinutes shape the scan. Zero values take the
	// defaults (24 slots of 30 minutes).
	HorizonSlots int
	SlotMinutes  int

	// Now is the scan's reference time. Explicit so scans are
	// reproducible; scoring never reads the wall clock.
	Now time.Time
}

// PlannerConfig holds configuration for the departure planner.
type PlannerConfig struct {
	// Traffic computes congestion multipliers per sampled time.
	Traffic *traffic.Calculator

	// Logger for planner operations.
	Logger zerolog.Logger
}

// Planner scans departure horizons.
type Planner struct {
	traffic *traffic.Calculator
	logger  zerolog.Logger
}

// NewPlanner creates a departure planner.
func NewPlanner(cfg PlannerConfig) *Planner {
	return &Planner{
		traffic: cfg.Traffic,
		logger:  cfg.Logger,
	}
}

// BestDepartures samples the departure horizon and ranks the slots.
// The scan starts at the next slot boundary after req.Now and always
// returns exactly HorizonSlots entries in ascending time order.
func (p *Planner) BestDepartures(ctx context.Context, req PlanRequest) (*Plan, error) {
	if req.Profile.AverageSpeedKmh <= 0 {
		return nil, ErrInvalidModeProfile
	}

	horizon := req.HorizonSlots
	if horizon <= 0 {
		horizon = DefaultHorizonSlots
	}
	step := req.SlotMinutes
	if step <= 0 {
		step = DefaultSlotMinutes
	}

	city := p.scoringCity(ctx, req.OriginCity, req.DestinationCity)
	first := nextSlotBoundary(req.Now, step)

	slots := make([]Slot, 0, horizon)
	for i := 0; i < horizon; i++ {
		at := first.Add(time.Duration(i*step) * time.Minute)

		result := p.traffic.Multiplier(ctx, city, at.Hour(), at.Weekday(), at.Month())
		adjusted, err := AdjustedDuration(req.BaseDistanceKm, req.BaseDurationMinutes, req.Profile, result.Multiplier)
		if err != nil {
			return nil, err
		}

		slots = append(slots, Slot{
			At:              at,
			DurationMinutes: adjusted.DurationMinutes,
			Multiplier:      result.Multiplier,
			Level:           result.Level(),
		})
	}

	minDuration := slots[0].DurationMinutes
	for _, s := range slots[1:] {
		if s.DurationMinutes < minDuration {
			minDuration = s.DurationMinutes
		}
	}
	for i := range slots {
		slots[i].DelayMinutes = slots[i].DurationMinutes - minDuration
	}

	plan := &Plan{Slots: slots}
	plan.LeaveNow = bestWithin(slots, req.Now, leaveNowWindow, byDelay)
	plan.GoodToLeaveNow = plan.LeaveNow != nil && plan.LeaveNow.DelayMinutes < goodToLeaveDelayMinutes
	plan.NextOptimal = bestWithin(slots, req.Now, nextOptimalHorizon, byDelay)
	plan.Best = bestWithin(slots, req.Now, 0, byDuration)

	p.logger.Debug().
		Str("city", city).
		Int("slots", len(slots)).
		Int("min_duration_minutes", minDuration).
		Bool("good_to_leave_now", plan.GoodToLeaveNow).
		Msg("departure horizon scanned")

	return plan, nil
}

// scoringCity picks the city whose congestion profile drives the scan.
func (p *Planner) scoringCity(ctx context.Context, origin, destination string) string {
	if p.traffic.KnowsCity(ctx, origin) {
		return origin
	}
	if p.traffic.KnowsCity(ctx, destination) {
		return destination
	}
	return origin
}

// nextSlotBoundary rounds t forward to the next step boundary within the
// hour: minutes [0, step) round to :step, later minutes to the next hour.
// Computed on wall-clock fields, not absolute time, so half-hour UTC
// offsets (IST) keep whole-hour boundaries.
func nextSlotBoundary(t time.Time, step int) time.Time {
	hour := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	if t.Minute() < step {
		return hour.Add(time.Duration(step) * time.Minute)
	}
	return hour.Add(time.Hour)
}

func byDelay(a, b Slot) bool    { return a.DelayMinutes < b.DelayMinutes }
func byDuration(a, b Slot) bool { return a.DurationMinutes < b.DurationMinutes }

// bestWithin selects the best slot by the given ordering among slots no
// later than now+window. A zero window means the whole horizon. Ties keep
// the earliest slot because the scan is ascending.
func bestWithin(slots []Slot, now time.Time, window time.Duration, less func(a, b Slot) bool) *Slot {
	var best *Slot
	for i := range slots {
		s := &slots[i]
		if window > 0 && s.At.Sub(now) > window {
			break
		}
		if best == nil || less(*s, *best) {
			best = s
		}
	}
	if best == nil {
		return nil
	}
	picked := *best
	return &picked
}
