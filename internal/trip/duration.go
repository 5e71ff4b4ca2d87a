package trip

import (
	"errors"
	"math"
)

// ErrInvalidModeProfile indicates a mode profile that cannot produce an
// estimate (non-positive average speed). This is a configuration error:
// it fails the request rather than defaulting.
var ErrInvalidModeProfile = errors.New("invalid mode profile: average speed must be positive")

// Regional road constants used in the duration model.
const (
	// signalsPerKm is the signalled-intersection density of the covered
	// metro road network.
	signalsPerKm = 0.8

	// signalWaitMinutes is the average wait at one signal before the
	// mode's signal-wait share applies.
	signalWaitMinutes = 1.0

	// breakerSpacingKm and breakerDelaySeconds model speed breakers:
	// roughly one five-second bump every two kilometres.
	breakerSpacingKm    = 2.0
	breakerDelaySeconds = 5.0
)

// Adjusted is a mode- and traffic-adjusted duration estimate.
type Adjusted struct {
	// DistanceKm is the mode-adjusted route length, rounded to 0.1 km.
	DistanceKm float64

	// DurationMinutes is the total estimated duration, rounded to the
	// nearest minute.
	DurationMinutes int

	// EffectiveSpeedKmh is the door-to-door speed implied by the adjusted
	// distance and duration, rounded to 0.1 km/h.
	EffectiveSpeedKmh float64

	// SignalWaitMinutes is the duration share spent waiting at signals.
	SignalWaitMinutes float64

	// BreakerMinutes is the duration share added for speed breakers.
	BreakerMinutes float64

	// Intersections is the estimated number of signalled intersections.
	Intersections int
}

// AdjustedDuration computes the traffic-adjusted duration of a trip.
//
// baseDistanceKm and baseDurationMinutes come from the routing provider;
// the base duration is informational only, since the model derives duration
// from the mode's own cruising speed. The traffic multiplier applies only to
// traffic-affected modes. The result is deterministic for given inputs: no
// clock reads, no randomness.
func AdjustedDuration(baseDistanceKm, _ float64, profile ModeProfile, multiplier float64) (Adjusted, error) {
	if profile.AverageSpeedKmh <= 0 {
		return Adjusted{}, ErrInvalidModeProfile
	}

	distanceKm := baseDistanceKm * profile.DistanceMultiplier
	duration := distanceKm / profile.AverageSpeedKmh * 60

	if profile.TrafficAffected {
		duration *= multiplier
	}

	intersections := int(math.Ceil(distanceKm * signalsPerKm))
	signalWait := float64(intersections) * signalWaitMinutes * profile.SignalWaitMultiplier
	duration += signalWait

	breakerWait := distanceKm / breakerSpacingKm * (breakerDelaySeconds / 60)
	duration += breakerWait

	effectiveSpeed := 0.0
	if duration > 0 {
		effectiveSpeed = distanceKm / (duration / 60)
	}

	return Adjusted{
		DistanceKm:        round1(distanceKm),
		DurationMinutes:   int(math.Round(duration)),
		EffectiveSpeedKmh: round1(effectiveSpeed),
		SignalWaitMinutes: signalWait,
		BreakerMinutes:    breakerWait,
		Intersections:     intersections,
	}, nil
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
