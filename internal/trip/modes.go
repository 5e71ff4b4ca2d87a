// Package trip turns a raw route (distance and free-flow duration from the
// routing provider) into a mode- and traffic-adjusted estimate, and scans a
// departure horizon for the least-delayed slots.
package trip

import (
	"errors"
	"fmt"
)

// Mode is a supported transport mode.
type Mode string

// Supported transport modes.
const (
	ModeDriving    Mode = "driving"
	ModeTwoWheeler Mode = "two-wheeler"
	ModeBus        Mode = "bus"
	ModeCycling    Mode = "cycling"
	ModeWalking    Mode = "walking"
)

// ErrUnknownMode indicates an unsupported transport mode.
var ErrUnknownMode = errors.New("unknown transport mode")

// ModeProfile holds the physics of one transport mode.
type ModeProfile struct {
	// AverageSpeedKmh is the free-flow cruising speed. Must be positive.
	AverageSpeedKmh float64

	// DistanceMultiplier scales route length for the mode: two-wheelers
	// filter through shorter paths, pedestrians cut more directly.
	DistanceMultiplier float64

	// TrafficAffected marks whether congestion multipliers apply.
	// Walking and cycling move through traffic rather than with it.
	TrafficAffected bool

	// SignalWaitMultiplier is the share of a signal's average wait the
	// mode actually incurs. Two-wheelers filter to the front; buses wait
	// longer than cars.
	SignalWaitMultiplier float64
}

// Valid reports whether the profile is usable for estimation.
func (p ModeProfile) Valid() bool {
	return p.AverageSpeedKmh > 0 && p.DistanceMultiplier > 0 && p.SignalWaitMultiplier > 0
}

// modeProfiles is the static mode table for the covered region.
var modeProfiles = map[Mode]ModeProfile{
	ModeDriving: {
		AverageSpeedKmh:      55,
		DistanceMultiplier:   1.0,
		TrafficAffected:      true,
		SignalWaitMultiplier: 1.0,
	},
	ModeTwoWheeler: {
		AverageSpeedKmh:      45,
		DistanceMultiplier:   0.95,
		TrafficAffected:      true,
		SignalWaitMultiplier: 0.8,
	},
	ModeBus: {
		AverageSpeedKmh:      35,
		DistanceMultiplier:   1.1,
		TrafficAffected:      true,
		SignalWaitMultiplier: 1.2,
	},
	ModeCycling: {
		AverageSpeedKmh:      15,
		DistanceMultiplier:   0.9,
		TrafficAffected:      false,
		SignalWaitMultiplier: 0.5,
	},
	ModeWalking: {
		AverageSpeedKmh:      5,
		DistanceMultiplier:   0.85,
		TrafficAffected:      false,
		SignalWaitMultiplier: 0.2,
	},
}

// Modes lists the supported transport modes in a stable order.
func Modes() []Mode {
	return []Mode{ModeDriving, ModeTwoWheeler, ModeBus, ModeCycling, ModeWalking}
}

// ProfileFor returns the profile for a mode.
func ProfileFor(mode Mode) (ModeProfile, error) {
	profile, ok := modeProfiles[mode]
	if !ok {
		return ModeProfile{}, fmt.Errorf("%w: %q", ErrUnknownMode, mode)
	}
	return profile, nil
}
