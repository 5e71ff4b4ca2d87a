// Package region holds the static reference data for covered cities:
// congestion profiles, festival calendars, construction zones and
// infrastructure changes. The data is read-only at request time and is
// replaced wholesale by the refresh worker.
package region

import (
	"errors"
	"time"
)

// Sentinel errors for region lookups.
var (
	// ErrCityNotFound indicates the city has no traffic profile.
	// Callers are expected to fall back to a neutral default, not fail.
	ErrCityNotFound = errors.New("city profile not found")
)

// PeakWindow is a daily congestion window with a severity score.
// Hours are inclusive on both ends: a window {8, 10} covers 08:00-10:59.
type PeakWindow struct {
	StartHour int
	EndHour   int
	// Severity ranges 1-10 and scales the peak multiplier (1 + severity/10).
	Severity int
}

// Contains reports whether the given hour (0-23) falls inside the window.
func (w PeakWindow) Contains(hour int) bool {
	return hour >= w.StartHour && hour <= w.EndHour
}

// SpeedProfile holds a city's average speeds by time band, in km/h.
// Peak is always the slowest band and night the fastest.
type SpeedProfile struct {
	PeakKmh    float64
	OffPeakKmh float64
	NightKmh   float64
}

// CityProfile describes the congestion characteristics of one covered city.
type CityProfile struct {
	Name        string
	Lat         float64
	Lon         float64
	MorningPeak PeakWindow
	EveningPeak PeakWindow
	Speeds      SpeedProfile
}

// Festival is a recurring calendar event that raises road congestion
// in its affected regions during its months.
type Festival struct {
	Name string
	// Months lists the calendar months (1-12) the festival falls in.
	Months []time.Month
	// Multiplier is the raw congestion multiplier (>= 1) during the festival.
	Multiplier float64
	// Regions lists the states or metro areas the festival affects most.
	Regions []string
}

// InMonth reports whether the festival occurs in the given month.
func (f Festival) InMonth(month time.Month) bool {
	for _, m := range f.Months {
		if m == month {
			return true
		}
	}
	return false
}

// ConstructionStatus is the lifecycle state of a construction zone.
type ConstructionStatus string

// Construction zone statuses. Only active and delayed zones affect scoring.
const (
	ConstructionActive    ConstructionStatus = "active"
	ConstructionDelayed   ConstructionStatus = "delayed"
	ConstructionCompleted ConstructionStatus = "completed"
)

// ConstructionZone is a stretch of road under construction.
type ConstructionZone struct {
	ID             string
	City           string
	Corridor       string
	Status         ConstructionStatus
	DelayMinutes   float64
	AlternateRoute string
	ExpectedEndAt  time.Time
}

// Live reports whether the zone should participate in traffic scoring.
func (z ConstructionZone) Live() bool {
	return z.Status == ConstructionActive || z.Status == ConstructionDelayed
}

// InfrastructureChange records a completed or announced change to a city's
// transport network (a new metro line, flyover, corridor). Reference data
// only; surfaced through metadata, never part of scoring.
type InfrastructureChange struct {
	City          string
	Category      string
	Summary       string
	EffectiveFrom time.Time
}

// Dataset is the full set of regional reference data loaded into a store.
type Dataset struct {
	Cities    []*CityProfile
	Festivals []*Festival
	Zones     []*ConstructionZone
	Changes   []*InfrastructureChange
}
