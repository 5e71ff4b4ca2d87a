// Package models provides request and response models for the Margdarshak API.
package models

import "time"

// Point represents a geographic coordinate.
type Point struct {
	Lat float64 `json:"lat" validate:"required,gte=-90,lte=90"`
	Lon float64 `json:"lon" validate:"required,gte=-180,lte=180"`
}

// TransportMode represents a transportation mode.
type TransportMode string

const (
	ModeDriving    TransportMode = "driving"
	ModeTwoWheeler TransportMode = "two-wheeler"
	ModeBus        TransportMode = "bus"
	ModeCycling    TransportMode = "cycling"
	ModeWalking    TransportMode = "walking"
)

// TrafficLevel represents a congestion level.
type TrafficLevel string

const (
	TrafficLevelLow      TrafficLevel = "low"
	TrafficLevelModerate TrafficLevel = "moderate"
	TrafficLevelHigh     TrafficLevel = "high"
)

// Confidence represents the confidence level of an estimate. Estimates
// built on a great-circle fallback instead of a routed path are LOW.
type Confidence string

const (
	ConfidenceLow  Confidence = "LOW"
	ConfidenceHigh Confidence = "HIGH"
)

// HealthStatus represents the health status of a service.
type HealthStatus string

const (
	HealthStatusOK       HealthStatus = "OK"
	HealthStatusDegraded HealthStatus = "DEGRADED"
	HealthStatusFail     HealthStatus = "FAIL"
)

// Timestamp is a helper type for time.Time with custom JSON formatting.
type Timestamp time.Time

// MarshalJSON implements json.Marshaler for Timestamp.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return []byte(`"` + time.Time(t).Format(time.RFC3339) + `"`), nil
}

// UnmarshalJSON implements json.Unmarshaler for Timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	// Remove quotes
	s := string(data[1 : len(data)-1])
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return err
	}
	*t = Timestamp(parsed)
	return nil
}

// Time returns the underlying time.Time.
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}
