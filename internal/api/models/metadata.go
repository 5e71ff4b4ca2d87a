package models

// PeakWindowInfo describes one congestion peak window.
type PeakWindowInfo struct {
	StartHour int `json:"startHour"`
	EndHour   int `json:"endHour"`
	Severity  int `json:"severity"`
}

// CityInfo describes one covered city.
type CityInfo struct {
	Name          string         `json:"name"`
	Point         Point          `json:"point"`
	MorningPeak   PeakWindowInfo `json:"morningPeak"`
	EveningPeak   PeakWindowInfo `json:"eveningPeak"`
	PeakSpeedKmh  float64        `json:"peakSpeedKmh"`
	OffPeakKmh    float64        `json:"offPeakSpeedKmh"`
	NightKmh      float64        `json:"nightSpeedKmh"`
	ActiveZones   int            `json:"activeConstructionZones"`
	RecentChanges int            `json:"recentInfrastructureChanges"`

	// CurrentTraffic is the city's congestion multiplier at request time.
	CurrentTraffic TrafficInfo `json:"currentTraffic"`
}

// CityList is the response for GET /v1/metadata/cities.
type CityList struct {
	Items []CityInfo `json:"items"`
}

// ModeInfo describes one transport mode profile.
type ModeInfo struct {
	Mode                 TransportMode `json:"mode"`
	AverageSpeedKmh      float64       `json:"averageSpeedKmh"`
	DistanceMultiplier   float64       `json:"distanceMultiplier"`
	TrafficAffected      bool          `json:"trafficAffected"`
	SignalWaitMultiplier float64       `json:"signalWaitMultiplier"`
}

// ModeList is the response for GET /v1/metadata/modes.
type ModeList struct {
	Items []ModeInfo `json:"items"`
}
