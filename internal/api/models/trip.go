package models

// TripEstimateRequest is the body for POST /v1/trips:estimate.
type TripEstimateRequest struct {
	// OriginCity and DestinationCity name the endpoints. Known cities
	// resolve to their reference coordinates when no explicit point is
	// given.
	OriginCity      string `json:"originCity"`
	DestinationCity string `json:"destinationCity"`

	// Origin and Destination override the city reference points.
	Origin      *Point `json:"origin,omitempty"`
	Destination *Point `json:"destination,omitempty"`

	// Mode is the transport mode. Required.
	Mode TransportMode `json:"mode"`

	// DepartAt is the departure time. Omitted means now.
	DepartAt *Timestamp `json:"departAt,omitempty"`
}

// TrafficInfo describes the congestion applied to an estimate.
type TrafficInfo struct {
	Multiplier float64      `json:"multiplier"`
	Level      TrafficLevel `json:"level"`
	Factors    []string     `json:"factors"`
}

// AdvisoryInfo is a non-numeric note attached to an estimate.
type AdvisoryInfo struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// TripEstimateResponse is the response for POST /v1/trips:estimate.
type TripEstimateResponse struct {
	Mode              TransportMode  `json:"mode"`
	City              string         `json:"city"`
	DepartAt          Timestamp      `json:"departAt"`
	DistanceKm        float64        `json:"distanceKm"`
	DurationMinutes   int            `json:"durationMinutes"`
	EffectiveSpeedKmh float64        `json:"effectiveSpeedKmh"`
	SignalWaitMinutes float64        `json:"signalWaitMinutes"`
	BreakerMinutes    float64        `json:"breakerMinutes"`
	Intersections     int            `json:"intersections"`
	Traffic           TrafficInfo    `json:"traffic"`
	RouteSource       string         `json:"routeSource"`
	Polyline          string         `json:"polyline,omitempty"`
	Confidence        Confidence     `json:"confidence"`
	Advisories        []AdvisoryInfo `json:"advisories,omitempty"`
	Advice            string         `json:"advice,omitempty"`
}

// TripDeparturesRequest is the body for POST /v1/trips:departures.
type TripDeparturesRequest struct {
	TripEstimateRequest

	// HorizonSlots and SlotMinutes shape the scan. Omitted values take
	// the defaults (24 slots of 30 minutes).
	HorizonSlots int `json:"horizonSlots,omitempty"`
	SlotMinutes  int `json:"slotMinutes,omitempty"`
}

// DepartureSlot is one sampled departure time.
type DepartureSlot struct {
	At              Timestamp    `json:"at"`
	DurationMinutes int          `json:"durationMinutes"`
	DelayMinutes    int          `json:"delayMinutes"`
	Multiplier      float64      `json:"multiplier"`
	Level           TrafficLevel `json:"level"`
}

// TripDeparturesResponse is the response for POST /v1/trips:departures.
type TripDeparturesResponse struct {
	Slots          []DepartureSlot `json:"slots"`
	LeaveNow       *DepartureSlot  `json:"leaveNow,omitempty"`
	GoodToLeaveNow bool            `json:"goodToLeaveNow"`
	NextOptimal    *DepartureSlot  `json:"nextOptimal,omitempty"`
	Best           *DepartureSlot  `json:"best,omitempty"`
}
