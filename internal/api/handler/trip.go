package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/margdarshak/margdarshak/internal/api/models"
	"github.com/margdarshak/margdarshak/internal/api/response"
	"github.com/margdarshak/margdarshak/internal/region"
	"github.com/margdarshak/margdarshak/internal/trip"
	"github.com/margdarshak/margdarshak/pkg/geo"
)

// TripHandler handles trip scoring endpoints.
type TripHandler struct {
	trips *trip.Service
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(trips *trip.Service) *TripHandler {
	return &TripHandler{trips: trips}
}

// Estimate handles POST /v1/trips:estimate - score one trip.
func (h *TripHandler) Estimate(w http.ResponseWriter, r *http.Request) {
	var input models.TripEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	req, fieldErrs := estimateRequest(input)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid trip request", fieldErrs)
		return
	}

	est, err := h.trips.Estimate(r.Context(), req)
	if err != nil {
		writeTripError(w, r, err)
		return
	}

	w.Header().Set("Cache-Control", "private, max-age=60")
	response.JSON(w, r, http.StatusOK, estimateResponse(est))
}

// BestDepartures handles POST /v1/trips:departures - scan departure times.
func (h *TripHandler) BestDepartures(w http.ResponseWriter, r *http.Request) {
	var input models.TripDeparturesRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		response.BadRequest(w, r, "invalid JSON body", nil)
		return
	}

	req, fieldErrs := estimateRequest(input.TripEstimateRequest)
	if len(fieldErrs) > 0 {
		response.BadRequest(w, r, "invalid trip request", fieldErrs)
		return
	}

	plan, err := h.trips.BestDepartures(r.Context(), trip.DeparturesRequest{
		EstimateRequest: req,
		HorizonSlots:    input.HorizonSlots,
		SlotMinutes:     input.SlotMinutes,
	})
	if err != nil {
		writeTripError(w, r, err)
		return
	}

	resp := models.TripDeparturesResponse{
		Slots:          make([]models.DepartureSlot, 0, len(plan.Slots)),
		GoodToLeaveNow: plan.GoodToLeaveNow,
		LeaveNow:       slotModel(plan.LeaveNow),
		NextOptimal:    slotModel(plan.NextOptimal),
		Best:           slotModel(plan.Best),
	}
	for _, s := range plan.Slots {
		resp.Slots = append(resp.Slots, *slotModel(&s))
	}

	w.Header().Set("Cache-Control", "private, max-age=60")
	response.JSON(w, r, http.StatusOK, resp)
}

// estimateRequest validates and converts the wire model.
func estimateRequest(input models.TripEstimateRequest) (trip.EstimateRequest, []models.FieldError) {
	var fieldErrs []models.FieldError

	if input.Mode == "" {
		fieldErrs = append(fieldErrs, models.FieldError{Field: "mode", Message: "required"})
	}
	if input.OriginCity == "" && input.Origin == nil {
		fieldErrs = append(fieldErrs, models.FieldError{Field: "originCity", Message: "originCity or origin is required"})
	}
	if input.DestinationCity == "" && input.Destination == nil {
		fieldErrs = append(fieldErrs, models.FieldError{Field: "destinationCity", Message: "destinationCity or destination is required"})
	}
	if len(fieldErrs) > 0 {
		return trip.EstimateRequest{}, fieldErrs
	}

	req := trip.EstimateRequest{
		OriginCity:      input.OriginCity,
		DestinationCity: input.DestinationCity,
		Mode:            trip.Mode(input.Mode),
	}
	if input.Origin != nil {
		req.Origin = &geo.Coordinate{Lat: input.Origin.Lat, Lon: input.Origin.Lon}
	}
	if input.Destination != nil {
		req.Destination = &geo.Coordinate{Lat: input.Destination.Lat, Lon: input.Destination.Lon}
	}
	if input.DepartAt != nil {
		req.DepartAt = input.DepartAt.Time()
	}
	return req, nil
}

func estimateResponse(est *trip.Estimate) models.TripEstimateResponse {
	confidence := models.ConfidenceHigh
	if est.RouteSource == "great-circle" {
		confidence = models.ConfidenceLow
	}

	resp := models.TripEstimateResponse{
		Mode:              models.TransportMode(est.Mode),
		City:              est.ScoredCity,
		DepartAt:          models.Timestamp(est.DepartAt),
		DistanceKm:        est.Adjusted.DistanceKm,
		DurationMinutes:   est.Adjusted.DurationMinutes,
		EffectiveSpeedKmh: est.Adjusted.EffectiveSpeedKmh,
		SignalWaitMinutes: est.Adjusted.SignalWaitMinutes,
		BreakerMinutes:    est.Adjusted.BreakerMinutes,
		Intersections:     est.Adjusted.Intersections,
		Traffic: models.TrafficInfo{
			Multiplier: est.Traffic.Multiplier,
			Level:      models.TrafficLevel(est.Traffic.Level()),
			Factors:    est.Traffic.Factors,
		},
		RouteSource: est.RouteSource,
		Polyline:    est.RoutePolyline,
		Confidence:  confidence,
		Advice:      est.Advice,
	}
	for _, a := range est.Advisories {
		resp.Advisories = append(resp.Advisories, models.AdvisoryInfo{Kind: a.Kind, Message: a.Message})
	}
	return resp
}

func slotModel(s *trip.Slot) *models.DepartureSlot {
	if s == nil {
		return nil
	}
	return &models.DepartureSlot{
		At:              models.Timestamp(s.At),
		DurationMinutes: s.DurationMinutes,
		DelayMinutes:    s.DelayMinutes,
		Multiplier:      s.Multiplier,
		Level:           models.TrafficLevel(s.Level),
	}
}

func writeTripError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, trip.ErrUnknownMode):
		response.BadRequest(w, r, "unknown transport mode", []models.FieldError{
			{Field: "mode", Message: "must be one of: driving, two-wheeler, bus, cycling, walking"},
		})
	case errors.Is(err, region.ErrCityNotFound):
		response.NotFound(w, r, "city not covered and no coordinates given")
	default:
		response.InternalError(w, r, "failed to score trip")
	}
}
