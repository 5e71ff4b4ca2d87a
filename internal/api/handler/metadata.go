package handler

import (
	"net/http"
	"time"

	"github.com/margdarshak/margdarshak/internal/api/models"
	"github.com/margdarshak/margdarshak/internal/api/response"
	"github.com/margdarshak/margdarshak/internal/region"
	"github.com/margdarshak/margdarshak/internal/traffic"
	"github.com/margdarshak/margdarshak/internal/trip"
)

// All covered cities share one timezone.
var istZone = time.FixedZone("IST", 330*60)

// MetadataHandler handles metadata endpoints.
type MetadataHandler struct {
	regions *region.Store
	traffic *traffic.Calculator
	clock   func() time.Time
}

// MetadataHandlerConfig holds configuration for the metadata handler.
type MetadataHandlerConfig struct {
	// Regions provides city profiles and reference records.
	Regions *region.Store

	// Traffic computes the current congestion multiplier per city.
	Traffic *traffic.Calculator

	// Clock supplies the current time. Defaults to time.Now.
	Clock func() time.Time
}

// NewMetadataHandler creates a new MetadataHandler.
func NewMetadataHandler(cfg MetadataHandlerConfig) *MetadataHandler {
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &MetadataHandler{
		regions: cfg.Regions,
		traffic: cfg.Traffic,
		clock:   clock,
	}
}

// ListCities handles GET /v1/metadata/cities - covered cities, their
// congestion profiles and current conditions.
func (h *MetadataHandler) ListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := h.regions.CityProfiles(r.Context())
	if err != nil {
		response.InternalError(w, r, "failed to load city profiles")
		return
	}

	now := h.clock().In(istZone)

	list := models.CityList{Items: make([]models.CityInfo, 0, len(cities))}
	for _, c := range cities {
		zones, _ := h.regions.ActiveConstructionZones(r.Context(), c.Name)
		changes, _ := h.regions.InfrastructureChanges(r.Context(), c.Name)
		conditions := h.traffic.Multiplier(r.Context(), c.Name, now.Hour(), now.Weekday(), now.Month())

		list.Items = append(list.Items, models.CityInfo{
			Name:  c.Name,
			Point: models.Point{Lat: c.Lat, Lon: c.Lon},
			MorningPeak: models.PeakWindowInfo{
				StartHour: c.MorningPeak.StartHour,
				EndHour:   c.MorningPeak.EndHour,
				Severity:  c.MorningPeak.Severity,
			},
			EveningPeak: models.PeakWindowInfo{
				StartHour: c.EveningPeak.StartHour,
				EndHour:   c.EveningPeak.EndHour,
				Severity:  c.EveningPeak.Severity,
			},
			PeakSpeedKmh:  c.Speeds.PeakKmh,
			OffPeakKmh:    c.Speeds.OffPeakKmh,
			NightKmh:      c.Speeds.NightKmh,
			ActiveZones:   len(zones),
			RecentChanges: len(changes),
			CurrentTraffic: models.TrafficInfo{
				Multiplier: conditions.Multiplier,
				Level:      models.TrafficLevel(conditions.Level()),
				Factors:    conditions.Factors,
			},
		})
	}

	// Short cache only: the current multiplier moves with the clock.
	w.Header().Set("Cache-Control", "public, max-age=300")
	response.JSON(w, r, http.StatusOK, list)
}

// ListModes handles GET /v1/metadata/modes - transport mode profiles.
func (h *MetadataHandler) ListModes(w http.ResponseWriter, r *http.Request) {
	modes := trip.Modes()

	list := models.ModeList{Items: make([]models.ModeInfo, 0, len(modes))}
	for _, m := range modes {
		profile, err := trip.ProfileFor(m)
		if err != nil {
			continue
		}
		list.Items = append(list.Items, models.ModeInfo{
			Mode:                 models.TransportMode(m),
			AverageSpeedKmh:      profile.AverageSpeedKmh,
			DistanceMultiplier:   profile.DistanceMultiplier,
			TrafficAffected:      profile.TrafficAffected,
			SignalWaitMultiplier: profile.SignalWaitMultiplier,
		})
	}

	w.Header().Set("Cache-Control", "public, max-age=3600")
	response.JSON(w, r, http.StatusOK, list)
}
