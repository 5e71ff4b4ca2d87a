// Package handler provides HTTP handlers for the Margdarshak API.
package handler

import (
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/margdarshak/margdarshak/internal/api/models"
	"github.com/margdarshak/margdarshak/internal/api/response"
	"github.com/margdarshak/margdarshak/internal/provider/resilience"
	"github.com/margdarshak/margdarshak/internal/region"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	regions   *region.Store
	providers *resilience.Registry
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, regions *region.Store, providers *resilience.Registry) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		regions:   regions,
		providers: providers,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The service
// is ready once city reference data is loaded.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	cities, err := h.regions.CityProfiles(r.Context())
	if err != nil || len(cities) == 0 {
		response.ServiceUnavailable(w, r, "city reference data not loaded")
		return
	}

	health := models.Health{
		Status: models.HealthStatusOK,
		Time:   models.Timestamp(time.Now()),
		Details: map[string]interface{}{
			"cities": len(cities),
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// SystemStatus handles GET /v1/ops/status - provider and subsystem status.
func (h *OpsHandler) SystemStatus(w http.ResponseWriter, r *http.Request) {
	now := models.Timestamp(time.Now())

	status := models.SystemStatus{
		Status:     models.HealthStatusOK,
		Time:       now,
		Subsystems: []models.SubsystemStatus{h.regionStatus(r)},
	}

	if h.providers != nil {
		for _, health := range h.providers.GetAllHealth() {
			provider := models.ProviderStatus{
				Provider: health.Name,
				Status:   breakerStatus(health.BreakerState),
			}
			if health.LastSuccessAt != nil {
				ts := models.Timestamp(*health.LastSuccessAt)
				provider.LastSuccessAt = &ts
			}
			if health.LastFailureAt != nil {
				ts := models.Timestamp(*health.LastFailureAt)
				provider.LastFailureAt = &ts
			}
			if health.LastError != "" {
				msg := health.LastError
				provider.Message = &msg
			}
			status.Providers = append(status.Providers, provider)

			if provider.Status != models.HealthStatusOK {
				status.Status = models.HealthStatusDegraded
			}
		}
	}

	for _, sub := range status.Subsystems {
		if sub.Status == models.HealthStatusFail {
			status.Status = models.HealthStatusDegraded
		}
	}

	response.JSON(w, r, http.StatusOK, status)
}

func (h *OpsHandler) regionStatus(r *http.Request) models.SubsystemStatus {
	sub := models.SubsystemStatus{Name: "region-data", Status: models.HealthStatusOK}
	cities, err := h.regions.CityProfiles(r.Context())
	if err != nil || len(cities) == 0 {
		sub.Status = models.HealthStatusFail
		detail := "no city profiles loaded"
		sub.Detail = &detail
	}
	return sub
}

func breakerStatus(state gobreaker.State) models.HealthStatus {
	switch state {
	case gobreaker.StateClosed:
		return models.HealthStatusOK
	case gobreaker.StateHalfOpen:
		return models.HealthStatusDegraded
	default:
		return models.HealthStatusFail
	}
}
