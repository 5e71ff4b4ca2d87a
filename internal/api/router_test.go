package api_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margdarshak/margdarshak/internal/api"
	"github.com/margdarshak/margdarshak/internal/api/models"
	"github.com/margdarshak/margdarshak/internal/provider/resilience"
	"github.com/margdarshak/margdarshak/internal/region"
	"github.com/margdarshak/margdarshak/internal/routing"
	"github.com/margdarshak/margdarshak/internal/traffic"
	"github.com/margdarshak/margdarshak/internal/trip"
)

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := zerolog.New(io.Discard)
	store := region.NewStore(region.NewInMemoryRepository(region.DefaultDataset()))
	calc := traffic.NewCalculator(traffic.CalculatorConfig{Store: store, Logger: logger})

	trips := trip.NewService(trip.ServiceConfig{
		Regions: store,
		Traffic: calc,
		Router:  routing.NewService(routing.ServiceConfig{Logger: logger}),
		Planner: trip.NewPlanner(trip.PlannerConfig{Traffic: calc, Logger: logger}),
		Logger:  logger,
	})

	return api.NewRouter(api.RouterConfig{
		Version:   "test",
		BuildTime: "now",
		Logger:    logger,
		Trips:     trips,
		Regions:   store,
		Traffic:   calc,
		Providers: resilience.NewRegistry(),
	})
}

func postJSON(t *testing.T, router http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ops/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))

	var health models.Health
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &health))
	assert.Equal(t, models.HealthStatusOK, health.Status)
}

func TestRouter_Ready(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ops/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouter_Status(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ops/status", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var status models.SystemStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	require.NotEmpty(t, status.Subsystems)
	assert.Equal(t, "region-data", status.Subsystems[0].Name)
	assert.Equal(t, models.HealthStatusOK, status.Subsystems[0].Status)
}

func TestRouter_Estimate(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/trips:estimate", `{
		"originCity": "Bengaluru",
		"destinationCity": "Mumbai",
		"mode": "driving",
		"departAt": "2026-02-04T13:00:00+05:30"
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.TripEstimateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Bengaluru", resp.City)
	assert.Equal(t, models.ModeDriving, resp.Mode)
	assert.Greater(t, resp.DistanceKm, 0.0)
	assert.Greater(t, resp.DurationMinutes, 0)
	assert.NotEmpty(t, resp.Traffic.Factors)
	// No routing provider configured, so the estimate is a fallback.
	assert.Equal(t, "great-circle", resp.RouteSource)
	assert.Equal(t, models.ConfidenceLow, resp.Confidence)
}

func TestRouter_Estimate_ValidationError(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/trips:estimate", `{"originCity": "Bengaluru"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))

	var problem models.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, models.ProblemTypeValidation, problem.Type)
	assert.NotEmpty(t, problem.Errors)
}

func TestRouter_Estimate_UnknownCity(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/trips:estimate", `{
		"originCity": "Atlantis",
		"destinationCity": "Mumbai",
		"mode": "driving"
	}`)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var problem models.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, models.ProblemTypeNotFound, problem.Type)
}

func TestRouter_Estimate_RejectsWrongContentType(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/trips:estimate", strings.NewReader("mode=driving"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestRouter_Departures(t *testing.T) {
	router := newTestRouter(t)

	rec := postJSON(t, router, "/v1/trips:departures", `{
		"originCity": "Bengaluru",
		"destinationCity": "Mumbai",
		"mode": "driving",
		"departAt": "2026-02-04T13:20:00+05:30"
	}`)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.TripDeparturesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Len(t, resp.Slots, trip.DefaultHorizonSlots)
	require.NotNil(t, resp.Best)
	assert.GreaterOrEqual(t, resp.Best.DurationMinutes, 1)
}

func TestRouter_MetadataCities(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/metadata/cities", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var list models.CityList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.NotEmpty(t, list.Items)

	names := make(map[string]bool, len(list.Items))
	for _, c := range list.Items {
		names[c.Name] = true
	}
	assert.True(t, names["Bengaluru"])
	assert.True(t, names["Mumbai"])
	// Current conditions are evaluated at request time; off-peak factors
	// can push the multiplier below 1 but never to zero.
	assert.Positive(t, list.Items[0].CurrentTraffic.Multiplier)
}

func TestRouter_MetadataModes(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/metadata/modes", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var list models.ModeList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list.Items, 5)
}

func TestRouter_NotFoundRoute(t *testing.T) {
	router := newTestRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
