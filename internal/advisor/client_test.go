package advisor_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margdarshak/margdarshak/internal/advisor"
	"github.com/margdarshak/margdarshak/internal/traffic"
	"github.com/margdarshak/margdarshak/internal/trip"
)

func testEstimate() *trip.Estimate {
	return &trip.Estimate{
		Mode:       trip.ModeDriving,
		DepartAt:   time.Date(2026, time.February, 3, 9, 0, 0, 0, time.UTC),
		ScoredCity: "Bengaluru",
		Adjusted:   trip.Adjusted{DurationMinutes: 41},
		Traffic: traffic.Result{
			Multiplier: 1.9,
			Factors:    []string{"morning peak congestion"},
		},
	}
}

func TestClient_Advise(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/advice", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "Bengaluru", payload["city"])
		assert.Equal(t, "driving", payload["mode"])
		assert.InDelta(t, 1.9, payload["multiplier"], 0.001)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"advice":"leave after 11:00 to clear the morning peak"}`))
	}))
	defer server.Close()

	client := advisor.NewClient(advisor.ClientConfig{
		BaseURL: server.URL,
		Logger:  zerolog.New(io.Discard),
	})

	advice, err := client.Advise(context.Background(), testEstimate())
	require.NoError(t, err)
	assert.Equal(t, "leave after 11:00 to clear the morning peak", advice)
}

func TestClient_AdviseServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	defer server.Close()

	client := advisor.NewClient(advisor.ClientConfig{
		BaseURL: server.URL,
		Logger:  zerolog.New(io.Discard),
	})

	_, err := client.Advise(context.Background(), testEstimate())
	require.Error(t, err)
	assert.ErrorIs(t, err, advisor.ErrUnavailable)
}

func TestClient_AdviseUnreachable(t *testing.T) {
	client := advisor.NewClient(advisor.ClientConfig{
		BaseURL: "http://127.0.0.1:1",
		Timeout: 200 * time.Millisecond,
		Logger:  zerolog.New(io.Discard),
	})

	_, err := client.Advise(context.Background(), testEstimate())
	require.Error(t, err)
	assert.ErrorIs(t, err, advisor.ErrUnavailable)
}
