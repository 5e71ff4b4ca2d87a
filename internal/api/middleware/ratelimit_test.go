package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/margdarshak/margdarshak/internal/api/middleware"
	"github.com/margdarshak/margdarshak/internal/api/models"
)

func TestRateLimitByIP_AllowsUnderLimit(t *testing.T) {
	limiter := middleware.RateLimitByIP(middleware.RateLimitConfig{
		RequestLimit: 3,
		WindowLength: time.Minute,
	})

	handler := limiter(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	for range 3 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}

func TestRateLimitByIP_BlocksOverLimit(t *testing.T) {
	limiter := middleware.RateLimitByIP(middleware.RateLimitConfig{
		RequestLimit: 2,
		WindowLength: time.Minute,
	})

	handler := limiter(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	var last *httptest.ResponseRecorder
	for range 3 {
		last = httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/v1/trips:estimate", nil)
		req.RemoteAddr = "10.0.0.2:1234"
		handler.ServeHTTP(last, req)
	}

	require.Equal(t, http.StatusTooManyRequests, last.Code)
	assert.Equal(t, "application/problem+json", last.Header().Get("Content-Type"))
	assert.NotEmpty(t, last.Header().Get("Retry-After"))

	var problem models.Problem
	require.NoError(t, json.Unmarshal(last.Body.Bytes(), &problem))
	assert.Equal(t, models.ProblemTypeTooManyRequests, problem.Type)
	assert.Equal(t, "/v1/trips:estimate", problem.Instance)
}

func TestRateLimitByIP_SeparateBuckets(t *testing.T) {
	limiter := middleware.RateLimitByIP(middleware.RateLimitConfig{
		RequestLimit: 1,
		WindowLength: time.Minute,
	})

	handler := limiter(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	first := httptest.NewRecorder()
	reqA := httptest.NewRequest(http.MethodGet, "/", nil)
	reqA.RemoteAddr = "10.0.0.3:1234"
	handler.ServeHTTP(first, reqA)

	second := httptest.NewRecorder()
	reqB := httptest.NewRequest(http.MethodGet, "/", nil)
	reqB.RemoteAddr = "10.0.0.4:1234"
	handler.ServeHTTP(second, reqB)

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusOK, second.Code)
}
