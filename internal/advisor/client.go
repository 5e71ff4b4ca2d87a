// Package advisor calls an external travel-advice service to turn a scored
// trip into a short human-readable recommendation. The advice is decorative:
// callers must treat a missing or failing advisor as a normal condition.
package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/margdarshak/margdarshak/internal/provider/resilience"
	"github.com/margdarshak/margdarshak/internal/trip"
)

// ProviderName identifies the advisor in health reports.
const ProviderName = "advisor"

// DefaultTimeout bounds advisor calls. Advice is optional so the budget
// is tight.
const DefaultTimeout = 3 * time.Second

// ErrUnavailable is returned when the advisor cannot be reached or
// answers with an error.
var ErrUnavailable = errors.New("advisor unavailable")

// HTTPDoer executes HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the advisor client.
type ClientConfig struct {
	// BaseURL is the advisor service root. Required.
	BaseURL string

	// HTTPClient overrides the default resilient client.
	HTTPClient HTTPDoer

	// Timeout bounds each call. Default: DefaultTimeout.
	Timeout time.Duration

	// Registry receives the underlying client for health reporting.
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client talks to the advisor service.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates an advisor client.
func NewClient(cfg ClientConfig) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		rcfg := resilience.DefaultClientConfig(ProviderName)
		rcfg.Timeout = timeout
		rcfg.MaxRetries = 1
		rcfg.Registry = cfg.Registry
		httpClient = resilience.NewClient(rcfg)
	}

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

type adviceRequest struct {
	City            string   `json:"city"`
	Mode            string   `json:"mode"`
	DepartAt        string   `json:"depart_at"`
	DurationMinutes int      `json:"duration_minutes"`
	Multiplier      float64  `json:"multiplier"`
	Factors         []string `json:"factors"`
}

type adviceResponse struct {
	Advice string `json:"advice"`
}

// Advise asks the service for a recommendation on a scored trip.
func (c *Client) Advise(ctx context.Context, est *trip.Estimate) (string, error) {
	payload := adviceRequest{
		City:            est.ScoredCity,
		Mode:            string(est.Mode),
		DepartAt:        est.DepartAt.Format(time.RFC3339),
		DurationMinutes: est.Adjusted.DurationMinutes,
		Multiplier:      est.Traffic.Multiplier,
		Factors:         est.Traffic.Factors,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encoding advice request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/advice", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating advice request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: HTTP %d", ErrUnavailable, resp.StatusCode)
	}

	var decoded adviceResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("decoding advice response: %w", err)
	}
	return decoded.Advice, nil
}

var _ trip.Advisor = (*Client)(nil)
