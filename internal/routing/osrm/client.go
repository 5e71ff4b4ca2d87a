// Package osrm provides a client for the OSRM route API.
package osrm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/margdarshak/margdarshak/internal/provider/resilience"
	"github.com/margdarshak/margdarshak/internal/routing"
	"github.com/margdarshak/margdarshak/pkg/polyline"
)

const (
	// ProviderName identifies this routing provider.
	ProviderName = "osrm"

	// DefaultBaseURL is the public OSRM demo server.
	DefaultBaseURL = "https://router.project-osrm.org"

	// DefaultTimeout is the default request timeout.
	DefaultTimeout = 8 * time.Second
)

// HTTPDoer executes HTTP requests.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ClientConfig holds configuration for the OSRM client.
type ClientConfig struct {
	// BaseURL is the OSRM server base URL (optional).
	BaseURL string

	// HTTPClient is the HTTP client to use (optional). If nil, a
	// resilient client with circuit breaker and retries is used.
	HTTPClient HTTPDoer

	// Timeout is the request timeout (optional, defaults to 8s).
	Timeout time.Duration

	// Registry is the provider registry for health tracking (optional).
	Registry *resilience.Registry

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is an OSRM route API client.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	logger     zerolog.Logger
}

// NewClient creates an OSRM client.
func NewClient(cfg ClientConfig) *Client {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		clientCfg := resilience.DefaultClientConfig(ProviderName)
		clientCfg.Timeout = timeout
		if cfg.Registry != nil {
			clientCfg.Registry = cfg.Registry
		}
		httpClient = resilience.NewClient(clientCfg)
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		logger:     cfg.Logger,
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return ProviderName
}

// osrmResponse is the subset of the OSRM route response the engine uses.
type osrmResponse struct {
	Code   string `json:"code"`
	Routes []struct {
		DistanceMeters  float64 `json:"distance"`
		DurationSeconds float64 `json:"duration"`
		Geometry        string  `json:"geometry"`
	} `json:"routes"`
}

// Route retrieves the primary route between two points.
func (c *Client) Route(ctx context.Context, req routing.RouteRequest) (*routing.Route, error) {
	// OSRM takes lon,lat pairs in the path.
	url := fmt.Sprintf("%s/route/v1/%s/%f,%f;%f,%f?overview=simplified&geometries=polyline&alternatives=false",
		c.baseURL, req.Profile,
		req.Origin.Lon, req.Origin.Lat,
		req.Destination.Lon, req.Destination.Lat,
	)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     "REQUEST_FAILED",
			Message:  "osrm request failed",
			Err:      routing.ErrProviderUnavailable,
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.logger.Warn().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("osrm returned non-200")
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     fmt.Sprintf("HTTP_%d", resp.StatusCode),
			Message:  "osrm returned an error status",
			Err:      routing.ErrProviderUnavailable,
		}
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}

	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return nil, &routing.Error{
			Provider: ProviderName,
			Code:     parsed.Code,
			Message:  "osrm found no route",
			Err:      routing.ErrNoRouteFound,
		}
	}

	primary := parsed.Routes[0]
	return &routing.Route{
		DistanceKm:      primary.DistanceMeters / 1000,
		DurationMinutes: primary.DurationSeconds / 60,
		Path:            polyline.Decode(primary.Geometry),
		Source:          ProviderName,
	}, nil
}

// Ensure Client implements routing.Provider.
var _ routing.Provider = (*Client)(nil)
