// Package nws is the HTTP client adapter for the National Weather Service API.
// It owns the wire format; callers receive domain types and typed failures.
package nws

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/sony/gobreaker"

	"github.com/couchcryptid/weather-mcp-gateway/internal/config"
	"github.com/couchcryptid/weather-mcp-gateway/internal/domain"
	"github.com/couchcryptid/weather-mcp-gateway/internal/observability"
)

// Client issues GET requests to api.weather.gov with a fixed identification
// header and request timeout. Redirects are followed transparently by the
// underlying http.Client. A circuit breaker guards the upstream; there are
// no retries — a failure is terminal for the call.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// NewClient creates an NWS API client from gateway configuration.
func NewClient(cfg *config.Config, logger *slog.Logger, metrics *observability.Metrics) *Client {
	return &Client{
		baseURL:   cfg.APIBase,
		userAgent: cfg.UserAgent,
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "nws",
			MaxRequests: 5,
			Interval:    1 * time.Minute,
			Timeout:     2 * time.Minute,
		}),
		logger:  logger,
		metrics: metrics,
	}
}

// Points resolves a coordinate to its grid metadata, including the
// location-specific forecast URL.
func (c *Client) Points(ctx context.Context, lat, lon float64) (domain.GridPoint, error) {
	u := fmt.Sprintf("%s/points/%s,%s", c.baseURL, formatCoord(lat), formatCoord(lon))

	var resp pointsResponse
	if err := c.get(ctx, u, "points", &resp); err != nil {
		return domain.GridPoint{}, err
	}
	return domain.GridPoint{ForecastURL: resp.Properties.Forecast}, nil
}

// Forecast fetches the forecast resource named by a points lookup and returns
// its periods in API order.
func (c *Client) Forecast(ctx context.Context, forecastURL string) ([]domain.ForecastPeriod, error) {
	var resp forecastResponse
	if err := c.get(ctx, forecastURL, "forecast", &resp); err != nil {
		return nil, err
	}

	periods := make([]domain.ForecastPeriod, 0, len(resp.Properties.Periods))
	for _, p := range resp.Properties.Periods {
		periods = append(periods, domain.ForecastPeriod{
			Name:             p.Name,
			Temperature:      p.Temperature,
			TemperatureUnit:  p.TemperatureUnit,
			WindSpeed:        p.WindSpeed,
			WindDirection:    p.WindDirection,
			DetailedForecast: p.DetailedForecast,
		})
	}
	return periods, nil
}

// ActiveAlerts fetches the active alerts for a state area code.
func (c *Client) ActiveAlerts(ctx context.Context, state string) ([]domain.AlertRecord, error) {
	u := fmt.Sprintf("%s/alerts/active/area/%s", c.baseURL, state)

	var resp alertsResponse
	if err := c.get(ctx, u, "alerts", &resp); err != nil {
		return nil, err
	}

	alerts := make([]domain.AlertRecord, 0, len(resp.Features))
	for _, f := range resp.Features {
		alerts = append(alerts, domain.AlertRecord{
			Event:       f.Properties.Event,
			AreaDesc:    f.Properties.AreaDesc,
			Severity:    f.Properties.Severity,
			Description: f.Properties.Description,
			Instruction: f.Properties.Instruction,
		})
	}
	return alerts, nil
}

func (c *Client) get(ctx context.Context, fullURL, endpoint string, target any) error {
	c.logger.Debug("nws request", "endpoint", endpoint, "url", fullURL)
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return c.fail(endpoint, &domain.FetchError{Kind: domain.FetchNetwork, URL: fullURL, Err: err})
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/geo+json")

	result, err := c.breaker.Execute(func() (any, error) {
		return c.httpClient.Do(req)
	})
	c.metrics.NWSDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		return c.fail(endpoint, classify(fullURL, err))
	}

	resp := result.(*http.Response)
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body) //nolint:errcheck // drain for connection reuse
		return c.fail(endpoint, &domain.FetchError{Kind: domain.FetchHTTPStatus, URL: fullURL, StatusCode: resp.StatusCode})
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return c.fail(endpoint, &domain.FetchError{Kind: domain.FetchParse, URL: fullURL, Err: err})
	}

	c.metrics.NWSRequests.WithLabelValues(endpoint, "success").Inc()
	c.logger.Debug("nws request succeeded", "endpoint", endpoint, "status", resp.StatusCode)
	return nil
}

func (c *Client) fail(endpoint string, ferr *domain.FetchError) error {
	c.metrics.NWSRequests.WithLabelValues(endpoint, ferr.Kind.String()).Inc()
	return ferr
}

// classify maps a transport-level error onto the fetch taxonomy.
func classify(url string, err error) *domain.FetchError {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return &domain.FetchError{Kind: domain.FetchNetwork, URL: url, Err: err}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &domain.FetchError{Kind: domain.FetchTimeout, URL: url, Err: err}
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return &domain.FetchError{Kind: domain.FetchTimeout, URL: url, Err: err}
	}
	return &domain.FetchError{Kind: domain.FetchNetwork, URL: url, Err: err}
}

// formatCoord renders a coordinate the way the points endpoint expects,
// without trailing zeros.
func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// NWS API response types. GeoJSON envelopes trimmed to the fields consumed.

type pointsResponse struct {
	Properties struct {
		Forecast string `json:"forecast"`
	} `json:"properties"`
}

type forecastResponse struct {
	Properties struct {
		Periods []periodProperties `json:"periods"`
	} `json:"properties"`
}

type periodProperties struct {
	Name             string `json:"name"`
	Temperature      int    `json:"temperature"`
	TemperatureUnit  string `json:"temperatureUnit"`
	WindSpeed        string `json:"windSpeed"`
	WindDirection    string `json:"windDirection"`
	DetailedForecast string `json:"detailedForecast"`
}

type alertsResponse struct {
	Features []struct {
		Properties struct {
			Event       string `json:"event"`
			AreaDesc    string `json:"areaDesc"`
			Severity    string `json:"severity"`
			Description string `json:"description"`
			Instruction string `json:"instruction"`
		} `json:"properties"`
	} `json:"features"`
}
