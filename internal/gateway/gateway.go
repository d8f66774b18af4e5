// Package gateway orchestrates NWS API calls on behalf of the MCP tools.
// Every operation returns a plain string: expected failures are mapped to
// user-facing messages and never escape to the protocol boundary as errors.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/couchcryptid/weather-mcp-gateway/internal/domain"
	"github.com/couchcryptid/weather-mcp-gateway/internal/observability"
)

// WeatherAPI is the outbound surface of the NWS client adapter.
type WeatherAPI interface {
	Points(ctx context.Context, lat, lon float64) (domain.GridPoint, error)
	Forecast(ctx context.Context, forecastURL string) ([]domain.ForecastPeriod, error)
	ActiveAlerts(ctx context.Context, state string) ([]domain.AlertRecord, error)
}

// Reporter delivers diagnostics and progress to the calling client.
// Delivery is best effort and purely observational: implementations must
// never block or fail the surrounding operation.
type Reporter interface {
	Debug(ctx context.Context, msg string)
	Info(ctx context.Context, msg string)
	Warning(ctx context.Context, msg string)
	Error(ctx context.Context, msg string)
	Progress(ctx context.Context, progress, total float64, message string)
}

// Service holds the orchestrators behind the three MCP tools.
type Service struct {
	api     WeatherAPI
	logger  *slog.Logger
	metrics *observability.Metrics
	info    []byte
}

// New creates a Service. The server-info snapshot is marshaled once here so
// repeated server_info calls return byte-identical output.
func New(api WeatherAPI, info domain.ServerInfo, logger *slog.Logger, metrics *observability.Metrics) (*Service, error) {
	raw, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal server info: %w", err)
	}
	return &Service{
		api:     api,
		logger:  logger,
		metrics: metrics,
		info:    raw,
	}, nil
}

// Forecast resolves a coordinate to its grid forecast URL, fetches the
// forecast, and renders the first periods as text blocks.
func (s *Service) Forecast(ctx context.Context, rep Reporter, lat, lon float64) string {
	s.logger.Info("processing forecast request", "lat", lat, "lon", lon)
	rep.Info(ctx, fmt.Sprintf("Fetching weather forecast for coordinates: %v, %v", lat, lon))

	// Out-of-range coordinates only warn; the API has the final word.
	if res := domain.ValidateCoordinate(domain.Coordinate{Lat: lat, Lon: lon}); !res.OK() {
		for _, w := range res.Warnings {
			s.logger.Warn(w)
			rep.Warning(ctx, w)
		}
	}

	rep.Progress(ctx, 0.1, 1.0, "Fetching location data...")
	point, err := s.api.Points(ctx, lat, lon)
	if err != nil {
		return s.fail(ctx, rep, "get_forecast", "Unable to fetch forecast data for this location", err)
	}

	if point.ForecastURL == "" {
		err := &domain.FetchError{Kind: domain.FetchParse, Err: errors.New("points response missing forecast URL")}
		return s.fail(ctx, rep, "get_forecast", "Unable to fetch forecast data for this location", err)
	}
	rep.Debug(ctx, "Retrieved forecast URL from points lookup")

	rep.Progress(ctx, 0.5, 1.0, "Fetching detailed forecast...")
	periods, err := s.api.Forecast(ctx, point.ForecastURL)
	if err != nil {
		return s.fail(ctx, rep, "get_forecast", "Unable to fetch detailed forecast", err)
	}

	if len(periods) == 0 {
		s.logger.Warn("no forecast periods returned", "lat", lat, "lon", lon)
		rep.Warning(ctx, "No forecast periods available for this location.")
		rep.Progress(ctx, 1.0, 1.0, "Done")
		s.metrics.ToolInvocations.WithLabelValues("get_forecast", "empty").Inc()
		return "No forecast periods available for this location."
	}

	// API ordering is authoritative: no reorder, no dedup, only truncation.
	if len(periods) > domain.MaxForecastPeriods {
		periods = periods[:domain.MaxForecastPeriods]
	}

	blocks := make([]string, 0, len(periods))
	for i, p := range periods {
		blocks = append(blocks, domain.FormatPeriod(p))
		frac := 0.5 + 0.5*float64(i+1)/float64(len(periods))
		rep.Progress(ctx, frac, 1.0, fmt.Sprintf("Processed period %d/%d", i+1, len(periods)))
	}

	s.logger.Info("forecast request completed", "lat", lat, "lon", lon, "periods", len(periods))
	rep.Info(ctx, fmt.Sprintf("Successfully processed forecast for coordinates: %v, %v", lat, lon))
	s.metrics.ToolInvocations.WithLabelValues("get_forecast", "success").Inc()
	return strings.Join(blocks, domain.BlockSeparator)
}

// Alerts fetches the active alerts for a state and renders each as a block,
// or returns the zero-alert message.
func (s *Service) Alerts(ctx context.Context, rep Reporter, state string) string {
	norm, res := domain.NormalizeState(state)

	s.logger.Info("processing alerts request", "state", norm)
	rep.Info(ctx, fmt.Sprintf("Fetching weather alerts for state: %s", norm))

	// Malformed state codes only warn; the normalized value goes upstream.
	if !res.OK() {
		for _, w := range res.Warnings {
			s.logger.Warn(w)
			rep.Warning(ctx, w)
		}
	}

	rep.Progress(ctx, 0.3, 1.0, "Fetching active alerts...")
	alerts, err := s.api.ActiveAlerts(ctx, norm)
	if err != nil {
		return s.fail(ctx, rep, "get_alerts", "Unable to fetch alerts for this state", err)
	}

	if len(alerts) == 0 {
		s.logger.Info("no active alerts", "state", norm)
		rep.Info(ctx, fmt.Sprintf("No active alerts found for state: %s", norm))
		rep.Progress(ctx, 1.0, 1.0, "Done")
		s.metrics.ToolInvocations.WithLabelValues("get_alerts", "empty").Inc()
		return domain.NoActiveAlertsMessage
	}

	blocks := make([]string, 0, len(alerts))
	for i, a := range alerts {
		blocks = append(blocks, domain.FormatAlert(a))
		rep.Progress(ctx, float64(i+1)/float64(len(alerts)), 1.0, fmt.Sprintf("Processing alert %d/%d", i+1, len(alerts)))
	}

	s.logger.Info("alerts request completed", "state", norm, "count", len(alerts))
	rep.Info(ctx, fmt.Sprintf("Successfully processed %d alerts for state: %s", len(alerts), norm))
	s.metrics.ToolInvocations.WithLabelValues("get_alerts", "success").Inc()
	return strings.Join(blocks, domain.BlockSeparator)
}

// Info returns the server-info snapshot marshaled at startup.
func (s *Service) Info(ctx context.Context, rep Reporter) []byte {
	s.logger.Info("server info requested")
	rep.Info(ctx, "Retrieving server information")
	s.metrics.ToolInvocations.WithLabelValues("server_info", "success").Inc()
	return s.info
}

// Snapshot exposes the server-info bytes without reporting, for the ops server.
func (s *Service) Snapshot() []byte {
	return s.info
}

// fail implements the shared failure contract: one ERROR log entry, an error
// notification, progress forced to 1.0, and a message naming the failure kind.
func (s *Service) fail(ctx context.Context, rep Reporter, tool, userMsg string, err error) string {
	msg := userMsg + ": " + domain.FailureReason(err) + "."
	s.logger.Error(userMsg, "error", err)
	rep.Error(ctx, msg)
	rep.Progress(ctx, 1.0, 1.0, "Failed")
	s.metrics.ToolInvocations.WithLabelValues(tool, "error").Inc()
	return msg
}
