package mcpserver

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/weather-mcp-gateway/internal/config"
	"github.com/couchcryptid/weather-mcp-gateway/internal/domain"
	"github.com/couchcryptid/weather-mcp-gateway/internal/gateway"
	"github.com/couchcryptid/weather-mcp-gateway/internal/observability"
)

// stubAPI satisfies gateway.WeatherAPI with canned data; panicOnCall turns
// every method into a panic to exercise the recover boundary.
type stubAPI struct {
	panicOnCall bool
}

func (s *stubAPI) Points(context.Context, float64, float64) (domain.GridPoint, error) {
	if s.panicOnCall {
		panic("nil map write in points handling")
	}
	return domain.GridPoint{ForecastURL: "https://example.test/forecast"}, nil
}

func (s *stubAPI) Forecast(context.Context, string) ([]domain.ForecastPeriod, error) {
	if s.panicOnCall {
		panic("boom")
	}
	return []domain.ForecastPeriod{{
		Name:             "Tonight",
		Temperature:      58,
		TemperatureUnit:  "F",
		WindSpeed:        "5 mph",
		WindDirection:    "NW",
		DetailedForecast: "Clear.",
	}}, nil
}

func (s *stubAPI) ActiveAlerts(context.Context, string) ([]domain.AlertRecord, error) {
	if s.panicOnCall {
		panic("boom")
	}
	return nil, nil
}

func testHandlers(t *testing.T, api gateway.WeatherAPI) (*handlers, *bytes.Buffer) {
	t.Helper()
	var logBuf bytes.Buffer
	logger := slog.New(observability.NewLineHandler([]io.Writer{&logBuf}, "weather", slog.LevelDebug, clockwork.NewRealClock()))

	svc, err := gateway.New(api, domain.ServerInfo{ServerName: "weather"}, logger, observability.NewMetricsForTesting())
	require.NoError(t, err)

	return &handlers{svc: svc, logger: logger, metrics: observability.NewMetricsForTesting()}, &logBuf
}

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	tc, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func TestGetForecast_Success(t *testing.T) {
	h, _ := testHandlers(t, &stubAPI{})

	result, err := h.getForecast(context.Background(), callRequest("get_forecast", map[string]any{
		"latitude":  38.8977,
		"longitude": -77.0365,
	}))
	require.NoError(t, err)

	out := resultText(t, result)
	assert.Contains(t, out, "Tonight:")
	assert.Contains(t, out, "Temperature: 58°F")
	assert.False(t, result.IsError)
}

func TestGetForecast_MissingArgument(t *testing.T) {
	h, _ := testHandlers(t, &stubAPI{})

	result, err := h.getForecast(context.Background(), callRequest("get_forecast", map[string]any{
		"latitude": 38.8977,
	}))
	require.NoError(t, err)

	assert.True(t, result.IsError)
}

func TestGetAlerts_Success(t *testing.T) {
	h, _ := testHandlers(t, &stubAPI{})

	result, err := h.getAlerts(context.Background(), callRequest("get_alerts", map[string]any{
		"state": "ca",
	}))
	require.NoError(t, err)

	assert.Equal(t, domain.NoActiveAlertsMessage, resultText(t, result))
}

func TestGetAlerts_MissingArgument(t *testing.T) {
	h, _ := testHandlers(t, &stubAPI{})

	result, err := h.getAlerts(context.Background(), callRequest("get_alerts", nil))
	require.NoError(t, err)

	assert.True(t, result.IsError)
}

func TestServerInfo_ReturnsSnapshot(t *testing.T) {
	h, _ := testHandlers(t, &stubAPI{})

	result, err := h.serverInfo(context.Background(), callRequest("server_info", nil))
	require.NoError(t, err)

	assert.Contains(t, resultText(t, result), `"server_name": "weather"`)
}

func TestPanicBoundary_GenericMessageOnly(t *testing.T) {
	h, logBuf := testHandlers(t, &stubAPI{panicOnCall: true})

	result, err := h.getForecast(context.Background(), callRequest("get_forecast", map[string]any{
		"latitude":  1.0,
		"longitude": 2.0,
	}))
	require.NoError(t, err)

	// Caller sees only the generic message; detail goes to the operator log.
	assert.Equal(t, genericErrorMessage, resultText(t, result))
	assert.NotContains(t, resultText(t, result), "nil map")
	assert.Contains(t, logBuf.String(), "unexpected error in tool handler")
	assert.Contains(t, logBuf.String(), " - ERROR - ")
}

func TestNew_RegistersTools(t *testing.T) {
	h, _ := testHandlers(t, &stubAPI{})

	cfg := &config.Config{ServerName: "weather"}
	s := New(cfg, h.svc, h.logger, h.metrics)
	require.NotNil(t, s)
}
