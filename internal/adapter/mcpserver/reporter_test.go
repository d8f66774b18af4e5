package mcpserver

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/weather-mcp-gateway/internal/observability"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewReporter_NoProgressToken(t *testing.T) {
	rep := newReporter(discardLogger(), observability.NewMetricsForTesting(), callRequest("get_alerts", nil))

	assert.Nil(t, rep.token)
	assert.Equal(t, "get_alerts", rep.name)

	// Without a token or a server in context these must be silent no-ops.
	rep.Progress(context.Background(), 0.5, 1.0, "halfway")
	rep.Info(context.Background(), "hello")
}

func TestNewReporter_CarriesProgressToken(t *testing.T) {
	req := callRequest("get_forecast", nil)
	req.Params.Meta = &mcp.Meta{ProgressToken: "tok-1"}

	rep := newReporter(discardLogger(), observability.NewMetricsForTesting(), req)

	assert.Equal(t, mcp.ProgressToken("tok-1"), rep.token)
}

func TestReporter_ProgressWithoutServerContext(t *testing.T) {
	req := callRequest("get_forecast", nil)
	req.Params.Meta = &mcp.Meta{ProgressToken: "tok-1"}
	metrics := observability.NewMetricsForTesting()

	rep := newReporter(discardLogger(), metrics, req)

	// Token present but no MCP server in the context: still a no-op, and the
	// delivery counter stays untouched because nothing was sent.
	rep.Progress(context.Background(), 1.0, 1.0, "done")
}
