// Package mcpserver binds the gateway to the MCP host protocol. Connection
// lifecycle, request framing, and response delivery belong to mcp-go; this
// package owns tool registration, argument decoding, and the panic boundary.
package mcpserver

import (
	"context"
	"log/slog"
	"runtime/debug"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/couchcryptid/weather-mcp-gateway/internal/config"
	"github.com/couchcryptid/weather-mcp-gateway/internal/gateway"
	"github.com/couchcryptid/weather-mcp-gateway/internal/observability"
)

// Version is reported to MCP clients during initialization.
const Version = "1.0.0"

// genericErrorMessage is all a caller sees of an unexpected fault; the
// diagnostic detail stays in the operator log.
const genericErrorMessage = "An unexpected error occurred while processing the request."

// New creates the MCP server with the three weather tools registered.
func New(cfg *config.Config, svc *gateway.Service, logger *slog.Logger, metrics *observability.Metrics) *server.MCPServer {
	s := server.NewMCPServer(cfg.ServerName, Version,
		server.WithToolCapabilities(false),
		server.WithLogging(),
	)

	h := &handlers{svc: svc, logger: logger, metrics: metrics}

	s.AddTool(mcp.NewTool("get_forecast",
		mcp.WithDescription("Get weather forecast for a location."),
		mcp.WithNumber("latitude",
			mcp.Required(),
			mcp.Description("Latitude of the location"),
		),
		mcp.WithNumber("longitude",
			mcp.Required(),
			mcp.Description("Longitude of the location"),
		),
	), h.getForecast)

	s.AddTool(mcp.NewTool("get_alerts",
		mcp.WithDescription("Get weather alerts for a US state."),
		mcp.WithString("state",
			mcp.Required(),
			mcp.Description("Two-letter US state code (e.g. CA, NY)"),
		),
	), h.getAlerts)

	s.AddTool(mcp.NewTool("server_info",
		mcp.WithDescription("Get information about the current weather MCP server configuration."),
	), h.serverInfo)

	return s
}

type handlers struct {
	svc     *gateway.Service
	logger  *slog.Logger
	metrics *observability.Metrics
}

func (h *handlers) getForecast(ctx context.Context, req mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
	defer h.recoverToResult("get_forecast", &result)

	lat, err := req.RequireFloat("latitude")
	if err != nil {
		return h.badArgs("get_forecast", err), nil
	}
	lon, err := req.RequireFloat("longitude")
	if err != nil {
		return h.badArgs("get_forecast", err), nil
	}

	rep := newReporter(h.logger, h.metrics, req)
	return mcp.NewToolResultText(h.svc.Forecast(ctx, rep, lat, lon)), nil
}

func (h *handlers) getAlerts(ctx context.Context, req mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
	defer h.recoverToResult("get_alerts", &result)

	state, err := req.RequireString("state")
	if err != nil {
		return h.badArgs("get_alerts", err), nil
	}

	rep := newReporter(h.logger, h.metrics, req)
	return mcp.NewToolResultText(h.svc.Alerts(ctx, rep, state)), nil
}

func (h *handlers) serverInfo(ctx context.Context, req mcp.CallToolRequest) (result *mcp.CallToolResult, err error) {
	defer h.recoverToResult("server_info", &result)

	rep := newReporter(h.logger, h.metrics, req)
	return mcp.NewToolResultText(string(h.svc.Info(ctx, rep))), nil
}

func (h *handlers) badArgs(tool string, err error) *mcp.CallToolResult {
	h.logger.Warn("invalid tool arguments", "tool", tool, "error", err)
	h.metrics.ToolInvocations.WithLabelValues(tool, "invalid_args").Inc()
	return mcp.NewToolResultError(err.Error())
}

// recoverToResult is the outermost boundary for faults outside the expected
// taxonomy: log with full detail, surface only the generic message.
func (h *handlers) recoverToResult(tool string, result **mcp.CallToolResult) {
	if r := recover(); r != nil {
		h.logger.Error("unexpected error in tool handler",
			"tool", tool, "panic", r, "stack", string(debug.Stack()))
		h.metrics.ToolInvocations.WithLabelValues(tool, "error").Inc()
		*result = mcp.NewToolResultText(genericErrorMessage)
	}
}
