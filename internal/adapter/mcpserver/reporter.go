package mcpserver

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/couchcryptid/weather-mcp-gateway/internal/observability"
)

// Reporter forwards leveled log messages and progress updates to the MCP
// client of the current request. Delivery is best effort: send errors are
// swallowed, a missing server context is a no-op, and nothing here blocks
// or fails the surrounding operation.
type Reporter struct {
	logger  *slog.Logger
	metrics *observability.Metrics
	name    string
	token   mcp.ProgressToken
}

func newReporter(logger *slog.Logger, metrics *observability.Metrics, req mcp.CallToolRequest) *Reporter {
	var token mcp.ProgressToken
	if req.Params.Meta != nil {
		token = req.Params.Meta.ProgressToken
	}
	return &Reporter{
		logger:  logger,
		metrics: metrics,
		name:    req.Params.Name,
		token:   token,
	}
}

func (r *Reporter) Debug(ctx context.Context, msg string)   { r.send(ctx, "debug", msg) }
func (r *Reporter) Info(ctx context.Context, msg string)    { r.send(ctx, "info", msg) }
func (r *Reporter) Warning(ctx context.Context, msg string) { r.send(ctx, "warning", msg) }
func (r *Reporter) Error(ctx context.Context, msg string)   { r.send(ctx, "error", msg) }

// Progress emits a notifications/progress update. Skipped entirely when the
// request carried no progress token.
func (r *Reporter) Progress(ctx context.Context, progress, total float64, message string) {
	if r.token == nil {
		return
	}
	srv := server.ServerFromContext(ctx)
	if srv == nil {
		return
	}
	r.metrics.ProgressUpdates.Inc()
	_ = srv.SendNotificationToClient(ctx, "notifications/progress", map[string]any{
		"progressToken": r.token,
		"progress":      progress,
		"total":         total,
		"message":       message,
	})
}

func (r *Reporter) send(ctx context.Context, level, msg string) {
	srv := server.ServerFromContext(ctx)
	if srv == nil {
		return
	}
	_ = srv.SendNotificationToClient(ctx, "notifications/message", map[string]any{
		"level":  level,
		"logger": r.name,
		"data":   msg,
	})
}
