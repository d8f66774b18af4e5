package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/mark3labs/mcp-go/server"

	httpadapter "github.com/couchcryptid/weather-mcp-gateway/internal/adapter/http"
	"github.com/couchcryptid/weather-mcp-gateway/internal/adapter/mcpserver"
	"github.com/couchcryptid/weather-mcp-gateway/internal/adapter/nws"
	"github.com/couchcryptid/weather-mcp-gateway/internal/config"
	"github.com/couchcryptid/weather-mcp-gateway/internal/domain"
	"github.com/couchcryptid/weather-mcp-gateway/internal/gateway"
	"github.com/couchcryptid/weather-mcp-gateway/internal/observability"
)

func main() {
	// Optional .env for local development; absence is not an error.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger, logCloser, err := observability.NewLogger(cfg, clockwork.NewRealClock())
	if err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}
	defer logCloser.Close()

	metrics := observability.NewMetrics()
	client := nws.NewClient(cfg, logger, metrics)

	info := domain.ServerInfo{
		ServerName:     cfg.ServerName,
		LogLevel:       cfg.LogLevel,
		LogFile:        cfg.LogFile,
		APIBase:        cfg.APIBase,
		UserAgent:      cfg.UserAgent,
		AvailableTools: []string{"get_alerts", "get_forecast", "server_info"},
		LoggingFeatures: []string{
			"Dual-sink logging to file and console",
			"MCP client log notifications (debug, info, warning, error)",
			"Progress reporting for long operations",
			"Prometheus metrics",
		},
	}

	svc, err := gateway.New(client, info, logger, metrics)
	if err != nil {
		slog.Error("failed to build gateway", "error", err)
		os.Exit(1)
	}

	mcpSrv := mcpserver.New(cfg, svc, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional ops sidecar for health and metrics.
	var ops *httpadapter.Server
	if cfg.OpsAddr != "" {
		ops = httpadapter.NewServer(cfg.OpsAddr, svc.Snapshot(), logger)
		go func() {
			if err := ops.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("ops server error", "error", err)
			}
		}()
	}

	logger.Info("weather mcp server starting",
		"name", cfg.ServerName, "api_base", cfg.APIBase, "user_agent", cfg.UserAgent)

	stdio := server.NewStdioServer(mcpSrv)
	stdio.SetErrorLogger(slog.NewLogLogger(logger.Handler(), slog.LevelError))

	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("mcp server error", "error", err)
	}

	logger.Info("shutting down")

	if ops != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := ops.Shutdown(shutdownCtx); err != nil {
			logger.Error("ops server shutdown error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
