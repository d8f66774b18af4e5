package config

import (
	"errors"
	"fmt"
	"os"
	"time"
)

// Config holds all gateway settings, populated from environment variables.
type Config struct {
	ServerName string

	// Outbound NWS API settings.
	APIBase        string
	UserAgent      string
	RequestTimeout time.Duration

	LogFile  string
	LogLevel string

	// OpsAddr is the listen address for the health/metrics HTTP server.
	// Empty disables it; the MCP transport itself runs over stdio.
	OpsAddr string

	ShutdownTimeout time.Duration
}

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warning": true,
	"error":   true,
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	timeout, err := time.ParseDuration(envOrDefault("NWS_TIMEOUT", "30s"))
	if err != nil || timeout <= 0 {
		return nil, errors.New("invalid NWS_TIMEOUT")
	}

	shutdownTimeout, err := time.ParseDuration(envOrDefault("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil || shutdownTimeout <= 0 {
		return nil, errors.New("invalid SHUTDOWN_TIMEOUT")
	}

	cfg := &Config{
		ServerName:      envOrDefault("MCP_SERVER_NAME", "weather"),
		APIBase:         envOrDefault("NWS_API_BASE", "https://api.weather.gov"),
		UserAgent:       envOrDefault("NWS_USER_AGENT", "weather-app/1.0"),
		RequestTimeout:  timeout,
		LogFile:         envOrDefault("LOG_FILE", "weather_mcp.log"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		OpsAddr:         os.Getenv("OPS_ADDR"),
		ShutdownTimeout: shutdownTimeout,
	}

	if cfg.ServerName == "" {
		return nil, errors.New("MCP_SERVER_NAME must not be empty")
	}
	if cfg.APIBase == "" {
		return nil, errors.New("NWS_API_BASE must not be empty")
	}
	if cfg.UserAgent == "" {
		return nil, errors.New("NWS_USER_AGENT must not be empty")
	}
	if cfg.LogFile == "" {
		return nil, errors.New("LOG_FILE must not be empty")
	}
	if !validLogLevels[cfg.LogLevel] {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: expected debug, info, warning, or error", cfg.LogLevel)
	}

	return cfg, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
