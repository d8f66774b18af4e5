package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "weather", cfg.ServerName)
	assert.Equal(t, "https://api.weather.gov", cfg.APIBase)
	assert.Equal(t, "weather-app/1.0", cfg.UserAgent)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "weather_mcp.log", cfg.LogFile)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.OpsAddr)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("MCP_SERVER_NAME", "weather-staging")
	t.Setenv("NWS_API_BASE", "https://nws.example.test")
	t.Setenv("NWS_USER_AGENT", "weather-app/2.0")
	t.Setenv("NWS_TIMEOUT", "5s")
	t.Setenv("LOG_FILE", "/tmp/weather.log")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("OPS_ADDR", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "weather-staging", cfg.ServerName)
	assert.Equal(t, "https://nws.example.test", cfg.APIBase)
	assert.Equal(t, "weather-app/2.0", cfg.UserAgent)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/weather.log", cfg.LogFile)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, ":9090", cfg.OpsAddr)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("NWS_TIMEOUT", "not-a-duration")

	_, err := Load()
	assert.ErrorContains(t, err, "NWS_TIMEOUT")
}

func TestLoad_NegativeTimeout(t *testing.T) {
	t.Setenv("NWS_TIMEOUT", "-5s")

	_, err := Load()
	assert.ErrorContains(t, err, "NWS_TIMEOUT")
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose")

	_, err := Load()
	assert.ErrorContains(t, err, "LOG_LEVEL")
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "0s")

	_, err := Load()
	assert.ErrorContains(t, err, "SHUTDOWN_TIMEOUT")
}
