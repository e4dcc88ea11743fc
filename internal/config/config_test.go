package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"SERVER_HOST", "SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"SERVER_IDLE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT", "SERVER_METRICS_ENABLED",
		"SERVER_ALLOWED_ORIGINS", "API_KEY", "NETWORK_SOURCE", "NETWORK_FILE",
		"ENGINE_SEARCH_BUDGET", "GRAPH_URI", "GRAPH_DATABASE", "GRAPH_USERNAME",
		"GRAPH_PASSWORD", "GRAPH_MAX_CONNECTIONS", "LOG_LEVEL", "LOG_FORMAT",
		"LOG_INCLUDE_CALLER",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.HTTP.Host)
	assert.Equal(t, 3000, cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	assert.False(t, cfg.HTTP.MetricsEnabled)
	assert.Equal(t, "*", cfg.HTTP.AllowedOriginsCSV)
	assert.Equal(t, SourceBuiltin, cfg.Network.Source)
	assert.Zero(t, cfg.Network.SearchBudget)
	assert.Empty(t, cfg.Auth.APIKey)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 10, cfg.Graph.MaxConnections)
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "8081")
	t.Setenv("SERVER_READ_TIMEOUT", "3s")
	t.Setenv("SERVER_METRICS_ENABLED", "true")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "https://ops.example.com")
	t.Setenv("API_KEY", "  secret  ")
	t.Setenv("NETWORK_SOURCE", "FILE")
	t.Setenv("NETWORK_FILE", "/etc/trains/network.yaml")
	t.Setenv("ENGINE_SEARCH_BUDGET", "5000")
	t.Setenv("GRAPH_MAX_CONNECTIONS", "not-a-number")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.True(t, cfg.HTTP.MetricsEnabled)
	assert.Equal(t, "https://ops.example.com", cfg.HTTP.AllowedOriginsCSV)
	assert.Equal(t, "secret", cfg.Auth.APIKey)
	assert.Equal(t, SourceFile, cfg.Network.Source)
	assert.Equal(t, "/etc/trains/network.yaml", cfg.Network.File)
	assert.Equal(t, 5000, cfg.Network.SearchBudget)
	assert.Equal(t, 10, cfg.Graph.MaxConnections)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "bad port", env: map[string]string{"SERVER_PORT": "http"}, want: "SERVER_PORT"},
		{name: "port out of range", env: map[string]string{"SERVER_PORT": "70000"}, want: "out of range"},
		{name: "bad duration", env: map[string]string{"SERVER_IDLE_TIMEOUT": "soon"}, want: "SERVER_IDLE_TIMEOUT"},
		{name: "unknown source", env: map[string]string{"NETWORK_SOURCE": "s3"}, want: "NETWORK_SOURCE"},
		{name: "file without path", env: map[string]string{"NETWORK_SOURCE": "file"}, want: "NETWORK_FILE"},
		{name: "negative budget", env: map[string]string{"ENGINE_SEARCH_BUDGET": "-1"}, want: "ENGINE_SEARCH_BUDGET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
