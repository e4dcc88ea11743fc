package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_StartupFailures(t *testing.T) {
	invalid := filepath.Join(t.TempDir(), "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("routes:\n  - {from: A, to: B, distance: 0}\n"), 0o644))

	tests := []struct {
		name   string
		env    map[string]string
		stderr string
	}{
		{name: "bad config", env: map[string]string{"NETWORK_SOURCE": "s3"}, stderr: "NETWORK_SOURCE"},
		{name: "missing file", env: map[string]string{"NETWORK_SOURCE": "file", "NETWORK_FILE": filepath.Join(t.TempDir(), "none.yaml")}},
		{name: "invalid network", env: map[string]string{"NETWORK_SOURCE": "file", "NETWORK_FILE": invalid}},
		{name: "graph without uri", env: map[string]string{"NETWORK_SOURCE": "neo4j", "GRAPH_URI": ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", "error")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			var stderr bytes.Buffer
			assert.Equal(t, 1, run(context.Background(), &stderr))
			if tt.stderr != "" {
				assert.Contains(t, stderr.String(), tt.stderr)
			}
		})
	}
}

func TestParseAllowedOrigins(t *testing.T) {
	assert.Nil(t, parseAllowedOrigins(""))
	assert.Equal(t, []string{"*"}, parseAllowedOrigins("*"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, parseAllowedOrigins(" https://a.example, ,https://b.example "))
}
