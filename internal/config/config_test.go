package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configTOML = `[server]
port = 9090
host = "127.0.0.1"
cors_allowed_origins = ["*"]

[logging]
level = "debug"
format = "json"

[storage]
sqlite_path = "test.db"

[scenario]
document_path = "scenario.yaml"
`

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(configTOML), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "test.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "scenario.yaml", cfg.Scenario.DocumentPath)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidateDefaults(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, "sqlite", cfg.Storage.Type)
	assert.Equal(t, "airscen.db", cfg.Storage.SQLitePath)
	assert.Equal(t, "gemini-2.0-flash", cfg.Briefing.Model)
	assert.Equal(t, 300, cfg.Briefing.CacheTTLSecs)
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad port", func(c *Config) { c.Server.Port = -1 }},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }},
		{"bad storage type", func(c *Config) { c.Storage.Type = "oracle" }},
		{"briefing without key", func(c *Config) { c.Briefing.Enabled = true }},
		{"negative briefing ttl", func(c *Config) { c.Briefing.CacheTTLSecs = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
