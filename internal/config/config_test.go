package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaultsWithoutFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "unidb_session", cfg.Session.CookieName)
	assert.Equal(t, "30m", cfg.Session.IdleTimeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	yaml := "server:\n  port: \"9000\"\n  mode: production\nsession:\n  idle_timeout: 5m\nlogging:\n  level: debug\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Server.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "5m", cfg.Session.IdleTimeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadConfigRejectsInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"bad yaml":         "server: [",
		"bad idle timeout": "session:\n  idle_timeout: forever\n",
		"bad sweep":        "session:\n  sweep_interval: 0s\n",
		"bad metrics path": "metrics:\n  path: metrics\n",
		"empty cookie":     "session:\n  cookie_name: \"\"\n",
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, filepath.Base(t.Name())+".yaml")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
			_, err := LoadConfig(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadFromEnvRejectsBadBool(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	env := map[string]string{"SESSION_SECURE_COOKIE": "maybe"}

	err := loadFromEnv(cfg, func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	assert.ErrorContains(t, err, "SESSION_SECURE_COOKIE")
}

func TestProcessStructFieldsRejectsUnsupportedKind(t *testing.T) {
	var target struct {
		Workers int `env:"WORKERS"`
	}
	err := processStructFields(&target, func(string) (string, bool) { return "4", true })
	assert.ErrorContains(t, err, "unsupported field type")
}
