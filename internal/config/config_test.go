package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ISSUES_CONFIG_PATH", "ISSUES_SERVER_HOST", "ISSUES_SERVER_PORT",
		"ISSUES_SHUTDOWN_TIMEOUT", "ISSUES_STRICT_STATUS", "ISSUES_STORE_DRIVER",
		"ISSUES_STORE_DSN", "ISSUES_TRANSPORT_MODE", "ISSUES_LOG_LEVEL",
		"ISSUES_LOG_FORMAT", "ISSUES_LOG_PATH",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, 3000, cfg.Server.Port)
	require.Equal(t, DriverMemory, cfg.Store.Driver)
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, `
server:
  port: 4000
  shutdown_timeout: 2s
http:
  strict_status: true
store:
  driver: sqlite
  dsn: issues.db
log:
  level: debug
`)
	t.Setenv("ISSUES_CONFIG_PATH", path)
	t.Setenv("ISSUES_SERVER_PORT", "4100")
	t.Setenv("ISSUES_LOG_FORMAT", "json")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 4100, cfg.Server.Port)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 2*time.Second, cfg.Server.ShutdownTimeout)
	require.True(t, cfg.HTTP.StrictStatus)
	require.Equal(t, StoreConfig{Driver: DriverSQLite, DSN: "issues.db"}, cfg.Store)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, FormatJSON, cfg.Log.Format)
}

func TestLoad_ExplicitPathWins(t *testing.T) {
	clearEnv(t)
	t.Setenv("ISSUES_CONFIG_PATH", writeConfig(t, "server:\n  port: 1111\n"))

	cfg, err := Load(writeConfig(t, "server:\n  port: 2222\n"))
	require.NoError(t, err)
	require.Equal(t, 2222, cfg.Server.Port)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		path string
	}{
		{name: "bad port", env: map[string]string{"ISSUES_SERVER_PORT": "abc"}},
		{name: "bad timeout", env: map[string]string{"ISSUES_SHUTDOWN_TIMEOUT": "soon"}},
		{name: "bad strict", env: map[string]string{"ISSUES_STRICT_STATUS": "maybe"}},
		{name: "missing file", path: "/nonexistent/config.yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.path)
			require.Error(t, err)
		})
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)

	_, err := Load(writeConfig(t, "server: [unclosed"))
	require.ErrorContains(t, err, "parse config file")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "port", mutate: func(c *Config) { c.Server.Port = 70000 }, errMsg: "server.port"},
		{name: "timeout", mutate: func(c *Config) { c.Server.ShutdownTimeout = 0 }, errMsg: "shutdown_timeout"},
		{name: "driver", mutate: func(c *Config) { c.Store.Driver = "mongo" }, errMsg: "store.driver"},
		{name: "mode", mutate: func(c *Config) { c.Transport.Mode = "grpc" }, errMsg: "transport.mode"},
		{name: "format", mutate: func(c *Config) { c.Log.Format = "xml" }, errMsg: "log.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			require.ErrorContains(t, cfg.Validate(), tt.errMsg)
		})
	}
}
