package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.HTTP.Addr)
	require.Equal(t, "X-Timesheet-User", cfg.HTTP.AuthHeader)
	require.Equal(t, "oc_", cfg.MySQL.TablePrefix)
	require.Equal(t, 4380*time.Hour, cfg.Holiday.CacheTTL)
	require.Equal(t, 10*time.Second, cfg.Holiday.Timeout)
	require.Equal(t, "admin", cfg.AdminGroup)
	require.Error(t, cfg.RequireMySQL())

	l, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, l)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TIMESHEET_MYSQL_DSN", "u:p@tcp(db:3306)/ts")
	t.Setenv("TIMESHEET_MYSQL_TABLE_PREFIX", "nc_")
	t.Setenv("TIMESHEET_HOLIDAY_CACHE_TTL", "24h")
	t.Setenv("TIMESHEET_LOG_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, "u:p@tcp(db:3306)/ts", cfg.MySQL.DSN)
	require.Equal(t, "nc_", cfg.MySQL.TablePrefix)
	require.Equal(t, 24*time.Hour, cfg.Holiday.CacheTTL)
	require.NoError(t, cfg.RequireMySQL())
}

func TestLoadEnvFileDoesNotOverrideEnvironment(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(file, []byte("TIMESHEET_ADMIN_GROUP=ops\nTIMESHEET_HTTP_ADDR=:9999\n"), 0o600))
	t.Setenv("TIMESHEET_HTTP_ADDR", ":7070")
	t.Cleanup(func() { _ = os.Unsetenv("TIMESHEET_ADMIN_GROUP") })

	cfg, err := Load(file)
	require.NoError(t, err)
	require.Equal(t, "ops", cfg.AdminGroup)
	require.Equal(t, ":7070", cfg.HTTP.Addr)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad prefix", map[string]string{"TIMESHEET_MYSQL_TABLE_PREFIX": "oc-`"}},
		{"bad level", map[string]string{"TIMESHEET_LOG_LEVEL": "loud"}},
		{"zero ttl", map[string]string{"TIMESHEET_HOLIDAY_CACHE_TTL": "0s"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load("")
			require.Error(t, err)
		})
	}
}
