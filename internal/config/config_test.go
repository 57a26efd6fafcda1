package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "localhost", cfg.APIHost)
	assert.Equal(t, 9090, cfg.APIPort)
	assert.Equal(t, 5173, cfg.FrontendPort)
	assert.Equal(t, 60*time.Second, cfg.PollInterval)
	assert.Equal(t, 5*time.Minute, cfg.PlanningLookback)
	assert.Equal(t, 10, cfg.DefaultNotifyMins)
	assert.Empty(t, cfg.NotificationHost)
	assert.Equal(t, "planner.db", filepath.Base(cfg.DBPath))
	assert.Equal(t, "localhost:9090", cfg.APIAddr())
	assert.Equal(t, "http://localhost:5173", cfg.FrontendOrigin())
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("API_HOST", "0.0.0.0")
	t.Setenv("API_PORT", "8080")
	t.Setenv("FRONTEND_PORT", "3000")
	t.Setenv("DEBUG", "true")
	t.Setenv("NOTIFICATION_HOST", "127.0.0.1")
	t.Setenv("NOTIFICATION_PORT", "7777")
	t.Setenv("PLANNER_DB", "/tmp/p.db")
	t.Setenv("PLANNER_POLL_INTERVAL", "15s")
	t.Setenv("PLANNER_PLANNING_LOOKBACK", "10m")
	t.Setenv("PLANNER_DEFAULT_NOTIFY_INTERVAL_MIN", "3")
	t.Setenv("PLANNER_TZ", "UTC")

	cfg := FromEnv()

	assert.Equal(t, "0.0.0.0:8080", cfg.APIAddr())
	assert.Equal(t, "http://localhost:3000", cfg.FrontendOrigin())
	assert.True(t, cfg.Debug)
	assert.Equal(t, "127.0.0.1", cfg.NotificationHost)
	assert.Equal(t, 7777, cfg.NotificationPort)
	assert.Equal(t, "/tmp/p.db", cfg.DBPath)
	assert.Equal(t, 15*time.Second, cfg.PollInterval)
	assert.Equal(t, 10*time.Minute, cfg.PlanningLookback)
	assert.Equal(t, 3, cfg.DefaultNotifyMins)
	assert.Equal(t, time.UTC, cfg.Location)
}

func TestFromEnv_InvalidValuesIgnored(t *testing.T) {
	t.Setenv("API_PORT", "not-a-port")
	t.Setenv("PLANNER_POLL_INTERVAL", "-5s")
	t.Setenv("PLANNER_DEFAULT_NOTIFY_INTERVAL_MIN", "0")
	t.Setenv("PLANNER_TZ", "Mars/Olympus")

	cfg := FromEnv()

	assert.Equal(t, 9090, cfg.APIPort)
	assert.Equal(t, 60*time.Second, cfg.PollInterval)
	assert.Equal(t, 10, cfg.DefaultNotifyMins)
	assert.Equal(t, time.Local, cfg.Location)
}

func TestLoadConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "planner.env")
	require.NoError(t, os.WriteFile(path, []byte("API_PORT=9191\nFRONTEND_PORT=4000\n"), 0o644))
	t.Setenv("PLANNER_ENV_FILE", path)
	t.Setenv("FRONTEND_PORT", "4100")
	// Registered so t.Setenv restores the variable the file sets.
	t.Setenv("API_PORT", "")
	require.NoError(t, os.Unsetenv("API_PORT"))

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.APIPort)
	assert.Equal(t, 4100, cfg.FrontendPort, "environment wins over the file")
}

func TestLoadConfig_MissingEnvFile(t *testing.T) {
	t.Setenv("PLANNER_ENV_FILE", filepath.Join(t.TempDir(), "absent.env"))

	_, err := LoadConfig()
	assert.NoError(t, err)
}
