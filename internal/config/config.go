// Package config loads runtime settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds everything the server, worker and CLI need at startup.
type Config struct {
	APIHost      string
	APIPort      int
	FrontendPort int
	Debug        bool

	// NotificationHost empty means notifications are logged, not delivered.
	NotificationHost string
	NotificationPort int
	NotificationDir  string

	DBPath            string
	PollInterval      time.Duration
	PlanningLookback  time.Duration
	DefaultNotifyMins int
	Location          *time.Location
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	base := dataDir()
	return Config{
		APIHost:           "localhost",
		APIPort:           9090,
		FrontendPort:      5173,
		NotificationPort:  9999,
		NotificationDir:   filepath.Join(base, "notifications"),
		DBPath:            filepath.Join(base, "planner.db"),
		PollInterval:      60 * time.Second,
		PlanningLookback:  5 * time.Minute,
		DefaultNotifyMins: 10,
		Location:          time.Local,
	}
}

func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".planner"
	}
	return filepath.Join(home, ".planner")
}

// LoadConfig reads the .env file named by PLANNER_ENV_FILE (default ".env")
// and then the environment. Variables already set in the environment win
// over the file, and unparseable values keep their defaults.
func LoadConfig() (Config, error) {
	envFile := os.Getenv("PLANNER_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("loading %s: %w", envFile, err)
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the process environment alone.
func FromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("API_HOST"); v != "" {
		cfg.APIHost = v
	}
	if n, ok := positiveInt("API_PORT"); ok {
		cfg.APIPort = n
	}
	if n, ok := positiveInt("FRONTEND_PORT"); ok {
		cfg.FrontendPort = n
	}
	if v := os.Getenv("DEBUG"); v != "" {
		cfg.Debug, _ = strconv.ParseBool(v)
	}
	cfg.NotificationHost = os.Getenv("NOTIFICATION_HOST")
	if n, ok := positiveInt("NOTIFICATION_PORT"); ok {
		cfg.NotificationPort = n
	}
	if v := os.Getenv("PLANNER_NOTIFICATION_DIR"); v != "" {
		cfg.NotificationDir = v
	}
	if v := os.Getenv("PLANNER_DB"); v != "" {
		cfg.DBPath = v
	}
	if d, ok := positiveDuration("PLANNER_POLL_INTERVAL"); ok {
		cfg.PollInterval = d
	}
	if d, ok := positiveDuration("PLANNER_PLANNING_LOOKBACK"); ok {
		cfg.PlanningLookback = d
	}
	if n, ok := positiveInt("PLANNER_DEFAULT_NOTIFY_INTERVAL_MIN"); ok {
		cfg.DefaultNotifyMins = n
	}
	if v := os.Getenv("PLANNER_TZ"); v != "" {
		if loc, err := time.LoadLocation(v); err == nil {
			cfg.Location = loc
		}
	}
	return cfg
}

// APIAddr is the listen address for the HTTP server.
func (c Config) APIAddr() string {
	return c.APIHost + ":" + strconv.Itoa(c.APIPort)
}

// FrontendOrigin is the browser origin allowed by CORS.
func (c Config) FrontendOrigin() string {
	return "http://localhost:" + strconv.Itoa(c.FrontendPort)
}

func positiveInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

func positiveDuration(key string) (time.Duration, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, false
	}
	return d, true
}
