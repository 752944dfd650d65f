// ABOUTME: Centralized configuration for the binary home services
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the home system
type Config struct {
	// Local storage
	DBPath       string
	DyadID       int64
	StateBackend string
	StatePath    string

	// Charm settings (state backend "charm")
	CharmHost   string
	CharmDBName string
	AutoSync    bool

	// Local API
	APIPort int

	// Cloud sync
	CloudURL     string
	UplinkURL    string
	CloudAPIKey  string
	CloudTimeout time.Duration

	// Uplink files
	UplinkDir string

	// Background jobs (cron expressions)
	SnapshotSchedule string
	PushSchedule     string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		DBPath:           os.Getenv("BINARY_HOME_DB"),
		DyadID:           int64(getEnvInt("BINARY_HOME_DYAD", 1)),
		StateBackend:     getEnv("BINARY_HOME_STATE_BACKEND", "file"),
		StatePath:        os.Getenv("BINARY_HOME_STATE_PATH"),
		CharmHost:        getEnv("CHARM_HOST", "cloud.charm.sh"),
		CharmDBName:      getEnv("CHARM_DB", "binary-home"),
		AutoSync:         getEnvBool("CHARM_AUTO_SYNC", true),
		APIPort:          getEnvInt("BINARY_HOME_PORT", 1778),
		CloudURL:         os.Getenv("BINARY_HOME_CLOUD_URL"),
		UplinkURL:        os.Getenv("BINARY_HOME_UPLINK_URL"),
		CloudAPIKey:      os.Getenv("BINARY_HOME_CLOUD_KEY"),
		CloudTimeout:     getEnvDuration("BINARY_HOME_CLOUD_TIMEOUT", 5*time.Second),
		UplinkDir:        os.Getenv("BINARY_HOME_UPLINK_DIR"),
		SnapshotSchedule: getEnv("BINARY_HOME_SNAPSHOT_CRON", "@every 15m"),
		PushSchedule:     getEnv("BINARY_HOME_PUSH_CRON", "@every 5m"),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if c.APIPort < 1 || c.APIPort > 65535 {
		return fmt.Errorf("BINARY_HOME_PORT must be 1-65535, got %d", c.APIPort)
	}
	if c.DyadID < 1 {
		return fmt.Errorf("BINARY_HOME_DYAD must be positive, got %d", c.DyadID)
	}
	if c.StateBackend != "file" && c.StateBackend != "charm" {
		return fmt.Errorf("BINARY_HOME_STATE_BACKEND must be file or charm, got %q", c.StateBackend)
	}
	return nil
}

// ListenAddr returns the HTTP listen address for the API daemon
func (c *Config) ListenAddr() string {
	return fmt.Sprintf(":%d", c.APIPort)
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
