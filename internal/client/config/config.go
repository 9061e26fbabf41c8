// Package config handles configuration for the client component, including
// defaults, JSON overlay, and command-line flags.
package config

import "time"

// Config holds runtime settings for the paperdrop CLI.
//
// Fields:
//   - ServerURL: base URL of the intake server.
//   - DatabaseDSN: path of the local SQLite queue database.
//   - APIKey: optional static key sent as X-Api-Key.
//   - UploadTimeout: per-upload HTTP timeout; generous by default because
//     field connections are slow.
//   - ProbeInterval / ProbeMaxWait: reachability probe backoff bounds.
//   - SyncSchedule: cron expression for the periodic sync fallback.
type Config struct {
	ServerURL     string
	DatabaseDSN   string
	APIKey        string
	UploadTimeout time.Duration
	ProbeInterval time.Duration
	ProbeMaxWait  time.Duration
	SyncSchedule  string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.DatabaseDSN = "paperdrop.db"
	c.APIKey = ""
	c.UploadTimeout = 5 * time.Minute
	c.ProbeInterval = 3 * time.Second
	c.ProbeMaxWait = time.Minute
	c.SyncSchedule = "@every 5m"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
