package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/juralis/paperdrop/internal/flagx"
	"github.com/juralis/paperdrop/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// It relies on timex.Duration so JSON can specify intervals either as
// strings like "3s" or as integer nanoseconds. After parsing, values
// are copied into the runtime Config (which uses time.Duration).
type JsonConfig struct {
	ServerURL     string         `json:"server_url"`
	DatabaseDSN   string         `json:"database_dsn"`
	APIKey        string         `json:"api_key"`
	UploadTimeout timex.Duration `json:"upload_timeout"`
	ProbeInterval timex.Duration `json:"probe_interval"`
	ProbeMaxWait  timex.Duration `json:"probe_max_wait"`
	SyncSchedule  string         `json:"sync_schedule"`
}

// parseJson overlays Config with values loaded from a JSON file. The file
// path comes from the -c or -config command-line flags; when neither is set,
// no JSON is loaded. Panics on read or unmarshal errors.
func parseJson(cfg *Config) {
	// Resolve file path from flags.
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	cfg.ServerURL = jc.ServerURL
	cfg.DatabaseDSN = jc.DatabaseDSN
	cfg.APIKey = jc.APIKey
	cfg.UploadTimeout = time.Duration(jc.UploadTimeout.Duration)
	cfg.ProbeInterval = time.Duration(jc.ProbeInterval.Duration)
	cfg.ProbeMaxWait = time.Duration(jc.ProbeMaxWait.Duration)
	cfg.SyncSchedule = jc.SyncSchedule
}
