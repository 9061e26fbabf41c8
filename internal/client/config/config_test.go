package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, "http://127.0.0.1:8080", cfg.ServerURL)
	assert.Equal(t, "paperdrop.db", cfg.DatabaseDSN)
	assert.Equal(t, 5*time.Minute, cfg.UploadTimeout)
	assert.Equal(t, 3*time.Second, cfg.ProbeInterval)
	assert.Equal(t, "@every 5m", cfg.SyncSchedule)
}

func Test_parseJson(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(map[string]any{
		"server_url":     "http://server:9090",
		"database_dsn":   "/var/lib/paperdrop/queue.db",
		"api_key":        "key",
		"upload_timeout": "2m",
		"probe_interval": "10s",
		"probe_max_wait": "1m",
		"sync_schedule":  "@every 1m",
	})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))

	os.Args = []string{"testbin", "-config", path}

	cfg := &Config{}
	parseJson(cfg)

	assert.Equal(t, "http://server:9090", cfg.ServerURL)
	assert.Equal(t, "/var/lib/paperdrop/queue.db", cfg.DatabaseDSN)
	assert.Equal(t, "key", cfg.APIKey)
	assert.Equal(t, 2*time.Minute, cfg.UploadTimeout)
	assert.Equal(t, 10*time.Second, cfg.ProbeInterval)
	assert.Equal(t, time.Minute, cfg.ProbeMaxWait)
	assert.Equal(t, "@every 1m", cfg.SyncSchedule)
}

func Test_parseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-a", "http://field-gw:8080", "-d", "q.db", "-i", "7", "-t", "120"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, "http://field-gw:8080", cfg.ServerURL)
	assert.Equal(t, "q.db", cfg.DatabaseDSN)
	assert.Equal(t, 7*time.Second, cfg.ProbeInterval)
	assert.Equal(t, 2*time.Minute, cfg.UploadTimeout)
}
