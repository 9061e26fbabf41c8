package config

import (
	"encoding/json"
	"os"

	"github.com/juralis/paperdrop/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It is an intermediate DTO used only for reading JSON
// configuration files; after unmarshalling, its fields are copied into the
// runtime Config struct.
type JsonConfig struct {
	Addr           string `json:"addr"`
	DatabaseDSN    string `json:"database_dsn"`
	Storage        string `json:"storage"`
	DataDir        string `json:"data_dir"`
	MaxUploadBytes int64  `json:"max_upload_bytes"`
	APIKey         string `json:"api_key"`
	S3Bucket       string `json:"s3_bucket"`
	S3Prefix       string `json:"s3_prefix"`
	S3Region       string `json:"s3_region"`
	S3BaseEndpoint string `json:"s3_base_endpoint"`
	S3AccessKey    string `json:"s3_access_key"`
	S3SecretKey    string `json:"s3_secret_key"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path is taken from the -c or -config
// command-line flags; when neither is set, no JSON file is loaded. If the
// file cannot be read or contains invalid JSON, the function panics.
func parseJson(config *Config) {

	// try flags
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.Addr = c.Addr
	config.DatabaseDSN = c.DatabaseDSN
	config.Storage = c.Storage
	config.DataDir = c.DataDir
	config.MaxUploadBytes = c.MaxUploadBytes
	config.APIKey = c.APIKey
	config.S3Bucket = c.S3Bucket
	config.S3Prefix = c.S3Prefix
	config.S3Region = c.S3Region
	config.S3BaseEndpoint = c.S3BaseEndpoint
	config.S3AccessKey = c.S3AccessKey
	config.S3SecretKey = c.S3SecretKey
}
