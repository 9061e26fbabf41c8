package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// parseEnv overlays Config fields from environment variables. An optional
// .env file in the working directory is loaded first; a missing file is not
// an error. Variables that are unset leave the current value in place.
func parseEnv(config *Config) {
	_ = godotenv.Load()

	setString(&config.Addr, "PAPERDROP_ADDR")
	setString(&config.DatabaseDSN, "PAPERDROP_DATABASE_DSN")
	setString(&config.Storage, "PAPERDROP_STORAGE")
	setString(&config.DataDir, "PAPERDROP_DATA_DIR")
	setString(&config.APIKey, "PAPERDROP_API_KEY")
	setString(&config.S3Bucket, "PAPERDROP_S3_BUCKET")
	setString(&config.S3Prefix, "PAPERDROP_S3_PREFIX")
	setString(&config.S3Region, "PAPERDROP_S3_REGION")
	setString(&config.S3BaseEndpoint, "PAPERDROP_S3_BASE_ENDPOINT")
	setString(&config.S3AccessKey, "PAPERDROP_S3_ACCESS_KEY")
	setString(&config.S3SecretKey, "PAPERDROP_S3_SECRET_KEY")

	if v, ok := os.LookupEnv("PAPERDROP_MAX_UPLOAD_BYTES"); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			config.MaxUploadBytes = n
		}
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*dst = v
	}
}
