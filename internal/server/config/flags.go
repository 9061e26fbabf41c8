package config

import (
	"flag"
	"os"

	"github.com/juralis/paperdrop/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN; empty selects in-memory repositories
//	-s string   storage backend ("local", "s3" or "memory")
//	-f string   local file store directory
//	-m int      upload body limit, bytes
//	-k string   static API key for the X-Api-Key check
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	// Filter args to include only the flags handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-f", "-m", "-k"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.Addr, "a", config.Addr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.Storage, "s", config.Storage, "storage backend")
	fs.StringVar(&config.DataDir, "f", config.DataDir, "file store directory")
	fs.Int64Var(&config.MaxUploadBytes, "m", config.MaxUploadBytes, "upload body limit in bytes")
	fs.StringVar(&config.APIKey, "k", config.APIKey, "static API key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
