package config

import (
	"flag"
	"os"
	"time"

	"github.com/juralis/paperdrop/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the intake server
//	-d string   path of the local queue database
//	-k string   static API key
//	-i int      reachability probe interval in seconds
//	-t int      upload timeout in seconds
//
// Note: The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	// Filter args to include only those handled here.
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-i", "-t"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "base URL of the intake server")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "path of the local queue database")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "static API key")
	probeInterval := fs.Int("i", int(cfg.ProbeInterval.Seconds()), "probe interval (in seconds)")
	uploadTimeout := fs.Int("t", int(cfg.UploadTimeout.Seconds()), "upload timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.ProbeInterval = time.Duration(*probeInterval) * time.Second
	cfg.UploadTimeout = time.Duration(*uploadTimeout) * time.Second
}
