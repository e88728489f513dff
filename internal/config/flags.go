package config

import (
	"flag"
	"os"
	"strings"

	"github.com/complianceos/complianceos/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-b string   storage backend: "file" or "badger"
//	-f string   data path (snapshot file or badger directory)
//	-o string   comma-separated CORS origins
//	-l string   log level (debug, info, warn, error)
//
// The function filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-b", "-f", "-o", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.EndpointAddrHTTP, "a", cfg.EndpointAddrHTTP, "address and port to run server")
	backend := fs.String("b", string(cfg.StorageBackend), "storage backend (file|badger)")
	fs.StringVar(&cfg.DataPath, "f", cfg.DataPath, "data path (snapshot file or badger directory)")
	origins := fs.String("o", strings.Join(cfg.CORSOrigins, ","), "comma-separated CORS origins")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.StorageBackend = Backend(*backend)
	if *origins == "" {
		cfg.CORSOrigins = nil
	} else {
		cfg.CORSOrigins = strings.Split(*origins, ",")
	}
}
