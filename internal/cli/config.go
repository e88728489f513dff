package cli

import (
	"flag"
	"os"
	"time"

	"github.com/complianceos/complianceos/internal/flagx"
)

// Config holds CLI settings: where the server lives and how long to wait.
type Config struct {
	ServerAddr     string
	RequestTimeout time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerAddr = "http://localhost:8080"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config from defaults overlaid with command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)
	return cfg
}

func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-s", "-t"})

	fs := flag.NewFlagSet("cli", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerAddr, "s", cfg.ServerAddr, "server base URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
