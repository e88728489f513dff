// Package config handles configuration for the ComplianceOS server,
// including defaults, JSON overlay, and command-line flags.
package config

import "time"

// Backend selects the local persistence implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendBadger Backend = "badger"
)

// Config holds runtime settings for the server.
//
// Fields:
//   - EndpointAddrHTTP: bind address for the HTTP API.
//   - StorageBackend: "file" (single JSON file) or "badger" (embedded DB).
//   - DataPath: snapshot file path for the file backend, database directory
//     for the badger backend.
//   - CORSOrigins: origins allowed to call the API from a browser.
//   - ShutdownTimeout: how long to let in-flight requests drain.
//   - LogLevel: slog level name (debug, info, warn, error).
type Config struct {
	EndpointAddrHTTP string
	StorageBackend   Backend
	DataPath         string
	CORSOrigins      []string
	ShutdownTimeout  time.Duration
	LogLevel         string
}

// LoadDefaults populates Config with sensible development defaults.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = ":8080"
	c.StorageBackend = BackendFile
	c.DataPath = "complianceos.json"
	c.CORSOrigins = []string{"http://localhost:5173"}
	c.ShutdownTimeout = 5 * time.Second
	c.LogLevel = "info"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
