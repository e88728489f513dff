package config

import (
	"encoding/json"
	"os"

	"github.com/complianceos/complianceos/internal/flagx"
	"github.com/complianceos/complianceos/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify the shutdown timeout either as a string
// like "5s" or as integer nanoseconds. Absent fields leave the current
// (default) values untouched.
type JsonConfig struct {
	EndpointAddrHTTP *string         `json:"endpoint_addr_http"`
	StorageBackend   *string         `json:"storage_backend"`
	DataPath         *string         `json:"data_path"`
	CORSOrigins      []string        `json:"cors_origins"`
	ShutdownTimeout  *timex.Duration `json:"shutdown_timeout"`
	LogLevel         *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c/-config flags (flagx.ConfigFileFlag); when
// absent, no JSON is loaded. Read or unmarshal errors panic: a config file
// that was explicitly requested but cannot be used is a startup defect.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFileFlag()
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

	if jc.EndpointAddrHTTP != nil {
		cfg.EndpointAddrHTTP = *jc.EndpointAddrHTTP
	}
	if jc.StorageBackend != nil {
		cfg.StorageBackend = Backend(*jc.StorageBackend)
	}
	if jc.DataPath != nil {
		cfg.DataPath = *jc.DataPath
	}
	if jc.CORSOrigins != nil {
		cfg.CORSOrigins = jc.CORSOrigins
	}
	if jc.ShutdownTimeout != nil {
		cfg.ShutdownTimeout = jc.ShutdownTimeout.Duration
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
