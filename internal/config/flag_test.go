package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {

	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "Test1 OK", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-b", "badger", "-f", "/var/lib/complianceos",
			"-o", "http://a.example,http://b.example", "-l", "debug",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddrHTTP: "127.0.0.1:9090",
				StorageBackend:   BackendBadger,
				DataPath:         "/var/lib/complianceos",
				CORSOrigins:      []string{"http://a.example", "http://b.example"},
				LogLevel:         "debug",
			}},
		{name: "Test2 unknown flags ignored", args: []string{"cmd",
			"-a", ":7070", "-x", "whatever",
		}, expectPanic: false,
			expected: &Config{
				EndpointAddrHTTP: ":7070",
			}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Equal(t, tt.expected, config)
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseFlags_KeepsDefaultsWhenAbsent(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
	os.Args = []string{"cmd"}

	config := &Config{}
	config.LoadDefaults()
	parseFlags(config)

	assert.Equal(t, ":8080", config.EndpointAddrHTTP)
	assert.Equal(t, BackendFile, config.StorageBackend)
	assert.Equal(t, "complianceos.json", config.DataPath)
	assert.Equal(t, []string{"http://localhost:5173"}, config.CORSOrigins)
	assert.Equal(t, 5*time.Second, config.ShutdownTimeout)
	assert.Equal(t, "info", config.LogLevel)
}
