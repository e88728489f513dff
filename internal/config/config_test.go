package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, c.EndpointAddrHTTP, ":8080")
	assert.Equal(t, c.StorageBackend, BackendFile)
	assert.Equal(t, c.DataPath, "complianceos.json")
	assert.Equal(t, c.CORSOrigins, []string{"http://localhost:5173"})
	assert.Equal(t, c.ShutdownTimeout, 5*time.Second)
	assert.Equal(t, c.LogLevel, "info")
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	c := LoadConfig()

	require.NotNil(t, c, "LoadConfig must not return nil")

	assert.Equal(t, c.EndpointAddrHTTP, ":8080")
	assert.Equal(t, c.StorageBackend, BackendFile)
	assert.Equal(t, c.DataPath, "complianceos.json")
	assert.Equal(t, c.CORSOrigins, []string{"http://localhost:5173"})
	assert.Equal(t, c.ShutdownTimeout, 5*time.Second)
	assert.Equal(t, c.LogLevel, "info")
}
