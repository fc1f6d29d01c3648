package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
http:
  address: ":3000"
database:
  host: localhost
  port: 5432
  user: app
  password: secret
  name: swiftslot
  ssl_mode: disable
booking:
  lead_time_hours: 3
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.HTTP.Address)
	assert.Equal(t, "host=localhost port=5432 user=app password=secret dbname=swiftslot sslmode=disable", cfg.Database.DSN())
	assert.Equal(t, 3, cfg.Booking.LeadTimeHours)
	// Unset zone falls back to the deployment default.
	assert.Equal(t, "Africa/Lagos", cfg.Booking.Timezone)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
