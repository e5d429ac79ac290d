package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, filepath.Join("data", "Summary_By_Origin_Airport.csv"), cfg.TrafficCSV)
	assert.Equal(t, filepath.Join("data", "airports_location.csv"), cfg.LocationsCSV)
	assert.Equal(t, filepath.Join("data", "AverageFare_USA.csv"), cfg.FaresCSV)
	assert.Empty(t, cfg.AnchorCities)
	assert.Equal(t, 100.0, cfg.DefaultFare)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("DATA_DIR", "/srv/traffic")
	t.Setenv("FARES_CSV", "/srv/other/fares.csv")
	t.Setenv("ANCHOR_CITIES", "Atlanta, Chicago ,Denver,")
	t.Setenv("DEFAULT_FARE", "85.5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, filepath.Join("/srv/traffic", "Summary_By_Origin_Airport.csv"), cfg.TrafficCSV)
	assert.Equal(t, "/srv/other/fares.csv", cfg.FaresCSV)
	assert.Equal(t, []string{"Atlanta", "Chicago", "Denver"}, cfg.AnchorCities)
	assert.Equal(t, 85.5, cfg.DefaultFare)
}

func TestLoad_InvalidShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "not-a-duration")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUTDOWN_TIMEOUT")
}

func TestLoad_NegativeShutdownTimeout(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "-1s")
	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidDefaultFare(t *testing.T) {
	t.Setenv("DEFAULT_FARE", "zero")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_FARE")
}

func TestLoad_NonPositiveDefaultFare(t *testing.T) {
	t.Setenv("DEFAULT_FARE", "0")
	_, err := Load()
	require.Error(t, err)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", nil},
		{"single", "Atlanta", []string{"Atlanta"}},
		{"trims and drops empties", " Atlanta ,, Chicago ", []string{"Atlanta", "Chicago"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, splitList(tt.input))
		})
	}
}
