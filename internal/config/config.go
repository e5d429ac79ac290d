package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Input file names are fixed by the upstream data drop; DATA_DIR points at
// the directory holding them, and the per-file variables exist only for the
// odd environment that renames one.
const (
	defaultTrafficFile   = "Summary_By_Origin_Airport.csv"
	defaultLocationsFile = "airports_location.csv"
	defaultFaresFile     = "AverageFare_USA.csv"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	TrafficCSV   string
	LocationsCSV string
	FaresCSV     string

	// AnchorCities are always re-included in top-N ranked views.
	AnchorCities []string
	// DefaultFare substitutes for an unknown average fare in ranked rows.
	DefaultFare float64
}

// Load reads configuration from the environment, applying defaults where
// unset. A .env file in the working directory is folded in first when
// present.
func Load() (*Config, error) {
	_ = godotenv.Load() // best effort; absence is the normal case

	shutdownTimeout, err := parseDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	defaultFare, err := parseDefaultFare()
	if err != nil {
		return nil, err
	}

	dataDir := envOrDefault("DATA_DIR", "data")

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,

		TrafficCSV:   envOrDefault("TRAFFIC_CSV", filepath.Join(dataDir, defaultTrafficFile)),
		LocationsCSV: envOrDefault("LOCATIONS_CSV", filepath.Join(dataDir, defaultLocationsFile)),
		FaresCSV:     envOrDefault("FARES_CSV", filepath.Join(dataDir, defaultFaresFile)),

		AnchorCities: splitList(os.Getenv("ANCHOR_CITIES")),
		DefaultFare:  defaultFare,
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}
	if cfg.TrafficCSV == "" || cfg.LocationsCSV == "" || cfg.FaresCSV == "" {
		return nil, errors.New("TRAFFIC_CSV, LOCATIONS_CSV, and FARES_CSV must not be empty")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key, fallback string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, fallback))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parseDefaultFare() (float64, error) {
	s := os.Getenv("DEFAULT_FARE")
	if s == "" {
		return 100, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return 0, errors.New("invalid DEFAULT_FARE")
	}
	return v, nil
}

// splitList parses a comma-separated list, trimming entries and dropping
// empties.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
