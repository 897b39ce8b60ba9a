// Package config centralizes all application configuration into typed structs.
//
// Go Learning Note — Configuration Management:
// Defaults live in NewDefaultConfig as a struct literal. Load layers an
// optional .env file (via "github.com/joho/godotenv") and the process
// environment on top. Environment variables are bound to fields with
// `envconfig` struct tags and decoded by "github.com/kelseyhightower/envconfig",
// which parses durations, integers and comma-separated lists for us. A field
// whose variable is unset keeps its default.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config is the top-level configuration container.
//
// Go Learning Note — Struct Composition:
// Config "has a" ServerConfig, SimulationConfig, etc. Grouping related
// settings into sub-structs lets each component receive only its slice.
type Config struct {
	Server     ServerConfig
	Simulation SimulationConfig
	Assistant  AssistantConfig
	Geo        GeoConfig
	Log        LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port           string        `envconfig:"PORT"`
	ReadTimeout    time.Duration `envconfig:"READ_TIMEOUT"`
	WriteTimeout   time.Duration `envconfig:"WRITE_TIMEOUT"`
	AllowedOrigins []string      `envconfig:"ALLOWED_ORIGINS"`
}

// SimulationConfig controls the mock dispatch and trip timers.
//
// ETA and ride duration are drawn in simulated minutes from the half-open
// ranges [ETAMinMinutes, ETAMaxMinutes) and
// [DurationMinMinutes, DurationMaxMinutes). MinuteDuration is how much wall
// clock time one simulated minute takes; the demo plays a minute back in a
// second.
type SimulationConfig struct {
	SearchDelay        time.Duration `envconfig:"SEARCH_DELAY"`
	MinuteDuration     time.Duration `envconfig:"MINUTE_DURATION"`
	ETAMinMinutes      int           `envconfig:"ETA_MIN_MINUTES"`
	ETAMaxMinutes      int           `envconfig:"ETA_MAX_MINUTES"`
	DurationMinMinutes int           `envconfig:"DURATION_MIN_MINUTES"`
	DurationMaxMinutes int           `envconfig:"DURATION_MAX_MINUTES"`
	PickupAnimation    time.Duration `envconfig:"PICKUP_ANIMATION"`
	TripAnimation      time.Duration `envconfig:"TRIP_ANIMATION"`
}

// AssistantConfig configures the text-generation service used for fares and
// support chat. An empty APIKey means "unconfigured": every call falls back
// to local values.
type AssistantConfig struct {
	APIKey          string        `envconfig:"GEMINI_API_KEY"`
	Model           string        `envconfig:"GEMINI_MODEL"`
	RequestTimeout  time.Duration `envconfig:"FARE_TIMEOUT"`
	DefaultFare     float64       `envconfig:"DEFAULT_FARE"`
	FallbackFareMin int           `envconfig:"FALLBACK_FARE_MIN"`
	FallbackFareMax int           `envconfig:"FALLBACK_FARE_MAX"`
}

// GeoConfig controls geohash encoding precision for the roster listing.
// Precision 6 ≈ 1.2 km cells.
type GeoConfig struct {
	GeohashPrecision uint `envconfig:"GEOHASH_PRECISION"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL"`
}

// legacyEnv holds API_KEY, the variable the browser build read the key from.
// GEMINI_API_KEY wins when both are set.
type legacyEnv struct {
	APIKey string `envconfig:"API_KEY"`
}

// NewDefaultConfig returns a Config populated with the demo defaults.
//
// Go Learning Note — Constructor Functions:
// Go has no constructors. By convention, New<Type>() functions serve the same
// purpose and return a pointer so every component shares one Config.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:           ":8080",
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
			AllowedOrigins: []string{"*"},
		},
		Simulation: SimulationConfig{
			SearchDelay:        5 * time.Second,
			MinuteDuration:     time.Second,
			ETAMinMinutes:      5,
			ETAMaxMinutes:      15,
			DurationMinMinutes: 10,
			DurationMaxMinutes: 20,
			PickupAnimation:    5 * time.Second,
			TripAnimation:      8 * time.Second,
		},
		Assistant: AssistantConfig{
			Model:           "gemini-2.5-flash",
			RequestTimeout:  20 * time.Second,
			DefaultFare:     15.50,
			FallbackFareMin: 15,
			FallbackFareMax: 45,
		},
		Geo: GeoConfig{
			GeohashPrecision: 6,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration from defaults, an optional .env file in the
// working directory, and the environment, in increasing order of priority.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := NewDefaultConfig()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays environment variables on c. Each section is processed
// without a prefix so the variables keep their short names (PORT, not
// SERVER_PORT).
func (c *Config) applyEnv() error {
	var legacy legacyEnv
	if err := envconfig.Process("", &legacy); err != nil {
		return fmt.Errorf("parse environment: %w", err)
	}
	if legacy.APIKey != "" {
		c.Assistant.APIKey = legacy.APIKey
	}

	sections := []any{&c.Server, &c.Simulation, &c.Assistant, &c.Geo, &c.Log}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return fmt.Errorf("parse environment: %w", err)
		}
	}

	if c.Server.Port != "" && !strings.HasPrefix(c.Server.Port, ":") {
		c.Server.Port = ":" + c.Server.Port
	}
	c.Server.AllowedOrigins = trimList(c.Server.AllowedOrigins)
	return nil
}

// Validate rejects settings the simulation cannot run with.
func (c *Config) Validate() error {
	s := c.Simulation
	switch {
	case s.ETAMinMinutes <= 0 || s.ETAMaxMinutes <= s.ETAMinMinutes:
		return fmt.Errorf("invalid ETA range [%d,%d)", s.ETAMinMinutes, s.ETAMaxMinutes)
	case s.DurationMinMinutes <= 0 || s.DurationMaxMinutes <= s.DurationMinMinutes:
		return fmt.Errorf("invalid ride duration range [%d,%d)", s.DurationMinMinutes, s.DurationMaxMinutes)
	case s.SearchDelay < 0:
		return errors.New("search delay must not be negative")
	case s.MinuteDuration <= 0:
		return errors.New("minute duration must be positive")
	case s.PickupAnimation <= 0 || s.TripAnimation <= 0:
		return errors.New("animation durations must be positive")
	}

	a := c.Assistant
	if a.FallbackFareMin <= 0 || a.FallbackFareMax < a.FallbackFareMin {
		return fmt.Errorf("invalid fallback fare range [%d,%d]", a.FallbackFareMin, a.FallbackFareMax)
	}
	if a.DefaultFare <= 0 {
		return errors.New("default fare must be positive")
	}
	if c.Geo.GeohashPrecision == 0 || c.Geo.GeohashPrecision > 12 {
		return fmt.Errorf("geohash precision %d out of range 1..12", c.Geo.GeohashPrecision)
	}
	return nil
}

// trimList drops the blanks envconfig leaves around comma-separated items
// ("a, b" decodes to "a" and " b").
func trimList(items []string) []string {
	out := items[:0]
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
