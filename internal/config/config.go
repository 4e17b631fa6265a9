// Package config loads all settings from the environment. A .env file in the
// working directory is honored when present.
package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

func init() {
	// Load .env if it exists (silent fail if not).
	_ = godotenv.Load()
}

// Config holds all loot parser configuration.
type Config struct {
	Source SourceConfig
	Parse  ParseConfig
	Report ReportConfig
	Store  StoreConfig
	Log    LogConfig
}

// SourceConfig selects where raw lines come from.
type SourceConfig struct {
	Provider string `envconfig:"LOOT_SOURCE" default:"paste"` // "paste" or "logdir"
	Dir      string `envconfig:"LOOT_LOG_DIR" default:""`
	Path     string `envconfig:"LOOT_TRANSCRIPT" default:"-"`
}

// ParseConfig holds the reference clock context for event construction.
type ParseConfig struct {
	// ReferenceYear fills in the year missing from pasted chat timestamps.
	// 0 means the current year at startup.
	ReferenceYear int `envconfig:"LOOT_REFERENCE_YEAR" default:"0"`
	// Location names the timezone attached to constructed timestamps:
	// "UTC", "Local", or an IANA name.
	Location string `envconfig:"LOOT_LOCATION" default:"UTC"`
	// Strict aborts ingestion on a malformed matched line instead of
	// skipping it.
	Strict bool `envconfig:"LOOT_STRICT" default:"false"`
}

// ReportConfig selects the report to render and how.
type ReportConfig struct {
	Kind              string `envconfig:"LOOT_REPORT" default:"events"` // events, winners, totals, cumulative, averages, dabo
	Charset           string `envconfig:"LOOT_CHARSET" default:"utf-8"`
	Output            string `envconfig:"LOOT_OUTPUT" default:"-"` // file path, "-" for stdout
	Filters           string `envconfig:"LOOT_FILTERS" default:""` // "key=value;key=value"
	Regex             bool   `envconfig:"LOOT_REGEX" default:"false"`
	UTCDays           bool   `envconfig:"LOOT_UTC_DAYS" default:"false"`
	IncludeSaleLosses bool   `envconfig:"LOOT_SALE_LOSSES" default:"false"`
}

// StoreConfig holds snapshot persistence settings.
type StoreConfig struct {
	Path         string `envconfig:"LOOT_DB" default:""` // empty disables persistence
	LoadSnapshot string `envconfig:"LOOT_LOAD_SNAPSHOT" default:""`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `envconfig:"LOOT_LOG_LEVEL" default:"info"`
	JSON  bool   `envconfig:"LOOT_LOG_JSON" default:"false"`
}

// TimeLocation resolves the configured location name.
func (p ParseConfig) TimeLocation() (*time.Location, error) {
	switch p.Location {
	case "", "UTC":
		return time.UTC, nil
	case "Local":
		return time.Local, nil
	default:
		loc, err := time.LoadLocation(p.Location)
		if err != nil {
			return nil, fmt.Errorf("config: location %q: %w", p.Location, err)
		}
		return loc, nil
	}
}

// Year resolves the reference year against the supplied current moment.
func (p ParseConfig) Year(now time.Time) int {
	if p.ReferenceYear != 0 {
		return p.ReferenceYear
	}
	return now.Year()
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
