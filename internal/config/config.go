// Package config manages e2ectl configuration using koanf/v2.
//
// Supports YAML files and environment variable overrides, layered on top
// of built-in defaults.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// -------------------------------------------------------------------------
// Configuration Structures
// -------------------------------------------------------------------------

// Config holds the complete e2ectl configuration: a bank of named E2E
// profile instances plus the ambient logging/metrics settings.
type Config struct {
	Metrics  MetricsConfig   `koanf:"metrics"`
	Log      LogConfig       `koanf:"log"`
	Profiles []ProfileConfig `koanf:"profiles"`
}

// MetricsConfig holds the Prometheus metrics endpoint configuration for
// `e2ectl serve`.
type MetricsConfig struct {
	// Addr is the HTTP listen address for the metrics endpoint (e.g., ":9100").
	Addr string `koanf:"addr"`
	// Path is the URL path for the metrics endpoint (e.g., "/metrics").
	Path string `koanf:"path"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level is the log level: "debug", "info", "warn", "error".
	Level string `koanf:"level"`
	// Format is the log output format: "json" or "text".
	Format string `koanf:"format"`
}

// ProfileConfig describes one named E2E profile instance from the
// configuration file. Each entry is resolved by `cmd/e2ectl` into a
// concrete e2e.ProfileN instance via e2e.NewProfileN.
type ProfileConfig struct {
	// Name identifies this configuration entry for the CLI's --profile
	// flag (e.g., "can-speed-signal").
	Name string `koanf:"name"`

	// Kind selects which of the nine profiles this entry configures:
	// "4", "4m", "5", "6", "7", "7m", "8", "11", or "22".
	Kind string `koanf:"kind"`

	// DataID is the profile's Data ID. Interpreted as the low 16, or 32
	// bits depending on Kind; profile 22 ignores this in favor of
	// DataIDList.
	DataID uint32 `koanf:"data_id"`

	// DataIDList is profile 22's 16-entry Data-ID lookup table.
	DataIDList []uint8 `koanf:"data_id_list"`

	// SourceID and MessageType are consulted only for kinds "4m"/"7m".
	SourceID    uint16 `koanf:"source_id"`
	MessageType uint16 `koanf:"message_type"`

	// DataLength is the fixed buffer length in bits, used by the
	// fixed-length profiles (4, 4m are dynamic; 5, 11, 22 are fixed;
	// 6, 7, 7m, 8 are dynamic).
	DataLength int `koanf:"data_length"`

	// MinDataLength and MaxDataLength bound the buffer length in bits
	// for the dynamic-length profiles.
	MinDataLength int `koanf:"min_data_length"`
	MaxDataLength int `koanf:"max_data_length"`

	// Offset is the header's bit offset within the buffer.
	Offset int `koanf:"offset"`

	// CRCOffset, CounterOffset, NibbleOffset are consulted only for
	// profile 11's independently configurable field positions.
	CRCOffset     int `koanf:"crc_offset"`
	CounterOffset int `koanf:"counter_offset"`
	NibbleOffset  int `koanf:"nibble_offset"`

	// Mode selects profile 11's "nibble" or "both" variant.
	Mode string `koanf:"mode"`

	// MaxDeltaCounter (Δ) is the largest counter gap still classified
	// as OkSomeLost.
	MaxDeltaCounter uint32 `koanf:"max_delta_counter"`
}

// -------------------------------------------------------------------------
// Defaults
// -------------------------------------------------------------------------

// DefaultConfig returns a Config populated with sensible defaults for the
// ambient CLI settings. The profile bank itself has no meaningful
// default and is always read from the configuration file.
func DefaultConfig() *Config {
	return &Config{
		Metrics: MetricsConfig{
			Addr: ":9100",
			Path: "/metrics",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// -------------------------------------------------------------------------
// Loader
// -------------------------------------------------------------------------

// envPrefix is the environment variable prefix for e2ectl configuration.
// Variables are named E2ECTL_<section>_<key>, e.g., E2ECTL_METRICS_ADDR.
const envPrefix = "E2ECTL_"

// Load reads configuration from a YAML file at path, overlays environment
// variable overrides (E2ECTL_ prefix), and merges on top of
// DefaultConfig(). Missing ambient fields inherit defaults; the profile
// bank has no default and must come from path.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	defaults := DefaultConfig()
	if err := loadDefaults(k, defaults); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("load config from %s: %w", path, err)
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKeyMapper), nil); err != nil {
		return nil, fmt.Errorf("load env overrides: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config from %s: %w", path, err)
	}

	return cfg, nil
}

// envKeyMapper transforms E2ECTL_METRICS_ADDR -> metrics.addr.
func envKeyMapper(s string) string {
	s = strings.TrimPrefix(s, envPrefix)
	s = strings.ToLower(s)
	return strings.ReplaceAll(s, "_", ".")
}

func loadDefaults(k *koanf.Koanf, defaults *Config) error {
	defaultMap := map[string]any{
		"metrics.addr": defaults.Metrics.Addr,
		"metrics.path": defaults.Metrics.Path,
		"log.level":    defaults.Log.Level,
		"log.format":   defaults.Log.Format,
	}

	for key, val := range defaultMap {
		if err := k.Set(key, val); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

// -------------------------------------------------------------------------
// Validation
// -------------------------------------------------------------------------

var (
	// ErrEmptyProfileName indicates a profile entry has no name.
	ErrEmptyProfileName = errors.New("profile name must not be empty")

	// ErrUnknownProfileKind indicates a profile entry's kind does not
	// name one of the nine supported profiles.
	ErrUnknownProfileKind = errors.New("profile kind must be one of 4, 4m, 5, 6, 7, 7m, 8, 11, 22")

	// ErrDuplicateProfileName indicates two profile entries share a name.
	ErrDuplicateProfileName = errors.New("duplicate profile name")
)

// ValidProfileKinds lists the recognized profile kind strings.
var ValidProfileKinds = map[string]bool{
	"4": true, "4m": true, "5": true, "6": true,
	"7": true, "7m": true, "8": true, "11": true, "22": true,
}

// Validate checks the configuration for logical errors. Returns the
// first validation error encountered.
func Validate(cfg *Config) error {
	seen := make(map[string]struct{}, len(cfg.Profiles))
	for i, pc := range cfg.Profiles {
		if pc.Name == "" {
			return fmt.Errorf("profiles[%d]: %w", i, ErrEmptyProfileName)
		}
		if !ValidProfileKinds[pc.Kind] {
			return fmt.Errorf("profiles[%d] %q kind %q: %w", i, pc.Name, pc.Kind, ErrUnknownProfileKind)
		}
		if _, dup := seen[pc.Name]; dup {
			return fmt.Errorf("profiles[%d] name %q: %w", i, pc.Name, ErrDuplicateProfileName)
		}
		seen[pc.Name] = struct{}{}
	}
	return nil
}

// -------------------------------------------------------------------------
// Log Level Parsing
// -------------------------------------------------------------------------

// ParseLogLevel maps a configuration log level string to the corresponding
// slog.Level. Unknown values default to slog.LevelInfo.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
