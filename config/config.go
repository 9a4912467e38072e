package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvMember     = "CINEMA_MEMBER"
	EnvSpecialDay = "CINEMA_SPECIAL_DAY"
	EnvCatalog    = "CINEMA_CATALOG"
	EnvLogLevel   = "CINEMA_LOG_LEVEL"
	EnvTUI        = "CINEMA_TUI"
)

// Config holds the session settings. Flags override these values.
type Config struct {
	Member     bool
	SpecialDay bool
	Catalog    string
	LogLevel   slog.Level
	TUI        bool
}

func Default() Config {
	return Config{
		Member:     true,
		SpecialDay: true,
		LogLevel:   slog.LevelWarn,
	}
}

// Load reads a .env file from the working directory when present and then
// the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv(os.LookupEnv)
}

// FromEnv builds a Config from a lookup function such as os.LookupEnv.
func FromEnv(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	var err error
	if cfg.Member, err = boolEnv(lookup, EnvMember, cfg.Member); err != nil {
		return Config{}, err
	}
	if cfg.SpecialDay, err = boolEnv(lookup, EnvSpecialDay, cfg.SpecialDay); err != nil {
		return Config{}, err
	}
	if cfg.TUI, err = boolEnv(lookup, EnvTUI, cfg.TUI); err != nil {
		return Config{}, err
	}
	if v, ok := lookup(EnvCatalog); ok {
		cfg.Catalog = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvLogLevel); ok && strings.TrimSpace(v) != "" {
		if cfg.LogLevel, err = ParseLogLevel(v); err != nil {
			return Config{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
		}
	}
	return cfg, nil
}

// ParseLogLevel accepts debug, info, warn or error.
func ParseLogLevel(value string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q", value)
	}
	return level, nil
}

func boolEnv(lookup func(string) (string, bool), key string, fallback bool) (bool, error) {
	v, ok := lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		return fallback, fmt.Errorf("%s: invalid boolean %q", key, v)
	}
	return b, nil
}
