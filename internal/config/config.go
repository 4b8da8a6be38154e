// Package config loads Compendium settings from the environment.
package config

import (
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/FocuswithJustin/Compendium/core/errors"
	"github.com/FocuswithJustin/Compendium/internal/logging"
)

// Config holds process-wide settings. Command-line flags default to these
// values, so the environment only supplies defaults.
type Config struct {
	MaxDepth       int           `env:"COMPENDIUM_MAX_DEPTH"       envDefault:"64"`
	LogLevel       string        `env:"COMPENDIUM_LOG_LEVEL"       envDefault:"info"`
	LogFormat      string        `env:"COMPENDIUM_LOG_FORMAT"      envDefault:"text"`
	CacheSize      int           `env:"COMPENDIUM_CACHE_SIZE"      envDefault:"256"`
	CacheTTL       time.Duration `env:"COMPENDIUM_CACHE_TTL"       envDefault:"10m"`
	CacheDB        string        `env:"COMPENDIUM_CACHE_DB"`
	Port           int           `env:"COMPENDIUM_PORT"            envDefault:"8080"`
	RateLimit      int           `env:"COMPENDIUM_RATE_LIMIT"      envDefault:"120"`
	AllowedOrigins []string      `env:"COMPENDIUM_ALLOWED_ORIGINS" envSeparator:","`
}

const maxDepthCeiling = 1024

// Load reads the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	return cfg, cfg.Validate()
}

// LoadFrom reads settings from environ instead of the process environment.
func LoadFrom(environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, errors.Wrap(err, "parse env")
	}
	return cfg, cfg.Validate()
}

// Validate checks that every setting is in range.
func (c Config) Validate() error {
	if c.MaxDepth < 1 || c.MaxDepth > maxDepthCeiling {
		return errors.NewValidation("COMPENDIUM_MAX_DEPTH", "must be between 1 and 1024")
	}
	if c.CacheSize < 0 {
		return errors.NewValidation("COMPENDIUM_CACHE_SIZE", "must not be negative")
	}
	if c.CacheTTL < 0 {
		return errors.NewValidation("COMPENDIUM_CACHE_TTL", "must not be negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return errors.NewValidation("COMPENDIUM_PORT", "must be a TCP port")
	}
	if c.RateLimit < 0 {
		return errors.NewValidation("COMPENDIUM_RATE_LIMIT", "must not be negative")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return errors.NewValidation("COMPENDIUM_LOG_LEVEL", err.Error())
	}
	if _, err := logging.ParseFormat(c.LogFormat); err != nil {
		return errors.NewValidation("COMPENDIUM_LOG_FORMAT", err.Error())
	}
	return nil
}

// InitLogging configures the global logger from LogLevel and LogFormat.
func (c Config) InitLogging() {
	level, _ := logging.ParseLevel(c.LogLevel)
	format, _ := logging.ParseFormat(c.LogFormat)
	logging.InitLogger(level, format)
}
