// Package config holds the digipath runtime configuration: defaults, a YAML
// file layered on top, and struct-tag validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

var validate = validator.New()

// Config is the full runtime configuration.
type Config struct {
	// DatasetDir is the directory Load reads the dataset from.
	DatasetDir string `yaml:"dataset_dir" validate:"required"`

	HTTP  HTTPConfig  `yaml:"http"`
	Log   LogConfig   `yaml:"log"`
	Relay RelayConfig `yaml:"relay"`
	Cache CacheConfig `yaml:"cache"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr            string        `yaml:"addr" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
}

// LogConfig configures the logger.
type LogConfig struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// RelayConfig configures the search worker pool.
type RelayConfig struct {
	// Workers bounds concurrent searches.
	Workers int `yaml:"workers" validate:"gte=1,lte=256"`
	// MaxExpansions caps frontier pops per search; 0 means unlimited.
	MaxExpansions int `yaml:"max_expansions" validate:"gte=0"`
	// Timeout bounds how long a caller waits for a result; 0 means no limit.
	Timeout time.Duration `yaml:"timeout" validate:"gte=0"`
}

// CacheConfig configures the result cache. An empty RedisAddr disables it.
type CacheConfig struct {
	RedisAddr string        `yaml:"redis_addr" validate:"omitempty,hostname_port"`
	TTL       time.Duration `yaml:"ttl" validate:"gte=0"`
	Prefix    string        `yaml:"prefix"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DatasetDir: "data",
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Relay: RelayConfig{
			Workers:       4,
			MaxExpansions: 2_000_000,
			Timeout:       30 * time.Second,
		},
		Cache: CacheConfig{
			TTL:    time.Hour,
			Prefix: "digipath:",
		},
	}
}

// Load returns Default overlaid with the YAML file at path, validated.
// An empty path yields the validated defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, cfg.Validate()
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks every field against its tags.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	return nil
}
