package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// ErrNoConfigVersion is returned when the config file does not declare its
// format version.
var ErrNoConfigVersion = errors.New("config format version not specified")

// ErrUnsupportedVersion is returned for config files written in another
// format version.
var ErrUnsupportedVersion = errors.New("unsupported config format version")

// ConfigFormatVersion is the config file format understood by this binary.
const ConfigFormatVersion = "v1"

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite3"
)

// Config is the clouds CLI configuration.
type Config struct {
	Version string `yaml:"version"`
	Debug   bool   `yaml:"debug"`

	// Service is handed to the core config loader unchanged, so it follows
	// the service_name/transport/providers layout of the library.
	Service map[string]any `yaml:"service"`

	Database DatabaseConfig `yaml:"database"`
	Secrets  SecretsConfig  `yaml:"secrets"`
	Cache    CacheConfig    `yaml:"cache"`
}

// DatabaseConfig selects where node logins are persisted. An empty DSN keeps
// them in memory for the lifetime of the command.
type DatabaseConfig struct {
	Driver  string `yaml:"driver"`
	DSN     string `yaml:"dsn"`
	Migrate bool   `yaml:"migrate"`
}

type SecretsConfig struct {
	AppKey  string `yaml:"app_key"`
	KeyID   string `yaml:"key_id"`
	Version int    `yaml:"version"`
}

type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	TTLSeconds int  `yaml:"ttl_seconds"`
}

func DefaultConfig() *Config {
	return &Config{
		Version:  ConfigFormatVersion,
		Service:  map[string]any{},
		Database: DatabaseConfig{Driver: driverSQLite, Migrate: true},
		Secrets:  SecretsConfig{KeyID: "clouds-cli", Version: 1},
		Cache:    CacheConfig{Enabled: true, TTLSeconds: 60},
	}
}

// Parse reads the config from path. Sections missing from the file keep
// their defaults.
func Parse(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

func ParseBytes(data []byte) (*Config, error) {
	conf := DefaultConfig()
	conf.Version = ""
	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, err
	}

	if conf.Version == "" {
		return nil, ErrNoConfigVersion
	}
	if conf.Version != ConfigFormatVersion {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedVersion, conf.Version)
	}
	if conf.Service == nil {
		conf.Service = map[string]any{}
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return conf, nil
}

func (c *Config) Validate() error {
	switch strings.TrimSpace(c.Database.Driver) {
	case driverPostgres, driverSQLite:
	case "":
		return fmt.Errorf("database.driver is required")
	default:
		return fmt.Errorf("database.driver %q is not supported", c.Database.Driver)
	}
	if strings.TrimSpace(c.Database.DSN) != "" && strings.TrimSpace(c.Secrets.AppKey) == "" {
		return fmt.Errorf("secrets.app_key is required when database.dsn is set")
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must be >= 0")
	}
	return nil
}
