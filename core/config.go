package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

type TransportConfig struct {
	Kind                 string `koanf:"kind" mapstructure:"kind"`
	TimeoutSeconds       int    `koanf:"timeout_seconds" mapstructure:"timeout_seconds"`
	MaxResponseBodyBytes int64  `koanf:"max_response_body_bytes" mapstructure:"max_response_body_bytes"`
	UserAgent            string `koanf:"user_agent" mapstructure:"user_agent"`
}

func (c TransportConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type ProviderConfig struct {
	Endpoint   string `koanf:"endpoint" mapstructure:"endpoint"`
	APIVersion string `koanf:"api_version" mapstructure:"api_version"`
}

type Config struct {
	ServiceName string                    `koanf:"service_name" mapstructure:"service_name"`
	Transport   TransportConfig           `koanf:"transport" mapstructure:"transport"`
	Providers   map[string]ProviderConfig `koanf:"providers" mapstructure:"providers"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "clouds",
		Transport: TransportConfig{
			Kind:                 "rest",
			TimeoutSeconds:       30,
			MaxResponseBodyBytes: 10 << 20,
			UserAgent:            "go-clouds",
		},
		Providers: map[string]ProviderConfig{},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if c.Transport.TimeoutSeconds < 0 {
		return fmt.Errorf("core: transport.timeout_seconds must be >= 0")
	}
	if c.Transport.MaxResponseBodyBytes < 0 {
		return fmt.Errorf("core: transport.max_response_body_bytes must be >= 0")
	}
	for id, provider := range c.Providers {
		if strings.TrimSpace(id) == "" {
			return fmt.Errorf("core: provider config id is required")
		}
		endpoint := strings.TrimSpace(provider.Endpoint)
		if endpoint == "" {
			continue
		}
		parsed, err := url.Parse(endpoint)
		if err != nil || !parsed.IsAbs() || parsed.Host == "" {
			return fmt.Errorf("core: providers.%s.endpoint is invalid: %q", id, endpoint)
		}
	}
	return nil
}

// Endpoint returns the configured endpoint for providerID, falling back to
// fallback when none is configured.
func (c Config) Endpoint(providerID string, fallback string) string {
	if provider, ok := c.Providers[strings.TrimSpace(providerID)]; ok {
		if endpoint := strings.TrimSpace(provider.Endpoint); endpoint != "" {
			return endpoint
		}
	}
	return strings.TrimSpace(fallback)
}
