package core

import (
	"context"
	"fmt"
	"maps"
	"strings"

	"github.com/goliatone/go-config/cfgx"
	opts "github.com/goliatone/go-options"
)

// StaticRawConfigLoader serves a fixed raw configuration map, such as the
// service section of a CLI config file.
type StaticRawConfigLoader struct {
	Values map[string]any
}

func (l StaticRawConfigLoader) LoadRaw(context.Context) (map[string]any, error) {
	out := make(map[string]any, len(l.Values))
	maps.Copy(out, l.Values)
	return out, nil
}

// CfgxConfigProvider decodes a raw map into Config with cfgx, starting from
// the defaults it is given.
type CfgxConfigProvider struct {
	Loader RawConfigLoader
}

func NewCfgxConfigProvider(loader RawConfigLoader) *CfgxConfigProvider {
	return &CfgxConfigProvider{Loader: loader}
}

func (p *CfgxConfigProvider) Load(ctx context.Context, defaults Config) (Config, error) {
	if p == nil {
		return defaults, nil
	}
	var loader RawConfigLoader = StaticRawConfigLoader{}
	if p.Loader != nil {
		loader = p.Loader
	}
	raw, err := loader.LoadRaw(ctx)
	if err != nil {
		return Config{}, fmt.Errorf("core: load raw config: %w", err)
	}
	return buildConfig(raw, defaults)
}

func buildConfig(raw map[string]any, defaults Config) (Config, error) {
	return cfgx.Build[Config](raw,
		cfgx.WithDefaults(defaults),
		cfgx.WithValidator[Config]((*Config).Validate),
	)
}

// GoOptionsResolver stacks defaults, loaded config and runtime overrides in
// go-options scopes of increasing priority. Zero fields of the loaded and
// runtime layers do not override lower layers.
type GoOptionsResolver struct{}

func (GoOptionsResolver) Resolve(defaults Config, loaded Config, runtime Config) (Config, error) {
	stack, err := opts.NewStack(
		opts.NewLayer(opts.NewScope("defaults", 0), configLayer(defaults, true),
			opts.WithSnapshotID[map[string]any]("defaults")),
		opts.NewLayer(opts.NewScope("config", 10), configLayer(loaded, false),
			opts.WithSnapshotID[map[string]any]("config")),
		opts.NewLayer(opts.NewScope("runtime", 20), configLayer(runtime, false),
			opts.WithSnapshotID[map[string]any]("runtime")),
	)
	if err != nil {
		return Config{}, fmt.Errorf("core: build options stack: %w", err)
	}
	merged, err := stack.Merge()
	if err != nil {
		return Config{}, fmt.Errorf("core: merge options: %w", err)
	}
	return buildConfig(merged.Value, defaults)
}

// configLayer flattens cfg into the nested map shape cfgx decodes. With
// keepZero false, blank strings and non-positive numbers are left out.
func configLayer(cfg Config, keepZero bool) map[string]any {
	text := func(dst map[string]any, key, value string) {
		if keepZero || strings.TrimSpace(value) != "" {
			dst[key] = value
		}
	}
	number := func(dst map[string]any, key string, value int64) {
		if keepZero || value > 0 {
			dst[key] = value
		}
	}

	layer := map[string]any{}
	text(layer, "service_name", cfg.ServiceName)

	transport := map[string]any{}
	text(transport, "kind", cfg.Transport.Kind)
	number(transport, "timeout_seconds", int64(cfg.Transport.TimeoutSeconds))
	number(transport, "max_response_body_bytes", cfg.Transport.MaxResponseBodyBytes)
	text(transport, "user_agent", cfg.Transport.UserAgent)
	if len(transport) > 0 {
		layer["transport"] = transport
	}

	providers := map[string]any{}
	for id, provider := range cfg.Providers {
		entry := map[string]any{}
		text(entry, "endpoint", provider.Endpoint)
		text(entry, "api_version", provider.APIVersion)
		if len(entry) > 0 {
			providers[id] = entry
		}
	}
	if keepZero || len(providers) > 0 {
		layer["providers"] = providers
	}
	return layer
}
