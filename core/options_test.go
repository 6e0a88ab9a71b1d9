package core

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

type fixedConfigProvider struct {
	cfg Config
}

func (p *fixedConfigProvider) Load(context.Context, Config) (Config, error) {
	return p.cfg, nil
}

type fixedOptionsResolver struct {
	cfg Config
}

func (r *fixedOptionsResolver) Resolve(Config, Config, Config) (Config, error) {
	return r.cfg, nil
}

type recordingTransportResolver struct {
	kind   string
	config map[string]any
}

func (r *recordingTransportResolver) Build(kind string, config map[string]any) (TransportAdapter, error) {
	r.kind = kind
	r.config = config
	return newScriptedTransport(), nil
}

func TestNewService_DefaultDependencies(t *testing.T) {
	svc, err := NewService(Config{}, WithTransport(newScriptedTransport()))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	deps := svc.Dependencies()
	if deps.Logger == nil {
		t.Fatalf("expected default logger")
	}
	if deps.LoggerProvider == nil {
		t.Fatalf("expected default logger provider")
	}
	if deps.ErrorFactory == nil {
		t.Fatalf("expected default error factory")
	}
	if deps.ErrorMapper == nil {
		t.Fatalf("expected default error mapper")
	}
	if deps.ConfigProvider == nil {
		t.Fatalf("expected default config provider")
	}
	if deps.OptionsResolver == nil {
		t.Fatalf("expected default options resolver")
	}
	if deps.Registry == nil {
		t.Fatalf("expected default registry")
	}
	if got := svc.Config().ServiceName; got != "clouds" {
		t.Fatalf("expected default config service_name=clouds, got %q", got)
	}
	if got := svc.Config().Transport.TimeoutSeconds; got != 30 {
		t.Fatalf("expected default timeout 30, got %d", got)
	}
}

func TestNewService_RequiresTransport(t *testing.T) {
	if _, err := NewService(Config{}); err == nil {
		t.Fatalf("expected error without transport or resolver")
	}
}

func TestNewService_WithXOverrides(t *testing.T) {
	customLogger := stubLogger{}
	customProvider := stubLoggerProvider{logger: customLogger}
	customFactory := func(message string, category ...goerrors.Category) *goerrors.Error {
		return goerrors.New("custom:"+message, category...)
	}
	sentinel := errors.New("sentinel")
	customMapper := func(error) *goerrors.Error {
		return goerrors.Wrap(sentinel, goerrors.CategoryOperation, "mapped")
	}
	configProvider := &fixedConfigProvider{cfg: Config{ServiceName: "from-provider"}}
	optionsResolver := &fixedOptionsResolver{cfg: Config{ServiceName: "resolved"}}
	transport := newScriptedTransport()

	svc, err := NewService(Config{ServiceName: "runtime"},
		WithLogger(customLogger),
		WithLoggerProvider(customProvider),
		WithErrorFactory(customFactory),
		WithErrorMapper(customMapper),
		WithConfigProvider(configProvider),
		WithOptionsResolver(optionsResolver),
		WithTransport(transport),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	deps := svc.Dependencies()
	if deps.Logger != customLogger {
		t.Fatalf("expected custom logger override")
	}
	if resolved := deps.LoggerProvider.GetLogger("clouds.override"); resolved != customLogger {
		t.Fatalf("expected logger provider to resolve custom logger")
	}
	if deps.ConfigProvider != configProvider {
		t.Fatalf("expected custom config provider override")
	}
	if deps.OptionsResolver != optionsResolver {
		t.Fatalf("expected custom options resolver override")
	}
	if deps.Transport != transport {
		t.Fatalf("expected pinned transport")
	}
	if got := svc.Config().ServiceName; got != "resolved" {
		t.Fatalf("expected options resolver output config, got %q", got)
	}

	_, err = svc.Authenticate(context.Background(), AuthenticateRequest{ProviderID: "missing"})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected custom mapper to wrap errors, got %v", err)
	}
}

func TestNewService_ConfigLayeringPrecedence(t *testing.T) {
	provider := NewCfgxConfigProvider(mapRawLoader{values: map[string]any{
		"service_name": "from-config",
		"transport": map[string]any{
			"timeout_seconds": 5,
		},
		"providers": map[string]any{
			"openstack-nova": map[string]any{
				"endpoint": "https://keystone.example.com/v2.0",
			},
		},
	}})

	svc, err := NewService(Config{ServiceName: "from-runtime"},
		WithConfigProvider(provider),
		WithTransport(newScriptedTransport()),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	cfg := svc.Config()
	if cfg.ServiceName != "from-runtime" {
		t.Fatalf("expected runtime value to override config/default, got %q", cfg.ServiceName)
	}
	if cfg.Transport.TimeoutSeconds != 5 {
		t.Fatalf("expected config layer timeout, got %d", cfg.Transport.TimeoutSeconds)
	}
	if cfg.Transport.Kind != "rest" {
		t.Fatalf("expected default transport kind to survive, got %q", cfg.Transport.Kind)
	}
	if got := cfg.Endpoint("openstack-nova", ""); got != "https://keystone.example.com/v2.0" {
		t.Fatalf("expected provider endpoint from config layer, got %q", got)
	}
}

func TestNewService_BuildsTransportFromResolver(t *testing.T) {
	resolver := &recordingTransportResolver{}
	_, err := NewService(Config{Transport: TransportConfig{TimeoutSeconds: 12}},
		WithTransportResolver(resolver),
	)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	if resolver.kind != "rest" {
		t.Fatalf("expected rest transport kind, got %q", resolver.kind)
	}
	if _, ok := resolver.config["timeout"]; !ok {
		t.Fatalf("expected timeout in transport config: %#v", resolver.config)
	}
	if resolver.config["user_agent"] != "go-clouds" {
		t.Fatalf("expected default user agent, got %#v", resolver.config["user_agent"])
	}
}

func TestConfigValidate_RejectsRelativeProviderEndpoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Providers["vcloud-director"] = ProviderConfig{Endpoint: "/api"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected relative endpoint to be rejected")
	}
}
