package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

var ErrProviderNotFound = errors.New("core: provider not found")

type Service struct {
	config          Config
	logger          Logger
	loggerProvider  LoggerProvider
	metricsRecorder MetricsRecorder
	errorFactory    ErrorFactory
	errorMapper     ErrorMapper
	configProvider  ConfigProvider
	optionsResolver OptionsResolver
	transport       TransportAdapter
	registry        Registry
	observer        observer
}

type ServiceDependencies struct {
	Logger          Logger
	LoggerProvider  LoggerProvider
	MetricsRecorder MetricsRecorder
	ErrorFactory    ErrorFactory
	ErrorMapper     ErrorMapper
	ConfigProvider  ConfigProvider
	OptionsResolver OptionsResolver
	Transport       TransportAdapter
	Registry        Registry
}

// AuthenticateRequest selects a registered provider and the credentials to
// exchange. Endpoint overrides the configured or default provider endpoint.
type AuthenticateRequest struct {
	ProviderID  string
	Endpoint    string
	Credentials Credentials
}

type DispatcherRequest struct {
	ProviderID     string
	Codec          Codec
	Session        SessionProvider
	Policies       *StatusPolicyTable
	ErrorDecoder   ErrorDecoder
	DefaultHeaders map[string]string
}

func NewService(cfg Config, opts ...Option) (*Service, error) {
	builder := defaultServiceBuilder(cfg)
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("clouds", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("clouds"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.registry == nil {
		registry, err := NewProviderRegistry()
		if err != nil {
			return nil, mapBuildError(builder.errorMapper, err)
		}
		builder.registry = registry
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	transport := builder.transport
	if transport == nil {
		if builder.transportResolver == nil {
			return nil, mapBuildError(builder.errorMapper, fmt.Errorf("core: transport or transport resolver is required"))
		}
		transport, err = builder.transportResolver.Build(finalConfig.Transport.Kind, map[string]any{
			"timeout":                 finalConfig.Transport.Timeout(),
			"max_response_body_bytes": finalConfig.Transport.MaxResponseBodyBytes,
			"user_agent":              finalConfig.Transport.UserAgent,
		})
		if err != nil {
			return nil, mapBuildError(builder.errorMapper, err)
		}
	}

	return &Service{
		config:          finalConfig,
		logger:          logger,
		loggerProvider:  provider,
		metricsRecorder: builder.metricsRecorder,
		errorFactory:    builder.errorFactory,
		errorMapper:     builder.errorMapper,
		configProvider:  builder.configProvider,
		optionsResolver: builder.optionsResolver,
		transport:       transport,
		registry:        builder.registry,
		observer: observer{
			logger:  logger,
			metrics: builder.metricsRecorder,
			prefix:  finalConfig.ServiceName,
		},
	}, nil
}

func Setup(cfg Config, opts ...Option) (*Service, error) {
	return NewService(cfg, opts...)
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (s *Service) Config() Config {
	if s == nil {
		return Config{}
	}
	return s.config
}

func (s *Service) Registry() Registry {
	if s == nil {
		return nil
	}
	return s.registry
}

func (s *Service) Transport() TransportAdapter {
	if s == nil {
		return nil
	}
	return s.transport
}

func (s *Service) Logger() Logger {
	if s == nil {
		return glog.Nop()
	}
	return s.logger
}

func (s *Service) Dependencies() ServiceDependencies {
	if s == nil {
		return ServiceDependencies{}
	}
	return ServiceDependencies{
		Logger:          s.logger,
		LoggerProvider:  s.loggerProvider,
		MetricsRecorder: s.metricsRecorder,
		ErrorFactory:    s.errorFactory,
		ErrorMapper:     s.errorMapper,
		ConfigProvider:  s.configProvider,
		OptionsResolver: s.optionsResolver,
		Transport:       s.transport,
		Registry:        s.registry,
	}
}

// Authenticate exchanges credentials for an Access through the selected
// provider. Each call issues exactly one authentication request.
func (s *Service) Authenticate(ctx context.Context, req AuthenticateRequest) (access Access, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"provider_id": req.ProviderID,
	}
	defer func() {
		s.observer.record(ctx, observation{operation: "authenticate", started: startedAt, err: err, fields: fields})
	}()

	authenticator, endpoint, err := s.authenticatorFor(req.ProviderID, req.Endpoint)
	if err != nil {
		return Access{}, err
	}
	fields["endpoint"] = endpoint

	access, err = authenticator.Authenticate(ctx, req.Credentials)
	if err != nil {
		err = s.mapError(err)
		return Access{}, err
	}
	return access, nil
}

// NewSession returns a lazily authenticated session for req.
func (s *Service) NewSession(req AuthenticateRequest) (*AuthenticatedSession, error) {
	authenticator, _, err := s.authenticatorFor(req.ProviderID, req.Endpoint)
	if err != nil {
		return nil, err
	}
	session, err := NewAuthenticatedSession(authenticator, req.Credentials)
	if err != nil {
		return nil, s.mapError(err)
	}
	return session, nil
}

func (s *Service) NewDispatcher(req DispatcherRequest) (*Dispatcher, error) {
	if s == nil {
		return nil, fmt.Errorf("core: service is nil")
	}
	headers := copyStringMap(req.DefaultHeaders)
	if agent := strings.TrimSpace(s.config.Transport.UserAgent); agent != "" {
		if lookupHeader(headers, "User-Agent") == "" {
			headers["User-Agent"] = agent
		}
	}
	dispatcher, err := NewDispatcher(DispatcherConfig{
		ProviderID:     req.ProviderID,
		Transport:      s.transport,
		Codec:          req.Codec,
		Session:        req.Session,
		Policies:       req.Policies,
		ErrorDecoder:   req.ErrorDecoder,
		DefaultHeaders: headers,
		Logger:         s.logger,
		Metrics:        s.metricsRecorder,
	})
	if err != nil {
		return nil, s.mapError(err)
	}
	return dispatcher, nil
}

func (s *Service) authenticatorFor(providerID string, endpoint string) (Authenticator, string, error) {
	if s == nil {
		return nil, "", fmt.Errorf("core: service is nil")
	}
	provider, err := s.resolveProvider(providerID)
	if err != nil {
		return nil, "", err
	}
	if strings.TrimSpace(endpoint) == "" {
		endpoint = s.config.Endpoint(provider.ID(), provider.Metadata().DefaultEndpoint)
	}
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		return nil, "", s.mapError(newBadInputError(
			fmt.Sprintf("core: provider %s has no endpoint configured", provider.ID()),
			map[string]any{"provider_id": provider.ID()},
		))
	}
	authenticator, err := provider.NewAuthenticator(s.transport, endpoint)
	if err != nil {
		return nil, "", s.mapError(err)
	}
	return authenticator, endpoint, nil
}

func (s *Service) resolveProvider(providerID string) (Provider, error) {
	providerID = strings.TrimSpace(providerID)
	if providerID == "" {
		return nil, s.mapError(newBadInputError("core: provider id is required", nil))
	}
	if s.registry == nil {
		return nil, s.mapError(fmt.Errorf("%w: %s", ErrProviderNotFound, providerID))
	}
	provider, ok := s.registry.Get(providerID)
	if !ok {
		return nil, s.mapError(fmt.Errorf("%w: %s", ErrProviderNotFound, providerID))
	}
	return provider, nil
}

func (s *Service) mapError(err error) error {
	if err == nil {
		return nil
	}
	if s == nil || s.errorMapper == nil {
		return err
	}
	mapped := s.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}
