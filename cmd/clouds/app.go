package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	clouds "github.com/goliatone/go-clouds"
	"github.com/goliatone/go-clouds/adapters/gocommand"
	"github.com/goliatone/go-clouds/adapters/gologger"
	cloudscommand "github.com/goliatone/go-clouds/command"
	"github.com/goliatone/go-clouds/compute"
	"github.com/goliatone/go-clouds/core"
	"github.com/goliatone/go-clouds/providers/vcloud/director"
	cloudsquery "github.com/goliatone/go-clouds/query"
	"github.com/goliatone/go-clouds/transport"
	command "github.com/goliatone/go-command"
	glog "github.com/goliatone/go-logger/glog"
)

// runtime holds the service graph of one CLI invocation. Commands and
// queries are reached through the go-command dispatcher once registered.
type runtime struct {
	conf     *Config
	logger   core.Logger
	logs     glog.LoggerProvider
	service  *core.Service
	facade   *clouds.Facade
	registry *core.ProviderRegistry
	hooks    *clouds.ExtensionHooks
	store    compute.CredentialStore

	bus     *gocommand.Bus
	release func()
}

// runtimeOptions lets tests swap the outbound transport.
type runtimeOptions struct {
	transport core.TransportAdapter
}

// newLogProvider writes console logs to w. Debug lowers the level from warn
// so every authentication and dispatch is logged.
func newLogProvider(debug bool, w io.Writer) glog.LoggerProvider {
	level := "warn"
	if debug {
		level = "debug"
	}
	return glog.NewLogger(
		glog.WithName("clouds"),
		glog.WithLevel(level),
		glog.WithLoggerTypeConsole(),
		glog.WithWriter(w),
	)
}

func newRuntime(ctx context.Context, conf *Config, opts runtimeOptions, logs io.Writer) (*runtime, error) {
	if conf == nil {
		return nil, fmt.Errorf("config is required")
	}
	logProvider := newLogProvider(conf.Debug, logs)
	logger := gologger.Component("clouds", "cli", logProvider, nil)

	hooks := clouds.NewExtensionHooks()
	pack, err := clouds.BuiltinProviderPack()
	if err != nil {
		return nil, err
	}
	if err := hooks.RegisterProviderPack(pack); err != nil {
		return nil, err
	}
	registry, err := hooks.NewRegistry()
	if err != nil {
		return nil, err
	}

	serviceOpts := []clouds.Option{
		clouds.WithLogger(logger),
		clouds.WithRegistry(registry),
		clouds.WithConfigProvider(core.NewCfgxConfigProvider(core.StaticRawConfigLoader{Values: conf.Service})),
	}
	if opts.transport != nil {
		serviceOpts = append(serviceOpts, clouds.WithTransport(opts.transport))
	} else {
		serviceOpts = append(serviceOpts, clouds.WithTransportResolver(transport.NewDefaultRegistry()))
	}
	service, err := clouds.NewService(clouds.Config{}, serviceOpts...)
	if err != nil {
		return nil, err
	}

	store, release, err := newCredentialStore(ctx, conf)
	if err != nil {
		return nil, err
	}

	facade, err := clouds.NewFacade(service, clouds.WithCredentialStore(store))
	if err != nil {
		release()
		return nil, err
	}

	rt := &runtime{
		conf:     conf,
		logger:   logger,
		logs:     logProvider,
		service:  service,
		facade:   facade,
		registry: registry,
		hooks:    hooks,
		store:    store,
		bus:      gocommand.NewBus(command.NewRegistry()),
		release:  release,
	}
	if err := rt.registerHandlers(); err != nil {
		rt.Close()
		return nil, err
	}
	return rt, nil
}

func (r *runtime) registerHandlers() error {
	commands := r.facade.Commands()
	steps := []func() error{
		func() error {
			return gocommand.AddCommand[cloudscommand.AuthenticateMessage](r.bus, commands.Authenticate)
		},
		func() error {
			return gocommand.AddCommand[cloudscommand.PutNodeLoginMessage](r.bus, commands.PutNodeLogin)
		},
		func() error {
			return gocommand.AddCommand[cloudscommand.DeleteNodeLoginMessage](r.bus, commands.DeleteNodeLogin)
		},
		func() error {
			return gocommand.AddQuery[cloudsquery.ListProvidersMessage, []core.ProviderMetadata](r.bus, cloudsquery.NewListProvidersQuery(r.registry))
		},
		func() error {
			return gocommand.AddQuery[cloudsquery.GetNodeLoginMessage, cloudsquery.NodeLogin](r.bus, cloudsquery.NewGetNodeLoginQuery(r.store))
		},
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return r.bus.Initialize()
}

// loginResolver resolves node logins with the OS family defaults of
// providerID. An unknown provider falls back to root.
func (r *runtime) loginResolver(providerID string) *compute.LoginResolver {
	provider, ok := r.registry.Get(strings.TrimSpace(providerID))
	if !ok {
		return r.facade.LoginResolver()
	}
	return compute.NewLoginResolver(r.store, clouds.LoginDefaultsFor(provider))
}

// directorClient builds a vCloud Director client that logs in with
// credentials on its first request.
func (r *runtime) directorClient(endpoint string, credentials core.Credentials) (*director.Client, error) {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = r.service.Config().Endpoint(director.ProviderID, director.DefaultEndpoint)
	}
	return director.NewClient(director.ClientConfig{
		Endpoint:    endpoint,
		Transport:   r.service.Transport(),
		Credentials: credentials,
		Logger:      gologger.Component("clouds", "director", r.logs, nil),
	})
}

func (r *runtime) Close() {
	if r == nil {
		return
	}
	r.bus.Close()
	if r.release != nil {
		r.release()
		r.release = nil
	}
}
