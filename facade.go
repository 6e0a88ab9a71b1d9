package clouds

import (
	"fmt"

	cloudscommand "github.com/goliatone/go-clouds/command"
	"github.com/goliatone/go-clouds/compute"
)

type Commands struct {
	Authenticate     *cloudscommand.AuthenticateCommand
	PutNodeLogin     *cloudscommand.PutNodeLoginCommand
	DeleteNodeLogin  *cloudscommand.DeleteNodeLoginCommand
	ResolveNodeLogin *cloudscommand.ResolveNodeLoginCommand
}

type Facade struct {
	service  cloudscommand.AuthenticationService
	store    compute.CredentialStore
	resolver *compute.LoginResolver
	commands Commands
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	store    compute.CredentialStore
	defaults compute.LoginDefaults
}

// WithCredentialStore replaces the in-memory node login store.
func WithCredentialStore(store compute.CredentialStore) FacadeOption {
	return func(options *facadeOptions) {
		options.store = store
	}
}

func WithLoginDefaults(defaults compute.LoginDefaults) FacadeOption {
	return func(options *facadeOptions) {
		options.defaults = defaults
	}
}

func NewFacade(service cloudscommand.AuthenticationService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("clouds: authentication service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.store == nil {
		cfg.store = compute.NewMemoryCredentialStore()
	}
	if cfg.defaults == nil {
		cfg.defaults = compute.FamilyLoginDefaults{Fallback: compute.DefaultLoginUser}
	}

	resolver := compute.NewLoginResolver(cfg.store, cfg.defaults)
	facade := &Facade{
		service:  service,
		store:    cfg.store,
		resolver: resolver,
	}
	facade.commands = Commands{
		Authenticate:     cloudscommand.NewAuthenticateCommand(service),
		PutNodeLogin:     cloudscommand.NewPutNodeLoginCommand(cfg.store),
		DeleteNodeLogin:  cloudscommand.NewDeleteNodeLoginCommand(cfg.store),
		ResolveNodeLogin: cloudscommand.NewResolveNodeLoginCommand(resolver),
	}
	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

// Dispatch returns a dispatch command bound to dispatcher.
func (f *Facade) Dispatch(dispatcher cloudscommand.OperationDispatcher) *cloudscommand.DispatchCommand {
	return cloudscommand.NewDispatchCommand(dispatcher)
}

func (f *Facade) Service() cloudscommand.AuthenticationService {
	if f == nil {
		return nil
	}
	return f.service
}

func (f *Facade) CredentialStore() compute.CredentialStore {
	if f == nil {
		return nil
	}
	return f.store
}

func (f *Facade) LoginResolver() *compute.LoginResolver {
	if f == nil {
		return nil
	}
	return f.resolver
}
