package command

import (
	"context"

	"github.com/goliatone/go-clouds/compute"
	"github.com/goliatone/go-clouds/core"
	gocmd "github.com/goliatone/go-command"
)

// AuthenticationService is satisfied by *core.Service.
type AuthenticationService interface {
	Authenticate(ctx context.Context, req core.AuthenticateRequest) (core.Access, error)
}

// OperationDispatcher is satisfied by *core.Dispatcher.
type OperationDispatcher interface {
	Do(ctx context.Context, req core.OperationRequest) (core.OperationResult, error)
}

type LoginResolver interface {
	Resolve(ctx context.Context, node compute.Node) (compute.LoginCredentials, error)
}

type AuthenticateCommand struct {
	service AuthenticationService
}

func NewAuthenticateCommand(service AuthenticationService) *AuthenticateCommand {
	return &AuthenticateCommand{service: service}
}

func (c *AuthenticateCommand) Execute(ctx context.Context, msg AuthenticateMessage) error {
	if c == nil || c.service == nil {
		return core.MissingDependencyError("command", "authentication service")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	access, err := c.service.Authenticate(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, access)
	return nil
}

// DispatchCommand runs one resource operation and stores the raw result,
// including results flagged Empty.
type DispatchCommand struct {
	dispatcher OperationDispatcher
}

func NewDispatchCommand(dispatcher OperationDispatcher) *DispatchCommand {
	return &DispatchCommand{dispatcher: dispatcher}
}

func (c *DispatchCommand) Execute(ctx context.Context, msg DispatchMessage) error {
	if c == nil || c.dispatcher == nil {
		return core.MissingDependencyError("command", "dispatcher")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	result, err := c.dispatcher.Do(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, result)
	return nil
}

type PutNodeLoginCommand struct {
	store compute.CredentialStore
}

func NewPutNodeLoginCommand(store compute.CredentialStore) *PutNodeLoginCommand {
	return &PutNodeLoginCommand{store: store}
}

func (c *PutNodeLoginCommand) Execute(ctx context.Context, msg PutNodeLoginMessage) error {
	if c == nil || c.store == nil {
		return core.MissingDependencyError("command", "credential store")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return c.store.Put(ctx, compute.NodeCredentialKey(msg.NodeID), msg.Credentials)
}

type DeleteNodeLoginCommand struct {
	store compute.CredentialStore
}

func NewDeleteNodeLoginCommand(store compute.CredentialStore) *DeleteNodeLoginCommand {
	return &DeleteNodeLoginCommand{store: store}
}

func (c *DeleteNodeLoginCommand) Execute(ctx context.Context, msg DeleteNodeLoginMessage) error {
	if c == nil || c.store == nil {
		return core.MissingDependencyError("command", "credential store")
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	return c.store.Delete(ctx, compute.NodeCredentialKey(msg.NodeID))
}

type ResolveNodeLoginCommand struct {
	resolver LoginResolver
}

func NewResolveNodeLoginCommand(resolver LoginResolver) *ResolveNodeLoginCommand {
	return &ResolveNodeLoginCommand{resolver: resolver}
}

func (c *ResolveNodeLoginCommand) Execute(ctx context.Context, msg ResolveNodeLoginMessage) error {
	if c == nil || c.resolver == nil {
		return core.MissingDependencyError("command", "login resolver")
	}
	login, err := c.resolver.Resolve(ctx, msg.Node)
	if err != nil {
		return err
	}
	storeResult(ctx, login)
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}
