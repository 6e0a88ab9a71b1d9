package command

import (
	"strings"

	"github.com/goliatone/go-clouds/compute"
	"github.com/goliatone/go-clouds/core"
)

const (
	TypeAuthenticate     = "clouds.command.authenticate"
	TypeDispatch         = "clouds.command.dispatch"
	TypePutNodeLogin     = "clouds.command.node_login.put"
	TypeDeleteNodeLogin  = "clouds.command.node_login.delete"
	TypeResolveNodeLogin = "clouds.command.node_login.resolve"
)

type AuthenticateMessage struct {
	Request core.AuthenticateRequest
}

func (AuthenticateMessage) Type() string { return TypeAuthenticate }

func (m AuthenticateMessage) Validate() error {
	if strings.TrimSpace(m.Request.ProviderID) == "" {
		return core.MessageFieldError("command", "provider_id", "provider id is required")
	}
	return nil
}

type DispatchMessage struct {
	Request core.OperationRequest
}

func (DispatchMessage) Type() string { return TypeDispatch }

func (m DispatchMessage) Validate() error {
	if strings.TrimSpace(m.Request.Operation.Name) == "" {
		return core.MessageFieldError("command", "operation", "operation name is required")
	}
	if strings.TrimSpace(m.Request.URI) == "" {
		return core.MessageFieldError("command", "uri", "resource uri is required")
	}
	return nil
}

type PutNodeLoginMessage struct {
	NodeID      string
	Credentials compute.LoginCredentials
}

func (PutNodeLoginMessage) Type() string { return TypePutNodeLogin }

func (m PutNodeLoginMessage) Validate() error {
	if strings.TrimSpace(m.NodeID) == "" {
		return core.MessageFieldError("command", "node_id", "node id is required")
	}
	if strings.TrimSpace(m.Credentials.User) == "" {
		return core.MessageFieldError("command", "user", "login user is required")
	}
	return nil
}

type DeleteNodeLoginMessage struct {
	NodeID string
}

func (DeleteNodeLoginMessage) Type() string { return TypeDeleteNodeLogin }

func (m DeleteNodeLoginMessage) Validate() error {
	if strings.TrimSpace(m.NodeID) == "" {
		return core.MessageFieldError("command", "node_id", "node id is required")
	}
	return nil
}

type ResolveNodeLoginMessage struct {
	Node compute.Node
}

func (ResolveNodeLoginMessage) Type() string { return TypeResolveNodeLogin }

func (m ResolveNodeLoginMessage) Validate() error {
	return nil
}
