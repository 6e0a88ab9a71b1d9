package query

import (
	"strings"

	"github.com/goliatone/go-clouds/core"
)

const (
	TypeListProviders   = "clouds.query.providers.list"
	TypeGetVAppTemplate = "clouds.query.vapp_template.get"
	TypeGetVm           = "clouds.query.vm.get"
	TypeGetNodeLogin    = "clouds.query.node_login.get"
)

// ListProvidersMessage lists every provider, or only those speaking API.
type ListProvidersMessage struct {
	API string
}

func (ListProvidersMessage) Type() string { return TypeListProviders }

type GetVAppTemplateMessage struct {
	URI string
}

func (GetVAppTemplateMessage) Type() string { return TypeGetVAppTemplate }

func (m GetVAppTemplateMessage) Validate() error {
	return requireURI(m.URI)
}

type GetVmMessage struct {
	URI string
}

func (GetVmMessage) Type() string { return TypeGetVm }

func (m GetVmMessage) Validate() error {
	return requireURI(m.URI)
}

type GetNodeLoginMessage struct {
	NodeID string
}

func (GetNodeLoginMessage) Type() string { return TypeGetNodeLogin }

func (m GetNodeLoginMessage) Validate() error {
	if strings.TrimSpace(m.NodeID) == "" {
		return core.MessageFieldError("query", "node_id", "node id is required")
	}
	return nil
}

func requireURI(uri string) error {
	if strings.TrimSpace(uri) == "" {
		return core.MessageFieldError("query", "uri", "resource uri is required")
	}
	return nil
}
