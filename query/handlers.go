package query

import (
	"context"
	"slices"
	"strings"

	"github.com/goliatone/go-clouds/compute"
	"github.com/goliatone/go-clouds/core"
	"github.com/goliatone/go-clouds/providers/vcloud/director"
)

type ProviderLister interface {
	Metadata() []core.ProviderMetadata
}

type VAppTemplateReader interface {
	GetVAppTemplate(ctx context.Context, uri string) (*director.VAppTemplate, error)
}

type VmReader interface {
	GetVm(ctx context.Context, uri string) (*director.Vm, error)
}

// NodeLogin is the stored login of a node. Found is false when nothing is
// stored under the node's key.
type NodeLogin struct {
	NodeID      string
	Credentials compute.LoginCredentials
	Found       bool
}

type ListProvidersQuery struct {
	registry ProviderLister
}

func NewListProvidersQuery(registry ProviderLister) *ListProvidersQuery {
	return &ListProvidersQuery{registry: registry}
}

func (q *ListProvidersQuery) Query(_ context.Context, msg ListProvidersMessage) ([]core.ProviderMetadata, error) {
	if q == nil || q.registry == nil {
		return nil, core.MissingDependencyError("query", "provider registry")
	}
	items := q.registry.Metadata()
	api := strings.TrimSpace(msg.API)
	if api == "" {
		return items, nil
	}
	return slices.DeleteFunc(items, func(meta core.ProviderMetadata) bool {
		return !strings.EqualFold(meta.API, api)
	}), nil
}

// GetVAppTemplateQuery returns nil without error when the template is
// missing or not visible to the session.
type GetVAppTemplateQuery struct {
	reader VAppTemplateReader
}

func NewGetVAppTemplateQuery(reader VAppTemplateReader) *GetVAppTemplateQuery {
	return &GetVAppTemplateQuery{reader: reader}
}

func (q *GetVAppTemplateQuery) Query(ctx context.Context, msg GetVAppTemplateMessage) (*director.VAppTemplate, error) {
	if q == nil || q.reader == nil {
		return nil, core.MissingDependencyError("query", "vApp template reader")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return q.reader.GetVAppTemplate(ctx, msg.URI)
}

type GetVmQuery struct {
	reader VmReader
}

func NewGetVmQuery(reader VmReader) *GetVmQuery {
	return &GetVmQuery{reader: reader}
}

func (q *GetVmQuery) Query(ctx context.Context, msg GetVmMessage) (*director.Vm, error) {
	if q == nil || q.reader == nil {
		return nil, core.MissingDependencyError("query", "vm reader")
	}
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	return q.reader.GetVm(ctx, msg.URI)
}

type GetNodeLoginQuery struct {
	store compute.CredentialStore
}

func NewGetNodeLoginQuery(store compute.CredentialStore) *GetNodeLoginQuery {
	return &GetNodeLoginQuery{store: store}
}

func (q *GetNodeLoginQuery) Query(ctx context.Context, msg GetNodeLoginMessage) (NodeLogin, error) {
	if q == nil || q.store == nil {
		return NodeLogin{}, core.MissingDependencyError("query", "credential store")
	}
	if err := msg.Validate(); err != nil {
		return NodeLogin{}, err
	}
	credentials, found, err := q.store.Get(ctx, compute.NodeCredentialKey(msg.NodeID))
	if err != nil {
		return NodeLogin{}, err
	}
	return NodeLogin{NodeID: msg.NodeID, Credentials: credentials, Found: found}, nil
}
