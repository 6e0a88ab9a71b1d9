package director

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-clouds/auth"
	"github.com/goliatone/go-clouds/core"
)

const (
	ProviderID      = "vcloud-director"
	APIVersion      = "1.5"
	DefaultEndpoint = "https://vcloudbeta.bluelock.com/api"
)

// Provider registers vCloud Director with the provider registry.
type Provider struct {
	endpoint string
}

func NewProvider() *Provider {
	return &Provider{endpoint: DefaultEndpoint}
}

func (*Provider) ID() string { return ProviderID }

func (p *Provider) Metadata() core.ProviderMetadata {
	return core.ProviderMetadata{
		ID:              ProviderID,
		Name:            "vCloud Director 1.5",
		API:             "vcloud-director",
		APIVersion:      APIVersion,
		DefaultEndpoint: p.endpoint,
		IdentityName:    "user@organization",
		CredentialName:  "password",
		Documentation:   "https://www.vmware.com/support/vcd/doc/rest-api-doc-1.5-html/",
		IdentityScheme:  auth.VCloudSessionScheme,
	}
}

func (p *Provider) NewAuthenticator(transport core.TransportAdapter, endpoint string) (core.Authenticator, error) {
	if transport == nil {
		return nil, fmt.Errorf("director: transport is required")
	}
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = p.endpoint
	}
	return auth.NewVCloudSessionAuthenticator(auth.VCloudConfig{
		ProviderID: ProviderID,
		Endpoint:   endpoint,
		Transport:  transport,
	})
}

var _ core.Provider = (*Provider)(nil)
