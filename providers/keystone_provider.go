package providers

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-clouds/auth"
	"github.com/goliatone/go-clouds/compute"
	"github.com/goliatone/go-clouds/core"
)

type KeystoneLogin string

const (
	KeystoneLoginAccessKey KeystoneLogin = "access_key"
	KeystoneLoginPassword  KeystoneLogin = "password"
)

type KeystoneConfig struct {
	ID              string
	Name            string
	APIVersion      string
	DefaultEndpoint string
	Documentation   string
	Login           KeystoneLogin
	LoginDefaults   compute.FamilyLoginDefaults
}

// KeystoneProvider is a provider authenticated through Keystone v2.0.
type KeystoneProvider struct {
	cfg KeystoneConfig
}

func NewKeystoneProvider(cfg KeystoneConfig) (*KeystoneProvider, error) {
	cfg.ID = strings.TrimSpace(strings.ToLower(cfg.ID))
	if cfg.ID == "" {
		return nil, fmt.Errorf("providers: provider id is required")
	}
	cfg.Name = strings.TrimSpace(cfg.Name)
	if cfg.Name == "" {
		cfg.Name = cfg.ID
	}
	cfg.DefaultEndpoint = strings.TrimSpace(cfg.DefaultEndpoint)
	switch cfg.Login {
	case "":
		cfg.Login = KeystoneLoginPassword
	case KeystoneLoginAccessKey, KeystoneLoginPassword:
	default:
		return nil, fmt.Errorf("providers: unsupported keystone login %q for provider %q", cfg.Login, cfg.ID)
	}
	return &KeystoneProvider{cfg: cfg}, nil
}

func (p *KeystoneProvider) ID() string {
	if p == nil {
		return ""
	}
	return p.cfg.ID
}

func (p *KeystoneProvider) Metadata() core.ProviderMetadata {
	if p == nil {
		return core.ProviderMetadata{}
	}
	metadata := core.ProviderMetadata{
		ID:              p.cfg.ID,
		Name:            p.cfg.Name,
		API:             "openstack-keystone",
		APIVersion:      p.cfg.APIVersion,
		DefaultEndpoint: p.cfg.DefaultEndpoint,
		Documentation:   p.cfg.Documentation,
	}
	if p.cfg.Login == KeystoneLoginAccessKey {
		metadata.IdentityName = "tenantId:accessKey"
		metadata.CredentialName = "secretKey"
		metadata.IdentityScheme = auth.KeystoneAccessKeyScheme
	} else {
		metadata.IdentityName = "tenantName:username"
		metadata.CredentialName = "password"
		metadata.IdentityScheme = auth.KeystonePasswordScheme
	}
	return metadata
}

func (p *KeystoneProvider) NewAuthenticator(transport core.TransportAdapter, endpoint string) (core.Authenticator, error) {
	if p == nil {
		return nil, fmt.Errorf("providers: keystone provider is nil")
	}
	cfg := auth.KeystoneConfig{
		ProviderID: p.cfg.ID,
		Endpoint:   firstNonEmpty(endpoint, p.cfg.DefaultEndpoint),
		Transport:  transport,
	}
	if p.cfg.Login == KeystoneLoginAccessKey {
		return auth.NewKeystoneAccessKeyAuthenticator(cfg)
	}
	return auth.NewKeystonePasswordAuthenticator(cfg)
}

// DefaultLogin returns the provider's login user for images of family.
func (p *KeystoneProvider) DefaultLogin(family compute.OsFamily) compute.LoginCredentials {
	if p == nil {
		return compute.LoginCredentials{User: compute.DefaultLoginUser}
	}
	return p.cfg.LoginDefaults.DefaultLogin(family)
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

var (
	_ core.Provider         = (*KeystoneProvider)(nil)
	_ compute.LoginDefaults = (*KeystoneProvider)(nil)
)
