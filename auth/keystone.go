package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-clouds/core"
	"github.com/goliatone/go-clouds/providers/openstack/keystone"
)

var (
	KeystoneAccessKeyScheme = core.IdentityScheme{
		Name:      "keystone-access-key",
		Separator: ":",
		Fields:    []string{"tenantId", "accessKey"},
	}
	KeystonePasswordScheme = core.IdentityScheme{
		Name:      "keystone-password",
		Separator: ":",
		Fields:    []string{"tenantName", "username"},
	}
)

type KeystoneConfig struct {
	ProviderID string
	Endpoint   string
	Transport  core.TransportAdapter
	Logger     core.Logger
	Metrics    core.MetricsRecorder
}

type keystoneLogin func(ctx context.Context, api *keystone.ServiceAPI, identity core.CompositeIdentity, secret string) (*keystone.Access, error)

type keystoneAuthenticator struct {
	providerID string
	scheme     core.IdentityScheme
	secretName string
	api        *keystone.ServiceAPI
	login      keystoneLogin
}

func newKeystoneAuthenticator(cfg KeystoneConfig, scheme core.IdentityScheme, secretName string, login keystoneLogin) (*keystoneAuthenticator, error) {
	dispatcher, err := keystone.NewDispatcher(keystone.DispatcherConfig{
		ProviderID: cfg.ProviderID,
		Transport:  cfg.Transport,
		Logger:     cfg.Logger,
		Metrics:    cfg.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("auth: keystone dispatcher: %w", err)
	}
	api, err := keystone.NewServiceAPI(dispatcher, cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	return &keystoneAuthenticator{
		providerID: strings.TrimSpace(cfg.ProviderID),
		scheme:     scheme,
		secretName: secretName,
		api:        api,
		login:      login,
	}, nil
}

func (a *keystoneAuthenticator) authenticate(ctx context.Context, credentials core.Credentials) (core.Access, error) {
	identity, err := a.scheme.Parse(credentials.Identity)
	if err != nil {
		return core.Access{}, core.NewAuthenticationError(a.providerID, a.scheme.Name, 0, err)
	}
	if strings.TrimSpace(credentials.Credential) == "" {
		return core.Access{}, core.NewAuthenticationError(a.providerID, a.scheme.Name, 0, blankCredential(a.scheme, a.secretName))
	}

	document, err := a.login(ctx, a.api, identity, credentials.Credential)
	if err != nil {
		return core.Access{}, core.NewAuthenticationError(a.providerID, a.scheme.Name, responseStatus(err), err)
	}
	access, err := keystone.ToCoreAccess(a.providerID, document)
	if err != nil {
		return core.Access{}, core.NewAuthenticationError(a.providerID, a.scheme.Name, 0, err)
	}
	return access, nil
}

// KeystoneAccessKeyAuthenticator logs in with apiAccessKeyCredentials scoped
// to a tenant id. Identity is "tenantId:accessKey", credential is the secret key.
type KeystoneAccessKeyAuthenticator struct {
	inner *keystoneAuthenticator
}

func NewKeystoneAccessKeyAuthenticator(cfg KeystoneConfig) (*KeystoneAccessKeyAuthenticator, error) {
	inner, err := newKeystoneAuthenticator(cfg, KeystoneAccessKeyScheme, "secretKey",
		func(ctx context.Context, api *keystone.ServiceAPI, identity core.CompositeIdentity, secret string) (*keystone.Access, error) {
			return api.AuthenticateWithTenantID(ctx, identity.Get("tenantId"), keystone.APIAccessKeyCredentials{
				AccessKey: identity.Get("accessKey"),
				SecretKey: secret,
			})
		})
	if err != nil {
		return nil, err
	}
	return &KeystoneAccessKeyAuthenticator{inner: inner}, nil
}

func (a *KeystoneAccessKeyAuthenticator) Authenticate(ctx context.Context, credentials core.Credentials) (core.Access, error) {
	return a.inner.authenticate(ctx, credentials)
}

// KeystonePasswordAuthenticator logs in with passwordCredentials scoped to a
// tenant name. Identity is "tenantName:username".
type KeystonePasswordAuthenticator struct {
	inner *keystoneAuthenticator
}

func NewKeystonePasswordAuthenticator(cfg KeystoneConfig) (*KeystonePasswordAuthenticator, error) {
	inner, err := newKeystoneAuthenticator(cfg, KeystonePasswordScheme, "password",
		func(ctx context.Context, api *keystone.ServiceAPI, identity core.CompositeIdentity, secret string) (*keystone.Access, error) {
			return api.AuthenticateWithTenantName(ctx, identity.Get("tenantName"), keystone.PasswordCredentials{
				Username: identity.Get("username"),
				Password: secret,
			})
		})
	if err != nil {
		return nil, err
	}
	return &KeystonePasswordAuthenticator{inner: inner}, nil
}

func (a *KeystonePasswordAuthenticator) Authenticate(ctx context.Context, credentials core.Credentials) (core.Access, error) {
	return a.inner.authenticate(ctx, credentials)
}

var (
	_ core.Authenticator = (*KeystoneAccessKeyAuthenticator)(nil)
	_ core.Authenticator = (*KeystonePasswordAuthenticator)(nil)
)
