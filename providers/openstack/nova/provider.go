package nova

import (
	"github.com/goliatone/go-clouds/compute"
	"github.com/goliatone/go-clouds/core"
	"github.com/goliatone/go-clouds/providers"
)

const (
	ProviderID      = "openstack-nova"
	APIVersion      = "1.1"
	DefaultEndpoint = "http://localhost:5000/v2.0/"
)

// LoginDefaults are the login users of stock Nova images.
var LoginDefaults = compute.FamilyLoginDefaults{
	Users: map[compute.OsFamily]string{
		compute.OsFamilyWindows: "Administrator",
		compute.OsFamilyUbuntu:  "ubuntu",
	},
	Fallback: compute.DefaultLoginUser,
}

type Config struct {
	Endpoint string
	// Login selects access-key or password Keystone credentials. Defaults to
	// password.
	Login providers.KeystoneLogin
}

func DefaultConfig() Config {
	return Config{
		Endpoint: DefaultEndpoint,
		Login:    providers.KeystoneLoginPassword,
	}
}

func New(cfg Config) (core.Provider, error) {
	defaults := DefaultConfig()
	if cfg.Endpoint == "" {
		cfg.Endpoint = defaults.Endpoint
	}
	if cfg.Login == "" {
		cfg.Login = defaults.Login
	}
	return providers.NewKeystoneProvider(providers.KeystoneConfig{
		ID:              ProviderID,
		Name:            "OpenStack Nova Diablo+ API",
		APIVersion:      APIVersion,
		DefaultEndpoint: cfg.Endpoint,
		Documentation:   "https://api.openstack.org/",
		Login:           cfg.Login,
		LoginDefaults:   LoginDefaults,
	})
}
