package cloudserversus

import (
	"github.com/goliatone/go-clouds/compute"
	"github.com/goliatone/go-clouds/core"
	"github.com/goliatone/go-clouds/providers"
	"github.com/goliatone/go-clouds/providers/openstack/nova"
)

const (
	ProviderID      = "rackspace-cloudservers-us"
	APIVersion      = "2"
	DefaultEndpoint = "https://identity.api.rackspacecloud.com/v2.0/"
)

// LoginDefaults: Cloud Servers images log in as root, including Ubuntu.
var LoginDefaults = nova.LoginDefaults.Override(map[compute.OsFamily]string{
	compute.OsFamilyWindows: "Administrator",
	compute.OsFamilyUbuntu:  "root",
})

type Config struct {
	Endpoint string
}

func New(cfg Config) (core.Provider, error) {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return providers.NewKeystoneProvider(providers.KeystoneConfig{
		ID:              ProviderID,
		Name:            "Rackspace Next Generation Cloud Servers US",
		APIVersion:      APIVersion,
		DefaultEndpoint: cfg.Endpoint,
		Documentation:   "https://docs.rackspace.com/servers/api/",
		Login:           providers.KeystoneLoginPassword,
		LoginDefaults:   LoginDefaults,
	})
}
