package clouds

import (
	"github.com/goliatone/go-clouds/compute"
	"github.com/goliatone/go-clouds/core"
	"github.com/goliatone/go-clouds/providers/openstack/nova"
	"github.com/goliatone/go-clouds/providers/rackspace/cloudserversus"
	"github.com/goliatone/go-clouds/providers/vcloud/director"
)

const BuiltinProviderPackName = "builtin"

func NovaProvider(cfg nova.Config) (core.Provider, error) {
	return nova.New(cfg)
}

func CloudServersUSProvider(cfg cloudserversus.Config) (core.Provider, error) {
	return cloudserversus.New(cfg)
}

func VCloudDirectorProvider() core.Provider {
	return director.NewProvider()
}

// BuiltinProviderPack bundles every provider shipped with the module using
// its default configuration.
func BuiltinProviderPack() (ProviderPack, error) {
	novaProvider, err := NovaProvider(nova.DefaultConfig())
	if err != nil {
		return ProviderPack{}, err
	}
	rackspaceProvider, err := CloudServersUSProvider(cloudserversus.Config{})
	if err != nil {
		return ProviderPack{}, err
	}
	return ProviderPack{
		Name: BuiltinProviderPackName,
		Providers: []core.Provider{
			novaProvider,
			rackspaceProvider,
			VCloudDirectorProvider(),
		},
	}, nil
}

// LoginDefaultsFor returns the OS family login table of a provider, or the
// root-only fallback when the provider publishes none.
func LoginDefaultsFor(provider core.Provider) compute.LoginDefaults {
	if defaults, ok := provider.(compute.LoginDefaults); ok {
		return defaults
	}
	return compute.FamilyLoginDefaults{Fallback: compute.DefaultLoginUser}
}
