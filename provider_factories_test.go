package clouds

import (
	"testing"

	"github.com/goliatone/go-clouds/compute"
	"github.com/goliatone/go-clouds/providers/openstack/nova"
	"github.com/goliatone/go-clouds/providers/rackspace/cloudserversus"
	"github.com/goliatone/go-clouds/providers/vcloud/director"
)

func TestBuiltInProviderFactories(t *testing.T) {
	pack, err := BuiltinProviderPack()
	if err != nil {
		t.Fatalf("builtin pack: %v", err)
	}
	if pack.Name != BuiltinProviderPackName {
		t.Fatalf("unexpected pack name %q", pack.Name)
	}
	expected := []string{nova.ProviderID, cloudserversus.ProviderID, director.ProviderID}
	if len(pack.Providers) != len(expected) {
		t.Fatalf("expected %d providers, got %d", len(expected), len(pack.Providers))
	}
	for i, provider := range pack.Providers {
		if provider.ID() != expected[i] {
			t.Fatalf("provider %d: expected %q, got %q", i, expected[i], provider.ID())
		}
		if provider.Metadata().DefaultEndpoint == "" {
			t.Fatalf("%s: expected default endpoint", provider.ID())
		}
	}
}

func TestLoginDefaultsFor(t *testing.T) {
	novaProvider, err := NovaProvider(nova.Config{})
	if err != nil {
		t.Fatalf("nova provider: %v", err)
	}
	if got := LoginDefaultsFor(novaProvider).DefaultLogin(compute.OsFamilyUbuntu).User; got != "ubuntu" {
		t.Fatalf("expected nova ubuntu login, got %q", got)
	}
	rackspaceProvider, err := CloudServersUSProvider(cloudserversus.Config{})
	if err != nil {
		t.Fatalf("rackspace provider: %v", err)
	}
	if got := LoginDefaultsFor(rackspaceProvider).DefaultLogin(compute.OsFamilyUbuntu).User; got != "root" {
		t.Fatalf("expected rackspace ubuntu login root, got %q", got)
	}
	if got := LoginDefaultsFor(VCloudDirectorProvider()).DefaultLogin(compute.OsFamilyWindows).User; got != compute.DefaultLoginUser {
		t.Fatalf("expected fallback login for director, got %q", got)
	}
}
