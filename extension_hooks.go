package clouds

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/goliatone/go-clouds/core"
)

// ProviderPack is a named group of providers shipped together, such as the
// builtin Keystone and vCloud providers.
type ProviderPack struct {
	Name      string
	Providers []core.Provider
}

func (p ProviderPack) clone() ProviderPack {
	return ProviderPack{Name: p.Name, Providers: slices.Clone(p.Providers)}
}

// ExtensionHooks collects provider packs from downstream modules. A provider
// id may belong to one pack only; conflicts fail at registration.
type ExtensionHooks struct {
	mu     sync.RWMutex
	packs  []ProviderPack
	owners map[string]string
}

func NewExtensionHooks() *ExtensionHooks {
	return &ExtensionHooks{owners: map[string]string{}}
}

func (h *ExtensionHooks) RegisterProviderPack(pack ProviderPack) error {
	if h == nil {
		return fmt.Errorf("clouds: extension hooks are nil")
	}
	pack.Name = strings.TrimSpace(pack.Name)
	if pack.Name == "" {
		return fmt.Errorf("clouds: provider pack name is required")
	}
	if len(pack.Providers) == 0 {
		return fmt.Errorf("clouds: provider pack %q has no providers", pack.Name)
	}
	ids := make([]string, 0, len(pack.Providers))
	for _, provider := range pack.Providers {
		if provider == nil {
			return fmt.Errorf("clouds: provider pack %q contains a nil provider", pack.Name)
		}
		id := strings.TrimSpace(provider.ID())
		if slices.Contains(ids, id) {
			return fmt.Errorf("clouds: provider pack %q lists %q twice", pack.Name, id)
		}
		ids = append(ids, id)
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	pos, found := slices.BinarySearchFunc(h.packs, pack.Name, func(p ProviderPack, name string) int {
		return strings.Compare(p.Name, name)
	})
	if found {
		return fmt.Errorf("clouds: provider pack %q already registered", pack.Name)
	}
	for _, id := range ids {
		if owner, taken := h.owners[id]; taken {
			return fmt.Errorf("clouds: provider %q of pack %q is already provided by pack %q", id, pack.Name, owner)
		}
	}
	for _, id := range ids {
		h.owners[id] = pack.Name
	}
	h.packs = slices.Insert(h.packs, pos, pack.clone())
	return nil
}

// ApplyProviderPacks registers every pack's providers, in pack name order.
func (h *ExtensionHooks) ApplyProviderPacks(registry core.Registry) error {
	if h == nil {
		return nil
	}
	if registry == nil {
		return fmt.Errorf("clouds: registry is required")
	}
	for _, pack := range h.ProviderPacks() {
		for _, provider := range pack.Providers {
			if err := registry.Register(provider); err != nil {
				return fmt.Errorf("clouds: apply pack %q: %w", pack.Name, err)
			}
		}
	}
	return nil
}

// NewRegistry returns a provider registry holding every registered pack.
func (h *ExtensionHooks) NewRegistry() (*core.ProviderRegistry, error) {
	registry, err := core.NewProviderRegistry()
	if err != nil {
		return nil, err
	}
	if err := h.ApplyProviderPacks(registry); err != nil {
		return nil, err
	}
	return registry, nil
}

func (h *ExtensionHooks) ProviderPacks() []ProviderPack {
	if h == nil {
		return nil
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]ProviderPack, 0, len(h.packs))
	for _, pack := range h.packs {
		out = append(out, pack.clone())
	}
	return out
}

// PackOf names the pack that registered providerID.
func (h *ExtensionHooks) PackOf(providerID string) (string, bool) {
	if h == nil {
		return "", false
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	name, ok := h.owners[strings.TrimSpace(providerID)]
	return name, ok
}
