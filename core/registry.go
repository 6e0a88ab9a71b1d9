package core

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// ProviderRegistry indexes providers by id. Ids are kept sorted so listings
// are stable.
type ProviderRegistry struct {
	mu        sync.RWMutex
	byID      map[string]Provider
	sortedIDs []string
}

func NewProviderRegistry(providers ...Provider) (*ProviderRegistry, error) {
	registry := &ProviderRegistry{byID: map[string]Provider{}}
	for _, provider := range providers {
		if err := registry.Register(provider); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func (r *ProviderRegistry) Register(provider Provider) error {
	if provider == nil {
		return fmt.Errorf("core: cannot register a nil provider")
	}
	id := strings.TrimSpace(provider.ID())
	if id == "" {
		return fmt.Errorf("core: provider id is required")
	}
	if declared := strings.TrimSpace(provider.Metadata().ID); declared != "" && declared != id {
		return fmt.Errorf("core: provider %q declares metadata id %q", id, declared)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.byID == nil {
		r.byID = map[string]Provider{}
	}
	pos, found := slices.BinarySearch(r.sortedIDs, id)
	if found {
		return fmt.Errorf("core: provider %q is already registered", id)
	}
	r.sortedIDs = slices.Insert(r.sortedIDs, pos, id)
	r.byID[id] = provider
	return nil
}

func (r *ProviderRegistry) Get(providerID string) (Provider, bool) {
	id := strings.TrimSpace(providerID)
	if id == "" {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	provider, ok := r.byID[id]
	return provider, ok
}

func (r *ProviderRegistry) List() []Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Provider, 0, len(r.sortedIDs))
	for _, id := range r.sortedIDs {
		out = append(out, r.byID[id])
	}
	return out
}

// Metadata lists provider metadata in id order. Blank metadata ids are
// filled from the provider.
func (r *ProviderRegistry) Metadata() []ProviderMetadata {
	providers := r.List()
	out := make([]ProviderMetadata, 0, len(providers))
	for _, provider := range providers {
		meta := provider.Metadata()
		if strings.TrimSpace(meta.ID) == "" {
			meta.ID = provider.ID()
		}
		out = append(out, meta)
	}
	return out
}

var _ Registry = (*ProviderRegistry)(nil)
