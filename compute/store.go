package compute

import (
	"context"
	"errors"
	"strings"
	"sync"
)

var ErrCredentialKeyRequired = errors.New("compute: credential key is required")

// CredentialStore persists login credentials by key. Node credentials use
// NodeCredentialKey.
type CredentialStore interface {
	Get(ctx context.Context, key string) (LoginCredentials, bool, error)
	Put(ctx context.Context, key string, credentials LoginCredentials) error
	Delete(ctx context.Context, key string) error
}

func NodeCredentialKey(nodeID string) string {
	return "node#" + strings.TrimSpace(nodeID)
}

type MemoryCredentialStore struct {
	mu      sync.RWMutex
	entries map[string]LoginCredentials
}

func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{entries: map[string]LoginCredentials{}}
}

func (s *MemoryCredentialStore) Get(_ context.Context, key string) (LoginCredentials, bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return LoginCredentials{}, false, ErrCredentialKeyRequired
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	credentials, ok := s.entries[key]
	return credentials, ok, nil
}

func (s *MemoryCredentialStore) Put(_ context.Context, key string, credentials LoginCredentials) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrCredentialKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.entries == nil {
		s.entries = map[string]LoginCredentials{}
	}
	s.entries[key] = credentials
	return nil
}

func (s *MemoryCredentialStore) Delete(_ context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrCredentialKeyRequired
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

var _ CredentialStore = (*MemoryCredentialStore)(nil)
