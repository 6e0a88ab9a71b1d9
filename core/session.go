package core

import (
	"context"
	"fmt"
	"sync"
)

// StaticSession serves a previously obtained Access.
type StaticSession struct {
	access Access
}

func NewStaticSession(access Access) StaticSession {
	return StaticSession{access: access}
}

func (s StaticSession) Access(context.Context) (Access, error) {
	if s.access.IsZero() {
		return Access{}, fmt.Errorf("core: static session has no access token")
	}
	return s.access, nil
}

// AuthenticatedSession authenticates on first use and keeps the resulting
// Access until Reauthenticate or Invalidate. Earlier Access values handed to
// callers are never modified.
type AuthenticatedSession struct {
	authenticator Authenticator
	credentials   Credentials

	mu      sync.Mutex
	current *Access
}

func NewAuthenticatedSession(authenticator Authenticator, credentials Credentials) (*AuthenticatedSession, error) {
	if authenticator == nil {
		return nil, fmt.Errorf("core: session authenticator is required")
	}
	return &AuthenticatedSession{
		authenticator: authenticator,
		credentials:   credentials,
	}, nil
}

func (s *AuthenticatedSession) Access(ctx context.Context) (Access, error) {
	if s == nil {
		return Access{}, fmt.Errorf("core: session is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		return *s.current, nil
	}
	access, err := s.authenticator.Authenticate(ctx, s.credentials)
	if err != nil {
		return Access{}, err
	}
	s.current = &access
	return access, nil
}

// Reauthenticate always issues a new authentication and replaces the current
// Access on success. On failure the previous Access is kept.
func (s *AuthenticatedSession) Reauthenticate(ctx context.Context) (Access, error) {
	if s == nil {
		return Access{}, fmt.Errorf("core: session is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	access, err := s.authenticator.Authenticate(ctx, s.credentials)
	if err != nil {
		return Access{}, err
	}
	s.current = &access
	return access, nil
}

func (s *AuthenticatedSession) Invalidate() {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

var (
	_ SessionProvider = StaticSession{}
	_ SessionProvider = (*AuthenticatedSession)(nil)
)
