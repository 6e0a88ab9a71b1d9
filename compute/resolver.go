package compute

import (
	"context"
	"fmt"
	"strings"
)

// LoginResolver picks node login credentials in order: stored node
// credentials, image defaults, provider OS family defaults, then root.
type LoginResolver struct {
	store    CredentialStore
	defaults LoginDefaults
}

func NewLoginResolver(store CredentialStore, defaults LoginDefaults) *LoginResolver {
	return &LoginResolver{store: store, defaults: defaults}
}

func (r *LoginResolver) Resolve(ctx context.Context, node Node) (LoginCredentials, error) {
	if r == nil {
		return LoginCredentials{}, fmt.Errorf("compute: login resolver is nil")
	}
	if r.store != nil && strings.TrimSpace(node.ID) != "" {
		stored, ok, err := r.store.Get(ctx, NodeCredentialKey(node.ID))
		if err != nil {
			return LoginCredentials{}, fmt.Errorf("compute: load credentials for node %s: %w", node.ID, err)
		}
		if ok && !stored.IsZero() {
			return stored, nil
		}
	}
	if image := node.Image.DefaultCredentials; image != nil && !image.IsZero() {
		return *image, nil
	}
	if r.defaults != nil {
		if login := r.defaults.DefaultLogin(node.Image.OsFamily); !login.IsZero() {
			return login, nil
		}
	}
	return LoginCredentials{User: DefaultLoginUser}, nil
}

// Remember stores credentials for node so later resolutions return them.
func (r *LoginResolver) Remember(ctx context.Context, nodeID string, credentials LoginCredentials) error {
	if r == nil || r.store == nil {
		return fmt.Errorf("compute: login resolver has no credential store")
	}
	if strings.TrimSpace(nodeID) == "" {
		return ErrCredentialKeyRequired
	}
	return r.store.Put(ctx, NodeCredentialKey(nodeID), credentials)
}
