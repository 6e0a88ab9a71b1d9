package core

import (
	"context"
	"errors"
	"testing"
)

func TestAuthenticatedSession_AuthenticatesOnce(t *testing.T) {
	calls := 0
	authenticator := AuthenticatorFunc(func(context.Context, Credentials) (Access, error) {
		calls++
		return NewAccess(AccessInput{Token: "token"})
	})
	session, err := NewAuthenticatedSession(authenticator, Credentials{Identity: "user@org"})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	for range 3 {
		if _, err := session.Access(context.Background()); err != nil {
			t.Fatalf("access: %v", err)
		}
	}
	if calls != 1 {
		t.Fatalf("expected one authentication, got %d", calls)
	}
}

func TestAuthenticatedSession_ReauthenticateKeepsOldAccessValues(t *testing.T) {
	tokens := []string{"first", "second"}
	fail := false
	authenticator := AuthenticatorFunc(func(context.Context, Credentials) (Access, error) {
		if fail {
			return Access{}, errors.New("denied")
		}
		token := tokens[0]
		tokens = tokens[1:]
		return NewAccess(AccessInput{Token: token})
	})
	session, err := NewAuthenticatedSession(authenticator, Credentials{})
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	first, err := session.Access(context.Background())
	if err != nil {
		t.Fatalf("access: %v", err)
	}
	second, err := session.Reauthenticate(context.Background())
	if err != nil {
		t.Fatalf("reauthenticate: %v", err)
	}
	if first.Token() != "first" || second.Token() != "second" {
		t.Fatalf("unexpected tokens %q %q", first.Token(), second.Token())
	}

	fail = true
	if _, err := session.Reauthenticate(context.Background()); err == nil {
		t.Fatalf("expected reauthentication failure")
	}
	current, err := session.Access(context.Background())
	if err != nil {
		t.Fatalf("access after failed reauthentication: %v", err)
	}
	if current.Token() != "second" {
		t.Fatalf("expected previous access to survive failure, got %q", current.Token())
	}

	session.Invalidate()
	if _, err := session.Access(context.Background()); err == nil {
		t.Fatalf("expected invalidated session to authenticate again and fail")
	}
}

func TestAccess_IsImmutable(t *testing.T) {
	access, err := NewAccess(AccessInput{
		Token: "token",
		Roles: []string{"admin"},
		Catalog: []CatalogService{{
			Type:      "compute",
			Endpoints: []CatalogEndpoint{{Region: "az-1", PublicURL: "https://compute.example.com/v2"}},
		}},
	})
	if err != nil {
		t.Fatalf("new access: %v", err)
	}
	roles := access.Roles()
	roles[0] = "changed"
	catalog := access.Catalog()
	catalog[0].Endpoints[0].PublicURL = "changed"

	if access.Roles()[0] != "admin" {
		t.Fatalf("roles leaked mutation")
	}
	endpoint, ok := access.Endpoint("compute", "az-1")
	if !ok || endpoint.PublicURL != "https://compute.example.com/v2" {
		t.Fatalf("catalog leaked mutation: %#v", endpoint)
	}
	if access.AuthorizationHeaders()[DefaultTokenHeader] != "token" {
		t.Fatalf("expected default token header")
	}
}

func TestNewAccess_RequiresToken(t *testing.T) {
	if _, err := NewAccess(AccessInput{}); err == nil {
		t.Fatalf("expected missing token error")
	}
}

func TestResourceReference_Child(t *testing.T) {
	ref, err := NewResourceReference("https://vcloud.example.com/api/vAppTemplate/vappTemplate-1", "application/vnd.vmware.vcloud.vAppTemplate+xml")
	if err != nil {
		t.Fatalf("new reference: %v", err)
	}
	child := ref.Child("application/vnd.vmware.vcloud.metadata+xml", "metadata", "/key/")
	if child.URI() != "https://vcloud.example.com/api/vAppTemplate/vappTemplate-1/metadata/key" {
		t.Fatalf("unexpected child uri %q", child.URI())
	}
	if _, err := NewResourceReference("/relative", ""); err == nil {
		t.Fatalf("expected relative uri to be rejected")
	}
}
