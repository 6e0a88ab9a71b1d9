package core

import (
	"errors"
	"testing"
)

var tenantKeyScheme = IdentityScheme{Name: "tenant_key", Separator: ":", Fields: []string{"tenant", "access_key"}}

var userOrgScheme = IdentityScheme{Name: "user_org", Separator: "@", Fields: []string{"user", "org"}, SplitLast: true}

func TestIdentityScheme_ParseSplitsFields(t *testing.T) {
	identity, err := tenantKeyScheme.Parse("demo:AKIA123")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if identity.Get("tenant") != "demo" || identity.Get("access_key") != "AKIA123" {
		t.Fatalf("unexpected fields %#v", identity.Fields())
	}
	if identity.String() != "tenant_key{tenant=demo,access_key=AKIA123}" {
		t.Fatalf("unexpected string %q", identity.String())
	}
	if joined := tenantKeyScheme.Join("demo", "AKIA123"); joined != "demo:AKIA123" {
		t.Fatalf("unexpected join %q", joined)
	}
}

func TestIdentityScheme_SplitLastKeepsEarlierSeparators(t *testing.T) {
	cases := []struct {
		identity, user, org string
	}{
		{"x@jclouds", "x", "jclouds"},
		{"x@jclouds.org@JClouds", "x@jclouds.org", "JClouds"},
		{"a@b@c@org", "a@b@c", "org"},
	}
	for _, tc := range cases {
		identity, err := userOrgScheme.Parse(tc.identity)
		if err != nil {
			t.Fatalf("parse %q: %v", tc.identity, err)
		}
		if identity.Get("user") != tc.user || identity.Get("org") != tc.org {
			t.Fatalf("parse %q: unexpected fields %#v", tc.identity, identity.Fields())
		}
	}
}

func TestIdentityScheme_ParseFailures(t *testing.T) {
	cases := []struct {
		name     string
		scheme   IdentityScheme
		identity string
		reason   IdentityParseReason
	}{
		{name: "empty", scheme: tenantKeyScheme, identity: "  ", reason: IdentityReasonEmpty},
		{name: "single field", scheme: tenantKeyScheme, identity: "AKIA123", reason: IdentityReasonMissingFields},
		{name: "extra separator", scheme: tenantKeyScheme, identity: "demo:AKIA:123", reason: IdentityReasonTooManyFields},
		{name: "blank tenant", scheme: tenantKeyScheme, identity: ":AKIA123", reason: IdentityReasonBlankField},
		{name: "invalid scheme", scheme: IdentityScheme{Name: "broken"}, identity: "a:b", reason: IdentityReasonInvalidScheme},
		{name: "split last without org", scheme: userOrgScheme, identity: "x", reason: IdentityReasonMissingFields},
		{name: "split last blank org", scheme: userOrgScheme, identity: "x@jclouds.org@", reason: IdentityReasonBlankField},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.scheme.Parse(tc.identity)
			var parseErr *IdentityParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected identity parse error, got %v", err)
			}
			if parseErr.Reason != tc.reason {
				t.Fatalf("expected reason %s, got %s", tc.reason, parseErr.Reason)
			}
		})
	}
}

func TestNewAuthenticationError_MalformedIdentity(t *testing.T) {
	_, parseErr := tenantKeyScheme.Parse("AKIA123")
	err := NewAuthenticationError("openstack-nova", "access_key", 0, parseErr)
	if !IsMalformedCredentials(err) {
		t.Fatalf("expected malformed credentials")
	}
	if !IsAuthenticationFailure(err) {
		t.Fatalf("expected authentication failure wrapper")
	}
	mapped := cloudErrorMapper(err)
	if mapped.TextCode != CloudErrorMalformedCredentials {
		t.Fatalf("expected %s, got %s", CloudErrorMalformedCredentials, mapped.TextCode)
	}
}
