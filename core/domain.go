package core

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Credentials is the generic identity/credential pair accepted by every
// authenticator. Identity may carry a provider-specific composite key.
type Credentials struct {
	Identity   string
	Credential string
}

// String never prints the credential.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Identity: %q}", c.Identity)
}

type CatalogEndpoint struct {
	ID          string
	TenantID    string
	Region      string
	PublicURL   string
	InternalURL string
	AdminURL    string
	VersionID   string
}

type CatalogService struct {
	Type      string
	Name      string
	Endpoints []CatalogEndpoint
}

type AccessInput struct {
	ProviderID  string
	Token       string
	TokenHeader string
	ExpiresAt   *time.Time
	TenantID    string
	TenantName  string
	UserID      string
	UserName    string
	Roles       []string
	Catalog     []CatalogService
	Metadata    map[string]any
}

// Access is an authenticated session handle. Values are immutable: accessors
// return copies and re-authentication produces a new Access.
type Access struct {
	providerID  string
	token       string
	tokenHeader string
	expiresAt   *time.Time
	tenantID    string
	tenantName  string
	userID      string
	userName    string
	roles       []string
	catalog     []CatalogService
	metadata    map[string]any
}

func NewAccess(in AccessInput) (Access, error) {
	token := strings.TrimSpace(in.Token)
	if token == "" {
		return Access{}, fmt.Errorf("core: access token is required")
	}
	header := strings.TrimSpace(in.TokenHeader)
	if header == "" {
		header = DefaultTokenHeader
	}
	access := Access{
		providerID:  strings.TrimSpace(in.ProviderID),
		token:       token,
		tokenHeader: header,
		tenantID:    strings.TrimSpace(in.TenantID),
		tenantName:  strings.TrimSpace(in.TenantName),
		userID:      strings.TrimSpace(in.UserID),
		userName:    strings.TrimSpace(in.UserName),
		roles:       append([]string(nil), in.Roles...),
		catalog:     cloneCatalog(in.Catalog),
		metadata:    copyAnyMap(in.Metadata),
	}
	if in.ExpiresAt != nil {
		expiresAt := in.ExpiresAt.UTC()
		access.expiresAt = &expiresAt
	}
	return access, nil
}

const DefaultTokenHeader = "X-Auth-Token"

func (a Access) ProviderID() string  { return a.providerID }
func (a Access) Token() string       { return a.token }
func (a Access) TokenHeader() string { return a.tokenHeader }
func (a Access) TenantID() string    { return a.tenantID }
func (a Access) TenantName() string  { return a.tenantName }
func (a Access) UserID() string      { return a.userID }
func (a Access) UserName() string    { return a.userName }

func (a Access) IsZero() bool {
	return a.token == ""
}

func (a Access) ExpiresAt() (time.Time, bool) {
	if a.expiresAt == nil {
		return time.Time{}, false
	}
	return *a.expiresAt, true
}

func (a Access) Roles() []string {
	return append([]string(nil), a.roles...)
}

func (a Access) Catalog() []CatalogService {
	return cloneCatalog(a.catalog)
}

func (a Access) Metadata() map[string]any {
	return copyAnyMap(a.metadata)
}

// Endpoint returns the first catalog endpoint for serviceType, optionally
// restricted to region.
func (a Access) Endpoint(serviceType string, region string) (CatalogEndpoint, bool) {
	serviceType = strings.TrimSpace(serviceType)
	region = strings.TrimSpace(region)
	for _, service := range a.catalog {
		if !strings.EqualFold(service.Type, serviceType) {
			continue
		}
		for _, endpoint := range service.Endpoints {
			if region == "" || strings.EqualFold(endpoint.Region, region) {
				return endpoint, true
			}
		}
	}
	return CatalogEndpoint{}, false
}

// AuthorizationHeaders returns the headers a dispatcher attaches to carry
// this session.
func (a Access) AuthorizationHeaders() map[string]string {
	if a.IsZero() {
		return map[string]string{}
	}
	return map[string]string{a.tokenHeader: a.token}
}

// ResourceReference identifies a remote resource and the media type of its
// representation.
type ResourceReference struct {
	uri       string
	mediaType string
}

func NewResourceReference(uri string, mediaType string) (ResourceReference, error) {
	trimmed := strings.TrimSpace(uri)
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return ResourceReference{}, fmt.Errorf("core: invalid resource uri %q: %w", trimmed, err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return ResourceReference{}, fmt.Errorf("core: resource uri must be absolute: %q", trimmed)
	}
	return ResourceReference{
		uri:       parsed.String(),
		mediaType: strings.TrimSpace(mediaType),
	}, nil
}

func MustResourceReference(uri string, mediaType string) ResourceReference {
	ref, err := NewResourceReference(uri, mediaType)
	if err != nil {
		panic(err)
	}
	return ref
}

func (r ResourceReference) URI() string       { return r.uri }
func (r ResourceReference) MediaType() string { return r.mediaType }

// Child returns a reference to a sub-resource path below r.
func (r ResourceReference) Child(mediaType string, segments ...string) ResourceReference {
	uri := strings.TrimRight(r.uri, "/")
	for _, segment := range segments {
		segment = strings.Trim(segment, "/")
		if segment == "" {
			continue
		}
		uri += "/" + segment
	}
	return ResourceReference{uri: uri, mediaType: strings.TrimSpace(mediaType)}
}

// Task is a handle to an asynchronous provider-side operation.
type Task interface {
	TaskHref() string
	TaskStatus() string
}

// ResultKind declares what a successful operation yields.
type ResultKind string

const (
	ResultObject ResultKind = "object"
	ResultTask   ResultKind = "task"
	ResultVoid   ResultKind = "void"
	ResultRaw    ResultKind = "raw"
)

// Phase is the per-call dispatch state.
type Phase string

const (
	PhaseBuilt     Phase = "built"
	PhaseSent      Phase = "sent"
	PhaseResponded Phase = "responded"
	PhaseResolved  Phase = "resolved"
)

func cloneCatalog(in []CatalogService) []CatalogService {
	if len(in) == 0 {
		return nil
	}
	out := make([]CatalogService, 0, len(in))
	for _, service := range in {
		service.Endpoints = append([]CatalogEndpoint(nil), service.Endpoints...)
		out = append(out, service)
	}
	return out
}

func copyAnyMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

func copyStringMap(in map[string]string) map[string]string {
	if len(in) == 0 {
		return map[string]string{}
	}
	out := make(map[string]string, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}
