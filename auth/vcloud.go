package auth

import (
	"context"
	"encoding/base64"
	"encoding/xml"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/goliatone/go-clouds/codec"
	"github.com/goliatone/go-clouds/core"
)

const (
	VCloudTokenHeader       = "x-vcloud-authorization"
	VCloudSessionMediaType  = "application/vnd.vmware.vcloud.session+xml"
	VCloudNamespace         = "http://www.vmware.com/vcloud/v1.5"
	vcloudSessionsPathChild = "sessions"
)

var VCloudSessionScheme = core.IdentityScheme{
	Name:      "vcloud-session",
	Separator: "@",
	Fields:    []string{"user", "org"},
	SplitLast: true,
}

var OpVCloudLogin = core.Operation{
	Name:            "vcloud.sessions.create",
	Method:          http.MethodPost,
	AcceptMediaType: core.AnyMediaType,
	Result:          core.ResultRaw,
}

// VCloudSession is the body returned by POST /sessions.
type VCloudSession struct {
	XMLName xml.Name     `xml:"Session"`
	User    string       `xml:"user,attr"`
	Org     string       `xml:"org,attr"`
	Href    string       `xml:"href,attr"`
	Type    string       `xml:"type,attr,omitempty"`
	Links   []VCloudLink `xml:"Link"`
}

type VCloudLink struct {
	Rel  string `xml:"rel,attr"`
	Type string `xml:"type,attr,omitempty"`
	Href string `xml:"href,attr"`
	Name string `xml:"name,attr,omitempty"`
}

type VCloudConfig struct {
	ProviderID string
	Endpoint   string
	Transport  core.TransportAdapter
	Logger     core.Logger
	Metrics    core.MetricsRecorder
}

// VCloudSessionAuthenticator logs in to vCloud Director with HTTP Basic
// credentials "user@org:password". The session token is read from the
// x-vcloud-authorization response header.
type VCloudSessionAuthenticator struct {
	providerID  string
	sessionsURI string
	dispatcher  *core.Dispatcher
	codec       codec.XML
}

func NewVCloudSessionAuthenticator(cfg VCloudConfig) (*VCloudSessionAuthenticator, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	parsed, err := url.Parse(endpoint)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("auth: vcloud endpoint must be an absolute url, got %q", endpoint)
	}
	xmlCodec := codec.NewXML(VCloudNamespace)
	dispatcher, err := core.NewDispatcher(core.DispatcherConfig{
		ProviderID: cfg.ProviderID,
		Transport:  cfg.Transport,
		Codec:      xmlCodec,
		Logger:     cfg.Logger,
		Metrics:    cfg.Metrics,
	})
	if err != nil {
		return nil, fmt.Errorf("auth: vcloud dispatcher: %w", err)
	}
	return &VCloudSessionAuthenticator{
		providerID:  strings.TrimSpace(cfg.ProviderID),
		sessionsURI: strings.TrimRight(endpoint, "/") + "/" + vcloudSessionsPathChild,
		dispatcher:  dispatcher,
		codec:       xmlCodec,
	}, nil
}

func (a *VCloudSessionAuthenticator) SessionsURI() string {
	return a.sessionsURI
}

func (a *VCloudSessionAuthenticator) Authenticate(ctx context.Context, credentials core.Credentials) (core.Access, error) {
	scheme := VCloudSessionScheme.Name
	identity, err := VCloudSessionScheme.Parse(credentials.Identity)
	if err != nil {
		return core.Access{}, core.NewAuthenticationError(a.providerID, scheme, 0, err)
	}
	if strings.TrimSpace(credentials.Credential) == "" {
		return core.Access{}, core.NewAuthenticationError(a.providerID, scheme, 0, blankCredential(VCloudSessionScheme, "password"))
	}

	basic := strings.TrimSpace(credentials.Identity) + ":" + credentials.Credential
	result, err := a.dispatcher.Do(ctx, core.OperationRequest{
		Operation: OpVCloudLogin,
		URI:       a.sessionsURI,
		Headers: map[string]string{
			"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte(basic)),
		},
	})
	if err != nil {
		return core.Access{}, core.NewAuthenticationError(a.providerID, scheme, responseStatus(err), err)
	}

	token := strings.TrimSpace(result.Header(VCloudTokenHeader))
	if token == "" {
		return core.Access{}, core.NewAuthenticationError(a.providerID, scheme, result.StatusCode,
			fmt.Errorf("auth: vcloud login response has no %s header", VCloudTokenHeader))
	}

	session := VCloudSession{User: identity.Get("user"), Org: identity.Get("org")}
	if len(result.Body) > 0 {
		if err := a.codec.Decode(result.Body, result.MediaType, &session); err != nil {
			return core.Access{}, core.NewAuthenticationError(a.providerID, scheme, result.StatusCode, err)
		}
	}

	access, err := core.NewAccess(core.AccessInput{
		ProviderID:  a.providerID,
		Token:       token,
		TokenHeader: VCloudTokenHeader,
		TenantName:  firstNonEmpty(session.Org, identity.Get("org")),
		UserName:    firstNonEmpty(session.User, identity.Get("user")),
		Catalog:     sessionCatalog(session.Links),
		Metadata: map[string]any{
			"session_href": session.Href,
			"org":          firstNonEmpty(session.Org, identity.Get("org")),
		},
	})
	if err != nil {
		return core.Access{}, core.NewAuthenticationError(a.providerID, scheme, result.StatusCode, err)
	}
	return access, nil
}

// sessionCatalog exposes the session links as catalog services keyed by media
// type so callers can find the org list or query service with Access.Endpoint.
func sessionCatalog(links []VCloudLink) []core.CatalogService {
	if len(links) == 0 {
		return nil
	}
	out := make([]core.CatalogService, 0, len(links))
	for _, link := range links {
		if strings.TrimSpace(link.Href) == "" {
			continue
		}
		out = append(out, core.CatalogService{
			Type: link.Type,
			Name: link.Rel,
			Endpoints: []core.CatalogEndpoint{{
				ID:        link.Name,
				PublicURL: link.Href,
			}},
		})
	}
	return out
}

var _ core.Authenticator = (*VCloudSessionAuthenticator)(nil)
