package keystone

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/goliatone/go-clouds/codec"
	"github.com/goliatone/go-clouds/core"
)

var OpAuthenticate = core.Operation{
	Name:            "keystone.tokens.create",
	Method:          http.MethodPost,
	AcceptMediaType: MediaTypeJSON,
	BodyMediaType:   MediaTypeJSON,
	Result:          core.ResultObject,
}

type DispatcherConfig struct {
	ProviderID string
	Transport  core.TransportAdapter
	Logger     core.Logger
	Metrics    core.MetricsRecorder
}

// NewDispatcher returns an unauthenticated JSON dispatcher for the token API.
func NewDispatcher(cfg DispatcherConfig) (*core.Dispatcher, error) {
	return core.NewDispatcher(core.DispatcherConfig{
		ProviderID:   cfg.ProviderID,
		Transport:    cfg.Transport,
		Codec:        codec.NewJSON(),
		ErrorDecoder: DecodeFault,
		Logger:       cfg.Logger,
		Metrics:      cfg.Metrics,
	})
}

// ServiceAPI issues token requests against a Keystone v2.0 endpoint.
type ServiceAPI struct {
	dispatcher *core.Dispatcher
	tokensURI  string
}

func NewServiceAPI(dispatcher *core.Dispatcher, endpoint string) (*ServiceAPI, error) {
	if dispatcher == nil {
		return nil, fmt.Errorf("keystone: dispatcher is required")
	}
	endpoint = strings.TrimSpace(endpoint)
	parsed, err := url.Parse(endpoint)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return nil, fmt.Errorf("keystone: endpoint must be an absolute url, got %q", endpoint)
	}
	return &ServiceAPI{
		dispatcher: dispatcher,
		tokensURI:  strings.TrimRight(endpoint, "/") + "/tokens",
	}, nil
}

func (a *ServiceAPI) TokensURI() string {
	return a.tokensURI
}

func (a *ServiceAPI) AuthenticateWithTenantID(ctx context.Context, tenantID string, credentials Credentials) (*Access, error) {
	return a.authenticate(ctx, tokenRequest{tenantID: strings.TrimSpace(tenantID), credentials: credentials})
}

func (a *ServiceAPI) AuthenticateWithTenantName(ctx context.Context, tenantName string, credentials Credentials) (*Access, error) {
	return a.authenticate(ctx, tokenRequest{tenantName: strings.TrimSpace(tenantName), credentials: credentials})
}

func (a *ServiceAPI) authenticate(ctx context.Context, req tokenRequest) (*Access, error) {
	if a == nil {
		return nil, fmt.Errorf("keystone: service api is nil")
	}
	if req.credentials == nil {
		return nil, fmt.Errorf("keystone: credentials are required")
	}
	envelope, err := core.Invoke[accessEnvelope](ctx, a.dispatcher, core.OperationRequest{
		Operation: OpAuthenticate,
		URI:       a.tokensURI,
		Body:      req,
	})
	if err != nil {
		return nil, err
	}
	if envelope == nil || strings.TrimSpace(envelope.Access.Token.ID) == "" {
		return nil, fmt.Errorf("keystone: response did not carry a token")
	}
	access := envelope.Access
	return &access, nil
}

// Fault is a Keystone error document such as {"unauthorized": {...}}.
type Fault struct {
	Kind    string
	Code    int    `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
}

func (f Fault) Describe() string {
	message := strings.TrimSpace(f.Message)
	if f.Kind != "" {
		message = f.Kind + ": " + message
	}
	return message
}

func DecodeFault(body []byte, _ string) (any, error) {
	var envelope map[string]Fault
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	if len(envelope) == 0 {
		return nil, fmt.Errorf("keystone: empty fault document")
	}
	kinds := make([]string, 0, len(envelope))
	for kind := range envelope {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	fault := envelope[kinds[0]]
	fault.Kind = kinds[0]
	return fault, nil
}
