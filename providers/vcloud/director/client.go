package director

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-clouds/auth"
	"github.com/goliatone/go-clouds/codec"
	"github.com/goliatone/go-clouds/core"
)

type ClientConfig struct {
	ProviderID  string
	Endpoint    string
	Transport   core.TransportAdapter
	Credentials core.Credentials
	// Session overrides the login session built from Credentials.
	Session core.SessionProvider
	Logger  core.Logger
	Metrics core.MetricsRecorder
}

// Client is the authenticated entry point to the director APIs. The session
// logs in on the first request and every API shares it.
type Client struct {
	endpoint   string
	session    core.SessionProvider
	dispatcher *core.Dispatcher
}

func NewClient(cfg ClientConfig) (*Client, error) {
	providerID := strings.TrimSpace(cfg.ProviderID)
	if providerID == "" {
		providerID = ProviderID
	}
	endpoint := strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	if endpoint == "" {
		endpoint = strings.TrimRight(DefaultEndpoint, "/")
	}
	if cfg.Transport == nil {
		return nil, fmt.Errorf("director: transport is required")
	}

	session := cfg.Session
	if session == nil {
		authenticator, err := auth.NewVCloudSessionAuthenticator(auth.VCloudConfig{
			ProviderID: providerID,
			Endpoint:   endpoint,
			Transport:  cfg.Transport,
			Logger:     cfg.Logger,
			Metrics:    cfg.Metrics,
		})
		if err != nil {
			return nil, err
		}
		lazy, err := core.NewAuthenticatedSession(authenticator, cfg.Credentials)
		if err != nil {
			return nil, err
		}
		session = lazy
	}

	dispatcher, err := core.NewDispatcher(core.DispatcherConfig{
		ProviderID:   providerID,
		Transport:    cfg.Transport,
		Codec:        codec.NewXML(Namespace),
		Session:      session,
		Policies:     StatusPolicies(),
		ErrorDecoder: DecodeError,
		Logger:       cfg.Logger,
		Metrics:      cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Client{endpoint: endpoint, session: session, dispatcher: dispatcher}, nil
}

func (c *Client) Endpoint() string { return c.endpoint }

func (c *Client) Session() core.SessionProvider { return c.session }

func (c *Client) Dispatcher() *core.Dispatcher { return c.dispatcher }

func (c *Client) VAppTemplateAPI() *VAppTemplateAPI {
	return NewVAppTemplateAPI(c.dispatcher)
}

func (c *Client) VmAPI() *VmAPI {
	return NewVmAPI(c.dispatcher)
}

// VAppTemplateURI builds the href of a template from its id.
func (c *Client) VAppTemplateURI(id string) string {
	return c.endpoint + "/vAppTemplate/" + strings.TrimSpace(id)
}

func (c *Client) VmURI(id string) string {
	return c.endpoint + "/vApp/" + strings.TrimSpace(id)
}
