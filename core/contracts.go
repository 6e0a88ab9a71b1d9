package core

import (
	"context"
	"time"

	glog "github.com/goliatone/go-logger/glog"
)

type TransportRequest struct {
	Method               string
	URL                  string
	Headers              map[string]string
	Query                map[string]string
	Body                 []byte
	Metadata             map[string]any
	Timeout              time.Duration
	MaxResponseBodyBytes int64
}

type TransportResponse struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
	Metadata   map[string]any
}

// Header returns the first response header matching name case-insensitively.
func (r TransportResponse) Header(name string) string {
	return lookupHeader(r.Headers, name)
}

type TransportAdapter interface {
	Kind() string
	Do(ctx context.Context, req TransportRequest) (TransportResponse, error)
}

type TransportResolver interface {
	Build(kind string, config map[string]any) (TransportAdapter, error)
}

// Codec parses and renders typed bodies for a family of media types.
type Codec interface {
	Decode(body []byte, mediaType string, out any) error
	Encode(value any, mediaType string) ([]byte, error)
}

// SessionProvider exposes the current Access for authenticated dispatch.
type SessionProvider interface {
	Access(ctx context.Context) (Access, error)
}

type Authenticator interface {
	Authenticate(ctx context.Context, credentials Credentials) (Access, error)
}

type AuthenticatorFunc func(ctx context.Context, credentials Credentials) (Access, error)

func (f AuthenticatorFunc) Authenticate(ctx context.Context, credentials Credentials) (Access, error) {
	return f(ctx, credentials)
}

type ProviderMetadata struct {
	ID              string
	Name            string
	API             string
	APIVersion      string
	DefaultEndpoint string
	IdentityName    string
	CredentialName  string
	Documentation   string
	IdentityScheme  IdentityScheme
}

type Provider interface {
	ID() string
	Metadata() ProviderMetadata
	NewAuthenticator(transport TransportAdapter, endpoint string) (Authenticator, error)
}

type Registry interface {
	Register(provider Provider) error
	Get(providerID string) (Provider, bool)
	List() []Provider
}

type SecretProvider interface {
	Encrypt(ctx context.Context, plaintext []byte) ([]byte, error)
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger
