package core

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

type stubLogger struct{}

func (stubLogger) Trace(string, ...any) {}
func (stubLogger) Debug(string, ...any) {}
func (stubLogger) Info(string, ...any)  {}
func (stubLogger) Warn(string, ...any)  {}
func (stubLogger) Error(string, ...any) {}
func (stubLogger) Fatal(string, ...any) {}
func (s stubLogger) WithContext(context.Context) Logger {
	return s
}

type stubLoggerProvider struct {
	logger Logger
}

func (s stubLoggerProvider) GetLogger(string) Logger {
	return s.logger
}

type mapRawLoader struct {
	values map[string]any
}

func (l mapRawLoader) LoadRaw(context.Context) (map[string]any, error) {
	if len(l.values) == 0 {
		return map[string]any{}, nil
	}
	out := make(map[string]any, len(l.values))
	for key, value := range l.values {
		out[key] = value
	}
	return out, nil
}

type scriptedResponse struct {
	response TransportResponse
	err      error
}

// scriptedTransport replays queued responses in order and records every
// request it receives.
type scriptedTransport struct {
	mu        sync.Mutex
	responses []scriptedResponse
	requests  []TransportRequest
}

func newScriptedTransport(responses ...scriptedResponse) *scriptedTransport {
	return &scriptedTransport{responses: responses}
}

func (t *scriptedTransport) Kind() string { return "scripted" }

func (t *scriptedTransport) Do(_ context.Context, req TransportRequest) (TransportResponse, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.requests = append(t.requests, req)
	if len(t.responses) == 0 {
		return TransportResponse{}, fmt.Errorf("scripted transport: no response queued for %s %s", req.Method, req.URL)
	}
	next := t.responses[0]
	t.responses = t.responses[1:]
	return next.response, next.err
}

func (t *scriptedTransport) recorded() []TransportRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]TransportRequest(nil), t.requests...)
}

func reply(status int, contentType string, body string) scriptedResponse {
	headers := map[string]string{}
	if contentType != "" {
		headers["Content-Type"] = contentType
	}
	return scriptedResponse{response: TransportResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       []byte(body),
	}}
}

type jsonTestCodec struct{}

func (jsonTestCodec) Decode(body []byte, _ string, out any) error {
	return json.Unmarshal(body, out)
}

func (jsonTestCodec) Encode(value any, _ string) ([]byte, error) {
	return json.Marshal(value)
}

type widget struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

type widgetTask struct {
	Href   string `json:"href"`
	Status string `json:"status"`
}

func (t *widgetTask) TaskHref() string   { return t.Href }
func (t *widgetTask) TaskStatus() string { return t.Status }

type testProvider struct {
	id       string
	endpoint string
	calls    *int
	fail     error
}

func (p testProvider) ID() string { return p.id }

func (p testProvider) Metadata() ProviderMetadata {
	return ProviderMetadata{ID: p.id, Name: "Test " + p.id, DefaultEndpoint: p.endpoint}
}

func (p testProvider) NewAuthenticator(transport TransportAdapter, endpoint string) (Authenticator, error) {
	return AuthenticatorFunc(func(ctx context.Context, credentials Credentials) (Access, error) {
		if p.calls != nil {
			*p.calls++
		}
		if p.fail != nil {
			return Access{}, NewAuthenticationError(p.id, "test", 401, p.fail)
		}
		return NewAccess(AccessInput{
			ProviderID: p.id,
			Token:      "token-for-" + credentials.Identity,
			Metadata:   map[string]any{"endpoint": endpoint, "transport": transport.Kind()},
		})
	}), nil
}
