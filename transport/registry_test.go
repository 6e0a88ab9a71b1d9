package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goliatone/go-clouds/core"
	goerrors "github.com/goliatone/go-errors"
)

type staticAdapter struct {
	kind string
}

func (a staticAdapter) Kind() string { return a.kind }

func (a staticAdapter) Do(context.Context, core.TransportRequest) (core.TransportResponse, error) {
	return core.TransportResponse{StatusCode: 200}, nil
}

func TestRegistry_PinAndKinds(t *testing.T) {
	registry := NewRegistry()
	scripted := staticAdapter{kind: "scripted"}
	if err := registry.Pin(scripted); err != nil {
		t.Fatalf("pin scripted adapter: %v", err)
	}
	if err := registry.Pin(staticAdapter{kind: "REST"}); err != nil {
		t.Fatalf("pin rest adapter: %v", err)
	}

	adapter, err := registry.Build("Scripted", map[string]any{"timeout": 3 * time.Second})
	if err != nil {
		t.Fatalf("build pinned adapter: %v", err)
	}
	if adapter != (core.TransportAdapter)(scripted) {
		t.Fatalf("expected pinned adapter back, got %#v", adapter)
	}

	kinds := registry.Kinds()
	if len(kinds) != 2 || kinds[0] != "rest" || kinds[1] != "scripted" {
		t.Fatalf("expected sorted kinds, got %v", kinds)
	}
	if err := registry.Pin(staticAdapter{kind: "rest"}); err == nil {
		t.Fatalf("expected duplicate registration error")
	}
	if _, err := registry.Build("missing", nil); err == nil {
		t.Fatalf("expected unknown kind error")
	}
}

func TestRegistry_FactoryReceivesParsedSettings(t *testing.T) {
	registry := NewRegistry()
	var got Settings
	if err := registry.Register("custom", func(settings Settings) (core.TransportAdapter, error) {
		got = settings
		return staticAdapter{kind: "custom"}, nil
	}); err != nil {
		t.Fatalf("register factory: %v", err)
	}
	if _, err := registry.Build("custom", map[string]any{
		"timeout":                 "1500ms",
		"max_response_body_bytes": 512,
		"user_agent":              " clouds ",
	}); err != nil {
		t.Fatalf("build: %v", err)
	}
	want := Settings{Timeout: 1500 * time.Millisecond, MaxResponseBodyBytes: 512, UserAgent: "clouds"}
	if got != want {
		t.Fatalf("expected %#v, got %#v", want, got)
	}

	failing := NewRegistry()
	_ = failing.Register("broken", func(Settings) (core.TransportAdapter, error) {
		return nil, fmt.Errorf("no adapter today")
	})
	if _, err := failing.Build("broken", nil); err == nil || !strings.Contains(err.Error(), "no adapter today") {
		t.Fatalf("expected factory error, got %v", err)
	}
}

func TestParseSettings_RejectsBadValues(t *testing.T) {
	cases := []map[string]any{
		{"timeout": 1.5},
		{"timeout": "soon"},
		{"max_response_body_bytes": "big"},
		{"timeout": -time.Second},
	}
	for _, config := range cases {
		if _, err := ParseSettings(config); err == nil {
			t.Fatalf("expected error for %#v", config)
		}
	}
}

func TestDefaultRegistry_BuildsConfiguredRESTAdapter(t *testing.T) {
	adapter, err := NewDefaultRegistry().Build("rest", map[string]any{
		"timeout":                 7 * time.Second,
		"max_response_body_bytes": int64(2048),
		"user_agent":              "go-clouds-test",
	})
	if err != nil {
		t.Fatalf("build rest adapter: %v", err)
	}
	rest, ok := adapter.(*RESTAdapter)
	if !ok {
		t.Fatalf("expected rest adapter, got %T", adapter)
	}
	if rest.MaxResponseBodyBytes != 2048 || rest.UserAgent != "go-clouds-test" {
		t.Fatalf("unexpected adapter config %#v", rest)
	}
	if client, ok := rest.Client.(*http.Client); !ok || client.Timeout != 7*time.Second {
		t.Fatalf("expected configured client timeout")
	}
}

func TestRESTAdapter_DoSendsMethodHeadersAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			t.Errorf("expected PUT method, got %s", r.Method)
		}
		if got := r.Header.Get("Accept"); got != "application/vnd.vmware.vcloud.task+xml" {
			t.Errorf("expected accept header, got %q", got)
		}
		if got := r.Header.Get("User-Agent"); got != "go-clouds" {
			t.Errorf("expected user agent, got %q", got)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read request body: %v", err)
		}
		if string(body) != "<VAppTemplate/>" {
			t.Errorf("unexpected request body %q", body)
		}
		w.Header().Set("Content-Type", "application/vnd.vmware.vcloud.task+xml")
		w.WriteHeader(http.StatusAccepted)
		_, _ = w.Write([]byte("<Task/>"))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	adapter.UserAgent = "go-clouds"
	result, err := adapter.Do(context.Background(), core.TransportRequest{
		Method: http.MethodPut,
		URL:    server.URL + "/api/vAppTemplate/vappTemplate-1",
		Headers: map[string]string{
			"Accept":       "application/vnd.vmware.vcloud.task+xml",
			"Content-Type": "application/vnd.vmware.vcloud.vAppTemplate+xml",
		},
		Body:    []byte("<VAppTemplate/>"),
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("perform rest request: %v", err)
	}
	if result.StatusCode != http.StatusAccepted {
		t.Fatalf("expected accepted status, got %d", result.StatusCode)
	}
	if string(result.Body) != "<Task/>" {
		t.Fatalf("unexpected response body: %q", string(result.Body))
	}
	if result.Header("content-type") != "application/vnd.vmware.vcloud.task+xml" {
		t.Fatalf("expected response content type header")
	}
}

func TestRESTAdapter_DoesNotInterpretErrorStatuses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte("<Error/>"))
	}))
	defer server.Close()

	result, err := NewRESTAdapter(server.Client()).Do(context.Background(), core.TransportRequest{
		Method: http.MethodGet,
		URL:    server.URL,
	})
	if err != nil {
		t.Fatalf("expected status to be returned, got %v", err)
	}
	if result.StatusCode != http.StatusForbidden || string(result.Body) != "<Error/>" {
		t.Fatalf("unexpected result %#v", result)
	}
}

func TestNewRESTAdapter_DefaultClientTimeout(t *testing.T) {
	adapter := NewRESTAdapter(nil)
	httpClient, ok := adapter.Client.(*http.Client)
	if !ok {
		t.Fatalf("expected default http client implementation")
	}
	if httpClient.Timeout != defaultRESTClientTimeout {
		t.Fatalf("expected default timeout %s, got %s", defaultRESTClientTimeout, httpClient.Timeout)
	}
	if adapter.MaxResponseBodyBytes != defaultRESTResponseBodyLimit {
		t.Fatalf("expected default response body limit %d, got %d", defaultRESTResponseBodyLimit, adapter.MaxResponseBodyBytes)
	}
}

func TestRESTAdapter_ResponseLimitReturnsRichError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("12345"))
	}))
	defer server.Close()

	adapter := NewRESTAdapter(server.Client())
	adapter.MaxResponseBodyBytes = 1024

	_, err := adapter.Do(context.Background(), core.TransportRequest{
		Method:               http.MethodGet,
		URL:                  server.URL,
		MaxResponseBodyBytes: 4,
	})
	if err == nil {
		t.Fatalf("expected response body limit error")
	}
	if !strings.Contains(err.Error(), "response body exceeds limit of 4 bytes") {
		t.Fatalf("unexpected error: %v", err)
	}

	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		t.Fatalf("expected go-errors envelope, got %T", err)
	}
	if rich.Category != goerrors.CategoryExternal {
		t.Fatalf("expected external category, got %q", rich.Category)
	}
	if rich.TextCode != core.CloudErrorTransportFailed {
		t.Fatalf("expected %q text code, got %q", core.CloudErrorTransportFailed, rich.TextCode)
	}
	if rich.Code != http.StatusBadGateway {
		t.Fatalf("expected %d code, got %d", http.StatusBadGateway, rich.Code)
	}
}

func TestRESTAdapter_RejectsRelativeURL(t *testing.T) {
	_, err := NewRESTAdapter(nil).Do(context.Background(), core.TransportRequest{URL: "/api/sessions"})
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) || rich.TextCode != core.CloudErrorBadInput {
		t.Fatalf("expected bad input error, got %v", err)
	}
}
