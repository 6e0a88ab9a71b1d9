package devkit

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"strings"
	"sync"

	"github.com/goliatone/go-clouds/core"
)

// Expectation pairs an expected request with the response served for it.
// Empty Method or URL fields are not checked. Headers are compared
// case-insensitively on name; Body, when set, must accept the request body.
type Expectation struct {
	Method   string
	URL      string
	Headers  map[string]string
	Body     BodyMatcher
	Response core.TransportResponse
	Err      error
}

// ExpectTransport serves expectations strictly in order. A request that does
// not match the next expectation fails the call and is recorded in
// Failures.
type ExpectTransport struct {
	mu           sync.Mutex
	expectations []Expectation
	next         int
	requests     []core.TransportRequest
	failures     []string
}

func NewExpectTransport(expectations ...Expectation) *ExpectTransport {
	return &ExpectTransport{expectations: append([]Expectation(nil), expectations...)}
}

func (*ExpectTransport) Kind() string { return "expect" }

func (t *ExpectTransport) Do(_ context.Context, req core.TransportRequest) (core.TransportResponse, error) {
	if t == nil {
		return core.TransportResponse{}, fmt.Errorf("devkit: expect transport is nil")
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.requests = append(t.requests, cloneTransportRequest(req))
	if t.next >= len(t.expectations) {
		failure := fmt.Sprintf("unexpected request %s %s: no expectations left", req.Method, req.URL)
		t.failures = append(t.failures, failure)
		return core.TransportResponse{}, fmt.Errorf("devkit: %s", failure)
	}
	expected := t.expectations[t.next]
	t.next++

	if mismatch := matchRequest(expected, req); mismatch != "" {
		failure := fmt.Sprintf("request %d (%s %s): %s", t.next, req.Method, req.URL, mismatch)
		t.failures = append(t.failures, failure)
		return core.TransportResponse{}, fmt.Errorf("devkit: %s", failure)
	}
	return cloneTransportResponse(expected.Response), expected.Err
}

func (t *ExpectTransport) Requests() []core.TransportRequest {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]core.TransportRequest, 0, len(t.requests))
	for _, item := range t.requests {
		out = append(out, cloneTransportRequest(item))
	}
	return out
}

func (t *ExpectTransport) Failures() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.failures...)
}

// Verify reports mismatched requests and expectations that were never used.
func (t *ExpectTransport) Verify() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.failures) > 0 {
		return fmt.Errorf("devkit: %s", strings.Join(t.failures, "; "))
	}
	if t.next < len(t.expectations) {
		pending := t.expectations[t.next]
		return fmt.Errorf("devkit: %d expectation(s) not met, next %s %s",
			len(t.expectations)-t.next, pending.Method, pending.URL)
	}
	return nil
}

func matchRequest(expected Expectation, req core.TransportRequest) string {
	if method := strings.TrimSpace(expected.Method); method != "" && !strings.EqualFold(method, req.Method) {
		return fmt.Sprintf("expected method %s", method)
	}
	if url := strings.TrimSpace(expected.URL); url != "" && url != req.URL {
		return fmt.Sprintf("expected url %s", url)
	}
	for name, value := range expected.Headers {
		actual, ok := headerValue(req.Headers, name)
		if !ok {
			return fmt.Sprintf("missing header %s", name)
		}
		if actual != value {
			return fmt.Sprintf("header %s: expected %q, got %q", name, value, actual)
		}
	}
	if expected.Body != nil {
		if err := expected.Body(req.Body); err != nil {
			return "body: " + err.Error()
		}
	}
	return ""
}

func headerValue(headers map[string]string, name string) (string, bool) {
	for key, value := range headers {
		if strings.EqualFold(key, name) {
			return value, true
		}
	}
	return "", false
}

func cloneTransportRequest(in core.TransportRequest) core.TransportRequest {
	out := in
	out.Headers = maps.Clone(in.Headers)
	out.Query = maps.Clone(in.Query)
	out.Metadata = maps.Clone(in.Metadata)
	out.Body = bytes.Clone(in.Body)
	return out
}

func cloneTransportResponse(in core.TransportResponse) core.TransportResponse {
	out := in
	out.Headers = maps.Clone(in.Headers)
	if out.Headers == nil {
		out.Headers = map[string]string{}
	}
	out.Metadata = maps.Clone(in.Metadata)
	out.Body = bytes.Clone(in.Body)
	return out
}

var _ core.TransportAdapter = (*ExpectTransport)(nil)
