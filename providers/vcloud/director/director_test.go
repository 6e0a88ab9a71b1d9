package director

import (
	"context"
	"encoding/base64"
	"net/http"
	"os"
	"testing"

	"github.com/goliatone/go-clouds/auth"
	"github.com/goliatone/go-clouds/core"
	"github.com/goliatone/go-clouds/providers/devkit"
)

const (
	testEndpoint = "https://vcloudbeta.bluelock.com/api"
	testToken    = "mIaR3/6Lna8DWImd7/JPOA=="
	templateURI  = testEndpoint + "/vAppTemplate/vappTemplate-ef4415e6-d413-4cbb-9262-f9bbec5f2ea9"
	vmURI        = testEndpoint + "/vApp/vm-d0e2b6b9-4381-4ddc-9572-cb11b4c7e2d4"
)

var fixtures = devkit.NewFixtures(os.DirFS("testdata"))

func loginExpectation() devkit.Expectation {
	response := fixtures.Response(http.StatusOK, MediaTypeSession, "session.xml")
	response.Headers[auth.VCloudTokenHeader] = testToken
	return devkit.Expectation{
		Method: http.MethodPost,
		URL:    testEndpoint + "/sessions",
		Headers: map[string]string{
			"Accept":        MediaTypeAny,
			"Authorization": "Basic " + base64.StdEncoding.EncodeToString([]byte("x@jclouds:password")),
		},
		Response: response,
	}
}

// expect builds an authenticated request expectation.
func expect(method, uri, accept string, response core.TransportResponse) devkit.Expectation {
	return devkit.Expectation{
		Method: method,
		URL:    uri,
		Headers: map[string]string{
			"Accept":               accept,
			auth.VCloudTokenHeader: testToken,
		},
		Response: response,
	}
}

func withBody(expectation devkit.Expectation, mediaType string, matcher devkit.BodyMatcher) devkit.Expectation {
	expectation.Headers["Content-Type"] = mediaType
	expectation.Body = matcher
	return expectation
}

func status(code int, mediaType, fixture string) core.TransportResponse {
	if fixture == "" {
		return core.TransportResponse{StatusCode: code, Headers: map[string]string{}}
	}
	return fixtures.Response(code, mediaType, fixture)
}

// newTestClient returns a client whose transport expects a login followed by
// the given requests, in order.
func newTestClient(t *testing.T, expectations ...devkit.Expectation) (*Client, *devkit.ExpectTransport) {
	t.Helper()
	transport := devkit.NewExpectTransport(append([]devkit.Expectation{loginExpectation()}, expectations...)...)
	client, err := NewClient(ClientConfig{
		Endpoint:    testEndpoint,
		Transport:   transport,
		Credentials: core.Credentials{Identity: "x@jclouds", Credential: "password"},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, transport
}

func verify(t *testing.T, transport *devkit.ExpectTransport) {
	t.Helper()
	if err := transport.Verify(); err != nil {
		t.Fatalf("transport: %v", err)
	}
}

func intPtr(value int) *int { return &value }

func TestStatusPoliciesCoverEveryOperation(t *testing.T) {
	if err := devkit.ValidateStatusPolicyCoverage(StatusPolicies(), Operations()); err != nil {
		t.Fatalf("coverage: %v", err)
	}
}

func TestStatusPolicies_VmReadsAndWrites(t *testing.T) {
	table := StatusPolicies()
	cases := []struct {
		op     core.Operation
		status int
		want   core.Outcome
	}{
		{OpVmGet, http.StatusForbidden, core.OutcomeEmpty},
		{OpVmGet, http.StatusNotFound, core.OutcomeEmpty},
		{OpVmScreenTicketAcquire, http.StatusNotFound, core.OutcomeEmpty},
		{OpVmScreenImageGet, http.StatusForbidden, core.OutcomeEmpty},
		{OpVmPowerOn, http.StatusBadRequest, core.OutcomeAPIError},
		{OpVmPowerOn, http.StatusForbidden, core.OutcomeNotFound},
		{OpVmQuestionAnswer, http.StatusNotFound, core.OutcomeNotFound},
		{OpVmEdit, http.StatusInternalServerError, core.OutcomeAPIError},
	}
	for _, tc := range cases {
		if got := table.Resolve(tc.op.Name, tc.status); got != tc.want {
			t.Fatalf("%s %d: expected %s, got %s", tc.op.Name, tc.status, tc.want, got)
		}
	}
}

func TestProviderMetadata(t *testing.T) {
	provider := NewProvider()
	metadata := provider.Metadata()
	if metadata.ID != ProviderID || metadata.APIVersion != "1.5" {
		t.Fatalf("unexpected metadata %#v", metadata)
	}
	if metadata.IdentityScheme.Name != auth.VCloudSessionScheme.Name {
		t.Fatalf("expected vcloud session scheme, got %q", metadata.IdentityScheme.Name)
	}

	transport := devkit.NewExpectTransport(loginExpectation())
	authenticator, err := provider.NewAuthenticator(transport, "")
	if err != nil {
		t.Fatalf("new authenticator: %v", err)
	}
	access, err := devkit.ValidateAuthenticatorConformance(context.Background(), authenticator,
		core.Credentials{Identity: "x@jclouds", Credential: "password"})
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if access.TenantName() != "jclouds" || access.Token() != testToken {
		t.Fatalf("unexpected access %s/%s", access.TenantName(), access.Token())
	}
	verify(t, transport)
}

func TestClient_LogsInOnceAcrossRequests(t *testing.T) {
	client, transport := newTestClient(t,
		expect(http.MethodGet, templateURI+"/owner", MediaTypeOwner, status(http.StatusOK, MediaTypeOwner, "owner.xml")),
		expect(http.MethodGet, templateURI+"/owner", MediaTypeOwner, status(http.StatusOK, MediaTypeOwner, "owner.xml")),
	)
	api := client.VAppTemplateAPI()
	for i := 0; i < 2; i++ {
		owner, err := api.GetOwner(context.Background(), templateURI)
		if err != nil {
			t.Fatalf("get owner %d: %v", i, err)
		}
		if owner.User == nil || owner.User.Name != "x@jclouds.org" {
			t.Fatalf("unexpected owner %#v", owner)
		}
	}
	verify(t, transport)
	if got := len(transport.Requests()); got != 3 {
		t.Fatalf("expected login plus two requests, got %d", got)
	}
}

func TestClient_LoginFailureStopsDispatch(t *testing.T) {
	login := loginExpectation()
	login.Response = status(http.StatusUnauthorized, "", "")
	transport := devkit.NewExpectTransport(login)
	client, err := NewClient(ClientConfig{
		Endpoint:    testEndpoint,
		Transport:   transport,
		Credentials: core.Credentials{Identity: "x@jclouds", Credential: "password"},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	_, err = client.VAppTemplateAPI().GetVAppTemplate(context.Background(), templateURI)
	if !core.IsAuthenticationFailure(err) {
		t.Fatalf("expected authentication failure, got %v", err)
	}
	verify(t, transport)
	if got := len(transport.Requests()); got != 1 {
		t.Fatalf("expected only the login request, got %d", got)
	}
}

func TestClient_MalformedIdentitySendsNothing(t *testing.T) {
	transport := devkit.NewExpectTransport()
	client, err := NewClient(ClientConfig{
		Endpoint:    testEndpoint,
		Transport:   transport,
		Credentials: core.Credentials{Identity: "x", Credential: "password"},
	})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.VmAPI().GetVm(context.Background(), vmURI)
	if !core.IsMalformedCredentials(err) {
		t.Fatalf("expected malformed credentials, got %v", err)
	}
	if got := len(transport.Requests()); got != 0 {
		t.Fatalf("expected no requests, got %d", got)
	}
}

func TestClientURIs(t *testing.T) {
	client, _ := newTestClient(t)
	if got := client.VAppTemplateURI("vappTemplate-ef4415e6-d413-4cbb-9262-f9bbec5f2ea9"); got != templateURI {
		t.Fatalf("unexpected template uri %s", got)
	}
	if got := client.VmURI("vm-d0e2b6b9-4381-4ddc-9572-cb11b4c7e2d4"); got != vmURI {
		t.Fatalf("unexpected vm uri %s", got)
	}
}
