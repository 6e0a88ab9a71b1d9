package command

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-clouds/compute"
	"github.com/goliatone/go-clouds/core"
	gocmd "github.com/goliatone/go-command"
)

type stubAuthenticationService struct {
	authenticateFn func(ctx context.Context, req core.AuthenticateRequest) (core.Access, error)
}

func (s stubAuthenticationService) Authenticate(ctx context.Context, req core.AuthenticateRequest) (core.Access, error) {
	return s.authenticateFn(ctx, req)
}

type stubDispatcher struct {
	doFn func(ctx context.Context, req core.OperationRequest) (core.OperationResult, error)
}

func (s stubDispatcher) Do(ctx context.Context, req core.OperationRequest) (core.OperationResult, error) {
	return s.doFn(ctx, req)
}

func TestAuthenticateCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	expected, err := core.NewAccess(core.AccessInput{ProviderID: "openstack-nova", Token: "Auth_4f173437e4b013bee56d1007"})
	if err != nil {
		t.Fatalf("new access: %v", err)
	}
	called := false
	svc := stubAuthenticationService{
		authenticateFn: func(_ context.Context, req core.AuthenticateRequest) (core.Access, error) {
			called = true
			if req.ProviderID != "openstack-nova" || req.Credentials.Identity != "tenant:key" {
				t.Fatalf("unexpected authenticate request: %#v", req)
			}
			return expected, nil
		},
	}

	cmd := NewAuthenticateCommand(svc)
	collector := gocmd.NewResult[core.Access]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err = cmd.Execute(ctx, AuthenticateMessage{Request: core.AuthenticateRequest{
		ProviderID:  "openstack-nova",
		Credentials: core.Credentials{Identity: "tenant:key", Credential: "secret"},
	}})
	if err != nil {
		t.Fatalf("execute authenticate: %v", err)
	}
	if !called {
		t.Fatalf("expected authenticate service invocation")
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if result.Token() != expected.Token() {
		t.Fatalf("unexpected access token: %q", result.Token())
	}
}

func TestAuthenticateCommand_PropagatesFailure(t *testing.T) {
	failure := errors.New("denied")
	cmd := NewAuthenticateCommand(stubAuthenticationService{
		authenticateFn: func(context.Context, core.AuthenticateRequest) (core.Access, error) {
			return core.Access{}, failure
		},
	})
	err := cmd.Execute(context.Background(), AuthenticateMessage{Request: core.AuthenticateRequest{ProviderID: "vcloud-director"}})
	if !errors.Is(err, failure) {
		t.Fatalf("expected authenticate failure, got %v", err)
	}
}

func TestDispatchCommand_StoresOperationResult(t *testing.T) {
	op := core.Operation{Name: "vAppTemplate.get", Method: "GET", Result: core.ResultObject}
	cmd := NewDispatchCommand(stubDispatcher{
		doFn: func(_ context.Context, req core.OperationRequest) (core.OperationResult, error) {
			if req.Operation.Name != op.Name || req.URI != "https://vcloud.example.com/api/vAppTemplate/vappTemplate-1" {
				t.Fatalf("unexpected operation request: %#v", req)
			}
			return core.OperationResult{Operation: op.Name, StatusCode: 404, Empty: true}, nil
		},
	})
	collector := gocmd.NewResult[core.OperationResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, DispatchMessage{Request: core.OperationRequest{
		Operation: op,
		URI:       "https://vcloud.example.com/api/vAppTemplate/vappTemplate-1",
	}}); err != nil {
		t.Fatalf("execute dispatch: %v", err)
	}
	result, ok := collector.Load()
	if !ok || !result.Empty || result.StatusCode != 404 {
		t.Fatalf("expected empty result to be stored, got %#v", result)
	}
}

func TestNodeLoginCommands_StoreResolveAndDelete(t *testing.T) {
	ctx := context.Background()
	store := compute.NewMemoryCredentialStore()
	resolver := compute.NewLoginResolver(store, compute.FamilyLoginDefaults{Fallback: "root"})

	put := NewPutNodeLoginCommand(store)
	if err := put.Execute(ctx, PutNodeLoginMessage{
		NodeID:      "node-1",
		Credentials: compute.LoginCredentials{User: "deploy", PrivateKey: "-----BEGIN KEY-----"},
	}); err != nil {
		t.Fatalf("execute put: %v", err)
	}

	resolve := NewResolveNodeLoginCommand(resolver)
	collector := gocmd.NewResult[compute.LoginCredentials]()
	resolveCtx := gocmd.ContextWithResult(ctx, collector)
	if err := resolve.Execute(resolveCtx, ResolveNodeLoginMessage{Node: compute.Node{ID: "node-1"}}); err != nil {
		t.Fatalf("execute resolve: %v", err)
	}
	login, ok := collector.Load()
	if !ok || login.User != "deploy" {
		t.Fatalf("expected stored login, got %v", login)
	}

	if err := NewDeleteNodeLoginCommand(store).Execute(ctx, DeleteNodeLoginMessage{NodeID: "node-1"}); err != nil {
		t.Fatalf("execute delete: %v", err)
	}
	if _, found, _ := store.Get(ctx, compute.NodeCredentialKey("node-1")); found {
		t.Fatalf("expected node login to be deleted")
	}
}
