package command

import (
	"context"
	"testing"

	"github.com/goliatone/go-clouds/compute"
	"github.com/goliatone/go-clouds/core"
	goerrors "github.com/goliatone/go-errors"
)

func TestMessages_ValidateReturnsRichError(t *testing.T) {
	cases := map[string]error{
		"authenticate": (AuthenticateMessage{}).Validate(),
		"dispatch":     (DispatchMessage{Request: core.OperationRequest{Operation: core.Operation{Name: "vm.get"}}}).Validate(),
		"put login":    (PutNodeLoginMessage{NodeID: "n1"}).Validate(),
		"delete login": (DeleteNodeLoginMessage{NodeID: " "}).Validate(),
	}
	for name, err := range cases {
		if err == nil {
			t.Fatalf("%s: expected validation error", name)
		}
		var rich *goerrors.Error
		if !goerrors.As(err, &rich) {
			t.Fatalf("%s: expected go-errors envelope, got %T", name, err)
		}
		if rich.Category != goerrors.CategoryValidation {
			t.Fatalf("%s: expected validation category, got %q", name, rich.Category)
		}
		if rich.TextCode != core.CloudErrorBadInput {
			t.Fatalf("%s: expected %q text code, got %q", name, core.CloudErrorBadInput, rich.TextCode)
		}
	}
}

func TestCommands_NilDependenciesReturnRichError(t *testing.T) {
	ctx := context.Background()
	errs := []error{
		(*AuthenticateCommand)(nil).Execute(ctx, AuthenticateMessage{}),
		NewDispatchCommand(nil).Execute(ctx, DispatchMessage{}),
		NewPutNodeLoginCommand(nil).Execute(ctx, PutNodeLoginMessage{Credentials: compute.LoginCredentials{User: "root"}}),
		NewDeleteNodeLoginCommand(nil).Execute(ctx, DeleteNodeLoginMessage{}),
		NewResolveNodeLoginCommand(nil).Execute(ctx, ResolveNodeLoginMessage{}),
	}
	for i, err := range errs {
		if err == nil {
			t.Fatalf("command %d: expected dependency error", i)
		}
		var rich *goerrors.Error
		if !goerrors.As(err, &rich) {
			t.Fatalf("command %d: expected go-errors envelope, got %T", i, err)
		}
		if rich.Category != goerrors.CategoryInternal {
			t.Fatalf("command %d: expected internal category, got %q", i, rich.Category)
		}
	}
}
