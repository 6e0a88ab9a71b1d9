package director

import (
	"context"
	"fmt"

	"github.com/goliatone/go-clouds/core"
)

// resource binds a dispatcher to one validated resource uri.
type resource struct {
	dispatcher *core.Dispatcher
	ref        core.ResourceReference
}

func newResource(dispatcher *core.Dispatcher, uri string, mediaType string) (resource, error) {
	if dispatcher == nil {
		return resource{}, fmt.Errorf("director: dispatcher is required")
	}
	ref, err := core.NewResourceReference(uri, mediaType)
	if err != nil {
		return resource{}, err
	}
	return resource{dispatcher: dispatcher, ref: ref}, nil
}

func (r resource) uri(segments ...string) string {
	return r.ref.Child(r.ref.MediaType(), segments...).URI()
}

func invoke[T any](ctx context.Context, r resource, op core.Operation, body any, segments ...string) (*T, error) {
	return core.Invoke[T](ctx, r.dispatcher, core.OperationRequest{
		Operation: op,
		URI:       r.uri(segments...),
		Body:      body,
	})
}

func invokeTask(ctx context.Context, r resource, op core.Operation, body any, segments ...string) (*Task, error) {
	return invoke[Task](ctx, r, op, body, segments...)
}

func invokeVoid(ctx context.Context, r resource, op core.Operation, body any, segments ...string) error {
	return core.InvokeVoid(ctx, r.dispatcher, core.OperationRequest{
		Operation: op,
		URI:       r.uri(segments...),
		Body:      body,
	})
}

// optional wraps a value in an interface only when it is non-nil so the
// dispatcher sees a missing body instead of a typed nil pointer.
func optional[T any](value *T) any {
	if value == nil {
		return nil
	}
	return value
}
