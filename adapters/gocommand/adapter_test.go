package gocommand

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-command"
)

type nodeMessage struct{ NodeID string }

func (nodeMessage) Type() string { return "clouds.test.node" }

type untypedMessage struct{}

func (untypedMessage) Type() string { return "  " }

type rejectedMessage struct{}

func (rejectedMessage) Type() string { return "clouds.test.rejected" }

func (rejectedMessage) Validate() error { return errors.New("node id is required") }

type lookupMessage struct{ URI string }

func (lookupMessage) Type() string { return "clouds.test.lookup" }

type lateMessage struct{}

func (lateMessage) Type() string { return "clouds.test.late" }

func TestValidateMessageContract(t *testing.T) {
	cases := []struct {
		name    string
		msg     any
		wantErr bool
	}{
		{name: "typed", msg: nodeMessage{}},
		{name: "blank type", msg: untypedMessage{}, wantErr: true},
		{name: "validate fails", msg: rejectedMessage{}, wantErr: true},
		{name: "not a message", msg: struct{}{}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateMessageContract(tc.msg)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ValidateMessageContract(%T) error = %v, wantErr %t", tc.msg, err, tc.wantErr)
			}
		})
	}
}

func TestBus_CommandAndQueryRoundTrip(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	var seen []string
	err := AddCommand[nodeMessage](bus, command.CommandFunc[nodeMessage](func(ctx context.Context, msg nodeMessage) error {
		seen = append(seen, msg.NodeID)
		if collector := command.ResultFromContext[int](ctx); collector != nil {
			collector.Store(len(seen))
		}
		return nil
	}))
	if err != nil {
		t.Fatalf("add command: %v", err)
	}
	err = AddQuery[lookupMessage, string](bus, command.QueryFunc[lookupMessage, string](func(_ context.Context, msg lookupMessage) (string, error) {
		return "found:" + msg.URI, nil
	}))
	if err != nil {
		t.Fatalf("add query: %v", err)
	}
	if err := bus.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}

	if err := Dispatch(context.Background(), nodeMessage{NodeID: "vm-1"}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	count, ok, err := DispatchWithResult[nodeMessage, int](context.Background(), nodeMessage{NodeID: "vm-2"})
	if err != nil {
		t.Fatalf("dispatch with result: %v", err)
	}
	if !ok || count != 2 {
		t.Fatalf("expected stored count 2, got %d ok=%t", count, ok)
	}
	if len(seen) != 2 || seen[0] != "vm-1" || seen[1] != "vm-2" {
		t.Fatalf("unexpected dispatch order %v", seen)
	}

	value, err := Query[lookupMessage, string](context.Background(), lookupMessage{URI: "/api/vApp/vm-1"})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if value != "found:/api/vApp/vm-1" {
		t.Fatalf("unexpected query result %q", value)
	}
}

func TestBus_AddAfterInitializeAndClose(t *testing.T) {
	bus := NewBus(command.NewRegistry())
	if err := bus.Initialize(); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	if err := bus.Initialize(); err != nil {
		t.Fatalf("second initialize: %v", err)
	}

	calls := 0
	err := AddCommand[lateMessage](bus, command.CommandFunc[lateMessage](func(context.Context, lateMessage) error {
		calls++
		return nil
	}))
	if err != nil {
		t.Fatalf("add command after initialize: %v", err)
	}
	if err := Dispatch(context.Background(), lateMessage{}); err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one call, got %d", calls)
	}

	bus.Close()
	_ = Dispatch(context.Background(), lateMessage{})
	if calls != 1 {
		t.Fatalf("expected no calls after close, got %d", calls)
	}
}

func TestBus_RejectsMissingHandlers(t *testing.T) {
	var nilBus *Bus
	if err := AddCommand[nodeMessage](nilBus, command.CommandFunc[nodeMessage](func(context.Context, nodeMessage) error { return nil })); err == nil {
		t.Fatalf("expected nil bus to fail")
	}
	if err := AddCommand[nodeMessage](NewBus(nil), nil); err == nil {
		t.Fatalf("expected nil command to fail")
	}
	if err := AddQuery[lookupMessage, string](NewBus(nil), nil); err == nil {
		t.Fatalf("expected nil query to fail")
	}
}
