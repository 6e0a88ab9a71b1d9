package gocommand

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/goliatone/go-command"
	commanddispatcher "github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
)

// ValidateMessageContract checks that msg has a non-empty Type() and passes
// its own Validate(), when it has one.
func ValidateMessageContract(msg any) error {
	m, ok := msg.(command.Message)
	if !ok {
		return fmt.Errorf("gocommand: %T does not implement Type() string", msg)
	}
	if strings.TrimSpace(m.Type()) == "" {
		return fmt.Errorf("gocommand: %T has an empty message type", msg)
	}
	return command.ValidateMessage(msg)
}

// Bus registers handlers with a go-command registry and subscribes them to
// the dispatcher. Handlers added after Initialize are only subscribed. Close
// drops every subscription the bus made.
type Bus struct {
	registry *command.Registry

	mu            sync.Mutex
	initialized   bool
	subscriptions []commanddispatcher.Subscription
}

func NewBus(registry *command.Registry) *Bus {
	if registry == nil {
		registry = command.NewRegistry()
	}
	return &Bus{registry: registry}
}

func (b *Bus) Registry() *command.Registry {
	if b == nil {
		return nil
	}
	return b.registry
}

func (b *Bus) add(handler any, subscribe func() commanddispatcher.Subscription) error {
	if b == nil || b.registry == nil {
		return fmt.Errorf("gocommand: bus is not configured")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		if err := b.registry.RegisterCommand(handler); err != nil {
			return fmt.Errorf("gocommand: register %T: %w", handler, err)
		}
	}
	if sub := subscribe(); sub != nil {
		b.subscriptions = append(b.subscriptions, sub)
	}
	return nil
}

// AddCommand registers and subscribes cmd.
func AddCommand[T any](b *Bus, cmd command.Commander[T], opts ...runner.Option) error {
	if cmd == nil {
		return fmt.Errorf("gocommand: command is required")
	}
	return b.add(cmd, func() commanddispatcher.Subscription {
		return commanddispatcher.SubscribeCommand(cmd, opts...)
	})
}

// AddQuery registers and subscribes qry.
func AddQuery[T any, R any](b *Bus, qry command.Querier[T, R], opts ...runner.Option) error {
	if qry == nil {
		return fmt.Errorf("gocommand: query is required")
	}
	return b.add(qry, func() commanddispatcher.Subscription {
		return commanddispatcher.SubscribeQuery(qry, opts...)
	})
}

func (b *Bus) Initialize() error {
	if b == nil || b.registry == nil {
		return fmt.Errorf("gocommand: bus is not configured")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.initialized {
		return nil
	}
	if err := b.registry.Initialize(); err != nil {
		return err
	}
	b.initialized = true
	return nil
}

// Close unsubscribes in reverse order. The bus stays usable.
func (b *Bus) Close() {
	if b == nil {
		return
	}
	b.mu.Lock()
	subs := b.subscriptions
	b.subscriptions = nil
	b.mu.Unlock()
	for i := len(subs) - 1; i >= 0; i-- {
		subs[i].Unsubscribe()
	}
}

func Dispatch[T any](ctx context.Context, msg T) error {
	return commanddispatcher.Dispatch(ctx, msg)
}

func Query[T any, R any](ctx context.Context, msg T) (R, error) {
	return commanddispatcher.Query[T, R](ctx, msg)
}

// DispatchWithResult dispatches msg with a result collector attached to ctx.
// ok reports whether the handler stored a value.
func DispatchWithResult[T any, R any](ctx context.Context, msg T) (value R, ok bool, err error) {
	collector := command.NewResult[R]()
	if err = commanddispatcher.Dispatch(command.ContextWithResult(ctx, collector), msg); err != nil {
		return value, false, err
	}
	value, ok = collector.Load()
	return value, ok, nil
}
