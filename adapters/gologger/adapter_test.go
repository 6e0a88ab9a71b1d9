package gologger

import (
	"context"
	"testing"

	glog "github.com/goliatone/go-logger/glog"
)

type entry struct {
	level string
	msg   string
	args  []any
}

type recorder struct {
	name    string
	entries []entry
}

func (r *recorder) add(level, msg string, args []any) {
	r.entries = append(r.entries, entry{level: level, msg: msg, args: append([]any(nil), args...)})
}

func (r *recorder) Trace(msg string, args ...any)           { r.add("trace", msg, args) }
func (r *recorder) Debug(msg string, args ...any)           { r.add("debug", msg, args) }
func (r *recorder) Info(msg string, args ...any)            { r.add("info", msg, args) }
func (r *recorder) Warn(msg string, args ...any)            { r.add("warn", msg, args) }
func (r *recorder) Error(msg string, args ...any)           { r.add("error", msg, args) }
func (r *recorder) Fatal(msg string, args ...any)           { r.add("fatal", msg, args) }
func (r *recorder) WithContext(context.Context) glog.Logger { return r }

// namedProvider hands out one recorder per logger name.
type namedProvider struct {
	loggers map[string]*recorder
	asked   []string
}

func (p *namedProvider) GetLogger(name string) glog.Logger {
	p.asked = append(p.asked, name)
	if p.loggers == nil {
		p.loggers = map[string]*recorder{}
	}
	if _, ok := p.loggers[name]; !ok {
		p.loggers[name] = &recorder{name: name}
	}
	return p.loggers[name]
}

var (
	_ glog.Logger         = (*recorder)(nil)
	_ glog.LoggerProvider = (*namedProvider)(nil)
)

func TestResolvePrecedence(t *testing.T) {
	direct := &recorder{name: "direct"}

	provider := &namedProvider{}
	_, resolved := Resolve("clouds", provider, direct)
	got, ok := resolved.(*recorder)
	if !ok || got == direct || provider.loggers[got.name] != got {
		t.Fatalf("expected a logger from the provider, got %#v", resolved)
	}

	wrapped, resolved := Resolve("clouds", nil, direct)
	if resolved != glog.Logger(direct) {
		t.Fatalf("expected the direct logger without a provider, got %#v", resolved)
	}
	if wrapped == nil {
		t.Fatalf("expected a provider wrapping the direct logger")
	}

	if _, resolved := Resolve("clouds", nil, nil); resolved == nil {
		t.Fatalf("expected a nop logger when nothing is configured")
	}
}

func TestComponentNames(t *testing.T) {
	cases := []struct {
		root, component, want string
	}{
		{"clouds", "director", "clouds.director"},
		{" clouds ", " keystone ", "clouds.keystone"},
		{"clouds", "", "clouds"},
	}
	for _, tc := range cases {
		provider := &namedProvider{}
		Component(tc.root, tc.component, provider, nil).Warn("session expired", "provider_id", "vcloud-director")

		got := provider.loggers[tc.want]
		if got == nil {
			t.Fatalf("Component(%q, %q): expected logger %q, asked for %v", tc.root, tc.component, tc.want, provider.asked)
		}
		if len(got.entries) != 1 || got.entries[0].level != "warn" || got.entries[0].args[1] != "vcloud-director" {
			t.Fatalf("Component(%q, %q): unexpected entries %#v", tc.root, tc.component, got.entries)
		}
	}
}

func TestComponentWithoutProvider(t *testing.T) {
	if Component("clouds", "cli", nil, &recorder{name: "direct"}) == nil {
		t.Fatalf("expected a logger derived from the direct logger")
	}
	if Component("clouds", "cli", nil, nil) == nil {
		t.Fatalf("expected nop logger fallback")
	}
}
