package core

import (
	"net/http"
	"reflect"
	"testing"
)

func TestStatusPolicyTable_ResolveDefaultsToAPIError(t *testing.T) {
	table := NewStatusPolicyTable().MustSet("template.get", StatusPolicy{http.StatusForbidden: OutcomeEmpty})
	if got := table.Resolve("template.get", http.StatusForbidden); got != OutcomeEmpty {
		t.Fatalf("expected empty, got %s", got)
	}
	if got := table.Resolve("template.get", http.StatusBadRequest); got != OutcomeAPIError {
		t.Fatalf("expected api_error for unmapped status, got %s", got)
	}
	if got := table.Resolve("template.remove", http.StatusForbidden); got != OutcomeAPIError {
		t.Fatalf("expected api_error for unlisted operation, got %s", got)
	}
	var nilTable *StatusPolicyTable
	if got := nilTable.Resolve("x", 500); got != OutcomeAPIError {
		t.Fatalf("expected api_error for nil table, got %s", got)
	}
}

func TestStatusPolicyTable_SetValidates(t *testing.T) {
	table := NewStatusPolicyTable()
	if err := table.Set("", StatusPolicy{}); err == nil {
		t.Fatalf("expected missing operation error")
	}
	if err := table.Set("op", StatusPolicy{http.StatusOK: OutcomeEmpty}); err == nil {
		t.Fatalf("expected 2xx remap to be rejected")
	}
	if err := table.Set("op", StatusPolicy{42: OutcomeEmpty}); err == nil {
		t.Fatalf("expected invalid status error")
	}
	if err := table.Set("op", StatusPolicy{http.StatusForbidden: Outcome("retry")}); err == nil {
		t.Fatalf("expected invalid outcome error")
	}
}

func TestStatusPolicyTable_PolicyReturnsCopy(t *testing.T) {
	table := NewStatusPolicyTable().
		MustSet("b", StatusPolicy{http.StatusForbidden: OutcomeNotFound}).
		MustSet("a", StatusPolicy{})
	policy, ok := table.Policy("b")
	if !ok {
		t.Fatalf("expected policy")
	}
	policy[http.StatusForbidden] = OutcomeEmpty
	if got := table.Resolve("b", http.StatusForbidden); got != OutcomeNotFound {
		t.Fatalf("policy copy leaked mutation: %s", got)
	}
	if !reflect.DeepEqual(table.Operations(), []string{"a", "b"}) {
		t.Fatalf("unexpected operations %#v", table.Operations())
	}
	if !table.Has("a") || table.Has("c") {
		t.Fatalf("unexpected Has results")
	}
}
