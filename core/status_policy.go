package core

import (
	"fmt"
	"sort"
	"strings"
)

// Outcome is how a non-2xx status is resolved for one operation.
type Outcome string

const (
	OutcomeAPIError Outcome = "api_error"
	OutcomeNotFound Outcome = "not_found"
	OutcomeEmpty    Outcome = "empty"
)

// StatusPolicy maps status codes to outcomes for a single operation.
type StatusPolicy map[int]Outcome

// StatusPolicyTable is the auditable operation -> {status -> outcome} table.
// Statuses without an entry resolve to OutcomeAPIError.
type StatusPolicyTable struct {
	entries map[string]StatusPolicy
}

func NewStatusPolicyTable() *StatusPolicyTable {
	return &StatusPolicyTable{entries: map[string]StatusPolicy{}}
}

func (t *StatusPolicyTable) Set(operation string, policy StatusPolicy) error {
	if t == nil {
		return fmt.Errorf("core: status policy table is nil")
	}
	operation = strings.TrimSpace(operation)
	if operation == "" {
		return fmt.Errorf("core: status policy operation is required")
	}
	copied := make(StatusPolicy, len(policy))
	for status, outcome := range policy {
		if status < 100 || status > 599 {
			return fmt.Errorf("core: invalid status %d in policy for %s", status, operation)
		}
		switch outcome {
		case OutcomeAPIError, OutcomeNotFound, OutcomeEmpty:
		default:
			return fmt.Errorf("core: invalid outcome %q in policy for %s", outcome, operation)
		}
		if status >= 200 && status < 300 {
			return fmt.Errorf("core: success status %d cannot be remapped for %s", status, operation)
		}
		copied[status] = outcome
	}
	if t.entries == nil {
		t.entries = map[string]StatusPolicy{}
	}
	t.entries[operation] = copied
	return nil
}

func (t *StatusPolicyTable) MustSet(operation string, policy StatusPolicy) *StatusPolicyTable {
	if err := t.Set(operation, policy); err != nil {
		panic(err)
	}
	return t
}

func (t *StatusPolicyTable) Resolve(operation string, status int) Outcome {
	if t == nil {
		return OutcomeAPIError
	}
	policy, ok := t.entries[strings.TrimSpace(operation)]
	if !ok {
		return OutcomeAPIError
	}
	if outcome, ok := policy[status]; ok {
		return outcome
	}
	return OutcomeAPIError
}

func (t *StatusPolicyTable) Has(operation string) bool {
	if t == nil {
		return false
	}
	_, ok := t.entries[strings.TrimSpace(operation)]
	return ok
}

func (t *StatusPolicyTable) Policy(operation string) (StatusPolicy, bool) {
	if t == nil {
		return nil, false
	}
	policy, ok := t.entries[strings.TrimSpace(operation)]
	if !ok {
		return nil, false
	}
	copied := make(StatusPolicy, len(policy))
	for status, outcome := range policy {
		copied[status] = outcome
	}
	return copied, true
}

func (t *StatusPolicyTable) Operations() []string {
	if t == nil {
		return nil
	}
	names := make([]string, 0, len(t.entries))
	for name := range t.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
