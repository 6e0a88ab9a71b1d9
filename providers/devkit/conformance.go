package devkit

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-clouds/core"
)

// ValidateStatusPolicyCoverage checks that every operation has a policy entry
// and that the table holds no entry for an unknown operation.
func ValidateStatusPolicyCoverage(table *core.StatusPolicyTable, operations []core.Operation) error {
	if table == nil {
		return fmt.Errorf("devkit: status policy table is required")
	}
	known := make(map[string]struct{}, len(operations))
	missing := []string{}
	for _, op := range operations {
		known[op.Name] = struct{}{}
		if !table.Has(op.Name) {
			missing = append(missing, op.Name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("devkit: operations without status policy: %s", strings.Join(missing, ", "))
	}
	for _, name := range table.Operations() {
		if _, ok := known[name]; !ok {
			return fmt.Errorf("devkit: status policy for unknown operation %s", name)
		}
	}
	return nil
}

// ValidateAuthenticatorConformance authenticates once and checks the Access
// carries a token and authorization headers.
func ValidateAuthenticatorConformance(ctx context.Context, authenticator core.Authenticator, credentials core.Credentials) (core.Access, error) {
	if authenticator == nil {
		return core.Access{}, fmt.Errorf("devkit: authenticator is required")
	}
	access, err := authenticator.Authenticate(ctx, credentials)
	if err != nil {
		return core.Access{}, err
	}
	if access.IsZero() {
		return core.Access{}, fmt.Errorf("devkit: authenticator returned an empty access")
	}
	if len(access.AuthorizationHeaders()) == 0 {
		return core.Access{}, fmt.Errorf("devkit: access has no authorization headers")
	}
	return access, nil
}
