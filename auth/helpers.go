package auth

import (
	"strings"

	"github.com/goliatone/go-clouds/core"
)

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// responseStatus returns the provider status carried by err, or zero when the
// failure happened before a response was read.
func responseStatus(err error) int {
	if apiErr, ok := core.AsAPIError(err); ok {
		return apiErr.StatusCode
	}
	return 0
}

func blankCredential(scheme core.IdentityScheme, field string) error {
	return &core.IdentityParseError{
		Scheme:   scheme.Name,
		Reason:   core.IdentityReasonBlankCredential,
		Field:    field,
		Expected: len(scheme.Fields),
		Actual:   len(scheme.Fields),
	}
}
