package core

import (
	"fmt"
	"slices"
	"strings"
)

// IdentityScheme describes how a provider packs several named values into
// Credentials.Identity. With SplitLast only the last len(Fields)-1
// separators delimit fields and the first field keeps any earlier ones, so
// "x@example.org@org" is user "x@example.org" in org "org".
type IdentityScheme struct {
	Name      string
	Separator string
	Fields    []string
	SplitLast bool
}

type IdentityParseReason string

const (
	IdentityReasonEmpty         IdentityParseReason = "empty"
	IdentityReasonMissingFields IdentityParseReason = "missing_fields"
	IdentityReasonTooManyFields IdentityParseReason = "too_many_fields"
	IdentityReasonBlankField    IdentityParseReason = "blank_field"
	IdentityReasonInvalidScheme IdentityParseReason = "invalid_scheme"

	// IdentityReasonBlankCredential marks a parsed identity whose secret is blank.
	IdentityReasonBlankCredential IdentityParseReason = "blank_credential"
)

type IdentityParseError struct {
	Scheme   string
	Reason   IdentityParseReason
	Field    string
	Expected int
	Actual   int
}

func (e *IdentityParseError) Error() string {
	if e == nil {
		return ""
	}
	switch e.Reason {
	case IdentityReasonMissingFields, IdentityReasonTooManyFields:
		return fmt.Sprintf("core: malformed %s identity: expected %d fields, got %d", e.Scheme, e.Expected, e.Actual)
	case IdentityReasonBlankField:
		return fmt.Sprintf("core: malformed %s identity: field %q is blank", e.Scheme, e.Field)
	case IdentityReasonBlankCredential:
		return fmt.Sprintf("core: malformed %s credentials: %s is blank", e.Scheme, e.Field)
	case IdentityReasonInvalidScheme:
		return fmt.Sprintf("core: identity scheme %q is invalid", e.Scheme)
	default:
		return fmt.Sprintf("core: malformed %s identity: identity is empty", e.Scheme)
	}
}

// CompositeIdentity holds the named fields parsed from an identity string.
type CompositeIdentity struct {
	scheme string
	names  []string
	values map[string]string
}

func (c CompositeIdentity) Scheme() string { return c.scheme }

func (c CompositeIdentity) Get(field string) string {
	return c.values[field]
}

func (c CompositeIdentity) Fields() map[string]string {
	return copyStringMap(c.values)
}

func (c CompositeIdentity) String() string {
	parts := make([]string, 0, len(c.names))
	for _, name := range c.names {
		parts = append(parts, name+"="+c.values[name])
	}
	return c.scheme + "{" + strings.Join(parts, ",") + "}"
}

// Parse splits identity into exactly len(s.Fields) values. The field count is
// never guessed: a missing tenant or an extra separator is a parse failure.
func (s IdentityScheme) Parse(identity string) (CompositeIdentity, error) {
	name := strings.TrimSpace(s.Name)
	if name == "" {
		name = "composite"
	}
	if s.Separator == "" || len(s.Fields) == 0 {
		return CompositeIdentity{}, &IdentityParseError{Scheme: name, Reason: IdentityReasonInvalidScheme}
	}
	trimmed := strings.TrimSpace(identity)
	if trimmed == "" {
		return CompositeIdentity{}, &IdentityParseError{
			Scheme:   name,
			Reason:   IdentityReasonEmpty,
			Expected: len(s.Fields),
		}
	}

	parts := s.split(trimmed)
	if len(parts) < len(s.Fields) {
		return CompositeIdentity{}, &IdentityParseError{
			Scheme:   name,
			Reason:   IdentityReasonMissingFields,
			Expected: len(s.Fields),
			Actual:   len(parts),
		}
	}
	if len(parts) > len(s.Fields) {
		return CompositeIdentity{}, &IdentityParseError{
			Scheme:   name,
			Reason:   IdentityReasonTooManyFields,
			Expected: len(s.Fields),
			Actual:   len(parts),
		}
	}

	values := make(map[string]string, len(parts))
	for idx, field := range s.Fields {
		value := strings.TrimSpace(parts[idx])
		if value == "" {
			return CompositeIdentity{}, &IdentityParseError{
				Scheme:   name,
				Reason:   IdentityReasonBlankField,
				Field:    field,
				Expected: len(s.Fields),
				Actual:   len(parts),
			}
		}
		values[field] = value
	}
	return CompositeIdentity{
		scheme: name,
		names:  append([]string(nil), s.Fields...),
		values: values,
	}, nil
}

func (s IdentityScheme) split(identity string) []string {
	if !s.SplitLast {
		return strings.Split(identity, s.Separator)
	}
	parts := make([]string, 0, len(s.Fields))
	rest := identity
	for len(parts) < len(s.Fields)-1 {
		idx := strings.LastIndex(rest, s.Separator)
		if idx < 0 {
			break
		}
		parts = append(parts, rest[idx+len(s.Separator):])
		rest = rest[:idx]
	}
	parts = append(parts, rest)
	slices.Reverse(parts)
	return parts
}

func (s IdentityScheme) Join(values ...string) string {
	return strings.Join(values, s.Separator)
}
