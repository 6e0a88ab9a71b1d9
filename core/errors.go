package core

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	CloudErrorBadInput             = "CLOUD_BAD_INPUT"
	CloudErrorMalformedCredentials = "CLOUD_MALFORMED_CREDENTIALS"
	CloudErrorAuthenticationFailed = "CLOUD_AUTHENTICATION_FAILED"
	CloudErrorAPIError             = "CLOUD_API_ERROR"
	CloudErrorResourceNotFound     = "CLOUD_RESOURCE_NOT_FOUND"
	CloudErrorMediaTypeMismatch    = "CLOUD_MEDIA_TYPE_MISMATCH"
	CloudErrorProviderNotFound     = "CLOUD_PROVIDER_NOT_FOUND"
	CloudErrorTransportFailed      = "CLOUD_TRANSPORT_FAILED"
	CloudErrorUnauthorized         = "CLOUD_UNAUTHORIZED"
	CloudErrorForbidden            = "CLOUD_FORBIDDEN"
	CloudErrorOperationFailed      = "CLOUD_OPERATION_FAILED"
	CloudErrorInternal             = "CLOUD_INTERNAL_ERROR"
)

// AuthenticationError is the single failure type surfaced by authenticators.
type AuthenticationError struct {
	ProviderID string
	Scheme     string
	StatusCode int
	Cause      error
}

func (e *AuthenticationError) Error() string {
	if e == nil {
		return ""
	}
	provider := e.ProviderID
	if provider == "" {
		provider = "provider"
	}
	if e.Cause == nil {
		return fmt.Sprintf("core: %s authentication failed", provider)
	}
	return fmt.Sprintf("core: %s authentication failed: %v", provider, e.Cause)
}

func (e *AuthenticationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// APIError is a non-2xx response that carries the provider error payload.
type APIError struct {
	Operation  string
	Method     string
	URI        string
	StatusCode int
	MediaType  string
	Payload    []byte
	Detail     any
}

func (e *APIError) Error() string {
	if e == nil {
		return ""
	}
	message := fmt.Sprintf("core: %s %s returned status %d", e.Method, e.URI, e.StatusCode)
	if described, ok := e.Detail.(interface{ Describe() string }); ok {
		if text := strings.TrimSpace(described.Describe()); text != "" {
			message += ": " + text
		}
	}
	return message
}

// MediaTypeMismatchError reports a 2xx body whose content type does not match
// the operation's declared media type.
type MediaTypeMismatchError struct {
	Operation string
	Expected  string
	Actual    string
}

func (e *MediaTypeMismatchError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("core: operation %s expected media type %q, got %q", e.Operation, e.Expected, e.Actual)
}

func NewAuthenticationError(providerID string, scheme string, statusCode int, cause error) error {
	authErr := &AuthenticationError{
		ProviderID: strings.TrimSpace(providerID),
		Scheme:     strings.TrimSpace(scheme),
		StatusCode: statusCode,
		Cause:      cause,
	}
	metadata := map[string]any{
		"provider_id": authErr.ProviderID,
		"scheme":      authErr.Scheme,
	}
	if statusCode > 0 {
		metadata["status_code"] = statusCode
	}

	var parseErr *IdentityParseError
	if errors.As(cause, &parseErr) {
		metadata["reason"] = string(parseErr.Reason)
		metadata["expected_fields"] = parseErr.Expected
		metadata["actual_fields"] = parseErr.Actual
		return goerrors.Wrap(authErr, goerrors.CategoryBadInput, authErr.Error()).
			WithCode(http.StatusBadRequest).
			WithTextCode(CloudErrorMalformedCredentials).
			WithMetadata(metadata)
	}
	return goerrors.Wrap(authErr, goerrors.CategoryAuth, authErr.Error()).
		WithCode(http.StatusUnauthorized).
		WithTextCode(CloudErrorAuthenticationFailed).
		WithMetadata(metadata)
}

func newAPIFailure(apiErr *APIError, outcome Outcome) error {
	metadata := map[string]any{
		"operation":   apiErr.Operation,
		"method":      apiErr.Method,
		"uri":         apiErr.URI,
		"status_code": apiErr.StatusCode,
		"outcome":     string(outcome),
	}
	if outcome == OutcomeNotFound {
		return goerrors.Wrap(apiErr, goerrors.CategoryNotFound, apiErr.Error()).
			WithCode(http.StatusNotFound).
			WithTextCode(CloudErrorResourceNotFound).
			WithMetadata(metadata)
	}
	category := goerrors.CategoryExternal
	if apiErr.StatusCode == http.StatusUnauthorized {
		category = goerrors.CategoryAuth
	}
	return goerrors.Wrap(apiErr, category, apiErr.Error()).
		WithCode(apiErr.StatusCode).
		WithTextCode(CloudErrorAPIError).
		WithMetadata(metadata)
}

func newMediaTypeMismatch(operation string, expected string, actual string) error {
	mismatch := &MediaTypeMismatchError{Operation: operation, Expected: expected, Actual: actual}
	return goerrors.Wrap(mismatch, goerrors.CategoryOperation, mismatch.Error()).
		WithCode(http.StatusBadGateway).
		WithTextCode(CloudErrorMediaTypeMismatch).
		WithMetadata(map[string]any{
			"operation": operation,
			"expected":  expected,
			"actual":    actual,
		})
}

func newBadInputError(message string, metadata map[string]any) error {
	err := goerrors.New(message, goerrors.CategoryBadInput).
		WithCode(http.StatusBadRequest).
		WithTextCode(CloudErrorBadInput)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return err
}

func wrapDispatchError(source error, category goerrors.Category, textCode string, message string, metadata map[string]any) error {
	var rich *goerrors.Error
	if goerrors.As(source, &rich) {
		return source
	}
	err := goerrors.Wrap(source, category, message).
		WithTextCode(textCode)
	if len(metadata) > 0 {
		err.WithMetadata(metadata)
	}
	return ensureCloudErrorEnvelope(err)
}

func IsAuthenticationFailure(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

func IsMalformedCredentials(err error) bool {
	var parseErr *IdentityParseError
	return errors.As(err, &parseErr)
}

func IsAPIError(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr)
}

// IsResourceNotFound reports whether a status policy remapped err to a
// missing resource.
func IsResourceNotFound(err error) bool {
	var rich *goerrors.Error
	if !goerrors.As(err, &rich) {
		return false
	}
	return rich.TextCode == CloudErrorResourceNotFound
}

// AsAPIError returns the provider response carried by err, if any.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func cloudErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureCloudErrorEnvelope(richErr)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case errors.Is(err, ErrProviderNotFound):
		return newCloudError(err.Error(), goerrors.CategoryNotFound, CloudErrorProviderNotFound)
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"), strings.Contains(msg, "mismatch"):
		return newCloudError(err.Error(), goerrors.CategoryBadInput, CloudErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureCloudErrorEnvelope(mapped)
}

func newCloudError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureCloudErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureCloudErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = cloudHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultCloudTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultCloudTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return CloudErrorBadInput
	case goerrors.CategoryNotFound:
		return CloudErrorResourceNotFound
	case goerrors.CategoryAuth:
		return CloudErrorUnauthorized
	case goerrors.CategoryAuthz:
		return CloudErrorForbidden
	case goerrors.CategoryExternal:
		return CloudErrorTransportFailed
	case goerrors.CategoryOperation:
		return CloudErrorOperationFailed
	default:
		return CloudErrorInternal
	}
}

func cloudHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// MessageFieldError reports an invalid field of a command or query message.
func MessageFieldError(scope string, field string, message string) error {
	return goerrors.NewValidation(scope+": validation failed", goerrors.FieldError{
		Field:   field,
		Message: message,
	}).
		WithCode(http.StatusBadRequest).
		WithTextCode(CloudErrorBadInput).
		WithSeverity(goerrors.SeverityError)
}

// MissingDependencyError reports a handler built without one of its
// collaborators.
func MissingDependencyError(scope string, dependency string) error {
	return newCloudError(scope+": "+dependency+" is required", goerrors.CategoryInternal, CloudErrorInternal)
}
