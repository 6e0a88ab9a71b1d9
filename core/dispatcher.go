package core

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
)

const AnyMediaType = "*/*"

// Operation is the static declaration of one provider resource operation.
type Operation struct {
	Name            string
	Method          string
	AcceptMediaType string
	BodyMediaType   string
	Result          ResultKind
}

type OperationRequest struct {
	Operation Operation
	URI       string
	Body      any
	Headers   map[string]string
}

type OperationResult struct {
	Operation  string
	Phase      Phase
	StatusCode int
	MediaType  string
	Headers    map[string]string
	Body       []byte
	Empty      bool
}

// Header returns the first response header matching name case-insensitively.
func (r OperationResult) Header(name string) string {
	return lookupHeader(r.Headers, name)
}

// ErrorDecoder turns a provider error body into a typed detail value.
type ErrorDecoder func(body []byte, mediaType string) (any, error)

type DispatcherConfig struct {
	ProviderID     string
	Transport      TransportAdapter
	Codec          Codec
	Session        SessionProvider
	Policies       *StatusPolicyTable
	ErrorDecoder   ErrorDecoder
	DefaultHeaders map[string]string
	Logger         Logger
	Metrics        MetricsRecorder
}

// Dispatcher issues exactly one request per operation and resolves the
// response. It holds no mutable state and is safe for concurrent use.
type Dispatcher struct {
	providerID     string
	transport      TransportAdapter
	codec          Codec
	session        SessionProvider
	policies       *StatusPolicyTable
	errorDecoder   ErrorDecoder
	defaultHeaders map[string]string
	observer       observer
}

func NewDispatcher(cfg DispatcherConfig) (*Dispatcher, error) {
	if cfg.Transport == nil {
		return nil, fmt.Errorf("core: dispatcher transport is required")
	}
	if cfg.Codec == nil {
		return nil, fmt.Errorf("core: dispatcher codec is required")
	}
	policies := cfg.Policies
	if policies == nil {
		policies = NewStatusPolicyTable()
	}
	metrics := cfg.Metrics
	if metrics == nil {
		metrics = NopMetricsRecorder{}
	}
	return &Dispatcher{
		providerID:     strings.TrimSpace(cfg.ProviderID),
		transport:      cfg.Transport,
		codec:          cfg.Codec,
		session:        cfg.Session,
		policies:       policies,
		errorDecoder:   cfg.ErrorDecoder,
		defaultHeaders: copyStringMap(cfg.DefaultHeaders),
		observer: observer{
			logger:  glog.Ensure(cfg.Logger),
			metrics: metrics,
			prefix:  "clouds.dispatch",
		},
	}, nil
}

// WithSession returns a copy of d bound to session.
func (d *Dispatcher) WithSession(session SessionProvider) *Dispatcher {
	if d == nil {
		return nil
	}
	copied := *d
	copied.session = session
	copied.defaultHeaders = copyStringMap(d.defaultHeaders)
	return &copied
}

func (d *Dispatcher) Codec() Codec {
	if d == nil {
		return nil
	}
	return d.codec
}

func (d *Dispatcher) Policies() *StatusPolicyTable {
	if d == nil {
		return nil
	}
	return d.policies
}

func (d *Dispatcher) Do(ctx context.Context, req OperationRequest) (OperationResult, error) {
	if d == nil || d.transport == nil || d.codec == nil {
		return OperationResult{}, newCloudError("core: dispatcher is not configured", goerrors.CategoryInternal, CloudErrorInternal)
	}
	if ctx == nil {
		ctx = context.Background()
	}
	startedAt := time.Now().UTC()
	op := req.Operation
	result := OperationResult{Operation: op.Name, Phase: PhaseBuilt}
	fields := map[string]any{
		"provider_id": d.providerID,
		"operation":   op.Name,
		"method":      strings.ToUpper(strings.TrimSpace(op.Method)),
		"uri":         strings.TrimSpace(req.URI),
	}

	transportReq, err := d.build(ctx, req)
	if err != nil {
		d.finish(ctx, startedAt, result, err, fields)
		return result, err
	}

	result.Phase = PhaseSent
	response, err := d.transport.Do(ctx, transportReq)
	if err != nil {
		err = wrapDispatchError(err, goerrors.CategoryExternal, CloudErrorTransportFailed,
			"core: transport request failed", map[string]any{
				"operation": op.Name,
				"phase":     string(PhaseSent),
			})
		d.finish(ctx, startedAt, result, err, fields)
		return result, err
	}

	result.Phase = PhaseResponded
	result.StatusCode = response.StatusCode
	result.Headers = copyStringMap(response.Headers)
	result.MediaType = baseMediaType(response.Header("Content-Type"))

	result, err = d.resolve(op, transportReq, response, result)
	result.Phase = PhaseResolved
	d.finish(ctx, startedAt, result, err, fields)
	return result, err
}

func (d *Dispatcher) build(ctx context.Context, req OperationRequest) (TransportRequest, error) {
	op := req.Operation
	if strings.TrimSpace(op.Name) == "" {
		return TransportRequest{}, newBadInputError("core: operation name is required", nil)
	}
	method := strings.ToUpper(strings.TrimSpace(op.Method))
	switch method {
	case http.MethodGet, http.MethodPut, http.MethodPost, http.MethodDelete:
	default:
		return TransportRequest{}, newBadInputError(
			fmt.Sprintf("core: operation %s has unsupported method %q", op.Name, op.Method),
			map[string]any{"operation": op.Name, "phase": string(PhaseBuilt)},
		)
	}
	switch op.Result {
	case ResultObject, ResultTask, ResultVoid, ResultRaw:
	default:
		return TransportRequest{}, newBadInputError(
			fmt.Sprintf("core: operation %s has invalid result kind %q", op.Name, op.Result),
			map[string]any{"operation": op.Name, "phase": string(PhaseBuilt)},
		)
	}
	uri := strings.TrimSpace(req.URI)
	parsed, err := url.Parse(uri)
	if err != nil || !parsed.IsAbs() || parsed.Host == "" {
		return TransportRequest{}, newBadInputError(
			fmt.Sprintf("core: operation %s requires an absolute uri, got %q", op.Name, uri),
			map[string]any{"operation": op.Name, "phase": string(PhaseBuilt)},
		)
	}

	accept := strings.TrimSpace(op.AcceptMediaType)
	if accept == "" {
		accept = AnyMediaType
	}
	headers := copyStringMap(d.defaultHeaders)
	for key, value := range req.Headers {
		if strings.TrimSpace(key) == "" {
			continue
		}
		headers[key] = value
	}
	headers["Accept"] = accept

	var body []byte
	if req.Body != nil {
		bodyMediaType := strings.TrimSpace(op.BodyMediaType)
		if bodyMediaType == "" {
			return TransportRequest{}, newBadInputError(
				fmt.Sprintf("core: operation %s does not declare a body media type", op.Name),
				map[string]any{"operation": op.Name, "phase": string(PhaseBuilt)},
			)
		}
		encoded, encodeErr := d.codec.Encode(req.Body, bodyMediaType)
		if encodeErr != nil {
			return TransportRequest{}, wrapDispatchError(encodeErr, goerrors.CategoryBadInput, CloudErrorBadInput,
				"core: render request body", map[string]any{
					"operation":  op.Name,
					"media_type": bodyMediaType,
					"phase":      string(PhaseBuilt),
				})
		}
		body = encoded
		headers["Content-Type"] = bodyMediaType
	} else if strings.TrimSpace(op.BodyMediaType) != "" {
		return TransportRequest{}, newBadInputError(
			fmt.Sprintf("core: operation %s requires a request body", op.Name),
			map[string]any{"operation": op.Name, "phase": string(PhaseBuilt)},
		)
	}

	if d.session != nil {
		access, sessionErr := d.session.Access(ctx)
		if sessionErr != nil {
			return TransportRequest{}, sessionErr
		}
		for key, value := range access.AuthorizationHeaders() {
			headers[key] = value
		}
	}

	return TransportRequest{
		Method:  method,
		URL:     parsed.String(),
		Headers: headers,
		Body:    body,
		Metadata: map[string]any{
			"operation":   op.Name,
			"provider_id": d.providerID,
		},
	}, nil
}

func (d *Dispatcher) resolve(
	op Operation,
	req TransportRequest,
	response TransportResponse,
	result OperationResult,
) (OperationResult, error) {
	status := response.StatusCode
	if status >= 200 && status < 300 {
		result.Body = append([]byte(nil), response.Body...)
		if len(response.Body) == 0 || status == http.StatusNoContent {
			result.Body = nil
			if op.Result == ResultObject || op.Result == ResultTask {
				return result, newMediaTypeMismatch(op.Name, acceptOrAny(op.AcceptMediaType), "")
			}
			return result, nil
		}
		if op.Result == ResultVoid {
			return result, nil
		}
		if !MediaTypeMatches(acceptOrAny(op.AcceptMediaType), result.MediaType) {
			return result, newMediaTypeMismatch(op.Name, acceptOrAny(op.AcceptMediaType), result.MediaType)
		}
		return result, nil
	}

	outcome := d.policies.Resolve(op.Name, status)
	if outcome == OutcomeEmpty {
		result.Empty = true
		return result, nil
	}

	apiErr := &APIError{
		Operation:  op.Name,
		Method:     req.Method,
		URI:        req.URL,
		StatusCode: status,
		MediaType:  result.MediaType,
		Payload:    append([]byte(nil), response.Body...),
	}
	if d.errorDecoder != nil && len(response.Body) > 0 {
		if detail, decodeErr := d.errorDecoder(response.Body, result.MediaType); decodeErr == nil {
			apiErr.Detail = detail
		}
	}
	return result, newAPIFailure(apiErr, outcome)
}

func (d *Dispatcher) finish(ctx context.Context, startedAt time.Time, result OperationResult, err error, fields map[string]any) {
	fields = cloneFields(fields)
	fields["phase"] = string(result.Phase)
	if result.StatusCode > 0 {
		fields["status_code"] = result.StatusCode
	}
	if result.Empty {
		fields["empty"] = true
	}
	d.observer.record(ctx, observation{operation: result.Operation, started: startedAt, err: err, fields: fields})
}

// Invoke dispatches an object or task operation and decodes the body into T.
// An EmptyResult outcome returns nil without error.
func Invoke[T any](ctx context.Context, d *Dispatcher, req OperationRequest) (*T, error) {
	switch req.Operation.Result {
	case ResultObject:
	case ResultTask:
		if _, ok := any(new(T)).(Task); !ok {
			return nil, newBadInputError(
				fmt.Sprintf("core: operation %s declares a task result but %T is not a task", req.Operation.Name, new(T)),
				map[string]any{"operation": req.Operation.Name},
			)
		}
	default:
		return nil, newBadInputError(
			fmt.Sprintf("core: operation %s does not return a decoded body", req.Operation.Name),
			map[string]any{"operation": req.Operation.Name},
		)
	}
	result, err := d.Do(ctx, req)
	if err != nil {
		return nil, err
	}
	if result.Empty {
		return nil, nil
	}
	out := new(T)
	if err := d.codec.Decode(result.Body, result.MediaType, out); err != nil {
		return nil, wrapDispatchError(err, goerrors.CategoryOperation, CloudErrorOperationFailed,
			"core: parse response body", map[string]any{
				"operation":  req.Operation.Name,
				"media_type": result.MediaType,
				"phase":      string(PhaseResolved),
			})
	}
	return out, nil
}

func InvokeVoid(ctx context.Context, d *Dispatcher, req OperationRequest) error {
	if req.Operation.Result != ResultVoid {
		return newBadInputError(
			fmt.Sprintf("core: operation %s is not a void operation", req.Operation.Name),
			map[string]any{"operation": req.Operation.Name},
		)
	}
	_, err := d.Do(ctx, req)
	return err
}

// InvokeRaw returns the undecoded body and its media type.
func InvokeRaw(ctx context.Context, d *Dispatcher, req OperationRequest) ([]byte, string, error) {
	if req.Operation.Result != ResultRaw {
		return nil, "", newBadInputError(
			fmt.Sprintf("core: operation %s is not a raw operation", req.Operation.Name),
			map[string]any{"operation": req.Operation.Name},
		)
	}
	result, err := d.Do(ctx, req)
	if err != nil {
		return nil, "", err
	}
	if result.Empty {
		return nil, "", nil
	}
	return result.Body, result.MediaType, nil
}

// MediaTypeMatches reports whether contentType satisfies accept. Accept may be
// a comma separated list of media ranges; parameters are ignored.
func MediaTypeMatches(accept string, contentType string) bool {
	actual := baseMediaType(contentType)
	for _, candidate := range strings.Split(accept, ",") {
		expected := baseMediaType(candidate)
		switch {
		case expected == "":
			continue
		case expected == AnyMediaType:
			return true
		case actual == "":
			continue
		case strings.HasSuffix(expected, "/*"):
			if strings.HasPrefix(actual, strings.TrimSuffix(expected, "*")) {
				return true
			}
		case expected == actual:
			return true
		}
	}
	return false
}

func baseMediaType(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	parsed, _, err := mime.ParseMediaType(value)
	if err != nil {
		if idx := strings.Index(value, ";"); idx >= 0 {
			value = value[:idx]
		}
		return strings.ToLower(strings.TrimSpace(value))
	}
	return strings.ToLower(parsed)
}

func acceptOrAny(accept string) string {
	if strings.TrimSpace(accept) == "" {
		return AnyMediaType
	}
	return strings.TrimSpace(accept)
}

func lookupHeader(headers map[string]string, name string) string {
	if value, ok := headers[name]; ok {
		return value
	}
	for key, value := range headers {
		if strings.EqualFold(key, name) {
			return value
		}
	}
	return ""
}
