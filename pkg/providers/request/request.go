package request

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/getmockd/httpvars/pkg/document"
	"github.com/getmockd/httpvars/pkg/logging"
	"github.com/getmockd/httpvars/pkg/variables"
)

var (
	// ErrInvalidReference is returned for names that are not
	// <request>.(request|response).(body|headers)[.<path>].
	ErrInvalidReference = errors.New("invalid request variable reference")
	// ErrInvalidPath is returned when a JSONPath or XPath does not parse.
	ErrInvalidPath = errors.New("invalid path")
)

// Parts of a request variable reference.
const (
	PartRequest  = "request"
	PartResponse = "response"
	PartBody     = "body"
	PartHeaders  = "headers"
)

// Reference is a parsed request variable name.
type Reference struct {
	Request string
	Side    string // request or response
	Part    string // body or headers
	Path    string // JSONPath, XPath, header name, "*" or empty
}

// ParseReference splits name into its parts.
func ParseReference(name string) (Reference, error) {
	parts := strings.SplitN(name, ".", 4)
	if len(parts) < 3 {
		return Reference{}, fmt.Errorf("%w: %s", ErrInvalidReference, name)
	}
	ref := Reference{Request: parts[0], Side: parts[1], Part: parts[2]}
	if len(parts) == 4 {
		ref.Path = parts[3]
	}

	if ref.Side != PartRequest && ref.Side != PartResponse {
		return Reference{}, fmt.Errorf("%w: expected request or response, got %q", ErrInvalidReference, ref.Side)
	}
	if ref.Part != PartBody && ref.Part != PartHeaders {
		return Reference{}, fmt.Errorf("%w: expected body or headers, got %q", ErrInvalidReference, ref.Part)
	}
	if ref.Part == PartHeaders && ref.Path == "" {
		return Reference{}, fmt.Errorf("%w: missing header name", ErrInvalidReference)
	}
	return ref, nil
}

// Provider resolves values out of previously sent requests.
type Provider struct {
	store  Store
	logger *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) { p.logger = logging.WithComponent(logger, "request") }
}

// New creates a request variable provider backed by store. A nil store
// starts an empty in-memory one.
func New(store Store, opts ...Option) *Provider {
	if store == nil {
		store = NewMemoryStore()
	}
	p := &Provider{store: store, logger: logging.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Store returns the exchange store.
func (p *Provider) Store() Store {
	return p.store
}

// Kind returns variables.KindRequest.
func (p *Provider) Kind() variables.Kind {
	return variables.KindRequest
}

// Has claims a name whose first segment is a named request in doc. The rest
// of the reference is only checked by Get.
func (p *Provider) Has(_ context.Context, name string, doc *document.Document, _ variables.Snapshot) bool {
	if doc == nil {
		return false
	}
	reqName, _, _ := strings.Cut(name, ".")
	_, ok := doc.Request(reqName)
	return ok
}

// Get extracts the referenced value from the latest recorded exchange.
func (p *Provider) Get(_ context.Context, name string, doc *document.Document, _ variables.Snapshot) variables.Outcome {
	ref, err := ParseReference(name)
	if err != nil {
		return variables.Failed(err)
	}

	ex, ok, err := p.store.Get(doc.Path, ref.Request)
	if err != nil {
		return variables.Failed(fmt.Errorf("loading %s: %w", ref.Request, err))
	}
	if !ok {
		return variables.Warn("request %s has not been sent", ref.Request)
	}

	msg := ex.Response
	if ref.Side == PartRequest {
		msg = ex.Request
	}

	if ref.Part == PartHeaders {
		return headerValue(msg.Headers, ref.Path)
	}
	return bodyValue(msg.Body, ref.Path)
}

// Definitions lists every named request in doc.
func (p *Provider) Definitions(_ context.Context, doc *document.Document) ([]variables.Definition, error) {
	if doc == nil {
		return nil, nil
	}
	names := doc.RequestNames()
	defs := make([]variables.Definition, 0, len(names))
	for _, n := range names {
		defs = append(defs, variables.Definition{Name: n, Kind: variables.KindRequest})
	}
	return defs, nil
}

func headerValue(headers http.Header, name string) variables.Outcome {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return variables.Value(strings.Join(v, ", "))
		}
	}
	return variables.Warn("header %s not found", name)
}

func bodyValue(body, path string) variables.Outcome {
	switch {
	case path == "" || path == "*":
		return variables.Value(body)
	case strings.HasPrefix(path, "$"):
		return extractJSONPath(body, path)
	case strings.HasPrefix(path, "/"):
		return extractXPath(body, path)
	}
	return variables.Failed(fmt.Errorf("%w: %q is neither a JSONPath nor an XPath", ErrInvalidPath, path))
}

// formatValue converts an extracted value to text. Objects and arrays are
// rendered as JSON.
func formatValue(val any) string {
	switch v := val.(type) {
	case nil:
		return "null"
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
