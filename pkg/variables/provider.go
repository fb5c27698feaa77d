package variables

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/getmockd/httpvars/pkg/document"
)

// Kind identifies the source a value or definition came from.
type Kind int

// Variable kinds.
const (
	KindSystem Kind = iota
	KindRequest
	KindFile
	KindEnvironment
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSystem:
		return "System"
	case KindRequest:
		return "Request"
	case KindFile:
		return "File"
	case KindEnvironment:
		return "Environment"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// MarshalJSON encodes the kind by name.
func (k Kind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// Snapshot is the read-only view of a resolution pass handed to providers.
type Snapshot struct {
	// RawRequest is the text being resolved.
	RawRequest string

	// ParsedRequest is the output accumulated up to the current placeholder.
	ParsedRequest string
}

// Outcome is the result of a provider lookup. It is a success only when
// neither Err nor Warning is set.
type Outcome struct {
	Value   string
	Err     error
	Warning string
}

// OK reports whether the outcome carries a usable value.
func (o Outcome) OK() bool {
	return o.Err == nil && o.Warning == ""
}

// Value returns a successful outcome.
func Value(v string) Outcome {
	return Outcome{Value: v}
}

// Failed returns an outcome carrying err.
func Failed(err error) Outcome {
	return Outcome{Err: err}
}

// Warn returns an outcome carrying a formatted warning.
func Warn(format string, args ...any) Outcome {
	return Outcome{Warning: fmt.Sprintf(format, args...)}
}

// Provider is a source of variable values of one Kind.
//
// Get is only called after Has returned true for the same name, document
// and snapshot. Providers must not panic; failures are reported through
// the Outcome.
type Provider interface {
	Kind() Kind
	Has(ctx context.Context, name string, doc *document.Document, snap Snapshot) bool
	Get(ctx context.Context, name string, doc *document.Document, snap Snapshot) Outcome
}

// Definition is a variable name defined by a provider.
type Definition struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Enumerator is implemented by providers that can list the names they define.
type Enumerator interface {
	Provider
	Definitions(ctx context.Context, doc *document.Document) ([]Definition, error)
}

// Cache maps variable names to already resolved values.
type Cache map[string]string
