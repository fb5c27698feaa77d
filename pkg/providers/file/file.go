// Package file provides file variables, defined in a request document with
// "@name = value" lines.
package file

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/getmockd/httpvars/pkg/document"
	"github.com/getmockd/httpvars/pkg/logging"
	"github.com/getmockd/httpvars/pkg/variables"
)

// ErrCircularReference is returned when a file variable refers back to
// itself through its own value.
var ErrCircularReference = errors.New("circular file variable reference")

// TextResolver expands placeholders inside a file variable value.
// *variables.Resolver satisfies it.
type TextResolver interface {
	Resolve(ctx context.Context, doc *document.Document, text string, cache variables.Cache) string
}

// Provider resolves file variables.
type Provider struct {
	resolver TextResolver
	logger   *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) { p.logger = logging.WithComponent(logger, "file") }
}

// New creates a file variable provider. Values are returned verbatim until
// a resolver is bound.
func New(opts ...Option) *Provider {
	p := &Provider{logger: logging.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Bind sets the resolver used to expand nested placeholders. The resolver
// normally holds this provider in its registry, so it is bound after both
// are built.
func (p *Provider) Bind(r TextResolver) {
	p.resolver = r
}

// Kind returns variables.KindFile.
func (p *Provider) Kind() variables.Kind {
	return variables.KindFile
}

// Has reports whether doc defines name.
func (p *Provider) Has(_ context.Context, name string, doc *document.Document, _ variables.Snapshot) bool {
	if doc == nil {
		return false
	}
	_, ok := doc.FileVariable(name)
	return ok
}

// Get returns the value of name, with any placeholders in it expanded.
func (p *Provider) Get(ctx context.Context, name string, doc *document.Document, _ variables.Snapshot) variables.Outcome {
	value, ok := doc.FileVariable(name)
	if !ok {
		return variables.Warn("file variable %s is not defined", name)
	}
	if p.resolver == nil || !strings.Contains(value, "{{") {
		return variables.Value(value)
	}

	chain := expanding(ctx)
	for _, n := range chain {
		if n == name {
			return variables.Failed(fmt.Errorf("%w: %s", ErrCircularReference, strings.Join(append(chain, name), " -> ")))
		}
	}

	p.logger.DebugContext(ctx, "expanding file variable", "name", name)
	return variables.Value(p.resolver.Resolve(withExpanding(ctx, name), doc, value, nil))
}

// Definitions lists every file variable definition in document order,
// including redefinitions.
func (p *Provider) Definitions(_ context.Context, doc *document.Document) ([]variables.Definition, error) {
	if doc == nil {
		return nil, nil
	}
	defs := make([]variables.Definition, 0, len(doc.FileVariables))
	for _, fv := range doc.FileVariables {
		defs = append(defs, variables.Definition{Name: fv.Name, Kind: variables.KindFile})
	}
	return defs, nil
}

type chainKey struct{}

// expanding returns the file variables currently being expanded, outermost
// first.
func expanding(ctx context.Context) []string {
	chain, _ := ctx.Value(chainKey{}).([]string)
	return chain
}

func withExpanding(ctx context.Context, name string) context.Context {
	chain := expanding(ctx)
	next := make([]string, len(chain), len(chain)+1)
	copy(next, chain)
	return context.WithValue(ctx, chainKey{}, append(next, name))
}
