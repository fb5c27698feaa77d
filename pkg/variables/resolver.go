package variables

import (
	"context"
	"iter"
	"log/slog"
	"regexp"
	"strings"

	"github.com/getmockd/httpvars/pkg/document"
	"github.com/getmockd/httpvars/pkg/logging"
)

// placeholderRegex matches {{name}} non-greedily. The name never spans lines.
var placeholderRegex = regexp.MustCompile(`\{\{(.+?)\}\}`)

// Option configures a Resolver or Aggregator.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for debug output. Logging never changes
// what is resolved.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Resolver substitutes {{name}} placeholders using a provider registry.
type Resolver struct {
	registry *Registry
	logger   *slog.Logger
}

// NewResolver creates a Resolver over registry.
func NewResolver(registry *Registry, opts ...Option) *Resolver {
	o := buildOptions(opts)
	return &Resolver{registry: registry, logger: o.logger}
}

// match is one placeholder occurrence in the source text.
type match struct {
	start, end int
	name       string
}

// placeholders yields placeholder matches left to right.
func placeholders(text string) iter.Seq[match] {
	return func(yield func(match) bool) {
		for _, loc := range placeholderRegex.FindAllStringSubmatchIndex(text, -1) {
			m := match{
				start: loc[0],
				end:   loc[1],
				name:  strings.TrimSpace(text[loc[2]:loc[3]]),
			}
			if !yield(m) {
				return
			}
		}
	}
}

// Resolve replaces every placeholder in text. Names that no provider can
// resolve are written back as {{name}} with surrounding whitespace trimmed.
//
// Cacheable successes are stored in cache, and names already in cache skip
// the providers entirely. A nil cache starts empty. Resolve never fails.
func (r *Resolver) Resolve(ctx context.Context, doc *document.Document, text string, cache Cache) string {
	if cache == nil {
		cache = make(Cache)
	}

	var b strings.Builder
	last := 0
	for m := range placeholders(text) {
		b.WriteString(text[last:m.start])
		last = m.end

		snap := Snapshot{RawRequest: text, ParsedRequest: b.String()}
		if res := r.resolveName(ctx, m.name, doc, snap, cache); res.resolved {
			b.WriteString(res.value)
		} else {
			b.WriteString("{{" + m.name + "}}")
		}
	}
	b.WriteString(text[last:])
	return b.String()
}

// resolution is the decision for a single placeholder: either a value or
// the literal placeholder.
type resolution struct {
	value    string
	resolved bool
}

func literal() resolution { return resolution{} }

// resolveName walks the registry in order. The first provider that claims
// the name decides the result; a failure from it is not retried further
// down the chain.
func (r *Resolver) resolveName(ctx context.Context, name string, doc *document.Document, snap Snapshot, cache Cache) resolution {
	if v, ok := cache[name]; ok {
		return resolution{value: v, resolved: true}
	}

	for _, e := range r.registry.entries {
		if !e.Provider.Has(ctx, name, doc, snap) {
			continue
		}

		out := e.Provider.Get(ctx, name, doc, snap)
		if !out.OK() {
			r.logUnresolved(ctx, name, e.Provider.Kind(), out)
			return literal()
		}
		if e.Cacheable {
			cache[name] = out.Value
		}
		return resolution{value: out.Value, resolved: true}
	}
	return literal()
}

// logUnresolved reports a claimed name that failed. When both an error and
// a warning are set the error is logged.
func (r *Resolver) logUnresolved(ctx context.Context, name string, kind Kind, out Outcome) {
	if out.Err != nil {
		r.logger.DebugContext(ctx, "variable not resolved", "name", name, "kind", kind.String(), "error", out.Err)
		return
	}
	r.logger.DebugContext(ctx, "variable not resolved", "name", name, "kind", kind.String(), "warning", out.Warning)
}
