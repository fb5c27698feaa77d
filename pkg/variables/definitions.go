package variables

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/getmockd/httpvars/pkg/document"
)

// Index maps a variable name to the kinds that define it, in registry order.
// A name with more than one entry is defined by several sources.
type Index map[string][]Kind

// Names returns the defined names sorted alphabetically.
func (ix Index) Names() []string {
	names := make([]string, 0, len(ix))
	for name := range ix {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Redefined returns the sorted names defined more than once.
func (ix Index) Redefined() []string {
	var names []string
	for name, kinds := range ix {
		if len(kinds) > 1 {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Aggregator collects variable definitions from every enumerating provider.
type Aggregator struct {
	registry *Registry
	logger   *slog.Logger
}

// NewAggregator creates an Aggregator over registry.
func NewAggregator(registry *Registry, opts ...Option) *Aggregator {
	o := buildOptions(opts)
	return &Aggregator{registry: registry, logger: o.logger}
}

// Collect returns every name defined for doc. Providers are queried in
// registry order, so a name's kinds follow precedence rather than the order
// a single provider found them in. Any enumeration error aborts the call.
func (a *Aggregator) Collect(ctx context.Context, doc *document.Document) (Index, error) {
	index := make(Index)
	for _, en := range a.registry.Enumerators() {
		defs, err := en.Definitions(ctx, doc)
		if err != nil {
			return nil, fmt.Errorf("listing %s variables: %w", en.Kind(), err)
		}
		for _, def := range defs {
			index[def.Name] = append(index[def.Name], en.Kind())
		}
		a.logger.DebugContext(ctx, "collected definitions", "kind", en.Kind().String(), "count", len(defs))
	}
	return index, nil
}
