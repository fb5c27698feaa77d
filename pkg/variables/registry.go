package variables

// Entry pairs a provider with whether its successful values may be cached
// for the rest of a resolution pass.
type Entry struct {
	Provider  Provider
	Cacheable bool
}

// Registry is an ordered, immutable list of providers. Order is the only
// source of precedence.
type Registry struct {
	entries []Entry
}

// NewRegistry creates a Registry. Nil providers are skipped.
func NewRegistry(entries ...Entry) *Registry {
	r := &Registry{entries: make([]Entry, 0, len(entries))}
	for _, e := range entries {
		if e.Provider == nil {
			continue
		}
		r.entries = append(r.entries, e)
	}
	return r
}

// Entries returns a copy of the registry entries in precedence order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of providers.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Enumerators returns the providers that can list their definitions,
// in precedence order.
func (r *Registry) Enumerators() []Enumerator {
	var out []Enumerator
	for _, e := range r.entries {
		if en, ok := e.Provider.(Enumerator); ok {
			out = append(out, en)
		}
	}
	return out
}

// Lookup returns the first provider of the given kind.
func (r *Registry) Lookup(kind Kind) (Provider, bool) {
	for _, e := range r.entries {
		if e.Provider.Kind() == kind {
			return e.Provider, true
		}
	}
	return nil, false
}
