package environment

import (
	"context"
	"log/slog"
	"regexp"
	"slices"

	"github.com/getmockd/httpvars/pkg/document"
	"github.com/getmockd/httpvars/pkg/logging"
	"github.com/getmockd/httpvars/pkg/variables"
)

var sharedRefRegex = regexp.MustCompile(`\{\{\s*\$shared\s+(\S+?)\s*\}\}`)

// Provider resolves variables of the active environment, falling back to
// $shared.
type Provider struct {
	settings *Settings
	active   string
	logger   *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) { p.logger = logging.WithComponent(logger, "environment") }
}

// New creates a provider over settings with active as the current
// environment. A nil settings value behaves as an empty file; an empty
// active name selects only $shared.
func New(settings *Settings, active string, opts ...Option) *Provider {
	if settings == nil {
		settings = &Settings{Environments: make(map[string]map[string]string)}
	}
	p := &Provider{settings: settings, active: active, logger: logging.Nop()}
	for _, opt := range opts {
		opt(p)
	}
	if active != "" && active != SharedEnvironment {
		if _, ok := settings.Environments[active]; !ok {
			p.logger.Warn("environment not found in settings", "environment", active)
		}
	}
	return p
}

// Active returns the selected environment name.
func (p *Provider) Active() string {
	return p.active
}

// Environments lists the environments in the settings, sorted.
func (p *Provider) Environments() []string {
	return p.settings.Names()
}

// Kind returns variables.KindEnvironment.
func (p *Provider) Kind() variables.Kind {
	return variables.KindEnvironment
}

// Has reports whether the active environment or $shared defines name.
func (p *Provider) Has(_ context.Context, name string, _ *document.Document, _ variables.Snapshot) bool {
	_, ok := p.Lookup(name)
	return ok
}

// Get returns the value of name.
func (p *Provider) Get(_ context.Context, name string, _ *document.Document, _ variables.Snapshot) variables.Outcome {
	v, ok := p.Lookup(name)
	if !ok {
		return variables.Warn("environment variable %s is not defined", name)
	}
	return variables.Value(v)
}

// Lookup returns the value of name in the active environment, or in
// $shared when the active environment does not define it. {{$shared x}}
// references in the value are replaced from $shared.
func (p *Provider) Lookup(name string) (string, bool) {
	v, ok := p.settings.Environments[p.active][name]
	if !ok {
		v, ok = p.settings.Environments[SharedEnvironment][name]
	}
	if !ok {
		return "", false
	}
	return p.expandShared(v), true
}

func (p *Provider) expandShared(v string) string {
	shared := p.settings.Environments[SharedEnvironment]
	return sharedRefRegex.ReplaceAllStringFunc(v, func(ref string) string {
		name := sharedRefRegex.FindStringSubmatch(ref)[1]
		if sv, ok := shared[name]; ok {
			return sv
		}
		return ref
	})
}

// Definitions lists the names visible in the active environment, sorted.
func (p *Provider) Definitions(_ context.Context, _ *document.Document) ([]variables.Definition, error) {
	var names []string
	for name := range p.settings.Environments[p.active] {
		names = append(names, name)
	}
	for name := range p.settings.Environments[SharedEnvironment] {
		names = append(names, name)
	}
	slices.Sort(names)
	names = slices.Compact(names)

	defs := make([]variables.Definition, 0, len(names))
	for _, n := range names {
		defs = append(defs, variables.Definition{Name: n, Kind: variables.KindEnvironment})
	}
	return defs, nil
}
