package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/getmockd/httpvars/pkg/document"
	"github.com/getmockd/httpvars/pkg/logging"
	"github.com/getmockd/httpvars/pkg/providers/environment"
	"github.com/getmockd/httpvars/pkg/providers/file"
	"github.com/getmockd/httpvars/pkg/providers/request"
	"github.com/getmockd/httpvars/pkg/providers/system"
	"github.com/getmockd/httpvars/pkg/variables"
)

// Engine is the standard resolution setup: system, request, file and
// environment providers behind one resolver and aggregator.
type Engine struct {
	registry   *variables.Registry
	resolver   *variables.Resolver
	aggregator *variables.Aggregator

	system      *system.Provider
	request     *request.Provider
	file        *file.Provider
	environment *environment.Provider

	now    func() time.Time
	logger *slog.Logger
}

// Option is a functional option for configuring an Engine.
type Option func(*settings)

type settings struct {
	envSettings *environment.Settings
	envName     string
	store       request.Store
	systemOpts  []system.Option
	now         func() time.Time
	logger      *slog.Logger
}

// WithSettings sets the environment settings.
func WithSettings(s *environment.Settings) Option {
	return func(o *settings) { o.envSettings = s }
}

// WithEnvironment selects the active environment.
func WithEnvironment(name string) Option {
	return func(o *settings) { o.envName = name }
}

// WithStore sets the store that request variables read from and Record
// writes to. Defaults to an in-memory store.
func WithStore(store request.Store) Option {
	return func(o *settings) { o.store = store }
}

// WithSystemOptions passes options to the system provider, e.g. a fixed
// clock or seed.
func WithSystemOptions(opts ...system.Option) Option {
	return func(o *settings) { o.systemOpts = append(o.systemOpts, opts...) }
}

// WithClock sets the time source used for system variables and for
// stamping recorded exchanges.
func WithClock(now func() time.Time) Option {
	return func(o *settings) { o.now = now }
}

// WithLogger sets the logger shared by the engine and its providers.
func WithLogger(logger *slog.Logger) Option {
	return func(o *settings) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New builds an Engine with the standard registry:
//
//	system (not cached), request, file, environment
func New(opts ...Option) *Engine {
	o := settings{now: time.Now, logger: logging.Nop()}
	for _, opt := range opts {
		opt(&o)
	}

	env := environment.New(o.envSettings, o.envName, environment.WithLogger(o.logger))
	sysOpts := append([]system.Option{
		system.WithClock(o.now),
		system.WithEnvironment(env),
		system.WithLogger(o.logger),
	}, o.systemOpts...)

	e := &Engine{
		system:      system.New(sysOpts...),
		request:     request.New(o.store, request.WithLogger(o.logger)),
		file:        file.New(file.WithLogger(o.logger)),
		environment: env,
		now:         o.now,
		logger:      logging.WithComponent(o.logger, "engine"),
	}

	e.registry = variables.NewRegistry(
		variables.Entry{Provider: e.system, Cacheable: false},
		variables.Entry{Provider: e.request, Cacheable: true},
		variables.Entry{Provider: e.file, Cacheable: true},
		variables.Entry{Provider: e.environment, Cacheable: true},
	)
	e.resolver = variables.NewResolver(e.registry, variables.WithLogger(o.logger))
	e.aggregator = variables.NewAggregator(e.registry, variables.WithLogger(o.logger))
	e.file.Bind(e.resolver)
	return e
}

// Registry returns the provider registry.
func (e *Engine) Registry() *variables.Registry {
	return e.registry
}

// Resolve substitutes every placeholder in text.
func (e *Engine) Resolve(ctx context.Context, doc *document.Document, text string, cache variables.Cache) string {
	return e.resolver.Resolve(ctx, doc, text, cache)
}

// ResolveRequest resolves the text of req, a request of doc.
func (e *Engine) ResolveRequest(ctx context.Context, doc *document.Document, req *document.Request, cache variables.Cache) string {
	if req == nil {
		return ""
	}
	return e.resolver.Resolve(ctx, doc, req.Text, cache)
}

// Definitions lists every variable defined for doc.
func (e *Engine) Definitions(ctx context.Context, doc *document.Document) (variables.Index, error) {
	return e.aggregator.Collect(ctx, doc)
}

// Record stores the exchange of a named request so later requests can
// reference it. A zero RecordedAt is set to the current time.
func (e *Engine) Record(doc *document.Document, name string, ex *request.Exchange) error {
	if doc == nil || ex == nil {
		return fmt.Errorf("record %s: missing document or exchange", name)
	}
	if _, ok := doc.Request(name); !ok {
		return fmt.Errorf("record %s: %w", name, ErrUnknownRequest)
	}
	if ex.RecordedAt.IsZero() {
		ex.RecordedAt = e.now().UTC()
	}
	if err := e.request.Store().Save(doc.Path, name, ex); err != nil {
		return fmt.Errorf("record %s: %w", name, err)
	}
	e.logger.Debug("recorded exchange", "document", doc.Path, "request", name, "status", ex.StatusCode)
	return nil
}

// Environments lists the environments in the settings.
func (e *Engine) Environments() []string {
	return e.environment.Environments()
}

// ActiveEnvironment returns the selected environment name.
func (e *Engine) ActiveEnvironment() string {
	return e.environment.Active()
}
