package system

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"log/slog"
	mathrand "math/rand/v2"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/getmockd/httpvars/pkg/document"
	"github.com/getmockd/httpvars/pkg/logging"
	"github.com/getmockd/httpvars/pkg/variables"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// System variable names.
const (
	GUID          = "$guid"
	RandomInt     = "$randomInt"
	Timestamp     = "$timestamp"
	Datetime      = "$datetime"
	LocalDatetime = "$localDatetime"
	ProcessEnv    = "$processEnv"
	Dotenv        = "$dotenv"
	FakerPrefix   = "$faker."
)

// DotenvFileName is looked up next to the request file.
const DotenvFileName = ".env"

var (
	// ErrUnknownVariable is returned for a $faker kind that does not exist.
	ErrUnknownVariable = errors.New("unknown system variable")
	// ErrInvalidArguments is returned when a system variable's arguments don't parse.
	ErrInvalidArguments = errors.New("invalid arguments")
	// ErrDotenvNotFound is returned when no .env file sits next to the document.
	ErrDotenvNotFound = errors.New(".env file not found")
)

var (
	randomIntRegex = regexp.MustCompile(`^(-?\d+)\s+(-?\d+)$`)
	offsetRegex    = regexp.MustCompile(`^(-?\d+)\s+(y|Q|M|w|d|h|m|s|ms)$`)
	datetimeRegex  = regexp.MustCompile(`^(rfc1123|iso8601|'[^']+'|"[^"]+")(?:\s+(-?\d+\s+(?:y|Q|M|w|d|h|m|s|ms)))?$`)
	envNameRegex   = regexp.MustCompile(`^%?[\w.-]+$`)
)

// EnvironmentLookup resolves a name through the active environment. It backs
// the %NAME form of $processEnv and $dotenv.
type EnvironmentLookup interface {
	Lookup(name string) (string, bool)
}

// Provider resolves built-in $ variables. Its values change between calls,
// so it must be registered as non-cacheable.
type Provider struct {
	now         func() time.Time
	location    *time.Location
	rng         *mathrand.Rand
	entropy     io.Reader
	lookupEnv   func(string) (string, bool)
	readDotenv  func(path string) (map[string]string, error)
	environment EnvironmentLookup
	logger      *slog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithClock injects the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// WithLocation sets the zone used by $localDatetime. Defaults to time.Local.
func WithLocation(loc *time.Location) Option {
	return func(p *Provider) { p.location = loc }
}

// WithSeed makes $guid, $randomInt and $faker values deterministic.
func WithSeed(seed uint64) Option {
	return func(p *Provider) {
		var key [32]byte
		binary.LittleEndian.PutUint64(key[:], seed)
		src := mathrand.NewChaCha8(key)
		p.rng = mathrand.New(src)
		p.entropy = src
	}
}

// WithProcessEnv replaces os.LookupEnv.
func WithProcessEnv(lookup func(string) (string, bool)) Option {
	return func(p *Provider) { p.lookupEnv = lookup }
}

// WithDotenvReader replaces the .env file reader.
func WithDotenvReader(read func(path string) (map[string]string, error)) Option {
	return func(p *Provider) { p.readDotenv = read }
}

// WithEnvironment sets the environment used for %NAME indirection.
func WithEnvironment(env EnvironmentLookup) Option {
	return func(p *Provider) { p.environment = env }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Provider) { p.logger = logging.WithComponent(logger, "system") }
}

// New creates a system variable provider.
func New(opts ...Option) *Provider {
	p := &Provider{
		now:        time.Now,
		location:   time.Local,
		lookupEnv:  os.LookupEnv,
		readDotenv: readDotenvFile,
		logger:     logging.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Kind returns variables.KindSystem.
func (p *Provider) Kind() variables.Kind {
	return variables.KindSystem
}

// Has claims every known system variable, whether or not its arguments are valid.
func (p *Provider) Has(_ context.Context, name string, _ *document.Document, _ variables.Snapshot) bool {
	if strings.HasPrefix(name, FakerPrefix) {
		return true
	}
	switch head, _ := split(name); head {
	case GUID, RandomInt, Timestamp, Datetime, LocalDatetime, ProcessEnv, Dotenv:
		return true
	}
	return false
}

// Get computes the value of a system variable.
func (p *Provider) Get(_ context.Context, name string, doc *document.Document, _ variables.Snapshot) variables.Outcome {
	if strings.HasPrefix(name, FakerPrefix) {
		return p.faker(strings.TrimPrefix(name, FakerPrefix))
	}

	head, args := split(name)
	switch head {
	case GUID:
		return variables.Value(p.guid())
	case RandomInt:
		return p.randomInt(args)
	case Timestamp:
		return p.timestamp(args)
	case Datetime:
		return p.datetime(args, time.UTC, false)
	case LocalDatetime:
		return p.datetime(args, p.location, true)
	case ProcessEnv:
		return p.processEnv(args)
	case Dotenv:
		return p.dotenv(args, doc)
	}
	return variables.Failed(fmt.Errorf("%w: %s", ErrUnknownVariable, head))
}

// split separates the variable head from its arguments.
func split(name string) (head, args string) {
	if i := strings.IndexAny(name, " \t"); i >= 0 {
		return name[:i], strings.TrimSpace(name[i+1:])
	}
	return name, ""
}

func (p *Provider) guid() string {
	if p.entropy != nil {
		if id, err := uuid.NewRandomFromReader(p.entropy); err == nil {
			return id.String()
		}
	}
	return uuid.NewString()
}

func (p *Provider) intN(n int) int {
	if n <= 0 {
		return 0
	}
	if p.rng != nil {
		return p.rng.IntN(n)
	}
	return mathrand.IntN(n)
}

func (p *Provider) uint64N(n uint64) uint64 {
	if p.rng != nil {
		return p.rng.Uint64N(n)
	}
	return mathrand.Uint64N(n)
}

// randomInt returns an integer in [min, max). The span is computed in uint64
// so any pair of int64 bounds works.
func (p *Provider) randomInt(args string) variables.Outcome {
	m := randomIntRegex.FindStringSubmatch(args)
	if m == nil {
		return variables.Failed(fmt.Errorf("%w: %s requires min and max", ErrInvalidArguments, RandomInt))
	}
	lo, err1 := strconv.ParseInt(m[1], 10, 64)
	hi, err2 := strconv.ParseInt(m[2], 10, 64)
	if err1 != nil || err2 != nil || hi <= lo {
		return variables.Failed(fmt.Errorf("%w: %s %s", ErrInvalidArguments, RandomInt, args))
	}
	span := uint64(hi) - uint64(lo)
	return variables.Value(strconv.FormatInt(int64(uint64(lo)+p.uint64N(span)), 10))
}

func (p *Provider) timestamp(args string) variables.Outcome {
	t, err := p.offsetTime(p.now(), args)
	if err != nil {
		return variables.Failed(err)
	}
	return variables.Value(strconv.FormatInt(t.Unix(), 10))
}

func (p *Provider) datetime(args string, loc *time.Location, local bool) variables.Outcome {
	m := datetimeRegex.FindStringSubmatch(args)
	if m == nil {
		return variables.Failed(fmt.Errorf("%w: expected rfc1123, iso8601 or a quoted format", ErrInvalidArguments))
	}
	t, err := p.offsetTime(p.now(), m[2])
	if err != nil {
		return variables.Failed(err)
	}
	return variables.Value(formatDatetime(t.In(loc), m[1], local))
}

// offsetTime applies an optional "<amount> <unit>" offset.
func (p *Provider) offsetTime(t time.Time, offset string) (time.Time, error) {
	if offset == "" {
		return t, nil
	}
	m := offsetRegex.FindStringSubmatch(offset)
	if m == nil {
		return t, fmt.Errorf("%w: bad offset %q", ErrInvalidArguments, offset)
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return t, fmt.Errorf("%w: bad offset %q", ErrInvalidArguments, offset)
	}
	switch m[2] {
	case "y":
		return t.AddDate(n, 0, 0), nil
	case "Q":
		return t.AddDate(0, 3*n, 0), nil
	case "M":
		return t.AddDate(0, n, 0), nil
	case "w":
		return t.AddDate(0, 0, 7*n), nil
	case "d":
		return t.AddDate(0, 0, n), nil
	case "h":
		return t.Add(time.Duration(n) * time.Hour), nil
	case "m":
		return t.Add(time.Duration(n) * time.Minute), nil
	case "s":
		return t.Add(time.Duration(n) * time.Second), nil
	default:
		return t.Add(time.Duration(n) * time.Millisecond), nil
	}
}

func (p *Provider) processEnv(args string) variables.Outcome {
	name, out, ok := p.envName(args, ProcessEnv)
	if !ok {
		return out
	}
	v, found := p.lookupEnv(name)
	if !found {
		return variables.Warn("environment variable %s not found", name)
	}
	return variables.Value(v)
}

func (p *Provider) dotenv(args string, doc *document.Document) variables.Outcome {
	name, out, ok := p.envName(args, Dotenv)
	if !ok {
		return out
	}
	if doc == nil || doc.Path == "" {
		return variables.Failed(fmt.Errorf("%w: document has no location", ErrDotenvNotFound))
	}

	path := filepath.Join(filepath.Dir(doc.Path), DotenvFileName)
	values, err := p.readDotenv(path)
	if err != nil {
		return variables.Failed(err)
	}
	p.logger.Debug("read dotenv file", "path", path, "keys", len(values))
	v, found := values[name]
	if !found {
		return variables.Warn("%s not found in %s", name, path)
	}
	return variables.Value(v)
}

// envName parses the [%]NAME argument. A leading % reads the real name from
// the active environment.
func (p *Provider) envName(args, variable string) (string, variables.Outcome, bool) {
	if !envNameRegex.MatchString(args) {
		return "", variables.Failed(fmt.Errorf("%w: %s requires a variable name", ErrInvalidArguments, variable)), false
	}
	if !strings.HasPrefix(args, "%") {
		return args, variables.Outcome{}, true
	}

	ref := args[1:]
	if p.environment == nil {
		return "", variables.Warn("no environment selected to resolve %%%s", ref), false
	}
	name, found := p.environment.Lookup(ref)
	if !found {
		return "", variables.Warn("%s is not defined in the current environment", ref), false
	}
	return name, variables.Outcome{}, true
}

func readDotenvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrDotenvNotFound, filepath.Dir(path))
		}
		return nil, err
	}
	return godotenv.Read(path)
}
