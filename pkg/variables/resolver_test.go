package variables

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/getmockd/httpvars/pkg/document"
	"github.com/getmockd/httpvars/pkg/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProvider answers from a fixed table and records every call.
type fakeProvider struct {
	kind     Kind
	values   map[string]Outcome
	hasCalls []string
	getCalls []string
	snaps    []Snapshot
}

func newFake(kind Kind, values map[string]string) *fakeProvider {
	p := &fakeProvider{kind: kind, values: make(map[string]Outcome)}
	for k, v := range values {
		p.values[k] = Value(v)
	}
	return p
}

func (p *fakeProvider) Kind() Kind { return p.kind }

func (p *fakeProvider) Has(_ context.Context, name string, _ *document.Document, snap Snapshot) bool {
	p.hasCalls = append(p.hasCalls, name)
	_, ok := p.values[name]
	return ok
}

func (p *fakeProvider) Get(_ context.Context, name string, _ *document.Document, snap Snapshot) Outcome {
	p.getCalls = append(p.getCalls, name)
	p.snaps = append(p.snaps, snap)
	return p.values[name]
}

func resolve(t *testing.T, reg *Registry, text string, cache Cache) string {
	t.Helper()
	return NewResolver(reg).Resolve(context.Background(), &document.Document{}, text, cache)
}

// =============================================================================
// Scanning
// =============================================================================

func TestResolve_NoPlaceholders(t *testing.T) {
	p := newFake(KindFile, map[string]string{"a": "1"})
	reg := NewRegistry(Entry{Provider: p, Cacheable: true})

	for _, text := range []string{"", "GET /health", "{ not a placeholder }", "{{", "}}{{"} {
		assert.Equal(t, text, resolve(t, reg, text, nil))
	}
	assert.Empty(t, p.hasCalls)
}

func TestResolve_UnclaimedIsLiteral(t *testing.T) {
	reg := NewRegistry(Entry{Provider: newFake(KindFile, nil), Cacheable: true})

	assert.Equal(t, "{{x}}", resolve(t, reg, "{{x}}", nil))
	assert.Equal(t, "{{x}}", resolve(t, NewRegistry(), "{{x}}", nil))
}

func TestResolve_WhitespaceTrimmedInLiteral(t *testing.T) {
	reg := NewRegistry()
	assert.Equal(t, "{{name}}", resolve(t, reg, "{{  name  }}", nil))
}

func TestResolve_WhitespaceTrimmedForLookup(t *testing.T) {
	reg := NewRegistry(Entry{Provider: newFake(KindFile, map[string]string{"name": "v"}), Cacheable: true})
	assert.Equal(t, "[v]", resolve(t, reg, "[{{ name\t}}]", nil))
}

func TestResolve_MixedText(t *testing.T) {
	reg := NewRegistry(Entry{Provider: newFake(KindEnvironment, map[string]string{"host": "example.com"}), Cacheable: true})

	got := resolve(t, reg, "GET {{host}}/api?id={{id}}", nil)
	assert.Equal(t, "GET example.com/api?id={{id}}", got)
}

func TestResolve_NonGreedyAndMultiline(t *testing.T) {
	reg := NewRegistry(Entry{Provider: newFake(KindFile, map[string]string{"a": "1", "b": "2"}), Cacheable: true})

	assert.Equal(t, "12", resolve(t, reg, "{{a}}{{b}}", nil))
	assert.Equal(t, "1\n2\n", resolve(t, reg, "{{a}}\n{{b}}\n", nil))
	// A placeholder never spans a line break.
	assert.Equal(t, "{{a\n}}", resolve(t, reg, "{{a\n}}", nil))
}

func TestResolve_SnapshotSeesOutputSoFar(t *testing.T) {
	p := newFake(KindFile, map[string]string{"a": "1", "b": "2"})
	reg := NewRegistry(Entry{Provider: p, Cacheable: false})

	text := "x={{a}}&y={{b}}"
	require.Equal(t, "x=1&y=2", resolve(t, reg, text, nil))

	require.Len(t, p.snaps, 2)
	assert.Equal(t, Snapshot{RawRequest: text, ParsedRequest: "x="}, p.snaps[0])
	assert.Equal(t, Snapshot{RawRequest: text, ParsedRequest: "x=1&y="}, p.snaps[1])
}

// =============================================================================
// Cache
// =============================================================================

func TestResolve_CacheShortCircuits(t *testing.T) {
	p := newFake(KindFile, map[string]string{"a": "provider"})
	reg := NewRegistry(Entry{Provider: p, Cacheable: true})

	got := resolve(t, reg, "{{a}}", Cache{"a": "v"})
	assert.Equal(t, "v", got)
	assert.Empty(t, p.hasCalls)
	assert.Empty(t, p.getCalls)
}

func TestResolve_CacheableHitIsStored(t *testing.T) {
	p := newFake(KindFile, map[string]string{"a": "1"})
	reg := NewRegistry(Entry{Provider: p, Cacheable: true})
	cache := Cache{}

	assert.Equal(t, "1 1", resolve(t, reg, "{{a}} {{a}}", cache))
	assert.Equal(t, Cache{"a": "1"}, cache)
	assert.Equal(t, []string{"a"}, p.getCalls)
}

func TestResolve_NonCacheableNotStored(t *testing.T) {
	p := newFake(KindSystem, map[string]string{"$guid": "g"})
	reg := NewRegistry(Entry{Provider: p, Cacheable: false})
	cache := Cache{}

	assert.Equal(t, "g g", resolve(t, reg, "{{$guid}} {{$guid}}", cache))
	assert.Empty(t, cache)
	assert.Equal(t, []string{"$guid", "$guid"}, p.getCalls)
}

func TestResolve_CacheSharedAcrossCalls(t *testing.T) {
	p := newFake(KindFile, map[string]string{"a": "1"})
	r := NewResolver(NewRegistry(Entry{Provider: p, Cacheable: true}))
	cache := Cache{}
	doc := &document.Document{}

	r.Resolve(context.Background(), doc, "{{a}}", cache)
	r.Resolve(context.Background(), doc, "{{a}}", cache)
	assert.Len(t, p.getCalls, 1)
}

// =============================================================================
// Precedence and failures
// =============================================================================

func TestResolve_EarlierProviderWins(t *testing.T) {
	first := newFake(KindRequest, map[string]string{"x": "first"})
	second := newFake(KindEnvironment, map[string]string{"x": "second"})
	reg := NewRegistry(
		Entry{Provider: first, Cacheable: true},
		Entry{Provider: second, Cacheable: true},
	)

	assert.Equal(t, "first", resolve(t, reg, "{{x}}", nil))
	assert.Empty(t, second.hasCalls)
	assert.Empty(t, second.getCalls)
}

func TestResolve_FallsThroughUnclaimingProviders(t *testing.T) {
	first := newFake(KindRequest, nil)
	second := newFake(KindEnvironment, map[string]string{"x": "second"})
	reg := NewRegistry(
		Entry{Provider: first, Cacheable: true},
		Entry{Provider: second, Cacheable: true},
	)

	assert.Equal(t, "second", resolve(t, reg, "{{x}}", nil))
	assert.Equal(t, []string{"x"}, first.hasCalls)
	assert.Empty(t, first.getCalls)
}

func TestResolve_ClaimedButFailedStopsChain(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
	}{
		{"error", Failed(errors.New("boom"))},
		{"warning", Warn("not sent")},
		{"both", Outcome{Err: errors.New("boom"), Warning: "also"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := &fakeProvider{kind: KindFile, values: map[string]Outcome{"x": tt.outcome}}
			second := newFake(KindEnvironment, map[string]string{"x": "fallback"})
			reg := NewRegistry(
				Entry{Provider: first, Cacheable: true},
				Entry{Provider: second, Cacheable: true},
			)
			cache := Cache{}

			assert.Equal(t, "a {{x}} b", resolve(t, reg, "a {{ x }} b", cache))
			assert.Empty(t, second.hasCalls)
			assert.Empty(t, cache)
		})
	}
}

func TestResolve_FailureLoggedNotReturned(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.New(logging.Config{Level: logging.LevelDebug, Output: &buf})
	p := &fakeProvider{kind: KindFile, values: map[string]Outcome{"x": {Err: errors.New("boom"), Warning: "w"}}}
	r := NewResolver(NewRegistry(Entry{Provider: p}), WithLogger(logger))

	got := r.Resolve(context.Background(), &document.Document{}, "{{x}}", nil)
	assert.Equal(t, "{{x}}", got)
	assert.Contains(t, buf.String(), "error=boom")
	assert.NotContains(t, buf.String(), "warning=")
}

func TestResolve_EmptyValueIsSuccess(t *testing.T) {
	p := newFake(KindFile, map[string]string{"empty": ""})
	reg := NewRegistry(Entry{Provider: p, Cacheable: true})
	cache := Cache{}

	assert.Equal(t, "[]", resolve(t, reg, "[{{empty}}]", cache))
	assert.Equal(t, Cache{"empty": ""}, cache)
}
