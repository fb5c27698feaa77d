package variables

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistry_SkipsNil(t *testing.T) {
	p := newFake(KindFile, nil)
	reg := NewRegistry(Entry{Provider: nil}, Entry{Provider: p, Cacheable: true})

	require.Equal(t, 1, reg.Len())
	assert.Equal(t, []Entry{{Provider: p, Cacheable: true}}, reg.Entries())
}

func TestRegistry_EntriesIsCopy(t *testing.T) {
	p := newFake(KindFile, nil)
	reg := NewRegistry(Entry{Provider: p, Cacheable: true})

	entries := reg.Entries()
	entries[0].Cacheable = false

	assert.True(t, reg.Entries()[0].Cacheable)
}

func TestRegistry_EnumeratorsAndLookup(t *testing.T) {
	system := newFake(KindSystem, nil)
	file := newEnumerator(KindFile)
	env := newEnumerator(KindEnvironment)
	reg := NewRegistry(Entry{Provider: system}, Entry{Provider: file}, Entry{Provider: env})

	ens := reg.Enumerators()
	require.Len(t, ens, 2)
	assert.Equal(t, KindFile, ens[0].Kind())
	assert.Equal(t, KindEnvironment, ens[1].Kind())

	got, ok := reg.Lookup(KindEnvironment)
	require.True(t, ok)
	assert.Same(t, env, got)

	_, ok = reg.Lookup(KindRequest)
	assert.False(t, ok)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "System", KindSystem.String())
	assert.Equal(t, "Request", KindRequest.String())
	assert.Equal(t, "File", KindFile.String())
	assert.Equal(t, "Environment", KindEnvironment.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())

	data, err := json.Marshal([]Kind{KindFile, KindEnvironment})
	require.NoError(t, err)
	assert.JSONEq(t, `["File","Environment"]`, string(data))
}

func TestOutcome_OK(t *testing.T) {
	assert.True(t, Value("").OK())
	assert.False(t, Warn("missing %s", "x").OK())
	assert.Equal(t, "missing x", Warn("missing %s", "x").Warning)
	assert.False(t, Failed(assert.AnError).OK())
}
