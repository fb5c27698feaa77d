package environment

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/getmockd/httpvars/pkg/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const settingsYAML = `
$shared:
  version: v1
  timeout: 30
  debug: false
local:
  host: localhost:8080
  base: http://localhost:8080/{{$shared version}}
  broken: "{{$shared nope}}"
production:
  host: api.example.com
  version: v2
`

func mustParse(t *testing.T, data string) *Settings {
	t.Helper()
	s, err := ParseSettings([]byte(data))
	require.NoError(t, err)
	return s
}

func TestParseSettings(t *testing.T) {
	s := mustParse(t, settingsYAML)

	assert.Equal(t, []string{"local", "production"}, s.Names())
	assert.Equal(t, "30", s.Environments[SharedEnvironment]["timeout"])
	assert.Equal(t, "false", s.Environments[SharedEnvironment]["debug"])
}

func TestParseSettings_JSONAndVSCode(t *testing.T) {
	s := mustParse(t, `{"dev": {"host": "dev.local", "port": 8080, "token": null}}`)
	assert.Equal(t, map[string]string{"host": "dev.local", "port": "8080", "token": ""}, s.Environments["dev"])

	s = mustParse(t, `{
  "editor.tabSize": 2,
  "rest-client.environmentVariables": {
    "$shared": {"version": "v1"},
    "staging": {"host": "staging.local"}
  }
}`)
	assert.Equal(t, []string{"staging"}, s.Names())
	assert.Equal(t, "v1", s.Environments[SharedEnvironment]["version"])
}

func TestParseSettings_Invalid(t *testing.T) {
	for name, data := range map[string]string{
		"not yaml":        "local: [",
		"top-level list":  "- a\n- b\n",
		"scalar env":      "local: 5\n",
		"nested object":   "local:\n  host:\n    name: x\n",
		"list value":      "local:\n  hosts: [a, b]\n",
		"non-string keys": "1:\n  a: b\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := ParseSettings([]byte(data))
			assert.ErrorIs(t, err, ErrInvalidSettings)
		})
	}
}

func TestParseSettings_Empty(t *testing.T) {
	s := mustParse(t, "")
	assert.Empty(t, s.Names())
}

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(settingsYAML), 0o644))

	s, err := LoadSettings(path)
	require.NoError(t, err)
	assert.Len(t, s.Environments, 3)

	_, err = LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLookup(t *testing.T) {
	p := New(mustParse(t, settingsYAML), "local")

	tests := []struct {
		name string
		want string
		ok   bool
	}{
		{"host", "localhost:8080", true},
		{"version", "v1", true},
		{"base", "http://localhost:8080/v1", true},
		{"broken", "{{$shared nope}}", true},
		{"missing", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := p.Lookup(tt.name)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLookup_ActiveOverridesShared(t *testing.T) {
	p := New(mustParse(t, settingsYAML), "production")

	v, ok := p.Lookup("version")
	require.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestHasGet(t *testing.T) {
	p := New(mustParse(t, settingsYAML), "local")
	ctx := context.Background()

	assert.True(t, p.Has(ctx, "host", nil, variables.Snapshot{}))
	assert.False(t, p.Has(ctx, "nope", nil, variables.Snapshot{}))

	out := p.Get(ctx, "host", nil, variables.Snapshot{})
	require.True(t, out.OK())
	assert.Equal(t, "localhost:8080", out.Value)

	assert.NotEmpty(t, p.Get(ctx, "nope", nil, variables.Snapshot{}).Warning)
	assert.Equal(t, variables.KindEnvironment, p.Kind())
}

func TestUnknownOrEmptyEnvironment(t *testing.T) {
	for _, active := range []string{"", "qa"} {
		p := New(mustParse(t, settingsYAML), active)

		_, ok := p.Lookup("host")
		assert.False(t, ok)
		v, ok := p.Lookup("version")
		assert.True(t, ok)
		assert.Equal(t, "v1", v)
	}

	p := New(nil, "local")
	_, ok := p.Lookup("host")
	assert.False(t, ok)
	assert.Empty(t, p.Environments())
}

func TestDefinitions(t *testing.T) {
	p := New(mustParse(t, settingsYAML), "production")

	defs, err := p.Definitions(context.Background(), nil)
	require.NoError(t, err)

	var names []string
	for _, d := range defs {
		assert.Equal(t, variables.KindEnvironment, d.Kind)
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"debug", "host", "timeout", "version"}, names)
}

func TestEnvironments(t *testing.T) {
	p := New(mustParse(t, settingsYAML), "local")
	assert.Equal(t, []string{"local", "production"}, p.Environments())
	assert.Equal(t, "local", p.Active())
}
