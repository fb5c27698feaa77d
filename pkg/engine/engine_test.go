package engine

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/getmockd/httpvars/pkg/document"
	"github.com/getmockd/httpvars/pkg/providers/environment"
	"github.com/getmockd/httpvars/pkg/providers/request"
	"github.com/getmockd/httpvars/pkg/providers/system"
	"github.com/getmockd/httpvars/pkg/variables"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const apiFile = `@host = api.example.com
@base = https://{{host}}

###
# @name login
POST {{base}}/login
Content-Type: application/json

{"user": "{{user}}", "key": "{{$processEnv %keyVar}}"}

###
# @name me
GET {{base}}/me?v={{version}}
Authorization: Bearer {{login.response.body.$.token}}
X-Trace: {{$randomInt 1 2}}
`

const settingsYAML = `
$shared:
  version: v1
local:
  host: localhost
  user: dev
  keyVar: API_KEY
`

var fixedNow = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestEngine(t *testing.T) (*Engine, *document.Document) {
	t.Helper()
	settings, err := environment.ParseSettings([]byte(settingsYAML))
	require.NoError(t, err)

	e := New(
		WithSettings(settings),
		WithEnvironment("local"),
		WithClock(func() time.Time { return fixedNow }),
		WithSystemOptions(system.WithProcessEnv(func(name string) (string, bool) {
			if name == "API_KEY" {
				return "k-1", true
			}
			return "", false
		})),
	)
	return e, document.Parse("/work/api.http", apiFile)
}

func TestNew_StandardRegistryOrder(t *testing.T) {
	e, _ := newTestEngine(t)

	entries := e.Registry().Entries()
	require.Len(t, entries, 4)

	kinds := make([]variables.Kind, 0, len(entries))
	cacheable := make([]bool, 0, len(entries))
	for _, entry := range entries {
		kinds = append(kinds, entry.Provider.Kind())
		cacheable = append(cacheable, entry.Cacheable)
	}
	assert.Equal(t, []variables.Kind{variables.KindSystem, variables.KindRequest, variables.KindFile, variables.KindEnvironment}, kinds)
	assert.Equal(t, []bool{false, true, true, true}, cacheable)
}

func TestResolveRequest(t *testing.T) {
	e, doc := newTestEngine(t)
	ctx := context.Background()

	login, ok := doc.Request("login")
	require.True(t, ok)
	assert.Equal(t, "POST https://api.example.com/login\nContent-Type: application/json\n\n"+
		`{"user": "dev", "key": "k-1"}`, e.ResolveRequest(ctx, doc, login, nil))

	me, ok := doc.Request("me")
	require.True(t, ok)
	assert.Equal(t, "GET https://api.example.com/me?v=v1\n"+
		"Authorization: Bearer {{login.response.body.$.token}}\n"+
		"X-Trace: 1", e.ResolveRequest(ctx, doc, me, nil))

	assert.Empty(t, e.ResolveRequest(ctx, doc, nil, nil))
}

func TestRecord_EnablesRequestVariables(t *testing.T) {
	e, doc := newTestEngine(t)
	ctx := context.Background()

	ex := &request.Exchange{
		StatusCode: 200,
		Response: request.Message{
			Headers: http.Header{"Content-Type": {"application/json"}},
			Body:    `{"token":"t-9"}`,
		},
	}
	require.NoError(t, e.Record(doc, "login", ex))
	assert.Equal(t, fixedNow, ex.RecordedAt)

	assert.Equal(t, "Bearer t-9", e.Resolve(ctx, doc, "Bearer {{login.response.body.$.token}}", nil))
}

func TestRecord_Errors(t *testing.T) {
	e, doc := newTestEngine(t)

	err := e.Record(doc, "logout", &request.Exchange{})
	assert.ErrorIs(t, err, ErrUnknownRequest)

	assert.Error(t, e.Record(nil, "login", &request.Exchange{}))
	assert.Error(t, e.Record(doc, "login", nil))
}

func TestResolve_SharedCache(t *testing.T) {
	e, doc := newTestEngine(t)
	cache := variables.Cache{"host": "cached.example.com"}

	assert.Equal(t, "cached.example.com", e.Resolve(context.Background(), doc, "{{host}}", cache))
	assert.Equal(t, "v1", e.Resolve(context.Background(), doc, "{{version}}", cache))
	assert.Equal(t, "v1", cache["version"])
}

func TestDefinitions(t *testing.T) {
	e, doc := newTestEngine(t)

	index, err := e.Definitions(context.Background(), doc)
	require.NoError(t, err)

	assert.Equal(t, []variables.Kind{variables.KindRequest}, index["login"])
	assert.Equal(t, []variables.Kind{variables.KindFile, variables.KindEnvironment}, index["host"])
	assert.Equal(t, []variables.Kind{variables.KindEnvironment}, index["version"])
	assert.Equal(t, []string{"host"}, index.Redefined())
}

func TestEnvironments(t *testing.T) {
	e, _ := newTestEngine(t)
	assert.Equal(t, []string{"local"}, e.Environments())
	assert.Equal(t, "local", e.ActiveEnvironment())

	empty := New()
	assert.Empty(t, empty.Environments())
	assert.Equal(t, "{{host}}", empty.Resolve(context.Background(), nil, "{{host}}", nil))
}
