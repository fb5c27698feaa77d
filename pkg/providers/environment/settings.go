package environment

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

// ErrInvalidSettings is returned for settings files that do not parse or do
// not match the settings schema.
var ErrInvalidSettings = errors.New("invalid environment settings")

// SharedEnvironment holds variables available in every environment.
const SharedEnvironment = "$shared"

// VSCodeSettingsKey is the key under which a VS Code settings.json keeps
// environments. When present, only that key is read.
const VSCodeSettingsKey = "rest-client.environmentVariables"

//go:embed schema.json
var schemaJSON []byte

var compiledSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("schema.json", bytes.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("failed to add schema resource: %w", err)
	}
	return compiler.Compile("schema.json")
})

// Settings maps environment names to their variables.
type Settings struct {
	Environments map[string]map[string]string
}

// LoadSettings reads a YAML or JSON settings file.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}
	s, err := ParseSettings(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseSettings parses settings from YAML or JSON. Numbers, booleans and
// nulls are converted to text.
func ParseSettings(data []byte) (*Settings, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if raw == nil {
		return &Settings{Environments: make(map[string]map[string]string)}, nil
	}

	// Round-trip through JSON so the validator sees JSON types.
	jsonBytes, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	var doc any
	if err := json.Unmarshal(jsonBytes, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	if m, ok := doc.(map[string]any); ok {
		if nested, ok := m[VSCodeSettingsKey]; ok {
			doc = nested
		}
	}

	schema, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}

	envs := make(map[string]map[string]string)
	for env, vars := range doc.(map[string]any) {
		values := make(map[string]string)
		for name, v := range vars.(map[string]any) {
			values[name] = stringify(v)
		}
		envs[env] = values
	}
	return &Settings{Environments: envs}, nil
}

// Names returns the environment names, sorted, without $shared.
func (s *Settings) Names() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Environments))
	for name := range s.Environments {
		if name != SharedEnvironment {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return names
}

func stringify(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
