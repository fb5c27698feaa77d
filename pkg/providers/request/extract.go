package request

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/getmockd/httpvars/pkg/variables"
	"github.com/ohler55/ojg/jp"
)

// extractJSONPath evaluates path against a JSON body. A single match is
// returned as is; several matches are returned as a JSON array.
func extractJSONPath(body, path string) variables.Outcome {
	expr, err := jp.ParseString(path)
	if err != nil {
		return variables.Failed(fmt.Errorf("%w: %s: %v", ErrInvalidPath, path, err))
	}

	data, err := decodeJSON(body)
	if err != nil {
		return variables.Warn("body is not JSON, cannot evaluate %s", path)
	}

	results := expr.Get(data)
	switch len(results) {
	case 0:
		return variables.Warn("no value at %s", path)
	case 1:
		return variables.Value(formatValue(results[0]))
	default:
		return variables.Value(formatValue(results))
	}
}

// decodeJSON parses a single JSON value. Integers become int64 so ids
// survive digit for digit and compare in filters; integers beyond int64 stay
// json.Number.
func decodeJSON(body string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("trailing data after JSON value")
	}
	return normalizeNumbers(data), nil
}

func normalizeNumbers(val any) any {
	switch v := val.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = normalizeNumbers(e)
		}
	case []any:
		for i, e := range v {
			v[i] = normalizeNumbers(e)
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n
		}
		if strings.ContainsAny(string(v), ".eE") {
			if f, err := v.Float64(); err == nil {
				return f
			}
		}
	}
	return val
}

// extractXPath evaluates path against an XML body. Paths ending in /@attr
// return the attribute value.
func extractXPath(body, path string) variables.Outcome {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(body); err != nil {
		return variables.Warn("body is not XML, cannot evaluate %s", path)
	}

	elemPath, attr := path, ""
	if i := strings.LastIndex(path, "/@"); i >= 0 {
		elemPath, attr = path[:i], path[i+2:]
	}

	compiled, err := etree.CompilePath(elemPath)
	if err != nil {
		return variables.Failed(fmt.Errorf("%w: %s: %v", ErrInvalidPath, path, err))
	}
	elem := doc.FindElementPath(compiled)
	if elem == nil {
		return variables.Warn("no value at %s", path)
	}

	if attr == "" {
		return variables.Value(strings.TrimSpace(elem.Text()))
	}
	a := elem.SelectAttr(attr)
	if a == nil {
		return variables.Warn("no attribute %s at %s", attr, elemPath)
	}
	return variables.Value(a.Value)
}
