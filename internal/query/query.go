// Package query evaluates JSONPath expressions against a saved pet file.
package query

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/yalp/jsonpath"
)

// ErrEmptyExpression is returned when no JSONPath expression is given.
var ErrEmptyExpression = errors.New("query: empty expression")

// Compile prepares expr for repeated evaluation. Expressions must start
// with "$".
func Compile(expr string) (jsonpath.FilterFunc, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, ErrEmptyExpression
	}
	f, err := jsonpath.Prepare(expr)
	if err != nil {
		return nil, fmt.Errorf("query: compile %q: %w", expr, err)
	}
	return f, nil
}

// Eval runs expr against decoded JSON data.
func Eval(data []byte, expr string) (any, error) {
	f, err := Compile(expr)
	if err != nil {
		return nil, err
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("query: decode: %w", err)
	}
	out, err := f(doc)
	if err != nil {
		return nil, fmt.Errorf("query: eval %q: %w", expr, err)
	}
	return out, nil
}

// File runs expr against the JSON document stored at path.
func File(path, expr string) (any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("query: read %s: %w", path, err)
	}
	return Eval(data, expr)
}
