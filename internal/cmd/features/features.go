// Package features parses feature and target values given on the command line.
package features

import (
	"encoding/json"
	"strings"

	kappaml "github.com/kappaml/kappaml-go"
	"github.com/kappaml/kappaml-go/pkg/errors"
)

// Parse reads comma-separated key=value pairs such as "x1=1.5,city=paris".
// Each value goes through ParseValue.
func Parse(s string) (kappaml.Features, error) {
	out := kappaml.Features{}
	if strings.TrimSpace(s) == "" {
		return out, nil
	}

	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, errors.NewValidationError("features", pair, "expected key=value")
		}
		if _, dup := out[key]; dup {
			return nil, errors.NewValidationError("features", key, "duplicate feature")
		}
		out[key] = ParseValue(value)
	}
	return out, nil
}

// ParseJSON reads a JSON object of features.
func ParseJSON(s string) (kappaml.Features, error) {
	var out kappaml.Features
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, errors.WrapParse("json", "features", err)
	}
	if out == nil {
		return nil, errors.NewValidationError("features", s, "must be a JSON object")
	}
	return out, nil
}

// ParseValue returns v as a number, bool or quoted string when it is a JSON
// scalar, otherwise as the raw string.
func ParseValue(v string) any {
	v = strings.TrimSpace(v)

	var parsed any
	if err := json.Unmarshal([]byte(v), &parsed); err != nil {
		return v
	}
	switch parsed.(type) {
	case float64, bool, string:
		return parsed
	default:
		return v
	}
}
