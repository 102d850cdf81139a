package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	kappaml "github.com/kappaml/kappaml-go"
	"github.com/kappaml/kappaml-go/pkg/errors"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want kappaml.Features
	}{
		{"empty", "", kappaml.Features{}},
		{"numbers", "x1=1,x2=2.5", kappaml.Features{"x1": 1.0, "x2": 2.5}},
		{"mixed", "city=paris, open=true", kappaml.Features{"city": "paris", "open": true}},
		{"quoted", `code="42"`, kappaml.Features{"code": "42"}},
		{"empty value", "note=", kappaml.Features{"note": ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{"x1", "=1", "x=1,x=2"} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func TestParseJSON(t *testing.T) {
	got, err := ParseJSON(`{"x": 1, "tags": ["a"]}`)
	require.NoError(t, err)
	assert.Equal(t, kappaml.Features{"x": 1.0, "tags": []any{"a"}}, got)

	_, err = ParseJSON(`not json`)
	var parseErr *errors.ParseError
	assert.ErrorAs(t, err, &parseErr)

	_, err = ParseJSON(`null`)
	assert.True(t, errors.IsValidationError(err))
}

func TestParseValue(t *testing.T) {
	assert.Equal(t, 3.0, ParseValue("3"))
	assert.Equal(t, false, ParseValue("false"))
	assert.Equal(t, "cat", ParseValue("cat"))
	assert.Equal(t, "null", ParseValue("null"))
	assert.Equal(t, "[1]", ParseValue("[1]"))
}
