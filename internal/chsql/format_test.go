package chsql

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatValueScalars(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "NULL"},
		{"string", "hello", "'hello'"},
		{"string with quote", "O'Brien", "'O''Brien'"},
		{"string all quotes", "'''", "''''''''"},
		{"bool true", true, "true"},
		{"bool false", false, "false"},
		{"int", 42, "42"},
		{"negative int", -7, "-7"},
		{"int64", int64(9223372036854775807), "9223372036854775807"},
		{"uint64", uint64(18446744073709551615), "18446744073709551615"},
		{"float", 1.5, "1.5"},
		{"float integer value", float64(3), "3"},
		{"positive inf", math.Inf(1), "inf"},
		{"negative inf", math.Inf(-1), "-inf"},
		{"nan", math.NaN(), "nan"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FormatValue(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatValueDecimal(t *testing.T) {
	d := decimal.RequireFromString("123.4500")
	got, err := FormatValue(d)
	require.NoError(t, err)
	assert.Equal(t, "123.45", got)
}

func TestFormatValueTime(t *testing.T) {
	ts := time.Date(2024, 3, 15, 9, 30, 45, 123456789, time.UTC)
	got, err := FormatValue(ts)
	require.NoError(t, err)
	assert.Equal(t, "'2024-03-15 09:30:45'", got)
}

func TestFormatValueSlices(t *testing.T) {
	got, err := FormatValue([]any{1, "a", nil})
	require.NoError(t, err)
	assert.Equal(t, "[1, 'a', NULL]", got)

	// Typed slices go through reflection.
	got, err = FormatValue([]string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, "['x', 'y']", got)

	got, err = FormatValue([]int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "[1, 2, 3]", got)
}

func TestFormatValueMapSortsKeys(t *testing.T) {
	got, err := FormatValue(map[string]any{"b": 2, "a": 1, "c": "x"})
	require.NoError(t, err)
	assert.Equal(t, "{'a': 1, 'b': 2, 'c': 'x'}", got)
}

func TestFormatValueTypedMap(t *testing.T) {
	got, err := FormatValue(map[string]int{"k": 5})
	require.NoError(t, err)
	assert.Equal(t, "{'k': 5}", got)
}

func TestFormatValueUnsupported(t *testing.T) {
	_, err := FormatValue(struct{ X int }{1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported value type")

	_, err = FormatValue(make(chan int))
	require.Error(t, err)
}

func TestFormatList(t *testing.T) {
	got, err := formatList([]any{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "(1, 2, 3)", got)

	// Nested slices render as tuples.
	got, err = formatList([]any{[]any{1, "a"}, []any{2, "b"}})
	require.NoError(t, err)
	assert.Equal(t, "((1, 'a'), (2, 'b'))", got)
}
