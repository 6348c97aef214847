package literal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValues(t *testing.T) {
	tests := []struct {
		input string
		want  Value
	}{
		{"1", Int(1)},
		{"-1", Int(-1)},
		{"+2", Int(2)},
		{"1_000", Int(1000)},
		{"0b101", Int(5)},
		{"-9223372036854775808", Int(math.MinInt64)},
		{"2.5", Float(2.5)},
		{".5", Float(0.5)},
		{"3.", Float(3)},
		{"1e3", Float(1000)},
		{"'x'", Str("x")},
		{"True", Bool(true)},
		{"False", Bool(false)},
		{"None", None{}},
		{"[]", List{}},
		{"[1, 2,]", List{Int(1), Int(2)}},
		{"()", Tuple{}},
		{"(1)", Int(1)},
		{"(1,)", Tuple{Int(1)}},
		{"(1, 2)", Tuple{Int(1), Int(2)}},
		{"[[1], ['a']]", List{List{Int(1)}, List{Str("a")}}},
		{"{'a': 1, 'b': (2,)}", Dict{{Key: Str("a"), Value: Int(1)}, {Key: Str("b"), Value: Tuple{Int(2)}}}},
		{"  [ 1 ,\n 2 ]  ", List{Int(1), Int(2)}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseInfiniteFloat(t *testing.T) {
	got, err := Parse("1e999")
	require.NoError(t, err)
	assert.True(t, math.IsInf(float64(got.(Float)), 1))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		errSubstr string
		offset    int
	}{
		{name: "empty", input: "", errSubstr: "expected a value, got end of input", offset: 0},
		{name: "unclosed list", input: "[1, 2", errSubstr: "expected ',' or ']'", offset: 5},
		{name: "missing comma", input: "[1 2]", errSubstr: "expected ',' or ']'", offset: 3},
		{name: "trailing input", input: "[1] 2", errSubstr: "expected end of input", offset: 4},
		{name: "unknown name", input: "[inf]", errSubstr: `unknown name "inf"`, offset: 1},
		{name: "bare sign", input: "[-]", errSubstr: "sign must be followed by a number", offset: 1},
		{name: "sign before string", input: "-'a'", errSubstr: "sign must be followed by a number", offset: 0},
		{name: "int overflow", input: "9223372036854775808", errSubstr: "out of int64 range", offset: 0},
		{name: "dict missing colon", input: "{'a' 1}", errSubstr: "expected ':'", offset: 5},
		{name: "function call", input: "np.array([1])", errSubstr: `unknown name "np"`, offset: 0},
		{name: "hex without digits", input: "0x", errSubstr: "invalid integer", offset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errSubstr)

			var se *SyntaxError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tt.offset, se.Offset)
		})
	}
}

func TestParseDepthLimit(t *testing.T) {
	deep := ""
	for range maxDepth + 1 {
		deep += "["
	}
	_, err := Parse(deep)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "nesting deeper than")
}

func TestDictLookup(t *testing.T) {
	v, err := Parse("{'descr': '<i8', 'shape': (2, 3)}")
	require.NoError(t, err)
	d := v.(Dict)

	shape, ok := d.Lookup("shape")
	require.True(t, ok)
	assert.Equal(t, Tuple{Int(2), Int(3)}, shape)

	_, ok = d.Lookup("missing")
	assert.False(t, ok)
}
