package literal

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ndtool/internal/array"
)

func TestParseArray(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  *array.Array
	}{
		{
			name:  "int matrix",
			input: "[[33,59,24],[16,12,18]]",
			want:  array.Must(array.Shape{2, 3}, []int64{33, 59, 24, 16, 12, 18}),
		},
		{
			name:  "string grid",
			input: `[['joe', "Joe"], ['frank', 'alice']]`,
			want:  array.Must(array.Shape{2, 2}, []string{"joe", "Joe", "frank", "alice"}),
		},
		{
			name:  "int and float promote",
			input: "[1, 2.5]",
			want:  array.Vector(1.0, 2.5),
		},
		{
			name:  "bools",
			input: "[True, False]",
			want:  array.Vector(true, false),
		},
		{
			name:  "tuples as dimensions",
			input: "((1, 2), [3, 4])",
			want:  array.Must(array.Shape{2, 2}, []int64{1, 2, 3, 4}),
		},
		{
			name:  "scalar",
			input: "7",
			want:  array.Scalar(int64(7)),
		},
		{
			name:  "empty",
			input: "[]",
			want:  array.Vector[float64](),
		},
		{
			name:  "nested empty",
			input: "[[], []]",
			want:  array.Must(array.Shape{2, 0}, []float64{}),
		},
		{
			name:  "rank three",
			input: "[[[1],[2]],[[3],[4]]]",
			want:  array.Must(array.Shape{2, 2, 1}, []int64{1, 2, 3, 4}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArray(tt.input)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s (%s %s)", got, got.DType(), got.Shape())
		})
	}
}

func TestParseArrayRejects(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		errSubstr string
	}{
		{name: "ragged lengths", input: "[[1, 2], [3]]", errSubstr: "ragged nesting: [0] has shape (2,) but [1] has shape (1,)"},
		{name: "ragged depth", input: "[[1], 2]", errSubstr: "ragged nesting"},
		{name: "deep ragged", input: "[[[1, 2]], [[3]]]", errSubstr: "[0] has shape (1, 2) but [1] has shape (1, 1)"},
		{name: "string and int", input: "['a', 1]", errSubstr: "cannot mix int64 and str"},
		{name: "bool and int", input: "[True, 1]", errSubstr: "cannot mix bool and int64"},
		{name: "none element", input: "[1, None]", errSubstr: "None at [1]"},
		{name: "dict element", input: "[{'a': 1}]", errSubstr: "dict at [0]"},
		{name: "syntax", input: "[1,,2]", errSubstr: "expected a value"},
		{name: "python expression", input: "__import__('os')", errSubstr: "unknown name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArray(tt.input)
			require.Error(t, err)
			assert.True(t, array.IsInvalidInput(err))
			assert.Contains(t, err.Error(), tt.errSubstr)
		})
	}
}

func TestFromNative(t *testing.T) {
	v, err := FromNative([]any{[]any{1, 2.5}, []any{int64(3), uint64(4)}})
	require.NoError(t, err)

	arr, err := ToArray(v)
	require.NoError(t, err)
	assert.True(t, array.Must(array.Shape{2, 2}, []float64{1, 2.5, 3, 4}).Equal(arr))

	d, err := FromNative(map[string]any{"b": "x", "a": true})
	require.NoError(t, err)
	assert.Equal(t, Dict{{Key: Str("a"), Value: Bool(true)}, {Key: Str("b"), Value: Str("x")}}, d)

	_, err = FromNative(uint64(1) << 63)
	assert.Error(t, err)

	_, err = FromNative(struct{}{})
	assert.Error(t, err)
}
